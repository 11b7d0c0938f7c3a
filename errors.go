package toolbridge

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure modes.
var (
	// ErrValidation indicates a declaration, request or argument failed validation.
	ErrValidation = errors.New("validation error")

	// ErrAlreadyStarted indicates Start was called on a running bridge.
	ErrAlreadyStarted = errors.New("bridge already started")
)

// DuplicateNameError is returned when a declaration name is registered twice.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("tool %q already registered", e.Name)
}

// NotFoundError is returned by registry lookups for unknown names.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("tool %q not found", e.Name)
}

// UnknownToolError reports an inbound call whose name is not registered.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("unknown tool: %s", e.Name)
}

// ArgumentDecodeError reports arguments that do not match a tool's parameter schema.
type ArgumentDecodeError struct {
	Tool string
	Err  error
}

func (e *ArgumentDecodeError) Error() string {
	return fmt.Sprintf("invalid arguments for %s: %v", e.Tool, e.Err)
}

func (e *ArgumentDecodeError) Unwrap() error { return e.Err }

// HandlerExecutionError wraps a handler failure, including recovered panics.
type HandlerExecutionError struct {
	Tool string
	Err  error
}

func (e *HandlerExecutionError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Tool, e.Err)
}

func (e *HandlerExecutionError) Unwrap() error { return e.Err }

// FetchError reports a DocumentSource that could not be retrieved or normalized.
type FetchError struct {
	Locator string
	Err     error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Locator, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// GenerationServiceError reports a failed or malformed model response.
type GenerationServiceError struct {
	Err error
}

func (e *GenerationServiceError) Error() string {
	return fmt.Sprintf("generation failed: %v", e.Err)
}

func (e *GenerationServiceError) Unwrap() error { return e.Err }
