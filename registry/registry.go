// Package registry holds the declared tools and their bound handlers.
package registry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/fwojciec/toolbridge"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "parameters.json"

// Tool is a registered declaration bound to its handler.
type Tool struct {
	Declaration toolbridge.Declaration
	Handler     toolbridge.Handler

	schema *jsonschema.Schema
}

// ValidateArguments checks args against the tool's parameter schema. A
// mismatch is reported as an *toolbridge.ArgumentDecodeError.
func (t Tool) ValidateArguments(args map[string]any) error {
	if t.schema == nil {
		return nil
	}
	if args == nil {
		args = map[string]any{}
	}
	data, err := json.Marshal(args)
	if err != nil {
		return &toolbridge.ArgumentDecodeError{Tool: t.Declaration.Name, Err: err}
	}
	// Round-trip through the schema library's decoder so numbers are
	// represented the way the validator expects.
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return &toolbridge.ArgumentDecodeError{Tool: t.Declaration.Name, Err: err}
	}
	if err := t.schema.Validate(inst); err != nil {
		return &toolbridge.ArgumentDecodeError{Tool: t.Declaration.Name, Err: err}
	}
	return nil
}

// Registry maps tool names to declarations and handlers. Registration is
// expected to finish before the first lookup; lookups are safe for
// concurrent use.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]*Tool
	order []string
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{tools: make(map[string]*Tool)}
}

// Register adds a declaration bound to h. It fails with a
// *toolbridge.DuplicateNameError when the name is taken and with
// toolbridge.ErrValidation when the declaration or its schema is invalid.
func (r *Registry) Register(decl toolbridge.Declaration, h toolbridge.Handler) error {
	if err := decl.Validate(); err != nil {
		return err
	}
	if h == nil {
		return fmt.Errorf("handler for %s must not be nil: %w", decl.Name, toolbridge.ErrValidation)
	}
	schema, err := compile(decl)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[decl.Name]; exists {
		return &toolbridge.DuplicateNameError{Name: decl.Name}
	}
	decl.Parameters = bytes.Clone(decl.Parameters)
	r.tools[decl.Name] = &Tool{Declaration: decl, Handler: h, schema: schema}
	r.order = append(r.order, decl.Name)
	return nil
}

// Lookup returns the declaration registered under name or a
// *toolbridge.NotFoundError.
func (r *Registry) Lookup(name string) (toolbridge.Declaration, error) {
	t, err := r.Resolve(name)
	if err != nil {
		return toolbridge.Declaration{}, err
	}
	return t.Declaration, nil
}

// Resolve returns the full registration for name or a *toolbridge.NotFoundError.
func (r *Registry) Resolve(name string) (Tool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tools[name]
	if !ok {
		return Tool{}, &toolbridge.NotFoundError{Name: name}
	}
	out := *t
	out.Declaration.Parameters = bytes.Clone(t.Declaration.Parameters)
	return out, nil
}

// Declarations returns every declaration in registration order.
func (r *Registry) Declarations() []toolbridge.Declaration {
	r.mu.RLock()
	defer r.mu.RUnlock()

	decls := make([]toolbridge.Declaration, 0, len(r.order))
	for _, name := range r.order {
		d := r.tools[name].Declaration
		d.Parameters = bytes.Clone(d.Parameters)
		decls = append(decls, d)
	}
	return decls
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

func compile(decl toolbridge.Declaration) (*jsonschema.Schema, error) {
	if len(decl.Parameters) == 0 {
		return nil, nil
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(decl.Parameters))
	if err != nil {
		return nil, fmt.Errorf("parameters of %s: %v: %w", decl.Name, err, toolbridge.ErrValidation)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("add schema for %s: %v: %w", decl.Name, err, toolbridge.ErrValidation)
	}
	schema, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema for %s: %v: %w", decl.Name, err, toolbridge.ErrValidation)
	}
	return schema, nil
}
