// Package gemini adapts the Google Gemini API to toolbridge.
//
// It wraps the google.golang.org/genai SDK in two directions: [Generator]
// issues single-shot generation requests for document ingestion, and
// [LiveSession] carries tool-call batches over a Live API session. The
// conversion helpers translate between toolbridge's domain types and genai's.
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const (
	// DefaultModel is used by Generator when no model is set.
	DefaultModel = "gemini-1.5-flash"
	// DefaultLiveModel is used by SessionConfig when no model is set.
	DefaultLiveModel = "gemini-2.0-flash-exp"
	// DefaultVoice is the prebuilt voice used when none is set.
	DefaultVoice = "Aoede"
)

// NewClient creates a genai client for the Gemini API backend.
func NewClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	return c, nil
}
