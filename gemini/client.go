package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fwojciec/toolbridge"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// Interface compliance check.
var _ toolbridge.Generator = (*Generator)(nil)

// ContentGenerator is the subset of [genai.Models] used by Generator.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

var _ ContentGenerator = (*genai.Models)(nil)

// Generator implements [toolbridge.Generator] with a single GenerateContent
// call per request.
type Generator struct {
	models  ContentGenerator
	model   string
	limiter *rate.Limiter
}

// Option configures a [Generator].
type Option func(*Generator)

// WithModel sets the model ID. Default is [DefaultModel].
func WithModel(model string) Option {
	return func(g *Generator) { g.model = model }
}

// WithRateLimit allows at most r requests per second with the given burst.
// Callers block until a request is permitted or their context ends.
func WithRateLimit(r rate.Limit, burst int) Option {
	return func(g *Generator) { g.limiter = rate.NewLimiter(r, burst) }
}

// NewGenerator creates a [Generator]. Pass client.Models for a real client.
func NewGenerator(models ContentGenerator, opts ...Option) *Generator {
	g := &Generator{
		models: models,
		model:  DefaultModel,
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Generate sends parts followed by prompt as one user turn and returns the
// concatenated text of the first candidate.
func (g *Generator) Generate(ctx context.Context, parts []toolbridge.NormalizedContent, prompt string) (string, error) {
	contentParts, err := ConvertParts(parts, prompt)
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("gemini: %w", err)
		}
	}

	contents := []*genai.Content{genai.NewContentFromParts(contentParts, genai.RoleUser)}
	resp, err := g.models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	text := responseText(resp)
	if text == "" {
		return "", errors.New("gemini: response contained no text")
	}
	return text, nil
}

// responseText returns the non-thought text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	c := resp.Candidates[0].Content
	if c == nil {
		return ""
	}
	var b strings.Builder
	for _, p := range c.Parts {
		if p == nil || p.Thought {
			continue
		}
		b.WriteString(p.Text)
	}
	return b.String()
}
