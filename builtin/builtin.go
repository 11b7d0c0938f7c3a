// Package builtin provides the tools exposed to the live assistant.
package builtin

import (
	"context"
	"fmt"

	"github.com/fwojciec/toolbridge"
	"github.com/fwojciec/toolbridge/registry"
)

// Summarizer runs document ingestion. It is satisfied by *ingest.Pipeline.
type Summarizer interface {
	Run(ctx context.Context, sources []toolbridge.DocumentSource, prompt string) toolbridge.IngestionResult
}

// Register adds every built-in tool to reg. light receives controlLight
// updates and summarizer serves summarize_documents.
func Register(reg *registry.Registry, light *Light, summarizer Summarizer) error {
	tools := []struct {
		decl    toolbridge.Declaration
		handler toolbridge.Handler
	}{
		{ControlLightTool(), ControlLight(light)},
		{RenderAltairTool(), RenderAltair()},
		{SummarizeDocumentsTool(), SummarizeDocuments(summarizer)},
	}
	for _, t := range tools {
		if err := reg.Register(t.decl, t.handler); err != nil {
			return fmt.Errorf("builtin: %w", err)
		}
	}
	return nil
}
