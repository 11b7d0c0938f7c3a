package builtin

import (
	"context"
	"errors"

	"github.com/fwojciec/toolbridge"
	"github.com/fwojciec/toolbridge/schema"
)

type summarizeArgs struct {
	URLs   []string `json:"urls" jsonschema:"required,description=Web pages or PDF documents to read. PDFs are detected by a .pdf extension."`
	Prompt string   `json:"prompt" jsonschema:"required,description=What to do with the documents such as a summarization instruction."`
}

// SummarizeDocumentsTool returns the declaration for summarize_documents.
func SummarizeDocumentsTool() toolbridge.Declaration {
	return schema.Declare[summarizeArgs]("summarize_documents",
		"Fetches web pages and PDF documents and answers a prompt about their combined content.")
}

// SummarizeDocuments returns the handler for summarize_documents. A failed
// ingestion fails the call with the ingestion error message.
func SummarizeDocuments(s Summarizer) toolbridge.Handler {
	return toolbridge.Typed(func(ctx context.Context, a summarizeArgs) (any, error) {
		sources := make([]toolbridge.DocumentSource, len(a.URLs))
		for i, u := range a.URLs {
			sources[i] = toolbridge.ParseSource(u)
		}
		res := s.Run(ctx, sources, a.Prompt)
		if !res.OK() {
			return nil, errors.New(res.Error)
		}
		return res.Text, nil
	})
}
