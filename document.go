package toolbridge

import (
	"context"
	"net/url"
	"path"
	"strings"
)

// SourceKind selects how a DocumentSource is normalized.
type SourceKind string

const (
	KindHTML SourceKind = "html"
	KindPDF  SourceKind = "pdf"
)

// MIME types produced by normalization.
const (
	MIMEText = "text/plain"
	MIMEPDF  = "application/pdf"
)

// DocumentSource is an external resource to ingest.
type DocumentSource struct {
	Locator string
	Kind    SourceKind
}

// ParseSource builds a DocumentSource from a URL or path, inferring KindPDF
// from a ".pdf" extension and KindHTML otherwise.
func ParseSource(locator string) DocumentSource {
	p := locator
	if u, err := url.Parse(locator); err == nil && u.Scheme != "" {
		p = u.Path
	}
	kind := KindHTML
	if strings.EqualFold(path.Ext(p), ".pdf") {
		kind = KindPDF
	}
	return DocumentSource{Locator: locator, Kind: kind}
}

// NormalizedContent is a generation-ready part. Binary content is base64
// encoded in Data.
type NormalizedContent struct {
	Data     string
	MIMEType string
}

// IsBinary reports whether Data holds base64-encoded bytes.
func (c NormalizedContent) IsBinary() bool {
	return c.MIMEType != "" && c.MIMEType != MIMEText
}

// IngestionResult is the outcome of a pipeline run. Exactly one of Text and
// Error is non-empty. Skipped lists locators dropped when failed sources are
// skipped.
type IngestionResult struct {
	Text    string
	Error   string
	Skipped []string
}

// OK reports whether the run produced text.
func (r IngestionResult) OK() bool { return r.Error == "" }

// Fetcher retrieves and normalizes a single DocumentSource.
type Fetcher interface {
	Fetch(ctx context.Context, source DocumentSource) (NormalizedContent, error)
}

// Generator issues one generation request: parts in order, prompt last.
type Generator interface {
	Generate(ctx context.Context, parts []NormalizedContent, prompt string) (string, error)
}
