// Package ingest fetches a set of documents concurrently and submits them,
// followed by a prompt, as a single generation request.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/chainguard-dev/clog"
	"github.com/fwojciec/toolbridge"
	"github.com/fwojciec/toolbridge/metrics"
	"golang.org/x/sync/errgroup"
)

// Policy decides what a failed fetch does to the run.
type Policy int

const (
	// FailFast fails the whole run when any source fails. No generation
	// request is issued.
	FailFast Policy = iota
	// SkipFailed drops failed sources, records them in
	// IngestionResult.Skipped and generates from the rest.
	SkipFailed
)

func (p Policy) String() string {
	switch p {
	case FailFast:
		return "fail-fast"
	case SkipFailed:
		return "skip-failed"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// Pipeline runs document ingestion. It holds no per-run state and is safe
// for concurrent use.
type Pipeline struct {
	fetcher   toolbridge.Fetcher
	generator toolbridge.Generator
	policy    Policy
	limit     int
	metrics   *metrics.Recorder
}

// Option configures a [Pipeline].
type Option func(*Pipeline)

// WithPolicy sets the fetch-failure policy. Default is FailFast.
func WithPolicy(p Policy) Option {
	return func(pl *Pipeline) { pl.policy = p }
}

// WithConcurrency caps the number of fetches in flight. Zero or less means
// every source is fetched at once. Every source is attempted either way.
func WithConcurrency(n int) Option {
	return func(pl *Pipeline) { pl.limit = n }
}

// WithMetrics records fetch and generation outcomes on m.
func WithMetrics(m *metrics.Recorder) Option {
	return func(pl *Pipeline) { pl.metrics = m }
}

// New creates a [Pipeline].
func New(fetcher toolbridge.Fetcher, generator toolbridge.Generator, opts ...Option) *Pipeline {
	p := &Pipeline{fetcher: fetcher, generator: generator}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Run fetches every source, then issues one generation request with the
// normalized parts in source order and prompt last. Failures are reported
// in the result's Error field; Run never returns a Go error or panics.
func (p *Pipeline) Run(ctx context.Context, sources []toolbridge.DocumentSource, prompt string) (res toolbridge.IngestionResult) {
	log := clog.FromContext(ctx).With("sources", len(sources)).With("policy", p.policy.String())

	defer func() {
		if r := recover(); r != nil {
			log.With("panic", r).Error("Ingestion panicked")
			res = failure(fmt.Errorf("ingestion panicked: %v", r))
		}
	}()

	if strings.TrimSpace(prompt) == "" {
		return failure(fmt.Errorf("prompt must not be empty: %w", toolbridge.ErrValidation))
	}

	log.Info("Fetching sources")
	parts, skipped, err := p.fetchAll(ctx, sources)
	if err != nil {
		log.With("error", err).Warn("Ingestion failed while fetching")
		return failure(err)
	}
	if len(skipped) > 0 {
		log.With("skipped", skipped).Warn("Skipping failed sources")
	}

	log.With("parts", len(parts)).Info("Generating")
	text, err := p.generator.Generate(ctx, parts, prompt)
	if err == nil && text == "" {
		err = errors.New("empty response")
	}
	p.metrics.RecordGeneration(ctx, err == nil)
	if err != nil {
		log.With("error", err).Warn("Ingestion failed while generating")
		return failure(&toolbridge.GenerationServiceError{Err: err})
	}

	log.With("text_length", len(text)).Info("Ingestion complete")
	return toolbridge.IngestionResult{Text: text, Skipped: skipped}
}

// fetchAll fetches every source concurrently and returns the contents in
// source order, applying the pipeline's policy to failures.
func (p *Pipeline) fetchAll(ctx context.Context, sources []toolbridge.DocumentSource) ([]toolbridge.NormalizedContent, []string, error) {
	contents := make([]toolbridge.NormalizedContent, len(sources))
	errs := make([]error, len(sources))

	var g errgroup.Group
	if p.limit > 0 {
		g.SetLimit(p.limit)
	}
	for i, src := range sources {
		g.Go(func() error {
			contents[i], errs[i] = p.fetch(ctx, src)
			p.metrics.RecordFetch(ctx, string(src.Kind), errs[i] == nil)
			return nil
		})
	}
	_ = g.Wait()

	var (
		parts    []toolbridge.NormalizedContent
		skipped  []string
		failures []error
	)
	for i, err := range errs {
		if err != nil {
			failures = append(failures, err)
			skipped = append(skipped, sources[i].Locator)
			continue
		}
		parts = append(parts, contents[i])
	}

	switch {
	case len(failures) == 0:
		return parts, nil, nil
	case p.policy == SkipFailed && len(parts) > 0:
		return parts, skipped, nil
	case p.policy == SkipFailed:
		return nil, nil, fmt.Errorf("all %d sources failed: %w", len(sources), errors.Join(failures...))
	default:
		return nil, nil, errors.Join(failures...)
	}
}

func (p *Pipeline) fetch(ctx context.Context, src toolbridge.DocumentSource) (c toolbridge.NormalizedContent, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("fetch panicked: %v", r)
		}
		var fe *toolbridge.FetchError
		if err != nil && !errors.As(err, &fe) {
			err = &toolbridge.FetchError{Locator: src.Locator, Err: err}
		}
	}()
	return p.fetcher.Fetch(ctx, src)
}

func failure(err error) toolbridge.IngestionResult {
	return toolbridge.IngestionResult{Error: err.Error()}
}
