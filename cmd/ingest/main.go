// Command ingest fetches documents and answers a prompt about them in a
// single Gemini request.
//
// Usage:
//
//	GEMINI_API_KEY=... ingest -prompt "Summarize" https://example.com/a.pdf 'docs/**/*.html'
//
// Flags:
//
//	-prompt string     Instruction sent after the documents (required)
//	-model string      Model ID (default gemini-1.5-flash)
//	-skip-failed       Generate from the remaining documents when some fail
//	-concurrency int   Maximum concurrent fetches (default: unbounded)
//	-api-key string    API key (overrides GEMINI_API_KEY)
//
// The model's answer is written to stdout; a per-source status summary is
// written to stderr.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/fwojciec/toolbridge/fetch"
	"github.com/fwojciec/toolbridge/gemini"
	"github.com/fwojciec/toolbridge/ingest"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "ingest: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		prompt      = flag.String("prompt", "", "Instruction sent after the documents")
		model       = flag.String("model", gemini.DefaultModel, "Model ID")
		skipFailed  = flag.Bool("skip-failed", false, "Generate from the remaining documents when some fail")
		concurrency = flag.Int("concurrency", 0, "Maximum concurrent fetches (0 is unbounded)")
		apiKey      = flag.String("api-key", "", "API key (overrides GEMINI_API_KEY)")
	)
	flag.Parse()

	if *prompt == "" {
		return errors.New("-prompt is required")
	}
	key := *apiKey
	if key == "" {
		key = os.Getenv("GEMINI_API_KEY")
	}
	if key == "" {
		return errors.New("no API key: set GEMINI_API_KEY or pass -api-key")
	}

	sources, err := fetch.Expand(flag.Args())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client, err := gemini.NewClient(ctx, key)
	if err != nil {
		return err
	}

	policy := ingest.FailFast
	if *skipFailed {
		policy = ingest.SkipFailed
	}
	pipeline := ingest.New(
		fetch.New(),
		gemini.NewGenerator(client.Models, gemini.WithModel(*model)),
		ingest.WithPolicy(policy),
		ingest.WithConcurrency(*concurrency),
	)

	res := pipeline.Run(ctx, sources, *prompt)
	writeStatus(os.Stderr, newStyles(defaultPalette()), sources, res)
	if !res.OK() {
		return errors.New(res.Error)
	}
	fmt.Println(res.Text)
	return nil
}
