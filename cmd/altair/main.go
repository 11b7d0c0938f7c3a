// Command altair runs a Gemini Live session with the built-in tools.
//
// Lines read from stdin are sent to the model as user turns; tool calls the
// model issues are dispatched to controlLight, render_altair and
// summarize_documents until the process is interrupted.
//
// Configuration is read from the environment:
//
//	GEMINI_API_KEY   API key (required)
//	LIVE_MODEL       Live API model (default gemini-2.0-flash-exp)
//	INGEST_MODEL     model used by summarize_documents (default gemini-1.5-flash)
//	VOICE            prebuilt voice name (default Aoede)
//	RESPONSE_DELAY   delay before tool responses are sent (default 200ms)
//	GOOGLE_SEARCH    enable the Google Search tool (default true)
package main

import (
	"bufio"
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/chainguard-dev/clog"
	"github.com/fwojciec/toolbridge/bridge"
	"github.com/fwojciec/toolbridge/builtin"
	"github.com/fwojciec/toolbridge/fetch"
	"github.com/fwojciec/toolbridge/gemini"
	"github.com/fwojciec/toolbridge/ingest"
	"github.com/fwojciec/toolbridge/metrics"
	"github.com/fwojciec/toolbridge/registry"
	"github.com/sethvargo/go-envconfig"
)

const systemInstruction = `You are my helpful assistant. Any time I ask you for function change in the room brightness or color temperature, call the "controlLight" function I have provided you. When I ask about web pages or PDF documents, call "summarize_documents". Dont ask for additional information just make your best judgement.`

type config struct {
	APIKey        string        `env:"GEMINI_API_KEY,required"`
	LiveModel     string        `env:"LIVE_MODEL,default=gemini-2.0-flash-exp"`
	IngestModel   string        `env:"INGEST_MODEL,default=gemini-1.5-flash"`
	Voice         string        `env:"VOICE,default=Aoede"`
	ResponseDelay time.Duration `env:"RESPONSE_DELAY,default=200ms"`
	GoogleSearch  bool          `env:"GOOGLE_SEARCH,default=true"`
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var cfg config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		clog.FatalContextf(ctx, "processing config: %v", err)
	}

	client, err := gemini.NewClient(ctx, cfg.APIKey)
	if err != nil {
		clog.FatalContextf(ctx, "creating client: %v", err)
	}

	recorder := metrics.New()
	pipeline := ingest.New(
		fetch.New(),
		gemini.NewGenerator(client.Models, gemini.WithModel(cfg.IngestModel)),
		ingest.WithPolicy(ingest.SkipFailed),
		ingest.WithMetrics(recorder),
	)

	light := &builtin.Light{}
	light.OnChange(func(s builtin.LightState) {
		clog.InfoContextf(ctx, "Light changed: %s", s)
	})

	reg := registry.New()
	if err := builtin.Register(reg, light, pipeline); err != nil {
		clog.FatalContextf(ctx, "registering tools: %v", err)
	}

	session, err := gemini.Connect(ctx, client, gemini.SessionConfig{
		Model:             cfg.LiveModel,
		Voice:             cfg.Voice,
		SystemInstruction: systemInstruction,
		GoogleSearch:      cfg.GoogleSearch,
	}, reg.Declarations())
	if err != nil {
		clog.FatalContextf(ctx, "connecting: %v", err)
	}
	defer session.Close()
	clog.InfoContextf(ctx, "Connected to %s with %d tools", cfg.LiveModel, reg.Len())

	b := bridge.New(session, reg,
		bridge.WithResponseDelay(cfg.ResponseDelay),
		bridge.WithMetrics(recorder),
	)
	if err := b.Start(ctx); err != nil {
		clog.FatalContextf(ctx, "starting bridge: %v", err)
	}

	go readTurns(ctx, session)

	runErr := session.Run(ctx)
	b.Stop()
	b.Wait()
	if runErr != nil {
		clog.FatalContextf(ctx, "session ended: %v", runErr)
	}
	clog.InfoContextf(ctx, "Session closed")
}

// readTurns sends every non-empty stdin line as a user turn.
func readTurns(ctx context.Context, session *gemini.LiveSession) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if err := session.SendText(ctx, text); err != nil {
			clog.FromContext(ctx).With("error", err).Warn("Failed to send turn")
		}
	}
}
