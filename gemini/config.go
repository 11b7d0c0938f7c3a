package gemini

import (
	"context"
	"fmt"

	"github.com/fwojciec/toolbridge"
	"google.golang.org/genai"
)

// SessionConfig describes a Live API session.
type SessionConfig struct {
	Model             string
	Voice             string
	SystemInstruction string
	// GoogleSearch enables the built-in search tool alongside the declared
	// functions.
	GoogleSearch bool
}

// LiveConnectConfig builds the connection config for decls: audio
// responses spoken with the configured prebuilt voice.
func (c SessionConfig) LiveConnectConfig(decls []toolbridge.Declaration) *genai.LiveConnectConfig {
	voice := c.Voice
	if voice == "" {
		voice = DefaultVoice
	}
	cfg := &genai.LiveConnectConfig{
		ResponseModalities: []genai.Modality{genai.ModalityAudio},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: voice},
			},
		},
	}
	if c.SystemInstruction != "" {
		cfg.SystemInstruction = genai.NewContentFromText(c.SystemInstruction, genai.RoleUser)
	}
	if c.GoogleSearch {
		cfg.Tools = append(cfg.Tools, &genai.Tool{GoogleSearch: &genai.GoogleSearch{}})
	}
	cfg.Tools = append(cfg.Tools, ConvertDeclarations(decls)...)
	return cfg
}

func (c SessionConfig) model() string {
	if c.Model == "" {
		return DefaultLiveModel
	}
	return c.Model
}

// Connect opens a Live API session configured for decls.
func Connect(ctx context.Context, client *genai.Client, cfg SessionConfig, decls []toolbridge.Declaration) (*LiveSession, error) {
	conn, err := client.Live.Connect(ctx, cfg.model(), cfg.LiveConnectConfig(decls))
	if err != nil {
		return nil, fmt.Errorf("gemini: connect: %w", err)
	}
	return NewLiveSession(conn), nil
}
