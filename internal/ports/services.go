package ports

import (
	"context"

	"github.com/lethub/voice-gateway/internal/domain"
)

// Transcriber converts a staged audio file into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// Synthesizer converts response text into MPEG audio bytes.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (*domain.SynthesizedAudio, error)
}

// ChatCompleter answers a single-turn prompt. No conversation history is
// retained across calls.
type ChatCompleter interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// WeatherProvider looks up current conditions for a location string.
type WeatherProvider interface {
	Current(ctx context.Context, location string) (*domain.WeatherReading, error)
}

// SessionCreator requests an ephemeral realtime session from the AI provider.
// The body and status are relayed to the caller verbatim, so they are exposed
// raw rather than decoded.
type SessionCreator interface {
	CreateSession(ctx context.Context) (body []byte, status int, err error)
}
