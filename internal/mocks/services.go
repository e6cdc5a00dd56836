package mocks

import (
	"context"

	"github.com/lethub/voice-gateway/internal/domain"
)

// MockTranscriber is a mock implementation of the Transcriber port
type MockTranscriber struct {
	TranscribeFunc func(ctx context.Context, audioPath string) (string, error)
}

func (m *MockTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	if m.TranscribeFunc != nil {
		return m.TranscribeFunc(ctx, audioPath)
	}
	return "", nil
}

// MockSynthesizer is a mock implementation of the Synthesizer port
type MockSynthesizer struct {
	SynthesizeFunc func(ctx context.Context, text string) (*domain.SynthesizedAudio, error)
}

func (m *MockSynthesizer) Synthesize(ctx context.Context, text string) (*domain.SynthesizedAudio, error) {
	if m.SynthesizeFunc != nil {
		return m.SynthesizeFunc(ctx, text)
	}
	return &domain.SynthesizedAudio{Bytes: []byte("mpeg"), MimeType: "audio/mpeg"}, nil
}

// MockChatCompleter is a mock implementation of the ChatCompleter port
type MockChatCompleter struct {
	CompleteFunc func(ctx context.Context, prompt string) (string, error)
}

func (m *MockChatCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, prompt)
	}
	return "", nil
}

// MockWeatherProvider is a mock implementation of the WeatherProvider port
type MockWeatherProvider struct {
	CurrentFunc func(ctx context.Context, location string) (*domain.WeatherReading, error)
}

func (m *MockWeatherProvider) Current(ctx context.Context, location string) (*domain.WeatherReading, error) {
	if m.CurrentFunc != nil {
		return m.CurrentFunc(ctx, location)
	}
	return &domain.WeatherReading{Location: location, TemperatureC: 20, Condition: "Clear"}, nil
}

// MockSessionCreator is a mock implementation of the SessionCreator port
type MockSessionCreator struct {
	CreateSessionFunc func(ctx context.Context) ([]byte, int, error)
}

func (m *MockSessionCreator) CreateSession(ctx context.Context) ([]byte, int, error) {
	if m.CreateSessionFunc != nil {
		return m.CreateSessionFunc(ctx)
	}
	return []byte(`{}`), 200, nil
}
