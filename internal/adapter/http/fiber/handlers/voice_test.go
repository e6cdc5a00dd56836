package handlers

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/lethub/voice-gateway/internal/domain"
	"github.com/lethub/voice-gateway/internal/mocks"
	"github.com/lethub/voice-gateway/internal/service/functions"
	"github.com/lethub/voice-gateway/internal/service/voice"
)

func newVoiceApp(
	t *testing.T,
	stt *mocks.MockTranscriber,
	chat *mocks.MockChatCompleter,
	tts *mocks.MockSynthesizer,
	weather *mocks.MockWeatherProvider,
) (*fiber.App, *VoiceHandler) {
	t.Helper()
	logger := zap.NewNop()
	staging := newTestStaging(t)
	registry := functions.NewRegistry(weather, "New York", logger)
	assistant := voice.NewAssistant(stt, chat, tts, weather, registry, "New York", logger)
	h := NewVoiceHandler(assistant, staging, logger)

	app := fiber.New()
	app.Post("/voice-ai", h.Chat)
	app.Post("/voice-ai-weather", h.Command)
	return app, h
}

func TestVoiceChat_StreamsAudioAndCleansUp(t *testing.T) {
	stt := &mocks.MockTranscriber{
		TranscribeFunc: func(ctx context.Context, audioPath string) (string, error) {
			return "tell me a joke", nil
		},
	}
	chat := &mocks.MockChatCompleter{
		CompleteFunc: func(ctx context.Context, prompt string) (string, error) {
			return "Why did the gopher cross the road?", nil
		},
	}
	tts := &mocks.MockSynthesizer{
		SynthesizeFunc: func(ctx context.Context, text string) (*domain.SynthesizedAudio, error) {
			return &domain.SynthesizedAudio{Bytes: []byte("chat-mpeg"), MimeType: "audio/mpeg"}, nil
		},
	}

	app, h := newVoiceApp(t, stt, chat, tts, &mocks.MockWeatherProvider{})

	resp, err := app.Test(newAudioRequest(t, "/voice-ai", "clip.mp3", "audio/mpeg", []byte("fake-mp3")))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "audio/mpeg" {
		t.Errorf("expected audio/mpeg, got %s", ct)
	}

	body, _ := io.ReadAll(resp.Body)
	if string(body) != "chat-mpeg" {
		t.Errorf("unexpected audio body %q", body)
	}

	assertScratchEmpty(t, h.staging)
}

func TestVoiceCommand_WeatherBranch(t *testing.T) {
	stt := &mocks.MockTranscriber{
		TranscribeFunc: func(ctx context.Context, audioPath string) (string, error) {
			return "what's the weather in Paris", nil
		},
	}
	weather := &mocks.MockWeatherProvider{
		CurrentFunc: func(ctx context.Context, location string) (*domain.WeatherReading, error) {
			return &domain.WeatherReading{Location: "Paris", TemperatureC: 18, Condition: "Partly cloudy"}, nil
		},
	}
	tts := &mocks.MockSynthesizer{
		SynthesizeFunc: func(ctx context.Context, text string) (*domain.SynthesizedAudio, error) {
			if !strings.Contains(text, "Paris") {
				t.Errorf("expected weather sentence, got %q", text)
			}
			return &domain.SynthesizedAudio{Bytes: []byte("weather-mpeg"), MimeType: "audio/mpeg"}, nil
		},
	}

	app, h := newVoiceApp(t, stt, &mocks.MockChatCompleter{}, tts, weather)

	resp, err := app.Test(newAudioRequest(t, "/voice-ai-weather", "clip.wav", "audio/wav", []byte("riff")))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	if string(body) != "weather-mpeg" {
		t.Errorf("unexpected audio body %q", body)
	}

	// Both the staged upload and the output artifact must be gone once the
	// response has been read.
	assertScratchEmpty(t, h.staging)
}

func TestVoiceCommand_PipelineFailureCleansUp(t *testing.T) {
	stt := &mocks.MockTranscriber{
		TranscribeFunc: func(ctx context.Context, audioPath string) (string, error) {
			return "", domain.ErrTranscriptionFailed
		},
	}

	app, h := newVoiceApp(t, stt, &mocks.MockChatCompleter{}, &mocks.MockSynthesizer{}, &mocks.MockWeatherProvider{})

	resp, err := app.Test(newAudioRequest(t, "/voice-ai-weather", "clip.mp3", "audio/mpeg", []byte("fake-mp3")))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}

	assertScratchEmpty(t, h.staging)
}

func TestVoiceCommand_MissingFile(t *testing.T) {
	app, _ := newVoiceApp(t, &mocks.MockTranscriber{}, &mocks.MockChatCompleter{}, &mocks.MockSynthesizer{}, &mocks.MockWeatherProvider{})

	req := newAudioRequest(t, "/voice-ai-weather", "clip.mp3", "audio/mpeg", []byte("x"))
	req.Header.Set("Content-Type", "application/json") // Break the multipart parse.

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
