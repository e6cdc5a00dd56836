package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/lethub/voice-gateway/internal/domain"
	"github.com/lethub/voice-gateway/internal/mocks"
	"github.com/lethub/voice-gateway/internal/service/audio"
)

func newTestStaging(t *testing.T) *audio.Staging {
	t.Helper()
	s, err := audio.NewStaging(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatalf("NewStaging failed: %v", err)
	}
	return s
}

// newAudioRequest builds a multipart POST with an "audio" file field.
func newAudioRequest(t *testing.T, target, filename, mimeType string, data []byte) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="audio"; filename="`+filename+`"`)
	header.Set("Content-Type", mimeType)

	part, err := w.CreatePart(header)
	if err != nil {
		t.Fatalf("failed to create form part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("failed to write form part: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func assertScratchEmpty(t *testing.T, staging *audio.Staging) {
	t.Helper()
	entries, err := os.ReadDir(staging.Dir())
	if err != nil {
		t.Fatalf("failed to read scratch dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty scratch dir, found %d files", len(entries))
	}
}

func TestTranscribe_Success(t *testing.T) {
	// Arrange
	staging := newTestStaging(t)
	stt := &mocks.MockTranscriber{
		TranscribeFunc: func(ctx context.Context, audioPath string) (string, error) {
			if _, err := os.Stat(audioPath); err != nil {
				t.Errorf("staged file should exist during transcription: %v", err)
			}
			return "hello world", nil
		},
	}

	app := fiber.New()
	h := NewSpeechHandler(stt, &mocks.MockSynthesizer{}, staging, zap.NewNop())
	app.Post("/stt", h.Transcribe)

	// Act
	resp, err := app.Test(newAudioRequest(t, "/stt", "clip.mp3", "audio/mpeg", []byte("fake-mp3")))

	// Assert
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result["transcription"] != "hello world" {
		t.Errorf("expected transcription 'hello world', got %q", result["transcription"])
	}

	assertScratchEmpty(t, staging)
}

func TestTranscribe_MissingFile(t *testing.T) {
	staging := newTestStaging(t)
	app := fiber.New()
	h := NewSpeechHandler(&mocks.MockTranscriber{}, &mocks.MockSynthesizer{}, staging, zap.NewNop())
	app.Post("/stt", h.Transcribe)

	req := httptest.NewRequest(http.MethodPost, "/stt", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestTranscribe_UnsupportedFormat(t *testing.T) {
	staging := newTestStaging(t)
	app := fiber.New()
	h := NewSpeechHandler(&mocks.MockTranscriber{}, &mocks.MockSynthesizer{}, staging, zap.NewNop())
	app.Post("/stt", h.Transcribe)

	resp, err := app.Test(newAudioRequest(t, "/stt", "doc.pdf", "application/pdf", []byte("%PDF")))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	assertScratchEmpty(t, staging)
}

func TestTranscribe_FailureStillCleansUp(t *testing.T) {
	staging := newTestStaging(t)
	stt := &mocks.MockTranscriber{
		TranscribeFunc: func(ctx context.Context, audioPath string) (string, error) {
			return "", domain.ErrTranscriptionFailed
		},
	}

	app := fiber.New()
	h := NewSpeechHandler(stt, &mocks.MockSynthesizer{}, staging, zap.NewNop())
	app.Post("/stt", h.Transcribe)

	resp, err := app.Test(newAudioRequest(t, "/stt", "clip.mp3", "audio/mpeg", []byte("fake-mp3")))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	assertScratchEmpty(t, staging)
}

func TestSynthesize_Success(t *testing.T) {
	staging := newTestStaging(t)
	tts := &mocks.MockSynthesizer{
		SynthesizeFunc: func(ctx context.Context, text string) (*domain.SynthesizedAudio, error) {
			if text != "hello" {
				t.Errorf("expected text 'hello', got %q", text)
			}
			return &domain.SynthesizedAudio{Bytes: []byte("mpeg-bytes"), MimeType: "audio/mpeg"}, nil
		},
	}

	app := fiber.New()
	h := NewSpeechHandler(&mocks.MockTranscriber{}, tts, staging, zap.NewNop())
	app.Post("/tts", h.Synthesize)

	req := httptest.NewRequest(http.MethodPost, "/tts", bytes.NewReader([]byte(`{"text":"hello"}`)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
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
	if cl := resp.Header.Get("Content-Length"); cl != "10" {
		t.Errorf("expected Content-Length 10, got %s", cl)
	}

	body, _ := io.ReadAll(resp.Body)
	if string(body) != "mpeg-bytes" {
		t.Errorf("unexpected body %q", body)
	}
}

func TestSynthesize_FailureReturnsJSONError(t *testing.T) {
	staging := newTestStaging(t)
	tts := &mocks.MockSynthesizer{
		SynthesizeFunc: func(ctx context.Context, text string) (*domain.SynthesizedAudio, error) {
			return nil, domain.ErrSynthesisFailed
		},
	}

	app := fiber.New()
	h := NewSpeechHandler(&mocks.MockTranscriber{}, tts, staging, zap.NewNop())
	app.Post("/tts", h.Synthesize)

	req := httptest.NewRequest(http.MethodPost, "/tts", bytes.NewReader([]byte(`{"text":"hello"}`)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}

	var result map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("expected JSON error body: %v", err)
	}
	if result["error"] == "" {
		t.Error("expected error message in body")
	}
}
