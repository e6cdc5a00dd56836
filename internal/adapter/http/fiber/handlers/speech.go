package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/lethub/voice-gateway/internal/domain"
	"github.com/lethub/voice-gateway/internal/observability/telemetry"
	"github.com/lethub/voice-gateway/internal/ports"
	"github.com/lethub/voice-gateway/internal/service/audio"
)

// SpeechHandler serves the plain speech-to-text and text-to-speech endpoints.
type SpeechHandler struct {
	stt     ports.Transcriber
	tts     ports.Synthesizer
	staging *audio.Staging
	log     *zap.Logger
}

func NewSpeechHandler(stt ports.Transcriber, tts ports.Synthesizer, staging *audio.Staging, log *zap.Logger) *SpeechHandler {
	return &SpeechHandler{
		stt:     stt,
		tts:     tts,
		staging: staging,
		log:     log,
	}
}

// Transcribe handles POST /stt: multipart field "audio" in, transcription out.
func (h *SpeechHandler) Transcribe(c *fiber.Ctx) error {
	staged, err := stageUpload(c, h.staging)
	if err != nil {
		return uploadError(c, err)
	}
	defer h.staging.Remove(staged)

	h.log.Info("Received speech-to-text request",
		zap.String("file", staged.OriginalName),
		zap.Int64("size", staged.Size),
	)

	text, err := h.stt.Transcribe(c.Context(), staged.Path)
	if err != nil {
		telemetry.TranscriptionsTotal.WithLabelValues("error").Inc()
		h.log.Error("STT failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "STT processing failed"})
	}

	telemetry.TranscriptionsTotal.WithLabelValues("ok").Inc()
	return c.JSON(fiber.Map{"transcription": text})
}

type synthesizeRequest struct {
	Text string `json:"text"`
}

// Synthesize handles POST /tts: JSON {"text"} in, audio/mpeg bytes out.
func (h *SpeechHandler) Synthesize(c *fiber.Ctx) error {
	var req synthesizeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}

	h.log.Info("Received text-to-speech request", zap.Int("chars", len(req.Text)))

	out, err := h.tts.Synthesize(c.Context(), req.Text)
	if err != nil {
		telemetry.SynthesesTotal.WithLabelValues("error").Inc()
		h.log.Error("TTS failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "TTS processing failed"})
	}

	telemetry.SynthesesTotal.WithLabelValues("ok").Inc()

	c.Set(fiber.HeaderContentType, out.MimeType)
	c.Set(fiber.HeaderContentLength, strconv.Itoa(len(out.Bytes)))
	return c.Send(out.Bytes)
}

// stageUpload pulls the multipart "audio" field and persists it to the
// scratch directory. The caller owns the returned file.
func stageUpload(c *fiber.Ctx, staging *audio.Staging) (*domain.StagedAudio, error) {
	fh, err := c.FormFile("audio")
	if err != nil {
		return nil, domain.ErrMissingFile
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return staging.Store(fh.Filename, fh.Header.Get("Content-Type"), f)
}

// uploadError maps staging failures to HTTP responses.
func uploadError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrMissingFile):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No file uploaded"})
	case errors.Is(err, domain.ErrUnsupportedFormat):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid file format"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store uploaded file"})
	}
}
