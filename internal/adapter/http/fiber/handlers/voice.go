package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/lethub/voice-gateway/internal/service/audio"
	"github.com/lethub/voice-gateway/internal/service/voice"
)

// VoiceHandler serves the full voice pipeline endpoints. Every scratch file a
// request creates is removed before the handler returns, success or failure.
type VoiceHandler struct {
	assistant *voice.Assistant
	staging   *audio.Staging
	log       *zap.Logger
}

func NewVoiceHandler(assistant *voice.Assistant, staging *audio.Staging, log *zap.Logger) *VoiceHandler {
	return &VoiceHandler{
		assistant: assistant,
		staging:   staging,
		log:       log,
	}
}

// Chat handles POST /voice-ai: speech in, general chat reply spoken back.
// The synthesized audio is streamed directly.
func (h *VoiceHandler) Chat(c *fiber.Ctx) error {
	staged, err := stageUpload(c, h.staging)
	if err != nil {
		return uploadError(c, err)
	}
	defer h.staging.Remove(staged)

	out, err := h.assistant.ProcessChat(c.Context(), staged.Path)
	if err != nil {
		h.log.Error("Voice pipeline failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong"})
	}

	c.Set(fiber.HeaderContentType, out.MimeType)
	c.Set(fiber.HeaderContentLength, strconv.Itoa(len(out.Bytes)))
	return c.Send(out.Bytes)
}

// Command handles POST /voice-ai-weather: speech in, intent-routed action
// (weather lookup, CRM update, or chat), reply spoken back. The synthesized
// audio is written to a scratch file and sent from disk; both the input and
// output artifacts are removed once delivery completes.
func (h *VoiceHandler) Command(c *fiber.Ctx) error {
	staged, err := stageUpload(c, h.staging)
	if err != nil {
		return uploadError(c, err)
	}
	defer h.staging.Remove(staged)

	out, err := h.assistant.ProcessCommand(c.Context(), staged.Path)
	if err != nil {
		h.log.Error("Voice pipeline failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong"})
	}

	artifact, err := h.staging.StoreArtifact(out.Bytes)
	if err != nil {
		h.log.Error("Failed to write audio artifact", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong"})
	}
	defer h.staging.RemovePath(artifact)

	c.Set(fiber.HeaderContentType, out.MimeType)
	return c.SendFile(artifact)
}
