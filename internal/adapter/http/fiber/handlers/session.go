package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/lethub/voice-gateway/internal/observability/telemetry"
	"github.com/lethub/voice-gateway/internal/ports"
)

// SessionHandler serves GET /session, the realtime-session bootstrap
// passthrough.
type SessionHandler struct {
	sessions ports.SessionCreator
	log      *zap.Logger
}

func NewSessionHandler(sessions ports.SessionCreator, log *zap.Logger) *SessionHandler {
	return &SessionHandler{sessions: sessions, log: log}
}

// Create relays the provider's session response verbatim, including provider
// error payloads and their status codes.
func (h *SessionHandler) Create(c *fiber.Ctx) error {
	telemetry.RealtimeSessionsTotal.Inc()

	body, status, err := h.sessions.CreateSession(c.Context())
	if err != nil {
		h.log.Error("Failed to create realtime session", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create realtime session"})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(status).Send(body)
}
