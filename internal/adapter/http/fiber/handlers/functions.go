package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/lethub/voice-gateway/internal/service/functions"
)

// FunctionHandler serves POST /execute-function for realtime (WebRTC) clients
// that ask the gateway to run a named function.
type FunctionHandler struct {
	registry *functions.Registry
	log      *zap.Logger
}

func NewFunctionHandler(registry *functions.Registry, log *zap.Logger) *FunctionHandler {
	return &FunctionHandler{registry: registry, log: log}
}

type executeFunctionRequest struct {
	Name       string                 `json:"name"`
	Parameters map[string]interface{} `json:"parameters"`
}

// Execute runs a named function. An unknown name is a 200 with
// result.error, not a 500: the request was understood, just not recognized.
func (h *FunctionHandler) Execute(c *fiber.Ctx) error {
	var req executeFunctionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}

	h.log.Info("Executing function",
		zap.String("name", req.Name),
		zap.Any("parameters", req.Parameters),
	)

	result, err := h.registry.Execute(c.Context(), req.Name, req.Parameters)
	if err != nil {
		h.log.Error("Function execution failed", zap.String("name", req.Name), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Function execution failed"})
	}

	return c.JSON(fiber.Map{"result": result})
}
