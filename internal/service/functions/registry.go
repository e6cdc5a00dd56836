// Package functions holds the fixed registry of named functions the gateway
// can execute on behalf of a realtime client.
package functions

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/lethub/voice-gateway/internal/observability/telemetry"
	"github.com/lethub/voice-gateway/internal/ports"
)

// Handler executes one named function with its raw parameters.
type Handler func(ctx context.Context, params map[string]interface{}) (map[string]interface{}, error)

// Registry maps function names to handlers. Unknown names resolve to a soft
// failure payload, never an error: callers rely on the distinction between
// "not recognized" and "service broken".
type Registry struct {
	handlers map[string]Handler
	log      *zap.Logger
}

func NewRegistry(weather ports.WeatherProvider, defaultCity string, log *zap.Logger) *Registry {
	r := &Registry{
		handlers: make(map[string]Handler),
		log:      log,
	}

	r.Register("get_weather", func(ctx context.Context, params map[string]interface{}) (map[string]interface{}, error) {
		location := defaultCity
		if loc, ok := params["location"].(string); ok && loc != "" {
			location = loc
		}

		reading, err := weather.Current(ctx, location)
		if err != nil {
			return nil, fmt.Errorf("get_weather: %w", err)
		}

		return map[string]interface{}{
			"location":    reading.Location,
			"temperature": reading.TemperatureC,
			"condition":   reading.Condition,
		}, nil
	})

	r.Register("update_crm", func(ctx context.Context, params map[string]interface{}) (map[string]interface{}, error) {
		// Simulated CRM update
		return map[string]interface{}{
			"success": true,
			"message": "CRM updated successfully",
		}, nil
	})

	return r
}

// Register adds a handler under a name, replacing any existing one.
func (r *Registry) Register(name string, h Handler) {
	r.handlers[name] = h
}

// Execute runs the named function. An unknown name returns the soft-failure
// payload {"error": "Unknown function"} with a nil error.
func (r *Registry) Execute(ctx context.Context, name string, params map[string]interface{}) (map[string]interface{}, error) {
	h, ok := r.handlers[name]
	if !ok {
		r.log.Warn("Unknown function requested", zap.String("name", name))
		telemetry.FunctionCallsTotal.WithLabelValues(name, "unknown").Inc()
		return map[string]interface{}{"error": "Unknown function"}, nil
	}

	result, err := h(ctx, params)
	if err != nil {
		telemetry.FunctionCallsTotal.WithLabelValues(name, "error").Inc()
		return nil, err
	}

	telemetry.FunctionCallsTotal.WithLabelValues(name, "ok").Inc()
	return result, nil
}
