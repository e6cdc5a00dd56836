// Package voice implements the voice-interaction pipeline: speech-in, intent
// routing, action dispatch, speech-out.
package voice

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/lethub/voice-gateway/internal/domain"
	"github.com/lethub/voice-gateway/internal/observability/telemetry"
	"github.com/lethub/voice-gateway/internal/ports"
	"github.com/lethub/voice-gateway/internal/service/functions"
)

// Assistant runs one pipeline instance per request. It holds no per-request
// state; all collaborators are injected at startup so tests can substitute
// fakes.
type Assistant struct {
	stt          ports.Transcriber
	chat         ports.ChatCompleter
	tts          ports.Synthesizer
	weather      ports.WeatherProvider
	functions    *functions.Registry
	fallbackCity string
	log          *zap.Logger
}

func NewAssistant(
	stt ports.Transcriber,
	chat ports.ChatCompleter,
	tts ports.Synthesizer,
	weather ports.WeatherProvider,
	registry *functions.Registry,
	fallbackCity string,
	log *zap.Logger,
) *Assistant {
	return &Assistant{
		stt:          stt,
		chat:         chat,
		tts:          tts,
		weather:      weather,
		functions:    registry,
		fallbackCity: fallbackCity,
		log:          log,
	}
}

// ProcessChat transcribes the staged audio, answers it as a single-turn chat
// prompt and synthesizes the reply. No intent routing.
func (a *Assistant) ProcessChat(ctx context.Context, audioPath string) (*domain.SynthesizedAudio, error) {
	start := time.Now()
	defer func() { telemetry.PipelineLatency.Observe(time.Since(start).Seconds()) }()

	transcript, err := a.stt.Transcribe(ctx, audioPath)
	if err != nil {
		telemetry.VoiceCommandsTotal.WithLabelValues(string(domain.IntentGeneralChat), "error").Inc()
		return nil, err
	}

	a.log.Info("User said", zap.String("transcript", transcript))

	reply, err := a.chat.Complete(ctx, transcript)
	if err != nil {
		telemetry.VoiceCommandsTotal.WithLabelValues(string(domain.IntentGeneralChat), "error").Inc()
		return nil, err
	}

	out, err := a.tts.Synthesize(ctx, reply)
	if err != nil {
		telemetry.VoiceCommandsTotal.WithLabelValues(string(domain.IntentGeneralChat), "error").Inc()
		return nil, err
	}

	telemetry.VoiceCommandsTotal.WithLabelValues(string(domain.IntentGeneralChat), "ok").Inc()
	return out, nil
}

// ProcessCommand runs the full pipeline: transcribe, classify the transcript,
// dispatch the matching action and synthesize the response text.
func (a *Assistant) ProcessCommand(ctx context.Context, audioPath string) (*domain.SynthesizedAudio, error) {
	start := time.Now()
	defer func() { telemetry.PipelineLatency.Observe(time.Since(start).Seconds()) }()

	transcript, err := a.stt.Transcribe(ctx, audioPath)
	if err != nil {
		telemetry.VoiceCommandsTotal.WithLabelValues("none", "error").Inc()
		return nil, err
	}

	intent := RouteIntent(transcript, a.fallbackCity)

	a.log.Info("User said",
		zap.String("transcript", transcript),
		zap.String("intent", string(intent.Kind)),
	)

	result, err := a.Dispatch(ctx, transcript, intent)
	if err != nil {
		telemetry.VoiceCommandsTotal.WithLabelValues(string(intent.Kind), "error").Inc()
		return nil, err
	}

	a.log.Info("AI response", zap.String("text", result.ResponseText))

	out, err := a.tts.Synthesize(ctx, result.ResponseText)
	if err != nil {
		telemetry.VoiceCommandsTotal.WithLabelValues(string(intent.Kind), "error").Inc()
		return nil, err
	}

	telemetry.VoiceCommandsTotal.WithLabelValues(string(intent.Kind), "ok").Inc()
	return out, nil
}

// Dispatch performs the action a classified intent asks for and produces the
// response text to speak back.
func (a *Assistant) Dispatch(ctx context.Context, transcript string, intent domain.Intent) (*domain.ActionResult, error) {
	switch intent.Kind {
	case domain.IntentWeatherQuery:
		reading, err := a.weather.Current(ctx, intent.Location)
		if err != nil {
			return nil, err
		}
		return &domain.ActionResult{
			ResponseText: fmt.Sprintf("The weather in %s is %s with a temperature of %.0f degrees Celsius.",
				reading.Location, reading.Condition, reading.TemperatureC),
			Payload: map[string]interface{}{
				"location":    reading.Location,
				"temperature": reading.TemperatureC,
				"condition":   reading.Condition,
			},
		}, nil

	case domain.IntentFunctionCall:
		result, err := a.functions.Execute(ctx, intent.Function, intent.Parameters)
		if err != nil {
			return nil, err
		}
		text := "Done."
		if msg, ok := result["message"].(string); ok {
			text = msg
		} else if _, ok := result["error"]; ok {
			text = "Sorry, I don't know how to help with that."
		}
		return &domain.ActionResult{ResponseText: text, Payload: result}, nil

	default:
		reply, err := a.chat.Complete(ctx, transcript)
		if err != nil {
			return nil, err
		}
		return &domain.ActionResult{ResponseText: reply}, nil
	}
}
