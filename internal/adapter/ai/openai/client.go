// Package openai wraps the OpenAI speech-to-text, text-to-speech,
// chat-completion and realtime-session APIs behind the gateway's ports.
package openai

import (
	"context"
	"fmt"
	"io"
	"os"

	openaigo "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"

	"github.com/lethub/voice-gateway/internal/domain"
	"github.com/lethub/voice-gateway/pkg/config"
)

// Client adapts the official OpenAI SDK to the Transcriber, Synthesizer and
// ChatCompleter ports. One instance is constructed at startup and shared
// across requests.
type Client struct {
	api openaigo.Client
	cfg config.OpenAIConfig
	log *zap.Logger
}

func NewClient(cfg config.OpenAIConfig, log *zap.Logger) *Client {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &Client{
		api: openaigo.NewClient(opts...),
		cfg: cfg,
		log: log,
	}
}

// Transcribe sends a staged audio file to the Whisper API and returns the
// recognized text.
func (c *Client) Transcribe(ctx context.Context, audioPath string) (string, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return "", fmt.Errorf("%w: open audio: %v", domain.ErrTranscriptionFailed, err)
	}
	defer f.Close()

	resp, err := c.api.Audio.Transcriptions.New(ctx, openaigo.AudioTranscriptionNewParams{
		File:     f,
		Model:    openaigo.AudioModel(c.cfg.WhisperModel),
		Language: openaigo.String(c.cfg.Language),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrTranscriptionFailed, err)
	}

	c.log.Info("Transcription completed",
		zap.String("model", c.cfg.WhisperModel),
		zap.Int("chars", len(resp.Text)),
	)

	return resp.Text, nil
}

// Synthesize converts response text into MPEG audio via the speech API.
func (c *Client) Synthesize(ctx context.Context, text string) (*domain.SynthesizedAudio, error) {
	resp, err := c.api.Audio.Speech.New(ctx, openaigo.AudioSpeechNewParams{
		Model: openaigo.SpeechModel(c.cfg.TTSModel),
		Input: text,
		Voice: openaigo.AudioSpeechNewParamsVoice(c.cfg.Voice),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSynthesisFailed, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read audio: %v", domain.ErrSynthesisFailed, err)
	}

	c.log.Info("Generated speech audio",
		zap.String("voice", c.cfg.Voice),
		zap.Int("bytes", len(data)),
	)

	return &domain.SynthesizedAudio{Bytes: data, MimeType: "audio/mpeg"}, nil
}

// Complete forwards a single-turn prompt to the chat-completion API. No
// conversation history is kept between calls.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.api.Chat.Completions.New(ctx, openaigo.ChatCompletionNewParams{
		Messages: []openaigo.ChatCompletionMessageParamUnion{
			openaigo.UserMessage(prompt),
		},
		Model: openaigo.ChatModel(c.cfg.ChatModel),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrExternalService, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", domain.ErrExternalService)
	}

	return resp.Choices[0].Message.Content, nil
}
