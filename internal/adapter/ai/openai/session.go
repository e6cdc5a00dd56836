package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/lethub/voice-gateway/internal/domain"
	"github.com/lethub/voice-gateway/pkg/config"
)

// SessionClient requests ephemeral realtime sessions. It talks to the REST
// endpoint directly instead of going through the SDK: the provider's JSON
// (and any error payload) must reach the caller byte for byte.
type SessionClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	voice      string
	log        *zap.Logger
}

func NewSessionClient(cfg config.OpenAIConfig, log *zap.Logger) *SessionClient {
	return &SessionClient{
		httpClient: &http.Client{},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		model:      cfg.RealtimeModel,
		voice:      cfg.RealtimeVoice,
		log:        log,
	}
}

type sessionRequest struct {
	Model string `json:"model"`
	Voice string `json:"voice"`
}

// CreateSession issues one POST to the realtime sessions endpoint with the
// fixed model/voice configuration and returns the raw response body and
// status. Non-2xx provider responses are relayed, not reinterpreted.
func (c *SessionClient) CreateSession(ctx context.Context) ([]byte, int, error) {
	payload, err := json.Marshal(sessionRequest{Model: c.model, Voice: c.voice})
	if err != nil {
		return nil, 0, fmt.Errorf("%w: marshal session request: %v", domain.ErrExternalService, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/realtime/sessions", bytes.NewReader(payload))
	if err != nil {
		return nil, 0, fmt.Errorf("%w: create request: %v", domain.ErrExternalService, err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", domain.ErrExternalService, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: read response: %v", domain.ErrExternalService, err)
	}

	c.log.Info("Created realtime session",
		zap.String("model", c.model),
		zap.Int("status", resp.StatusCode),
	)

	return body, resp.StatusCode, nil
}
