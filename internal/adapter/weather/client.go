// Package weather is a client for the WeatherAPI.com current-conditions
// endpoint.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/lethub/voice-gateway/internal/domain"
)

// Client calls the weather provider. One instance is shared across requests.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	log        *zap.Logger
}

// Config holds weather client configuration
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// DefaultConfig returns default weather client configuration
func DefaultConfig() *Config {
	return &Config{
		BaseURL: "https://api.weatherapi.com/v1",
		Timeout: 30 * time.Second,
	}
}

type currentResponse struct {
	Location struct {
		Name string `json:"name"`
	} `json:"location"`
	Current struct {
		TempC     float64 `json:"temp_c"`
		Condition struct {
			Text string `json:"text"`
		} `json:"condition"`
	} `json:"current"`
}

// NewClient creates a new WeatherAPI client
func NewClient(cfg *Config, log *zap.Logger) *Client {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		log:     log,
	}
}

// Current fetches current conditions for a location string (city name, zip,
// or lat/lon as accepted by the provider).
func (c *Client) Current(ctx context.Context, location string) (*domain.WeatherReading, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: weather API key not configured", domain.ErrExternalService)
	}

	endpoint := fmt.Sprintf("%s/current.json?key=%s&q=%s",
		c.baseURL,
		url.QueryEscape(c.apiKey),
		url.QueryEscape(location),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", domain.ErrExternalService, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExternalService, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.log.Warn("Weather API returned error",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)),
		)
		return nil, fmt.Errorf("%w: weather API status %d", domain.ErrExternalService, resp.StatusCode)
	}

	var result currentResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", domain.ErrExternalService, err)
	}

	return &domain.WeatherReading{
		Location:     result.Location.Name,
		TemperatureC: result.Current.TempC,
		Condition:    result.Current.Condition.Text,
	}, nil
}
