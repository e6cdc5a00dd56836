package health

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Status represents the health status
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
	StatusDegraded  Status = "degraded"
)

// CheckResult represents the result of a health check
type CheckResult struct {
	Name      string        `json:"name"`
	Status    Status        `json:"status"`
	Message   string        `json:"message,omitempty"`
	Duration  time.Duration `json:"duration_ms"`
	Timestamp time.Time     `json:"timestamp"`
}

// HealthResponse represents the overall health response
type HealthResponse struct {
	Status    Status    `json:"status"`
	Version   string    `json:"version,omitempty"`
	Uptime    string    `json:"uptime,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ReadyResponse represents the readiness response
type ReadyResponse struct {
	Ready     bool                   `json:"ready"`
	Status    Status                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]CheckResult `json:"checks"`
}

// Checker defines a health check function
type Checker func(ctx context.Context) CheckResult

// Config holds health service configuration
type Config struct {
	Version       string
	ScratchDir    string
	OpenAIKeySet  bool
	WeatherKeySet bool
}

// Service handles health checks. The gateway has no database or cache; what
// matters is that the scratch directory is writable and provider credentials
// are present.
type Service struct {
	cfg       Config
	startTime time.Time
	checkers  map[string]Checker
	log       *zap.Logger
	mu        sync.RWMutex
}

// NewService creates a new health service
func NewService(cfg Config, log *zap.Logger) *Service {
	s := &Service{
		cfg:       cfg,
		startTime: time.Now(),
		checkers:  make(map[string]Checker),
		log:       log,
	}

	s.RegisterChecker("scratch_dir", s.checkScratchDir)
	s.RegisterChecker("providers", s.checkProviders)

	return s
}

// RegisterChecker registers a custom health checker
func (s *Service) RegisterChecker(name string, checker Checker) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkers[name] = checker
}

// Health performs a basic liveness check
func (s *Service) Health(ctx context.Context) *HealthResponse {
	return &HealthResponse{
		Status:    StatusHealthy,
		Version:   s.cfg.Version,
		Uptime:    time.Since(s.startTime).String(),
		Timestamp: time.Now(),
	}
}

// Ready runs all registered checks and reports readiness
func (s *Service) Ready(ctx context.Context) *ReadyResponse {
	s.mu.RLock()
	checkers := make(map[string]Checker, len(s.checkers))
	for k, v := range s.checkers {
		checkers[k] = v
	}
	s.mu.RUnlock()

	results := make(map[string]CheckResult)
	var wg sync.WaitGroup
	var mu sync.Mutex

	for name, checker := range checkers {
		wg.Add(1)
		go func(name string, checker Checker) {
			defer wg.Done()

			checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()

			result := checker(checkCtx)

			mu.Lock()
			results[name] = result
			mu.Unlock()
		}(name, checker)
	}

	wg.Wait()

	overallStatus := StatusHealthy
	allReady := true

	for _, result := range results {
		if result.Status == StatusUnhealthy {
			overallStatus = StatusUnhealthy
			allReady = false
		} else if result.Status == StatusDegraded && overallStatus != StatusUnhealthy {
			overallStatus = StatusDegraded
		}
	}

	return &ReadyResponse{
		Ready:     allReady,
		Status:    overallStatus,
		Timestamp: time.Now(),
		Checks:    results,
	}
}

// checkScratchDir verifies the upload scratch directory accepts writes.
func (s *Service) checkScratchDir(ctx context.Context) CheckResult {
	start := time.Now()
	result := CheckResult{
		Name:      "scratch_dir",
		Timestamp: start,
	}

	probe := filepath.Join(s.cfg.ScratchDir, ".healthcheck-"+uuid.NewString())
	if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
		result.Status = StatusUnhealthy
		result.Message = "scratch directory not writable: " + err.Error()
		result.Duration = time.Since(start)
		return result
	}
	os.Remove(probe)

	result.Status = StatusHealthy
	result.Duration = time.Since(start)
	return result
}

// checkProviders reports whether provider credentials are configured. Missing
// keys degrade rather than fail readiness: the server can still serve
// /health and /execute-function's soft failures.
func (s *Service) checkProviders(ctx context.Context) CheckResult {
	start := time.Now()
	result := CheckResult{
		Name:      "providers",
		Timestamp: start,
		Status:    StatusHealthy,
	}

	switch {
	case !s.cfg.OpenAIKeySet && !s.cfg.WeatherKeySet:
		result.Status = StatusDegraded
		result.Message = "OpenAI and weather API keys not configured"
	case !s.cfg.OpenAIKeySet:
		result.Status = StatusDegraded
		result.Message = "OpenAI API key not configured"
	case !s.cfg.WeatherKeySet:
		result.Status = StatusDegraded
		result.Message = "weather API key not configured"
	}

	result.Duration = time.Since(start)
	return result
}
