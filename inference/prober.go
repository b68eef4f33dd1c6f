package inference

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Vividata-Research/Atlas-OCR/core"
)

// DefaultHealthTimeout bounds one liveness probe. Unlike the recognition
// call itself, the probe is always timeout-bounded.
const DefaultHealthTimeout = 30 * time.Second

// Prober checks whether the inference backend is ready to take work.
type Prober struct {
	healthURL string
	timeout   time.Duration
	client    *http.Client
	logger    *slog.Logger
}

// ProberOption configures a Prober.
type ProberOption func(*Prober)

// WithProbeTimeout sets the per-probe timeout. Default is
// DefaultHealthTimeout.
func WithProbeTimeout(timeout time.Duration) ProberOption {
	return func(p *Prober) {
		if timeout > 0 {
			p.timeout = timeout
		}
	}
}

// WithProberLogger sets a custom logger. Default is slog.Default().
func WithProberLogger(logger *slog.Logger) ProberOption {
	return func(p *Prober) {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
	}
}

// NewProber creates a Prober for the backend at backendURL.
func NewProber(backendURL string, opts ...ProberOption) *Prober {
	p := &Prober{
		healthURL: backendURL + "/health",
		timeout:   DefaultHealthTimeout,
		client:    &http.Client{},
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Ping probes the backend's health endpoint once. Any failure, non-200
// status or timeout wraps core.ErrUpstreamUnavailable.
func (p *Prober) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.healthURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", core.ErrUpstreamUnavailable, err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Debug("health probe failed", "url", p.healthURL, "error", err)
		return fmt.Errorf("%w: %w", core.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %w: %d", core.ErrUpstreamUnavailable, ErrNotReady, resp.StatusCode)
	}
	return nil
}
