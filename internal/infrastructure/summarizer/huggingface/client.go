// Package huggingface calls the hosted inference API for abstractive
// contract summaries. The adapter never fails: any rejection, outage or
// open circuit degrades to the local extractive fallback.
package huggingface

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/risklens/risklens/internal/core/domain"
	"github.com/risklens/risklens/internal/core/summary"
	"github.com/risklens/risklens/internal/infrastructure/resilience"
)

// The inference endpoint truncates long documents poorly, so input is
// capped client-side before submission.
const maxInputChars = 1024

// UsageReporter receives the character volume of successful remote
// calls.
type UsageReporter interface {
	RecordCharacters(ctx context.Context, n int)
}

type Config struct {
	BaseURL string
	Model   string
	Token   string
	Timeout time.Duration

	// RequestsPerMinute throttles outbound calls. Zero disables the
	// throttle.
	RequestsPerMinute int

	Breaker  *resilience.Breaker
	Reporter UsageReporter
}

type Client struct {
	baseURL    string
	model      string
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *resilience.Breaker
	reporter   UsageReporter
}

func New(cfg Config) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api-inference.huggingface.co"
	}
	model := cfg.Model
	if model == "" {
		model = "facebook/bart-large-cnn"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	breaker := cfg.Breaker
	if breaker == nil {
		breaker = resilience.New("huggingface", resilience.DefaultConfig(), ClassifyError)
	}
	var limiter *rate.Limiter
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60.0), cfg.RequestsPerMinute)
	}
	return &Client{
		baseURL:    baseURL,
		model:      model,
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    limiter,
		breaker:    breaker,
		reporter:   cfg.Reporter,
	}
}

// Summarize returns the remote abstractive summary, or the extractive
// fallback built from the full untruncated text when the remote path is
// unavailable.
func (c *Client) Summarize(ctx context.Context, text string) domain.Summary {
	input := text
	if len(input) > maxInputChars {
		input = input[:maxInputChars]
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			slog.Warn("summarizer_throttle_wait_failed", "error", err)
			return fallback(text)
		}
	}

	var remote string
	err := c.breaker.Do(ctx, func(ctx context.Context) error {
		out, err := c.postSummarize(ctx, input)
		if err != nil {
			return err
		}
		remote = out
		return nil
	})
	if err != nil {
		slog.Warn("summarizer_remote_failed", "model", c.model, "error", err)
		return fallback(text)
	}
	if strings.TrimSpace(remote) == "" {
		return fallback(text)
	}

	if c.reporter != nil {
		c.reporter.RecordCharacters(ctx, len(input))
	}
	return domain.Summary{Text: remote, Source: domain.SummaryRemote}
}

func fallback(text string) domain.Summary {
	return domain.Summary{Text: summary.Fallback(text), Source: domain.SummaryFallback}
}
