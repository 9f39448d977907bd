package huggingface

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/risklens/risklens/internal/infrastructure/resilience"
)

type HTTPStatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPStatusError) Error() string {
	if e == nil {
		return "huggingface status error"
	}
	if strings.TrimSpace(e.Body) == "" {
		return fmt.Sprintf("huggingface status: %s", e.Status)
	}
	return fmt.Sprintf("huggingface status: %s: %s", e.Status, strings.TrimSpace(e.Body))
}

// ClassifyError decides what counts toward tripping the circuit. Client
// mistakes (bad token, malformed request) are not upstream health
// signals; timeouts, 5xx and 429 are.
func ClassifyError(err error) resilience.Classification {
	if err == nil {
		return resilience.Classification{}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return resilience.Classification{RecordFailure: false}
	}
	if resilience.IsCircuitOpen(err) {
		return resilience.Classification{RecordFailure: true}
	}

	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		switch {
		case statusErr.StatusCode == http.StatusTooManyRequests,
			statusErr.StatusCode >= http.StatusInternalServerError:
			return resilience.Classification{RecordFailure: true}
		default:
			return resilience.Classification{RecordFailure: false}
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return resilience.Classification{RecordFailure: true}
	}

	return resilience.Classification{RecordFailure: true}
}
