package billing

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/risklens/risklens/internal/core/ports"
)

// APIUsageTracker accumulates the characters sent to the remote
// summarization API into one counter per UTC day. The numbers feed
// provider-billing review; losing an update is acceptable.
type APIUsageTracker struct {
	store ports.KeyValueStore
	now   func() time.Time
}

func NewAPIUsageTracker(store ports.KeyValueStore) *APIUsageTracker {
	return &APIUsageTracker{store: store, now: time.Now}
}

func apiUsageKey(t time.Time) string {
	return "api_usage:" + t.UTC().Format("2006-01-02")
}

func (t *APIUsageTracker) RecordCharacters(ctx context.Context, n int) {
	if n <= 0 {
		return
	}
	key := apiUsageKey(t.now())
	raw, _, err := t.store.Get(ctx, key)
	if err != nil {
		slog.Warn("api_usage_read_failed", "key", key, "error", err)
		return
	}
	total, _ := strconv.Atoi(string(raw))
	if err := t.store.Put(ctx, key, []byte(strconv.Itoa(total+n))); err != nil {
		slog.Warn("api_usage_write_failed", "key", key, "error", err)
	}
}
