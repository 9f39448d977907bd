package auth

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/risklens/risklens/internal/core/domain"
	"github.com/risklens/risklens/internal/core/ports"
)

// KeyStore resolves issued API keys from the accounts bucket. Lookup
// misses, revoked keys and expired keys all resolve to nil without
// error so the caller degrades to anonymous.
type KeyStore struct {
	store ports.KeyValueStore
	now   func() time.Time
}

func NewKeyStore(store ports.KeyValueStore) *KeyStore {
	return &KeyStore{store: store, now: time.Now}
}

func apiKeyKey(key string) string {
	return "api_key:" + key
}

func (s *KeyStore) Lookup(ctx context.Context, key string) (*domain.APIKeyRecord, error) {
	raw, found, err := s.store.Get(ctx, apiKeyKey(key))
	if err != nil {
		return nil, domain.WrapError(domain.ErrUpstream, "read api key", err)
	}
	if !found {
		return nil, nil
	}

	var record domain.APIKeyRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, domain.WrapError(domain.ErrUpstream, "decode api key", err)
	}
	if !record.Active {
		return nil, nil
	}
	now := s.now().UTC()
	if record.ExpiresAt != "" {
		expires, err := time.Parse(time.RFC3339, record.ExpiresAt)
		if err != nil || !expires.After(now) {
			return nil, nil
		}
	}

	// Best effort last-used stamp; a failed write never blocks auth.
	record.LastUsed = now.Format(time.RFC3339)
	if updated, err := json.Marshal(record); err == nil {
		if err := s.store.Put(ctx, apiKeyKey(key), updated); err != nil {
			slog.Warn("api_key_touch_failed", "key_id", record.ID, "error", err)
		}
	}
	return &record, nil
}
