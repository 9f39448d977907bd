// Package billing keeps subscription and usage records in the shared
// key-value store. Records are plain JSON so the billing webhook
// processor and this service agree on shape.
package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/risklens/risklens/internal/core/domain"
	"github.com/risklens/risklens/internal/core/ports"
)

// Ledger reads subscription state and counts successful analyses per
// identity per calendar month.
type Ledger struct {
	accounts ports.KeyValueStore
	usage    ports.KeyValueStore
	now      func() time.Time
}

func NewLedger(accounts, usage ports.KeyValueStore) *Ledger {
	return &Ledger{accounts: accounts, usage: usage, now: time.Now}
}

func NewLedgerWithClock(accounts, usage ports.KeyValueStore, now func() time.Time) *Ledger {
	return &Ledger{accounts: accounts, usage: usage, now: now}
}

func subscriptionKey(identity string) string {
	return "subscription:" + identity
}

func usageKey(identity string, t time.Time) string {
	return fmt.Sprintf("usage:%s:%s", identity, t.UTC().Format("2006-01"))
}

func (l *Ledger) GetSubscription(ctx context.Context, identity string) (domain.SubscriptionRecord, error) {
	raw, found, err := l.accounts.Get(ctx, subscriptionKey(identity))
	if err != nil {
		return domain.SubscriptionRecord{}, domain.WrapError(domain.ErrUpstream, "read subscription", err)
	}
	if !found {
		return domain.DefaultSubscription(), nil
	}
	var sub domain.SubscriptionRecord
	if err := json.Unmarshal(raw, &sub); err != nil {
		return domain.SubscriptionRecord{}, domain.WrapError(domain.ErrUpstream, "decode subscription", err)
	}
	if sub.Tier == "" {
		sub.Tier = domain.TierFree
	}
	if sub.Status == "" {
		sub.Status = domain.SubscriptionActive
	}
	return sub, nil
}

func (l *Ledger) GetUsage(ctx context.Context, identity string) (domain.UsageCounter, error) {
	now := l.now().UTC()
	raw, found, err := l.usage.Get(ctx, usageKey(identity, now))
	if err != nil {
		return domain.UsageCounter{}, domain.WrapError(domain.ErrUpstream, "read usage", err)
	}
	if !found {
		return l.freshCounter(now), nil
	}
	var counter domain.UsageCounter
	if err := json.Unmarshal(raw, &counter); err != nil {
		return domain.UsageCounter{}, domain.WrapError(domain.ErrUpstream, "decode usage", err)
	}
	return counter, nil
}

func (l *Ledger) IncrementUsage(ctx context.Context, identity string) (domain.UsageCounter, error) {
	now := l.now().UTC()
	counter, err := l.GetUsage(ctx, identity)
	if err != nil {
		return domain.UsageCounter{}, err
	}
	counter.Count++
	counter.LastUsed = now.Format(time.RFC3339)

	raw, err := json.Marshal(counter)
	if err != nil {
		return domain.UsageCounter{}, domain.WrapError(domain.ErrUpstream, "encode usage", err)
	}
	if err := l.usage.Put(ctx, usageKey(identity, now), raw); err != nil {
		return domain.UsageCounter{}, domain.WrapError(domain.ErrUpstream, "write usage", err)
	}
	return counter, nil
}

// freshCounter starts a zeroed counter bounded by the current calendar
// month in UTC.
func (l *Ledger) freshCounter(now time.Time) domain.UsageCounter {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return domain.UsageCounter{
		PeriodStart: start.Format(time.RFC3339),
		PeriodEnd:   end.Format(time.RFC3339),
	}
}
