package ports

import (
	"context"

	"github.com/risklens/risklens/internal/core/domain"
)

// KeyValueStore is the single external mapping shared by cache, counters
// and account records. Entry TTL is a property of the backing bucket;
// a put refreshes the entry's age. Reads are eventually consistent.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Put(ctx context.Context, key string, value []byte) error
}

// SummaryGenerator produces a contract summary. It never fails: any
// remote error yields the extractive fallback, tagged by Source.
type SummaryGenerator interface {
	Summarize(ctx context.Context, text string) domain.Summary
}

// SubscriptionLedger is the billing collaborator. Reads feed quota
// decisions; IncrementUsage is the explicit post-success step.
type SubscriptionLedger interface {
	GetSubscription(ctx context.Context, identity string) (domain.SubscriptionRecord, error)
	GetUsage(ctx context.Context, identity string) (domain.UsageCounter, error)
	IncrementUsage(ctx context.Context, identity string) (domain.UsageCounter, error)
}

// APIKeyStore resolves issued API keys to their owner records. A
// successful lookup also stamps the record's last-used time.
type APIKeyStore interface {
	Lookup(ctx context.Context, key string) (*domain.APIKeyRecord, error)
}
