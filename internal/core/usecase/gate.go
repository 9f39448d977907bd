package usecase

import (
	"context"
	"strconv"

	"github.com/risklens/risklens/internal/core/domain"
	"github.com/risklens/risklens/internal/core/ports"
)

const defaultRequestsPerHour = 10

// Gate enforces the per-identity request ceiling and the tier-based
// monthly quota. It only reads; counter increments are explicit separate
// steps. Counter reads and writes are eventually consistent, so two
// concurrent requests may both pass before either increments — slight
// over-admission is accepted instead of paying for coordination.
type Gate struct {
	rates  ports.KeyValueStore
	ledger ports.SubscriptionLedger
	limit  int
}

func NewGate(rates ports.KeyValueStore, ledger ports.SubscriptionLedger, requestsPerHour int) *Gate {
	if requestsPerHour <= 0 {
		requestsPerHour = defaultRequestsPerHour
	}
	return &Gate{rates: rates, ledger: ledger, limit: requestsPerHour}
}

// Decision is the gate outcome plus the quota numbers that informed it.
type Decision struct {
	Status    domain.GateStatus
	Tier      domain.Tier
	Used      int
	Limit     int
	Remaining int
}

func rateKey(identity string) string { return "rate_limit:" + identity }

// Check resolves to exactly one of ALLOWED, RATE_LIMITED, QUOTA_EXCEEDED
// or SUBSCRIPTION_INACTIVE. The rate check runs before any billing read
// so hammering callers never reach the ledger.
func (g *Gate) Check(ctx context.Context, identity string) (Decision, error) {
	raw, found, err := g.rates.Get(ctx, rateKey(identity))
	if err != nil {
		return Decision{}, domain.WrapError(domain.ErrUpstream, "read rate counter", err)
	}
	if found {
		count, _ := strconv.Atoi(string(raw))
		if count >= g.limit {
			return Decision{Status: domain.GateRateLimited, Used: count, Limit: g.limit}, nil
		}
	}

	sub, err := g.ledger.GetSubscription(ctx, identity)
	if err != nil {
		return Decision{}, domain.WrapError(domain.ErrUpstream, "read subscription", err)
	}
	if sub.Status != domain.SubscriptionActive && sub.Tier != domain.TierFree {
		return Decision{Status: domain.GateSubscriptionInactive, Tier: sub.Tier}, nil
	}
	plan, ok := domain.PricingTiers[sub.Tier]
	if !ok {
		// Unknown tier: the record is stale or corrupt and cannot be
		// priced, treat like a lapsed subscription.
		return Decision{Status: domain.GateSubscriptionInactive, Tier: sub.Tier}, nil
	}

	usage, err := g.ledger.GetUsage(ctx, identity)
	if err != nil {
		return Decision{}, domain.WrapError(domain.ErrUpstream, "read usage", err)
	}
	if usage.Count >= plan.MonthlyLimit {
		return Decision{
			Status: domain.GateQuotaExceeded,
			Tier:   sub.Tier,
			Used:   usage.Count,
			Limit:  plan.MonthlyLimit,
		}, nil
	}

	return Decision{
		Status:    domain.GateAllowed,
		Tier:      sub.Tier,
		Used:      usage.Count,
		Limit:     plan.MonthlyLimit,
		Remaining: plan.MonthlyLimit - usage.Count,
	}, nil
}

// RecordAttempt bumps the rolling-window counter. Read-then-write-back:
// concurrent increments can be lost, which is a documented imprecision.
// The backing bucket's TTL resets the window.
func (g *Gate) RecordAttempt(ctx context.Context, identity string) error {
	raw, _, err := g.rates.Get(ctx, rateKey(identity))
	if err != nil {
		return domain.WrapError(domain.ErrUpstream, "read rate counter", err)
	}
	count, _ := strconv.Atoi(string(raw))
	if err := g.rates.Put(ctx, rateKey(identity), []byte(strconv.Itoa(count+1))); err != nil {
		return domain.WrapError(domain.ErrUpstream, "write rate counter", err)
	}
	return nil
}
