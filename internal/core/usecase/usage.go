package usecase

import (
	"context"

	"github.com/risklens/risklens/internal/core/domain"
	"github.com/risklens/risklens/internal/core/ports"
)

// UsageUseCase is the read model behind the usage endpoint.
type UsageUseCase struct {
	ledger ports.SubscriptionLedger
}

func NewUsageUseCase(ledger ports.SubscriptionLedger) *UsageUseCase {
	return &UsageUseCase{ledger: ledger}
}

func (uc *UsageUseCase) Usage(ctx context.Context, identity domain.Identity) (*domain.UsageReport, error) {
	sub, err := uc.ledger.GetSubscription(ctx, identity.ID)
	if err != nil {
		return nil, domain.WrapError(domain.ErrUpstream, "read subscription", err)
	}
	usage, err := uc.ledger.GetUsage(ctx, identity.ID)
	if err != nil {
		return nil, domain.WrapError(domain.ErrUpstream, "read usage", err)
	}

	plan, ok := domain.PricingTiers[sub.Tier]
	if !ok {
		plan = domain.PricingTiers[domain.TierFree]
	}
	remaining := plan.MonthlyLimit - usage.Count
	if remaining < 0 {
		remaining = 0
	}

	return &domain.UsageReport{
		Identity:    identity.ID,
		Tier:        sub.Tier,
		Status:      sub.Status,
		Used:        usage.Count,
		Limit:       plan.MonthlyLimit,
		Remaining:   remaining,
		PeriodStart: usage.PeriodStart,
		PeriodEnd:   usage.PeriodEnd,
	}, nil
}
