package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/risklens/risklens/internal/core/domain"
)

func TestGateAllowedReportsQuotaNumbers(t *testing.T) {
	ledger := &ledgerFake{
		sub:   domain.SubscriptionRecord{Tier: domain.TierStarter, Status: domain.SubscriptionActive},
		usage: domain.UsageCounter{Count: 12},
	}
	gate := NewGate(newKVFake(), ledger, 10)

	d, err := gate.Check(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if d.Status != domain.GateAllowed {
		t.Fatalf("expected ALLOWED, got %s", d.Status)
	}
	if d.Used != 12 || d.Limit != 50 || d.Remaining != 38 {
		t.Fatalf("unexpected quota numbers: used=%d limit=%d remaining=%d", d.Used, d.Limit, d.Remaining)
	}
}

func TestGateRateLimitBeforeLedger(t *testing.T) {
	rates := newKVFake()
	rates.entries["rate_limit:anon:1.2.3.4"] = []byte("10")
	// A broken ledger proves the rate check short-circuits.
	ledger := &ledgerFake{subErr: errors.New("ledger down")}
	gate := NewGate(rates, ledger, 10)

	d, err := gate.Check(context.Background(), "anon:1.2.3.4")
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if d.Status != domain.GateRateLimited {
		t.Fatalf("expected RATE_LIMITED, got %s", d.Status)
	}
}

func TestGateUnderRateLimitPasses(t *testing.T) {
	rates := newKVFake()
	rates.entries["rate_limit:u"] = []byte("9")
	gate := NewGate(rates, &ledgerFake{}, 10)

	d, err := gate.Check(context.Background(), "u")
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if d.Status != domain.GateAllowed {
		t.Fatalf("counter 9 of 10 must pass, got %s", d.Status)
	}
}

func TestGateInactivePaidSubscription(t *testing.T) {
	ledger := &ledgerFake{sub: domain.SubscriptionRecord{Tier: domain.TierProfessional, Status: "canceled"}}
	gate := NewGate(newKVFake(), ledger, 10)

	d, err := gate.Check(context.Background(), "u")
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if d.Status != domain.GateSubscriptionInactive {
		t.Fatalf("expected SUBSCRIPTION_INACTIVE, got %s", d.Status)
	}
}

func TestGateInactiveFreeTierStillPasses(t *testing.T) {
	ledger := &ledgerFake{sub: domain.SubscriptionRecord{Tier: domain.TierFree, Status: "canceled"}}
	gate := NewGate(newKVFake(), ledger, 10)

	d, err := gate.Check(context.Background(), "u")
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if d.Status != domain.GateAllowed {
		t.Fatalf("free tier ignores subscription status, got %s", d.Status)
	}
}

func TestGateUnknownTierTreatedAsInactive(t *testing.T) {
	ledger := &ledgerFake{sub: domain.SubscriptionRecord{Tier: "platinum", Status: domain.SubscriptionActive}}
	gate := NewGate(newKVFake(), ledger, 10)

	d, err := gate.Check(context.Background(), "u")
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if d.Status != domain.GateSubscriptionInactive {
		t.Fatalf("unknown tier must not be priced, got %s", d.Status)
	}
}

func TestGateQuotaExceededAtLimit(t *testing.T) {
	ledger := &ledgerFake{usage: domain.UsageCounter{Count: 3}}
	gate := NewGate(newKVFake(), ledger, 10)

	d, err := gate.Check(context.Background(), "u")
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if d.Status != domain.GateQuotaExceeded {
		t.Fatalf("free tier at 3 uses must be over quota, got %s", d.Status)
	}
	if d.Used != 3 || d.Limit != 3 {
		t.Fatalf("unexpected quota numbers: used=%d limit=%d", d.Used, d.Limit)
	}
}

func TestGateKVErrorIsUpstream(t *testing.T) {
	rates := newKVFake()
	rates.getErr = errors.New("kv down")
	gate := NewGate(rates, &ledgerFake{}, 10)

	_, err := gate.Check(context.Background(), "u")
	if !domain.IsKind(err, domain.ErrUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestRecordAttemptIncrements(t *testing.T) {
	rates := newKVFake()
	gate := NewGate(rates, &ledgerFake{}, 10)

	for i := 0; i < 3; i++ {
		if err := gate.RecordAttempt(context.Background(), "u"); err != nil {
			t.Fatalf("RecordAttempt() error = %v", err)
		}
	}
	if got := string(rates.entries["rate_limit:u"]); got != "3" {
		t.Fatalf("expected counter 3, got %q", got)
	}
}
