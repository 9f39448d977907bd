package domain

type Tier string

const (
	TierFree         Tier = "free"
	TierStarter      Tier = "starter"
	TierProfessional Tier = "professional"
	TierBusiness     Tier = "business"
)

const SubscriptionActive = "active"

type TierPlan struct {
	Name         string
	MonthlyLimit int
	PriceCents   int
}

// PricingTiers is the monthly analysis ceiling per subscription plan.
var PricingTiers = map[Tier]TierPlan{
	TierFree:         {Name: "Free", MonthlyLimit: 3, PriceCents: 0},
	TierStarter:      {Name: "Starter", MonthlyLimit: 50, PriceCents: 2900},
	TierProfessional: {Name: "Professional", MonthlyLimit: 250, PriceCents: 9900},
	TierBusiness:     {Name: "Business", MonthlyLimit: 1000, PriceCents: 29900},
}

// SubscriptionRecord is owned by the billing collaborator; the core
// treats it as read-only input to quota decisions.
type SubscriptionRecord struct {
	Tier             Tier   `json:"tier"`
	Status           string `json:"status"`
	CustomerID       string `json:"customerId,omitempty"`
	SubscriptionID   string `json:"subscriptionId,omitempty"`
	CurrentPeriodEnd string `json:"currentPeriodEnd,omitempty"`
}

// DefaultSubscription is what an identity without a stored record gets.
func DefaultSubscription() SubscriptionRecord {
	return SubscriptionRecord{Tier: TierFree, Status: SubscriptionActive}
}

// UsageCounter tracks analyses per identity per calendar month. It is
// incremented on successful analysis only, never on cache hits.
type UsageCounter struct {
	Count       int    `json:"count"`
	PeriodStart string `json:"periodStart"`
	PeriodEnd   string `json:"periodEnd"`
	LastUsed    string `json:"lastUsed,omitempty"`
}

// UsageReport is the caller-facing quota state.
type UsageReport struct {
	Identity    string `json:"identity"`
	Tier        Tier   `json:"tier"`
	Status      string `json:"status"`
	Used        int    `json:"used"`
	Limit       int    `json:"limit"`
	Remaining   int    `json:"remaining"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
}

type GateStatus string

const (
	GateAllowed              GateStatus = "allowed"
	GateRateLimited          GateStatus = "rate_limited"
	GateQuotaExceeded        GateStatus = "quota_exceeded"
	GateSubscriptionInactive GateStatus = "subscription_inactive"
)
