package usecase

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/risklens/risklens/internal/core/cachekey"
	"github.com/risklens/risklens/internal/core/domain"
	"github.com/risklens/risklens/internal/core/extraction"
	"github.com/risklens/risklens/internal/core/jurisdiction"
	"github.com/risklens/risklens/internal/core/ports"
)

// AnalysisObserver receives pipeline observations. Implemented by the
// metrics layer; a no-op is used when none is wired.
type AnalysisObserver interface {
	RecordAnalysis(outcome string, cacheHit bool, redFlags int)
	RecordSummarySource(source string)
}

type nopObserver struct{}

func (nopObserver) RecordAnalysis(string, bool, int) {}
func (nopObserver) RecordSummarySource(string)       {}

// AnalyzeUseCase sequences the analysis pipeline: cache lookup, gate
// check, jurisdiction validation, extraction, summarization, cache
// write-through and usage accounting.
type AnalyzeUseCase struct {
	cache      ports.KeyValueStore
	gate       *Gate
	summarizer ports.SummaryGenerator
	ledger     ports.SubscriptionLedger
	observer   AnalysisObserver
	now        func() time.Time
}

func NewAnalyzeUseCase(
	cache ports.KeyValueStore,
	gate *Gate,
	summarizer ports.SummaryGenerator,
	ledger ports.SubscriptionLedger,
	observer AnalysisObserver,
) *AnalyzeUseCase {
	if observer == nil {
		observer = nopObserver{}
	}
	return &AnalyzeUseCase{
		cache:      cache,
		gate:       gate,
		summarizer: summarizer,
		ledger:     ledger,
		observer:   observer,
		now:        time.Now,
	}
}

func (uc *AnalyzeUseCase) Analyze(ctx context.Context, req domain.AnalysisRequest) (*domain.AnalysisResult, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		uc.observer.RecordAnalysis("validation_rejected", false, 0)
		return nil, domain.NewPolicyError(domain.ErrValidation, "No text provided")
	}

	// Cache hits are free: no rate or quota check applies and the stored
	// result is returned unmodified, original timestamp included.
	key := "analysis:" + cachekey.For(text)
	if cached := uc.readCache(ctx, key); cached != nil {
		uc.observer.RecordAnalysis("cached", true, len(cached.RedFlags))
		return cached, nil
	}

	decision, err := uc.gate.Check(ctx, req.Identity.ID)
	if err != nil {
		uc.observer.RecordAnalysis("error", false, 0)
		return nil, err
	}
	switch decision.Status {
	case domain.GateRateLimited:
		uc.observer.RecordAnalysis("rate_limited", false, 0)
		return nil, domain.NewPolicyError(domain.ErrRateLimited, "Rate limit exceeded")
	case domain.GateSubscriptionInactive:
		uc.observer.RecordAnalysis("subscription_inactive", false, 0)
		return nil, domain.NewPolicyError(domain.ErrSubscriptionInactive, "Subscription inactive")
	case domain.GateQuotaExceeded:
		uc.observer.RecordAnalysis("quota_exceeded", false, 0)
		return nil, domain.NewPolicyError(domain.ErrQuotaExceeded, "Monthly limit reached")
	}

	// Past the gate the pipeline runs to completion or policy rejection;
	// either way the attempt counts against the rolling window. Side
	// effects use a detached context: there is no cancellation
	// propagation once the pipeline has started.
	effectCtx := context.WithoutCancel(ctx)
	defer func() {
		if err := uc.gate.RecordAttempt(effectCtx, req.Identity.ID); err != nil {
			slog.Warn("rate_counter_increment_failed", "identity", req.Identity.ID, "error", err)
		}
	}()

	detected := jurisdiction.DetectStates(text)
	validation := jurisdiction.Validate(detected)
	if !validation.Valid {
		uc.observer.RecordAnalysis("jurisdiction_rejected", false, 0)
		return nil, domain.NewPolicyError(domain.ErrJurisdiction, validation.Reason)
	}

	clauses := extraction.ExtractClauses(text)
	redFlags := extraction.DetectRedFlags(text)
	sum := uc.summarizer.Summarize(ctx, text)
	uc.observer.RecordSummarySource(string(sum.Source))

	result := &domain.AnalysisResult{
		Summary:  sum.Text,
		RedFlags: redFlags,
		Clauses:  clauses,
		Jurisdiction: domain.Jurisdiction{
			DetectedStates: detected,
			ApprovedStates: validation.ApprovedStates,
		},
		Timestamp: uc.now().UTC().Format(time.RFC3339),
	}

	uc.writeCache(effectCtx, key, result)
	uc.recordUsage(effectCtx, req.Identity.ID)

	uc.observer.RecordAnalysis("ok", false, len(redFlags))
	return result, nil
}

func (uc *AnalyzeUseCase) readCache(ctx context.Context, key string) *domain.AnalysisResult {
	raw, found, err := uc.cache.Get(ctx, key)
	if err != nil {
		// A cache failure degrades to a miss, never to a request failure.
		slog.Warn("cache_read_failed", "key", key, "error", err)
		return nil
	}
	if !found {
		return nil
	}
	var cached domain.AnalysisResult
	if err := json.Unmarshal(raw, &cached); err != nil {
		slog.Warn("cache_entry_corrupt", "key", key, "error", err)
		return nil
	}
	return &cached
}

func (uc *AnalyzeUseCase) writeCache(ctx context.Context, key string, result *domain.AnalysisResult) {
	raw, err := json.Marshal(result)
	if err != nil {
		slog.Warn("cache_marshal_failed", "key", key, "error", err)
		return
	}
	if err := uc.cache.Put(ctx, key, raw); err != nil {
		slog.Warn("cache_write_failed", "key", key, "error", err)
	}
}

func (uc *AnalyzeUseCase) recordUsage(ctx context.Context, identity string) {
	if _, err := uc.ledger.IncrementUsage(ctx, identity); err != nil {
		slog.Warn("usage_increment_failed", "identity", identity, "error", err)
	}
}
