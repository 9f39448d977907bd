package ports

import (
	"context"

	"github.com/risklens/risklens/internal/core/domain"
)

// ContractAnalyzer is the inbound contract for the analysis pipeline.
type ContractAnalyzer interface {
	Analyze(ctx context.Context, req domain.AnalysisRequest) (*domain.AnalysisResult, error)
}

// UsageReader is the inbound read model for an identity's quota state.
type UsageReader interface {
	Usage(ctx context.Context, identity domain.Identity) (*domain.UsageReport, error)
}
