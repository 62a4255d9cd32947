package recommend

import (
	"context"
	"fmt"
	"log/slog"
)

type disabledRecommender struct {
	logger *slog.Logger
}

// NewDisabledRecommender is the fallback when no provider is configured.
// Every call fails with a provider error the API maps to a 500.
func NewDisabledRecommender(logger *slog.Logger) Recommender {
	return &disabledRecommender{logger: logger}
}

func (d *disabledRecommender) Recommend(ctx context.Context, responses []QA) ([]Recommendation, error) {
	d.logger.Warn("Recommendation requested but no AI provider is configured")
	return nil, fmt.Errorf("recommendation provider not configured")
}
