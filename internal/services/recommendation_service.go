package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nextstep-app/career-service/internal/models"
	"github.com/nextstep-app/career-service/internal/recommend"
	"github.com/nextstep-app/career-service/internal/validator"
)

type recommendationService struct {
	recommender recommend.Recommender
	logger      *slog.Logger
	validator   *validator.Validator
}

func NewRecommendationService(recommender recommend.Recommender, logger *slog.Logger, validator *validator.Validator) RecommendationService {
	return &recommendationService{
		recommender: recommender,
		logger:      logger,
		validator:   validator,
	}
}

func (s *recommendationService) Recommend(ctx context.Context, req *models.RecommendationRequest, userID uint) ([]models.Recommendation, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	qas := make([]recommend.QA, 0, len(req.Responses))
	for _, r := range req.Responses {
		qas = append(qas, recommend.QA{Question: r.Question, Answer: r.Answer})
	}

	recs, err := s.recommender.Recommend(ctx, qas)
	if err != nil {
		return nil, fmt.Errorf("failed to generate recommendations: %w", err)
	}

	// An unusable provider response surfaces as an empty slice; callers see
	// that as a failure, not an empty success.
	if len(recs) == 0 {
		s.logger.Warn("Recommendation provider returned nothing usable", "user_id", userID)
		return nil, ErrNoRecommendations
	}

	out := make([]models.Recommendation, 0, len(recs))
	for _, r := range recs {
		out = append(out, models.Recommendation{Career: r.Career, Reason: r.Reason})
	}

	s.logger.Info("Recommendations generated", "user_id", userID, "count", len(out))

	return out, nil
}
