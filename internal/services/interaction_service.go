package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nextstep-app/career-service/internal/events"
	"github.com/nextstep-app/career-service/internal/models"
	"github.com/nextstep-app/career-service/internal/repositories"
	"github.com/nextstep-app/career-service/internal/validator"
)

type interactionService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewInteractionService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator) InteractionService {
	return &interactionService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

func (s *interactionService) Record(ctx context.Context, req *models.InteractionCreateRequest, userID uint) (*models.Interaction, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if err := s.checkTarget(ctx, req.TargetType, req.TargetID); err != nil {
		return nil, err
	}

	interaction := &models.Interaction{
		UserID:     userID,
		TargetType: req.TargetType,
		TargetID:   req.TargetID,
		Type:       req.Type,
		Metadata:   req.Metadata,
	}

	if err := s.repo.Interaction().Create(ctx, nil, interaction); err != nil {
		return nil, fmt.Errorf("failed to record interaction: %w", err)
	}

	// The log row is the source of truth; event delivery is best effort
	event := &events.InteractionEvent{
		InteractionID: interaction.ID,
		UserID:        userID,
		Type:          string(interaction.Type),
		TargetType:    string(interaction.TargetType),
		TargetID:      interaction.TargetID,
		OccurredAt:    interaction.CreatedAt,
	}
	if err := s.publisher.PublishInteraction(ctx, event); err != nil {
		s.logger.Error("Failed to publish interaction event", "interaction_id", interaction.ID, "error", err)
	}

	return interaction, nil
}

// checkTarget verifies the (type, id) pair points at an existing row.
func (s *interactionService) checkTarget(ctx context.Context, targetType models.TargetType, targetID uint) error {
	var err error
	switch targetType {
	case models.TargetCareer:
		_, err = s.repo.Career().GetByID(ctx, nil, targetID)
	case models.TargetResource:
		_, err = s.repo.Resource().GetByID(ctx, nil, targetID)
	case models.TargetMultimedia:
		_, err = s.repo.Multimedia().GetByID(ctx, nil, targetID)
	case models.TargetSuccessStory:
		_, err = s.repo.Story().GetByID(ctx, nil, targetID)
	case models.TargetQuiz:
		_, err = s.repo.Quiz().GetByID(ctx, nil, targetID)
	default:
		return ErrInvalidTargetType
	}

	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrTargetNotFound
		}
		return fmt.Errorf("failed to check interaction target: %w", err)
	}

	return nil
}

func (s *interactionService) ListForUser(ctx context.Context, userID uint, filters repositories.InteractionFilters) (*models.ListResponse[*models.Interaction], error) {
	filters.UserID = &userID
	return s.list(ctx, filters)
}

func (s *interactionService) ListAll(ctx context.Context, filters repositories.InteractionFilters) (*models.ListResponse[*models.Interaction], error) {
	return s.list(ctx, filters)
}

func (s *interactionService) list(ctx context.Context, filters repositories.InteractionFilters) (*models.ListResponse[*models.Interaction], error) {
	interactions, total, err := s.repo.Interaction().List(ctx, nil, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list interactions: %w", err)
	}

	return buildListResponse(interactions, total, filters.Page), nil
}
