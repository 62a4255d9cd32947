package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nextstep-app/career-service/internal/models"
	"github.com/nextstep-app/career-service/internal/repositories"
	"github.com/nextstep-app/career-service/internal/validator"
)

type profileService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewProfileService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) ProfileService {
	return &profileService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

func (s *profileService) Get(ctx context.Context, userID uint) (*models.UserProfile, error) {
	profile, err := s.repo.Profile().GetOrCreate(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return profile, nil
}

func (s *profileService) Update(ctx context.Context, userID uint, req *models.ProfileUpdateRequest) (*models.UserProfile, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	profile, err := s.repo.Profile().GetOrCreate(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	if req.EducationLevel != nil {
		profile.EducationLevel = *req.EducationLevel
	}
	if req.Bio != nil {
		profile.Bio = req.Bio
	}
	if req.ProfileImage != nil {
		profile.ProfileImage = req.ProfileImage
	}

	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		if err := txRepo.Profile().Update(ctx, nil, profile); err != nil {
			return fmt.Errorf("failed to update profile: %w", err)
		}
		if req.Interests != nil {
			if err := txRepo.Profile().ReplaceInterests(ctx, nil, profile, req.Interests); err != nil {
				if repositories.IsNotFoundError(err) {
					return ErrTagNotFound
				}
				return fmt.Errorf("failed to replace interests: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Profile updated", "user_id", userID)

	return profile, nil
}
