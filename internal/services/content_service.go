package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nextstep-app/career-service/internal/models"
	"github.com/nextstep-app/career-service/internal/repositories"
	"github.com/nextstep-app/career-service/internal/validator"
)

type contentService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewContentService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) ContentService {
	return &contentService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

// ===== RESOURCES =====

func (s *contentService) CreateResource(ctx context.Context, req *models.ResourceCreateRequest, creatorID uint) (*models.Resource, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	resource := &models.Resource{
		Title:       req.Title,
		Category:    req.Category,
		Description: req.Description,
		FileURL:     req.FileURL,
		CreatedBy:   &creatorID,
	}
	if resource.Category == "" {
		resource.Category = models.ResourceOther
	}

	err := s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		if err := txRepo.Resource().Create(ctx, nil, resource); err != nil {
			return fmt.Errorf("failed to create resource: %w", err)
		}
		return s.attachResourceTags(ctx, txRepo, resource, req.TagIDs)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Resource created", "resource_id", resource.ID)

	return resource, nil
}

func (s *contentService) GetResource(ctx context.Context, id uint) (*models.Resource, error) {
	resource, err := s.repo.Resource().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrResourceNotFound
		}
		return nil, fmt.Errorf("failed to get resource: %w", err)
	}

	// View counting is best effort
	if err := s.repo.Resource().IncrementViews(ctx, nil, id); err != nil {
		s.logger.Warn("Failed to increment resource views", "resource_id", id, "error", err)
	} else {
		resource.ViewsCount++
	}

	return resource, nil
}

func (s *contentService) UpdateResource(ctx context.Context, id uint, req *models.ResourceUpdateRequest) (*models.Resource, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	resource, err := s.repo.Resource().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrResourceNotFound
		}
		return nil, fmt.Errorf("failed to get resource: %w", err)
	}

	if req.Title != nil {
		resource.Title = *req.Title
	}
	if req.Category != nil {
		resource.Category = *req.Category
	}
	if req.Description != nil {
		resource.Description = *req.Description
	}
	if req.FileURL != nil {
		resource.FileURL = *req.FileURL
	}

	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		if err := txRepo.Resource().Update(ctx, nil, resource); err != nil {
			return fmt.Errorf("failed to update resource: %w", err)
		}
		return s.attachResourceTags(ctx, txRepo, resource, req.TagIDs)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Resource updated", "resource_id", id)

	return resource, nil
}

func (s *contentService) attachResourceTags(ctx context.Context, repo repositories.Repository, resource *models.Resource, tagIDs []uint) error {
	if tagIDs == nil {
		return nil
	}

	tags, err := repo.Tag().GetByIDs(ctx, nil, tagIDs)
	if err != nil {
		return fmt.Errorf("failed to resolve tags: %w", err)
	}
	if len(tags) != len(tagIDs) {
		return ErrTagNotFound
	}

	if err := repo.Resource().ReplaceTags(ctx, nil, resource, tags); err != nil {
		return fmt.Errorf("failed to set tags: %w", err)
	}

	return nil
}

func (s *contentService) DeleteResource(ctx context.Context, id uint) error {
	if _, err := s.repo.Resource().GetByID(ctx, nil, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrResourceNotFound
		}
		return fmt.Errorf("failed to get resource: %w", err)
	}

	if err := s.repo.Resource().Delete(ctx, nil, id); err != nil {
		return fmt.Errorf("failed to delete resource: %w", err)
	}

	s.logger.Info("Resource deleted", "resource_id", id)

	return nil
}

func (s *contentService) ListResources(ctx context.Context, filters repositories.ResourceFilters) (*models.ListResponse[*models.Resource], error) {
	resources, total, err := s.repo.Resource().List(ctx, nil, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}

	return buildListResponse(resources, total, filters.Page), nil
}

func (s *contentService) RebuildResourceContentText(ctx context.Context, id uint) (*models.ContentTextResponse, error) {
	resource, err := s.repo.Resource().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrResourceNotFound
		}
		return nil, fmt.Errorf("failed to get resource: %w", err)
	}

	resource.BuildContentText()

	if err := s.repo.Resource().SaveContentText(ctx, nil, resource); err != nil {
		return nil, fmt.Errorf("failed to save content text: %w", err)
	}

	s.logger.Info("Resource content text rebuilt", "resource_id", id)

	return &models.ContentTextResponse{
		Detail:      "content_text updated",
		ContentText: resource.ContentText,
	}, nil
}

// ===== MULTIMEDIA =====

func (s *contentService) CreateMultimedia(ctx context.Context, req *models.MultimediaCreateRequest, creatorID uint) (*models.Multimedia, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	media := &models.Multimedia{
		Title:      req.Title,
		Type:       req.Type,
		URL:        req.URL,
		Transcript: req.Transcript,
		CreatedBy:  &creatorID,
	}

	err := s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		if err := txRepo.Multimedia().Create(ctx, nil, media); err != nil {
			return fmt.Errorf("failed to create multimedia: %w", err)
		}
		return s.attachMultimediaTags(ctx, txRepo, media, req.TagIDs)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Multimedia created", "multimedia_id", media.ID, "type", media.Type)

	return media, nil
}

func (s *contentService) GetMultimedia(ctx context.Context, id uint) (*models.Multimedia, error) {
	media, err := s.repo.Multimedia().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrMultimediaNotFound
		}
		return nil, fmt.Errorf("failed to get multimedia: %w", err)
	}

	return media, nil
}

func (s *contentService) UpdateMultimedia(ctx context.Context, id uint, req *models.MultimediaUpdateRequest) (*models.Multimedia, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	media, err := s.GetMultimedia(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		media.Title = *req.Title
	}
	if req.Type != nil {
		media.Type = *req.Type
	}
	if req.URL != nil {
		media.URL = req.URL
	}
	if req.Transcript != nil {
		media.Transcript = *req.Transcript
	}

	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		if err := txRepo.Multimedia().Update(ctx, nil, media); err != nil {
			return fmt.Errorf("failed to update multimedia: %w", err)
		}
		return s.attachMultimediaTags(ctx, txRepo, media, req.TagIDs)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Multimedia updated", "multimedia_id", id)

	return media, nil
}

func (s *contentService) attachMultimediaTags(ctx context.Context, repo repositories.Repository, media *models.Multimedia, tagIDs []uint) error {
	if tagIDs == nil {
		return nil
	}

	tags, err := repo.Tag().GetByIDs(ctx, nil, tagIDs)
	if err != nil {
		return fmt.Errorf("failed to resolve tags: %w", err)
	}
	if len(tags) != len(tagIDs) {
		return ErrTagNotFound
	}

	if err := repo.Multimedia().ReplaceTags(ctx, nil, media, tags); err != nil {
		return fmt.Errorf("failed to set tags: %w", err)
	}

	return nil
}

func (s *contentService) DeleteMultimedia(ctx context.Context, id uint) error {
	if _, err := s.GetMultimedia(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Multimedia().Delete(ctx, nil, id); err != nil {
		return fmt.Errorf("failed to delete multimedia: %w", err)
	}

	s.logger.Info("Multimedia deleted", "multimedia_id", id)

	return nil
}

func (s *contentService) ListMultimedia(ctx context.Context, filters repositories.MultimediaFilters) (*models.ListResponse[*models.Multimedia], error) {
	items, total, err := s.repo.Multimedia().List(ctx, nil, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list multimedia: %w", err)
	}

	return buildListResponse(items, total, filters.Page), nil
}

func (s *contentService) RebuildMultimediaContentText(ctx context.Context, id uint) (*models.ContentTextResponse, error) {
	media, err := s.GetMultimedia(ctx, id)
	if err != nil {
		return nil, err
	}

	media.BuildContentText()

	if err := s.repo.Multimedia().SaveContentText(ctx, nil, media); err != nil {
		return nil, fmt.Errorf("failed to save content text: %w", err)
	}

	s.logger.Info("Multimedia content text rebuilt", "multimedia_id", id)

	return &models.ContentTextResponse{
		Detail:      "content_text updated",
		ContentText: media.ContentText,
	}, nil
}

// ===== SUCCESS STORIES =====

func (s *contentService) CreateStory(ctx context.Context, req *models.SuccessStoryCreateRequest, submitterID uint) (*models.SuccessStory, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	story := &models.SuccessStory{
		Title:       req.Title,
		Domain:      req.Domain,
		StoryText:   req.StoryText,
		Image:       req.Image,
		SubmittedBy: &submitterID,
	}

	if err := s.repo.Story().Create(ctx, nil, story); err != nil {
		return nil, fmt.Errorf("failed to create success story: %w", err)
	}

	s.logger.Info("Success story submitted", "story_id", story.ID, "submitted_by", submitterID)

	return story, nil
}

func (s *contentService) GetStory(ctx context.Context, id uint) (*models.SuccessStory, error) {
	story, err := s.repo.Story().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrStoryNotFound
		}
		return nil, fmt.Errorf("failed to get success story: %w", err)
	}

	return story, nil
}

func (s *contentService) UpdateStory(ctx context.Context, id uint, req *models.SuccessStoryUpdateRequest) (*models.SuccessStory, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	story, err := s.GetStory(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		story.Title = *req.Title
	}
	if req.Domain != nil {
		story.Domain = req.Domain
	}
	if req.StoryText != nil {
		story.StoryText = *req.StoryText
	}
	if req.Image != nil {
		story.Image = req.Image
	}

	if err := s.repo.Story().Update(ctx, nil, story); err != nil {
		return nil, fmt.Errorf("failed to update success story: %w", err)
	}

	s.logger.Info("Success story updated", "story_id", id)

	return story, nil
}

func (s *contentService) DeleteStory(ctx context.Context, id uint) error {
	if _, err := s.GetStory(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Story().Delete(ctx, nil, id); err != nil {
		return fmt.Errorf("failed to delete success story: %w", err)
	}

	s.logger.Info("Success story deleted", "story_id", id)

	return nil
}

func (s *contentService) ListStories(ctx context.Context, filters repositories.StoryFilters, isStaff bool) (*models.ListResponse[*models.SuccessStory], error) {
	if !isStaff {
		approved := true
		filters.IsApproved = &approved
	}

	stories, total, err := s.repo.Story().List(ctx, nil, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list success stories: %w", err)
	}

	return buildListResponse(stories, total, filters.Page), nil
}

func (s *contentService) ApproveStory(ctx context.Context, id uint, approverID uint) (*models.SuccessStory, error) {
	story, err := s.GetStory(ctx, id)
	if err != nil {
		return nil, err
	}

	story.Approve(approverID, time.Now())

	if err := s.repo.Story().Update(ctx, nil, story); err != nil {
		return nil, fmt.Errorf("failed to approve success story: %w", err)
	}

	s.logger.Info("Success story approved", "story_id", id, "approved_by", approverID)

	return story, nil
}

func (s *contentService) RebuildStoryContentText(ctx context.Context, id uint) (*models.ContentTextResponse, error) {
	story, err := s.GetStory(ctx, id)
	if err != nil {
		return nil, err
	}

	story.BuildContentText()

	if err := s.repo.Story().SaveContentText(ctx, nil, story); err != nil {
		return nil, fmt.Errorf("failed to save content text: %w", err)
	}

	s.logger.Info("Success story content text rebuilt", "story_id", id)

	return &models.ContentTextResponse{
		Detail:      "content_text updated",
		ContentText: story.ContentText,
	}, nil
}

// ===== FEEDBACK =====

func (s *contentService) CreateFeedback(ctx context.Context, req *models.FeedbackCreateRequest, userID *uint) (*models.Feedback, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	feedback := &models.Feedback{
		UserID:   userID,
		Category: req.Category,
		Message:  req.Message,
		Status:   models.FeedbackOpen,
	}
	if feedback.Category == "" {
		feedback.Category = models.FeedbackOther
	}

	if err := s.repo.Feedback().Create(ctx, nil, feedback); err != nil {
		return nil, fmt.Errorf("failed to create feedback: %w", err)
	}

	s.logger.Info("Feedback submitted", "feedback_id", feedback.ID, "category", feedback.Category)

	return feedback, nil
}

func (s *contentService) ListFeedback(ctx context.Context, filters repositories.FeedbackFilters) (*models.ListResponse[*models.Feedback], error) {
	items, total, err := s.repo.Feedback().List(ctx, nil, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}

	return buildListResponse(items, total, filters.Page), nil
}

func (s *contentService) UpdateFeedbackStatus(ctx context.Context, id uint, req *models.FeedbackStatusRequest, handlerID uint) (*models.Feedback, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	feedback, err := s.repo.Feedback().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrFeedbackNotFound
		}
		return nil, fmt.Errorf("failed to get feedback: %w", err)
	}

	feedback.Status = req.Status
	feedback.HandledBy = &handlerID

	if err := s.repo.Feedback().Update(ctx, nil, feedback); err != nil {
		return nil, fmt.Errorf("failed to update feedback: %w", err)
	}

	s.logger.Info("Feedback status updated", "feedback_id", id, "status", req.Status)

	return feedback, nil
}
