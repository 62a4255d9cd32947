package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nextstep-app/career-service/internal/models"
	"github.com/nextstep-app/career-service/internal/repositories"
	"github.com/nextstep-app/career-service/internal/validator"
)

type careerService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewCareerService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) CareerService {
	return &careerService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

// ===== CAREERS =====

func (s *careerService) Create(ctx context.Context, req *models.CareerCreateRequest, creatorID uint) (*models.Career, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	career := &models.Career{
		Domain:         req.Domain,
		Title:          req.Title,
		Description:    req.Description,
		EducationPath:  req.EducationPath,
		ExpectedSalary: req.ExpectedSalary,
		CreatedBy:      &creatorID,
	}

	err := s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		if err := txRepo.Career().Create(ctx, nil, career); err != nil {
			return fmt.Errorf("failed to create career: %w", err)
		}
		if err := s.attachRelations(ctx, txRepo, career, req.TagIDs, req.SkillIDs); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Career created", "career_id", career.ID, "title", career.Title)

	return career, nil
}

func (s *careerService) GetByID(ctx context.Context, id uint) (*models.Career, error) {
	career, err := s.repo.Career().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCareerNotFound
		}
		return nil, fmt.Errorf("failed to get career: %w", err)
	}

	return career, nil
}

func (s *careerService) Update(ctx context.Context, id uint, req *models.CareerUpdateRequest) (*models.Career, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	career, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Domain != nil {
		career.Domain = req.Domain
	}
	if req.Title != nil {
		career.Title = *req.Title
	}
	if req.Description != nil {
		career.Description = *req.Description
	}
	if req.EducationPath != nil {
		career.EducationPath = *req.EducationPath
	}
	if req.ExpectedSalary != nil {
		career.ExpectedSalary = req.ExpectedSalary
	}
	if req.Popularity != nil {
		career.Popularity = *req.Popularity
	}

	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		if err := txRepo.Career().Update(ctx, nil, career); err != nil {
			return fmt.Errorf("failed to update career: %w", err)
		}
		if err := s.attachRelations(ctx, txRepo, career, req.TagIDs, req.SkillIDs); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Career updated", "career_id", id)

	return career, nil
}

// attachRelations replaces tag/skill associations when ids were provided.
// A nil slice means "leave unchanged"; an empty slice clears the relation.
func (s *careerService) attachRelations(ctx context.Context, repo repositories.Repository, career *models.Career, tagIDs, skillIDs []uint) error {
	if tagIDs != nil {
		tags, err := repo.Tag().GetByIDs(ctx, nil, tagIDs)
		if err != nil {
			return fmt.Errorf("failed to resolve tags: %w", err)
		}
		if len(tags) != len(tagIDs) {
			return ErrTagNotFound
		}
		if err := repo.Career().ReplaceTags(ctx, nil, career, tags); err != nil {
			return fmt.Errorf("failed to set tags: %w", err)
		}
	}

	if skillIDs != nil {
		skills, err := repo.Skill().GetByIDs(ctx, nil, skillIDs)
		if err != nil {
			return fmt.Errorf("failed to resolve skills: %w", err)
		}
		if len(skills) != len(skillIDs) {
			return ErrSkillNotFound
		}
		if err := repo.Career().ReplaceSkills(ctx, nil, career, skills); err != nil {
			return fmt.Errorf("failed to set skills: %w", err)
		}
	}

	return nil
}

func (s *careerService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Career().Delete(ctx, nil, id); err != nil {
		return fmt.Errorf("failed to delete career: %w", err)
	}

	s.logger.Info("Career deleted", "career_id", id)

	return nil
}

func (s *careerService) List(ctx context.Context, filters repositories.CareerFilters) (*models.ListResponse[*models.Career], error) {
	careers, total, err := s.repo.Career().List(ctx, nil, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list careers: %w", err)
	}

	return buildListResponse(careers, total, filters.Page), nil
}

func (s *careerService) RebuildContentText(ctx context.Context, id uint) (*models.ContentTextResponse, error) {
	career, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	career.BuildContentText()

	if err := s.repo.Career().SaveContentText(ctx, nil, career); err != nil {
		return nil, fmt.Errorf("failed to save content text: %w", err)
	}

	s.logger.Info("Career content text rebuilt", "career_id", id)

	return &models.ContentTextResponse{
		Detail:      "content_text updated",
		ContentText: career.ContentText,
	}, nil
}

// ===== TAGS =====

func (s *careerService) CreateTag(ctx context.Context, req *models.TagRequest) (*models.Tag, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if err := s.validator.Var("slug", req.Slug, "slug"); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	tag := &models.Tag{Name: req.Name, Slug: req.Slug}
	if err := s.repo.Tag().Create(ctx, nil, tag); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}

	return tag, nil
}

func (s *careerService) UpdateTag(ctx context.Context, id uint, req *models.TagRequest) (*models.Tag, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if err := s.validator.Var("slug", req.Slug, "slug"); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	tag, err := s.repo.Tag().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrTagNotFound
		}
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}

	tag.Name = req.Name
	tag.Slug = req.Slug

	if err := s.repo.Tag().Update(ctx, nil, tag); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to update tag: %w", err)
	}

	return tag, nil
}

func (s *careerService) DeleteTag(ctx context.Context, id uint) error {
	if _, err := s.repo.Tag().GetByID(ctx, nil, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrTagNotFound
		}
		return fmt.Errorf("failed to get tag: %w", err)
	}

	if err := s.repo.Tag().Delete(ctx, nil, id); err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}

	return nil
}

func (s *careerService) ListTags(ctx context.Context, search *string, page repositories.Page) (*models.ListResponse[*models.Tag], error) {
	tags, total, err := s.repo.Tag().List(ctx, nil, search, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	return buildListResponse(tags, total, page), nil
}

// ===== SKILLS =====

func (s *careerService) CreateSkill(ctx context.Context, req *models.SkillRequest) (*models.Skill, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	skill := &models.Skill{Name: req.Name}
	if err := s.repo.Skill().Create(ctx, nil, skill); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to create skill: %w", err)
	}

	return skill, nil
}

func (s *careerService) UpdateSkill(ctx context.Context, id uint, req *models.SkillRequest) (*models.Skill, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	skill, err := s.repo.Skill().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSkillNotFound
		}
		return nil, fmt.Errorf("failed to get skill: %w", err)
	}

	skill.Name = req.Name

	if err := s.repo.Skill().Update(ctx, nil, skill); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to update skill: %w", err)
	}

	return skill, nil
}

func (s *careerService) DeleteSkill(ctx context.Context, id uint) error {
	if _, err := s.repo.Skill().GetByID(ctx, nil, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrSkillNotFound
		}
		return fmt.Errorf("failed to get skill: %w", err)
	}

	if err := s.repo.Skill().Delete(ctx, nil, id); err != nil {
		return fmt.Errorf("failed to delete skill: %w", err)
	}

	return nil
}

func (s *careerService) ListSkills(ctx context.Context, search *string, page repositories.Page) (*models.ListResponse[*models.Skill], error) {
	skills, total, err := s.repo.Skill().List(ctx, nil, search, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}

	return buildListResponse(skills, total, page), nil
}

// buildListResponse derives page/size numbers from the applied pagination.
func buildListResponse[T any](items []T, total int64, page repositories.Page) *models.ListResponse[T] {
	size := page.Limit
	if size <= 0 {
		size = len(items)
	}

	pageNum := 1
	if size > 0 {
		pageNum = page.Offset/size + 1
	}

	return &models.ListResponse[T]{
		Items: items,
		Total: total,
		Page:  pageNum,
		Size:  size,
	}
}
