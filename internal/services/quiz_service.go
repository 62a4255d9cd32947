package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nextstep-app/career-service/internal/models"
	"github.com/nextstep-app/career-service/internal/repositories"
	"github.com/nextstep-app/career-service/internal/validator"
)

type quizService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewQuizService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) QuizService {
	return &quizService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

// ===== QUIZZES =====

func (s *quizService) Create(ctx context.Context, req *models.QuizCreateRequest) (*models.Quiz, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	quiz := &models.Quiz{
		Title:       req.Title,
		Description: req.Description,
		IsActive:    true,
	}
	if req.IsActive != nil {
		quiz.IsActive = *req.IsActive
	}

	if err := s.repo.Quiz().Create(ctx, nil, quiz); err != nil {
		return nil, fmt.Errorf("failed to create quiz: %w", err)
	}

	s.logger.Info("Quiz created", "quiz_id", quiz.ID, "title", quiz.Title)

	return quiz, nil
}

func (s *quizService) GetByID(ctx context.Context, id uint) (*models.Quiz, error) {
	quiz, err := s.repo.Quiz().GetByIDWithQuestions(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}

	return quiz, nil
}

func (s *quizService) GetActive(ctx context.Context, id uint) (*models.Quiz, error) {
	quiz, err := s.repo.Quiz().GetActiveByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get active quiz: %w", err)
	}

	return quiz, nil
}

func (s *quizService) GetRandomActive(ctx context.Context) (*models.Quiz, error) {
	quiz, err := s.repo.Quiz().GetRandomActive(ctx, nil)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrNoActiveQuiz
		}
		return nil, fmt.Errorf("failed to get random quiz: %w", err)
	}

	return quiz, nil
}

func (s *quizService) Update(ctx context.Context, id uint, req *models.QuizUpdateRequest) (*models.Quiz, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	quiz, err := s.repo.Quiz().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}

	if req.Title != nil {
		quiz.Title = *req.Title
	}
	if req.Description != nil {
		quiz.Description = *req.Description
	}
	if req.IsActive != nil {
		quiz.IsActive = *req.IsActive
	}

	if err := s.repo.Quiz().Update(ctx, nil, quiz); err != nil {
		return nil, fmt.Errorf("failed to update quiz: %w", err)
	}

	s.logger.Info("Quiz updated", "quiz_id", id)

	return quiz, nil
}

func (s *quizService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.Quiz().GetByID(ctx, nil, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrQuizNotFound
		}
		return fmt.Errorf("failed to get quiz: %w", err)
	}

	if err := s.repo.Quiz().Delete(ctx, nil, id); err != nil {
		return fmt.Errorf("failed to delete quiz: %w", err)
	}

	s.logger.Info("Quiz deleted", "quiz_id", id)

	return nil
}

func (s *quizService) List(ctx context.Context, filters repositories.QuizFilters) (*models.ListResponse[*models.Quiz], error) {
	quizzes, total, err := s.repo.Quiz().List(ctx, nil, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}

	return buildListResponse(quizzes, total, filters.Page), nil
}

// ===== QUESTIONS =====

func (s *quizService) CreateQuestion(ctx context.Context, req *models.QuizQuestionCreateRequest) (*models.QuizQuestion, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if _, err := s.repo.Quiz().GetByID(ctx, nil, req.QuizID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}

	question := &models.QuizQuestion{
		QuizID:        req.QuizID,
		QuestionText:  req.QuestionText,
		Type:          req.Type,
		Options:       req.Options,
		CorrectAnswer: req.CorrectAnswer,
		Weightage:     1,
	}
	if question.Type == "" {
		question.Type = models.QuestionMCQ
	}
	if req.Weightage != nil {
		question.Weightage = *req.Weightage
	}

	if err := s.repo.QuizQuestion().Create(ctx, nil, question); err != nil {
		return nil, fmt.Errorf("failed to create quiz question: %w", err)
	}

	s.logger.Info("Quiz question created", "question_id", question.ID, "quiz_id", question.QuizID)

	return question, nil
}

func (s *quizService) GetQuestion(ctx context.Context, id uint) (*models.QuizQuestion, error) {
	question, err := s.repo.QuizQuestion().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to get quiz question: %w", err)
	}

	return question, nil
}

func (s *quizService) UpdateQuestion(ctx context.Context, id uint, req *models.QuizQuestionUpdateRequest) (*models.QuizQuestion, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	question, err := s.GetQuestion(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.QuestionText != nil {
		question.QuestionText = *req.QuestionText
	}
	if req.Type != nil {
		question.Type = *req.Type
	}
	if req.Options != nil {
		question.Options = req.Options
	}
	if req.CorrectAnswer != nil {
		question.CorrectAnswer = req.CorrectAnswer
	}
	if req.Weightage != nil {
		question.Weightage = *req.Weightage
	}

	if err := s.repo.QuizQuestion().Update(ctx, nil, question); err != nil {
		return nil, fmt.Errorf("failed to update quiz question: %w", err)
	}

	s.logger.Info("Quiz question updated", "question_id", id)

	return question, nil
}

func (s *quizService) DeleteQuestion(ctx context.Context, id uint) error {
	if _, err := s.GetQuestion(ctx, id); err != nil {
		return err
	}

	if err := s.repo.QuizQuestion().Delete(ctx, nil, id); err != nil {
		return fmt.Errorf("failed to delete quiz question: %w", err)
	}

	s.logger.Info("Quiz question deleted", "question_id", id)

	return nil
}
