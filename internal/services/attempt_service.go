package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/nextstep-app/career-service/internal/models"
	"github.com/nextstep-app/career-service/internal/repositories"
	"github.com/nextstep-app/career-service/internal/validator"
)

type attemptService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewAttemptService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) AttemptService {
	return &attemptService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

func (s *attemptService) Start(ctx context.Context, req *models.QuizAttemptCreateRequest, userID uint) (*models.QuizAttempt, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	quiz, err := s.repo.Quiz().GetByID(ctx, nil, req.QuizID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}
	if !quiz.IsActive {
		return nil, ErrQuizInactive
	}

	attempt := &models.QuizAttempt{
		UserID:  userID,
		QuizID:  req.QuizID,
		Answers: req.Answers,
	}

	if err := s.repo.Attempt().Create(ctx, nil, attempt); err != nil {
		return nil, fmt.Errorf("failed to create attempt: %w", err)
	}

	s.logger.Info("Quiz attempt started", "attempt_id", attempt.ID, "quiz_id", req.QuizID, "user_id", userID)

	return attempt, nil
}

func (s *attemptService) Complete(ctx context.Context, attemptID uint, req *models.QuizAttemptCompleteRequest, userID uint) (*models.QuizAttempt, error) {
	attempt, err := s.repo.Attempt().GetByID(ctx, nil, attemptID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("failed to get attempt: %w", err)
	}

	if attempt.UserID != userID {
		return nil, NewPermissionError(userID, attemptID, "quiz_attempt", "complete", "attempt belongs to another user")
	}
	if attempt.CompletedAt != nil {
		return nil, ErrAttemptCompleted
	}

	if req.Answers != nil {
		attempt.Answers = req.Answers
	}

	questions, err := s.repo.QuizQuestion().ListByQuiz(ctx, nil, attempt.QuizID)
	if err != nil {
		return nil, fmt.Errorf("failed to load quiz questions: %w", err)
	}

	attempt.Score = ScoreAttempt(questions, attempt.Answers)
	now := time.Now()
	attempt.CompletedAt = &now

	if err := s.repo.Attempt().Update(ctx, nil, attempt); err != nil {
		return nil, fmt.Errorf("failed to complete attempt: %w", err)
	}

	s.logger.Info("Quiz attempt completed", "attempt_id", attemptID, "score", attempt.Score)

	return attempt, nil
}

func (s *attemptService) GetByID(ctx context.Context, id uint, userID uint, isStaff bool) (*models.QuizAttempt, error) {
	attempt, err := s.repo.Attempt().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("failed to get attempt: %w", err)
	}

	if attempt.UserID != userID && !isStaff {
		return nil, NewPermissionError(userID, id, "quiz_attempt", "read", "attempt belongs to another user")
	}

	return attempt, nil
}

func (s *attemptService) ListForUser(ctx context.Context, userID uint, filters repositories.AttemptFilters) (*models.ListResponse[*models.QuizAttempt], error) {
	filters.UserID = &userID
	return s.list(ctx, filters)
}

func (s *attemptService) ListAll(ctx context.Context, filters repositories.AttemptFilters) (*models.ListResponse[*models.QuizAttempt], error) {
	return s.list(ctx, filters)
}

func (s *attemptService) list(ctx context.Context, filters repositories.AttemptFilters) (*models.ListResponse[*models.QuizAttempt], error) {
	attempts, total, err := s.repo.Attempt().List(ctx, nil, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}

	return buildListResponse(attempts, total, filters.Page), nil
}

// ScoreAttempt computes a percentage over the scorable questions: mcq
// questions that carry a correct answer, weighted by weightage. Returns nil
// when the quiz has no scorable question, so purely reflective quizzes stay
// unscored.
func ScoreAttempt(questions []*models.QuizQuestion, answers map[string]interface{}) *float64 {
	var totalWeight, earned float64

	for _, q := range questions {
		if q.Type != models.QuestionMCQ || q.CorrectAnswer == nil || q.Weightage <= 0 {
			continue
		}
		totalWeight += q.Weightage

		answer, ok := answers[strconv.FormatUint(uint64(q.ID), 10)]
		if !ok {
			continue
		}
		if answerString(answer) == *q.CorrectAnswer {
			earned += q.Weightage
		}
	}

	if totalWeight == 0 {
		return nil
	}

	score := earned / totalWeight * 100
	return &score
}

// answerString normalizes a free-form answer value for comparison. JSON
// numbers arrive as float64; integral ones render without a decimal point.
func answerString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", v)
	}
}
