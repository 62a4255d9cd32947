package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/nextstep-app/career-service/internal/cache"
	"github.com/nextstep-app/career-service/internal/models"
	"github.com/nextstep-app/career-service/internal/repositories"
)

const quizCacheTTL = 10 * time.Minute

type quizRepository struct {
	db    *gorm.DB
	cache *cache.CacheHelper
}

func NewQuizPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.QuizRepository {
	return &quizRepository{
		db:    db,
		cache: cache.NewCacheHelper(redisClient, "quiz"),
	}
}

func (r *quizRepository) Create(ctx context.Context, tx *gorm.DB, quiz *models.Quiz) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Create(quiz).Error; err != nil {
		return handleDBError(err, "create quiz")
	}
	return nil
}

func (r *quizRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Quiz, error) {
	db := r.getDB(tx)
	var quiz models.Quiz

	if err := db.WithContext(ctx).First(&quiz, id).Error; err != nil {
		return nil, handleDBError(err, "get quiz by id")
	}

	return &quiz, nil
}

func (r *quizRepository) GetByIDWithQuestions(ctx context.Context, tx *gorm.DB, id uint) (*models.Quiz, error) {
	// Skip the cache inside transactions so writes stay read-your-own
	if tx == nil {
		var quiz models.Quiz
		err := r.cache.CacheOrExecute(ctx, r.cacheKey(id), &quiz, quizCacheTTL, func() (interface{}, error) {
			return r.loadWithQuestions(ctx, r.db, id)
		})
		if err == nil {
			return &quiz, nil
		}
		if repositories.IsNotFoundError(err) {
			return nil, err
		}
		// Cache failure falls through to the database
	}

	return r.loadWithQuestions(ctx, r.getDB(tx), id)
}

func (r *quizRepository) loadWithQuestions(ctx context.Context, db *gorm.DB, id uint) (*models.Quiz, error) {
	var quiz models.Quiz

	if err := db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("quiz_questions.id ASC")
		}).
		First(&quiz, id).Error; err != nil {
		return nil, handleDBError(err, "get quiz with questions")
	}

	return &quiz, nil
}

func (r *quizRepository) GetActiveByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Quiz, error) {
	db := r.getDB(tx)
	var quiz models.Quiz

	if err := db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("quiz_questions.id ASC")
		}).
		Where("is_active = true").
		First(&quiz, id).Error; err != nil {
		return nil, handleDBError(err, "get active quiz")
	}

	return &quiz, nil
}

func (r *quizRepository) GetRandomActive(ctx context.Context, tx *gorm.DB) (*models.Quiz, error) {
	db := r.getDB(tx)
	var quiz models.Quiz

	if err := db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("quiz_questions.id ASC")
		}).
		Where("is_active = true").
		Order("RANDOM()").
		First(&quiz).Error; err != nil {
		return nil, handleDBError(err, "get random active quiz")
	}

	return &quiz, nil
}

func (r *quizRepository) Update(ctx context.Context, tx *gorm.DB, quiz *models.Quiz) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Save(quiz).Error; err != nil {
		return handleDBError(err, "update quiz")
	}

	r.invalidate(ctx, quiz.ID)
	return nil
}

func (r *quizRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Delete(&models.Quiz{}, id).Error; err != nil {
		return handleDBError(err, "delete quiz")
	}

	r.invalidate(ctx, id)
	return nil
}

func (r *quizRepository) List(ctx context.Context, tx *gorm.DB, filters repositories.QuizFilters) ([]*models.Quiz, int64, error) {
	db := r.getDB(tx)
	var quizzes []*models.Quiz
	var total int64

	query := db.WithContext(ctx).Model(&models.Quiz{})

	if filters.Search != nil {
		search := "%" + *filters.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", search, search)
	}
	if filters.IsActive != nil {
		query = query.Where("is_active = ?", *filters.IsActive)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count quizzes")
	}

	query = applyPage(query, filters.Page, map[string]string{
		"title":      "title",
		"created_at": "created_at",
		"id":         "id",
	}, "created_at")

	if err := query.Find(&quizzes).Error; err != nil {
		return nil, 0, handleDBError(err, "list quizzes")
	}

	return quizzes, total, nil
}

func (r *quizRepository) cacheKey(id uint) string {
	return fmt.Sprintf("with-questions:%d", id)
}

func (r *quizRepository) invalidate(ctx context.Context, id uint) {
	// Best effort: a stale entry expires on its own TTL anyway
	_ = r.cache.Delete(ctx, r.cacheKey(id))
}

func (r *quizRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// ===== QUIZ QUESTION REPOSITORY =====

type quizQuestionRepository struct {
	db    *gorm.DB
	cache *cache.CacheHelper
}

func NewQuizQuestionPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.QuizQuestionRepository {
	return &quizQuestionRepository{
		db:    db,
		cache: cache.NewCacheHelper(redisClient, "quiz"),
	}
}

func (r *quizQuestionRepository) Create(ctx context.Context, tx *gorm.DB, question *models.QuizQuestion) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Create(question).Error; err != nil {
		return handleDBError(err, "create quiz question")
	}

	r.invalidateQuiz(ctx, question.QuizID)
	return nil
}

func (r *quizQuestionRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.QuizQuestion, error) {
	db := r.getDB(tx)
	var question models.QuizQuestion

	if err := db.WithContext(ctx).First(&question, id).Error; err != nil {
		return nil, handleDBError(err, "get quiz question by id")
	}

	return &question, nil
}

func (r *quizQuestionRepository) Update(ctx context.Context, tx *gorm.DB, question *models.QuizQuestion) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Save(question).Error; err != nil {
		return handleDBError(err, "update quiz question")
	}

	r.invalidateQuiz(ctx, question.QuizID)
	return nil
}

func (r *quizQuestionRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	db := r.getDB(tx)

	var question models.QuizQuestion
	if err := db.WithContext(ctx).First(&question, id).Error; err != nil {
		return handleDBError(err, "get quiz question for delete")
	}

	if err := db.WithContext(ctx).Delete(&models.QuizQuestion{}, id).Error; err != nil {
		return handleDBError(err, "delete quiz question")
	}

	r.invalidateQuiz(ctx, question.QuizID)
	return nil
}

func (r *quizQuestionRepository) ListByQuiz(ctx context.Context, tx *gorm.DB, quizID uint) ([]*models.QuizQuestion, error) {
	db := r.getDB(tx)
	var questions []*models.QuizQuestion

	if err := db.WithContext(ctx).
		Where("quiz_id = ?", quizID).
		Order("id ASC").
		Find(&questions).Error; err != nil {
		return nil, handleDBError(err, "list quiz questions")
	}

	return questions, nil
}

func (r *quizQuestionRepository) invalidateQuiz(ctx context.Context, quizID uint) {
	_ = r.cache.Delete(ctx, fmt.Sprintf("with-questions:%d", quizID))
}

func (r *quizQuestionRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// ===== ATTEMPT REPOSITORY =====

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptPostgreSQL(db *gorm.DB) repositories.AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Create(ctx context.Context, tx *gorm.DB, attempt *models.QuizAttempt) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Create(attempt).Error; err != nil {
		return handleDBError(err, "create quiz attempt")
	}
	return nil
}

func (r *attemptRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.QuizAttempt, error) {
	db := r.getDB(tx)
	var attempt models.QuizAttempt

	if err := db.WithContext(ctx).
		Preload("Quiz").
		First(&attempt, id).Error; err != nil {
		return nil, handleDBError(err, "get quiz attempt by id")
	}

	return &attempt, nil
}

func (r *attemptRepository) Update(ctx context.Context, tx *gorm.DB, attempt *models.QuizAttempt) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Save(attempt).Error; err != nil {
		return handleDBError(err, "update quiz attempt")
	}
	return nil
}

func (r *attemptRepository) List(ctx context.Context, tx *gorm.DB, filters repositories.AttemptFilters) ([]*models.QuizAttempt, int64, error) {
	db := r.getDB(tx)
	var attempts []*models.QuizAttempt
	var total int64

	query := db.WithContext(ctx).Model(&models.QuizAttempt{}).Preload("Quiz")

	if filters.UserID != nil {
		query = query.Where("user_id = ?", *filters.UserID)
	}
	if filters.QuizID != nil {
		query = query.Where("quiz_id = ?", *filters.QuizID)
	}
	if filters.Completed != nil {
		if *filters.Completed {
			query = query.Where("completed_at IS NOT NULL")
		} else {
			query = query.Where("completed_at IS NULL")
		}
	}
	if filters.DateFrom != nil {
		query = query.Where("started_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("started_at <= ?", *filters.DateTo)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count quiz attempts")
	}

	query = applyPage(query, filters.Page, map[string]string{
		"started_at":   "started_at",
		"completed_at": "completed_at",
		"score":        "score",
		"id":           "id",
	}, "started_at")

	if err := query.Find(&attempts).Error; err != nil {
		return nil, 0, handleDBError(err, "list quiz attempts")
	}

	return attempts, total, nil
}

func (r *attemptRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}
