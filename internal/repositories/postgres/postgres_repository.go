package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/nextstep-app/career-service/internal/models"
	"github.com/nextstep-app/career-service/internal/repositories"
)

// PostgreSQLRepository implements the main Repository interface
type PostgreSQLRepository struct {
	db          *gorm.DB
	redisClient *redis.Client

	// Repository instances
	user    repositories.UserRepository
	token   repositories.TokenRepository
	profile repositories.ProfileRepository

	tag        repositories.TagRepository
	skill      repositories.SkillRepository
	career     repositories.CareerRepository
	resource   repositories.ResourceRepository
	multimedia repositories.MultimediaRepository
	story      repositories.StoryRepository
	feedback   repositories.FeedbackRepository

	quiz         repositories.QuizRepository
	quizQuestion repositories.QuizQuestionRepository
	attempt      repositories.AttemptRepository

	interaction repositories.InteractionRepository
}

// RepositoryConfig holds configuration for repository initialization
type RepositoryConfig struct {
	DB          *gorm.DB
	RedisClient *redis.Client
}

// NewPostgreSQLRepository creates a new repository with all sub-repositories
func NewPostgreSQLRepository(config RepositoryConfig) repositories.Repository {
	return newPostgreSQLRepository(config.DB, config.RedisClient)
}

func newPostgreSQLRepository(db *gorm.DB, redisClient *redis.Client) *PostgreSQLRepository {
	repo := &PostgreSQLRepository{
		db:          db,
		redisClient: redisClient,
	}

	repo.user = NewUserPostgreSQL(db)
	repo.token = NewTokenPostgreSQL(db)
	repo.profile = NewProfilePostgreSQL(db)

	repo.tag = NewTagPostgreSQL(db)
	repo.skill = NewSkillPostgreSQL(db)
	repo.career = NewCareerPostgreSQL(db)
	repo.resource = NewResourcePostgreSQL(db)
	repo.multimedia = NewMultimediaPostgreSQL(db)
	repo.story = NewStoryPostgreSQL(db)
	repo.feedback = NewFeedbackPostgreSQL(db)

	repo.quiz = NewQuizPostgreSQL(db, redisClient)
	repo.quizQuestion = NewQuizQuestionPostgreSQL(db, redisClient)
	repo.attempt = NewAttemptPostgreSQL(db)

	repo.interaction = NewInteractionPostgreSQL(db)

	return repo
}

func (r *PostgreSQLRepository) User() repositories.UserRepository       { return r.user }
func (r *PostgreSQLRepository) Token() repositories.TokenRepository    { return r.token }
func (r *PostgreSQLRepository) Profile() repositories.ProfileRepository { return r.profile }

func (r *PostgreSQLRepository) Tag() repositories.TagRepository               { return r.tag }
func (r *PostgreSQLRepository) Skill() repositories.SkillRepository           { return r.skill }
func (r *PostgreSQLRepository) Career() repositories.CareerRepository         { return r.career }
func (r *PostgreSQLRepository) Resource() repositories.ResourceRepository     { return r.resource }
func (r *PostgreSQLRepository) Multimedia() repositories.MultimediaRepository { return r.multimedia }
func (r *PostgreSQLRepository) Story() repositories.StoryRepository           { return r.story }
func (r *PostgreSQLRepository) Feedback() repositories.FeedbackRepository     { return r.feedback }

func (r *PostgreSQLRepository) Quiz() repositories.QuizRepository { return r.quiz }
func (r *PostgreSQLRepository) QuizQuestion() repositories.QuizQuestionRepository {
	return r.quizQuestion
}
func (r *PostgreSQLRepository) Attempt() repositories.AttemptRepository { return r.attempt }

func (r *PostgreSQLRepository) Interaction() repositories.InteractionRepository {
	return r.interaction
}

// WithTransaction executes a function within a database transaction
func (r *PostgreSQLRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(newPostgreSQLRepository(tx, r.redisClient))
	})
}

// Ping checks the health of database and cache connections
func (r *PostgreSQLRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	if r.redisClient != nil {
		if err := r.redisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("cache ping failed: %w", err)
		}
	}

	return nil
}

// Close closes all connections
func (r *PostgreSQLRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	if r.redisClient != nil {
		if err := r.redisClient.Close(); err != nil {
			return fmt.Errorf("failed to close Redis: %w", err)
		}
	}

	return nil
}

// RepositoryManager implements the repositories.RepositoryManager interface
type RepositoryManager struct {
	config RepositoryConfig
	repo   repositories.Repository
}

func NewRepositoryManager(config RepositoryConfig) repositories.RepositoryManager {
	return &RepositoryManager{
		config: config,
	}
}

// Initialize verifies connections, runs migrations and builds the repository
func (rm *RepositoryManager) Initialize() error {
	if rm.config.DB == nil {
		return fmt.Errorf("database connection is required")
	}

	sqlDB, err := rm.config.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}

	if rm.config.RedisClient != nil {
		if _, err := rm.config.RedisClient.Ping(ctx).Result(); err != nil {
			return fmt.Errorf("redis connection failed: %w", err)
		}
	}

	if err := rm.migrate(); err != nil {
		return fmt.Errorf("database migration failed: %w", err)
	}

	rm.repo = NewPostgreSQLRepository(rm.config)

	return nil
}

func (rm *RepositoryManager) migrate() error {
	return rm.config.DB.AutoMigrate(
		&models.User{},
		&models.UserToken{},
		&models.UserProfile{},
		&models.Tag{},
		&models.Skill{},
		&models.Career{},
		&models.Resource{},
		&models.Multimedia{},
		&models.SuccessStory{},
		&models.Feedback{},
		&models.Quiz{},
		&models.QuizQuestion{},
		&models.QuizAttempt{},
		&models.Interaction{},
	)
}

// GetRepository returns the repository instance
func (rm *RepositoryManager) GetRepository() repositories.Repository {
	return rm.repo
}

// HealthCheck checks the health of all repository connections
func (rm *RepositoryManager) HealthCheck(ctx context.Context) error {
	if rm.repo == nil {
		return fmt.Errorf("repository not initialized")
	}

	return rm.repo.Ping(ctx)
}

// Shutdown gracefully shuts down all repository connections
func (rm *RepositoryManager) Shutdown(ctx context.Context) error {
	if rm.repo == nil {
		return nil
	}

	return rm.repo.Close()
}
