package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/nextstep-app/career-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type Page struct {
	Limit     int    `json:"limit"`
	Offset    int    `json:"offset"`
	SortBy    string `json:"sort_by"`
	SortOrder string `json:"sort_order"` // "asc", "desc"
}

type CareerFilters struct {
	Search  *string `json:"search"`
	Domain  *string `json:"domain"`
	TagID   *uint   `json:"tag_id"`
	SkillID *uint   `json:"skill_id"`
	Page
}

type ResourceFilters struct {
	Search   *string                  `json:"search"`
	Category *models.ResourceCategory `json:"category"`
	TagID    *uint                    `json:"tag_id"`
	Page
}

type MultimediaFilters struct {
	Search *string                `json:"search"`
	Type   *models.MultimediaType `json:"type"`
	TagID  *uint                  `json:"tag_id"`
	Page
}

type StoryFilters struct {
	Search     *string `json:"search"`
	Domain     *string `json:"domain"`
	IsApproved *bool   `json:"is_approved"`
	Page
}

type FeedbackFilters struct {
	Category *models.FeedbackCategory `json:"category"`
	Status   *models.FeedbackStatus   `json:"status"`
	Page
}

type QuizFilters struct {
	Search   *string `json:"search"`
	IsActive *bool   `json:"is_active"`
	Page
}

type AttemptFilters struct {
	UserID    *uint      `json:"user_id"`
	QuizID    *uint      `json:"quiz_id"`
	Completed *bool      `json:"completed"`
	DateFrom  *time.Time `json:"date_from"`
	DateTo    *time.Time `json:"date_to"`
	Page
}

type InteractionFilters struct {
	UserID     *uint                   `json:"user_id"`
	Type       *models.InteractionType `json:"type"`
	TargetType *models.TargetType      `json:"target_type"`
	TargetID   *uint                   `json:"target_id"`
	DateFrom   *time.Time              `json:"date_from"`
	DateTo     *time.Time              `json:"date_to"`
	Page
}

// ===== REPOSITORY INTERFACES =====

type UserRepository interface {
	Create(ctx context.Context, tx *gorm.DB, user *models.User) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.User, error)
	// GetByEmail performs a case-insensitive email lookup.
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error)
	GetByUsername(ctx context.Context, tx *gorm.DB, username string) (*models.User, error)
	Update(ctx context.Context, tx *gorm.DB, user *models.User) error
	ExistsByEmail(ctx context.Context, tx *gorm.DB, email string) (bool, error)
	ExistsByUsername(ctx context.Context, tx *gorm.DB, username string) (bool, error)
}

type TokenRepository interface {
	// Upsert overwrites the user's cached token pair (one row per user).
	Upsert(ctx context.Context, tx *gorm.DB, token *models.UserToken) error
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uint) (*models.UserToken, error)
	UpdateAccessToken(ctx context.Context, tx *gorm.DB, userID uint, accessToken string) error
	Delete(ctx context.Context, tx *gorm.DB, userID uint) error
}

type ProfileRepository interface {
	GetOrCreate(ctx context.Context, tx *gorm.DB, userID uint) (*models.UserProfile, error)
	Update(ctx context.Context, tx *gorm.DB, profile *models.UserProfile) error
	ReplaceInterests(ctx context.Context, tx *gorm.DB, profile *models.UserProfile, tagIDs []uint) error
}

type TagRepository interface {
	Create(ctx context.Context, tx *gorm.DB, tag *models.Tag) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Tag, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]models.Tag, error)
	Update(ctx context.Context, tx *gorm.DB, tag *models.Tag) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	List(ctx context.Context, tx *gorm.DB, search *string, page Page) ([]*models.Tag, int64, error)
}

type SkillRepository interface {
	Create(ctx context.Context, tx *gorm.DB, skill *models.Skill) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Skill, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]models.Skill, error)
	Update(ctx context.Context, tx *gorm.DB, skill *models.Skill) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	List(ctx context.Context, tx *gorm.DB, search *string, page Page) ([]*models.Skill, int64, error)
}

type CareerRepository interface {
	Create(ctx context.Context, tx *gorm.DB, career *models.Career) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Career, error)
	Update(ctx context.Context, tx *gorm.DB, career *models.Career) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	List(ctx context.Context, tx *gorm.DB, filters CareerFilters) ([]*models.Career, int64, error)
	ReplaceTags(ctx context.Context, tx *gorm.DB, career *models.Career, tags []models.Tag) error
	ReplaceSkills(ctx context.Context, tx *gorm.DB, career *models.Career, skills []models.Skill) error
	SaveContentText(ctx context.Context, tx *gorm.DB, career *models.Career) error
}

type ResourceRepository interface {
	Create(ctx context.Context, tx *gorm.DB, resource *models.Resource) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Resource, error)
	Update(ctx context.Context, tx *gorm.DB, resource *models.Resource) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	List(ctx context.Context, tx *gorm.DB, filters ResourceFilters) ([]*models.Resource, int64, error)
	ReplaceTags(ctx context.Context, tx *gorm.DB, resource *models.Resource, tags []models.Tag) error
	IncrementViews(ctx context.Context, tx *gorm.DB, id uint) error
	SaveContentText(ctx context.Context, tx *gorm.DB, resource *models.Resource) error
}

type MultimediaRepository interface {
	Create(ctx context.Context, tx *gorm.DB, media *models.Multimedia) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Multimedia, error)
	Update(ctx context.Context, tx *gorm.DB, media *models.Multimedia) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	List(ctx context.Context, tx *gorm.DB, filters MultimediaFilters) ([]*models.Multimedia, int64, error)
	ReplaceTags(ctx context.Context, tx *gorm.DB, media *models.Multimedia, tags []models.Tag) error
	SaveContentText(ctx context.Context, tx *gorm.DB, media *models.Multimedia) error
}

type StoryRepository interface {
	Create(ctx context.Context, tx *gorm.DB, story *models.SuccessStory) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.SuccessStory, error)
	Update(ctx context.Context, tx *gorm.DB, story *models.SuccessStory) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	List(ctx context.Context, tx *gorm.DB, filters StoryFilters) ([]*models.SuccessStory, int64, error)
	SaveContentText(ctx context.Context, tx *gorm.DB, story *models.SuccessStory) error
}

type FeedbackRepository interface {
	Create(ctx context.Context, tx *gorm.DB, feedback *models.Feedback) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Feedback, error)
	Update(ctx context.Context, tx *gorm.DB, feedback *models.Feedback) error
	List(ctx context.Context, tx *gorm.DB, filters FeedbackFilters) ([]*models.Feedback, int64, error)
}

type QuizRepository interface {
	Create(ctx context.Context, tx *gorm.DB, quiz *models.Quiz) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Quiz, error)
	GetByIDWithQuestions(ctx context.Context, tx *gorm.DB, id uint) (*models.Quiz, error)
	// GetActiveByID returns only active quizzes.
	GetActiveByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Quiz, error)
	GetRandomActive(ctx context.Context, tx *gorm.DB) (*models.Quiz, error)
	Update(ctx context.Context, tx *gorm.DB, quiz *models.Quiz) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	List(ctx context.Context, tx *gorm.DB, filters QuizFilters) ([]*models.Quiz, int64, error)
}

type QuizQuestionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, question *models.QuizQuestion) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.QuizQuestion, error)
	Update(ctx context.Context, tx *gorm.DB, question *models.QuizQuestion) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	ListByQuiz(ctx context.Context, tx *gorm.DB, quizID uint) ([]*models.QuizQuestion, error)
}

type AttemptRepository interface {
	Create(ctx context.Context, tx *gorm.DB, attempt *models.QuizAttempt) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.QuizAttempt, error)
	Update(ctx context.Context, tx *gorm.DB, attempt *models.QuizAttempt) error
	List(ctx context.Context, tx *gorm.DB, filters AttemptFilters) ([]*models.QuizAttempt, int64, error)
}

type InteractionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, interaction *models.Interaction) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Interaction, error)
	List(ctx context.Context, tx *gorm.DB, filters InteractionFilters) ([]*models.Interaction, int64, error)
}

// ===== AGGREGATE =====

type Repository interface {
	User() UserRepository
	Token() TokenRepository
	Profile() ProfileRepository

	Tag() TagRepository
	Skill() SkillRepository
	Career() CareerRepository
	Resource() ResourceRepository
	Multimedia() MultimediaRepository
	Story() StoryRepository
	Feedback() FeedbackRepository

	Quiz() QuizRepository
	QuizQuestion() QuizQuestionRepository
	Attempt() AttemptRepository

	Interaction() InteractionRepository

	// WithTransaction executes fn with a repository bound to one transaction.
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	Ping(ctx context.Context) error
	Close() error
}

// RepositoryManager owns repository lifecycle: connect, migrate, health, shutdown.
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
