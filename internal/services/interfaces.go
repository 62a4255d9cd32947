package services

import (
	"context"

	"github.com/nextstep-app/career-service/internal/auth"
	"github.com/nextstep-app/career-service/internal/models"
	"github.com/nextstep-app/career-service/internal/repositories"
)

// ===== RESULT TYPES =====

// LoginResult carries both tokens; the handler decides which goes in the
// body and which in the cookie.
type LoginResult struct {
	User         *models.User
	AccessToken  string
	RefreshToken string
}

type AttemptReportRow struct {
	AttemptID   uint
	UserEmail   string
	QuizTitle   string
	Score       *float64
	StartedAt   string
	CompletedAt string
}

// ===== SERVICE INTERFACES =====

type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *models.LoginRequest) (*LoginResult, error)
	// Refresh validates the refresh token and issues a fresh access token.
	// The refresh token itself is not rotated.
	Refresh(ctx context.Context, refreshToken string) (*models.RefreshResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	GetUser(ctx context.Context, userID uint) (*models.User, error)
	ChangePassword(ctx context.Context, userID uint, req *models.ChangePasswordRequest) error
	// RequestPasswordReset never discloses whether the email exists.
	RequestPasswordReset(ctx context.Context, req *models.PasswordResetRequest) error
	ConfirmPasswordReset(ctx context.Context, req *models.PasswordResetConfirmRequest) error
	ValidateAccess(ctx context.Context, token string) auth.ValidationResult
}

type ProfileService interface {
	Get(ctx context.Context, userID uint) (*models.UserProfile, error)
	Update(ctx context.Context, userID uint, req *models.ProfileUpdateRequest) (*models.UserProfile, error)
}

type CareerService interface {
	Create(ctx context.Context, req *models.CareerCreateRequest, creatorID uint) (*models.Career, error)
	GetByID(ctx context.Context, id uint) (*models.Career, error)
	Update(ctx context.Context, id uint, req *models.CareerUpdateRequest) (*models.Career, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters repositories.CareerFilters) (*models.ListResponse[*models.Career], error)
	// RebuildContentText recomputes and persists the denormalized search text.
	RebuildContentText(ctx context.Context, id uint) (*models.ContentTextResponse, error)

	CreateTag(ctx context.Context, req *models.TagRequest) (*models.Tag, error)
	UpdateTag(ctx context.Context, id uint, req *models.TagRequest) (*models.Tag, error)
	DeleteTag(ctx context.Context, id uint) error
	ListTags(ctx context.Context, search *string, page repositories.Page) (*models.ListResponse[*models.Tag], error)

	CreateSkill(ctx context.Context, req *models.SkillRequest) (*models.Skill, error)
	UpdateSkill(ctx context.Context, id uint, req *models.SkillRequest) (*models.Skill, error)
	DeleteSkill(ctx context.Context, id uint) error
	ListSkills(ctx context.Context, search *string, page repositories.Page) (*models.ListResponse[*models.Skill], error)
}

type ContentService interface {
	CreateResource(ctx context.Context, req *models.ResourceCreateRequest, creatorID uint) (*models.Resource, error)
	GetResource(ctx context.Context, id uint) (*models.Resource, error)
	UpdateResource(ctx context.Context, id uint, req *models.ResourceUpdateRequest) (*models.Resource, error)
	DeleteResource(ctx context.Context, id uint) error
	ListResources(ctx context.Context, filters repositories.ResourceFilters) (*models.ListResponse[*models.Resource], error)
	RebuildResourceContentText(ctx context.Context, id uint) (*models.ContentTextResponse, error)

	CreateMultimedia(ctx context.Context, req *models.MultimediaCreateRequest, creatorID uint) (*models.Multimedia, error)
	GetMultimedia(ctx context.Context, id uint) (*models.Multimedia, error)
	UpdateMultimedia(ctx context.Context, id uint, req *models.MultimediaUpdateRequest) (*models.Multimedia, error)
	DeleteMultimedia(ctx context.Context, id uint) error
	ListMultimedia(ctx context.Context, filters repositories.MultimediaFilters) (*models.ListResponse[*models.Multimedia], error)
	RebuildMultimediaContentText(ctx context.Context, id uint) (*models.ContentTextResponse, error)

	CreateStory(ctx context.Context, req *models.SuccessStoryCreateRequest, submitterID uint) (*models.SuccessStory, error)
	GetStory(ctx context.Context, id uint) (*models.SuccessStory, error)
	UpdateStory(ctx context.Context, id uint, req *models.SuccessStoryUpdateRequest) (*models.SuccessStory, error)
	DeleteStory(ctx context.Context, id uint) error
	// ListStories hides unapproved stories from non-staff callers.
	ListStories(ctx context.Context, filters repositories.StoryFilters, isStaff bool) (*models.ListResponse[*models.SuccessStory], error)
	ApproveStory(ctx context.Context, id uint, approverID uint) (*models.SuccessStory, error)
	RebuildStoryContentText(ctx context.Context, id uint) (*models.ContentTextResponse, error)

	CreateFeedback(ctx context.Context, req *models.FeedbackCreateRequest, userID *uint) (*models.Feedback, error)
	ListFeedback(ctx context.Context, filters repositories.FeedbackFilters) (*models.ListResponse[*models.Feedback], error)
	UpdateFeedbackStatus(ctx context.Context, id uint, req *models.FeedbackStatusRequest, handlerID uint) (*models.Feedback, error)
}

type QuizService interface {
	Create(ctx context.Context, req *models.QuizCreateRequest) (*models.Quiz, error)
	GetByID(ctx context.Context, id uint) (*models.Quiz, error)
	// GetActive returns the quiz only when it is active.
	GetActive(ctx context.Context, id uint) (*models.Quiz, error)
	GetRandomActive(ctx context.Context) (*models.Quiz, error)
	Update(ctx context.Context, id uint, req *models.QuizUpdateRequest) (*models.Quiz, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters repositories.QuizFilters) (*models.ListResponse[*models.Quiz], error)

	CreateQuestion(ctx context.Context, req *models.QuizQuestionCreateRequest) (*models.QuizQuestion, error)
	GetQuestion(ctx context.Context, id uint) (*models.QuizQuestion, error)
	UpdateQuestion(ctx context.Context, id uint, req *models.QuizQuestionUpdateRequest) (*models.QuizQuestion, error)
	DeleteQuestion(ctx context.Context, id uint) error
}

type AttemptService interface {
	Start(ctx context.Context, req *models.QuizAttemptCreateRequest, userID uint) (*models.QuizAttempt, error)
	Complete(ctx context.Context, attemptID uint, req *models.QuizAttemptCompleteRequest, userID uint) (*models.QuizAttempt, error)
	GetByID(ctx context.Context, id uint, userID uint, isStaff bool) (*models.QuizAttempt, error)
	ListForUser(ctx context.Context, userID uint, filters repositories.AttemptFilters) (*models.ListResponse[*models.QuizAttempt], error)
	ListAll(ctx context.Context, filters repositories.AttemptFilters) (*models.ListResponse[*models.QuizAttempt], error)
}

type InteractionService interface {
	Record(ctx context.Context, req *models.InteractionCreateRequest, userID uint) (*models.Interaction, error)
	ListForUser(ctx context.Context, userID uint, filters repositories.InteractionFilters) (*models.ListResponse[*models.Interaction], error)
	ListAll(ctx context.Context, filters repositories.InteractionFilters) (*models.ListResponse[*models.Interaction], error)
}

type RecommendationService interface {
	Recommend(ctx context.Context, req *models.RecommendationRequest, userID uint) ([]models.Recommendation, error)
}

type ReportService interface {
	// AttemptsWorkbook renders completed attempts as an xlsx workbook.
	AttemptsWorkbook(ctx context.Context, filters repositories.AttemptFilters) ([]byte, error)
}

// ServiceManager aggregates all services behind one lifecycle.
type ServiceManager interface {
	Initialize(ctx context.Context) error

	Auth() AuthService
	Profile() ProfileService
	Career() CareerService
	Content() ContentService
	Quiz() QuizService
	Attempt() AttemptService
	Interaction() InteractionService
	Recommendation() RecommendationService
	Report() ReportService

	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
