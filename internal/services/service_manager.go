package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/nextstep-app/career-service/internal/auth"
	"github.com/nextstep-app/career-service/internal/events"
	"github.com/nextstep-app/career-service/internal/mailer"
	"github.com/nextstep-app/career-service/internal/recommend"
	"github.com/nextstep-app/career-service/internal/repositories"
	"github.com/nextstep-app/career-service/internal/validator"
)

// Dependencies carries everything the service layer needs from the outside.
type Dependencies struct {
	Repository  repositories.Repository
	Issuer      *auth.Issuer
	ResetTokens *auth.ResetTokens
	Mailer      mailer.Mailer
	Publisher   events.EventPublisher
	Recommender recommend.Recommender
	Logger      *slog.Logger
}

type serviceManager struct {
	deps      Dependencies
	validator *validator.Validator

	auth           AuthService
	profile        ProfileService
	career         CareerService
	content        ContentService
	quiz           QuizService
	attempt        AttemptService
	interaction    InteractionService
	recommendation RecommendationService
	report         ReportService

	mu          sync.RWMutex
	initialized bool
	shutdown    bool
}

func NewServiceManager(deps Dependencies) (ServiceManager, error) {
	if deps.Repository == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if deps.Issuer == nil {
		return nil, fmt.Errorf("token issuer is required")
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	return &serviceManager{
		deps:      deps,
		validator: validator.New(),
	}, nil
}

func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return fmt.Errorf("service manager already initialized")
	}
	if sm.shutdown {
		return fmt.Errorf("service manager has been shut down")
	}

	logger := sm.deps.Logger
	logger.Info("Initializing services")

	sm.auth = NewAuthService(sm.deps.Repository, sm.deps.Issuer, sm.deps.ResetTokens, sm.deps.Mailer, logger, sm.validator)
	sm.profile = NewProfileService(sm.deps.Repository, logger, sm.validator)
	sm.career = NewCareerService(sm.deps.Repository, logger, sm.validator)
	sm.content = NewContentService(sm.deps.Repository, logger, sm.validator)
	sm.quiz = NewQuizService(sm.deps.Repository, logger, sm.validator)
	sm.attempt = NewAttemptService(sm.deps.Repository, logger, sm.validator)
	sm.interaction = NewInteractionService(sm.deps.Repository, sm.deps.Publisher, logger, sm.validator)
	sm.recommendation = NewRecommendationService(sm.deps.Recommender, logger, sm.validator)
	sm.report = NewReportService(sm.deps.Repository, logger)

	sm.initialized = true
	logger.Info("Services initialized successfully")

	return nil
}

func (sm *serviceManager) Auth() AuthService {
	sm.ensureInitialized()
	return sm.auth
}

func (sm *serviceManager) Profile() ProfileService {
	sm.ensureInitialized()
	return sm.profile
}

func (sm *serviceManager) Career() CareerService {
	sm.ensureInitialized()
	return sm.career
}

func (sm *serviceManager) Content() ContentService {
	sm.ensureInitialized()
	return sm.content
}

func (sm *serviceManager) Quiz() QuizService {
	sm.ensureInitialized()
	return sm.quiz
}

func (sm *serviceManager) Attempt() AttemptService {
	sm.ensureInitialized()
	return sm.attempt
}

func (sm *serviceManager) Interaction() InteractionService {
	sm.ensureInitialized()
	return sm.interaction
}

func (sm *serviceManager) Recommendation() RecommendationService {
	sm.ensureInitialized()
	return sm.recommendation
}

func (sm *serviceManager) Report() ReportService {
	sm.ensureInitialized()
	return sm.report
}

func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}
	if sm.shutdown {
		return fmt.Errorf("service manager has been shut down")
	}

	if err := sm.deps.Repository.Ping(ctx); err != nil {
		return fmt.Errorf("repository health check failed: %w", err)
	}

	return nil
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.deps.Logger.Info("Shutting down services")

	if sm.deps.Publisher != nil {
		if err := sm.deps.Publisher.Close(); err != nil {
			sm.deps.Logger.Error("Failed to close event publisher", "error", err)
		}
	}

	sm.shutdown = true
	sm.initialized = false

	return nil
}

func (sm *serviceManager) ensureInitialized() {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized; call Initialize first")
	}
}
