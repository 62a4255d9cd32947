package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nextstep-app/career-service/internal/services"
)

type HandlerManager struct {
	authHandler           *AuthHandler
	profileHandler        *ProfileHandler
	careerHandler         *CareerHandler
	contentHandler        *ContentHandler
	quizHandler           *QuizHandler
	interactionHandler    *InteractionHandler
	recommendationHandler *RecommendationHandler
	reportHandler         *ReportHandler
	authMiddleware        *AuthMiddleware

	serviceManager services.ServiceManager
}

func NewHandlerManager(serviceManager services.ServiceManager, cookie CookieConfig, logger *slog.Logger) *HandlerManager {
	return &HandlerManager{
		authHandler:           NewAuthHandler(serviceManager.Auth(), cookie, logger),
		profileHandler:        NewProfileHandler(serviceManager.Profile(), logger),
		careerHandler:         NewCareerHandler(serviceManager.Career(), logger),
		contentHandler:        NewContentHandler(serviceManager.Content(), logger),
		quizHandler:           NewQuizHandler(serviceManager.Quiz(), serviceManager.Attempt(), logger),
		interactionHandler:    NewInteractionHandler(serviceManager.Interaction(), logger),
		recommendationHandler: NewRecommendationHandler(serviceManager.Recommendation(), logger),
		reportHandler:         NewReportHandler(serviceManager.Report(), logger),
		authMiddleware:        NewAuthMiddleware(serviceManager.Auth()),
		serviceManager:        serviceManager,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	requireAuth := hm.authMiddleware.RequireAuth()
	optionalAuth := hm.authMiddleware.OptionalAuth()
	requireStaff := hm.authMiddleware.RequireStaff()

	v1 := router.Group("/api/v1")
	{
		// Auth routes
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", hm.authHandler.Register)
			authGroup.POST("/login", hm.authHandler.Login)
			authGroup.POST("/refresh", hm.authHandler.Refresh)
			authGroup.POST("/logout", hm.authHandler.Logout)
			authGroup.GET("/me", requireAuth, hm.authHandler.Me)
			authGroup.POST("/password/change", requireAuth, hm.authHandler.ChangePassword)
			authGroup.POST("/password/reset", hm.authHandler.RequestPasswordReset)
			authGroup.POST("/password/reset/confirm", hm.authHandler.ConfirmPasswordReset)
		}

		// Profile routes
		profile := v1.Group("/profile", requireAuth)
		{
			profile.GET("", hm.profileHandler.GetProfile)
			profile.PUT("", hm.profileHandler.UpdateProfile)
		}

		// Tag routes - reads are open, writes are staff-only
		tags := v1.Group("/tags")
		{
			tags.GET("", hm.careerHandler.ListTags)
			tags.POST("", requireAuth, requireStaff, hm.careerHandler.CreateTag)
			tags.PUT("/:id", requireAuth, requireStaff, hm.careerHandler.UpdateTag)
			tags.DELETE("/:id", requireAuth, requireStaff, hm.careerHandler.DeleteTag)
		}

		// Skill routes
		skills := v1.Group("/skills")
		{
			skills.GET("", hm.careerHandler.ListSkills)
			skills.POST("", requireAuth, requireStaff, hm.careerHandler.CreateSkill)
			skills.PUT("/:id", requireAuth, requireStaff, hm.careerHandler.UpdateSkill)
			skills.DELETE("/:id", requireAuth, requireStaff, hm.careerHandler.DeleteSkill)
		}

		// Career routes
		careers := v1.Group("/careers")
		{
			careers.GET("", hm.careerHandler.ListCareers)
			careers.GET("/:id", hm.careerHandler.GetCareer)
			careers.POST("", requireAuth, requireStaff, hm.careerHandler.CreateCareer)
			careers.PUT("/:id", requireAuth, requireStaff, hm.careerHandler.UpdateCareer)
			careers.DELETE("/:id", requireAuth, requireStaff, hm.careerHandler.DeleteCareer)
			careers.POST("/:id/rebuild-content-text", requireAuth, requireStaff, hm.careerHandler.RebuildContentText)
		}

		// Resource routes
		resources := v1.Group("/resources")
		{
			resources.GET("", hm.contentHandler.ListResources)
			resources.GET("/:id", hm.contentHandler.GetResource)
			resources.POST("", requireAuth, requireStaff, hm.contentHandler.CreateResource)
			resources.PUT("/:id", requireAuth, requireStaff, hm.contentHandler.UpdateResource)
			resources.DELETE("/:id", requireAuth, requireStaff, hm.contentHandler.DeleteResource)
			resources.POST("/:id/rebuild-content-text", requireAuth, requireStaff, hm.contentHandler.RebuildResourceContentText)
		}

		// Multimedia routes
		multimedia := v1.Group("/multimedia")
		{
			multimedia.GET("", hm.contentHandler.ListMultimedia)
			multimedia.GET("/:id", hm.contentHandler.GetMultimedia)
			multimedia.POST("", requireAuth, requireStaff, hm.contentHandler.CreateMultimedia)
			multimedia.PUT("/:id", requireAuth, requireStaff, hm.contentHandler.UpdateMultimedia)
			multimedia.DELETE("/:id", requireAuth, requireStaff, hm.contentHandler.DeleteMultimedia)
			multimedia.POST("/:id/rebuild-content-text", requireAuth, requireStaff, hm.contentHandler.RebuildMultimediaContentText)
		}

		// Success story routes - anyone can submit; approval is staff-only
		stories := v1.Group("/success-stories")
		{
			stories.GET("", optionalAuth, hm.contentHandler.ListStories)
			stories.GET("/:id", optionalAuth, hm.contentHandler.GetStory)
			stories.POST("", requireAuth, hm.contentHandler.CreateStory)
			stories.PUT("/:id", requireAuth, hm.contentHandler.UpdateStory)
			stories.DELETE("/:id", requireAuth, hm.contentHandler.DeleteStory)
			stories.POST("/:id/approve", requireAuth, requireStaff, hm.contentHandler.ApproveStory)
			stories.POST("/:id/rebuild-content-text", requireAuth, requireStaff, hm.contentHandler.RebuildStoryContentText)
		}

		// Feedback routes - submission is open, triage is staff-only
		feedback := v1.Group("/feedback")
		{
			feedback.POST("", optionalAuth, hm.contentHandler.CreateFeedback)
			feedback.GET("", requireAuth, requireStaff, hm.contentHandler.ListFeedback)
			feedback.PUT("/:id/status", requireAuth, requireStaff, hm.contentHandler.UpdateFeedbackStatus)
		}

		// Quiz routes
		quizzes := v1.Group("/quizzes")
		{
			quizzes.GET("", optionalAuth, hm.quizHandler.ListQuizzes)
			quizzes.GET("/random", optionalAuth, hm.quizHandler.GetRandomQuiz)
			quizzes.GET("/:id", optionalAuth, hm.quizHandler.GetQuiz)
			quizzes.POST("", requireAuth, requireStaff, hm.quizHandler.CreateQuiz)
			quizzes.PUT("/:id", requireAuth, requireStaff, hm.quizHandler.UpdateQuiz)
			quizzes.DELETE("/:id", requireAuth, requireStaff, hm.quizHandler.DeleteQuiz)
		}

		// Quiz question routes - staff-only
		questions := v1.Group("/quiz-questions", requireAuth, requireStaff)
		{
			questions.POST("", hm.quizHandler.CreateQuestion)
			questions.GET("/:id", hm.quizHandler.GetQuestion)
			questions.PUT("/:id", hm.quizHandler.UpdateQuestion)
			questions.DELETE("/:id", hm.quizHandler.DeleteQuestion)
		}

		// Quiz attempt routes
		attempts := v1.Group("/quiz-attempts", requireAuth)
		{
			attempts.POST("", hm.quizHandler.StartAttempt)
			attempts.GET("", hm.quizHandler.ListAttempts)
			attempts.GET("/all", requireStaff, hm.quizHandler.ListAllAttempts)
			attempts.GET("/:id", hm.quizHandler.GetAttempt)
			attempts.POST("/:id/complete", hm.quizHandler.CompleteAttempt)
		}

		// Interaction routes
		interactions := v1.Group("/interactions", requireAuth)
		{
			interactions.POST("", hm.interactionHandler.RecordInteraction)
			interactions.GET("", hm.interactionHandler.ListInteractions)
			interactions.GET("/all", requireStaff, hm.interactionHandler.ListAllInteractions)
		}

		// Recommendation routes
		v1.POST("/recommendations", requireAuth, hm.recommendationHandler.Recommend)

		// Report routes - staff-only
		reports := v1.Group("/reports", requireAuth, requireStaff)
		{
			reports.GET("/attempts.xlsx", hm.reportHandler.AttemptsReport)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		if err := hm.serviceManager.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"service": "career-service",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "career-service",
		})
	})
}
