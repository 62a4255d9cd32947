package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nextstep-app/career-service/internal/models"
	"github.com/nextstep-app/career-service/internal/repositories"
	"github.com/nextstep-app/career-service/internal/services"
	"github.com/nextstep-app/career-service/internal/validator"
)

// BaseHandler carries the pieces every handler needs.
type BaseHandler struct {
	logger *slog.Logger
}

func NewBaseHandler(logger *slog.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) LogError(c *gin.Context, err error, msg string) {
	h.logger.Error(msg,
		"error", err,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
		"request_id", c.GetString("request_id"),
	)
}

// ===== CONTEXT HELPERS =====

// CurrentUserID reads the authenticated user ID set by the auth middleware.
func CurrentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// IsStaff reports whether the auth middleware marked the caller as staff.
func IsStaff(c *gin.Context) bool {
	v, exists := c.Get("is_staff")
	if !exists {
		return false
	}
	staff, ok := v.(bool)
	return ok && staff
}

func requireUserID(c *gin.Context) (uint, bool) {
	id, ok := CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Message: "User not authenticated",
		})
		return 0, false
	}
	return id, true
}

// ===== PARAM PARSING =====

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid " + name + " parameter",
		})
		return 0, false
	}
	return uint(id), true
}

// parsePage reads page/size/sort_by/sort_order query params. Unknown sort
// fields are ignored; the repository falls back to its default column.
func parsePage(c *gin.Context) repositories.Page {
	page := 1
	size := 10

	if pageStr := c.Query("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}
	if sizeStr := c.Query("size"); sizeStr != "" {
		if s, err := strconv.Atoi(sizeStr); err == nil && s > 0 && s <= 100 {
			size = s
		}
	}

	return repositories.Page{
		Limit:     size,
		Offset:    (page - 1) * size,
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
}

func queryString(c *gin.Context, name string) *string {
	if v := c.Query(name); v != "" {
		return &v
	}
	return nil
}

func queryUint(c *gin.Context, name string) *uint {
	if v := c.Query(name); v != "" {
		if n, err := strconv.ParseUint(v, 10, 32); err == nil {
			u := uint(n)
			return &u
		}
	}
	return nil
}

func queryBool(c *gin.Context, name string) *bool {
	switch c.Query(name) {
	case "true":
		v := true
		return &v
	case "false":
		v := false
		return &v
	}
	return nil
}

// ===== ERROR MAPPING =====

func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Validation failed",
			Details: validationErrs,
		})
		return
	}

	if services.IsPermissionError(err) {
		c.JSON(http.StatusForbidden, models.ErrorResponse{
			Message: "Forbidden",
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Message: "Invalid credentials",
		})
	case errors.Is(err, services.ErrInactiveAccount):
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Message: "Account is inactive",
		})
	case errors.Is(err, services.ErrInvalidToken),
		errors.Is(err, services.ErrExpiredToken),
		errors.Is(err, services.ErrBlacklistedToken):
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Message: "Invalid or expired token",
		})
	case errors.Is(err, services.ErrInvalidResetToken):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid or expired reset link",
		})
	case errors.Is(err, services.ErrWrongPassword):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Old password is incorrect",
		})
	case errors.Is(err, services.ErrPasswordMismatch):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Passwords do not match",
		})
	case errors.Is(err, services.ErrEmailTaken):
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Message: "Email is already registered",
		})
	case errors.Is(err, services.ErrUsernameTaken):
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Message: "Username is already taken",
		})
	case errors.Is(err, services.ErrDuplicateName):
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Message: "Name already exists",
		})
	case errors.Is(err, services.ErrQuizInactive):
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Message: "Quiz is not active",
		})
	case errors.Is(err, services.ErrAttemptCompleted):
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Message: "Attempt is already completed",
		})
	case errors.Is(err, services.ErrInvalidTargetType):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid interaction target type",
		})
	case errors.Is(err, services.ErrTargetNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Message: "Interaction target not found",
		})
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrTagNotFound),
		errors.Is(err, services.ErrSkillNotFound),
		errors.Is(err, services.ErrCareerNotFound),
		errors.Is(err, services.ErrResourceNotFound),
		errors.Is(err, services.ErrMultimediaNotFound),
		errors.Is(err, services.ErrStoryNotFound),
		errors.Is(err, services.ErrFeedbackNotFound),
		errors.Is(err, services.ErrQuizNotFound),
		errors.Is(err, services.ErrQuestionNotFound),
		errors.Is(err, services.ErrAttemptNotFound),
		errors.Is(err, services.ErrNoActiveQuiz):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Message: "Not found",
		})
	case errors.Is(err, services.ErrNoRecommendations):
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Could not generate recommendations at this time. Please try again later.",
		})
	default:
		h.LogError(c, err, "Unexpected service error")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Internal server error",
		})
	}
}
