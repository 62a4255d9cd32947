package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nextstep-app/career-service/internal/models"
	"github.com/nextstep-app/career-service/internal/services"
)

type RecommendationHandler struct {
	BaseHandler
	service services.RecommendationService
}

func NewRecommendationHandler(service services.RecommendationService, logger *slog.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// Recommend turns the caller's quiz responses into AI career suggestions.
func (h *RecommendationHandler) Recommend(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req models.RecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	recommendations, err := h.service.Recommend(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, recommendations)
}
