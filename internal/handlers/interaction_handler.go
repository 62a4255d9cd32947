package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nextstep-app/career-service/internal/models"
	"github.com/nextstep-app/career-service/internal/repositories"
	"github.com/nextstep-app/career-service/internal/services"
)

type InteractionHandler struct {
	BaseHandler
	service services.InteractionService
}

func NewInteractionHandler(service services.InteractionService, logger *slog.Logger) *InteractionHandler {
	return &InteractionHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// RecordInteraction appends one interaction for the caller. The log is
// append-only; there is no update or delete.
func (h *InteractionHandler) RecordInteraction(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req models.InteractionCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	interaction, err := h.service.Record(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, interaction)
}

// ListInteractions returns the caller's own interaction history.
func (h *InteractionHandler) ListInteractions(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	response, err := h.service.ListForUser(c.Request.Context(), userID, h.parseFilters(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ListAllInteractions is the staff view across all users.
func (h *InteractionHandler) ListAllInteractions(c *gin.Context) {
	filters := h.parseFilters(c)
	filters.UserID = queryUint(c, "user_id")

	response, err := h.service.ListAll(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *InteractionHandler) parseFilters(c *gin.Context) repositories.InteractionFilters {
	filters := repositories.InteractionFilters{
		TargetID: queryUint(c, "target_id"),
		Page:     parsePage(c),
	}
	if v := c.Query("type"); v != "" {
		kind := models.InteractionType(v)
		filters.Type = &kind
	}
	if v := c.Query("target_type"); v != "" {
		target := models.TargetType(v)
		filters.TargetType = &target
	}
	if v := c.Query("date_from"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filters.DateFrom = &t
		}
	}
	if v := c.Query("date_to"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filters.DateTo = &t
		}
	}
	return filters
}
