package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nextstep-app/career-service/internal/models"
	"github.com/nextstep-app/career-service/internal/repositories"
	"github.com/nextstep-app/career-service/internal/services"
)

type ContentHandler struct {
	BaseHandler
	service services.ContentService
}

func NewContentHandler(service services.ContentService, logger *slog.Logger) *ContentHandler {
	return &ContentHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== RESOURCES =====

func (h *ContentHandler) CreateResource(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req models.ResourceCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	resource, err := h.service.CreateResource(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resource)
}

// GetResource also counts the view.
func (h *ContentHandler) GetResource(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	resource, err := h.service.GetResource(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resource)
}

func (h *ContentHandler) UpdateResource(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.ResourceUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	resource, err := h.service.UpdateResource(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resource)
}

func (h *ContentHandler) DeleteResource(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteResource(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ContentHandler) ListResources(c *gin.Context) {
	filters := repositories.ResourceFilters{
		Search: queryString(c, "search"),
		TagID:  queryUint(c, "tag_id"),
		Page:   parsePage(c),
	}
	if v := c.Query("category"); v != "" {
		category := models.ResourceCategory(v)
		filters.Category = &category
	}

	response, err := h.service.ListResources(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *ContentHandler) RebuildResourceContentText(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	response, err := h.service.RebuildResourceContentText(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ===== MULTIMEDIA =====

func (h *ContentHandler) CreateMultimedia(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req models.MultimediaCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	item, err := h.service.CreateMultimedia(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (h *ContentHandler) GetMultimedia(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	item, err := h.service.GetMultimedia(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *ContentHandler) UpdateMultimedia(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.MultimediaUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	item, err := h.service.UpdateMultimedia(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *ContentHandler) DeleteMultimedia(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteMultimedia(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ContentHandler) ListMultimedia(c *gin.Context) {
	filters := repositories.MultimediaFilters{
		Search: queryString(c, "search"),
		TagID:  queryUint(c, "tag_id"),
		Page:   parsePage(c),
	}
	if v := c.Query("type"); v != "" {
		mediaType := models.MultimediaType(v)
		filters.Type = &mediaType
	}

	response, err := h.service.ListMultimedia(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *ContentHandler) RebuildMultimediaContentText(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	response, err := h.service.RebuildMultimediaContentText(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ===== SUCCESS STORIES =====

func (h *ContentHandler) CreateStory(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req models.SuccessStoryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	story, err := h.service.CreateStory(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, story)
}

// GetStory hides unapproved stories from everyone except staff and the
// submitter.
func (h *ContentHandler) GetStory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	story, err := h.service.GetStory(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	if !story.IsApproved && !IsStaff(c) {
		userID, authed := CurrentUserID(c)
		if !authed || !submittedBy(story, userID) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Message: "Not found",
			})
			return
		}
	}

	c.JSON(http.StatusOK, story)
}

// UpdateStory allows the submitter or staff to edit.
func (h *ContentHandler) UpdateStory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req models.SuccessStoryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	if !IsStaff(c) {
		existing, err := h.service.GetStory(c.Request.Context(), id)
		if err != nil {
			h.handleServiceError(c, err)
			return
		}
		if !submittedBy(existing, userID) {
			c.JSON(http.StatusForbidden, models.ErrorResponse{
				Message: "Only the submitter or staff can edit this story",
			})
			return
		}
	}

	story, err := h.service.UpdateStory(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, story)
}

func (h *ContentHandler) DeleteStory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if !IsStaff(c) {
		existing, err := h.service.GetStory(c.Request.Context(), id)
		if err != nil {
			h.handleServiceError(c, err)
			return
		}
		if !submittedBy(existing, userID) {
			c.JSON(http.StatusForbidden, models.ErrorResponse{
				Message: "Only the submitter or staff can delete this story",
			})
			return
		}
	}

	if err := h.service.DeleteStory(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ContentHandler) ListStories(c *gin.Context) {
	filters := repositories.StoryFilters{
		Search:     queryString(c, "search"),
		Domain:     queryString(c, "domain"),
		IsApproved: queryBool(c, "is_approved"),
		Page:       parsePage(c),
	}

	response, err := h.service.ListStories(c.Request.Context(), filters, IsStaff(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ApproveStory marks a story as approved by the calling staff member.
func (h *ContentHandler) ApproveStory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	story, err := h.service.ApproveStory(c.Request.Context(), id, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, story)
}

func (h *ContentHandler) RebuildStoryContentText(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	response, err := h.service.RebuildStoryContentText(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func submittedBy(story *models.SuccessStory, userID uint) bool {
	return story.SubmittedBy != nil && *story.SubmittedBy == userID
}

// ===== FEEDBACK =====

// CreateFeedback accepts anonymous submissions; the user ID is attached when
// the caller is authenticated.
func (h *ContentHandler) CreateFeedback(c *gin.Context) {
	var req models.FeedbackCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	var userID *uint
	if id, ok := CurrentUserID(c); ok {
		userID = &id
	}

	feedback, err := h.service.CreateFeedback(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, feedback)
}

func (h *ContentHandler) ListFeedback(c *gin.Context) {
	filters := repositories.FeedbackFilters{
		Page: parsePage(c),
	}
	if v := c.Query("category"); v != "" {
		category := models.FeedbackCategory(v)
		filters.Category = &category
	}
	if v := c.Query("status"); v != "" {
		status := models.FeedbackStatus(v)
		filters.Status = &status
	}

	response, err := h.service.ListFeedback(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *ContentHandler) UpdateFeedbackStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req models.FeedbackStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	feedback, err := h.service.UpdateFeedbackStatus(c.Request.Context(), id, &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, feedback)
}
