package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ycode/builder-backend/internal/services"
	"github.com/ycode/builder-backend/internal/types"
)

type SharedStyleHandler struct {
	svc services.SharedStyleService
}

func NewSharedStyleHandler(svc services.SharedStyleService) *SharedStyleHandler {
	return &SharedStyleHandler{svc: svc}
}

type sharedStylePayload struct {
	Name       string                 `json:"name" binding:"required"`
	Selector   string                 `json:"selector"`
	Properties map[string]interface{} `json:"properties"`
	Selection  map[string]interface{} `json:"selection"`
}

// GET /api/styles
func (h *SharedStyleHandler) ListDrafts(c *gin.Context) {
	styles, err := h.svc.ListDrafts(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"styles": styles})
}

// GET /api/styles/:id
func (h *SharedStyleHandler) GetDraft(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	style, err := h.svc.GetDraft(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if style == nil {
		RespondError(c, http.StatusNotFound, "not_found", services.ErrEntityNotFound)
		return
	}
	RespondOK(c, gin.H{"style": style})
}

// GET /api/styles/:id/published
func (h *SharedStyleHandler) GetPublished(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	style, err := h.svc.GetPublished(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if style == nil {
		RespondError(c, http.StatusNotFound, "not_found", services.ErrEntityNotFound)
		return
	}
	RespondOK(c, gin.H{"style": style})
}

// POST /api/styles
func (h *SharedStyleHandler) CreateDraft(c *gin.Context) {
	var payload sharedStylePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}
	style, err := h.svc.CreateDraft(c.Request.Context(), payload.Name, payload.Selector, payload.Properties)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"style": style})
}

// PUT /api/styles/:id
func (h *SharedStyleHandler) UpdateDraft(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var payload sharedStylePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}
	var extra *types.VersionMetadata
	if payload.Selection != nil {
		extra = &types.VersionMetadata{Selection: payload.Selection}
	}
	style, err := h.svc.UpdateDraft(c.Request.Context(), id, payload.Name, payload.Selector, payload.Properties, extra)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"style": style})
}

// DELETE /api/styles/:id
func (h *SharedStyleHandler) DeleteDraft(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := h.svc.SoftDeleteDraft(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
