package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ycode/builder-backend/internal/services"
)

type PageHandler struct {
	svc services.PageService
}

func NewPageHandler(svc services.PageService) *PageHandler {
	return &PageHandler{svc: svc}
}

type pagePayload struct {
	Name     string                 `json:"name" binding:"required"`
	Slug     string                 `json:"slug" binding:"required"`
	FolderID *uuid.UUID             `json:"folder_id"`
	Settings map[string]interface{} `json:"settings"`
}

// GET /api/pages
func (h *PageHandler) ListDrafts(c *gin.Context) {
	pages, err := h.svc.ListDrafts(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"pages": pages})
}

// GET /api/pages/:id
func (h *PageHandler) GetDraft(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	page, err := h.svc.GetDraft(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if page == nil {
		RespondError(c, http.StatusNotFound, "not_found", services.ErrEntityNotFound)
		return
	}
	RespondOK(c, gin.H{"page": page})
}

// GET /api/pages/:id/published
func (h *PageHandler) GetPublished(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	page, err := h.svc.GetPublished(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if page == nil {
		RespondError(c, http.StatusNotFound, "not_found", services.ErrEntityNotFound)
		return
	}
	RespondOK(c, gin.H{"page": page})
}

// POST /api/pages
func (h *PageHandler) CreateDraft(c *gin.Context) {
	var payload pagePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}
	page, err := h.svc.CreateDraft(c.Request.Context(), payload.Name, payload.Slug, payload.FolderID, payload.Settings)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"page": page})
}

// PUT /api/pages/:id
func (h *PageHandler) UpdateDraft(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var payload pagePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}
	page, err := h.svc.UpdateDraft(c.Request.Context(), id, payload.Name, payload.Slug, payload.FolderID, payload.Settings)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"page": page})
}

// DELETE /api/pages/:id
func (h *PageHandler) DeleteDraft(c *gin.Context) {
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
