package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ycode/builder-backend/internal/services"
	"github.com/ycode/builder-backend/internal/types"
)

type ComponentHandler struct {
	svc services.ComponentService
}

func NewComponentHandler(svc services.ComponentService) *ComponentHandler {
	return &ComponentHandler{svc: svc}
}

// GET /api/components
func (h *ComponentHandler) ListDrafts(c *gin.Context) {
	components, err := h.svc.ListDrafts(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"components": components})
}

// GET /api/components/:id
func (h *ComponentHandler) GetDraft(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	component, err := h.svc.GetDraft(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if component == nil {
		RespondError(c, http.StatusNotFound, "not_found", services.ErrEntityNotFound)
		return
	}
	RespondOK(c, gin.H{"component": component})
}

// GET /api/components/:id/published
func (h *ComponentHandler) GetPublished(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	component, err := h.svc.GetPublished(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if component == nil {
		RespondError(c, http.StatusNotFound, "not_found", services.ErrEntityNotFound)
		return
	}
	RespondOK(c, gin.H{"component": component})
}

// POST /api/components
func (h *ComponentHandler) CreateDraft(c *gin.Context) {
	var payload struct {
		Name   string        `json:"name" binding:"required"`
		Layers []interface{} `json:"layers"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}
	component, err := h.svc.CreateDraft(c.Request.Context(), payload.Name, payload.Layers)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"component": component})
}

// PUT /api/components/:id
func (h *ComponentHandler) UpdateDraft(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var payload struct {
		Name      string                 `json:"name" binding:"required"`
		Layers    []interface{}          `json:"layers"`
		Selection map[string]interface{} `json:"selection"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}
	var extra *types.VersionMetadata
	if payload.Selection != nil {
		extra = &types.VersionMetadata{Selection: payload.Selection}
	}
	component, err := h.svc.UpdateDraft(c.Request.Context(), id, payload.Name, payload.Layers, extra)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"component": component})
}

// DELETE /api/components/:id
func (h *ComponentHandler) DeleteDraft(c *gin.Context) {
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
