package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ycode/builder-backend/internal/services"
	"github.com/ycode/builder-backend/internal/types"
)

type PageLayoutHandler struct {
	svc services.PageLayoutService
}

func NewPageLayoutHandler(svc services.PageLayoutService) *PageLayoutHandler {
	return &PageLayoutHandler{svc: svc}
}

// GET /api/layouts/:id
func (h *PageLayoutHandler) GetDraft(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	layout, err := h.svc.GetDraft(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if layout == nil {
		RespondError(c, http.StatusNotFound, "not_found", services.ErrEntityNotFound)
		return
	}
	RespondOK(c, gin.H{"layout": layout})
}

// GET /api/layouts/:id/published
func (h *PageLayoutHandler) GetPublished(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	layout, err := h.svc.GetPublished(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if layout == nil {
		RespondError(c, http.StatusNotFound, "not_found", services.ErrEntityNotFound)
		return
	}
	RespondOK(c, gin.H{"layout": layout})
}

// POST /api/layouts
func (h *PageLayoutHandler) CreateDraft(c *gin.Context) {
	var payload struct {
		PageID   uuid.UUID     `json:"page_id" binding:"required"`
		LocaleID uuid.UUID     `json:"locale_id" binding:"required"`
		Layers   []interface{} `json:"layers"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}
	layout, err := h.svc.CreateDraft(c.Request.Context(), payload.PageID, payload.LocaleID, payload.Layers)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"layout": layout})
}

// PUT /api/layouts/:id/layers
// The editor sends the full layer tree on every save; diffing against the
// previous state happens server side.
func (h *PageLayoutHandler) UpdateDraftLayers(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var payload struct {
		Layers    []interface{}          `json:"layers" binding:"required"`
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
	layout, err := h.svc.UpdateDraftLayers(c.Request.Context(), id, payload.Layers, extra)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"layout": layout})
}

// DELETE /api/layouts/:id
func (h *PageLayoutHandler) DeleteDraft(c *gin.Context) {
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
