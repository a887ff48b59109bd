package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ycode/builder-backend/internal/services"
	"github.com/ycode/builder-backend/internal/types"
)

type PublishHandler struct {
	svc services.Publisher
}

func NewPublishHandler(svc services.Publisher) *PublishHandler {
	return &PublishHandler{svc: svc}
}

// POST /api/publish
func (h *PublishHandler) PublishAll(c *gin.Context) {
	summary, err := h.svc.PublishAll(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "publish_failed", err)
		return
	}
	RespondOK(c, summary)
}

// POST /api/publish/:type
func (h *PublishHandler) PublishType(c *gin.Context) {
	entityType := types.EntityType(c.Param("type"))
	if !entityType.Valid() {
		RespondError(c, http.StatusBadRequest, "invalid_entity_type", nil)
		return
	}
	result, err := h.svc.PublishType(c.Request.Context(), entityType)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "publish_failed", err)
		return
	}
	RespondOK(c, gin.H{"result": result})
}
