package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/ycode/builder-backend/internal/services"
	"github.com/ycode/builder-backend/internal/types"
)

// VersionHandler exposes the version trail and the undo/redo walk over it.
type VersionHandler struct {
	history  services.VersionHistoryService
	undoRedo services.UndoRedoService
}

func NewVersionHandler(history services.VersionHistoryService, undoRedo services.UndoRedoService) *VersionHandler {
	return &VersionHandler{history: history, undoRedo: undoRedo}
}

func parseEntityRef(c *gin.Context) (types.EntityType, uuid.UUID, bool) {
	entityType := types.EntityType(c.Param("type"))
	if !entityType.Valid() {
		RespondError(c, http.StatusBadRequest, "invalid_entity_type", nil)
		return "", uuid.Nil, false
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return "", uuid.Nil, false
	}
	return entityType, id, true
}

type versionPayload struct {
	EntityType   string          `json:"entity_type" binding:"required"`
	EntityID     uuid.UUID       `json:"entity_id" binding:"required"`
	ActionType   string          `json:"action_type"`
	Description  string          `json:"description"`
	Redo         json.RawMessage `json:"redo"`
	Undo         json.RawMessage `json:"undo"`
	PreviousHash string          `json:"previous_hash"`
	CurrentHash  string          `json:"current_hash"`
	SessionID    *uuid.UUID      `json:"session_id"`
	Metadata     json.RawMessage `json:"metadata"`
}

// POST /api/versions
// Stores a caller-supplied version record; the session id defaults to the
// requesting session when the payload omits it.
func (h *VersionHandler) CreateVersion(c *gin.Context) {
	var payload versionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}
	entityType := types.EntityType(payload.EntityType)
	if !entityType.Valid() {
		RespondError(c, http.StatusBadRequest, "invalid_entity_type", nil)
		return
	}
	version := &types.EntityVersion{
		EntityType:   entityType,
		EntityID:     payload.EntityID,
		ActionType:   payload.ActionType,
		Description:  payload.Description,
		Redo:         datatypes.JSON(payload.Redo),
		Undo:         datatypes.JSON(payload.Undo),
		PreviousHash: payload.PreviousHash,
		CurrentHash:  payload.CurrentHash,
		Metadata:     datatypes.JSON(payload.Metadata),
	}
	if payload.SessionID != nil {
		version.SessionID = *payload.SessionID
	}
	stored, err := h.history.Create(c.Request.Context(), version)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"version": stored})
}

// GET /api/versions/:type/:id
func (h *VersionHandler) ListForEntity(c *gin.Context) {
	entityType, id, ok := parseEntityRef(c)
	if !ok {
		return
	}
	versions, err := h.history.ListForEntity(c.Request.Context(), entityType, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"versions": versions})
}

// GET /api/sessions/:id/versions
func (h *VersionHandler) ListForSession(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	versions, err := h.history.ListForSession(c.Request.Context(), sessionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"versions": versions})
}

// POST /api/versions/:type/:id/undo
func (h *VersionHandler) Undo(c *gin.Context) {
	entityType, id, ok := parseEntityRef(c)
	if !ok {
		return
	}
	version, err := h.undoRedo.Undo(c.Request.Context(), entityType, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"version": version})
}

// POST /api/versions/:type/:id/redo
func (h *VersionHandler) Redo(c *gin.Context) {
	entityType, id, ok := parseEntityRef(c)
	if !ok {
		return
	}
	version, err := h.undoRedo.Redo(c.Request.Context(), entityType, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"version": version})
}
