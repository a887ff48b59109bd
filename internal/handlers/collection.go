package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ycode/builder-backend/internal/services"
)

type CollectionHandler struct {
	svc services.CollectionService
}

func NewCollectionHandler(svc services.CollectionService) *CollectionHandler {
	return &CollectionHandler{svc: svc}
}

type collectionPayload struct {
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug" binding:"required"`
}

// GET /api/collections
func (h *CollectionHandler) ListCollections(c *gin.Context) {
	collections, err := h.svc.ListCollections(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"collections": collections})
}

// GET /api/collections/:id
func (h *CollectionHandler) GetCollection(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	collection, err := h.svc.GetCollection(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if collection == nil {
		RespondError(c, http.StatusNotFound, "not_found", services.ErrEntityNotFound)
		return
	}
	RespondOK(c, gin.H{"collection": collection})
}

// POST /api/collections
func (h *CollectionHandler) CreateCollection(c *gin.Context) {
	var payload collectionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}
	collection, err := h.svc.CreateCollection(c.Request.Context(), payload.Name, payload.Slug)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"collection": collection})
}

// PUT /api/collections/:id
func (h *CollectionHandler) UpdateCollection(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var payload collectionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}
	collection, err := h.svc.UpdateCollection(c.Request.Context(), id, payload.Name, payload.Slug)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"collection": collection})
}

// DELETE /api/collections/:id
func (h *CollectionHandler) DeleteCollection(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteCollection(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type fieldPayload struct {
	CollectionID uuid.UUID              `json:"collection_id"`
	Name         string                 `json:"name" binding:"required"`
	Kind         string                 `json:"kind" binding:"required"`
	Options      map[string]interface{} `json:"options"`
}

// GET /api/collection-fields
func (h *CollectionHandler) ListFields(c *gin.Context) {
	fields, err := h.svc.ListFields(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"fields": fields})
}

// POST /api/collection-fields
func (h *CollectionHandler) CreateField(c *gin.Context) {
	var payload fieldPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}
	field, err := h.svc.CreateField(c.Request.Context(), payload.CollectionID, payload.Name, payload.Kind, payload.Options)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"field": field})
}

// PUT /api/collection-fields/:id
func (h *CollectionHandler) UpdateField(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var payload fieldPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}
	field, err := h.svc.UpdateField(c.Request.Context(), id, payload.Name, payload.Kind, payload.Options)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"field": field})
}

// DELETE /api/collection-fields/:id
func (h *CollectionHandler) DeleteField(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteField(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type itemPayload struct {
	CollectionID uuid.UUID              `json:"collection_id"`
	Values       map[string]interface{} `json:"values"`
}

// GET /api/collection-items
func (h *CollectionHandler) ListItems(c *gin.Context) {
	items, err := h.svc.ListItems(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"items": items})
}

// POST /api/collection-items
func (h *CollectionHandler) CreateItem(c *gin.Context) {
	var payload itemPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}
	item, err := h.svc.CreateItem(c.Request.Context(), payload.CollectionID, payload.Values)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": item})
}

// PUT /api/collection-items/:id
func (h *CollectionHandler) UpdateItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var payload itemPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}
	item, err := h.svc.UpdateItem(c.Request.Context(), id, payload.Values)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"item": item})
}

// DELETE /api/collection-items/:id
func (h *CollectionHandler) DeleteItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteItem(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
