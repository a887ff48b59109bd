package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ycode/builder-backend/internal/services"
)

// SettingsHandler exposes the site settings drafts: fonts, locales,
// assets and folders.
type SettingsHandler struct {
	svc services.SettingsService
}

func NewSettingsHandler(svc services.SettingsService) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return uuid.Nil, false
	}
	return id, true
}

type fontPayload struct {
	Family   string        `json:"family" binding:"required"`
	Provider string        `json:"provider"`
	Weights  []interface{} `json:"weights"`
}

// GET /api/fonts
func (h *SettingsHandler) ListFonts(c *gin.Context) {
	fonts, err := h.svc.ListFonts(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"fonts": fonts})
}

// POST /api/fonts
func (h *SettingsHandler) CreateFont(c *gin.Context) {
	var payload fontPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}
	font, err := h.svc.CreateFont(c.Request.Context(), payload.Family, payload.Provider, payload.Weights)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"font": font})
}

// PUT /api/fonts/:id
func (h *SettingsHandler) UpdateFont(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var payload fontPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}
	font, err := h.svc.UpdateFont(c.Request.Context(), id, payload.Family, payload.Provider, payload.Weights)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"font": font})
}

// DELETE /api/fonts/:id
func (h *SettingsHandler) DeleteFont(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteFont(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type localePayload struct {
	Code      string `json:"code" binding:"required"`
	Name      string `json:"name" binding:"required"`
	IsDefault bool   `json:"is_default"`
}

// GET /api/locales
func (h *SettingsHandler) ListLocales(c *gin.Context) {
	locales, err := h.svc.ListLocales(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"locales": locales})
}

// POST /api/locales
func (h *SettingsHandler) CreateLocale(c *gin.Context) {
	var payload localePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}
	locale, err := h.svc.CreateLocale(c.Request.Context(), payload.Code, payload.Name, payload.IsDefault)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"locale": locale})
}

// PUT /api/locales/:id
func (h *SettingsHandler) UpdateLocale(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var payload localePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}
	locale, err := h.svc.UpdateLocale(c.Request.Context(), id, payload.Code, payload.Name, payload.IsDefault)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"locale": locale})
}

// DELETE /api/locales/:id
func (h *SettingsHandler) DeleteLocale(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteLocale(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type assetPayload struct {
	Filename string                 `json:"filename" binding:"required"`
	Kind     string                 `json:"kind" binding:"required"`
	URL      string                 `json:"url"`
	Size     int64                  `json:"size"`
	Metadata map[string]interface{} `json:"metadata"`
}

// GET /api/assets
func (h *SettingsHandler) ListAssets(c *gin.Context) {
	assets, err := h.svc.ListAssets(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"assets": assets})
}

// POST /api/assets
func (h *SettingsHandler) CreateAsset(c *gin.Context) {
	var payload assetPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}
	asset, err := h.svc.CreateAsset(c.Request.Context(), payload.Filename, payload.Kind, payload.URL, payload.Size, payload.Metadata)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"asset": asset})
}

// PUT /api/assets/:id
func (h *SettingsHandler) UpdateAsset(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var payload assetPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}
	asset, err := h.svc.UpdateAsset(c.Request.Context(), id, payload.Filename, payload.Kind, payload.URL, payload.Size, payload.Metadata)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"asset": asset})
}

// DELETE /api/assets/:id
func (h *SettingsHandler) DeleteAsset(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteAsset(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type folderPayload struct {
	Name     string     `json:"name" binding:"required"`
	ParentID *uuid.UUID `json:"parent_id"`
}

// GET /api/folders
func (h *SettingsHandler) ListFolders(c *gin.Context) {
	folders, err := h.svc.ListFolders(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"folders": folders})
}

// POST /api/folders
func (h *SettingsHandler) CreateFolder(c *gin.Context) {
	var payload folderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}
	folder, err := h.svc.CreateFolder(c.Request.Context(), payload.Name, payload.ParentID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"folder": folder})
}

// PUT /api/folders/:id
func (h *SettingsHandler) UpdateFolder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var payload folderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}
	folder, err := h.svc.UpdateFolder(c.Request.Context(), id, payload.Name, payload.ParentID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"folder": folder})
}

// DELETE /api/folders/:id
func (h *SettingsHandler) DeleteFolder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteFolder(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
