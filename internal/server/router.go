package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/ycode/builder-backend/internal/handlers"
	"github.com/ycode/builder-backend/internal/middleware"
)

type RouterConfig struct {
	SessionMiddleware *middleware.SessionMiddleware
	PageHandler       *handlers.PageHandler
	LayoutHandler     *handlers.PageLayoutHandler
	ComponentHandler  *handlers.ComponentHandler
	StyleHandler      *handlers.SharedStyleHandler
	SettingsHandler   *handlers.SettingsHandler
	CollectionHandler *handlers.CollectionHandler
	VersionHandler    *handlers.VersionHandler
	PublishHandler    *handlers.PublishHandler
	AllowOrigins      []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()
	// Request spans are parents for the service spans opened around
	// recording, undo/redo and publish; no-ops when tracing is disabled.
	router.Use(otelgin.Middleware("builder-backend"))

	allowOrigins := cfg.AllowOrigins
	if len(allowOrigins) == 0 {
		allowOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	api.Use(cfg.SessionMiddleware.RequireSession())

	// Pages
	api.GET("/pages", cfg.PageHandler.ListDrafts)
	api.GET("/pages/:id", cfg.PageHandler.GetDraft)
	api.GET("/pages/:id/published", cfg.PageHandler.GetPublished)
	api.POST("/pages", cfg.PageHandler.CreateDraft)
	api.PUT("/pages/:id", cfg.PageHandler.UpdateDraft)
	api.DELETE("/pages/:id", cfg.PageHandler.DeleteDraft)

	// Page layouts
	api.GET("/layouts/:id", cfg.LayoutHandler.GetDraft)
	api.GET("/layouts/:id/published", cfg.LayoutHandler.GetPublished)
	api.POST("/layouts", cfg.LayoutHandler.CreateDraft)
	api.PUT("/layouts/:id/layers", cfg.LayoutHandler.UpdateDraftLayers)
	api.DELETE("/layouts/:id", cfg.LayoutHandler.DeleteDraft)

	// Components
	api.GET("/components", cfg.ComponentHandler.ListDrafts)
	api.GET("/components/:id", cfg.ComponentHandler.GetDraft)
	api.GET("/components/:id/published", cfg.ComponentHandler.GetPublished)
	api.POST("/components", cfg.ComponentHandler.CreateDraft)
	api.PUT("/components/:id", cfg.ComponentHandler.UpdateDraft)
	api.DELETE("/components/:id", cfg.ComponentHandler.DeleteDraft)

	// Shared styles
	api.GET("/styles", cfg.StyleHandler.ListDrafts)
	api.GET("/styles/:id", cfg.StyleHandler.GetDraft)
	api.GET("/styles/:id/published", cfg.StyleHandler.GetPublished)
	api.POST("/styles", cfg.StyleHandler.CreateDraft)
	api.PUT("/styles/:id", cfg.StyleHandler.UpdateDraft)
	api.DELETE("/styles/:id", cfg.StyleHandler.DeleteDraft)

	// Settings
	api.GET("/fonts", cfg.SettingsHandler.ListFonts)
	api.POST("/fonts", cfg.SettingsHandler.CreateFont)
	api.PUT("/fonts/:id", cfg.SettingsHandler.UpdateFont)
	api.DELETE("/fonts/:id", cfg.SettingsHandler.DeleteFont)
	api.GET("/locales", cfg.SettingsHandler.ListLocales)
	api.POST("/locales", cfg.SettingsHandler.CreateLocale)
	api.PUT("/locales/:id", cfg.SettingsHandler.UpdateLocale)
	api.DELETE("/locales/:id", cfg.SettingsHandler.DeleteLocale)
	api.GET("/assets", cfg.SettingsHandler.ListAssets)
	api.POST("/assets", cfg.SettingsHandler.CreateAsset)
	api.PUT("/assets/:id", cfg.SettingsHandler.UpdateAsset)
	api.DELETE("/assets/:id", cfg.SettingsHandler.DeleteAsset)
	api.GET("/folders", cfg.SettingsHandler.ListFolders)
	api.POST("/folders", cfg.SettingsHandler.CreateFolder)
	api.PUT("/folders/:id", cfg.SettingsHandler.UpdateFolder)
	api.DELETE("/folders/:id", cfg.SettingsHandler.DeleteFolder)

	// Collections
	api.GET("/collections", cfg.CollectionHandler.ListCollections)
	api.GET("/collections/:id", cfg.CollectionHandler.GetCollection)
	api.POST("/collections", cfg.CollectionHandler.CreateCollection)
	api.PUT("/collections/:id", cfg.CollectionHandler.UpdateCollection)
	api.DELETE("/collections/:id", cfg.CollectionHandler.DeleteCollection)
	api.GET("/collection-fields", cfg.CollectionHandler.ListFields)
	api.POST("/collection-fields", cfg.CollectionHandler.CreateField)
	api.PUT("/collection-fields/:id", cfg.CollectionHandler.UpdateField)
	api.DELETE("/collection-fields/:id", cfg.CollectionHandler.DeleteField)
	api.GET("/collection-items", cfg.CollectionHandler.ListItems)
	api.POST("/collection-items", cfg.CollectionHandler.CreateItem)
	api.PUT("/collection-items/:id", cfg.CollectionHandler.UpdateItem)
	api.DELETE("/collection-items/:id", cfg.CollectionHandler.DeleteItem)

	// Versions and undo/redo
	api.POST("/versions", cfg.VersionHandler.CreateVersion)
	api.GET("/versions/:type/:id", cfg.VersionHandler.ListForEntity)
	api.POST("/versions/:type/:id/undo", cfg.VersionHandler.Undo)
	api.POST("/versions/:type/:id/redo", cfg.VersionHandler.Redo)
	api.GET("/sessions/:id/versions", cfg.VersionHandler.ListForSession)

	// Publish
	api.POST("/publish", cfg.PublishHandler.PublishAll)
	api.POST("/publish/:type", cfg.PublishHandler.PublishType)

	return router
}
