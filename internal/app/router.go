package app

import (
	"github.com/gin-gonic/gin"

	"github.com/ycode/builder-backend/internal/server"
)

func wireRouter(cfg Config, handlerset Handlers, middlewareset Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		SessionMiddleware: middlewareset.Session,
		PageHandler:       handlerset.Page,
		LayoutHandler:     handlerset.PageLayout,
		ComponentHandler:  handlerset.Component,
		StyleHandler:      handlerset.Style,
		SettingsHandler:   handlerset.Settings,
		CollectionHandler: handlerset.Collection,
		VersionHandler:    handlerset.Version,
		PublishHandler:    handlerset.Publish,
		AllowOrigins:      cfg.AllowOrigins,
	})
}
