package app

import (
	"github.com/ycode/builder-backend/internal/handlers"
	"github.com/ycode/builder-backend/internal/pkg/logger"
)

type Handlers struct {
	Page       *handlers.PageHandler
	PageLayout *handlers.PageLayoutHandler
	Component  *handlers.ComponentHandler
	Style      *handlers.SharedStyleHandler
	Settings   *handlers.SettingsHandler
	Collection *handlers.CollectionHandler
	Version    *handlers.VersionHandler
	Publish    *handlers.PublishHandler
}

func wireHandlers(log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Page:       handlers.NewPageHandler(serviceset.Page),
		PageLayout: handlers.NewPageLayoutHandler(serviceset.PageLayout),
		Component:  handlers.NewComponentHandler(serviceset.Component),
		Style:      handlers.NewSharedStyleHandler(serviceset.SharedStyle),
		Settings:   handlers.NewSettingsHandler(serviceset.Settings),
		Collection: handlers.NewCollectionHandler(serviceset.Collection),
		Version:    handlers.NewVersionHandler(serviceset.VersionHistory, serviceset.UndoRedo),
		Publish:    handlers.NewPublishHandler(serviceset.Publisher),
	}
}
