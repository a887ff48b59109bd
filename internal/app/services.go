package app

import (
	"fmt"

	"github.com/ycode/builder-backend/internal/pkg/logger"
	"github.com/ycode/builder-backend/internal/services"
)

type Services struct {
	StateCache     services.PreviousStateCache
	Recorder       services.VersionRecorder
	Page           services.PageService
	PageLayout     services.PageLayoutService
	Component      services.ComponentService
	SharedStyle    services.SharedStyleService
	Settings       services.SettingsService
	Collection     services.CollectionService
	VersionHistory services.VersionHistoryService
	UndoRedo       services.UndoRedoService
	Publisher      services.Publisher
}

func wireServices(log *logger.Logger, cfg Config, reposet Repos) (Services, error) {
	log.Info("Wiring services...")

	stateCache, err := services.NewPreviousStateCache(log)
	if err != nil {
		return Services{}, fmt.Errorf("init previous-state cache: %w", err)
	}

	recorder := services.NewVersionRecorder(log, reposet.EntityVersion, stateCache)
	pageSvc := services.NewPageService(log, reposet.Page)
	layoutSvc := services.NewPageLayoutService(log, reposet.PageLayout, recorder)
	componentSvc := services.NewComponentService(log, reposet.Component, recorder)
	styleSvc := services.NewSharedStyleService(log, reposet.SharedStyle, recorder)
	settingsSvc := services.NewSettingsService(log, reposet.Font, reposet.Locale, reposet.Asset, reposet.Folder)
	collectionSvc := services.NewCollectionService(log, reposet.Collection, reposet.CollectionField, reposet.CollectionItem)
	historySvc := services.NewVersionHistoryService(log, reposet.EntityVersion)
	undoRedoSvc := services.NewUndoRedoService(
		log,
		reposet.EntityVersion,
		recorder,
		layoutSvc,
		componentSvc,
		styleSvc,
		reposet.Component,
		reposet.SharedStyle,
		cfg.VerifyVersionHashes,
	)
	publisher := services.NewPublisher(log, reposet.Publish, cfg.PublishBatchSize)

	return Services{
		StateCache:     stateCache,
		Recorder:       recorder,
		Page:           pageSvc,
		PageLayout:     layoutSvc,
		Component:      componentSvc,
		SharedStyle:    styleSvc,
		Settings:       settingsSvc,
		Collection:     collectionSvc,
		VersionHistory: historySvc,
		UndoRedo:       undoRedoSvc,
		Publisher:      publisher,
	}, nil
}
