package app

import (
	"gorm.io/gorm"

	"github.com/ycode/builder-backend/internal/pkg/logger"
	"github.com/ycode/builder-backend/internal/repos"
)

type Repos struct {
	Page            repos.PageRepo
	PageLayout      repos.PageLayoutRepo
	Component       repos.ComponentRepo
	SharedStyle     repos.SharedStyleRepo
	Font            repos.FontRepo
	Locale          repos.LocaleRepo
	Asset           repos.AssetRepo
	Folder          repos.FolderRepo
	Collection      repos.CollectionRepo
	CollectionField repos.CollectionFieldRepo
	CollectionItem  repos.CollectionItemRepo
	EntityVersion   repos.EntityVersionRepo
	Publish         repos.PublishRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Page:            repos.NewPageRepo(db, log),
		PageLayout:      repos.NewPageLayoutRepo(db, log),
		Component:       repos.NewComponentRepo(db, log),
		SharedStyle:     repos.NewSharedStyleRepo(db, log),
		Font:            repos.NewFontRepo(db, log),
		Locale:          repos.NewLocaleRepo(db, log),
		Asset:           repos.NewAssetRepo(db, log),
		Folder:          repos.NewFolderRepo(db, log),
		Collection:      repos.NewCollectionRepo(db, log),
		CollectionField: repos.NewCollectionFieldRepo(db, log),
		CollectionItem:  repos.NewCollectionItemRepo(db, log),
		EntityVersion:   repos.NewEntityVersionRepo(db, log),
		Publish:         repos.NewPublishRepo(db, log),
	}
}
