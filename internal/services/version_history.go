package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ycode/builder-backend/internal/pkg/logger"
	"github.com/ycode/builder-backend/internal/repos"
	"github.com/ycode/builder-backend/internal/requestdata"
	"github.com/ycode/builder-backend/internal/types"
)

// VersionHistoryService exposes the version trail: reads per entity or
// session, plus the raw write path for clients that compute patches
// themselves. Most versions are recorded server side by the recorder; the
// write path stores a caller-supplied record verbatim.
type VersionHistoryService interface {
	Get(ctx context.Context, id uuid.UUID) (*types.EntityVersion, error)
	ListForEntity(ctx context.Context, entityType types.EntityType, entityID uuid.UUID) ([]*types.EntityVersion, error)
	ListForSession(ctx context.Context, sessionID uuid.UUID) ([]*types.EntityVersion, error)
	Create(ctx context.Context, version *types.EntityVersion) (*types.EntityVersion, error)
}

type versionHistoryService struct {
	log      *logger.Logger
	versions repos.EntityVersionRepo
}

func NewVersionHistoryService(log *logger.Logger, versions repos.EntityVersionRepo) VersionHistoryService {
	return &versionHistoryService{log: log.With("service", "VersionHistoryService"), versions: versions}
}

func (s *versionHistoryService) Get(ctx context.Context, id uuid.UUID) (*types.EntityVersion, error) {
	return s.versions.GetByID(ctx, id)
}

func (s *versionHistoryService) ListForEntity(ctx context.Context, entityType types.EntityType, entityID uuid.UUID) ([]*types.EntityVersion, error) {
	return s.versions.ListForEntity(ctx, entityType, entityID)
}

func (s *versionHistoryService) ListForSession(ctx context.Context, sessionID uuid.UUID) ([]*types.EntityVersion, error) {
	return s.versions.ListForSession(ctx, sessionID)
}

func (s *versionHistoryService) Create(ctx context.Context, version *types.EntityVersion) (*types.EntityVersion, error) {
	if !version.EntityType.Valid() {
		return nil, fmt.Errorf("unknown entity type %q", version.EntityType)
	}
	if version.EntityID == uuid.Nil {
		return nil, fmt.Errorf("version record requires an entity id")
	}
	if version.ActionType == "" {
		version.ActionType = types.ActionTypeUpdate
	}
	if version.SessionID == uuid.Nil {
		version.SessionID = requestdata.SessionID(ctx)
	}
	stored, err := s.versions.Create(ctx, nil, version)
	if err != nil {
		return nil, err
	}
	s.log.Info("Stored version record",
		"entity_type", stored.EntityType,
		"entity_id", stored.EntityID,
		"version_id", stored.ID,
	)
	return stored, nil
}
