package services

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/ycode/builder-backend/internal/pkg/logger"
	"github.com/ycode/builder-backend/internal/repos"
	"github.com/ycode/builder-backend/internal/types"
)

// DefaultPublishBatchSize bounds how many rows a single publish upsert
// statement carries.
const DefaultPublishBatchSize = 200

// PublishResult counts what a publish pass did for one entity type.
type PublishResult struct {
	Added   int `json:"added"`
	Updated int `json:"updated"`
	Deleted int `json:"deleted"`
}

func (r PublishResult) add(other PublishResult) PublishResult {
	return PublishResult{
		Added:   r.Added + other.Added,
		Updated: r.Updated + other.Updated,
		Deleted: r.Deleted + other.Deleted,
	}
}

// PublishSummary is the outcome of a full-site publish.
type PublishSummary struct {
	ByType map[types.EntityType]PublishResult `json:"by_type"`
	Total  PublishResult                      `json:"total"`
}

// Publisher promotes draft rows to published rows by content hash: drafts
// whose hash differs from (or has no) published counterpart are copied
// over, soft-deleted drafts complete their lifecycle by hard-deleting
// both sides, and published rows with no surviving draft are removed.
// A second run over unchanged drafts writes nothing.
type Publisher interface {
	PublishType(ctx context.Context, entityType types.EntityType) (PublishResult, error)
	PublishAll(ctx context.Context) (*PublishSummary, error)
}

type publisher struct {
	log       *logger.Logger
	rows      repos.PublishRepo
	batchSize int
}

func NewPublisher(log *logger.Logger, rows repos.PublishRepo, batchSize int) Publisher {
	if batchSize <= 0 {
		batchSize = DefaultPublishBatchSize
	}
	return &publisher{
		log:       log.With("service", "Publisher"),
		rows:      rows,
		batchSize: batchSize,
	}
}

func (p *publisher) PublishAll(ctx context.Context) (*PublishSummary, error) {
	ctx, span := otel.Tracer("builder-backend").Start(ctx, "publish.all")
	defer span.End()

	entityTypes := types.AllEntityTypes()
	summary := &PublishSummary{ByType: make(map[types.EntityType]PublishResult, len(entityTypes))}
	var mu sync.Mutex

	// Versioned tables are independent of each other for publish purposes,
	// so the per-type passes run concurrently.
	g, ctx := errgroup.WithContext(ctx)
	for _, entityType := range entityTypes {
		g.Go(func() error {
			result, err := p.PublishType(ctx, entityType)
			if err != nil {
				return fmt.Errorf("publish %s: %w", entityType, err)
			}
			mu.Lock()
			summary.ByType[entityType] = result
			summary.Total = summary.Total.add(result)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	p.log.Info("Publish completed",
		"added", summary.Total.Added,
		"updated", summary.Total.Updated,
		"deleted", summary.Total.Deleted,
	)
	return summary, nil
}

func (p *publisher) PublishType(ctx context.Context, entityType types.EntityType) (PublishResult, error) {
	ctx, span := otel.Tracer("builder-backend").Start(ctx, "publish.type")
	defer span.End()
	span.SetAttributes(attribute.String("entity.type", string(entityType)))

	var result PublishResult
	if !entityType.Valid() {
		return result, fmt.Errorf("unknown entity type %q", entityType)
	}
	table := entityType.TableName()

	drafts, err := p.rows.LoadDrafts(ctx, table)
	if err != nil {
		return result, fmt.Errorf("load drafts: %w", err)
	}
	published, err := p.rows.LoadPublished(ctx, table)
	if err != nil {
		return result, fmt.Errorf("load published: %w", err)
	}

	publishedHashes := make(map[string]string, len(published))
	for _, row := range published {
		publishedHashes[repos.RowID(row)] = repos.RowHash(row)
	}

	var (
		toUpsert         []map[string]interface{}
		deadDraftIDs     []interface{}
		deadPublishedIDs []interface{}
		retiredCount     int
		liveDraftIDs     = make(map[string]bool, len(drafts))
	)

	for _, draft := range drafts {
		id := repos.RowID(draft)

		if repos.RowDeleted(draft) {
			// A soft-deleted draft finishes its lifecycle here: the
			// published copy goes away and the tombstone row with it.
			deadDraftIDs = append(deadDraftIDs, draft["id"])
			if _, wasPublished := publishedHashes[id]; wasPublished {
				deadPublishedIDs = append(deadPublishedIDs, draft["id"])
				retiredCount++
				delete(publishedHashes, id)
			}
			continue
		}

		liveDraftIDs[id] = true
		previousHash, wasPublished := publishedHashes[id]
		if wasPublished && previousHash == repos.RowHash(draft) {
			continue
		}
		toUpsert = append(toUpsert, draft)
		if wasPublished {
			result.Updated++
		} else {
			result.Added++
		}
	}

	// Published rows whose draft vanished entirely (hard-deleted outside
	// the soft-delete path) are orphans; remove them too.
	for _, row := range published {
		id := repos.RowID(row)
		if liveDraftIDs[id] {
			continue
		}
		alreadyRetired := false
		for _, dead := range deadPublishedIDs {
			if repos.RowID(map[string]interface{}{"id": dead}) == id {
				alreadyRetired = true
				break
			}
		}
		if alreadyRetired {
			continue
		}
		deadPublishedIDs = append(deadPublishedIDs, row["id"])
		retiredCount++
	}

	for start := 0; start < len(toUpsert); start += p.batchSize {
		end := start + p.batchSize
		if end > len(toUpsert) {
			end = len(toUpsert)
		}
		if err := p.rows.UpsertPublished(ctx, table, toUpsert[start:end]); err != nil {
			return result, fmt.Errorf("upsert published rows: %w", err)
		}
	}
	if err := p.rows.DeletePublishedByIDs(ctx, table, deadPublishedIDs); err != nil {
		return result, fmt.Errorf("delete retired published rows: %w", err)
	}
	if err := p.rows.DeleteDraftsByIDs(ctx, table, deadDraftIDs); err != nil {
		return result, fmt.Errorf("delete tombstone drafts: %w", err)
	}
	result.Deleted = retiredCount

	if result.Added > 0 || result.Updated > 0 || result.Deleted > 0 {
		p.log.Info("Published entity type",
			"entity_type", entityType,
			"added", result.Added,
			"updated", result.Updated,
			"deleted", result.Deleted,
		)
	}
	return result, nil
}
