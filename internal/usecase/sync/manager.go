// Package sync keeps the primary store and the search index in step for
// one entity type. The store is authoritative: index writes are best
// effort, index reads fall back to lexical scoring over stored
// entities, and every search result is resolved through the store.
package sync

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/scoutdex/internal/domain"
	"github.com/kailas-cloud/scoutdex/internal/domain/search/filter"
	"github.com/kailas-cloud/scoutdex/internal/lexical"
	"github.com/kailas-cloud/scoutdex/internal/metrics"
)

const defaultCandidateLimit = 200

// Match is a search result with its resolved entity.
type Match[T domain.Entity] struct {
	Entity T
	Score  float64
}

// Manager coordinates writes and searches across both backends for one
// entity type.
type Manager[T any, PT interface {
	domain.Entity
	*T
}] struct {
	entityType     string
	store          PrimaryStore[PT]
	index          SearchIndex
	threshold      float64
	candidateLimit int
	logger         *zap.Logger
}

// New creates a synchronization manager.
func New[T any, PT interface {
	domain.Entity
	*T
}](entityType string, store PrimaryStore[PT], index SearchIndex, logger *zap.Logger) *Manager[T, PT] {
	return &Manager[T, PT]{
		entityType:     entityType,
		store:          store,
		index:          index,
		threshold:      lexical.DefaultThreshold,
		candidateLimit: defaultCandidateLimit,
		logger:         logger,
	}
}

// WithFallback tunes the lexical fallback: the minimum score kept and
// the number of stored entities scored per query.
func (m *Manager[T, PT]) WithFallback(threshold float64, candidateLimit int) *Manager[T, PT] {
	if threshold > 0 {
		m.threshold = threshold
	}
	if candidateLimit > 0 {
		m.candidateLimit = candidateLimit
	}
	return m
}

// Create validates and stores the entity, then indexes it. An index
// failure is logged and the id still returned: the entity exists, it is
// just not searchable yet.
func (m *Manager[T, PT]) Create(ctx context.Context, e PT) (string, error) {
	if err := e.Validate(); err != nil {
		return "", fmt.Errorf("validate %s: %w", m.entityType, err)
	}

	id, err := m.store.Create(ctx, e)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", m.entityType, err)
	}

	m.indexBestEffort(ctx, id, e)
	return id, nil
}

// Get returns the entity from the primary store.
func (m *Manager[T, PT]) Get(ctx context.Context, id string) (PT, error) {
	e, err := m.store.Read(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", m.entityType, err)
	}
	return e, nil
}

// Update validates and overwrites the stored entity, then re-indexes
// it. Returns ErrNotFound for an unknown id.
func (m *Manager[T, PT]) Update(ctx context.Context, id string, e PT) error {
	if err := e.Validate(); err != nil {
		return fmt.Errorf("validate %s: %w", m.entityType, err)
	}

	ok, err := m.store.Update(ctx, id, e)
	if err != nil {
		return fmt.Errorf("update %s: %w", m.entityType, err)
	}
	if !ok {
		return fmt.Errorf("%s %s: %w", m.entityType, id, domain.ErrNotFound)
	}

	m.indexBestEffort(ctx, id, e)
	return nil
}

// Delete removes the entity from both backends. Returns ErrNotFound for
// an unknown id; a failed index removal is logged, the entry is
// unreachable anyway since results resolve through the store.
func (m *Manager[T, PT]) Delete(ctx context.Context, id string) error {
	ok, err := m.store.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", m.entityType, err)
	}
	if !ok {
		return fmt.Errorf("%s %s: %w", m.entityType, id, domain.ErrNotFound)
	}

	if err := m.index.Delete(ctx, id); err != nil {
		m.logger.Warn("Search index delete failed",
			zap.String("entity_type", m.entityType),
			zap.String("id", id),
			zap.Error(err),
		)
	}
	return nil
}

// List returns stored entities matching the conditions.
func (m *Manager[T, PT]) List(ctx context.Context, conditions []filter.Condition, offset, limit int) ([]PT, error) {
	entities, err := m.store.List(ctx, conditions, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", m.entityType, err)
	}
	return entities, nil
}

// Count returns the number of stored entities matching the conditions.
func (m *Manager[T, PT]) Count(ctx context.Context, conditions []filter.Condition) (int, error) {
	n, err := m.store.Count(ctx, conditions)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", m.entityType, err)
	}
	return n, nil
}

// Search runs a semantic query against the index and resolves each hit
// through the primary store. Hits without a stored entity are dropped:
// the index may lag behind deletions. When the index path fails the
// query is served by lexical scoring over stored entities instead.
func (m *Manager[T, PT]) Search(ctx context.Context, query string, conditions []filter.Condition, limit int) ([]Match[PT], error) {
	hits, err := m.index.Search(ctx, query, conditions, limit)
	if err != nil {
		m.logger.Warn("Vector search failed, using lexical fallback",
			zap.String("entity_type", m.entityType),
			zap.Error(err),
		)
		metrics.SearchFallbackTotal.WithLabelValues(m.entityType).Inc()
		return m.searchLexical(ctx, query, conditions, limit)
	}
	return m.resolve(ctx, hits)
}

// FindSimilar returns entities nearest to the given one. The reference
// entity must exist in the store; an index failure degrades to an empty
// result rather than an error.
func (m *Manager[T, PT]) FindSimilar(ctx context.Context, id string, limit int) ([]Match[PT], error) {
	if _, err := m.store.Read(ctx, id); err != nil {
		return nil, fmt.Errorf("find similar %s: %w", m.entityType, err)
	}

	hits, err := m.index.FindSimilar(ctx, id, limit)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Stored but never indexed; nothing to compare against.
			return []Match[PT]{}, nil
		}
		m.logger.Warn("Similarity search failed",
			zap.String("entity_type", m.entityType),
			zap.String("id", id),
			zap.Error(err),
		)
		return []Match[PT]{}, nil
	}
	return m.resolve(ctx, hits)
}

// searchLexical scores stored entities against the query.
func (m *Manager[T, PT]) searchLexical(ctx context.Context, query string, conditions []filter.Condition, limit int) ([]Match[PT], error) {
	candidates, err := m.store.List(ctx, conditions, 0, m.candidateLimit)
	if err != nil {
		return nil, fmt.Errorf("lexical fallback %s: %w", m.entityType, err)
	}

	byID := make(map[string]PT, len(candidates))
	docs := make([]lexical.Document, 0, len(candidates))
	for _, c := range candidates {
		byID[c.EntityID()] = c
		docs = append(docs, lexical.Document{
			ID:    c.EntityID(),
			Title: c.SearchTitle(),
			Body:  c.SearchText(),
		})
	}

	ranked := lexical.Rank(query, docs, m.threshold)
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	matches := make([]Match[PT], 0, len(ranked))
	for _, r := range ranked {
		matches = append(matches, Match[PT]{Entity: byID[r.ID], Score: r.Score})
	}
	return matches, nil
}

// resolve hydrates hits from the primary store, dropping ids the store
// no longer knows.
func (m *Manager[T, PT]) resolve(ctx context.Context, hits []domain.SearchHit) ([]Match[PT], error) {
	matches := make([]Match[PT], 0, len(hits))
	for _, hit := range hits {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("resolve %s hits: %w", m.entityType, err)
		}
		e, err := m.store.Read(ctx, hit.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				m.logger.Debug("Dropping stale search hit",
					zap.String("entity_type", m.entityType),
					zap.String("id", hit.ID),
				)
				continue
			}
			return nil, fmt.Errorf("resolve %s %s: %w", m.entityType, hit.ID, err)
		}
		matches = append(matches, Match[PT]{Entity: e, Score: hit.Score})
	}
	return matches, nil
}

// indexBestEffort pushes the entity into the search index, logging
// instead of failing when the index is degraded.
func (m *Manager[T, PT]) indexBestEffort(ctx context.Context, id string, e PT) {
	if err := m.index.Index(ctx, id, e.SearchText(), e.SearchMetadata()); err != nil {
		m.logger.Warn("Search index write failed, entity stored but not searchable",
			zap.String("entity_type", m.entityType),
			zap.String("id", id),
			zap.Error(err),
		)
	}
}
