// Package primary persists domain entities as JSON documents in the
// strongly consistent store, with FT indexes for filtered listing.
package primary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kailas-cloud/scoutdex/internal/db"
	"github.com/kailas-cloud/scoutdex/internal/domain"
	"github.com/kailas-cloud/scoutdex/internal/domain/search/filter"
)

// KeyPrefix namespaces all primary store document keys.
const KeyPrefix = "scoutdex:doc:"

// store is the consumer interface for documents (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	SearchList(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error)
	SearchCount(ctx context.Context, index string, conditions []filter.Condition) (int, error)
}

// Repo is a generic document repository for one entity type. PT is the
// pointer type implementing domain.Entity over T.
type Repo[T any, PT interface {
	domain.Entity
	*T
}] struct {
	store      store
	entityType string
	newID      func() string
	now        func() time.Time
}

// New creates a repository for the given entity type ("company",
// "posting", "article", "skill").
func New[T any, PT interface {
	domain.Entity
	*T
}](s store, entityType string) *Repo[T, PT] {
	return &Repo[T, PT]{
		store:      s,
		entityType: entityType,
		newID:      uuid.NewString,
		now:        time.Now,
	}
}

// Create stores a new entity under a generated id and returns the id.
func (r *Repo[T, PT]) Create(ctx context.Context, e PT) (string, error) {
	id := r.newID()
	e.SetEntityID(id)
	e.StampCreate(r.now().UTC())

	data, err := json.Marshal(e)
	if err != nil {
		return "", fmt.Errorf("marshal %s: %w", r.entityType, err)
	}
	if err := r.store.JSONSet(ctx, r.key(id), "$", data); err != nil {
		return "", fmt.Errorf("json.set %s: %w: %w", r.key(id), domain.ErrStoreUnavailable, err)
	}
	return id, nil
}

// Read returns the entity by id, migrated to the current schema.
func (r *Repo[T, PT]) Read(ctx context.Context, id string) (PT, error) {
	raw, err := r.store.JSONGet(ctx, r.key(id), "$")
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, fmt.Errorf("%s %s: %w", r.entityType, id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("json.get %s: %w: %w", r.key(id), domain.ErrStoreUnavailable, err)
	}
	return r.decode(id, raw)
}

// Update overwrites the stored entity. Returns false when the id does
// not exist; creation time is carried over from the stored document.
func (r *Repo[T, PT]) Update(ctx context.Context, id string, e PT) (bool, error) {
	raw, err := r.store.JSONGet(ctx, r.key(id), "$")
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("json.get %s: %w: %w", r.key(id), domain.ErrStoreUnavailable, err)
	}

	var metas []struct {
		CreatedAt time.Time `json:"created_at"`
	}
	if err := json.Unmarshal(raw, &metas); err != nil || len(metas) == 0 {
		// Non-array form means the value was written without a JSONPath
		// root; treat it as a single document.
		var meta struct {
			CreatedAt time.Time `json:"created_at"`
		}
		if err := json.Unmarshal(raw, &meta); err != nil {
			return false, fmt.Errorf("unmarshal %s %s: %w", r.entityType, id, err)
		}
		metas = append(metas[:0], struct {
			CreatedAt time.Time `json:"created_at"`
		}{meta.CreatedAt})
	}

	e.SetEntityID(id)
	e.SetCreated(metas[0].CreatedAt)
	e.StampUpdate(r.now().UTC())

	data, err := json.Marshal(e)
	if err != nil {
		return false, fmt.Errorf("marshal %s: %w", r.entityType, err)
	}
	if err := r.store.JSONSet(ctx, r.key(id), "$", data); err != nil {
		return false, fmt.Errorf("json.set %s: %w: %w", r.key(id), domain.ErrStoreUnavailable, err)
	}
	return true, nil
}

// Delete removes the entity. Returns false when the id does not exist.
func (r *Repo[T, PT]) Delete(ctx context.Context, id string) (bool, error) {
	exists, err := r.store.Exists(ctx, r.key(id))
	if err != nil {
		return false, fmt.Errorf("exists %s: %w: %w", r.key(id), domain.ErrStoreUnavailable, err)
	}
	if !exists {
		return false, nil
	}
	if err := r.store.Del(ctx, r.key(id)); err != nil {
		return false, fmt.Errorf("del %s: %w: %w", r.key(id), domain.ErrStoreUnavailable, err)
	}
	return true, nil
}

// List returns entities matching the conditions, paginated by offset.
func (r *Repo[T, PT]) List(ctx context.Context, conditions []filter.Condition, offset, limit int) ([]PT, error) {
	if limit <= 0 {
		limit = 20
	}
	result, err := r.store.SearchList(ctx, &db.ListQuery{
		IndexName:    r.indexName(),
		Conditions:   conditions,
		Offset:       offset,
		Limit:        limit,
		ReturnFields: []string{"$"},
	})
	if err != nil {
		return nil, fmt.Errorf("search list %s: %w: %w", r.entityType, domain.ErrStoreUnavailable, err)
	}
	if result == nil || len(result.Entries) == 0 {
		return nil, nil
	}

	entities := make([]PT, 0, len(result.Entries))
	for _, entry := range result.Entries {
		jsonStr := entry.Fields["$"]
		if jsonStr == "" {
			continue
		}
		e, err := r.decode(r.idFromKey(entry.Key), []byte(jsonStr))
		if err != nil {
			return nil, err
		}
		entities = append(entities, e)
	}
	return entities, nil
}

// Count returns the number of entities matching the conditions.
func (r *Repo[T, PT]) Count(ctx context.Context, conditions []filter.Condition) (int, error) {
	n, err := r.store.SearchCount(ctx, r.indexName(), conditions)
	if err != nil {
		return 0, fmt.Errorf("search count %s: %w: %w", r.entityType, domain.ErrStoreUnavailable, err)
	}
	return n, nil
}

// decode unmarshals a stored document, tolerating both the array form
// returned by JSON.GET with a "$" path and the bare object form
// returned by FT.SEARCH, then applies schema migration.
func (r *Repo[T, PT]) decode(id string, raw []byte) (PT, error) {
	data := raw
	if len(raw) > 0 && raw[0] == '[' {
		var parts []json.RawMessage
		if err := json.Unmarshal(raw, &parts); err != nil {
			return nil, fmt.Errorf("unmarshal %s %s: %w", r.entityType, id, err)
		}
		if len(parts) == 0 {
			return nil, fmt.Errorf("%s %s: %w", r.entityType, id, domain.ErrNotFound)
		}
		data = parts[0]
	}

	var e T
	pe := PT(&e)
	if err := json.Unmarshal(data, pe); err != nil {
		return nil, fmt.Errorf("unmarshal %s %s: %w", r.entityType, id, err)
	}
	pe.SetEntityID(id)
	if n, ok := any(pe).(domain.Normalizer); ok {
		n.Normalize()
	}
	return pe, nil
}

func (r *Repo[T, PT]) key(id string) string {
	return KeyPrefix + r.entityType + ":" + id
}

func (r *Repo[T, PT]) indexName() string {
	return KeyPrefix + r.entityType + ":idx"
}

func (r *Repo[T, PT]) idFromKey(key string) string {
	return strings.TrimPrefix(key, KeyPrefix+r.entityType+":")
}
