package sync

import (
	"context"

	"github.com/kailas-cloud/scoutdex/internal/domain"
	"github.com/kailas-cloud/scoutdex/internal/domain/search/filter"
)

// PrimaryStore is the strongly consistent storage contract for one
// entity type. It is the source of truth: every read path resolves
// entities through it.
type PrimaryStore[T domain.Entity] interface {
	Create(ctx context.Context, e T) (string, error)
	Read(ctx context.Context, id string) (T, error)
	Update(ctx context.Context, id string, e T) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, conditions []filter.Condition, offset, limit int) ([]T, error)
	Count(ctx context.Context, conditions []filter.Condition) (int, error)
}

// SearchIndex is the eventually consistent vector index contract.
// Write failures wrap domain.ErrIndexDegraded and never abort the
// primary operation; read failures wrap domain.ErrSearchUnavailable.
type SearchIndex interface {
	Index(ctx context.Context, id, text string, metadata map[string]string) error
	Search(ctx context.Context, query string, conditions []filter.Condition, limit int) ([]domain.SearchHit, error)
	FindSimilar(ctx context.Context, id string, limit int) ([]domain.SearchHit, error)
	Delete(ctx context.Context, id string) error
}
