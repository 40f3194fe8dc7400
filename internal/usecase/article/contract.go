package article

import (
	"context"

	domart "github.com/kailas-cloud/scoutdex/internal/domain/article"
	"github.com/kailas-cloud/scoutdex/internal/domain/search/filter"
	"github.com/kailas-cloud/scoutdex/internal/usecase/sync"
)

// Manager is the dual-backend synchronization contract consumed by the
// article facade.
type Manager interface {
	Create(ctx context.Context, a *domart.Article) (string, error)
	Get(ctx context.Context, id string) (*domart.Article, error)
	Update(ctx context.Context, id string, a *domart.Article) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, conditions []filter.Condition, offset, limit int) ([]*domart.Article, error)
	Count(ctx context.Context, conditions []filter.Condition) (int, error)
	Search(ctx context.Context, query string, conditions []filter.Condition, limit int) ([]sync.Match[*domart.Article], error)
	FindSimilar(ctx context.Context, id string, limit int) ([]sync.Match[*domart.Article], error)
}
