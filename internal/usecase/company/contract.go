package company

import (
	"context"

	domco "github.com/kailas-cloud/scoutdex/internal/domain/company"
	"github.com/kailas-cloud/scoutdex/internal/domain/search/filter"
	"github.com/kailas-cloud/scoutdex/internal/usecase/sync"
)

// Manager is the dual-backend synchronization contract consumed by the
// company facade.
type Manager interface {
	Create(ctx context.Context, c *domco.Company) (string, error)
	Get(ctx context.Context, id string) (*domco.Company, error)
	Update(ctx context.Context, id string, c *domco.Company) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, conditions []filter.Condition, offset, limit int) ([]*domco.Company, error)
	Count(ctx context.Context, conditions []filter.Condition) (int, error)
	Search(ctx context.Context, query string, conditions []filter.Condition, limit int) ([]sync.Match[*domco.Company], error)
	FindSimilar(ctx context.Context, id string, limit int) ([]sync.Match[*domco.Company], error)
}
