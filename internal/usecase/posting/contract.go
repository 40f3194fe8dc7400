package posting

import (
	"context"

	domco "github.com/kailas-cloud/scoutdex/internal/domain/company"
	dompost "github.com/kailas-cloud/scoutdex/internal/domain/posting"
	"github.com/kailas-cloud/scoutdex/internal/domain/search/filter"
	"github.com/kailas-cloud/scoutdex/internal/usecase/sync"
)

// Manager is the dual-backend synchronization contract consumed by the
// posting facade.
type Manager interface {
	Create(ctx context.Context, p *dompost.Posting) (string, error)
	Get(ctx context.Context, id string) (*dompost.Posting, error)
	Update(ctx context.Context, id string, p *dompost.Posting) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, conditions []filter.Condition, offset, limit int) ([]*dompost.Posting, error)
	Count(ctx context.Context, conditions []filter.Condition) (int, error)
	Search(ctx context.Context, query string, conditions []filter.Condition, limit int) ([]sync.Match[*dompost.Posting], error)
	FindSimilar(ctx context.Context, id string, limit int) ([]sync.Match[*dompost.Posting], error)
}

// CompanyReader resolves company ids referenced by postings.
type CompanyReader interface {
	Get(ctx context.Context, id string) (*domco.Company, error)
}
