package posting

import (
	"context"
	"testing"
	"time"

	"github.com/kailas-cloud/scoutdex/internal/domain"
	domco "github.com/kailas-cloud/scoutdex/internal/domain/company"
	dompost "github.com/kailas-cloud/scoutdex/internal/domain/posting"
	"github.com/kailas-cloud/scoutdex/internal/domain/search/filter"
	"github.com/kailas-cloud/scoutdex/internal/usecase/sync"
)

// mockManager implements Manager for tests.
type mockManager struct {
	createFn      func(ctx context.Context, p *dompost.Posting) (string, error)
	getFn         func(ctx context.Context, id string) (*dompost.Posting, error)
	updateFn      func(ctx context.Context, id string, p *dompost.Posting) error
	deleteFn      func(ctx context.Context, id string) error
	listFn        func(ctx context.Context, conditions []filter.Condition, offset, limit int) ([]*dompost.Posting, error)
	countFn       func(ctx context.Context, conditions []filter.Condition) (int, error)
	searchFn      func(ctx context.Context, query string, conditions []filter.Condition, limit int) ([]sync.Match[*dompost.Posting], error)
	findSimilarFn func(ctx context.Context, id string, limit int) ([]sync.Match[*dompost.Posting], error)
}

func (m *mockManager) Create(ctx context.Context, p *dompost.Posting) (string, error) {
	if m.createFn != nil {
		return m.createFn(ctx, p)
	}
	return "p-1", nil
}

func (m *mockManager) Get(ctx context.Context, id string) (*dompost.Posting, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockManager) Update(ctx context.Context, id string, p *dompost.Posting) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, p)
	}
	return nil
}

func (m *mockManager) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockManager) List(ctx context.Context, conditions []filter.Condition, offset, limit int) ([]*dompost.Posting, error) {
	if m.listFn != nil {
		return m.listFn(ctx, conditions, offset, limit)
	}
	return nil, nil
}

func (m *mockManager) Count(ctx context.Context, conditions []filter.Condition) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx, conditions)
	}
	return 0, nil
}

func (m *mockManager) Search(ctx context.Context, query string, conditions []filter.Condition, limit int) ([]sync.Match[*dompost.Posting], error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, query, conditions, limit)
	}
	return nil, nil
}

func (m *mockManager) FindSimilar(ctx context.Context, id string, limit int) ([]sync.Match[*dompost.Posting], error) {
	if m.findSimilarFn != nil {
		return m.findSimilarFn(ctx, id, limit)
	}
	return nil, nil
}

// mockCompanies implements CompanyReader for tests.
type mockCompanies struct {
	getFn func(ctx context.Context, id string) (*domco.Company, error)
}

func (m *mockCompanies) Get(ctx context.Context, id string) (*domco.Company, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return &domco.Company{}, nil
}

func newTestService(t *testing.T) (*Service, *mockManager, *mockCompanies) {
	t.Helper()
	mm := &mockManager{}
	mc := &mockCompanies{}
	svc := New(mm, mc)
	svc.now = func() time.Time { return time.Unix(1700000000, 0).UTC() }
	return svc, mm, mc
}

func testPosting(id string) *dompost.Posting {
	p := &dompost.Posting{
		CompanyID:   "c-1",
		Title:       "Backend Engineer",
		Description: "Build ingestion pipelines",
		Active:      true,
	}
	p.SetEntityID(id)
	return p
}
