package sync

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/scoutdex/internal/domain"
	"github.com/kailas-cloud/scoutdex/internal/domain/company"
	"github.com/kailas-cloud/scoutdex/internal/domain/search/filter"
)

// mockStore implements PrimaryStore for tests.
type mockStore struct {
	createFn func(ctx context.Context, e *company.Company) (string, error)
	readFn   func(ctx context.Context, id string) (*company.Company, error)
	updateFn func(ctx context.Context, id string, e *company.Company) (bool, error)
	deleteFn func(ctx context.Context, id string) (bool, error)
	listFn   func(ctx context.Context, conditions []filter.Condition, offset, limit int) ([]*company.Company, error)
	countFn  func(ctx context.Context, conditions []filter.Condition) (int, error)
}

func (m *mockStore) Create(ctx context.Context, e *company.Company) (string, error) {
	if m.createFn != nil {
		return m.createFn(ctx, e)
	}
	return "c-fixed", nil
}

func (m *mockStore) Read(ctx context.Context, id string) (*company.Company, error) {
	if m.readFn != nil {
		return m.readFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) Update(ctx context.Context, id string, e *company.Company) (bool, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, e)
	}
	return true, nil
}

func (m *mockStore) Delete(ctx context.Context, id string) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return true, nil
}

func (m *mockStore) List(ctx context.Context, conditions []filter.Condition, offset, limit int) ([]*company.Company, error) {
	if m.listFn != nil {
		return m.listFn(ctx, conditions, offset, limit)
	}
	return nil, nil
}

func (m *mockStore) Count(ctx context.Context, conditions []filter.Condition) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx, conditions)
	}
	return 0, nil
}

// mockIndex implements SearchIndex for tests.
type mockIndex struct {
	indexFn       func(ctx context.Context, id, text string, metadata map[string]string) error
	searchFn      func(ctx context.Context, query string, conditions []filter.Condition, limit int) ([]domain.SearchHit, error)
	findSimilarFn func(ctx context.Context, id string, limit int) ([]domain.SearchHit, error)
	deleteFn      func(ctx context.Context, id string) error
}

func (m *mockIndex) Index(ctx context.Context, id, text string, metadata map[string]string) error {
	if m.indexFn != nil {
		return m.indexFn(ctx, id, text, metadata)
	}
	return nil
}

func (m *mockIndex) Search(ctx context.Context, query string, conditions []filter.Condition, limit int) ([]domain.SearchHit, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, query, conditions, limit)
	}
	return nil, nil
}

func (m *mockIndex) FindSimilar(ctx context.Context, id string, limit int) ([]domain.SearchHit, error) {
	if m.findSimilarFn != nil {
		return m.findSimilarFn(ctx, id, limit)
	}
	return nil, nil
}

func (m *mockIndex) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func newTestManager(t *testing.T) (*Manager[company.Company, *company.Company], *mockStore, *mockIndex) {
	t.Helper()
	ms := &mockStore{}
	mi := &mockIndex{}
	mgr := New[company.Company, *company.Company]("company", ms, mi, zap.NewNop())
	return mgr, ms, mi
}

func testCompany(id, name string) *company.Company {
	c := &company.Company{
		Name:        name,
		Description: "Warehouse automation platform",
		Industry:    company.IndustrySaaS,
		Stage:       company.StageSeed,
		FitScore:    0.8,
	}
	c.SetEntityID(id)
	return c
}
