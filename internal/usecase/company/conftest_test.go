package company

import (
	"context"
	"testing"
	"time"

	"github.com/kailas-cloud/scoutdex/internal/domain"
	domco "github.com/kailas-cloud/scoutdex/internal/domain/company"
	"github.com/kailas-cloud/scoutdex/internal/domain/search/filter"
	"github.com/kailas-cloud/scoutdex/internal/usecase/sync"
)

// mockManager implements Manager for tests.
type mockManager struct {
	createFn      func(ctx context.Context, c *domco.Company) (string, error)
	getFn         func(ctx context.Context, id string) (*domco.Company, error)
	updateFn      func(ctx context.Context, id string, c *domco.Company) error
	deleteFn      func(ctx context.Context, id string) error
	listFn        func(ctx context.Context, conditions []filter.Condition, offset, limit int) ([]*domco.Company, error)
	countFn       func(ctx context.Context, conditions []filter.Condition) (int, error)
	searchFn      func(ctx context.Context, query string, conditions []filter.Condition, limit int) ([]sync.Match[*domco.Company], error)
	findSimilarFn func(ctx context.Context, id string, limit int) ([]sync.Match[*domco.Company], error)
}

func (m *mockManager) Create(ctx context.Context, c *domco.Company) (string, error) {
	if m.createFn != nil {
		return m.createFn(ctx, c)
	}
	return "c-1", nil
}

func (m *mockManager) Get(ctx context.Context, id string) (*domco.Company, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockManager) Update(ctx context.Context, id string, c *domco.Company) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, c)
	}
	return nil
}

func (m *mockManager) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockManager) List(ctx context.Context, conditions []filter.Condition, offset, limit int) ([]*domco.Company, error) {
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

func (m *mockManager) Search(ctx context.Context, query string, conditions []filter.Condition, limit int) ([]sync.Match[*domco.Company], error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, query, conditions, limit)
	}
	return nil, nil
}

func (m *mockManager) FindSimilar(ctx context.Context, id string, limit int) ([]sync.Match[*domco.Company], error) {
	if m.findSimilarFn != nil {
		return m.findSimilarFn(ctx, id, limit)
	}
	return nil, nil
}

func newTestService(t *testing.T) (*Service, *mockManager) {
	t.Helper()
	mm := &mockManager{}
	svc := New(mm)
	svc.now = func() time.Time { return time.Unix(1700000000, 0).UTC() }
	return svc, mm
}

func testCompany(id string, stage domco.Stage) *domco.Company {
	c := &domco.Company{
		Name:        "Acme Robotics",
		Description: "Warehouse automation platform",
		Industry:    domco.IndustrySaaS,
		Stage:       stage,
		FitScore:    0.8,
	}
	c.SetEntityID(id)
	return c
}
