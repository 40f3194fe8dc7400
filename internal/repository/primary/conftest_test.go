package primary

import (
	"context"
	"testing"
	"time"

	"github.com/kailas-cloud/scoutdex/internal/db"
	"github.com/kailas-cloud/scoutdex/internal/domain/company"
	"github.com/kailas-cloud/scoutdex/internal/domain/search/filter"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	jsonSetFn     func(ctx context.Context, key, path string, data []byte) error
	jsonGetFn     func(ctx context.Context, key string, paths ...string) ([]byte, error)
	delFn         func(ctx context.Context, key string) error
	existsFn      func(ctx context.Context, key string) (bool, error)
	searchListFn  func(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error)
	searchCountFn func(ctx context.Context, index string, conditions []filter.Condition) (int, error)
}

func (m *mockStore) JSONSet(ctx context.Context, key, path string, data []byte) error {
	if m.jsonSetFn != nil {
		return m.jsonSetFn(ctx, key, path, data)
	}
	return nil
}

func (m *mockStore) JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error) {
	if m.jsonGetFn != nil {
		return m.jsonGetFn(ctx, key, paths...)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) Del(ctx context.Context, key string) error {
	if m.delFn != nil {
		return m.delFn(ctx, key)
	}
	return nil
}

func (m *mockStore) Exists(ctx context.Context, key string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, key)
	}
	return false, nil
}

func (m *mockStore) SearchList(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error) {
	if m.searchListFn != nil {
		return m.searchListFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func (m *mockStore) SearchCount(ctx context.Context, index string, conditions []filter.Condition) (int, error) {
	if m.searchCountFn != nil {
		return m.searchCountFn(ctx, index, conditions)
	}
	return 0, nil
}

func newTestRepo(t *testing.T) (*Repo[company.Company, *company.Company], *mockStore) {
	t.Helper()
	ms := &mockStore{}
	repo := New[company.Company, *company.Company](ms, "company")
	repo.newID = func() string { return "c-fixed" }
	repo.now = func() time.Time { return time.Unix(1700000000, 0).UTC() }
	return repo, ms
}

func testCompany() *company.Company {
	return &company.Company{
		Name:        "Acme Robotics",
		Description: "Warehouse automation platform",
		Industry:    company.IndustrySaaS,
		Stage:       company.StageSeed,
		FitScore:    0.8,
	}
}
