package article

import (
	"context"
	"testing"
	"time"

	"github.com/kailas-cloud/scoutdex/internal/domain"
	domart "github.com/kailas-cloud/scoutdex/internal/domain/article"
	"github.com/kailas-cloud/scoutdex/internal/domain/search/filter"
	"github.com/kailas-cloud/scoutdex/internal/usecase/sync"
)

// mockManager implements Manager for tests.
type mockManager struct {
	createFn      func(ctx context.Context, a *domart.Article) (string, error)
	getFn         func(ctx context.Context, id string) (*domart.Article, error)
	updateFn      func(ctx context.Context, id string, a *domart.Article) error
	deleteFn      func(ctx context.Context, id string) error
	listFn        func(ctx context.Context, conditions []filter.Condition, offset, limit int) ([]*domart.Article, error)
	countFn       func(ctx context.Context, conditions []filter.Condition) (int, error)
	searchFn      func(ctx context.Context, query string, conditions []filter.Condition, limit int) ([]sync.Match[*domart.Article], error)
	findSimilarFn func(ctx context.Context, id string, limit int) ([]sync.Match[*domart.Article], error)
}

func (m *mockManager) Create(ctx context.Context, a *domart.Article) (string, error) {
	if m.createFn != nil {
		return m.createFn(ctx, a)
	}
	return "a-1", nil
}

func (m *mockManager) Get(ctx context.Context, id string) (*domart.Article, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockManager) Update(ctx context.Context, id string, a *domart.Article) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, a)
	}
	return nil
}

func (m *mockManager) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockManager) List(ctx context.Context, conditions []filter.Condition, offset, limit int) ([]*domart.Article, error) {
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

func (m *mockManager) Search(ctx context.Context, query string, conditions []filter.Condition, limit int) ([]sync.Match[*domart.Article], error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, query, conditions, limit)
	}
	return nil, nil
}

func (m *mockManager) FindSimilar(ctx context.Context, id string, limit int) ([]sync.Match[*domart.Article], error) {
	if m.findSimilarFn != nil {
		return m.findSimilarFn(ctx, id, limit)
	}
	return nil, nil
}

func newTestService(t *testing.T) (*Service, *mockManager) {
	t.Helper()
	mm := &mockManager{}
	return New(mm), mm
}

func testArticle(id string) *domart.Article {
	a := &domart.Article{
		Title:       "Vector search in production",
		Content:     "Lessons from running HNSW indexes at scale.",
		Author:      "Dana Smith",
		Source:      "engineering-blog",
		PublishedAt: time.Unix(1690000000, 0).UTC(),
	}
	a.SetEntityID(id)
	return a
}
