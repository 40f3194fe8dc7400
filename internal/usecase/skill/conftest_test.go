package skill

import (
	"context"
	"testing"

	"github.com/kailas-cloud/scoutdex/internal/domain"
	"github.com/kailas-cloud/scoutdex/internal/domain/search/filter"
	domskill "github.com/kailas-cloud/scoutdex/internal/domain/skill"
	"github.com/kailas-cloud/scoutdex/internal/usecase/sync"
)

// mockManager implements Manager for tests.
type mockManager struct {
	createFn      func(ctx context.Context, sk *domskill.Skill) (string, error)
	getFn         func(ctx context.Context, id string) (*domskill.Skill, error)
	updateFn      func(ctx context.Context, id string, sk *domskill.Skill) error
	deleteFn      func(ctx context.Context, id string) error
	listFn        func(ctx context.Context, conditions []filter.Condition, offset, limit int) ([]*domskill.Skill, error)
	countFn       func(ctx context.Context, conditions []filter.Condition) (int, error)
	searchFn      func(ctx context.Context, query string, conditions []filter.Condition, limit int) ([]sync.Match[*domskill.Skill], error)
	findSimilarFn func(ctx context.Context, id string, limit int) ([]sync.Match[*domskill.Skill], error)
}

func (m *mockManager) Create(ctx context.Context, sk *domskill.Skill) (string, error) {
	if m.createFn != nil {
		return m.createFn(ctx, sk)
	}
	return "s-1", nil
}

func (m *mockManager) Get(ctx context.Context, id string) (*domskill.Skill, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockManager) Update(ctx context.Context, id string, sk *domskill.Skill) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, sk)
	}
	return nil
}

func (m *mockManager) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockManager) List(ctx context.Context, conditions []filter.Condition, offset, limit int) ([]*domskill.Skill, error) {
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

func (m *mockManager) Search(ctx context.Context, query string, conditions []filter.Condition, limit int) ([]sync.Match[*domskill.Skill], error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, query, conditions, limit)
	}
	return nil, nil
}

func (m *mockManager) FindSimilar(ctx context.Context, id string, limit int) ([]sync.Match[*domskill.Skill], error) {
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

func testSkill(id, name string, level domskill.Level) *domskill.Skill {
	sk := &domskill.Skill{
		Name:     name,
		Category: "backend",
		Level:    level,
	}
	sk.SetEntityID(id)
	return sk
}
