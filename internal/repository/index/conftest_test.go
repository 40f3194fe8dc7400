package index

import (
	"context"
	"testing"
	"time"

	"github.com/kailas-cloud/scoutdex/internal/db"
	"github.com/kailas-cloud/scoutdex/internal/domain"
	"github.com/kailas-cloud/scoutdex/internal/domain/search/filter"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	hSetFn        func(ctx context.Context, key string, fields map[string]string) error
	hGetAllFn     func(ctx context.Context, key string) (map[string]string, error)
	delFn         func(ctx context.Context, key string) error
	searchKNNFn   func(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	searchCountFn func(ctx context.Context, index string, conditions []filter.Condition) (int, error)
}

func (m *mockStore) HSet(ctx context.Context, key string, fields map[string]string) error {
	if m.hSetFn != nil {
		return m.hSetFn(ctx, key, fields)
	}
	return nil
}

func (m *mockStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if m.hGetAllFn != nil {
		return m.hGetAllFn(ctx, key)
	}
	return nil, nil
}

func (m *mockStore) Del(ctx context.Context, key string) error {
	if m.delFn != nil {
		return m.delFn(ctx, key)
	}
	return nil
}

func (m *mockStore) SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
	if m.searchKNNFn != nil {
		return m.searchKNNFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func (m *mockStore) SearchCount(ctx context.Context, index string, conditions []filter.Condition) (int, error) {
	if m.searchCountFn != nil {
		return m.searchCountFn(ctx, index, conditions)
	}
	return 0, nil
}

// mockEmbedder returns a fixed vector unless embedFn is set.
type mockEmbedder struct {
	embedFn func(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	if m.embedFn != nil {
		return m.embedFn(ctx, text)
	}
	return domain.EmbeddingResult{Embedding: []float32{0.1, 0.2, 0.3}, TotalTokens: 3}, nil
}

// newTestRepo builds a repo with instant sleeps and no jitter noise.
// Slept delays are recorded for backoff assertions.
func newTestRepo(t *testing.T, verify VerifyPolicy) (*Repo, *mockStore, *[]time.Duration) {
	t.Helper()
	ms := &mockStore{}
	slept := &[]time.Duration{}
	repo := New(ms, &mockEmbedder{}, "default", "company", verify)
	repo.sleep = func(_ context.Context, d time.Duration) error {
		*slept = append(*slept, d)
		return nil
	}
	repo.randf = func() float64 { return 0.5 }
	return repo, ms, slept
}

func fastVerify() VerifyPolicy {
	return VerifyPolicy{
		Attempts:     3,
		InitialDelay: 10 * time.Millisecond,
		MaxDelay:     30 * time.Millisecond,
	}
}
