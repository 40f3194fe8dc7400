// Package article exposes article operations on top of the
// synchronization manager, maintaining the published timestamp mirror
// and the tag set.
package article

import (
	"context"
	"sort"
	"strings"

	domart "github.com/kailas-cloud/scoutdex/internal/domain/article"
	"github.com/kailas-cloud/scoutdex/internal/usecase/sync"
)

// Service handles article CRUD, search and tagging.
type Service struct {
	mgr Manager
}

// New creates an article service.
func New(mgr Manager) *Service {
	return &Service{mgr: mgr}
}

// Create stores and indexes a new article.
func (s *Service) Create(ctx context.Context, a *domart.Article) (string, error) {
	prepare(a)
	return s.mgr.Create(ctx, a)
}

// Get returns the article by id.
func (s *Service) Get(ctx context.Context, id string) (*domart.Article, error) {
	return s.mgr.Get(ctx, id)
}

// Update overwrites the article.
func (s *Service) Update(ctx context.Context, id string, a *domart.Article) error {
	prepare(a)
	return s.mgr.Update(ctx, id, a)
}

// Delete removes the article.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.mgr.Delete(ctx, id)
}

// List returns articles matching the filters.
func (s *Service) List(ctx context.Context, f domart.Filters, offset, limit int) ([]*domart.Article, error) {
	conds, err := f.Conditions()
	if err != nil {
		return nil, err
	}
	return s.mgr.List(ctx, conds, offset, limit)
}

// Count returns the number of articles matching the filters.
func (s *Service) Count(ctx context.Context, f domart.Filters) (int, error) {
	conds, err := f.Conditions()
	if err != nil {
		return 0, err
	}
	return s.mgr.Count(ctx, conds)
}

// ByAuthor returns an author's articles.
func (s *Service) ByAuthor(ctx context.Context, author string, offset, limit int) ([]*domart.Article, error) {
	return s.List(ctx, domart.Filters{Authors: []string{author}}, offset, limit)
}

// BySource returns articles from one source.
func (s *Service) BySource(ctx context.Context, source string, offset, limit int) ([]*domart.Article, error) {
	return s.List(ctx, domart.Filters{Sources: []string{source}}, offset, limit)
}

// Search runs a semantic query over articles matching the filters.
func (s *Service) Search(ctx context.Context, query string, f domart.Filters, limit int) ([]sync.Match[*domart.Article], error) {
	conds, err := f.Conditions()
	if err != nil {
		return nil, err
	}
	return s.mgr.Search(ctx, query, conds, limit)
}

// FindSimilar returns articles nearest to the given one.
func (s *Service) FindSimilar(ctx context.Context, id string, limit int) ([]sync.Match[*domart.Article], error) {
	return s.mgr.FindSimilar(ctx, id, limit)
}

// AddTags adds tags to the article, keeping the set sorted and unique.
func (s *Service) AddTags(ctx context.Context, id string, tags ...string) error {
	a, err := s.mgr.Get(ctx, id)
	if err != nil {
		return err
	}
	a.Tags = normalizeTags(append(a.Tags, tags...))
	return s.mgr.Update(ctx, id, a)
}

// RemoveTags removes tags from the article. Unknown tags are ignored.
func (s *Service) RemoveTags(ctx context.Context, id string, tags ...string) error {
	a, err := s.mgr.Get(ctx, id)
	if err != nil {
		return err
	}
	drop := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		drop[normalizeTag(t)] = struct{}{}
	}
	kept := a.Tags[:0]
	for _, t := range a.Tags {
		if _, ok := drop[t]; !ok {
			kept = append(kept, t)
		}
	}
	a.Tags = kept
	return s.mgr.Update(ctx, id, a)
}

// prepare keeps the derived fields consistent before a write.
func prepare(a *domart.Article) {
	if !a.PublishedAt.IsZero() {
		a.PublishedTS = a.PublishedAt.Unix()
	}
	a.Tags = normalizeTags(a.Tags)
}

func normalizeTag(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}

func normalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = normalizeTag(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil
	}
	sort.Strings(out)
	return out
}
