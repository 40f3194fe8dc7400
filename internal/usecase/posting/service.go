// Package posting exposes job posting operations on top of the
// synchronization manager: archiving, company scoping, evaluation
// history and best-match ranking.
package posting

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/kailas-cloud/scoutdex/internal/domain"
	dompost "github.com/kailas-cloud/scoutdex/internal/domain/posting"
	"github.com/kailas-cloud/scoutdex/internal/usecase/sync"
)

// Service handles posting CRUD, search and lifecycle.
type Service struct {
	mgr       Manager
	companies CompanyReader
	now       func() time.Time
}

// New creates a posting service.
func New(mgr Manager, companies CompanyReader) *Service {
	return &Service{mgr: mgr, companies: companies, now: time.Now}
}

// Create stores and indexes a new posting. The referenced company must
// exist; new postings start active.
func (s *Service) Create(ctx context.Context, p *dompost.Posting) (string, error) {
	if _, err := s.companies.Get(ctx, p.CompanyID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", fmt.Errorf("unknown company %s: %w", p.CompanyID, domain.ErrValidation)
		}
		return "", fmt.Errorf("resolve company %s: %w", p.CompanyID, err)
	}
	p.Active = true
	p.ArchivedAt = nil
	return s.mgr.Create(ctx, p)
}

// Get returns the posting by id.
func (s *Service) Get(ctx context.Context, id string) (*dompost.Posting, error) {
	return s.mgr.Get(ctx, id)
}

// Update overwrites the posting.
func (s *Service) Update(ctx context.Context, id string, p *dompost.Posting) error {
	return s.mgr.Update(ctx, id, p)
}

// Delete removes the posting.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.mgr.Delete(ctx, id)
}

// Archive deactivates the posting, keeping it readable. Archiving an
// already archived posting is a no-op.
func (s *Service) Archive(ctx context.Context, id string) error {
	p, err := s.mgr.Get(ctx, id)
	if err != nil {
		return err
	}
	if !p.Active && p.ArchivedAt != nil {
		return nil
	}
	now := s.now().UTC()
	p.Active = false
	p.ArchivedAt = &now
	return s.mgr.Update(ctx, id, p)
}

// AddEvaluation appends an evaluation to the posting history. A zero
// evaluation time defaults to now.
func (s *Service) AddEvaluation(ctx context.Context, id string, ev domain.Evaluation) error {
	p, err := s.mgr.Get(ctx, id)
	if err != nil {
		return err
	}
	if ev.EvaluatedAt.IsZero() {
		ev.EvaluatedAt = s.now().UTC()
	}
	if err := ev.Validate(); err != nil {
		return err
	}
	p.Evaluations = append(p.Evaluations, ev)
	return s.mgr.Update(ctx, id, p)
}

// List returns postings matching the filters.
func (s *Service) List(ctx context.Context, f dompost.Filters, offset, limit int) ([]*dompost.Posting, error) {
	conds, err := f.Conditions()
	if err != nil {
		return nil, err
	}
	return s.mgr.List(ctx, conds, offset, limit)
}

// ListForCompany returns a company's postings, active only unless
// archived ones are requested.
func (s *Service) ListForCompany(ctx context.Context, companyID string, includeArchived bool, offset, limit int) ([]*dompost.Posting, error) {
	return s.List(ctx, dompost.Filters{
		CompanyID:  companyID,
		ActiveOnly: !includeArchived,
	}, offset, limit)
}

// Count returns the number of postings matching the filters.
func (s *Service) Count(ctx context.Context, f dompost.Filters) (int, error) {
	conds, err := f.Conditions()
	if err != nil {
		return 0, err
	}
	return s.mgr.Count(ctx, conds)
}

// Search runs a semantic query over postings matching the filters.
func (s *Service) Search(ctx context.Context, query string, f dompost.Filters, limit int) ([]sync.Match[*dompost.Posting], error) {
	conds, err := f.Conditions()
	if err != nil {
		return nil, err
	}
	return s.mgr.Search(ctx, query, conds, limit)
}

// FindSimilar returns postings nearest to the given one.
func (s *Service) FindSimilar(ctx context.Context, id string, limit int) ([]sync.Match[*dompost.Posting], error) {
	return s.mgr.FindSimilar(ctx, id, limit)
}

// BestMatches returns active postings whose latest evaluation score is
// at least minScore, best first.
func (s *Service) BestMatches(ctx context.Context, minScore float64, limit int) ([]*dompost.Posting, error) {
	postings, err := s.List(ctx, dompost.Filters{
		ActiveOnly:    true,
		MinMatchScore: &minScore,
	}, 0, limit)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(postings, func(i, j int) bool {
		return postings[i].LatestScore() > postings[j].LatestScore()
	})
	return postings, nil
}
