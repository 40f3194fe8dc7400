// Package company exposes company operations on top of the
// synchronization manager, adding the stage transition rule and the
// evaluation history.
package company

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/scoutdex/internal/domain"
	domco "github.com/kailas-cloud/scoutdex/internal/domain/company"
	"github.com/kailas-cloud/scoutdex/internal/usecase/sync"
)

// Service handles company CRUD, search and evaluations.
type Service struct {
	mgr Manager
	now func() time.Time
}

// New creates a company service.
func New(mgr Manager) *Service {
	return &Service{mgr: mgr, now: time.Now}
}

// Create stores and indexes a new company.
func (s *Service) Create(ctx context.Context, c *domco.Company) (string, error) {
	return s.mgr.Create(ctx, c)
}

// Get returns the company by id.
func (s *Service) Get(ctx context.Context, id string) (*domco.Company, error) {
	return s.mgr.Get(ctx, id)
}

// Update overwrites the company. Stage changes must keep the maturity
// ordering: moving to an earlier stage is rejected before any write.
func (s *Service) Update(ctx context.Context, id string, c *domco.Company) error {
	current, err := s.mgr.Get(ctx, id)
	if err != nil {
		return err
	}
	if !current.Stage.CanTransitionTo(c.Stage) {
		return fmt.Errorf("stage transition %s to %s not allowed: %w",
			current.Stage, c.Stage, domain.ErrValidation)
	}
	return s.mgr.Update(ctx, id, c)
}

// Delete removes the company.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.mgr.Delete(ctx, id)
}

// List returns companies matching the filters.
func (s *Service) List(ctx context.Context, f domco.Filters, offset, limit int) ([]*domco.Company, error) {
	conds, err := f.Conditions()
	if err != nil {
		return nil, err
	}
	return s.mgr.List(ctx, conds, offset, limit)
}

// Count returns the number of companies matching the filters.
func (s *Service) Count(ctx context.Context, f domco.Filters) (int, error) {
	conds, err := f.Conditions()
	if err != nil {
		return 0, err
	}
	return s.mgr.Count(ctx, conds)
}

// Search runs a semantic query over companies matching the filters.
func (s *Service) Search(ctx context.Context, query string, f domco.Filters, limit int) ([]sync.Match[*domco.Company], error) {
	conds, err := f.Conditions()
	if err != nil {
		return nil, err
	}
	return s.mgr.Search(ctx, query, conds, limit)
}

// FindSimilar returns companies nearest to the given one.
func (s *Service) FindSimilar(ctx context.Context, id string, limit int) ([]sync.Match[*domco.Company], error) {
	return s.mgr.FindSimilar(ctx, id, limit)
}

// AddEvaluation appends an evaluation to the company history. A zero
// evaluation time defaults to now.
func (s *Service) AddEvaluation(ctx context.Context, id string, ev domain.Evaluation) error {
	c, err := s.mgr.Get(ctx, id)
	if err != nil {
		return err
	}
	if ev.EvaluatedAt.IsZero() {
		ev.EvaluatedAt = s.now().UTC()
	}
	if err := ev.Validate(); err != nil {
		return err
	}
	c.Evaluations = append(c.Evaluations, ev)
	return s.mgr.Update(ctx, id, c)
}

// Evaluations returns the append-only evaluation history for the company.
func (s *Service) Evaluations(ctx context.Context, id string) ([]domain.Evaluation, error) {
	c, err := s.mgr.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return c.Evaluations, nil
}
