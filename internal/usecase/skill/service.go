// Package skill exposes capability record operations on top of the
// synchronization manager, including requirement matching against the
// whole skill set.
package skill

import (
	"context"
	"strings"

	"github.com/kailas-cloud/scoutdex/internal/domain/search/filter"
	domskill "github.com/kailas-cloud/scoutdex/internal/domain/skill"
	"github.com/kailas-cloud/scoutdex/internal/lexical"
	"github.com/kailas-cloud/scoutdex/internal/usecase/sync"
)

// matchPoolLimit caps how many skills are loaded for requirement
// matching. Skill sets are small; this is a safety bound, not paging.
const matchPoolLimit = 500

// Service handles skill CRUD, search and requirement matching.
type Service struct {
	mgr Manager
}

// New creates a skill service.
func New(mgr Manager) *Service {
	return &Service{mgr: mgr}
}

// Create stores and indexes a new skill.
func (s *Service) Create(ctx context.Context, sk *domskill.Skill) (string, error) {
	return s.mgr.Create(ctx, sk)
}

// Get returns the skill by id.
func (s *Service) Get(ctx context.Context, id string) (*domskill.Skill, error) {
	return s.mgr.Get(ctx, id)
}

// Update overwrites the skill.
func (s *Service) Update(ctx context.Context, id string, sk *domskill.Skill) error {
	return s.mgr.Update(ctx, id, sk)
}

// Delete removes the skill.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.mgr.Delete(ctx, id)
}

// List returns skills matching the filters.
func (s *Service) List(ctx context.Context, f domskill.Filters, offset, limit int) ([]*domskill.Skill, error) {
	conds, err := f.Conditions()
	if err != nil {
		return nil, err
	}
	return s.mgr.List(ctx, conds, offset, limit)
}

// Count returns the number of skills matching the filters.
func (s *Service) Count(ctx context.Context, f domskill.Filters) (int, error) {
	conds, err := f.Conditions()
	if err != nil {
		return 0, err
	}
	return s.mgr.Count(ctx, conds)
}

// ByCategory returns skills in one category.
func (s *Service) ByCategory(ctx context.Context, category string, offset, limit int) ([]*domskill.Skill, error) {
	return s.List(ctx, domskill.Filters{Categories: []string{category}}, offset, limit)
}

// ByLevel returns skills at the given proficiency levels.
func (s *Service) ByLevel(ctx context.Context, levels []domskill.Level, offset, limit int) ([]*domskill.Skill, error) {
	return s.List(ctx, domskill.Filters{Levels: levels}, offset, limit)
}

// Top returns the strongest skills, highest proficiency level first.
func (s *Service) Top(ctx context.Context, limit int) ([]*domskill.Skill, error) {
	levels := []domskill.Level{
		domskill.LevelExpert,
		domskill.LevelAdvanced,
		domskill.LevelIntermediate,
		domskill.LevelBasic,
	}
	out := make([]*domskill.Skill, 0, limit)
	for _, lvl := range levels {
		if len(out) >= limit {
			break
		}
		batch, err := s.ByLevel(ctx, []domskill.Level{lvl}, 0, limit-len(out))
		if err != nil {
			return nil, err
		}
		out = append(out, batch...)
	}
	return out, nil
}

// SearchByName returns skills whose name contains the fragment,
// case-insensitive.
func (s *Service) SearchByName(ctx context.Context, name string) ([]*domskill.Skill, error) {
	frag := strings.ToLower(strings.TrimSpace(name))
	if frag == "" {
		return nil, nil
	}
	skills, err := s.mgr.List(ctx, []filter.Condition(nil), 0, matchPoolLimit)
	if err != nil {
		return nil, err
	}
	var out []*domskill.Skill
	for _, sk := range skills {
		if strings.Contains(strings.ToLower(sk.Name), frag) {
			out = append(out, sk)
		}
	}
	return out, nil
}

// Upsert creates the skill, or overwrites the stored skill carrying the
// same name (case-insensitive). Returns the entity id either way.
func (s *Service) Upsert(ctx context.Context, sk *domskill.Skill) (string, error) {
	skills, err := s.mgr.List(ctx, []filter.Condition(nil), 0, matchPoolLimit)
	if err != nil {
		return "", err
	}
	for _, existing := range skills {
		if strings.EqualFold(existing.Name, sk.Name) {
			if err := s.mgr.Update(ctx, existing.ID, sk); err != nil {
				return "", err
			}
			return existing.ID, nil
		}
	}
	return s.mgr.Create(ctx, sk)
}

// Search runs a semantic query over skills matching the filters.
func (s *Service) Search(ctx context.Context, query string, f domskill.Filters, limit int) ([]sync.Match[*domskill.Skill], error) {
	conds, err := f.Conditions()
	if err != nil {
		return nil, err
	}
	return s.mgr.Search(ctx, query, conds, limit)
}

// FindSimilar returns skills nearest to the given one.
func (s *Service) FindSimilar(ctx context.Context, id string, limit int) ([]sync.Match[*domskill.Skill], error) {
	return s.mgr.FindSimilar(ctx, id, limit)
}

// MatchRequirements classifies each posting requirement against the
// stored skill set, weighting candidates by proficiency level.
func (s *Service) MatchRequirements(ctx context.Context, requirements []string) (lexical.Report, error) {
	if len(requirements) == 0 {
		return lexical.Report{}, nil
	}
	skills, err := s.mgr.List(ctx, []filter.Condition(nil), 0, matchPoolLimit)
	if err != nil {
		return lexical.Report{}, err
	}

	candidates := make([]lexical.Candidate, 0, len(skills))
	for _, sk := range skills {
		candidates = append(candidates, lexical.Candidate{
			Name:   sk.Name,
			Body:   sk.Experience,
			Weight: sk.Level.Weight(),
		})
	}
	return lexical.MatchRequirements(requirements, candidates), nil
}
