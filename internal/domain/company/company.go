// Package company defines the organization entity and its domain rules.
package company

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/kailas-cloud/scoutdex/internal/domain"
	"github.com/kailas-cloud/scoutdex/internal/domain/search/filter"
)

// Stage is a company maturity stage. Stages are ordered and transitions
// must be monotonic: a company never moves to an earlier stage.
type Stage string

const (
	StageIdea    Stage = "idea"
	StagePreSeed Stage = "pre_seed"
	StageMVP     Stage = "mvp"
	StageSeed    Stage = "seed"
	StageEarly   Stage = "early"
	StageSeriesA Stage = "series_a"
	StageLater   Stage = "later"
)

var stageOrder = map[Stage]int{
	StageIdea:    0,
	StagePreSeed: 1,
	StageMVP:     2,
	StageSeed:    3,
	StageEarly:   4,
	StageSeriesA: 5,
	StageLater:   6,
}

// Ordinal returns the stage position in the maturity ordering, or -1 for
// an unknown stage.
func (s Stage) Ordinal() int {
	ord, ok := stageOrder[s]
	if !ok {
		return -1
	}
	return ord
}

// Valid reports whether the stage is a known value.
func (s Stage) Valid() bool { return s.Ordinal() >= 0 }

// CanTransitionTo reports whether moving to next keeps the ordering
// monotonic. Staying on the same stage is allowed.
func (s Stage) CanTransitionTo(next Stage) bool {
	from, to := s.Ordinal(), next.Ordinal()
	return from >= 0 && to >= 0 && to >= from
}

// Industry is a company business category.
type Industry string

const (
	IndustryEducation   Industry = "education"
	IndustryAgency      Industry = "agency"
	IndustrySaaS        Industry = "saas"
	IndustryMarketplace Industry = "marketplace"
	IndustryContent     Industry = "content"
	IndustryD2C         Industry = "d2c"
	IndustryNonDigital  Industry = "non_digital"
)

var industries = map[Industry]struct{}{
	IndustryEducation:   {},
	IndustryAgency:      {},
	IndustrySaaS:        {},
	IndustryMarketplace: {},
	IndustryContent:     {},
	IndustryD2C:         {},
	IndustryNonDigital:  {},
}

// Valid reports whether the industry is a known value.
func (i Industry) Valid() bool {
	_, ok := industries[i]
	return ok
}

// Company is an organization tracked in the knowledge store.
type Company struct {
	domain.Meta

	Name        string              `json:"name"`
	Description string              `json:"description"`
	Industry    Industry            `json:"industry"`
	Stage       Stage               `json:"stage"`
	Website     string              `json:"website,omitempty"`
	FitScore    float64             `json:"fit_score"`
	Evaluations []domain.Evaluation `json:"evaluations,omitempty"`
}

// Validate checks the company before any backend write.
func (c *Company) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("company name is required: %w", domain.ErrValidation)
	}
	if strings.TrimSpace(c.Description) == "" {
		return fmt.Errorf("company description is required: %w", domain.ErrValidation)
	}
	if !c.Industry.Valid() {
		return fmt.Errorf("unknown industry %q: %w", c.Industry, domain.ErrValidation)
	}
	if !c.Stage.Valid() {
		return fmt.Errorf("unknown stage %q: %w", c.Stage, domain.ErrValidation)
	}
	if c.Website != "" {
		u, err := url.Parse(c.Website)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("website %q is not an absolute URL: %w", c.Website, domain.ErrValidation)
		}
	}
	if c.FitScore < 0 || c.FitScore > 1 {
		return fmt.Errorf("fit score %g out of range [0,1]: %w", c.FitScore, domain.ErrValidation)
	}
	for i, ev := range c.Evaluations {
		if err := ev.Validate(); err != nil {
			return fmt.Errorf("evaluation %d: %w", i, err)
		}
	}
	return nil
}

// SearchTitle returns the short text scored as the title by the
// lexical fallback.
func (c *Company) SearchTitle() string { return c.Name }

// SearchText returns the text embedded for similarity search.
func (c *Company) SearchText() string {
	return c.Name + " " + c.Description
}

// SearchMetadata returns the flat filterable projection for the search index.
func (c *Company) SearchMetadata() map[string]string {
	return map[string]string{
		"entity_type": "company",
		"name":        c.Name,
		"industry":    string(c.Industry),
		"stage":       string(c.Stage),
		"fit_score":   strconv.FormatFloat(c.FitScore, 'f', -1, 64),
		"created_ts":  strconv.FormatInt(c.CreatedTS, 10),
	}
}

// Filters narrows company listings and searches. Zero-valued fields are
// not applied.
type Filters struct {
	Industries  []Industry
	Stages      []Stage
	MinFitScore *float64
	DateFrom    *time.Time
	DateTo      *time.Time
}

// Conditions renders the filters as index conditions combined with AND.
func (f Filters) Conditions() ([]filter.Condition, error) {
	var conds []filter.Condition
	if len(f.Industries) > 0 {
		vals := make([]string, len(f.Industries))
		for i, ind := range f.Industries {
			if !ind.Valid() {
				return nil, fmt.Errorf("unknown industry %q: %w", ind, domain.ErrValidation)
			}
			vals[i] = string(ind)
		}
		c, err := filter.NewMatch("industry", vals...)
		if err != nil {
			return nil, err
		}
		conds = append(conds, c)
	}
	if len(f.Stages) > 0 {
		vals := make([]string, len(f.Stages))
		for i, st := range f.Stages {
			if !st.Valid() {
				return nil, fmt.Errorf("unknown stage %q: %w", st, domain.ErrValidation)
			}
			vals[i] = string(st)
		}
		c, err := filter.NewMatch("stage", vals...)
		if err != nil {
			return nil, err
		}
		conds = append(conds, c)
	}
	if f.MinFitScore != nil {
		c, err := filter.NewRange("fit_score", filter.GTE(*f.MinFitScore))
		if err != nil {
			return nil, err
		}
		conds = append(conds, c)
	}
	if f.DateFrom != nil || f.DateTo != nil {
		var gte, lte *float64
		if f.DateFrom != nil {
			v := float64(f.DateFrom.Unix())
			gte = &v
		}
		if f.DateTo != nil {
			v := float64(f.DateTo.Unix())
			lte = &v
		}
		r, err := filter.NewRangeBounds(nil, gte, nil, lte)
		if err != nil {
			return nil, err
		}
		c, err := filter.NewRange("created_ts", r)
		if err != nil {
			return nil, err
		}
		conds = append(conds, c)
	}
	return conds, filter.Validate(conds)
}
