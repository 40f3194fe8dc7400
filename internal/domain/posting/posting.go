// Package posting defines the job posting entity and its domain rules.
package posting

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kailas-cloud/scoutdex/internal/domain"
	"github.com/kailas-cloud/scoutdex/internal/domain/search/filter"
)

// Posting is a job advertisement attached to a company.
//
// Evaluation history is append-only. The flat match_score/skills_match
// fields existed in schema version 1 and are folded into Evaluations at
// read time; they are kept only for decoding legacy documents.
type Posting struct {
	domain.Meta

	CompanyID    string   `json:"company_id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements,omitempty"`
	SalaryMin    int      `json:"salary_min,omitempty"`
	SalaryMax    int      `json:"salary_max,omitempty"`

	Active     bool       `json:"active"`
	ArchivedAt *time.Time `json:"archived_at,omitempty"`

	Evaluations []domain.Evaluation `json:"evaluations,omitempty"`

	// Legacy v1 fields, read-only.
	LegacyMatchScore  *float64   `json:"match_score,omitempty"`
	LegacySkillsMatch []string   `json:"skills_match,omitempty"`
	LegacyNotes       string     `json:"evaluation_notes,omitempty"`
	LegacyEvaluatedAt *time.Time `json:"evaluated_at,omitempty"`
}

// Validate checks the posting before any backend write.
func (p *Posting) Validate() error {
	if strings.TrimSpace(p.CompanyID) == "" {
		return fmt.Errorf("posting company id is required: %w", domain.ErrValidation)
	}
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("posting title is required: %w", domain.ErrValidation)
	}
	if strings.TrimSpace(p.Description) == "" {
		return fmt.Errorf("posting description is required: %w", domain.ErrValidation)
	}
	if p.SalaryMin < 0 || p.SalaryMax < 0 {
		return fmt.Errorf("salary must be non-negative: %w", domain.ErrValidation)
	}
	if p.SalaryMax > 0 && p.SalaryMin > p.SalaryMax {
		return fmt.Errorf("minimum salary %d exceeds maximum %d: %w", p.SalaryMin, p.SalaryMax, domain.ErrValidation)
	}
	for i, ev := range p.Evaluations {
		if err := ev.Validate(); err != nil {
			return fmt.Errorf("evaluation %d: %w", i, err)
		}
	}
	return nil
}

// Normalize migrates a legacy v1 document in place: the flat evaluation
// fields become the first entry of the evaluation history. Idempotent.
func (p *Posting) Normalize() {
	if p.Schema >= domain.SchemaVersion {
		return
	}
	if p.LegacyMatchScore != nil {
		ev := domain.Evaluation{
			Score:         *p.LegacyMatchScore,
			MatchedSkills: p.LegacySkillsMatch,
			Notes:         p.LegacyNotes,
		}
		if p.LegacyEvaluatedAt != nil {
			ev.EvaluatedAt = *p.LegacyEvaluatedAt
		}
		p.Evaluations = append([]domain.Evaluation{ev}, p.Evaluations...)
	}
	p.LegacyMatchScore = nil
	p.LegacySkillsMatch = nil
	p.LegacyNotes = ""
	p.LegacyEvaluatedAt = nil
	p.Schema = domain.SchemaVersion
}

// LatestScore returns the most recent evaluation score, or 0 when the
// posting has never been evaluated.
func (p *Posting) LatestScore() float64 {
	if len(p.Evaluations) == 0 {
		return 0
	}
	return p.Evaluations[len(p.Evaluations)-1].Score
}

// SearchTitle returns the short text scored as the title by the
// lexical fallback.
func (p *Posting) SearchTitle() string { return p.Title }

// SearchText returns the text embedded for similarity search.
func (p *Posting) SearchText() string {
	parts := []string{p.Title, p.Description}
	if len(p.Requirements) > 0 {
		parts = append(parts, strings.Join(p.Requirements, " "))
	}
	return strings.Join(parts, " ")
}

// SearchMetadata returns the flat filterable projection for the search index.
func (p *Posting) SearchMetadata() map[string]string {
	return map[string]string{
		"entity_type": "posting",
		"company_id":  p.CompanyID,
		"title":       p.Title,
		"active":      strconv.FormatBool(p.Active),
		"match_score": strconv.FormatFloat(p.LatestScore(), 'f', -1, 64),
		"created_ts":  strconv.FormatInt(p.CreatedTS, 10),
	}
}

// Filters narrows posting listings and searches. Zero-valued fields are
// not applied.
type Filters struct {
	CompanyID     string
	ActiveOnly    bool
	MinMatchScore *float64
}

// Conditions renders the filters as index conditions combined with AND.
func (f Filters) Conditions() ([]filter.Condition, error) {
	var conds []filter.Condition
	if f.CompanyID != "" {
		c, err := filter.NewMatch("company_id", f.CompanyID)
		if err != nil {
			return nil, err
		}
		conds = append(conds, c)
	}
	if f.ActiveOnly {
		c, err := filter.NewMatch("active", "true")
		if err != nil {
			return nil, err
		}
		conds = append(conds, c)
	}
	if f.MinMatchScore != nil {
		c, err := filter.NewRange("match_score", filter.GTE(*f.MinMatchScore))
		if err != nil {
			return nil, err
		}
		conds = append(conds, c)
	}
	return conds, filter.Validate(conds)
}
