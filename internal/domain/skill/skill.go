// Package skill defines the capability record entity used for
// requirement matching.
package skill

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kailas-cloud/scoutdex/internal/domain"
	"github.com/kailas-cloud/scoutdex/internal/domain/search/filter"
)

// Level is a proficiency level. Levels carry a weight used when scoring
// a skill against a posting requirement.
type Level string

const (
	LevelExpert       Level = "Expert"
	LevelAdvanced     Level = "Advanced"
	LevelIntermediate Level = "Intermediate"
	LevelBasic        Level = "Basic"
)

var levelWeights = map[Level]float64{
	LevelExpert:       1.0,
	LevelAdvanced:     0.8,
	LevelIntermediate: 0.6,
	LevelBasic:        0.4,
}

// Weight returns the scoring weight for the level, or 0 for an unknown
// level.
func (l Level) Weight() float64 { return levelWeights[l] }

// Valid reports whether the level is a known value.
func (l Level) Valid() bool {
	_, ok := levelWeights[l]
	return ok
}

// Skill is a capability record with a proficiency level and free-form
// experience notes.
type Skill struct {
	domain.Meta

	Name       string `json:"name"`
	Category   string `json:"category"`
	Level      Level  `json:"level"`
	Experience string `json:"experience,omitempty"`
}

// Validate checks the skill before any backend write.
func (s *Skill) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("skill name is required: %w", domain.ErrValidation)
	}
	if strings.TrimSpace(s.Category) == "" {
		return fmt.Errorf("skill category is required: %w", domain.ErrValidation)
	}
	if !s.Level.Valid() {
		return fmt.Errorf("unknown skill level %q: %w", s.Level, domain.ErrValidation)
	}
	return nil
}

// SearchTitle returns the short text scored as the title by the
// lexical fallback.
func (s *Skill) SearchTitle() string { return s.Name }

// SearchText returns the text embedded for similarity search.
func (s *Skill) SearchText() string {
	if s.Experience == "" {
		return s.Name
	}
	return s.Name + " " + s.Experience
}

// SearchMetadata returns the flat filterable projection for the search index.
func (s *Skill) SearchMetadata() map[string]string {
	return map[string]string{
		"entity_type": "skill",
		"name":        s.Name,
		"category":    s.Category,
		"level":       string(s.Level),
		"weight":      strconv.FormatFloat(s.Level.Weight(), 'f', -1, 64),
		"created_ts":  strconv.FormatInt(s.CreatedTS, 10),
	}
}

// Filters narrows skill listings and searches. Zero-valued fields are
// not applied.
type Filters struct {
	Categories []string
	Levels     []Level
	MinWeight  *float64
}

// Conditions renders the filters as index conditions combined with AND.
func (f Filters) Conditions() ([]filter.Condition, error) {
	var conds []filter.Condition
	if len(f.Categories) > 0 {
		c, err := filter.NewMatch("category", f.Categories...)
		if err != nil {
			return nil, err
		}
		conds = append(conds, c)
	}
	if len(f.Levels) > 0 {
		vals := make([]string, len(f.Levels))
		for i, l := range f.Levels {
			if !l.Valid() {
				return nil, fmt.Errorf("unknown skill level %q: %w", l, domain.ErrValidation)
			}
			vals[i] = string(l)
		}
		c, err := filter.NewMatch("level", vals...)
		if err != nil {
			return nil, err
		}
		conds = append(conds, c)
	}
	if f.MinWeight != nil {
		c, err := filter.NewRange("weight", filter.GTE(*f.MinWeight))
		if err != nil {
			return nil, err
		}
		conds = append(conds, c)
	}
	return conds, filter.Validate(conds)
}
