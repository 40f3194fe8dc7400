package domain

import (
	"fmt"
	"time"
)

// Evaluation is an append-only assessment record attached to an entity.
// History is never truncated or overwritten.
type Evaluation struct {
	Score         float64   `json:"score"`
	MatchedSkills []string  `json:"matched_skills,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	EvaluatedAt   time.Time `json:"evaluated_at"`
}

// Validate checks the evaluation record before it touches any backend.
func (e Evaluation) Validate() error {
	if e.Score < 0 || e.Score > 1 {
		return fmt.Errorf("evaluation score %g out of range [0,1]: %w", e.Score, ErrValidation)
	}
	return nil
}
