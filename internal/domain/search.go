package domain

// SearchHit is a scored reference to an entity, produced by the search
// index. Score is a normalized similarity in [0,1], higher is better.
type SearchHit struct {
	ID    string
	Score float64
}
