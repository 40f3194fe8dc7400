package db

import "github.com/kailas-cloud/scoutdex/internal/domain/search/filter"

// KNNQuery is the input for vector similarity search. Conditions are
// combined with AND and applied as a pre-filter before the KNN step.
type KNNQuery struct {
	IndexName    string
	Conditions   []filter.Condition
	Vector       []float32
	K            int
	ReturnFields []string
}

// ListQuery is the input for a filtered, paginated listing over an FT
// index. With no conditions it matches every indexed document.
type ListQuery struct {
	IndexName    string
	Conditions   []filter.Condition
	Offset       int
	Limit        int
	ReturnFields []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search. For KNN queries
// Score is a normalized similarity in [0,1], higher is better.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}
