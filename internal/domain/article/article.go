// Package article defines the news article entity and its domain rules.
package article

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kailas-cloud/scoutdex/internal/domain"
	"github.com/kailas-cloud/scoutdex/internal/domain/search/filter"
)

// Article is a news or blog article tracked in the knowledge store.
// Tags are kept sorted and unique by the article facade.
type Article struct {
	domain.Meta

	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Author      string    `json:"author"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"published_at"`
	// PublishedTS mirrors PublishedAt as unix seconds for numeric range
	// filters; maintained by the article facade on every write.
	PublishedTS int64    `json:"published_ts"`
	Tags        []string `json:"tags,omitempty"`
	URL         string   `json:"url,omitempty"`
}

// Validate checks the article before any backend write.
func (a *Article) Validate() error {
	if strings.TrimSpace(a.Title) == "" {
		return fmt.Errorf("article title is required: %w", domain.ErrValidation)
	}
	if strings.TrimSpace(a.Content) == "" {
		return fmt.Errorf("article content is required: %w", domain.ErrValidation)
	}
	if strings.TrimSpace(a.Author) == "" {
		return fmt.Errorf("article author is required: %w", domain.ErrValidation)
	}
	if strings.TrimSpace(a.Source) == "" {
		return fmt.Errorf("article source is required: %w", domain.ErrValidation)
	}
	if a.PublishedAt.IsZero() {
		return fmt.Errorf("article published time is required: %w", domain.ErrValidation)
	}
	return nil
}

// SearchTitle returns the short text scored as the title by the
// lexical fallback.
func (a *Article) SearchTitle() string { return a.Title }

// SearchText returns the text embedded for similarity search.
func (a *Article) SearchText() string {
	return a.Title + "\n\n" + a.Content
}

// SearchMetadata returns the flat filterable projection for the search index.
func (a *Article) SearchMetadata() map[string]string {
	md := map[string]string{
		"entity_type":  "article",
		"title":        a.Title,
		"author":       a.Author,
		"source":       a.Source,
		"published_ts": strconv.FormatInt(a.PublishedAt.Unix(), 10),
		"created_ts":   strconv.FormatInt(a.CreatedTS, 10),
	}
	if len(a.Tags) > 0 {
		md["tags"] = strings.Join(a.Tags, ",")
	}
	return md
}

// Filters narrows article listings and searches. Zero-valued fields are
// not applied.
type Filters struct {
	Authors         []string
	Sources         []string
	Tags            []string
	PublishedAfter  *time.Time
	PublishedBefore *time.Time
}

// Conditions renders the filters as index conditions combined with AND.
func (f Filters) Conditions() ([]filter.Condition, error) {
	var conds []filter.Condition
	for _, m := range []struct {
		key    string
		values []string
	}{
		{"author", f.Authors},
		{"source", f.Sources},
		{"tags", f.Tags},
	} {
		if len(m.values) == 0 {
			continue
		}
		c, err := filter.NewMatch(m.key, m.values...)
		if err != nil {
			return nil, err
		}
		conds = append(conds, c)
	}
	if f.PublishedAfter != nil || f.PublishedBefore != nil {
		var gte, lte *float64
		if f.PublishedAfter != nil {
			v := float64(f.PublishedAfter.Unix())
			gte = &v
		}
		if f.PublishedBefore != nil {
			v := float64(f.PublishedBefore.Unix())
			lte = &v
		}
		r, err := filter.NewRangeBounds(nil, gte, nil, lte)
		if err != nil {
			return nil, err
		}
		c, err := filter.NewRange("published_ts", r)
		if err != nil {
			return nil, err
		}
		conds = append(conds, c)
	}
	return conds, filter.Validate(conds)
}
