package primary

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/scoutdex/internal/db"
)

// IndexDefinitions returns the FT index definitions for every entity
// type stored as JSON documents. Aliases match the filter keys used by
// the domain Filters types.
func IndexDefinitions() []*db.IndexDefinition {
	return []*db.IndexDefinition{
		db.NewIndex(KeyPrefix + "company:idx").
			OnJSON().
			Prefix(KeyPrefix + "company:").
			TextAs("$.name", "name").
			TextAs("$.description", "description").
			TagAs("$.industry", "industry").
			TagAs("$.stage", "stage").
			NumericAs("$.fit_score", "fit_score").
			NumericAs("$.created_ts", "created_ts").
			MustBuild(),

		db.NewIndex(KeyPrefix + "posting:idx").
			OnJSON().
			Prefix(KeyPrefix + "posting:").
			TextAs("$.title", "title").
			TagAs("$.company_id", "company_id").
			TagAs("$.active", "active").
			NumericAs("$.evaluations[*].score", "match_score").
			NumericAs("$.created_ts", "created_ts").
			MustBuild(),

		db.NewIndex(KeyPrefix + "article:idx").
			OnJSON().
			Prefix(KeyPrefix + "article:").
			TextAs("$.title", "title").
			TagAs("$.author", "author").
			TagAs("$.source", "source").
			TagAs("$.tags[*]", "tags").
			NumericAs("$.published_ts", "published_ts").
			NumericAs("$.created_ts", "created_ts").
			MustBuild(),

		db.NewIndex(KeyPrefix + "skill:idx").
			OnJSON().
			Prefix(KeyPrefix + "skill:").
			TextAs("$.name", "name").
			TagAs("$.category", "category").
			TagAs("$.level", "level").
			NumericAs("$.created_ts", "created_ts").
			MustBuild(),
	}
}

// EnsureIndexes creates any missing document indexes. Existing indexes
// are left untouched.
func EnsureIndexes(ctx context.Context, mgr db.IndexManager) error {
	for _, def := range IndexDefinitions() {
		if err := mgr.CreateIndex(ctx, def); err != nil && !errors.Is(err, db.ErrIndexExists) {
			return fmt.Errorf("create index %s: %w", def.Name, err)
		}
	}
	return nil
}
