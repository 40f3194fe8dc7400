package index

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/scoutdex/internal/db"
)

// HNSW construction parameters. Collections stay well under a million
// entries, so the defaults favor recall over build speed.
const (
	hnswM           = 16
	hnswEFConstruct = 200
)

// IndexDefinitions returns the FT vector index definitions for every
// entity type. Metadata aliases match the keys emitted by each entity's
// SearchMetadata.
func IndexDefinitions(namespace string, dim int) []*db.IndexDefinition {
	prefix := func(entityType string) string {
		return KeyPrefix + namespace + ":" + entityType + ":"
	}
	name := func(entityType string) string {
		return prefix(entityType) + "idx"
	}

	return []*db.IndexDefinition{
		db.NewIndex(name("company")).
			OnHash().
			Prefix(prefix("company")).
			Tag("__id").
			Tag("entity_type").
			Tag("industry").
			Tag("stage").
			Numeric("fit_score").
			Numeric("created_ts").
			VectorHNSW("vector", dim, db.DistanceCosine, hnswM, hnswEFConstruct).
			MustBuild(),

		db.NewIndex(name("posting")).
			OnHash().
			Prefix(prefix("posting")).
			Tag("__id").
			Tag("entity_type").
			Tag("company_id").
			Tag("active").
			Numeric("match_score").
			Numeric("created_ts").
			VectorHNSW("vector", dim, db.DistanceCosine, hnswM, hnswEFConstruct).
			MustBuild(),

		db.NewIndex(name("article")).
			OnHash().
			Prefix(prefix("article")).
			Tag("__id").
			Tag("entity_type").
			Tag("author").
			Tag("source").
			TagWithSeparator("tags", ",").
			Numeric("published_ts").
			Numeric("created_ts").
			VectorHNSW("vector", dim, db.DistanceCosine, hnswM, hnswEFConstruct).
			MustBuild(),

		db.NewIndex(name("skill")).
			OnHash().
			Prefix(prefix("skill")).
			Tag("__id").
			Tag("entity_type").
			Tag("category").
			Tag("level").
			Numeric("weight").
			Numeric("created_ts").
			VectorHNSW("vector", dim, db.DistanceCosine, hnswM, hnswEFConstruct).
			MustBuild(),
	}
}

// EnsureIndexes creates any missing vector indexes. Existing indexes
// are left untouched; a dimension change requires dropping them first.
func EnsureIndexes(ctx context.Context, mgr db.IndexManager, namespace string, dim int) error {
	for _, def := range IndexDefinitions(namespace, dim) {
		if err := mgr.CreateIndex(ctx, def); err != nil && !errors.Is(err, db.ErrIndexExists) {
			return fmt.Errorf("create index %s: %w", def.Name, err)
		}
	}
	return nil
}
