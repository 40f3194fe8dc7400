// Package index adapts the vector search backend. Entries are hashes
// holding the embedding vector plus the flat metadata projection, and
// FT indexing of new entries is asynchronous, so every write is
// verified before it is reported as searchable.
package index

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/kailas-cloud/scoutdex/internal/db"
	"github.com/kailas-cloud/scoutdex/internal/domain"
	"github.com/kailas-cloud/scoutdex/internal/domain/search/filter"
	"github.com/kailas-cloud/scoutdex/internal/metrics"
)

// KeyPrefix namespaces all vector index keys.
const KeyPrefix = "scoutdex:vec:"

// store is the consumer interface for vector index operations (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Del(ctx context.Context, key string) error
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	SearchCount(ctx context.Context, index string, conditions []filter.Condition) (int, error)
}

// VerifyPolicy bounds the post-write visibility check. Delays grow
// exponentially between attempts, with +/-Jitter fraction of noise.
type VerifyPolicy struct {
	Attempts     int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Jitter       float64
}

// DefaultVerifyPolicy matches the indexing lag observed in practice.
func DefaultVerifyPolicy() VerifyPolicy {
	return VerifyPolicy{
		Attempts:     5,
		InitialDelay: 2 * time.Second,
		MaxDelay:     8 * time.Second,
		Jitter:       0.2,
	}
}

// Repo is the vector index adapter for one entity type.
type Repo struct {
	store      store
	embedder   domain.Embedder
	namespace  string
	entityType string
	verify     VerifyPolicy

	sleep func(ctx context.Context, d time.Duration) error
	randf func() float64
}

// New creates a vector index repository.
func New(s store, embedder domain.Embedder, namespace, entityType string, verify VerifyPolicy) *Repo {
	return &Repo{
		store:      s,
		embedder:   embedder,
		namespace:  namespace,
		entityType: entityType,
		verify:     verify,
		sleep:      sleepCtx,
		randf:      rand.Float64,
	}
}

// Index embeds the text and upserts the vector entry, then polls until
// the entry is visible to FT.SEARCH. A write or verification failure
// wraps ErrIndexDegraded; the primary store copy is unaffected either way.
func (r *Repo) Index(ctx context.Context, id, text string, metadata map[string]string) error {
	emb, err := r.embedder.Embed(ctx, text)
	if err != nil {
		return fmt.Errorf("embed %s %s: %w: %w", r.entityType, id, domain.ErrIndexDegraded, err)
	}

	fields := make(map[string]string, len(metadata)+2)
	for k, v := range metadata {
		fields[k] = v
	}
	fields["__id"] = id
	fields["vector"] = vectorToBytes(emb.Embedding)

	if err := r.store.HSet(ctx, r.key(id), fields); err != nil {
		return fmt.Errorf("hset %s: %w: %w", r.key(id), domain.ErrIndexDegraded, err)
	}
	metrics.IndexWritesTotal.WithLabelValues(r.entityType).Inc()

	if err := r.awaitVisible(ctx, id); err != nil {
		metrics.IndexDegradedTotal.WithLabelValues(r.entityType).Inc()
		return err
	}
	return nil
}

// awaitVisible polls SearchCount for the freshly written id. Only the
// calling task waits; concurrent writes for other ids are unaffected.
func (r *Repo) awaitVisible(ctx context.Context, id string) error {
	cond, err := filter.NewMatch("__id", tagValue(id))
	if err != nil {
		return fmt.Errorf("verify %s %s: %w: %w", r.entityType, id, domain.ErrIndexDegraded, err)
	}

	delay := r.verify.InitialDelay
	var lastErr error
	for attempt := 1; attempt <= r.verify.Attempts; attempt++ {
		metrics.IndexVerifyAttemptsTotal.WithLabelValues(r.entityType).Inc()
		n, err := r.store.SearchCount(ctx, r.indexName(), []filter.Condition{cond})
		if err == nil && n > 0 {
			return nil
		}
		lastErr = err

		if attempt == r.verify.Attempts {
			break
		}
		if err := r.sleep(ctx, r.jittered(delay)); err != nil {
			return fmt.Errorf("verify %s %s: %w: %w", r.entityType, id, domain.ErrIndexDegraded, err)
		}
		delay *= 2
		if delay > r.verify.MaxDelay {
			delay = r.verify.MaxDelay
		}
	}

	if lastErr != nil {
		return fmt.Errorf("verify %s %s: %w: %w", r.entityType, id, domain.ErrIndexDegraded, lastErr)
	}
	return fmt.Errorf("verify %s %s: not visible after %d attempts: %w",
		r.entityType, id, r.verify.Attempts, domain.ErrIndexDegraded)
}

// Search embeds the query and returns the nearest entries. Conditions
// pre-filter the candidate set.
func (r *Repo) Search(ctx context.Context, query string, conditions []filter.Condition, limit int) ([]domain.SearchHit, error) {
	emb, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w: %w", domain.ErrSearchUnavailable, err)
	}
	return r.knn(ctx, emb.Embedding, conditions, limit, "")
}

// FindSimilar returns the entries nearest to an already indexed entity,
// excluding the entity itself.
func (r *Repo) FindSimilar(ctx context.Context, id string, limit int) ([]domain.SearchHit, error) {
	fields, err := r.store.HGetAll(ctx, r.key(id))
	if err != nil {
		return nil, fmt.Errorf("hgetall %s: %w: %w", r.key(id), domain.ErrSearchUnavailable, err)
	}
	blob, ok := fields["vector"]
	if !ok {
		return nil, fmt.Errorf("%s %s not indexed: %w", r.entityType, id, domain.ErrNotFound)
	}
	return r.knn(ctx, bytesToVector(blob), nil, limit, id)
}

func (r *Repo) knn(ctx context.Context, vector []float32, conditions []filter.Condition, limit int, excludeID string) ([]domain.SearchHit, error) {
	if limit <= 0 {
		limit = 10
	}
	k := limit
	if excludeID != "" {
		k++
	}

	sr, err := r.store.SearchKNN(ctx, &db.KNNQuery{
		IndexName:    r.indexName(),
		Conditions:   conditions,
		Vector:       vector,
		K:            k,
		ReturnFields: []string{"__id", "__vector_score"},
	})
	if err != nil {
		return nil, fmt.Errorf("search knn %s: %w: %w", r.entityType, domain.ErrSearchUnavailable, err)
	}
	if sr == nil || len(sr.Entries) == 0 {
		return nil, nil
	}

	hits := make([]domain.SearchHit, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		id := entry.Fields["__id"]
		if id == "" {
			id = strings.TrimPrefix(entry.Key, r.key(""))
		}
		if id == excludeID {
			continue
		}
		hits = append(hits, domain.SearchHit{ID: id, Score: entry.Score})
		if len(hits) == limit {
			break
		}
	}
	return hits, nil
}

// Delete removes the vector entry. Best effort: a failure wraps
// ErrIndexDegraded for the caller to log.
func (r *Repo) Delete(ctx context.Context, id string) error {
	if err := r.store.Del(ctx, r.key(id)); err != nil {
		return fmt.Errorf("del %s: %w: %w", r.key(id), domain.ErrIndexDegraded, err)
	}
	return nil
}

func (r *Repo) jittered(d time.Duration) time.Duration {
	if r.verify.Jitter <= 0 {
		return d
	}
	factor := 1 + r.verify.Jitter*(2*r.randf()-1)
	return time.Duration(float64(d) * factor)
}

func (r *Repo) key(id string) string {
	return KeyPrefix + r.namespace + ":" + r.entityType + ":" + id
}

func (r *Repo) indexName() string {
	return KeyPrefix + r.namespace + ":" + r.entityType + ":idx"
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// tagValue strips characters that cannot appear in a tag query term.
// Ids are uuids in practice, so this is a no-op outside of tests.
func tagValue(id string) string {
	return strings.Map(func(r rune) rune {
		if r == '{' || r == '}' {
			return -1
		}
		return r
	}, id)
}

func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}

func bytesToVector(s string) []float32 {
	b := []byte(s)
	if len(b)%4 != 0 {
		return nil
	}
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v
}
