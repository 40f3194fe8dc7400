package domain

import "errors"

var (
	// ErrValidation signals an entity or domain rule rejected before any backend write.
	ErrValidation = errors.New("validation rejected")
	// ErrNotFound signals a missing entity.
	ErrNotFound = errors.New("not found")
	// ErrStoreUnavailable signals a primary store connection or query failure. Always fatal.
	ErrStoreUnavailable = errors.New("primary store unavailable")
	// ErrIndexDegraded signals a search index write or verification failure after
	// a successful primary store write. Logged, never surfaced as an operation failure.
	ErrIndexDegraded = errors.New("search index degraded")
	// ErrSearchUnavailable signals a search index query failure on a read path.
	ErrSearchUnavailable = errors.New("search index unavailable")
	// ErrEmbeddingProvider signals an embedding provider failure.
	ErrEmbeddingProvider = errors.New("embedding provider error")
)
