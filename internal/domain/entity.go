package domain

import "time"

// SchemaVersion is the current stored-document schema version.
// Fields are additive-only; older documents are migrated at read time.
const SchemaVersion = 2

// Meta carries the identity and lifecycle fields shared by all stored entities.
// The ID is assigned by the primary store on create and never reused.
type Meta struct {
	ID        string    `json:"id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	CreatedTS int64     `json:"created_ts"` // unix seconds, for numeric range filters
	Schema    int       `json:"schema_version"`
}

// EntityID returns the primary store identifier.
func (m *Meta) EntityID() string { return m.ID }

// SetEntityID sets the primary store identifier.
func (m *Meta) SetEntityID(id string) { m.ID = id }

// StampCreate sets creation and update timestamps and the current schema version.
func (m *Meta) StampCreate(now time.Time) {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.CreatedTS = m.CreatedAt.Unix()
	m.UpdatedAt = now
	m.Schema = SchemaVersion
}

// StampUpdate advances the update timestamp. It always moves forward,
// even for content-identical updates.
func (m *Meta) StampUpdate(now time.Time) {
	m.UpdatedAt = now
	if m.CreatedTS == 0 && !m.CreatedAt.IsZero() {
		m.CreatedTS = m.CreatedAt.Unix()
	}
	m.Schema = SchemaVersion
}

// SetCreated restores creation fields from a stored document, so an
// update cannot shift the original creation time.
func (m *Meta) SetCreated(t time.Time) {
	m.CreatedAt = t
	if !t.IsZero() {
		m.CreatedTS = t.Unix()
	}
}

// Entity is the contract every stored type satisfies.
//
// SearchText must be non-empty for a valid entity; SearchMetadata must be a
// pure, deterministic flat projection of entity state (used only for
// index-side filtering, regenerated fully on every write). SearchTitle is
// the short display text scored separately by the lexical fallback.
type Entity interface {
	EntityID() string
	SetEntityID(id string)
	StampCreate(now time.Time)
	StampUpdate(now time.Time)
	SetCreated(t time.Time)
	Validate() error
	SearchTitle() string
	SearchText() string
	SearchMetadata() map[string]string
}

// Normalizer is implemented by entities that migrate legacy stored
// documents to the current schema. Called by the primary store on read.
type Normalizer interface {
	Normalize()
}
