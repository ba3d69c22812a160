package graph

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyTypeID is returned by [NewVertexType] when the type ID is
	// empty. Vertex types must have non-empty identifiers.
	ErrEmptyTypeID = errors.New("vertex type ID must not be empty")

	// ErrEmptyEntity is returned by [VertexType.Add] when the entity value
	// is empty. Entity values must be non-empty strings.
	ErrEmptyEntity = errors.New("entity value must not be empty")

	// ErrUnknownEntity is returned by [NewEntity] when the value is not
	// present in the owning vertex type's entity set.
	ErrUnknownEntity = errors.New("entity value not present in vertex type")
)

// Entity is a typed value belonging to exactly one [VertexType].
// It is an immutable value type; identity is the (owning type ID, value)
// pair, exposed as Key. Two entities with the same key are the same entity
// regardless of how they were obtained.
//
// The zero value is not a valid entity - obtain entities from
// [VertexType.Add], [VertexType.Lookup], or [NewEntity].
type Entity struct {
	Type  *VertexType // Owning vertex type
	Value string      // Entity value, unique within Type
}

// NewEntity returns the entity bound to value in vt.
// Returns ErrUnknownEntity if the value has not been added to vt, so an
// entity can never claim membership in a type that does not contain it.
func NewEntity(vt *VertexType, value string) (Entity, error) {
	if vt == nil || !vt.Has(value) {
		return Entity{}, fmt.Errorf("%w: %q", ErrUnknownEntity, value)
	}
	return Entity{Type: vt, Value: value}, nil
}

// Key returns the entity's identity key: "<value>.<typeID>".
// Keys are stable and are what the edge index and all equality decisions
// are built on.
func (e Entity) Key() string {
	return e.Value + "." + e.Type.ID()
}

// IsZero reports whether e is the zero entity (no owning type, no value).
func (e Entity) IsZero() bool {
	return e.Type == nil && e.Value == ""
}

// Same reports whether e and other are the same entity, i.e. their
// identity keys match.
func (e Entity) Same(other Entity) bool {
	if e.IsZero() || other.IsZero() {
		return e.IsZero() && other.IsZero()
	}
	return e.Key() == other.Key()
}

// String returns the entity value, matching how entities are displayed in
// lists and exports.
func (e Entity) String() string { return e.Value }

// VertexType is a named, deduplicated collection of entities.
// Values are kept in insertion order and are unique within the type:
// re-adding an existing value yields a fresh Entity over the same value
// rather than a duplicate. Entities are never removed.
//
// At most one vertex type in a graph is conventionally flagged central;
// the flag is an annotation for callers (central-biased linking, exports)
// and is not enforced here.
//
// The zero value is not usable - use [NewVertexType].
type VertexType struct {
	id      string
	name    string
	central bool
	order   []string          // insertion order of values
	table   map[string]Entity // value -> entity
}

// NewVertexType creates an empty vertex type with the given ID and display
// name. If name is empty, the ID doubles as the name. Returns
// ErrEmptyTypeID if id is empty; callers without a natural ID should draw
// one from an [IDFunc].
func NewVertexType(id, name string, central bool) (*VertexType, error) {
	if id == "" {
		return nil, ErrEmptyTypeID
	}
	if name == "" {
		name = id
	}
	return &VertexType{
		id:      id,
		name:    name,
		central: central,
		table:   make(map[string]Entity),
	}, nil
}

// ID returns the type's unique identifier.
func (t *VertexType) ID() string { return t.id }

// Name returns the type's display name.
func (t *VertexType) Name() string { return t.name }

// Central reports whether this type is flagged as the central vertex type.
func (t *VertexType) Central() bool { return t.central }

// SetCentral sets the central flag. Loaders use this for a final sweep
// once the central type is known, since it may be discovered after types
// have already been created.
func (t *VertexType) SetCentral(central bool) { t.central = central }

// Add records value in the type's entity set and returns its entity.
// Adding an existing value is idempotent with respect to the set: no
// duplicate value is stored, but a fresh Entity is returned and mapped
// over the value. Returns ErrEmptyEntity for an empty value.
func (t *VertexType) Add(value string) (Entity, error) {
	if value == "" {
		return Entity{}, fmt.Errorf("%w (type %s)", ErrEmptyEntity, t.id)
	}
	if _, ok := t.table[value]; !ok {
		t.order = append(t.order, value)
	}
	e := Entity{Type: t, Value: value}
	t.table[value] = e
	return e, nil
}

// Lookup returns the entity for value and true, or the zero entity and
// false if the value has not been added.
func (t *VertexType) Lookup(value string) (Entity, bool) {
	e, ok := t.table[value]
	return e, ok
}

// Has reports whether value is present in the type's entity set.
func (t *VertexType) Has(value string) bool {
	_, ok := t.table[value]
	return ok
}

// Entities returns all entities in insertion order.
// The returned slice is freshly allocated and safe to modify.
func (t *VertexType) Entities() []Entity {
	out := make([]Entity, len(t.order))
	for i, v := range t.order {
		out[i] = t.table[v]
	}
	return out
}

// Values returns all entity values in insertion order.
func (t *VertexType) Values() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Len returns the number of distinct entity values in the type.
func (t *VertexType) Len() int { return len(t.table) }

// String returns "Name (id)".
func (t *VertexType) String() string {
	return fmt.Sprintf("%s (%s)", t.name, t.id)
}

// sameType reports whether a and b identify the same vertex type.
// Types are compared by ID, not pointer, so reloaded graphs behave the
// same as freshly built ones.
func sameType(a, b *VertexType) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.ID() == b.ID()
}
