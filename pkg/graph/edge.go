package graph

import (
	"errors"
	"fmt"
)

// ErrMissingEndpoint is returned by [NewEdge] when either endpoint is the
// zero entity. An edge always relates two concrete entities.
var ErrMissingEndpoint = errors.New("edge requires both a from and a to entity")

// Edge is a relation between two entities, with an optional type label and
// a directed/undirected mode. With a type label an edge forms a triple in
// the RDF sense.
//
// Identity contract:
//
//   - Undirected: two edges are equal iff their type labels match and the
//     unordered endpoint pair matches. Swapping From and To does not
//     change identity.
//   - Directed: two edges are equal iff From, To, and Type match in order.
//   - A directed edge is never equal to an undirected one.
//
// The symmetric identity uses a canonical lexicographic ordering of the
// two endpoint keys, so equal keys always mean equal endpoint sets (a hash
// sum would not guarantee that).
//
// ID is assigned by [EdgeCollection.Add] when zero; assigned ids start at
// 1 and are never reused.
type Edge struct {
	From     Entity // Source endpoint (or either endpoint when undirected)
	To       Entity // Target endpoint
	ID       int    // Collection-assigned id; 0 means not yet assigned
	Type     string // Optional type label; empty means untyped
	Directed bool   // Whether endpoint order is significant
}

// NewEdge creates an edge between from and to. Returns ErrMissingEndpoint
// if either endpoint is the zero entity. edgeType may be empty.
func NewEdge(from, to Entity, edgeType string, directed bool) (Edge, error) {
	if from.IsZero() || to.IsZero() {
		return Edge{}, ErrMissingEndpoint
	}
	return Edge{From: from, To: to, Type: edgeType, Directed: directed}, nil
}

// PairKey returns a direction-independent key for the edge's endpoint
// pair: the two endpoint keys in lexicographic order. Every edge between
// the same two entities has the same pair key, whatever its direction or
// type.
func (e Edge) PairKey() string {
	a, b := e.From.Key(), e.To.Key()
	if b < a {
		a, b = b, a
	}
	return a + "|" + b
}

// Key returns the edge's full identity key, implementing the equality
// contract. Undirected keys are built from the canonical endpoint pair;
// directed keys preserve endpoint order. The mode marker keeps directed
// and undirected edges from ever colliding.
func (e Edge) Key() string {
	if e.Directed {
		return "d|" + e.From.Key() + "|" + e.To.Key() + "|" + e.Type
	}
	return "u|" + e.PairKey() + "|" + e.Type
}

// Equal reports whether e and other are the same edge under the identity
// contract. The assigned ID does not participate in equality.
func (e Edge) Equal(other Edge) bool {
	return e.Key() == other.Key()
}

// SelfRef reports whether both endpoints are the same entity.
func (e Edge) SelfRef() bool {
	return e.From.Same(e.To)
}

// typeString renders the connector between the endpoint keys: "---" for an
// untyped edge, "--.label.--" for a typed one, with ">>" appended when the
// edge is directed.
func (e Edge) typeString() string {
	t := "---"
	if e.Type != "" {
		t = "--." + e.Type + ".--"
	}
	if e.Directed {
		t += ">>"
	}
	return t
}

// String returns a human-readable rendering used by list UIs and
// exporters, e.g. "(3) [alice.person] --.lives_in.-->> [nyc.city]".
// The id prefix is omitted while the edge is unassigned.
func (e Edge) String() string {
	s := fmt.Sprintf("[%s] %s [%s]", e.From.Key(), e.typeString(), e.To.Key())
	if e.ID != 0 {
		s = fmt.Sprintf("(%d) %s", e.ID, s)
	}
	return s
}
