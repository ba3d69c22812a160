package graph

import (
	"errors"
	"fmt"
)

// ErrHeterogeneousGroup is returned by [Graph.AddEdgesCentral] when a
// linking group mixes entities from more than one vertex type. Central
// linking requires groups pre-grouped by type.
var ErrHeterogeneousGroup = errors.New("group must contain entities of a single vertex type")

// Option configures a [Graph].
type Option func(*Graph)

// WithTypes adds vertex types to the graph at construction.
func WithTypes(types ...*VertexType) Option {
	return func(g *Graph) { g.types = append(g.types, types...) }
}

// WithIDFunc sets the id generator used for the graph's uid.
// Tests inject [SequenceIDs] for deterministic output.
func WithIDFunc(fn IDFunc) Option {
	return func(g *Graph) { g.idFunc = fn }
}

// WithCollection replaces the graph's edge collection. Loaders use this to
// hand over a pre-seeded collection.
func WithCollection(c *EdgeCollection) Option {
	return func(g *Graph) { g.coll = c }
}

// Graph owns a set of vertex types and one [EdgeCollection], and exposes
// the bulk edge-creation operations. The collection is owned exclusively;
// vertex types may be shared with presentation and export collaborators.
type Graph struct {
	types  []*VertexType
	coll   *EdgeCollection
	idFunc IDFunc
	uid    string
}

// New creates a graph. Without options it has no vertex types, an empty
// collection, and a random uid.
func New(opts ...Option) *Graph {
	g := &Graph{idFunc: RandomIDs()}
	for _, opt := range opts {
		opt(g)
	}
	if g.coll == nil {
		g.coll = NewEdgeCollection()
	}
	g.uid = g.idFunc("m")
	return g
}

// UID returns the graph's opaque unique identifier, used to name exported
// files.
func (g *Graph) UID() string { return g.uid }

// Types returns the graph's vertex types in insertion order.
// The returned slice is freshly allocated; the pointed-to types are shared.
func (g *Graph) Types() []*VertexType {
	out := make([]*VertexType, len(g.types))
	copy(out, g.types)
	return out
}

// AddType appends a vertex type to the graph.
func (g *Graph) AddType(t *VertexType) { g.types = append(g.types, t) }

// Collection returns the graph's edge collection.
func (g *Graph) Collection() *EdgeCollection { return g.coll }

// CentralType returns the vertex type flagged central and true, or nil and
// false if no type carries the flag.
func (g *Graph) CentralType() (*VertexType, bool) {
	for _, t := range g.types {
		if t.Central() {
			return t, true
		}
	}
	return nil, false
}

// AddEdges creates undirected edges between every ordered pair of distinct
// groups: each entity of one group is linked to each entity of the other,
// skipping self pairs. Both traversal orders of a group pair are produced,
// and collection dedup collapses each logical pair to one stored edge.
//
// Edges are inserted as they are built; on error the edges created so far
// remain committed. Use [Graph.AddEdgesCentral] when all-or-nothing
// behavior is required.
func (g *Graph) AddEdges(groups [][]Entity, edgeType string) error {
	for i, from := range groups {
		for j, to := range groups {
			if i == j {
				continue
			}
			if err := g.linkPairs(from, to, edgeType, false); err != nil {
				return err
			}
		}
	}
	return nil
}

// AddEdgesCentral creates edges between non-empty groups where exactly one
// side belongs to the central vertex type. Pairs where neither or both
// sides are central are dropped, as are pairs whose sides share a type.
// Kept pairs must be homogeneous: a group spanning more than one vertex
// type fails with ErrHeterogeneousGroup.
//
// Candidate edges run from the non-central entity to the central one
// (direction recorded as endpoint order, not as a directed edge). The
// entire batch is built and validated before anything is committed, so a
// validation error leaves the collection untouched.
func (g *Graph) AddEdgesCentral(groups [][]Entity, central *VertexType, edgeType string) error {
	var batch []Edge
	for i, x := range groups {
		if len(x) == 0 {
			continue
		}
		for j, y := range groups {
			if len(y) == 0 || i == j {
				continue
			}
			xCentral := sameType(x[0].Type, central)
			yCentral := sameType(y[0].Type, central)
			if !xCentral && !yCentral {
				continue
			}
			if sameType(x[0].Type, y[0].Type) {
				continue
			}

			centralGroup, other := y, x
			if xCentral {
				centralGroup, other = x, y
			}
			for _, grp := range [][]Entity{centralGroup, other} {
				if err := homogeneous(grp); err != nil {
					return err
				}
			}

			for _, c := range centralGroup {
				for _, n := range other {
					if c.Same(n) {
						continue
					}
					e, err := NewEdge(n, c, edgeType, false)
					if err != nil {
						return err
					}
					batch = append(batch, e)
				}
			}
		}
	}
	g.coll.Add(batch...)
	return nil
}

// AddEdgesDir creates directed edges from every entity of the from group
// to every entity of the to group, skipping self pairs. Like
// [Graph.AddEdges], insertion is incremental.
func (g *Graph) AddEdgesDir(from, to []Entity, edgeType string) error {
	return g.linkPairs(from, to, edgeType, true)
}

// RemoveEdge deletes edges by id, delegating to
// [EdgeCollection.DeleteByID].
func (g *Graph) RemoveEdge(ids ...int) {
	g.coll.DeleteByID(ids...)
}

// linkPairs builds and inserts one edge per (from, to) entity combination,
// skipping pairs where the entities are the same.
func (g *Graph) linkPairs(from, to []Entity, edgeType string, directed bool) error {
	for _, f := range from {
		for _, t := range to {
			if f.Same(t) {
				continue
			}
			e, err := NewEdge(f, t, edgeType, directed)
			if err != nil {
				return err
			}
			g.coll.Add(e)
		}
	}
	return nil
}

// homogeneous verifies that every entity in the group belongs to the same
// vertex type as the first.
func homogeneous(group []Entity) error {
	for _, e := range group[1:] {
		if !sameType(e.Type, group[0].Type) {
			return fmt.Errorf("%w: %s and %s", ErrHeterogeneousGroup,
				group[0].Type.ID(), e.Type.ID())
		}
	}
	return nil
}
