package graph

import (
	"slices"
	"strconv"
)

// Index key prefixes. Every stored edge is registered under one key per
// prefix (type only when labeled), all pointing at its position in the
// edge list.
const (
	prefixEdge = "edge" // full identity key, used for dedup
	prefixFrom = "from" // from-endpoint key
	prefixTo   = "to"   // to-endpoint key
	prefixPair = "pair" // direction-independent endpoint pair
	prefixType = "type" // type label, when present
	prefixID   = "id"   // assigned edge id
)

func indexKey(prefix, s string) string {
	return prefix + "::" + s
}

// Attrs selects edges by attribute for [EdgeCollection.GetForAttrs] and
// [EdgeCollection.DeleteByAttrs]. Zero-valued fields are ignored; the
// supplied fields are intersected. An all-zero Attrs selects nothing.
type Attrs struct {
	From Entity // Match the from endpoint
	To   Entity // Match the to endpoint
	Type string // Match the type label
}

// CollectionOption configures an [EdgeCollection].
type CollectionOption func(*EdgeCollection)

// WithExclusivePairs makes the collection reject a new undirected edge
// outright when any other edge already links the same endpoint pair, even
// under a different type label. The default allows multiple typed edges
// between the same endpoints.
func WithExclusivePairs() CollectionOption {
	return func(c *EdgeCollection) { c.exclusivePairs = true }
}

// EdgeCollection is a multi-index store of edges shared by any number of
// vertex types. It maintains an ordered edge list, an index from attribute
// keys to list positions, and a monotonic id watermark.
//
// Invariants:
//
//   - No two stored edges are equal under the [Edge] identity contract;
//     inserting an equal edge is a no-op.
//   - Ids are never reused. The watermark only rises: deletions do not
//     lower it, and an explicitly supplied id raises it if larger.
//
// The zero value is not usable - use [NewEdgeCollection].
type EdgeCollection struct {
	edges          []Edge
	index          map[string][]int
	maxID          int // highest id ever issued or observed
	exclusivePairs bool
}

// NewEdgeCollection creates a collection, optionally seeded with edges.
// Seed edges go through the same assignment and dedup path as
// [EdgeCollection.Add].
func NewEdgeCollection(opts ...CollectionOption) *EdgeCollection {
	c := &EdgeCollection{index: make(map[string][]int)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Add inserts the given edges in input order and returns the full edge
// list. Each edge without an id is assigned the next one above the
// watermark. Insertion is atomic per edge: an edge equal to a stored one
// (or, with exclusive pairs, an undirected edge whose endpoint pair is
// already linked) is skipped without touching any state.
func (c *EdgeCollection) Add(edges ...Edge) []Edge {
	for _, e := range edges {
		if e.ID == 0 {
			c.maxID++
			e.ID = c.maxID
		} else if e.ID > c.maxID {
			c.maxID = e.ID
		}
		c.insert(e)
	}
	return c.Edges()
}

// insert appends e and registers it under all of its index keys, unless
// the collection already holds an equal edge.
func (c *EdgeCollection) insert(e Edge) {
	if _, dup := c.index[indexKey(prefixEdge, e.Key())]; dup {
		return
	}
	if c.exclusivePairs && !e.Directed {
		if len(c.index[indexKey(prefixPair, e.PairKey())]) > 0 {
			return
		}
	}
	pos := len(c.edges)
	c.edges = append(c.edges, e)
	for _, k := range c.keysFor(e) {
		c.index[k] = append(c.index[k], pos)
	}
}

// keysFor returns every index key e is registered under.
func (c *EdgeCollection) keysFor(e Edge) []string {
	keys := []string{
		indexKey(prefixEdge, e.Key()),
		indexKey(prefixFrom, e.From.Key()),
		indexKey(prefixTo, e.To.Key()),
		indexKey(prefixPair, e.PairKey()),
		indexKey(prefixID, strconv.Itoa(e.ID)),
	}
	if e.Type != "" {
		keys = append(keys, indexKey(prefixType, e.Type))
	}
	return keys
}

// GetForAttrs returns the edges matching every supplied attribute, in
// list order. Each attribute contributes its index bucket and the result
// is the intersection by position. With no attributes supplied the result
// is empty, not the full set - the indices are the only access path here.
func (c *EdgeCollection) GetForAttrs(a Attrs) []Edge {
	positions := c.attrPositions(a)
	if len(positions) == 0 {
		return nil
	}
	out := make([]Edge, len(positions))
	for i, pos := range positions {
		out[i] = c.edges[pos]
	}
	return out
}

// DeleteByAttrs removes the edges matching every supplied attribute, using
// the same intersection logic as [EdgeCollection.GetForAttrs], and returns
// the number removed.
func (c *EdgeCollection) DeleteByAttrs(a Attrs) int {
	return c.deletePositions(c.attrPositions(a))
}

// DeleteByID removes the edges whose id matches any of the supplied ids
// and returns the number removed. The ids remain spent: a later Add will
// never reissue them.
func (c *EdgeCollection) DeleteByID(ids ...int) int {
	var positions []int
	for _, id := range ids {
		positions = append(positions, c.index[indexKey(prefixID, strconv.Itoa(id))]...)
	}
	return c.deletePositions(positions)
}

// DeleteSelfRef removes every edge whose endpoints are the same entity.
func (c *EdgeCollection) DeleteSelfRef() {
	var positions []int
	for i, e := range c.edges {
		if e.SelfRef() {
			positions = append(positions, i)
		}
	}
	c.deletePositions(positions)
}

// Fetch returns the edge with the given id and true, or the zero edge and
// false if no stored edge carries it.
func (c *EdgeCollection) Fetch(id int) (Edge, bool) {
	bucket := c.index[indexKey(prefixID, strconv.Itoa(id))]
	if len(bucket) == 0 {
		return Edge{}, false
	}
	return c.edges[bucket[0]], true
}

// EdgesByVertex returns, for every vertex type with linked entities, the
// entities that appear as an endpoint of some edge. Both endpoints of
// every edge are appended under their owning type; an entity appears once
// per edge it participates in. Filtering UIs use this to hide entities
// that already have an edge.
func (c *EdgeCollection) EdgesByVertex() map[*VertexType][]Entity {
	out := make(map[*VertexType][]Entity)
	for _, e := range c.edges {
		out[e.From.Type] = append(out[e.From.Type], e.From)
		out[e.To.Type] = append(out[e.To.Type], e.To)
	}
	return out
}

// Edges returns a copy of the stored edge list in insertion order.
func (c *EdgeCollection) Edges() []Edge { return slices.Clone(c.edges) }

// Len returns the number of stored edges.
func (c *EdgeCollection) Len() int { return len(c.edges) }

// attrPositions resolves the index buckets for the supplied attributes and
// intersects them by position. The result is sorted ascending so callers
// see edges in list order. Returns nil when no attribute is supplied.
func (c *EdgeCollection) attrPositions(a Attrs) []int {
	var buckets [][]int
	if !a.From.IsZero() {
		buckets = append(buckets, c.index[indexKey(prefixFrom, a.From.Key())])
	}
	if !a.To.IsZero() {
		buckets = append(buckets, c.index[indexKey(prefixTo, a.To.Key())])
	}
	if a.Type != "" {
		buckets = append(buckets, c.index[indexKey(prefixType, a.Type)])
	}
	if len(buckets) == 0 {
		return nil
	}

	count := make(map[int]int)
	for _, b := range buckets {
		for _, pos := range b {
			count[pos]++
		}
	}
	var positions []int
	for pos, n := range count {
		if n == len(buckets) {
			positions = append(positions, pos)
		}
	}
	slices.Sort(positions)
	return positions
}

// deletePositions removes the edges at the given list positions and
// returns how many were removed. The entire index is rebuilt from the
// survivors: every surviving edge already carries its id, so ids are
// preserved and the watermark never falls.
func (c *EdgeCollection) deletePositions(positions []int) int {
	if len(positions) == 0 {
		return 0
	}
	drop := make(map[int]bool, len(positions))
	for _, pos := range positions {
		drop[pos] = true
	}

	var survivors []Edge
	for i, e := range c.edges {
		if !drop[i] {
			survivors = append(survivors, e)
		}
	}
	removed := len(c.edges) - len(survivors)

	c.edges = nil
	c.index = make(map[string][]int)
	for _, e := range survivors {
		c.insert(e)
	}
	return removed
}
