// Package graph implements relmap's in-memory relational index: typed
// collections of named entities (vertex types), relations between entities
// (edges), and a multi-index edge store with deduplication and
// attribute-based queries.
//
// The model is deliberately small:
//
//   - [VertexType] is a named, deduplicated container of [Entity] values,
//     optionally flagged central.
//   - [Edge] relates two entities, with an optional type label and a
//     directed/undirected mode. Undirected edges are identified by the
//     unordered endpoint pair, so A–B and B–A are the same edge.
//   - [EdgeCollection] stores edges under several simultaneous index keys
//     (from, to, endpoint pair, type, id) and keeps a monotonic id
//     watermark: ids are never reused, even after deletion.
//   - [Graph] owns vertex types and one collection, and provides the bulk
//     linking operations (all-pairs, central-biased, explicit directed).
//
// Nothing in this package is safe for concurrent use; a single caller is
// expected to drive all mutations sequentially.
package graph
