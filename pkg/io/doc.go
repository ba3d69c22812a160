// Package io loads and persists relmap graphs.
//
// Two formats are supported:
//
//   - CSV: the ingestion and dump format. A row declares an entity in a
//     vertex type, and may additionally declare a second entity plus an
//     edge between the two. [Load] builds a graph from such a file;
//     [ExportCSV] writes one back.
//   - JSON: the round-trip serialization format used by the HTTP view and
//     for interchange. [ExportJSON] and [ImportJSON] are inverses.
//
// The package owns no graph semantics; everything is built through the
// contracts of the graph package.
package io
