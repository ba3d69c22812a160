package io

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/relmap/pkg/errors"
	"github.com/matzehuels/relmap/pkg/graph"
)

// CSV column names. Only colEntity and colVertexID are required on input;
// the rest are optional and empty when absent.
const (
	colEntity        = "entity"
	colVertexName    = "vertex_name"
	colVertexID      = "vertex_id"
	colCentral       = "central_vtx_type"
	colVertexCentral = "vertex_central"
	colEdgeType      = "edge_type"
	colDirected      = "directed"
	colEntity2       = "entity2"
	colVertexName2   = "vertex_name2"
	colVertexID2     = "vertex_id2"
)

// centralMarker in the vertex_name column flags that row's vertex type as
// central, as an alternative to naming it in the central_vtx_type column.
const centralMarker = "CENTRAL"

// csvHeader is the dump column order written by [WriteCSV].
var csvHeader = []string{
	colEntity, colVertexName, colVertexID, colVertexCentral,
	colEdgeType, colDirected, colEntity2, colVertexName2, colVertexID2,
}

// Load reads a CSV file and returns the graph it describes plus the
// central vertex type, if one was declared (nil otherwise).
// The filename must end in ".csv".
func Load(path string) (*graph.Graph, *graph.VertexType, error) {
	if !strings.HasSuffix(path, ".csv") {
		return nil, nil, errors.New(errors.ErrCodeInvalidPath,
			"must input a CSV (text) filename; got %q", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()
	return Read(f)
}

// Read decodes CSV records from r into a graph, following the ingestion
// contract: each record names an entity and its vertex type, and may name
// a second entity plus an edge between the two. Vertex types are created
// on first sight; the central type may be declared on any row, so
// centrality is settled in a final sweep once all rows are read.
//
// The header row must include at least "entity" and "vertex_id".
func Read(r io.Reader) (*graph.Graph, *graph.VertexType, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read CSV header")
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{colEntity, colVertexID} {
		if _, ok := cols[required]; !ok {
			return nil, nil, errors.New(errors.ErrCodeInvalidInput,
				"input CSV must have at least %q and %q headers", colEntity, colVertexID)
		}
	}

	field := func(record []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	types := make(map[string]*graph.VertexType)
	order := []*graph.VertexType{}
	var edges []graph.Edge
	var centralID string

	for row := 2; ; row++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read CSV row %d", row)
		}

		vertexID := field(record, colVertexID)
		if vertexID == "" {
			// A row without a vertex type cannot contribute anything.
			continue
		}
		rawName := field(record, colVertexName)
		vertexName := rawName
		if vertexName == centralMarker {
			// The marker flags centrality; it is not a display name.
			vertexName = ""
		}
		central := rawName == centralMarker ||
			field(record, colCentral) == vertexID ||
			parseBool(field(record, colVertexCentral))
		if centralID == "" && central {
			centralID = vertexID
		}
		vt, ok := types[vertexID]
		if !ok {
			vt, err = graph.NewVertexType(vertexID, vertexName, centralID == vertexID)
			if err != nil {
				return nil, nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "row %d", row)
			}
			types[vertexID] = vt
			order = append(order, vt)
		}

		from, err := vt.Add(field(record, colEntity))
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeInvalidEntity, err, "row %d", row)
		}

		// Optional related entity and edge.
		value2 := field(record, colEntity2)
		vertexID2 := field(record, colVertexID2)
		if value2 == "" || vertexID2 == "" {
			continue
		}
		vt2, ok := types[vertexID2]
		if !ok {
			vt2, err = graph.NewVertexType(vertexID2, field(record, colVertexName2), centralID == vertexID2)
			if err != nil {
				return nil, nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "row %d", row)
			}
			types[vertexID2] = vt2
			order = append(order, vt2)
		}
		to, err := vt2.Add(value2)
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeInvalidEntity, err, "row %d", row)
		}

		e, err := graph.NewEdge(from, to, field(record, colEdgeType), parseBool(field(record, colDirected)))
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeMissingEndpoint, err, "row %d", row)
		}
		edges = append(edges, e)
	}

	// Final centrality sweep: the central type may have been created
	// before its flag was seen.
	var central *graph.VertexType
	if centralID != "" {
		for id, vt := range types {
			vt.SetCentral(id == centralID)
		}
		central = types[centralID]
	}

	coll := graph.NewEdgeCollection()
	coll.Add(edges...)
	g := graph.New(graph.WithTypes(order...), graph.WithCollection(coll))
	return g, central, nil
}

// WriteCSV dumps the graph in the ingestion format: one row per entity
// (its vertex type and central flag), then one row per stored edge (both
// endpoints, type label, directed flag). Rows follow graph and collection
// order, so output is deterministic. central marks which type is written
// as central; nil marks none.
func WriteCSV(g *graph.Graph, central *graph.VertexType, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, vt := range g.Types() {
		isCentral := central != nil && vt.ID() == central.ID()
		for _, e := range vt.Entities() {
			row := []string{
				e.Value, vt.Name(), vt.ID(), strconv.FormatBool(isCentral),
				"", "", "", "", "",
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write entity row: %w", err)
			}
		}
	}

	for _, e := range g.Collection().Edges() {
		fromCentral := central != nil && e.From.Type.ID() == central.ID()
		row := []string{
			e.From.Value, e.From.Type.Name(), e.From.Type.ID(), strconv.FormatBool(fromCentral),
			e.Type, strconv.FormatBool(e.Directed),
			e.To.Value, e.To.Type.Name(), e.To.Type.ID(),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write edge row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportCSV writes the graph as CSV to a file at path.
// This is a convenience wrapper around [WriteCSV] for file-based output.
func ExportCSV(g *graph.Graph, central *graph.VertexType, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteCSV(g, central, f)
}

// parseBool reads the directed flag leniently: "true", "1", "yes" (any
// case) are true, everything else, including empty, is false.
func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "true", "1", "yes":
		return true
	}
	return false
}
