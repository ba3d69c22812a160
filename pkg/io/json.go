package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/relmap/pkg/graph"
)

// document is the JSON serialization of a graph: vertex types with their
// entities, followed by the edge list. The format is designed for
// round-trip fidelity: export then import reproduces the same types,
// entities, edges, and ids.
type document struct {
	Types []vertexType `json:"vertex_types"`
	Edges []edgeRecord `json:"edges"`
}

type vertexType struct {
	ID       string   `json:"id"`
	Name     string   `json:"name,omitempty"`
	Central  bool     `json:"central,omitempty"`
	Entities []string `json:"entities,omitempty"`
}

type edgeRecord struct {
	ID       int    `json:"id"`
	From     string `json:"from"`
	FromType string `json:"from_type"`
	To       string `json:"to"`
	ToType   string `json:"to_type"`
	Type     string `json:"type,omitempty"`
	Directed bool   `json:"directed,omitempty"`
}

// WriteJSON encodes the graph as indented JSON and writes it to w.
// Types keep graph order and edges keep collection order, so output is
// deterministic and ids survive the trip.
func WriteJSON(g *graph.Graph, w io.Writer) error {
	doc := document{}
	for _, vt := range g.Types() {
		doc.Types = append(doc.Types, vertexType{
			ID:       vt.ID(),
			Name:     vt.Name(),
			Central:  vt.Central(),
			Entities: vt.Values(),
		})
	}
	for _, e := range g.Collection().Edges() {
		doc.Edges = append(doc.Edges, edgeRecord{
			ID:       e.ID,
			From:     e.From.Value,
			FromType: e.From.Type.ID(),
			To:       e.To.Value,
			ToType:   e.To.Type.ID(),
			Type:     e.Type,
			Directed: e.Directed,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes the graph to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(g *graph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(g, f)
}

// ReadJSON decodes a JSON graph from r.
//
// Every edge endpoint must name a declared vertex type and an entity
// present in it; violations are reported with the offending edge. Edge
// ids from the document are preserved, so importing never reissues an id
// that the exporting collection had already spent.
func ReadJSON(r io.Reader) (*graph.Graph, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	types := make(map[string]*graph.VertexType, len(doc.Types))
	order := make([]*graph.VertexType, 0, len(doc.Types))
	for _, dt := range doc.Types {
		vt, err := graph.NewVertexType(dt.ID, dt.Name, dt.Central)
		if err != nil {
			return nil, fmt.Errorf("vertex type %s: %w", dt.ID, err)
		}
		for _, v := range dt.Entities {
			if _, err := vt.Add(v); err != nil {
				return nil, fmt.Errorf("vertex type %s: %w", dt.ID, err)
			}
		}
		types[dt.ID] = vt
		order = append(order, vt)
	}

	endpoint := func(typeID, value string) (graph.Entity, error) {
		vt, ok := types[typeID]
		if !ok {
			return graph.Entity{}, fmt.Errorf("unknown vertex type %q", typeID)
		}
		return graph.NewEntity(vt, value)
	}

	coll := graph.NewEdgeCollection()
	for _, de := range doc.Edges {
		from, err := endpoint(de.FromType, de.From)
		if err != nil {
			return nil, fmt.Errorf("edge %d: %w", de.ID, err)
		}
		to, err := endpoint(de.ToType, de.To)
		if err != nil {
			return nil, fmt.Errorf("edge %d: %w", de.ID, err)
		}
		e, err := graph.NewEdge(from, to, de.Type, de.Directed)
		if err != nil {
			return nil, fmt.Errorf("edge %d: %w", de.ID, err)
		}
		e.ID = de.ID
		coll.Add(e)
	}

	return graph.New(graph.WithTypes(order...), graph.WithCollection(coll)), nil
}

// ImportJSON reads a JSON file at path and returns the decoded graph.
// It returns the same validation errors as [ReadJSON], wrapped with the
// file path for context.
func ImportJSON(path string) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
