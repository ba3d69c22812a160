// Package render converts relmap graphs to Graphviz DOT and renders them
// to SVG or PNG. It consumes only the read-only iteration contract of the
// graph package: vertex types, their entities, and the stored edges.
package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/relmap/pkg/graph"
)

// Node and edge colors, matching the classic relmap output: vertex types
// in blue, entities in gray, relations dimmed so the structure reads
// first.
const (
	colorType       = "dodgerblue"
	colorTypeFont   = "dodgerblue3"
	colorEntity     = "gray28"
	colorEntityFont = "gray14"
	colorRelation   = "gray"
)

// Options configures DOT generation.
type Options struct {
	// Membership draws an edge from each vertex-type node to every linked
	// entity node, grouping entities under their type. Enabled by the CLI
	// default.
	Membership bool
}

// ToDOT converts a graph to Graphviz DOT. One node is emitted per vertex
// type (uppercase display name) and per entity that participates in an
// edge; one edge per stored relation, labeled with its type and carrying
// its id. Undirected relations are drawn without arrowheads (dir=none).
//
// The resulting DOT string can be rendered with [RenderSVG] or
// [RenderPNG].
func ToDOT(g *graph.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")

	for _, vt := range g.Types() {
		fmt.Fprintf(&buf, "  %q [label=%q, color=%s, fontcolor=%s];\n",
			vt.ID(), strings.ToUpper(vt.Name()), colorType, colorTypeFont)
	}
	buf.WriteString("\n")

	seen := make(map[string]bool)
	entityNode := func(e graph.Entity) {
		if seen[e.Key()] {
			return
		}
		seen[e.Key()] = true
		fmt.Fprintf(&buf, "  %q [label=%q, color=%s, fontcolor=%s];\n",
			e.Key(), e.Value, colorEntity, colorEntityFont)
		if opts.Membership {
			fmt.Fprintf(&buf, "  %q -> %q [color=%s, dir=none];\n",
				e.Type.ID(), e.Key(), colorType)
		}
	}

	edges := g.Collection().Edges()
	for _, e := range edges {
		entityNode(e.From)
		entityNode(e.To)
	}

	buf.WriteString("\n")
	for _, e := range edges {
		attrs := []string{
			fmt.Sprintf("id=%q", fmt.Sprintf("edge-%d", e.ID)),
			fmt.Sprintf("color=%s", colorRelation),
			fmt.Sprintf("fontcolor=%s", colorRelation),
		}
		if e.Type != "" {
			attrs = append(attrs, fmt.Sprintf("label=%q", e.Type))
		}
		if !e.Directed {
			attrs = append(attrs, "dir=none")
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.From.Key(), e.To.Key(), strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	return renderFormat(dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return renderFormat(dot, graphviz.PNG)
}

func renderFormat(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	parsed, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer parsed.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, parsed, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
