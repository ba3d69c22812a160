package cli

import (
	"context"
	"fmt"

	"github.com/matzehuels/relmap/pkg/graph"
	relio "github.com/matzehuels/relmap/pkg/io"
)

// loadGraph reads a CSV graph for a command, applying the configured
// insertion policy. When exclusive pairs is enabled the loaded edges are
// replayed into a policy-carrying collection, so later interactive inserts
// are checked against it.
func loadGraph(ctx context.Context, path string, cfg config) (*graph.Graph, *graph.VertexType, error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	g, central, err := relio.Load(path)
	if err != nil {
		return nil, nil, err
	}

	if cfg.ExclusivePairs {
		coll := graph.NewEdgeCollection(graph.WithExclusivePairs())
		coll.Add(g.Collection().Edges()...)
		g = graph.New(graph.WithTypes(g.Types()...), graph.WithCollection(coll))
	}

	prog.done(formatLoadSummary(len(g.Types()), entityCount(g), g.Collection().Len()))
	return g, central, nil
}

func formatLoadSummary(types, entities, edges int) string {
	return fmt.Sprintf("Loaded %d types, %d entities, %d edges", types, entities, edges)
}
