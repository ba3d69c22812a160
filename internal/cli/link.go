package cli

import (
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/relmap/pkg/errors"
	"github.com/matzehuels/relmap/pkg/graph"
	relio "github.com/matzehuels/relmap/pkg/io"
	"github.com/matzehuels/relmap/pkg/render"
)

func newLinkCmd(cfg *config) *cobra.Command {
	var edgeType string

	cmd := &cobra.Command{
		Use:   "link <file.csv>",
		Short: "Link entities interactively",
		Long: `Link opens a terminal UI over a loaded graph: one pane per vertex type
plus a pane of stored edges.

Mark entities with space across panes, then press "l" to link them. With a
central vertex type the marked groups are linked central-biased: every
edge connects a non-central entity to a central one. Without a central
type all group pairs are linked. Saving writes the CSV back in place and
drops a DOT and SVG rendering next to it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, central, err := loadGraph(cmd.Context(), args[0], *cfg)
			if err != nil {
				return err
			}
			if len(g.Types()) == 0 {
				return errors.New(errors.ErrCodeInvalidInput, "no vertex types in %s", args[0])
			}

			save := func(g *graph.Graph) error {
				if err := relio.ExportCSV(g, central, args[0]); err != nil {
					return err
				}
				dot := render.ToDOT(g, render.Options{Membership: true})
				name := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
				dotPath := filepath.Join(cfg.OutDir, name+".dot")
				if err := os.WriteFile(dotPath, []byte(dot), 0o644); err != nil {
					return err
				}
				svg, err := render.RenderSVG(dot)
				if err != nil {
					return err
				}
				return os.WriteFile(filepath.Join(cfg.OutDir, name+".svg"), svg, 0o644)
			}

			model := NewLinkModel(g, central, edgeType, save)
			final, err := tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "run UI")
			}

			if m, ok := final.(LinkModel); ok && m.dirty {
				printWarning("Unsaved changes discarded")
			}
			printStats(len(g.Types()), entityCount(g), g.Collection().Len())
			return nil
		},
	}

	cmd.Flags().StringVarP(&edgeType, "type", "t", "", "type label for edges created in this session")
	return cmd
}

func entityCount(g *graph.Graph) int {
	n := 0
	for _, vt := range g.Types() {
		n += vt.Len()
	}
	return n
}
