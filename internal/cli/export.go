package cli

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/relmap/pkg/errors"
	relio "github.com/matzehuels/relmap/pkg/io"
	"github.com/matzehuels/relmap/pkg/render"
)

// exportFormats are the formats the export command understands, in the
// order they are written.
var exportFormats = []string{"csv", "json", "dot", "svg", "png"}

func newExportCmd(cfg *config) *cobra.Command {
	var (
		formats []string
		output  string
	)

	cmd := &cobra.Command{
		Use:   "export <file.csv>",
		Short: "Convert a CSV graph to other formats",
		Long: `Export loads a graph from CSV and writes it out in one or more formats.

Supported formats: csv, json, dot, svg, png. Rendered formats (svg, png)
go through Graphviz; dot writes the intermediate DOT source.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(formats) == 0 {
				formats = cfg.Formats
			}
			for _, f := range formats {
				if !validFormat(f) {
					return errors.New(errors.ErrCodeInvalidFormat,
						"unknown format %q (supported: %s)", f, strings.Join(exportFormats, ", "))
				}
			}

			g, central, err := loadGraph(cmd.Context(), args[0], *cfg)
			if err != nil {
				return err
			}

			base := output
			if base == "" {
				name := filepath.Base(args[0])
				base = strings.TrimSuffix(name, filepath.Ext(name))
			}
			if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidPath, err, "create output dir")
			}

			var dot string
			needsDOT := false
			for _, f := range formats {
				if f == "dot" || f == "svg" || f == "png" {
					needsDOT = true
				}
			}
			if needsDOT {
				dot = render.ToDOT(g, render.Options{Membership: true})
			}

			printInfo("Exporting %s", StyleHighlight.Render(base))
			for _, format := range exportFormats {
				if !slices.Contains(formats, format) {
					continue
				}
				path := filepath.Join(cfg.OutDir, base+"."+format)
				switch format {
				case "csv":
					err = relio.ExportCSV(g, central, path)
				case "json":
					err = relio.ExportJSON(g, path)
				case "dot":
					err = os.WriteFile(path, []byte(dot), 0o644)
				case "svg":
					var svg []byte
					if svg, err = render.RenderSVG(dot); err == nil {
						err = os.WriteFile(path, svg, 0o644)
					}
				case "png":
					var png []byte
					if png, err = render.RenderPNG(dot); err == nil {
						err = os.WriteFile(path, png, 0o644)
					}
				}
				if err != nil {
					return errors.Wrap(errors.ErrCodeInternal, err, "export %s", format)
				}
				printFile(path)
			}

			printStats(len(g.Types()), entityCount(g), g.Collection().Len())
			printSuccess("Export complete")
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&formats, "format", "f", nil,
		"formats to write (csv, json, dot, svg, png)")
	cmd.Flags().StringVarP(&output, "output", "o", "",
		"output base name (defaults to the input filename)")
	return cmd
}

func validFormat(f string) bool {
	return slices.Contains(exportFormats, f)
}
