package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/relmap/pkg/errors"
	relio "github.com/matzehuels/relmap/pkg/io"
)

func newEdgesCmd(cfg *config) *cobra.Command {
	var deleteIDs []int

	cmd := &cobra.Command{
		Use:   "edges <file.csv>",
		Short: "List stored edges or delete them by id",
		Long: `Edges prints every stored edge with its id and rendering.

With --delete, the named edges are removed and the CSV is written back in
place. Ids of surviving edges are preserved and never reissued.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, central, err := loadGraph(cmd.Context(), args[0], *cfg)
			if err != nil {
				return err
			}
			coll := g.Collection()

			if len(deleteIDs) > 0 {
				removed := 0
				var missing []string
				for _, id := range deleteIDs {
					if _, ok := coll.Fetch(id); !ok {
						missing = append(missing, strconv.Itoa(id))
						continue
					}
					coll.DeleteByID(id)
					removed++
				}
				if len(missing) > 0 {
					printWarning("No edge with id %s", strings.Join(missing, ", "))
				}
				if removed > 0 {
					if err := relio.ExportCSV(g, central, args[0]); err != nil {
						return errors.Wrap(errors.ErrCodeInternal, err, "write %s", args[0])
					}
					printSuccess("Deleted %d edge(s)", removed)
					printFile(args[0])
				}
				return nil
			}

			if coll.Len() == 0 {
				printInfo("No edges stored")
				return nil
			}
			for _, e := range coll.Edges() {
				fmt.Println("  " + e.String())
			}
			printStats(len(g.Types()), entityCount(g), coll.Len())
			return nil
		},
	}

	cmd.Flags().IntSliceVarP(&deleteIDs, "delete", "d", nil, "edge ids to delete")
	return cmd
}
