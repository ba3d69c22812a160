package cli

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/relmap/pkg/graph"
	relio "github.com/matzehuels/relmap/pkg/io"
	"github.com/matzehuels/relmap/pkg/render"
)

func newServeCmd(cfg *config) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve <file.csv>",
		Short: "Serve a read-only HTTP view of a graph",
		Long: `Serve loads a graph once at startup and exposes it over HTTP:

  GET /graph      the graph as JSON
  GET /graph.svg  a rendered SVG
  GET /healthz    liveness check

The graph is immutable while serving; restart to pick up file changes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, _, err := loadGraph(cmd.Context(), args[0], *cfg)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.ListenAddr
			}

			logger := loggerFromContext(cmd.Context())
			srv := &http.Server{
				Addr:              addr,
				Handler:           newServeHandler(g),
				ReadHeaderTimeout: 5 * time.Second,
			}

			go func() {
				<-cmd.Context().Done()
				srv.Close()
			}()

			logger.Infof("Listening on http://%s", addr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (host:port)")
	return cmd
}

// newServeHandler builds the read-only HTTP surface over a loaded graph.
func newServeHandler(g *graph.Graph) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/graph", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := relio.WriteJSON(g, w); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})

	r.Get("/graph.svg", func(w http.ResponseWriter, _ *http.Request) {
		dot := render.ToDOT(g, render.Options{Membership: true})
		svg, err := render.RenderSVG(dot)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/svg+xml")
		w.Write(svg)
	})

	return r
}
