package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version.
// This is typically called by the main package during initialization with
// values injected via ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the relmap CLI under ctx and returns an error if any
// command fails. This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands (link, export,
// edges, serve), loads the optional TOML config file, configures logging
// based on the --verbose flag, and executes the command tree. Cancelling
// ctx (e.g. on SIGINT) stops long-running commands like serve.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute(ctx context.Context) error {
	var (
		verbose    bool
		configPath string
	)
	cfg := defaultConfig()

	root := &cobra.Command{
		Use:          "relmap",
		Short:        "relmap links entities into a relational graph",
		Long:         `relmap is a CLI tool for building and visualizing relational graphs: load entities from CSV, link them interactively, and export the result as CSV, JSON, DOT, SVG, or PNG.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)

			loaded, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			cfg = loaded
			return nil
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("relmap %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a relmap.toml config file")

	root.AddCommand(newLinkCmd(&cfg))
	root.AddCommand(newExportCmd(&cfg))
	root.AddCommand(newEdgesCmd(&cfg))
	root.AddCommand(newServeCmd(&cfg))

	return root.ExecuteContext(ctx)
}
