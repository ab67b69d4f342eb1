package cli

import (
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

// SetVersion sets the version information displayed by --version. This
// is typically called by the main package with values injected via
// ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// RootCommand builds the mindweave command tree. The logger is attached
// to the command context so every subcommand retrieves it with
// loggerFromContext.
func RootCommand() *cobra.Command {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:          "mindweave",
		Short:        "Mindweave edits and renders mind maps",
		Long:         `Mindweave is an engine and CLI for interactive mind maps: a graph of typed nodes and relations with automatic layout, bounded undo and multiple presentation modes driven from one source of truth.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("mindweave %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/mindweave/config.toml)")

	root.AddCommand(newEditCmd(&configPath))
	root.AddCommand(newOutlineCmd(&configPath))
	root.AddCommand(newExportCmd(&configPath))
	root.AddCommand(newServeCmd(&configPath))

	return root
}
