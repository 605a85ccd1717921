package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/fontgarden/fontgarden/pkg/buildinfo"
)

// Execute runs the fontgarden CLI and returns an error if any command
// fails. The root command wires up all subcommands, configures logging
// based on the --verbose flag, and attaches the logger to the context
// where all commands can reach it via loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "fontgarden",
		Short:        "Fontgarden manages a multi-source glyph repository",
		Long:         `Fontgarden stores glyphs from several font sources in one normalized repository, partitioned into named sets, and reconstructs per-source UFO documents from any subset of sets and sources.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}

	root.SetVersionTemplate("fontgarden\n" + buildinfo.String() + "\n")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newNewCmd())
	root.AddCommand(newImportCmd())
	root.AddCommand(newExportCmd())

	return root.ExecuteContext(ctx)
}
