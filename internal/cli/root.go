package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mkerner/iconforge/pkg/buildinfo"
)

// Execute runs the iconforge CLI and returns an error if any command
// fails. This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands (generate,
// app, tray, glyphs, completion), configures logging based on the
// --verbose flag, and executes the command tree.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands
// via loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "iconforge",
		Short:        "iconforge rasterizes vector artwork into app icon sets",
		Long:         `iconforge is a build-time icon generator: it rasterizes a source SVG into app icons, a macOS icon bundle, a Windows icon, template tray icons, and small glyphs using deterministic compositing rules.`,
		Version:      buildinfo.Version,
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

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newAppCmd())
	root.AddCommand(newTrayCmd())
	root.AddCommand(newGlyphsCmd())
	root.AddCommand(newCompletionCmd())

	return root.ExecuteContext(ctx)
}
