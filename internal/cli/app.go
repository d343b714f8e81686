package cli

import (
	"github.com/spf13/cobra"
)

// newAppCmd creates the app command generating only the app icon PNGs.
func newAppCmd() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "app",
		Short: "Generate the app icon PNGs only",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newPipeline(&opts)
			if err != nil {
				return err
			}
			written, err := p.generateApp(cmd.Context())
			if err != nil {
				return err
			}
			printSuccess("Generated %d app icons", len(written))
			return nil
		},
	}

	addPipelineFlags(cmd, &opts)
	return cmd
}
