package cli

import (
	"github.com/spf13/cobra"
)

// newTrayCmd creates the tray command generating only the tray icons.
func newTrayCmd() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "tray",
		Short: "Generate the template tray icons only",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newPipeline(&opts)
			if err != nil {
				return err
			}
			written, err := p.generateTray(cmd.Context())
			if err != nil {
				return err
			}
			printSuccess("Generated %d tray icons", len(written))
			return nil
		},
	}

	addPipelineFlags(cmd, &opts)
	return cmd
}
