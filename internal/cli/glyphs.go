package cli

import (
	"github.com/spf13/cobra"
)

// newGlyphsCmd creates the glyphs command generating only the template
// glyphs.
func newGlyphsCmd() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "glyphs",
		Short: "Generate the template glyphs only",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newPipeline(&opts)
			if err != nil {
				return err
			}
			written, err := p.generateGlyphs(cmd.Context())
			if err != nil {
				return err
			}
			if len(written) == 0 {
				printWarning("No glyphs configured")
				return nil
			}
			printSuccess("Generated %d glyphs", len(written))
			return nil
		},
	}

	addPipelineFlags(cmd, &opts)
	return cmd
}
