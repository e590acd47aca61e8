package cli

import (
	"github.com/spf13/cobra"

	"github.com/morphkit/morph/internal/tui"
)

// NewDemoCommand creates the demo command.
func NewDemoCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the interactive terminal demo",
		Long: `Run an interactive keyed list in the terminal.

Add and remove items and watch them move through the enter and leave
phases. Leaving items hold their slot until the leave duration elapses.

Keys:
  a - add an item at the end
  i - insert an item at the front
  d - remove the last item
  r - remove the first item
  s - shuffle the collection
  w - toggle wrapper markup
  q - quit`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := tui.Run(); err != nil {
				return WrapExitError(ExitCommandError, "demo failed", err)
			}
			return nil
		},
	}

	return cmd
}
