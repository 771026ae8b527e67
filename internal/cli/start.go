package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/worklabs/worklog/internal/db"
)

// NewStartCommand creates the start command.
func NewStartCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "start <project>",
		Short: "Start tracking time on a project",
		Long: `Start tracking time on a project.

Whatever was being tracked before is stopped at the new start; switching
projects is a single start.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			d, err := openDatabase(opts)
			if err != nil {
				return err
			}
			defer d.Close()

			p, err := d.StartOn(name)
			if errors.Is(err, db.ErrProjectNotFound) {
				return WrapExitError(ExitFailure,
					fmt.Sprintf("no project named %q (create it with `worklog project add`)", name), err)
			}
			if err != nil {
				return WrapExitError(ExitCommandError, "starting record", err)
			}

			paint := opts.painter()
			fmt.Fprintf(cmd.OutOrStdout(), "%s tracking time on %q\n", paint(styleGood, "Started"), p.Name())
			return nil
		},
	}
}
