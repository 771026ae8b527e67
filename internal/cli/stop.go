package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/worklabs/worklog/internal/db"
)

// NewStopCommand creates the stop command.
func NewStopCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop tracking time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDatabase(opts)
			if err != nil {
				return err
			}
			defer d.Close()

			paint := opts.painter()
			p, err := d.Stop()
			if errors.Is(err, db.ErrNothingTracked) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s to be stopped\n", paint(styleWarn, "No tracked project"))
				return NewExitError(ExitFailure, "nothing to stop")
			}
			if err != nil {
				return WrapExitError(ExitCommandError, "stopping record", err)
			}

			records := p.Records()
			last := records[len(records)-1]
			fmt.Fprintf(cmd.OutOrStdout(), "%s tracking %q after %s\n",
				paint(styleGood, "Stopped"), p.Name(), formatDuration(last.Duration()))
			return nil
		},
	}
}
