package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/worklabs/worklog/internal/track"
)

// NewStatusCommand creates the status command.
func NewStatusCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show what is being tracked right now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDatabase(opts)
			if err != nil {
				return err
			}
			defer d.Close()

			renderStatus(cmd.OutOrStdout(), opts.painter(), d.CurrentProject(), opts.now())
			return nil
		},
	}
}

// renderStatus writes the status view. Pure in its inputs so the output
// can be pinned by golden files.
func renderStatus(w io.Writer, paint painter, p *track.Project, now time.Time) {
	if p == nil {
		fmt.Fprintf(w, "%s right now\n", paint(styleWarn, "Nothing tracked"))
		return
	}

	records := p.Records()
	last := records[len(records)-1]
	fmt.Fprintf(w, "%s %q\n", paint(styleGood, "Tracking"), p.Name())
	fmt.Fprintf(w, "  %s   %s\n", paint(styleDim, "since"), last.Start().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "  %s %s\n", paint(styleDim, "elapsed"), formatDuration(recordSpan(last, now)))
}

// recordSpan is the record's span as of a given instant: closed records
// report their fixed duration, open ones the elapsed time so far.
func recordSpan(rec track.Record, now time.Time) time.Duration {
	if _, ok := rec.End(); ok {
		return rec.Duration()
	}
	d := now.Sub(rec.Start())
	if d < 0 {
		return 0
	}
	return d
}
