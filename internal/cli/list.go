package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/worklabs/worklog/internal/track"
)

// NewListCommand creates the list command.
func NewListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects with their tracked totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDatabase(opts)
			if err != nil {
				return err
			}
			defer d.Close()

			renderList(cmd.OutOrStdout(), d.ListProjects(), opts.now())
			return nil
		},
	}
}

// renderList writes one row per project, in the case-insensitive name
// order the database hands out. An asterisk marks the running project.
func renderList(w io.Writer, projects []*track.Project, now time.Time) {
	if len(projects) == 0 {
		fmt.Fprintln(w, "No projects yet.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PROJECT\tRECORDS\tTOTAL")
	for _, p := range projects {
		records := p.Records()
		var total time.Duration
		for _, rec := range records {
			total += recordSpan(rec, now)
		}
		marker := ""
		if p.InFlight() {
			marker = " *"
		}
		fmt.Fprintf(tw, "%s%s\t%d\t%s\n", p.Name(), marker, len(records), formatDuration(total))
	}
	tw.Flush()
}
