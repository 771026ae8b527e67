package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/worklabs/worklog/internal/export"
)

// NewExportCommand creates the export command.
func NewExportCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Dump the ledger into a SQLite file",
		Long: `Dump every project and record into a standalone SQLite database.

The export is a one-way snapshot for ad-hoc querying; the action log
remains the source of truth and is never written from the export.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := args[0]
			d, err := openDatabase(opts)
			if err != nil {
				return err
			}
			defer d.Close()

			projects := d.ListProjects()
			if err := export.ToSQLite(target, projects); err != nil {
				return WrapExitError(ExitCommandError, "exporting ledger", err)
			}

			paint := opts.painter()
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d project(s) to %s\n",
				paint(styleGood, "Exported"), len(projects), target)
			return nil
		},
	}
}
