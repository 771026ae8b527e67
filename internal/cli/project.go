package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/worklabs/worklog/internal/db"
)

// NewProjectCommand creates the project management command group.
func NewProjectCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}
	cmd.AddCommand(newProjectAddCommand(opts))
	cmd.AddCommand(newProjectRmCommand(opts))
	return cmd
}

func newProjectAddCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Create a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			d, err := openDatabase(opts)
			if err != nil {
				return err
			}
			defer d.Close()

			p, err := d.AddProject(name)
			if errors.Is(err, db.ErrEmptyName) {
				return WrapExitError(ExitFailure, "project name cannot be empty", err)
			}
			if errors.Is(err, db.ErrProjectExists) {
				return WrapExitError(ExitFailure, fmt.Sprintf("project %q already exists", name), err)
			}
			if err != nil {
				return WrapExitError(ExitCommandError, "creating project", err)
			}

			paint := opts.painter()
			fmt.Fprintf(cmd.OutOrStdout(), "%s project %q\n", paint(styleGood, "Created"), p.Name())
			return nil
		},
	}
}

func newProjectRmCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <name>",
		Short: "Delete a project and all its records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			d, err := openDatabase(opts)
			if err != nil {
				return err
			}
			defer d.Close()

			p, err := d.RemoveProject(name)
			if errors.Is(err, db.ErrProjectNotFound) {
				return WrapExitError(ExitFailure, fmt.Sprintf("no project named %q", name), err)
			}
			if err != nil {
				return WrapExitError(ExitCommandError, "removing project", err)
			}

			paint := opts.painter()
			fmt.Fprintf(cmd.OutOrStdout(), "%s project %q\n", paint(styleWarn, "Removed"), p.Name())
			return nil
		},
	}
}
