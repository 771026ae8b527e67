// Package cli implements the worklog command line. It consumes the
// database only through its public operations; everything rendered here
// (durations, tables, colors) stays outside the storage core.
package cli

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/worklabs/worklog/internal/config"
	"github.com/worklabs/worklog/internal/db"
	"github.com/worklabs/worklog/internal/store"
)

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	Dir     string
	Verbose bool
	NoColor bool

	// Clock overrides the database clock (for testing). Nil means wall
	// clock.
	Clock db.Clock
}

// NewRootCommand creates the worklog root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "worklog",
		Short:         "worklog traces where all that time goes",
		Long:          "worklog is a single-binary time tracker backed by an append-only action log.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logLevel := slog.LevelWarn
			if opts.Verbose {
				logLevel = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: logLevel,
			})))
			return opts.resolve()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Dir, "dir", "", "data directory (default ~/"+config.DefaultDirName+")")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().BoolVar(&opts.NoColor, "no-color", false, "disable styled output")

	cmd.AddCommand(NewProjectCommand(opts))
	cmd.AddCommand(NewStartCommand(opts))
	cmd.AddCommand(NewStopCommand(opts))
	cmd.AddCommand(NewStatusCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))

	return cmd
}

// resolve layers the config file under the flags: an explicit --dir
// wins, then the config file's dir, then the default. The config file
// always lives in the default directory so it can be found before any
// relocation it requests.
func (o *RootOptions) resolve() error {
	cfg, err := config.Load(filepath.Join(config.Default().Dir, config.FileName))
	if err != nil {
		return WrapExitError(ExitCommandError, "loading config", err)
	}
	if o.Dir == "" {
		o.Dir = cfg.Dir
	}
	if !cfg.Color {
		o.NoColor = true
	}
	return nil
}

// now reads the same clock the database uses, so views and stored
// records agree on the current instant.
func (o *RootOptions) now() time.Time {
	if o.Clock != nil {
		return o.Clock.Now()
	}
	return time.Now()
}

// openDatabase creates the data directory if needed and opens the
// database in it, mapping storage failures to exit codes the shell can
// distinguish.
func openDatabase(opts *RootOptions) (*db.Database, error) {
	if err := os.MkdirAll(opts.Dir, 0o700); err != nil {
		return nil, WrapExitError(ExitCommandError, "creating data directory", err)
	}

	clock := opts.Clock
	if clock == nil {
		clock = db.WallClock{}
	}
	d, err := db.OpenWithClock(opts.Dir, clock)
	switch {
	case err == nil:
		return d, nil
	case errors.Is(err, store.ErrAlreadyLocked):
		return nil, WrapExitError(ExitCommandError, "another worklog command is already running against "+opts.Dir, err)
	case errors.Is(err, store.ErrNotADirectory):
		return nil, WrapExitError(ExitCommandError, "data location is not a directory", err)
	case errors.Is(err, db.ErrCorruptLog):
		return nil, WrapExitError(ExitCommandError, "cannot rebuild state from the action log", err)
	default:
		return nil, WrapExitError(ExitCommandError, "cannot access storage at "+opts.Dir, err)
	}
}
