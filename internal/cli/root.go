// Package cli wires the journal commands.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/notexe/journal/internal/config"
	"github.com/notexe/journal/internal/reminder"
	"github.com/notexe/journal/internal/ui"
)

// Version is set at build time with -ldflags "-X ...cli.Version=...".
var Version = "dev"

const rootLong = `journal writes one markdown page per day into a directory.

Each new page carries over the open TODOs of the previous page and can list
open pull requests, open Jira tasks and the reminders due today.

Exit codes:
  0  success
  1  generic or usage error
  2  reminder date or recurrence could not be parsed
  3  invalid input (empty message, bad interval)
  4  reminder number out of range
  5  reminder store could not be read or written
  6  configuration error`

// Options configures a command tree. Zero values fall back to the process
// defaults.
type Options struct {
	Out     io.Writer
	Err     io.Writer
	Clock   reminder.Clock
	Logger  *slog.Logger
	Colored bool

	// Prompt asks for a line of input when a command needs one that was not
	// passed as an argument.
	Prompt func(prompt string) (string, error)

	// Open hands a freshly written page to the user's editor.
	Open func(path string) error
}

type app struct {
	opts      Options
	noColor   bool
	cfg       *config.Config
	formatter *ui.Formatter
}

// NewRootCmd builds the journal command tree.
func NewRootCmd(opts Options) *cobra.Command {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	if opts.Clock == nil {
		opts.Clock = reminder.SystemClock{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Prompt == nil {
		opts.Prompt = readLine
	}
	if opts.Open == nil {
		opts.Open = openInEditor
	}

	a := &app{opts: opts, formatter: ui.NewFormatter(opts.Colored)}

	root := &cobra.Command{
		Use:               "journal",
		Short:             "Daily markdown journal with reminders",
		Long:              rootLong,
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetOut(opts.Out)
	root.SetErr(opts.Err)
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable colored output")

	root.AddCommand(a.newCmd())
	root.AddCommand(a.remindersCmd())
	root.AddCommand(a.configCmd())

	return root
}

// setup loads and validates the configuration before any subcommand runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	a.formatter = ui.NewFormatter(a.opts.Colored && !a.noColor)

	path := config.ResolvePath()
	cfg, err := config.Load(path)
	if err != nil {
		return &ConfigError{Err: err}
	}
	if err := cfg.Validate(); err != nil {
		return &ConfigError{Err: fmt.Errorf("invalid configuration in %s: %w", path, err)}
	}

	a.cfg = cfg
	a.opts.Logger.Debug("configuration loaded", "path", path, "dir", cfg.Dir)
	return nil
}

func (a *app) reminderService() *reminder.Service {
	return reminder.NewService(a.cfg.ReminderPath(), a.opts.Clock, a.opts.Logger)
}

func (a *app) println(cmd *cobra.Command, s string) {
	fmt.Fprintln(cmd.OutOrStdout(), s)
}

// Execute runs the command line of the current process and returns its exit
// code.
func Execute() int {
	logger := NewLogger(os.Stderr, os.Getenv(LogLevelEnv))
	slog.SetDefault(logger)

	colored := os.Getenv("NO_COLOR") == ""
	root := NewRootCmd(Options{
		Out:     os.Stdout,
		Err:     os.Stderr,
		Clock:   reminder.SystemClock{},
		Logger:  logger,
		Colored: colored,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, ui.NewFormatter(colored).FormatError(err))
	}
	return ExitCode(err)
}
