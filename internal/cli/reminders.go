package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/notexe/journal/internal/reminder"
)

const remindersDisabled = "No reminder configuration set. Please add it first"

func (a *app) remindersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "reminders",
		Aliases: []string{"reminder"},
		Short:   "Manage reminders shown on journal pages",
	}

	cmd.AddCommand(a.reminderNewCmd())
	cmd.AddCommand(a.reminderListCmd())
	cmd.AddCommand(a.reminderDeleteCmd())
	cmd.AddCommand(a.reminderServeCmd())

	return cmd
}

// enabled prints the disabled notice when reminders are switched off.
func (a *app) enabled(cmd *cobra.Command) bool {
	if a.cfg.Reminders.Enabled {
		return true
	}
	a.println(cmd, a.formatter.FormatInfo(remindersDisabled))
	return false
}

func (a *app) reminderNewCmd() *cobra.Command {
	var on, every string

	cmd := &cobra.Command{
		Use:   "new (--on EXPR | --every EXPR) [MESSAGE...]",
		Short: "Add a reminder",
		Long: `Add a reminder that is either due once or recurs.

  --on Monday        the next Monday after today
  --on 24.Dec        the next 24th of December, today included
  --on 24.Dec.2025   exactly that date
  --every Monday     every Monday
  --every 3.days     every third day, starting today
  --every 2.weeks    every second week, starting today

The message is read interactively when it is not given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.enabled(cmd) {
				return nil
			}

			mode, expr := reminder.OnceMode, on
			if every != "" {
				mode, expr = reminder.RecurringMode, every
			}

			if _, err := reminder.Parse(expr, mode, a.opts.Clock.Today()); err != nil {
				return err
			}

			message := strings.Join(args, " ")
			if strings.TrimSpace(message) == "" {
				var err error
				message, err = a.opts.Prompt("Reminder: ")
				if err != nil {
					return fmt.Errorf("failed to read reminder message: %w", err)
				}
			}

			r, err := a.reminderService().New(mode, expr, message)
			if err != nil {
				return err
			}
			a.println(cmd, a.formatter.FormatSuccess(fmt.Sprintf("Added reminder %q (%s)", r.Message, reminder.Render(r.Schedule))))
			return nil
		},
	}

	cmd.Flags().StringVar(&on, "on", "", "Date or weekday the reminder is due once")
	cmd.Flags().StringVar(&every, "every", "", "Weekday or interval the reminder recurs on")
	cmd.MarkFlagsOneRequired("on", "every")
	cmd.MarkFlagsMutuallyExclusive("on", "every")

	return cmd
}

func (a *app) reminderListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List reminders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.enabled(cmd) {
				return nil
			}

			entries, err := a.reminderService().List()
			if err != nil {
				return err
			}
			a.println(cmd, a.formatter.FormatReminderTable(entries))
			return nil
		},
	}
}

func (a *app) reminderDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete INDEX",
		Short: "Delete the reminder with the number shown by list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.enabled(cmd) {
				return nil
			}

			index, err := strconv.Atoi(args[0])
			if err != nil {
				return &reminder.ValidationError{Field: "index", Value: args[0]}
			}

			removed, err := a.reminderService().Delete(index)
			if err != nil {
				return err
			}
			a.println(cmd, a.formatter.FormatSuccess(fmt.Sprintf("Removed reminder %d: %s", index, removed.Message)))
			return nil
		},
	}
}

func (a *app) reminderServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the reminder tools over MCP on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.enabled(cmd) {
				return nil
			}

			a.opts.Logger.Info("serving reminders over MCP", "path", a.cfg.ReminderPath())
			return reminder.NewServer(a.reminderService()).ServeStdio()
		},
	}
}
