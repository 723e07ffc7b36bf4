package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/notexe/journal/internal/github"
	"github.com/notexe/journal/internal/jira"
	"github.com/notexe/journal/internal/journal"
	"github.com/notexe/journal/internal/page"
	"github.com/notexe/journal/internal/reminder"
	"github.com/notexe/journal/internal/ui"
)

func (a *app) newCmd() *cobra.Command {
	var toStdout, preview, open bool

	cmd := &cobra.Command{
		Use:   "new TITLE",
		Short: "Write today's journal page",
		Long: `Compose today's page and store it as <dir>/<YYYY-MM-DD>-<title>.md.

The page starts with the title and date, followed by the enabled sections:
notes, the open TODOs of the previous page, open pull requests, open Jira
tasks and the reminders due today. With --open the written page is handed
to $VISUAL or $EDITOR.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := args[0]
			today := a.opts.Clock.Today()
			j := journal.New(a.cfg.Dir, a.opts.Logger)

			composer, err := a.composer(j)
			if err != nil {
				return err
			}

			var spinner *ui.Spinner
			if (composer.PullRequests != nil || composer.Jira != nil) && !toStdout {
				spinner = ui.NewSpinner(cmd.ErrOrStderr(), a.formatter.Colored())
				spinner.Start("Fetching pull requests and tasks...")
			}
			markdown, err := composer.Compose(cmd.Context(), page.Input{Title: title, Date: today})
			if spinner != nil {
				spinner.Stop()
			}
			if err != nil {
				return err
			}

			switch {
			case preview:
				a.println(cmd, a.formatter.RenderMarkdown(markdown))
				return nil
			case toStdout:
				fmt.Fprint(cmd.OutOrStdout(), markdown)
				return nil
			}

			path, err := j.AddEntry(journal.EntryName(today.Format(reminder.DateLayout), title), markdown)
			if err != nil {
				return err
			}
			a.println(cmd, a.formatter.FormatSuccess("Created "+path))

			if open {
				return a.opts.Open(path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&toStdout, "stdout", "s", false, "Print the page instead of writing it")
	cmd.Flags().BoolVar(&preview, "preview", false, "Render the page in the terminal instead of writing it")
	cmd.Flags().BoolVar(&open, "open", false, "Open the written page in $VISUAL or $EDITOR")
	cmd.MarkFlagsMutuallyExclusive("stdout", "preview", "open")

	return cmd
}

func (a *app) composer(entries page.EntrySource) (*page.Composer, error) {
	cfg := a.cfg
	composer := &page.Composer{
		Todo:   page.TodoSection{Template: cfg.Todo.Template, Entries: entries},
		Logger: a.opts.Logger,
	}

	if cfg.Notes.Enabled {
		composer.Notes = &page.NotesSection{Template: cfg.Notes.Template}
	}

	if cfg.PullRequests.Enabled {
		client, err := github.NewClient(github.Config{
			BaseURL: cfg.PullRequests.BaseURL,
			Token:   cfg.PullRequests.Auth.PersonalAccessToken,
			Timeout: cfg.FetchTimeout(),
			Logger:  a.opts.Logger,
		})
		if err != nil {
			return nil, &ConfigError{Err: err}
		}

		selectors := make([]github.Selector, 0, len(cfg.PullRequests.Select))
		for _, s := range cfg.PullRequests.Select {
			selectors = append(selectors, github.Selector{Repo: s.Repo, Authors: s.Authors, Labels: s.Labels})
		}
		composer.PullRequests = &page.PullRequestSection{
			Template:  cfg.PullRequests.Template,
			Timeout:   cfg.FetchTimeout(),
			Selectors: selectors,
			Source:    client,
		}
	}

	if cfg.Jira.Enabled {
		client, err := jira.NewClient(jira.Config{
			BaseURL: cfg.Jira.BaseURL,
			User:    cfg.Jira.Auth.User,
			Token:   cfg.Jira.Auth.PersonalAccessToken,
			Timeout: cfg.JiraTimeout(),
			Logger:  a.opts.Logger,
		})
		if err != nil {
			return nil, &ConfigError{Err: err}
		}
		composer.Jira = &page.JiraSection{
			Template: cfg.Jira.Template,
			Timeout:  cfg.JiraTimeout(),
			Query:    cfg.Jira.Query,
			Source:   client,
		}
	}

	if cfg.Reminders.Enabled {
		composer.Reminders = &page.ReminderSection{
			Template: cfg.Reminders.Template,
			Source:   a.reminderService(),
		}
	}

	return composer, nil
}
