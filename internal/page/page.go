// Package page composes the markdown for a new journal page.
package page

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"text/template"
	"time"

	"github.com/notexe/journal/internal/github"
	"github.com/notexe/journal/internal/jira"
	"github.com/notexe/journal/internal/journal"
	"github.com/notexe/journal/internal/reminder"
	"github.com/notexe/journal/internal/todo"
)

// EntrySource yields the page written before this one.
type EntrySource interface {
	LatestEntry() (*journal.Entry, error)
}

// PullRequestSource fetches the pull requests matching the configured
// selectors.
type PullRequestSource interface {
	Fetch(ctx context.Context, selectors []github.Selector) ([]github.PullRequest, error)
}

// TaskSource searches issues matching a set of query fields.
type TaskSource interface {
	Search(ctx context.Context, query map[string]string) ([]jira.Task, error)
}

// ReminderSource reports the reminder messages due on a date.
type ReminderSource interface {
	DueOn(date time.Time) ([]string, error)
}

type NotesSection struct {
	Template string
}

type TodoSection struct {
	Template string
	Entries  EntrySource
}

type PullRequestSection struct {
	Template  string
	Timeout   time.Duration
	Selectors []github.Selector
	Source    PullRequestSource
}

type JiraSection struct {
	Template string
	Timeout  time.Duration
	Query    map[string]string
	Source   TaskSource
}

type ReminderSection struct {
	Template string
	Source   ReminderSource
}

// Composer renders pages. Nil sections are left out of the page, except
// TODOs which are carried over whenever Todo.Entries is set.
type Composer struct {
	Notes        *NotesSection
	Todo         TodoSection
	PullRequests *PullRequestSection
	Jira         *JiraSection
	Reminders    *ReminderSection
	Logger       *slog.Logger
}

type Input struct {
	Title string
	Date  time.Time
}

type pullRequestView struct {
	Number int
	Title  string
	Repo   string
	URL    string
	Author string
}

type sectionData struct {
	Title        string
	Date         string
	Todos        []string
	PullRequests []pullRequestView
	Tasks        []jira.Task
	Reminders    []string
}

// Compose renders the page for in. Sections are separated by one blank line
// and the page ends with a newline. A failing pull request or Jira fetch is
// logged and the section omitted; every other failure is returned.
func (c *Composer) Compose(ctx context.Context, in Input) (string, error) {
	logger := c.Logger
	if logger == nil {
		logger = slog.Default()
	}

	data := sectionData{
		Title: in.Title,
		Date:  in.Date.Format(reminder.DateLayout),
	}

	header, err := render("header", headerTemplate, data)
	if err != nil {
		return "", err
	}
	sections := []string{header}

	if c.Notes != nil {
		notes, err := render("notes", orDefault(c.Notes.Template, DefaultNotesTemplate), data)
		if err != nil {
			return "", err
		}
		sections = append(sections, notes)
	}

	if c.Todo.Entries != nil {
		latest, err := c.Todo.Entries.LatestEntry()
		if err != nil {
			return "", fmt.Errorf("failed to read previous entry: %w", err)
		}
		if latest != nil {
			data.Todos = todo.FindOpen(latest.Markdown)
		}
		todos, err := render("todos", orDefault(c.Todo.Template, DefaultTodoTemplate), data)
		if err != nil {
			return "", err
		}
		sections = append(sections, todos)
	}

	if c.PullRequests != nil && c.PullRequests.Source != nil {
		pulls, err := c.fetchPullRequests(ctx)
		if err != nil {
			logger.Warn("skipping pull requests section", "error", err)
		} else {
			data.PullRequests = pulls
			section, err := render("pull_requests", orDefault(c.PullRequests.Template, DefaultPullRequestTemplate), data)
			if err != nil {
				return "", err
			}
			sections = append(sections, section)
		}
	}

	if c.Jira != nil && c.Jira.Source != nil {
		tasks, err := c.searchTasks(ctx)
		if err != nil {
			logger.Warn("skipping open tasks section", "error", err)
		} else {
			data.Tasks = tasks
			section, err := render("tasks", orDefault(c.Jira.Template, DefaultTaskTemplate), data)
			if err != nil {
				return "", err
			}
			sections = append(sections, section)
		}
	}

	if c.Reminders != nil && c.Reminders.Source != nil {
		due, err := c.Reminders.Source.DueOn(in.Date)
		if err != nil {
			return "", err
		}
		if len(due) > 0 {
			data.Reminders = due
			section, err := render("reminders", orDefault(c.Reminders.Template, DefaultReminderTemplate), data)
			if err != nil {
				return "", err
			}
			sections = append(sections, section)
		}
	}

	return strings.Join(sections, "\n\n") + "\n", nil
}

func (c *Composer) fetchPullRequests(ctx context.Context) ([]pullRequestView, error) {
	if c.PullRequests.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.PullRequests.Timeout)
		defer cancel()
	}

	pulls, err := c.PullRequests.Source.Fetch(ctx, c.PullRequests.Selectors)
	if err != nil {
		return nil, err
	}

	views := make([]pullRequestView, 0, len(pulls))
	for _, pr := range pulls {
		views = append(views, pullRequestView{
			Number: pr.Number,
			Title:  pr.Title,
			Repo:   pr.Base.Repo.FullName,
			URL:    pr.HTMLURL,
			Author: pr.User.Login,
		})
	}
	return views, nil
}

func (c *Composer) searchTasks(ctx context.Context) ([]jira.Task, error) {
	if c.Jira.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Jira.Timeout)
		defer cancel()
	}
	return c.Jira.Source.Search(ctx, c.Jira.Query)
}

func render(name, text string, data sectionData) (string, error) {
	tmpl, err := template.New(name).Parse(text)
	if err != nil {
		return "", fmt.Errorf("invalid %s template: %w", name, err)
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return strings.TrimSpace(b.String()), nil
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
