package page

const (
	DefaultNotesTemplate = "## Notes\n\n> This is where your notes will go!"

	DefaultTodoTemplate = "## TODOs\n\n{{range .Todos}}{{.}}{{end}}"

	DefaultPullRequestTemplate = "## Pull Requests\n\n" +
		"{{range .PullRequests}}* [ ] {{.Title}} on [{{.Repo}}]({{.URL}}) by {{.Author}}\n{{end}}"

	DefaultTaskTemplate = "## Open tasks\n\n{{range .Tasks}}* [ ] {{.Summary}} [here]({{.Href}})\n{{end}}"

	DefaultReminderTemplate = "## Your reminders for today:\n\n{{range .Reminders}}* [ ] {{.}}\n{{end}}"

	headerTemplate = "# {{.Title}} on {{.Date}}"
)
