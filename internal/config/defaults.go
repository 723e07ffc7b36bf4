package config

import (
	"github.com/knadh/koanf/providers/confmap"
)

const defaultNotesTemplate = `## Notes

> This is where your notes will go!`

func DefaultConfig() map[string]interface{} {
	return map[string]interface{}{
		"dir": "",
		"reminders": map[string]interface{}{
			"enabled":  true,
			"file":     ".reminders.yaml",
			"template": "",
		},
		"notes": map[string]interface{}{
			"enabled":  true,
			"template": defaultNotesTemplate,
		},
		"todo": map[string]interface{}{
			"template": "",
		},
		"pull_requests": map[string]interface{}{
			"enabled":  false,
			"base_url": "https://api.github.com",
			"timeout":  10, // seconds
			"template": "",
		},
		"jira": map[string]interface{}{
			"enabled":  false,
			"base_url": "",
			"timeout":  10, // seconds
			"template": "",
		},
	}
}

func NewDefaultProvider() *confmap.Confmap {
	return confmap.Provider(DefaultConfig(), ".")
}

func GetDefaultConfigPath() string {
	return "~/.journal.yaml"
}
