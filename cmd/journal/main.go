// Command journal writes daily markdown pages and manages the reminders
// shown on them.
//
// Usage:
//
//	journal new "Planning day"
//	journal reminders new --every monday Water the plants
//	journal reminders list
//	journal reminders delete 2
//	journal reminders serve      # MCP tools on stdio
//	journal config show
//
// Environment:
//
//	JOURNAL__CONFIG      Configuration file (default: ~/.journal.yaml)
//	JOURNAL__<KEY>       Overrides a configuration key, "__" separates levels
//	JOURNAL_LOG_LEVEL    debug, info, warn or error (default: error)
package main

import (
	"os"

	"github.com/notexe/journal/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
