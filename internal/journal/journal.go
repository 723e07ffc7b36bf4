// Package journal manages the directory of daily markdown pages.
package journal

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// Entry is a previously written page.
type Entry struct {
	Path     string
	Markdown string
}

// Journal is a directory of pages named YYYY-MM-DD-title.md.
type Journal struct {
	dir    string
	logger *slog.Logger
}

func New(dir string, logger *slog.Logger) *Journal {
	if logger == nil {
		logger = slog.Default()
	}
	return &Journal{dir: dir, logger: logger}
}

// Dir returns the journal directory.
func (j *Journal) Dir() string {
	return j.dir
}

// LatestEntry returns the page that sorts last by file name, or nil when
// the journal has no pages yet. A missing directory is an empty journal.
func (j *Journal) LatestEntry() (*Entry, error) {
	dirEntries, err := os.ReadDir(j.dir)
	if errors.Is(err, fs.ErrNotExist) {
		j.logger.Info("journal directory does not exist yet", "dir", j.dir)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read journal directory: %w", err)
	}

	var names []string
	for _, e := range dirEntries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".md" {
			continue
		}
		names = append(names, e.Name())
	}

	if len(names) == 0 {
		j.logger.Info("no journal entries found", "dir", j.dir)
		return nil, nil
	}

	sort.Strings(names)
	path := filepath.Join(j.dir, names[len(names)-1])

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read journal entry: %w", err)
	}
	j.logger.Info("latest entry found", "path", path)

	return &Entry{Path: path, Markdown: string(data)}, nil
}

// AddEntry writes a page and returns its path.
func (j *Journal) AddEntry(name, markdown string) (string, error) {
	if err := os.MkdirAll(j.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create journal directory: %w", err)
	}

	path := filepath.Join(j.dir, name)
	if err := os.WriteFile(path, []byte(markdown), 0o644); err != nil {
		return "", fmt.Errorf("failed to write journal entry: %w", err)
	}
	return path, nil
}

var filenameNoise = regexp.MustCompile(`[()\[\]?']`)

// NormalizeFilename turns a page title into a file name fragment.
func NormalizeFilename(title string) string {
	lower := strings.ReplaceAll(strings.ToLower(title), " ", "-")
	return filenameNoise.ReplaceAllString(lower, "")
}

// EntryName returns the file name for a page written on date (YYYY-MM-DD).
func EntryName(date, title string) string {
	return fmt.Sprintf("%s-%s.md", date, NormalizeFilename(title))
}
