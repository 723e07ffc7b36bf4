package cli

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

var errNoEditor = errors.New("neither $VISUAL nor $EDITOR is set")

// openInEditor runs $VISUAL, or $EDITOR, on path attached to the terminal.
// The variable may carry arguments, e.g. "code --wait".
func openInEditor(path string) error {
	editor := os.Getenv("VISUAL")
	if strings.TrimSpace(editor) == "" {
		editor = os.Getenv("EDITOR")
	}
	fields := strings.Fields(editor)
	if len(fields) == 0 {
		return errNoEditor
	}

	cmd := exec.Command(fields[0], append(fields[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open %s in %s: %w", path, fields[0], err)
	}
	return nil
}
