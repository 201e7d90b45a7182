package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	huhSpinner "github.com/charmbracelet/huh/spinner"
	"github.com/devcompass/compass-cli/config"
	"github.com/devcompass/compass-cli/display"
	"github.com/devcompass/compass-cli/idgen"
	"github.com/devcompass/compass-cli/storage"
	"golang.org/x/term"
)

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// withSpinner runs action behind a spinner when stdout is a terminal.
func withSpinner(title string, action func()) error {
	if !isTerminal(os.Stdout) {
		action()
		return nil
	}
	return huhSpinner.New().Title(title).Action(action).Run()
}

// readInput returns the content of path, or stdin when path is "-".
func readInput(path string) (string, error) {
	if path == "-" {
		bs, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(bs), nil
	}

	fi, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if fi.IsDir() {
		return "", fmt.Errorf("%s is a directory", path)
	}
	if fi.Size() == 0 {
		return "", fmt.Errorf("%s is empty", path)
	}
	bs, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(bs), nil
}

// languageFromPath guesses a fence language from a file extension.
func languageFromPath(path string) string {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case "go":
		return "go"
	case "py":
		return "python"
	case "sh", "bash":
		return "bash"
	case "js", "mjs", "cjs":
		return "javascript"
	case "ts", "tsx":
		return "typescript"
	case "rs":
		return "rust"
	case "java":
		return "java"
	case "rb":
		return "ruby"
	case "c", "h":
		return "c"
	case "cpp", "cc", "hpp":
		return "cpp"
	default:
		return ""
	}
}

func newRenderer(cfg *config.Config) (*display.Renderer, error) {
	return display.NewRenderer(os.Stdout, cfg.Style)
}

// saveEntry records an exchange in the history. Failing to save never fails
// the command.
func saveEntry(cfg *config.Config, logger *slog.Logger, entry *storage.Entry) {
	if entry.ID == "" {
		entry.ID = idgen.New(idgen.EntryPrefix)
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if err := storage.Default(cfg).Add(entry); err != nil {
		logger.Debug("failed to save history entry", "error", err)
		display.Warn("could not save this response to history")
		return
	}
	logger.Debug("saved history entry", "id", entry.ID)
}
