package cmd

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/devcompass/compass-cli/cmd/component"
	"github.com/devcompass/compass-cli/display"
	"github.com/devcompass/compass-cli/export/markdown"
	"github.com/devcompass/compass-cli/slice"
	"github.com/devcompass/compass-cli/storage"
	"github.com/spf13/cobra"
)

var (
	historyKind  string
	historyLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse the responses compass has saved",
	Long: `
  History lists saved responses, newest first. Press enter to show a response
  or x to export it to markdown.
  `,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		logger := loggerFromCtx(ctx).With("command", "history")

		cfg, err := loadConfig()
		if err != nil {
			display.FatalErr(err)
		}

		entries, err := storage.Default(cfg).Entries()
		if err != nil {
			display.FatalErr(err)
		}
		if historyKind != "" {
			kind := storage.Kind(historyKind)
			entries = slice.Filter(entries, func(e *storage.Entry) bool { return e.Kind == kind })
		}
		if historyLimit > 0 && len(entries) > historyLimit {
			entries = entries[:historyLimit]
		}
		if len(entries) == 0 {
			display.Info("Nothing saved yet. Try `compass fix` or `compass chat`.")
			return
		}

		if !isTerminal(os.Stdout) {
			for _, e := range entries {
				fmt.Fprintf(os.Stdout, "%s\t%s\t%s\t%s\n", e.ID, e.Kind, e.CreatedAt.Local().Format("2006-01-02 15:04"), summary(e.Prompt))
			}
			return
		}

		items := slice.Map(entries, func(e *storage.Entry) component.ListItem {
			return component.ListItem{
				ID:              e.ID,
				TitleText:       summary(e.Prompt),
				DescriptionText: fmt.Sprintf("%s · %s", e.Kind, e.CreatedAt.Local().Format("Jan 2 15:04")),
			}
		})

		m, err := tea.NewProgram(component.NewListModel(items, "Saved responses"), tea.WithOutput(os.Stdout)).Run()
		if err != nil {
			logger.Debug("history list failed", "error", err)
			display.FatalErr(err)
		}
		id, export := m.(component.ListModel).Selected()
		if id == "" {
			return
		}

		var selected *storage.Entry
		for _, e := range entries {
			if e.ID == id {
				selected = e
				break
			}
		}
		if selected == nil {
			display.FatalErr(fmt.Errorf("%w: %s", storage.ErrNotFound, id))
		}

		if export {
			if err := exportEntry(cmd, selected); err != nil {
				display.FatalErr(err)
			}
			return
		}

		var buf bytes.Buffer
		if err := markdown.NewService("", false).Render(&buf, selected); err != nil {
			display.FatalErr(err)
		}
		r, err := newRenderer(cfg)
		if err != nil {
			display.FatalErr(err)
		}
		if err := r.Render(buf.String()); err != nil {
			display.FatalErr(err)
		}
	},
}

// summary returns the first line of s, shortened for a one line listing.
func summary(s string) string {
	const maxLen = 60
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if r := []rune(s); len(r) > maxLen {
		return string(r[:maxLen-1]) + "…"
	}
	return s
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().StringVar(&historyKind, "kind", "", "only show entries of this kind: fix, chat or learn")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "show at most n entries")
	historyCmd.Flags().StringVar(&exportDir, "dir", "", "directory exported files are written to")
	historyCmd.Flags().BoolVarP(&exportCopy, "copy", "c", false, "copy the fixed code of exported entries to the clipboard")
}
