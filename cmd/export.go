package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/devcompass/compass-cli/cmd/browser"
	"github.com/devcompass/compass-cli/display"
	"github.com/devcompass/compass-cli/export/markdown"
	"github.com/devcompass/compass-cli/storage"
	"github.com/spf13/cobra"
)

var (
	exportDir  string
	exportCopy bool
	exportOpen bool
)

var exportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Export a saved response to a markdown file",
	Example: `
  compass export entry-3f0c2a4e-8d7b-4b1e-9a55-5f2d1c0e9b71 --open
  compass history # press x on an entry to export it
  `,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		logger := loggerFromCtx(ctx).With("command", "export")

		cfg, err := loadConfig()
		if err != nil {
			display.FatalErr(err)
		}

		entry, err := storage.Default(cfg).ByID(args[0])
		if errors.Is(err, storage.ErrNotFound) {
			display.FatalErr(fmt.Errorf("no saved response with id %s", args[0]), "run `compass history` to list saved responses")
		} else if err != nil {
			display.FatalErr(err)
		}

		if err := exportEntry(cmd, entry); err != nil {
			logger.Debug("export failed", "id", entry.ID, "error", err)
			display.FatalErr(err)
		}
	},
}

func exportEntry(cmd *cobra.Command, entry *storage.Entry) error {
	dir := exportDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		dir = wd
	}

	mdSvc := markdown.NewService(dir, exportCopy)
	path, err := mdSvc.ToMarkdownFile(cmd.Context(), entry)
	if path == "" {
		return err
	}
	display.Success("Exported to " + path)
	if err != nil {
		display.Error(err)
	} else if exportCopy && entry.Parsed != nil && entry.Parsed.FixedCode != "" {
		display.Info("Fixed code copied to clipboard")
	}

	if exportOpen {
		return browser.Open(path)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.PersistentFlags().StringVar(&exportDir, "dir", "", "directory to write the markdown file to (default is the current directory)")
	exportCmd.PersistentFlags().BoolVarP(&exportCopy, "copy", "c", false, "copy the fixed code to the clipboard")
	exportCmd.PersistentFlags().BoolVar(&exportOpen, "open", false, "open the exported file")
}
