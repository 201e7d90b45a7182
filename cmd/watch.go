package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/devcompass/compass-cli/codeblock"
	"github.com/devcompass/compass-cli/display"
	"github.com/devcompass/compass-cli/watch"
	"github.com/spf13/cobra"
)

var (
	watchModelType string
	watchDebounce  = watch.DefaultDebounce
)

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Re-parse a response file every time it changes",
	Example: `
  compass watch response.md
  `,
	Long: `
  Watch prints the parsed response in file and prints it again every time the
  file is saved. Stop it with ctrl+c.
  `,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		logger := loggerFromCtx(ctx).With("command", "watch", "file", args[0])

		cfg, err := loadConfig()
		if err != nil {
			display.FatalErr(err)
		}
		mt := codeblock.ModelType(watchModelType)

		r, err := newRenderer(cfg)
		if err != nil {
			display.FatalErr(err)
		}

		clearScreen := isTerminal(os.Stdout)
		err = watch.File(ctx, args[0], watchDebounce, func(content string) {
			logger.Debug("file changed", "bytes", len(content))
			if clearScreen {
				fmt.Fprint(os.Stdout, "\033[H\033[2J")
			}
			parsed := codeblock.Parse(content, mt)
			if parsed == nil {
				parsed = &codeblock.ParsedCodeResponse{Explanation: content}
			}
			if err := r.Response(parsed); err != nil {
				display.Error(err)
			}
		})
		if err != nil {
			display.FatalErr(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVarP(&watchModelType, "model", "m", string(codeblock.ModelTypeCodeFixer), "model type that produced the response: general or code-fixer")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watch.DefaultDebounce, "how long to wait for writes to settle")
}
