package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/devcompass/compass-cli/codeblock"
	"github.com/devcompass/compass-cli/display"
	"github.com/devcompass/compass-cli/export/markdown"
	"github.com/devcompass/compass-cli/llm"
	"github.com/devcompass/compass-cli/llm/service"
	"github.com/devcompass/compass-cli/model"
	"github.com/devcompass/compass-cli/redact"
	"github.com/devcompass/compass-cli/storage"
	"github.com/devcompass/compass-cli/theme"
	"github.com/spf13/cobra"
)

var (
	fixErrorMessage string
	fixLanguage     string
	fixCopy         bool
	fixRaw          bool
	fixRedact       bool
)

var fixCmd = &cobra.Command{
	Use:   "fix [file]",
	Short: "Ask the model to fix a piece of code",
	Args:  cobra.MaximumNArgs(1),
	Example: `
  compass fix # interactive mode
  compass fix main.go --error "index out of range [3] with length 3"
  cat script.py | compass fix - --lang python --copy
  `,
	Long: `
  Fix sends your code to the configured model and shows the original and the fixed
  code side by side. Use "-" to read the code from stdin.
  `,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		logger := loggerFromCtx(ctx).With("command", "fix")

		cfg, err := loadConfig()
		if err != nil {
			display.FatalErr(err)
		}

		ci := &model.CodeInfo{
			Language:     fixLanguage,
			ErrorMessage: fixErrorMessage,
		}
		if len(args) == 1 {
			code, err := readInput(args[0])
			if err != nil {
				display.FatalErr(err)
			}
			ci.Code = code
			if args[0] != "-" {
				ci.FileName = args[0]
				if ci.Language == "" {
					ci.Language = languageFromPath(args[0])
				}
			}
		} else {
			text := huh.NewText().Title("Paste the code compass should fix").Value(&ci.Code)
			errInput := huh.NewInput().Title("Error message (optional)").Value(&ci.ErrorMessage)
			form := huh.NewForm(huh.NewGroup(text, errInput)).WithTheme(theme.New())
			if err := form.Run(); err != nil {
				display.FatalErr(err)
			}
		}

		if fixRedact {
			if ci.Code, err = redact.Code(ci.Code); err != nil {
				display.FatalErr(err)
			}
		} else if redacted, n := redact.Secrets(ci.Code); n > 0 {
			logger.Debug("masked secrets", "count", n)
			display.Warn(fmt.Sprintf("Masked %d secret(s) before sending your code", n))
			ci.Code = redacted
		}

		prompt, err := llm.FixPrompt(ci)
		if errors.Is(err, llm.ErrEmptyInput) {
			display.FatalErr(errors.New("there is no code to fix"))
		} else if err != nil {
			display.FatalErrWithSupportCTA(err)
		}

		svc, err := service.New(ctx, cfg)
		if err != nil {
			display.FatalErr(err)
		}

		var response string
		var genErr error
		if err := withSpinner("Asking "+svc.Model()+" for a fix...", func() {
			response, genErr = svc.Generate(ctx, prompt)
		}); err != nil {
			display.FatalErr(err)
		}
		if genErr != nil {
			display.FatalErrWithSupportCTA(fmt.Errorf("error fixing code: %w", genErr))
		}
		logger.Debug("received response", "model", svc.Model(), "bytes", len(response))

		parsed := codeblock.Parse(response, prompt.ModelType)
		saveEntry(cfg, logger, &storage.Entry{
			Kind:     storage.KindFix,
			Model:    svc.Model(),
			Prompt:   ci.Code,
			Response: response,
			Parsed:   parsed,
		})

		r, err := newRenderer(cfg)
		if err != nil {
			display.FatalErr(err)
		}
		if fixRaw {
			err = r.Render(response)
		} else {
			err = r.Response(parsed)
		}
		if err != nil {
			display.FatalErr(err)
		}

		if !parsed.HasCodeBlocks {
			display.Warn("the model did not answer with any code")
			os.Exit(1)
		}
		if fixCopy && parsed.FixedCode != "" {
			if err := markdown.CopyCode(parsed.FixedCode); err != nil {
				display.Error(err)
				return
			}
			display.Success("Fixed code copied to clipboard")
		}
	},
}

func init() {
	rootCmd.AddCommand(fixCmd)
	fixCmd.Flags().StringVarP(&fixErrorMessage, "error", "e", "", "error message produced by the code")
	fixCmd.Flags().StringVarP(&fixLanguage, "lang", "l", "", "language of the code (guessed from the file extension by default)")
	fixCmd.Flags().BoolVarP(&fixCopy, "copy", "c", false, "copy the fixed code to the clipboard")
	fixCmd.Flags().BoolVar(&fixRaw, "raw", false, "print the model response without parsing it")
	fixCmd.Flags().BoolVar(&fixRedact, "redact", false, "review and redact the code before it is sent")
}
