package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/devcompass/compass-cli/codeblock"
	"github.com/devcompass/compass-cli/display"
	"github.com/devcompass/compass-cli/export/markdown"
	"github.com/devcompass/compass-cli/llm"
	"github.com/devcompass/compass-cli/llm/service"
	"github.com/devcompass/compass-cli/model"
	"github.com/devcompass/compass-cli/storage"
	"github.com/devcompass/compass-cli/theme"
	"github.com/spf13/cobra"
)

var chatCopy bool

var chatCmd = &cobra.Command{
	Use:   "chat [question]",
	Short: "Ask the model a programming question",
	Example: `
  compass chat "how do I read a file line by line in go?"
  compass chat # interactive mode
  `,
	Long: `
  Chat streams the model's answer to your terminal as it arrives.
  Use --copy to put the first code block of the answer on the clipboard.
  `,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		logger := loggerFromCtx(ctx).With("command", "chat")

		cfg, err := loadConfig()
		if err != nil {
			display.FatalErr(err)
		}

		qi := &model.QuestionInfo{Question: strings.Join(args, " ")}
		if qi.Question == "" {
			text := huh.NewText().Title("What do you want to ask?").Value(&qi.Question)
			if err := huh.NewForm(huh.NewGroup(text)).WithTheme(theme.New()).Run(); err != nil {
				display.FatalErr(err)
			}
		}

		prompt, err := llm.ChatPrompt(qi)
		if errors.Is(err, llm.ErrEmptyInput) {
			display.FatalErr(errors.New("the question is empty"))
		} else if err != nil {
			display.FatalErrWithSupportCTA(err)
		}

		svc, err := service.New(ctx, cfg)
		if err != nil {
			display.FatalErr(err)
		}

		stream, err := svc.Stream(ctx, prompt)
		if err != nil {
			display.FatalErrWithSupportCTA(fmt.Errorf("error asking question: %w", err))
		}
		response, err := llm.ReadAll(stream, os.Stdout)
		fmt.Fprintln(os.Stdout)
		if err != nil {
			display.FatalErrWithSupportCTA(fmt.Errorf("error reading answer: %w", err))
		}
		logger.Debug("received response", "model", svc.Model(), "bytes", len(response))

		saveEntry(cfg, logger, chatEntry(svc.Model(), qi.Question, prompt, response))

		if !chatCopy {
			return
		}
		blocks := codeblock.Blocks(response)
		if len(blocks) == 0 {
			display.Warn("the answer has no code to copy")
			return
		}
		if err := markdown.CopyCode(blocks[0].Body); err != nil {
			display.Error(err)
			return
		}
		display.Success("Code copied to clipboard")
	},
}

// chatEntry builds the history entry for an answer. The answer is parsed with
// the prompt's model type, so general answers keep no parsed code.
func chatEntry(modelName, question string, prompt *llm.Prompt, response string) *storage.Entry {
	return &storage.Entry{
		Kind:     storage.KindChat,
		Model:    modelName,
		Prompt:   question,
		Response: response,
		Parsed:   codeblock.Parse(response, prompt.ModelType),
	}
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().BoolVarP(&chatCopy, "copy", "c", false, "copy the first code block of the answer to the clipboard")
}
