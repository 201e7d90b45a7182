package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/devcompass/compass-cli/display"
	"github.com/devcompass/compass-cli/llm"
	"github.com/devcompass/compass-cli/llm/service"
	"github.com/devcompass/compass-cli/model"
	"github.com/devcompass/compass-cli/storage"
	"github.com/devcompass/compass-cli/theme"
	"github.com/spf13/cobra"
)

var learnLevel string

var learnCmd = &cobra.Command{
	Use:   "learn [topic]",
	Short: "Get a step by step learning path for a topic",
	Example: `
  compass learn kubernetes operators --level intermediate
  `,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		logger := loggerFromCtx(ctx).With("command", "learn")

		cfg, err := loadConfig()
		if err != nil {
			display.FatalErr(err)
		}

		li := &model.LearningPathInfo{
			Topic: strings.Join(args, " "),
			Level: learnLevel,
		}
		if li.Topic == "" {
			topic := huh.NewInput().Title("What do you want to learn?").Value(&li.Topic)
			level := huh.NewSelect[string]().
				Title("Your level").
				Options(huh.NewOptions("beginner", "intermediate", "advanced")...).
				Value(&li.Level)
			if err := huh.NewForm(huh.NewGroup(topic, level)).WithTheme(theme.New()).Run(); err != nil {
				display.FatalErr(err)
			}
		}

		prompt, err := llm.LearningPathPrompt(li)
		if errors.Is(err, llm.ErrEmptyInput) {
			display.FatalErr(errors.New("the topic is empty"))
		} else if err != nil {
			display.FatalErrWithSupportCTA(err)
		}

		svc, err := service.New(ctx, cfg)
		if err != nil {
			display.FatalErr(err)
		}

		var response string
		var genErr error
		if err := withSpinner("Planning your learning path...", func() {
			response, genErr = svc.Generate(ctx, prompt)
		}); err != nil {
			display.FatalErr(err)
		}
		if genErr != nil {
			display.FatalErrWithSupportCTA(fmt.Errorf("error generating learning path: %w", genErr))
		}
		logger.Debug("received response", "model", svc.Model(), "bytes", len(response))

		saveEntry(cfg, logger, &storage.Entry{
			Kind:     storage.KindLearn,
			Model:    svc.Model(),
			Prompt:   li.Topic,
			Response: response,
		})

		r, err := newRenderer(cfg)
		if err != nil {
			display.FatalErr(err)
		}
		if err := r.Render(response); err != nil {
			display.FatalErr(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(learnCmd)
	learnCmd.Flags().StringVar(&learnLevel, "level", "beginner", "your current level: beginner, intermediate or advanced")
}
