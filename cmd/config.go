package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/devcompass/compass-cli/config"
	"github.com/devcompass/compass-cli/display"
	"github.com/devcompass/compass-cli/theme"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Choose the model provider, model and API key compass uses",
	Run: func(cmd *cobra.Command, args []string) {
		logger := loggerFromCtx(cmd.Context()).With("command", "config")

		cfg, err := loadConfig()
		if errors.Is(err, config.ErrInvalidConfig) {
			// start over from the defaults when the existing file is unusable
			display.Warn(err.Error())
			path := cfgFile
			if path == "" {
				path = config.DefaultConfigFilePath
			}
			cfg = config.Default(path)
		} else if err != nil {
			display.FatalErr(err)
		}

		if cfg.Model == config.DefaultModel(cfg.Provider) {
			cfg.Model = ""
		}

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Provider").
					Options(
						huh.NewOption("Google Gemini", config.ProviderGemini),
						huh.NewOption("OpenAI or an OpenAI compatible server", config.ProviderOpenAI),
					).
					Value(&cfg.Provider),
			),
			huh.NewGroup(
				huh.NewInput().Title("Model").Placeholder("leave empty for the provider default").Value(&cfg.Model),
				huh.NewInput().Title("API key").Password(true).Value(&cfg.APIKey),
				huh.NewInput().Title("Base URL (optional)").Value(&cfg.BaseURL),
				huh.NewSelect[string]().
					Title("Markdown style").
					Options(huh.NewOptions("auto", "dark", "light", "notty")...).
					Value(&cfg.Style),
			),
		).WithTheme(theme.New())
		if err := form.Run(); err != nil {
			display.FatalErr(err)
		}
		if cfg.Model == "" {
			cfg.Model = config.DefaultModel(cfg.Provider)
		}

		if err := cfg.Validate(); err != nil {
			display.FatalErr(err)
		}
		if err := cfg.Save(); err != nil {
			display.FatalErr(err)
		}
		logger.Debug("saved config", "path", cfg.Path(), "provider", cfg.Provider, "model", cfg.Model)
		display.Success("Saved config to " + cfg.Path())
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the config compass is using",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			display.FatalErr(err)
		}
		shown := *cfg
		if shown.APIKey != "" {
			shown.APIKey = "********"
		}
		fmt.Fprintf(os.Stdout, "# %s\n", cfg.Path())
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(shown); err != nil {
			display.FatalErr(err)
		}
		_ = enc.Close()
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
}
