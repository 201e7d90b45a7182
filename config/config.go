package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultConfigFileName = "config.yaml"
	EnvPrefix             = "COMPASS"

	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	DefaultGeminiModel = "gemini-2.0-flash"
	DefaultOpenAIModel = "gpt-4o-mini"
)

var (
	DefaultConfigDir      = os.ExpandEnv("$HOME/.config/compass")
	DefaultConfigFilePath = filepath.Join(DefaultConfigDir, DefaultConfigFileName)
	DefaultHistoryFile    = os.ExpandEnv("$HOME/.compass/history.json")
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Provider    string `mapstructure:"provider" yaml:"provider"`
	APIKey      string `mapstructure:"api_key" yaml:"api_key"`
	BaseURL     string `mapstructure:"base_url" yaml:"base_url"`
	Model       string `mapstructure:"model" yaml:"model"`
	Style       string `mapstructure:"style" yaml:"style"`
	HistoryFile string `mapstructure:"history_file" yaml:"history_file"`

	path string
}

// version is set via ldflags at build time
var version string

func Version() string {
	if version == "" {
		return "dev"
	}
	return version
}

func newViper(path string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("provider", ProviderGemini)
	v.SetDefault("api_key", "")
	v.SetDefault("base_url", "")
	v.SetDefault("model", "")
	v.SetDefault("style", "auto")
	v.SetDefault("history_file", DefaultHistoryFile)
	return v
}

// LoadFromFile loads the config from DefaultConfigFilePath.
func LoadFromFile() (*Config, error) {
	return Load(DefaultConfigFilePath)
}

// Load reads the config at path, then applies a .env file from the working
// directory and COMPASS_* environment variables on top of it. A missing
// config file is not an error.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := newViper(path)
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	c.path = path
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	if c.Model == "" {
		c.Model = DefaultModel(c.Provider)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Default returns the default config, to be saved at path.
func Default(path string) *Config {
	return &Config{
		Provider:    ProviderGemini,
		Model:       DefaultGeminiModel,
		Style:       "auto",
		HistoryFile: DefaultHistoryFile,
		path:        path,
	}
}

func DefaultModel(provider string) string {
	if provider == ProviderOpenAI {
		return DefaultOpenAIModel
	}
	return DefaultGeminiModel
}

func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("%w: unknown provider %q", ErrInvalidConfig, c.Provider)
	}
	switch c.Style {
	case "auto", "dark", "light", "notty", "":
	default:
		return fmt.Errorf("%w: unknown style %q", ErrInvalidConfig, c.Style)
	}
	return nil
}

// Path returns the file the config was loaded from.
func (c *Config) Path() string {
	if c.path == "" {
		return DefaultConfigFilePath
	}
	return c.path
}

// Save writes the config back to the file it was loaded from.
func (c *Config) Save() error {
	path := c.Path()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.Set("provider", c.Provider)
	v.Set("api_key", c.APIKey)
	v.Set("base_url", c.BaseURL)
	v.Set("model", c.Model)
	v.Set("style", c.Style)
	v.Set("history_file", c.HistoryFile)
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
