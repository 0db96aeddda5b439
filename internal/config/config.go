// Package config loads application configuration from a YAML file,
// environment variables, and a local .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrMissingAPIKey marks a command that needs the YouTube Data API but
// has no key configured.
var ErrMissingAPIKey = errors.New("youtube API key is not configured")

// Config holds all application configuration
type Config struct {
	App      App      `mapstructure:"app"`
	YouTube  YouTube  `mapstructure:"youtube"`
	Trends   Trends   `mapstructure:"trends"`
	Gemini   Gemini   `mapstructure:"gemini"`
	Cache    Cache    `mapstructure:"cache"`
	Output   Output   `mapstructure:"output"`
	Analysis Analysis `mapstructure:"analysis"`
}

// App holds general application configuration
type App struct {
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
	DataDir  string `mapstructure:"data_dir"`
}

// YouTube holds Data API configuration
type YouTube struct {
	APIKey     string `mapstructure:"api_key"`
	Language   string `mapstructure:"language"`
	Region     string `mapstructure:"region"`
	MaxResults int    `mapstructure:"max_results"`
}

// Trends holds search-interest configuration
type Trends struct {
	Timeframe string `mapstructure:"timeframe"`
	Language  string `mapstructure:"language"`
}

// Gemini holds optional LLM configuration
type Gemini struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// Cache holds cache configuration
type Cache struct {
	Directory string `mapstructure:"directory"`
	Enabled   bool   `mapstructure:"enabled"`
}

// Output holds export configuration
type Output struct {
	Directory string `mapstructure:"directory"`
	Format    string `mapstructure:"format"`
}

// Analysis holds scoring run configuration
type Analysis struct {
	Workers     int     `mapstructure:"workers"`
	MinGapScore float64 `mapstructure:"min_gap_score"`
}

var globalConfig *Config

// Load loads the configuration from various sources
func Load(configFile string) (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	// Load .env file if it exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Printf("Warning: Error loading .env file: %v\n", err)
		}
	}

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".gapscout")
		viper.SetConfigType("yaml")
	}

	setDefaults()
	bindEnvironmentVariables()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := postProcessConfig(config); err != nil {
		return nil, err
	}

	globalConfig = config
	return config, nil
}

// Get returns the global configuration, loading it if necessary
func Get() *Config {
	if globalConfig == nil {
		config, err := Load("")
		if err != nil {
			panic(fmt.Sprintf("Failed to load configuration: %v", err))
		}
		return config
	}
	return globalConfig
}

// Reset clears the cached configuration. Used by tests.
func Reset() {
	globalConfig = nil
	viper.Reset()
}

// YouTubeKey returns the configured Data API key, or ErrMissingAPIKey.
// Commands that hit the API check this before doing any work.
func (c *Config) YouTubeKey() (string, error) {
	if c.YouTube.APIKey == "" {
		return "", fmt.Errorf("%w: set YOUTUBE_API_KEY or youtube.api_key in .gapscout.yaml", ErrMissingAPIKey)
	}
	return c.YouTube.APIKey, nil
}

func setDefaults() {
	viper.SetDefault("app.debug", false)
	viper.SetDefault("app.log_level", "info")
	viper.SetDefault("app.data_dir", ".gapscout-cache")

	viper.SetDefault("youtube.language", "en")
	viper.SetDefault("youtube.region", "US")
	viper.SetDefault("youtube.max_results", 10)

	viper.SetDefault("trends.timeframe", "today 12-m")
	viper.SetDefault("trends.language", "en-US")

	viper.SetDefault("gemini.model", "gemini-flash-lite-latest")

	viper.SetDefault("cache.directory", ".gapscout-cache")
	viper.SetDefault("cache.enabled", true)

	viper.SetDefault("output.directory", "reports")
	viper.SetDefault("output.format", "terminal")

	viper.SetDefault("analysis.workers", 3)
	viper.SetDefault("analysis.min_gap_score", 6.0)
}

// bindEnvironmentVariables sets up flexible environment variable binding
func bindEnvironmentVariables() {
	bindEnvKeys("youtube.api_key", []string{
		"YOUTUBE_API_KEY",
		"GOOGLE_YOUTUBE_API_KEY",
	})
	bindEnvKeys("gemini.api_key", []string{
		"GEMINI_API_KEY",
		"GOOGLE_GEMINI_API_KEY",
	})
	bindEnvKeys("app.data_dir", []string{"GAPSCOUT_DATA_DIR"})
	bindEnvKeys("app.log_level", []string{"GAPSCOUT_LOG_LEVEL"})
}

func bindEnvKeys(configKey string, envKeys []string) {
	for _, envKey := range envKeys {
		if value := os.Getenv(envKey); value != "" {
			viper.Set(configKey, value)
			return
		}
	}
}

// postProcessConfig applies post-processing to configuration values
func postProcessConfig(config *Config) error {
	config.App.DataDir = expandPath(config.App.DataDir)
	config.Cache.Directory = expandPath(config.Cache.Directory)
	config.Output.Directory = expandPath(config.Output.Directory)

	if config.Analysis.Workers < 1 {
		return fmt.Errorf("analysis.workers must be at least 1, got %d", config.Analysis.Workers)
	}
	if config.Analysis.MinGapScore < 0 || config.Analysis.MinGapScore > 10 {
		return fmt.Errorf("analysis.min_gap_score must be between 0 and 10, got %v", config.Analysis.MinGapScore)
	}
	return nil
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
