// FILE: fortidec/src/internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lconfig "github.com/lixenwraith/config"
)

type Config struct {
	Output  OutputConfig  `toml:"output"`
	Batch   BatchConfig   `toml:"batch"`
	Logging LoggingConfig `toml:"logging"`
}

type OutputConfig struct {
	// Gzip-compress batch output files (suffix .csv.gz instead of .csv)
	Gzip bool `toml:"gzip"`
}

type BatchConfig struct {
	// Concurrent file workers in directory mode
	Workers int `toml:"workers"`
}

type LoggingConfig struct {
	// Level: "debug", "info", "warn", "error"
	Level string `toml:"level"`

	// Output: "file", "stdout", "stderr", "none", or "" to pick the
	// mode default (file in single-file mode, stdout in batch mode)
	Output string `toml:"output"`

	// File output settings
	Directory string `toml:"directory"`
	Name      string `toml:"name"`
}

func defaults() *Config {
	return &Config{
		Output: OutputConfig{
			Gzip: false,
		},
		Batch: BatchConfig{
			Workers: 4,
		},
		Logging: LoggingConfig{
			Level:     "info",
			Output:    "",
			Directory: ".",
			Name:      "fortidec",
		},
	}
}

// Load builds the configuration from defaults, the optional TOML file
// and FORTIDEC_* environment variables. Flag overrides are applied by
// the caller afterwards.
func Load() (*Config, error) {
	configPath := GetConfigPath()

	cfg, err := lconfig.NewBuilder().
		WithDefaults(defaults()).
		WithEnvPrefix("FORTIDEC_").
		WithFile(configPath).
		WithEnvTransform(customEnvTransform).
		WithSources(
			lconfig.SourceEnv,
			lconfig.SourceFile,
			lconfig.SourceDefault,
		).
		Build()

	if err != nil {
		if !strings.Contains(err.Error(), "not found") {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	finalConfig := &Config{}
	if err := cfg.Scan(finalConfig); err != nil {
		return nil, fmt.Errorf("failed to scan config: %w", err)
	}

	return finalConfig, finalConfig.Validate()
}

func customEnvTransform(path string) string {
	env := strings.ReplaceAll(path, ".", "_")
	env = strings.ToUpper(env)
	env = "FORTIDEC_" + env
	return env
}

func GetConfigPath() string {
	if configFile := os.Getenv("FORTIDEC_CONFIG_FILE"); configFile != "" {
		if filepath.IsAbs(configFile) {
			return configFile
		}
		if configDir := os.Getenv("FORTIDEC_CONFIG_DIR"); configDir != "" {
			return filepath.Join(configDir, configFile)
		}
		return configFile
	}

	if configDir := os.Getenv("FORTIDEC_CONFIG_DIR"); configDir != "" {
		return filepath.Join(configDir, "fortidec.toml")
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".config", "fortidec.toml")
	}

	return "fortidec.toml"
}

func (c *Config) Validate() error {
	if c.Batch.Workers < 1 {
		return fmt.Errorf("batch workers must be positive: %d", c.Batch.Workers)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	switch c.Logging.Output {
	case "", "file", "stdout", "stderr", "none":
	default:
		return fmt.Errorf("invalid log output mode: %s", c.Logging.Output)
	}

	if c.Logging.Output == "file" && c.Logging.Name == "" {
		return fmt.Errorf("file logging requires a log file name")
	}

	return nil
}
