// FILE: fortidec/src/internal/config/config_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsValidate(t *testing.T) {
	cfg := defaults()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 4, cfg.Batch.Workers)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Output.Gzip)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{
			name:   "Defaults",
			mutate: func(c *Config) {},
		},
		{
			name:        "ZeroWorkers",
			mutate:      func(c *Config) { c.Batch.Workers = 0 },
			expectError: true,
		},
		{
			name:        "BadLevel",
			mutate:      func(c *Config) { c.Logging.Level = "verbose" },
			expectError: true,
		},
		{
			name:   "WarningAlias",
			mutate: func(c *Config) { c.Logging.Level = "warning" },
		},
		{
			name:        "BadOutput",
			mutate:      func(c *Config) { c.Logging.Output = "syslog" },
			expectError: true,
		},
		{
			name:        "FileOutputWithoutName",
			mutate:      func(c *Config) { c.Logging.Output = "file"; c.Logging.Name = "" },
			expectError: true,
		},
		{
			name:   "ExplicitStdout",
			mutate: func(c *Config) { c.Logging.Output = "stdout" },
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaults()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetConfigPathEnvOverride(t *testing.T) {
	t.Setenv("FORTIDEC_CONFIG_FILE", "/etc/fortidec/custom.toml")
	assert.Equal(t, "/etc/fortidec/custom.toml", GetConfigPath())

	t.Setenv("FORTIDEC_CONFIG_FILE", "custom.toml")
	t.Setenv("FORTIDEC_CONFIG_DIR", "/opt/fortidec")
	assert.Equal(t, "/opt/fortidec/custom.toml", GetConfigPath())
}
