// FILE: src/cmd/fortidec/bootstrap.go
package main

import (
	"fmt"
	"strings"

	"fortidec/src/internal/config"

	"github.com/lixenwraith/log"
)

// initializeLogger sets up the diagnostics logger. The default target
// depends on the operating mode: single-file mode writes decoded
// entries to stdout, so diagnostics go to a log file; batch mode writes
// entries to files, so diagnostics go to stdout. An explicit
// logging.output setting always wins over the mode default.
func initializeLogger(cfg *config.Config, flagCfg *FlagConfig, mode runMode) error {
	logger = log.NewLogger()

	var configArgs []string

	if flagCfg.Quiet {
		// In quiet mode, disable ALL logging output
		configArgs = append(configArgs,
			"disable_file=true",
			"enable_stdout=false",
			"level=255")

		return logger.ApplyConfigString(configArgs...)
	}

	levelValue, err := parseLogLevel(cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	configArgs = append(configArgs, fmt.Sprintf("level=%d", levelValue))

	logOutput := cfg.Logging.Output
	if logOutput == "" {
		if mode.name == "file" {
			logOutput = "file"
		} else {
			logOutput = "stdout"
		}
	}

	switch logOutput {
	case "none":
		configArgs = append(configArgs, "disable_file=true", "enable_stdout=false")

	case "stdout":
		configArgs = append(configArgs,
			"disable_file=true",
			"enable_stdout=true",
			"stdout_target=stdout")

	case "stderr":
		configArgs = append(configArgs,
			"disable_file=true",
			"enable_stdout=true",
			"stdout_target=stderr")

	case "file":
		configArgs = append(configArgs,
			"enable_stdout=false",
			fmt.Sprintf("directory=%s", cfg.Logging.Directory),
			fmt.Sprintf("name=%s", cfg.Logging.Name))

	default:
		return fmt.Errorf("invalid log output mode: %s", logOutput)
	}

	return logger.ApplyConfigString(configArgs...)
}

func parseLogLevel(level string) (int, error) {
	switch strings.ToLower(level) {
	case "debug":
		return int(log.LevelDebug), nil
	case "info":
		return int(log.LevelInfo), nil
	case "warn", "warning":
		return int(log.LevelWarn), nil
	case "error":
		return int(log.LevelError), nil
	default:
		return 0, fmt.Errorf("unknown log level: %s", level)
	}
}
