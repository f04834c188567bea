// FILE: src/cmd/fortidec/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fortidec/src/internal/config"
	"fortidec/src/internal/service"
	"fortidec/src/internal/sink"
	"fortidec/src/internal/version"

	"github.com/lixenwraith/log"
)

var logger *log.Logger

func main() {
	flagCfg, args, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	InitOutputHandler(flagCfg.Quiet)

	if flagCfg.ShowVersion {
		fmt.Println(version.String())
		os.Exit(0)
	}

	if flagCfg.ConfigFile != "" {
		os.Setenv("FORTIDEC_CONFIG_FILE", flagCfg.ConfigFile)
	}

	cfg, err := config.Load()
	if err != nil {
		FatalError(1, "Failed to load config: %v\n", err)
	}
	applyFlagOverrides(cfg, flagCfg)
	if err := cfg.Validate(); err != nil {
		FatalError(1, "Invalid configuration: %v\n", err)
	}

	mode, err := selectMode(args)
	if err != nil {
		// Bad invocation: usage to stdout, nothing touched
		printModeUsage()
		os.Exit(1)
	}

	if err := initializeLogger(cfg, flagCfg, mode); err != nil {
		FatalError(1, "Failed to initialize logger: %v\n", err)
	}

	logger.Info("msg", "fortidec starting",
		"version", version.Short(),
		"mode", mode.name)

	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc := service.New(cfg, logger)

	var runErr error
	switch mode.name {
	case "file":
		out := sink.NewStdoutSink()
		runErr = svc.DecodeFile(mode.source, out)
		if err := out.Close(); err != nil && runErr == nil {
			runErr = err
		}
	case "batch":
		runErr = svc.DecodeDir(ctx, mode.source, mode.target)
	}

	stats := svc.GetStats()
	logger.Info("msg", "fortidec finished",
		"files", stats.TotalFiles,
		"skipped", stats.SkippedFiles,
		"entries", stats.TotalEntries)

	shutdownLogger()
	if runErr != nil {
		os.Exit(1)
	}
}

// Operating mode resolved from positional arguments
type runMode struct {
	name   string // "file" or "batch"
	source string
	target string
}

func selectMode(args []string) (runMode, error) {
	switch len(args) {
	case 1:
		if st, err := os.Stat(args[0]); err == nil && !st.IsDir() {
			return runMode{name: "file", source: args[0]}, nil
		}
	case 2:
		srcOK := isDir(args[0])
		dstOK := isDir(args[1])
		if srcOK && dstOK {
			return runMode{name: "batch", source: args[0], target: args[1]}, nil
		}
	}
	return runMode{}, fmt.Errorf("invalid arguments")
}

func isDir(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.IsDir()
}

func printModeUsage() {
	prog := os.Args[0]
	fmt.Fprintf(os.Stdout, "Usage:\n")
	fmt.Fprintf(os.Stdout, "Decode single file, prints logs to stdout and errors/debug to the log file:\n")
	fmt.Fprintf(os.Stdout, "  %s logfile.log.gz|.zst\n\n", prog)
	fmt.Fprintf(os.Stdout, "Decode all files in source directory to existing target directory, prints errors/debug to stdout:\n")
	fmt.Fprintf(os.Stdout, "  %s sourcedir targetdir\n\n", prog)
	fmt.Fprintf(os.Stdout, "Run '%s -h' for the full option list.\n", prog)
}

func applyFlagOverrides(cfg *config.Config, flagCfg *FlagConfig) {
	if flagCfg.Passed("gzip") {
		cfg.Output.Gzip = flagCfg.GzipOutput
	}
	if flagCfg.Passed("workers") {
		cfg.Batch.Workers = flagCfg.Workers
	}
	if flagCfg.LogLevel != "" {
		cfg.Logging.Level = flagCfg.LogLevel
	}
	if flagCfg.LogOutput != "" {
		cfg.Logging.Output = flagCfg.LogOutput
	}
	if flagCfg.LogDir != "" {
		cfg.Logging.Directory = flagCfg.LogDir
	}
	if flagCfg.LogName != "" {
		cfg.Logging.Name = flagCfg.LogName
	}
}

func shutdownLogger() {
	if logger != nil {
		if err := logger.Shutdown(2 * time.Second); err != nil {
			// Best effort - can't log the shutdown error
			Error("Logger shutdown error: %v\n", err)
		}
	}
}
