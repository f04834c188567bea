// FILE: src/cmd/fortidec/flags.go
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
)

// Command-line flags
type FlagConfig struct {
	ConfigFile  string
	ShowVersion bool
	Quiet       bool

	GzipOutput bool
	Workers    int

	LogLevel  string
	LogOutput string
	LogDir    string
	LogName   string

	// Set on the flags the user actually passed
	set map[string]bool
}

func parseFlags() (*FlagConfig, []string, error) {
	fc := &FlagConfig{set: make(map[string]bool)}

	fs := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	fs.SetOutput(os.Stdout)
	fs.Usage = func() { printUsage(fs) }

	fs.StringVar(&fc.ConfigFile, "config", "", "Config file path")
	fs.BoolVar(&fc.ShowVersion, "version", false, "Show version information")
	fs.BoolVar(&fc.Quiet, "quiet", false, "Suppress all diagnostics output")
	fs.BoolVar(&fc.GzipOutput, "gzip", false, "Gzip-compress batch output files (.csv.gz)")
	fs.IntVar(&fc.Workers, "workers", 0, "Concurrent file workers in batch mode (overrides config)")
	fs.StringVar(&fc.LogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	fs.StringVar(&fc.LogOutput, "log-output", "", "Log output: file, stdout, stderr, none (overrides config)")
	fs.StringVar(&fc.LogDir, "log-dir", "", "Log directory (when using file output)")
	fs.StringVar(&fc.LogName, "log-name", "", "Log file name (when using file output)")

	if err := fs.Parse(os.Args[1:]); err != nil {
		return nil, nil, err
	}
	fs.Visit(func(f *flag.Flag) { fc.set[f.Name] = true })

	if fc.LogOutput != "" {
		validOutputs := map[string]bool{
			"file": true, "stdout": true, "stderr": true, "none": true,
		}
		if !validOutputs[fc.LogOutput] {
			return nil, nil, fmt.Errorf("invalid log-output: %s (valid: file, stdout, stderr, none)", fc.LogOutput)
		}
	}

	if fc.LogLevel != "" {
		if _, err := parseLogLevel(fc.LogLevel); err != nil {
			return nil, nil, fmt.Errorf("invalid log-level: %s (valid: debug, info, warn, error)", fc.LogLevel)
		}
	}

	if fc.set["workers"] && fc.Workers < 1 {
		return nil, nil, fmt.Errorf("invalid workers: %d", fc.Workers)
	}

	return fc, fs.Args(), nil
}

// Passed indicates whether the user set the named flag explicitly.
func (fc *FlagConfig) Passed(name string) bool {
	return fc.set[name]
}

func printUsage(fs *flag.FlagSet) {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stdout, "fortidec - FortiNet log archive decoder\n\n")
	fmt.Fprintf(os.Stdout, "Usage:\n")
	fmt.Fprintf(os.Stdout, "  %s [options] logfile.log.gz|.zst\n", prog)
	fmt.Fprintf(os.Stdout, "\tDecode a single archive, entries to stdout, diagnostics to a log file\n\n")
	fmt.Fprintf(os.Stdout, "  %s [options] sourcedir targetdir\n", prog)
	fmt.Fprintf(os.Stdout, "\tDecode all archives in sourcedir to existing targetdir as <name>.csv,\n")
	fmt.Fprintf(os.Stdout, "\tdiagnostics to stdout; existing outputs are never overwritten\n\n")
	fmt.Fprintf(os.Stdout, "Options:\n")
	fs.PrintDefaults()
	fmt.Fprintf(os.Stdout, "\nEnvironment Variables:\n")
	fmt.Fprintf(os.Stdout, "  FORTIDEC_CONFIG_FILE  Config file path\n")
	fmt.Fprintf(os.Stdout, "  FORTIDEC_CONFIG_DIR   Config directory\n")
}
