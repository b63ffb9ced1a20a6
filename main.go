// mincer-manifest writes a reproducibility manifest for an experiment
// directory.
//
// It records the host OS, CPU, and memory, the measurement tools found on
// the machine (PAPI, NVIDIA GPUs, perf), and the experiment scripts in the
// directory, then writes the result as indented JSON.
//
// Usage:
//
//	mincer-manifest --path <dir> [flags]
//
// Flags:
//
//	--path string     Path to the experiment folder (required)
//	--output string   Output manifest file name (default: manifest.json)
//	--format string   Output format: json or yaml (default from config, json)
//	--config string   Path to configuration file (default: ~/.config/mincer/config.toml)
//	--verbose         Enable debug logging on stderr
//	--version         Print version and exit
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/pflag"

	"gitlab.com/tinyland/lab/mincer-manifest/pkg/config"
	"gitlab.com/tinyland/lab/mincer-manifest/pkg/manifest"
	"gitlab.com/tinyland/lab/mincer-manifest/pkg/metrics"
	"gitlab.com/tinyland/lab/mincer-manifest/pkg/probe"
	"gitlab.com/tinyland/lab/mincer-manifest/pkg/report"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

// usageError is returned for invalid command lines. It exits with status 2
// like other argument parsers.
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

// ExitCode implements the exit-code contract checked by main.
func (e *usageError) ExitCode() int { return 2 }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr, probe.ExecRunner{})
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		os.Exit(1)
	}
}

// run parses args and generates the manifest. A target that is not a
// directory is reported on stdout and is not an error.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, runner probe.Runner) error {
	var (
		targetPath string
		outputPath string
		format     string
		configPath string
		verbose    bool
		showVer    bool
	)

	flagSet := pflag.NewFlagSet("mincer-manifest", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&targetPath, "path", "", "Path to the experiment folder")
	flagSet.StringVar(&outputPath, "output", "manifest.json", "Output manifest file name")
	flagSet.StringVar(&format, "format", "", "Output format: json or yaml")
	flagSet.StringVar(&configPath, "config", "", "Path to configuration file")
	flagSet.BoolVar(&verbose, "verbose", false, "Enable debug logging on stderr")
	flagSet.BoolVar(&showVer, "version", false, "Print version and exit")
	flagSet.Usage = func() {
		fmt.Fprintf(stderr, "Generate reproducibility manifest for a MINCER experiment.\n\n")
		fmt.Fprintf(stderr, "Usage:\n  mincer-manifest --path <dir> [flags]\n\nFlags:\n")
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return usagef("%v", err)
	}

	if showVer {
		fmt.Fprintf(stdout, "mincer-manifest %s (%s) built %s\n", version, commit, date)
		return nil
	}

	if rest := flagSet.Args(); len(rest) > 0 {
		return usagef("unexpected argument: %s", rest[0])
	}
	// An explicit empty --path is a path that is not a directory.
	if !flagSet.Changed("path") {
		return usagef("the following argument is required: --path")
	}
	if outputPath == "" {
		return usagef("--output must not be empty")
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if format != "" {
		cfg.Output.Format = strings.ToLower(format)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	outFormat, err := manifest.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	logger := newLogger(stderr, cfg.LogLevel)
	printer := report.New(stdout)

	if !manifest.IsDir(targetPath) {
		logger.Debug("target rejected", "path", targetPath)
		printer.NotDirectory()
		return nil
	}

	prober := probe.New(probe.Config{
		Runner:  runner,
		Timeout: cfg.ProbeTimeout.Duration,
		Logger:  logger,
	})
	detector := metrics.NewDetector(prober, extraTools(cfg.Metrics.Extra)...)

	m, err := manifest.Generate(ctx, targetPath, manifest.Options{
		Detector:   detector,
		Extensions: cfg.Scripts.Extensions,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	data, err := manifest.Render(m, outFormat)
	if err != nil {
		return err
	}
	if err := manifest.Write(outputPath, data); err != nil {
		return err
	}

	logger.Info("manifest generated",
		"experiment", m.ExperimentName,
		"metrics", len(m.Metrics),
		"scripts", len(m.Scripts),
		"format", string(outFormat),
	)
	printer.Written(outputPath)
	return nil
}

// loadConfig reads the config file at path, or the default search path
// when path is empty. An explicitly named file must exist.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		cfg, err := config.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		return cfg, nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg, err := config.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the stderr text logger for the given level name.
func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

func extraTools(in []config.ExtraTool) []metrics.Tool {
	tools := make([]metrics.Tool, 0, len(in))
	for _, t := range in {
		tools = append(tools, metrics.Tool{
			Name:  t.Name,
			Label: t.Label,
			Query: t.Query,
		})
	}
	return tools
}
