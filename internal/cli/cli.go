// Package cli holds what the extractor commands share: global flags, config and
// logger setup, and the mapping from errors to exit codes.
package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tiancaiamao/bench-csv"
	"github.com/tiancaiamao/bench-csv/internal/config"
)

const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// UsageError marks errors caused by how the command was invoked.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }
func (e *UsageError) Unwrap() error { return e.Err }

func Usage(err error) error {
	return &UsageError{Err: err}
}

func Usagef(format string, args ...interface{}) error {
	return &UsageError{Err: fmt.Errorf(format, args...)}
}

// AddGlobalFlags registers the flags every extractor accepts.
func AddGlobalFlags(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "config file (yaml)")
	cmd.Flags().BoolP("debug", "d", false, "enable debug logging")
	cmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")
	cmd.Flags().String("log-file", "", "also write logs to this file")
	cmd.Flags().String("html", "", "also render a scatter page of the output to this file")
	cmd.Flags().String("title", "", "title of the scatter page")
}

// Setup loads the configuration for cmd and builds its logger. Logs go to the
// command's error stream.
func Setup(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadConfig(configFile, cmd.Flags())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger, err := cfg.NewLogger(cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, logger, nil
}

// WriteChart renders c to the configured page, if any.
func WriteChart(cfg *config.Config, logger *zap.Logger, c *benchcsv.Chart) error {
	if c == nil || cfg.Chart.Output == "" {
		return nil
	}
	if err := benchcsv.WriteChartFile(cfg.Chart.Output, c); err != nil {
		return fmt.Errorf("failed to write chart: %w", err)
	}
	logger.Info("chart written", zap.String("file", cfg.Chart.Output), zap.Int("points", c.Len()))
	return nil
}

// Execute runs cmd with args and returns the process exit code.
func Execute(cmd *cobra.Command, args []string, stdout, stderr io.Writer) int {
	// cobra reads os.Args when given nil
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return Usage(err)
	})

	err := cmd.Execute()
	if err == nil {
		return ExitOK
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	var ue *UsageError
	if errors.As(err, &ue) {
		fmt.Fprint(stderr, cmd.UsageString())
		return ExitUsage
	}
	return ExitError
}
