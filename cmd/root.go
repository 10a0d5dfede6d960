package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version  string
	logLevel string
	logFile  string

	logger  *log.Logger
	logSink io.Closer
)

// SetVersion sets the version string
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

var rootCmd = &cobra.Command{
	Use:   "checker",
	Short: "Replay and verify selection scenarios",
	Long: `checker drives the selection controller from TOML scenario files.

A scenario declares the checker mode, min/max bounds, field mapping and option
list, then a sequence of check, check_all and set_options steps with the
selection expected after each one.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if logSink != nil {
		logSink.Close()
	}
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "append logs to this file instead of stderr")
}

func setupLogging(cmd *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}

	var w io.Writer = cmd.ErrOrStderr()
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("could not open log file: %w", err)
		}
		w, logSink = f, f
	}

	logger = log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: logFile != "",
	})
	return nil
}

// getLogger returns the configured logger, or a discarding one before setup
func getLogger() *log.Logger {
	if logger == nil {
		return log.New(io.Discard)
	}
	return logger
}
