package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/tkoskela/toolgate/pkg/config"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		var exit *exitError
		if errors.As(err, &exit) {
			os.Exit(exit.code)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "toolgate",
	Short: "Gate builds on the tools and environment they need",
	Long: `Toolgate probes the toolchain a Windows desktop build depends on (Git,
Rust, LLVM, Node.js, pnpm, Visual Studio Build Tools, NSIS), reports
what is missing, installs it on request, and hands off to the build
only when the environment is complete.`,
	Version: Version,
}

var (
	logLevel   string
	logFormat  string
	configPath string

	// cfg is the discovered .toolgate.yaml, nil when none exists.
	cfg *config.File
)

func init() {
	// Assigned here rather than in the rootCmd literal: setup reads rootCmd's
	// flags, and referencing it from the literal creates an initialization cycle.
	rootCmd.PersistentPreRunE = setup
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn",
		"log verbosity: debug, info, warn, or error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log output format: text or json")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"path to a .toolgate.yaml (default: walk up from the working directory)")
}

func setup(cmd *cobra.Command, _ []string) error {
	// A .env beside the build tree carries machine-local variables like
	// LIBCLANG_PATH without touching the user environment.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return fmt.Errorf("failed to load .env: %w", err)
		}
	}

	path, err := config.Find(".", configPath)
	if err != nil {
		return err
	}
	if path != "" {
		cfg, err = config.Load(path)
		if err != nil {
			return err
		}
	}

	level := logLevel
	if !rootCmd.PersistentFlags().Changed("log-level") && cfg != nil && cfg.LogLevel != "" {
		level = cfg.LogLevel
	}
	format := logFormat
	if !rootCmd.PersistentFlags().Changed("log-format") && cfg != nil && cfg.LogFormat != "" {
		format = cfg.LogFormat
	}
	slog.SetDefault(newLogger(level, format, cmd.ErrOrStderr()))
	return nil
}

// newLogger builds the process logger. Unknown level or format values fall
// back to warn and text.
func newLogger(levelStr, formatStr string, w io.Writer) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelWarn
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if formatStr == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}
