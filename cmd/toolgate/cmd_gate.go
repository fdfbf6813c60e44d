package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/tkoskela/toolgate/pkg/engine"
	"github.com/tkoskela/toolgate/pkg/handoff"
	"github.com/tkoskela/toolgate/pkg/marker"
)

// gateMaxAge bounds how long a pass marker is trusted without re-probing.
const gateMaxAge = 24 * time.Hour

var gateFresh bool

var gateCmd = &cobra.Command{
	Use:   "gate [flags] -- command [args...]",
	Short: "Run a command once the build prerequisites are verified",
	Long: `Gate runs a quiet check and hands off to the given command only when it
passes. A passing run leaves a marker file; while the marker is younger
than 24 hours and the environment fingerprint still matches, the check
is skipped outright.

Examples:
  toolgate gate -- cargo build --release
  toolgate gate --fresh -- pnpm run dist`,
	Args: cobra.MinimumNArgs(1),
	// The wrapped command's failure is its own to report; a usage dump
	// after a long build helps nobody.
	SilenceUsage: true,
	RunE:         runGate,
}

func init() {
	gateCmd.Flags().BoolVar(&gateFresh, "fresh", false,
		"ignore the pass marker and re-check")
	// Everything after the first positional arg belongs to the wrapped
	// command, including its flags.
	gateCmd.Flags().SetInterspersed(false)
	rootCmd.AddCommand(gateCmd)
}

func runGate(cmd *cobra.Command, args []string) error {
	minDisk := ""
	if cfg != nil {
		minDisk = cfg.MinDisk
	}
	reqs, err := buildCatalog(minDisk, nil)
	if err != nil {
		return err
	}

	fingerprint := marker.EnvFingerprint(checkEnv, reqs)
	if gateFresh || !marker.Fresh(markerDir, fingerprint, gateMaxAge) {
		autoFix := cfg != nil && cfg.AutoFix != nil && *cfg.AutoFix
		opts := engine.Options{AutoFix: autoFix}
		if err := runCheck(cmd, newEngine(reqs, false), opts, true, false); err != nil {
			return err
		}
	} else {
		slog.Debug("pass marker is fresh, skipping checks", "age", marker.Age(markerDir))
	}

	if err := gateRunner.Run(args[0], args[1:]); err != nil {
		return &exitError{code: handoff.ExitCode(err), err: fmt.Errorf("%s: %w", args[0], err)}
	}
	return nil
}
