package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/tkoskela/toolgate/pkg/catalog"
	"github.com/tkoskela/toolgate/pkg/engine"
	"github.com/tkoskela/toolgate/pkg/handoff"
	"github.com/tkoskela/toolgate/pkg/marker"
	"github.com/tkoskela/toolgate/pkg/output"
	"github.com/tkoskela/toolgate/pkg/prereq"
	"github.com/tkoskela/toolgate/pkg/sysenv"
)

// ErrCheckFailed is returned when a required tool is missing.
// The returned error causes Cobra to exit with code 1.
var ErrCheckFailed = errors.New("check failed")

// Swapped in tests.
var (
	checkEnv   sysenv.Env     = &sysenv.System{}
	gateRunner handoff.Runner = handoff.Real{}
	markerDir                 = "."
)

// exitError carries a specific exit code through cobra's error return,
// so a wrapped build's status survives the trip.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// buildCatalog assembles the requirement list for one run: config skips
// apply first, then an optional positional selection.
func buildCatalog(minDisk string, names []string) ([]prereq.Requirement, error) {
	var opts []catalog.Option
	if minDisk != "" {
		size, err := prereq.ParseSize(minDisk)
		if err != nil {
			return nil, fmt.Errorf("invalid minimum disk size: %w", err)
		}
		opts = append(opts, catalog.WithMinDisk(size))
	}

	reqs := catalog.Default(opts...)
	if cfg != nil && len(cfg.Skip) > 0 {
		reqs = catalog.Skip(reqs, cfg.Skip)
	}
	if len(names) > 0 {
		return catalog.Select(reqs, names)
	}
	return reqs, nil
}

// newEngine wires the interactive pieces in only when a human is attached.
func newEngine(reqs []prereq.Requirement, assumeYes bool) *engine.Engine {
	eng := &engine.Engine{Env: checkEnv, Requirements: reqs}
	if !interactive() {
		return eng
	}
	if !assumeYes {
		eng.ConfirmInstall = confirmInstall
	}
	eng.AroundInstall = func(title string, run func()) {
		_ = spinner.New().Title(title).Action(run).Run()
	}
	return eng
}

func interactive() bool {
	return isTTY(os.Stdin) && isTTY(os.Stdout)
}

func isTTY(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func confirmInstall(requirement, command string) bool {
	ok := true
	err := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(fmt.Sprintf("Install %s?", requirement)).
			Description(command).
			Affirmative("Install").
			Negative("Skip").
			Value(&ok),
	)).Run()
	return err == nil && ok
}

// runCheck executes the engine, prints or encodes the report, and records a
// pass marker on success. The fingerprint is taken before the run so it
// reflects the environment the next invocation will start from.
func runCheck(cmd *cobra.Command, eng *engine.Engine, opts engine.Options, quiet, asJSON bool) error {
	fingerprint := marker.EnvFingerprint(eng.Env, eng.Requirements)

	report, err := eng.Check(cmd.Context(), opts)
	if err != nil {
		return err
	}

	if asJSON {
		if err := encodeReport(cmd.OutOrStdout(), report); err != nil {
			return err
		}
	} else {
		output.PrintReport(cmd.OutOrStdout(), report, quiet)
	}

	if !report.Success {
		// A marker from an earlier pass must not let the gate skip past
		// an environment that has since regressed.
		if err := marker.Clear(markerDir); err != nil {
			slog.Warn("could not clear pass marker", "error", err)
		}
		return ErrCheckFailed
	}
	if err := marker.Write(markerDir, fingerprint); err != nil {
		slog.Warn("could not write pass marker", "error", err)
	}
	return nil
}
