// Package engine runs the requirement catalog: sequential detection, the
// optional fix passes, and report assembly.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tkoskela/toolgate/pkg/check"
	"github.com/tkoskela/toolgate/pkg/pm"
	"github.com/tkoskela/toolgate/pkg/prereq"
	"github.com/tkoskela/toolgate/pkg/sysenv"
)

// Options control a single run.
type Options struct {
	// AutoFix invokes package-manager remediation for absent hard
	// requirements, plus everything SetEnvOnly does.
	AutoFix bool

	// SetEnvOnly writes expected user environment variables for present
	// tools without installing anything.
	SetEnvOnly bool
}

// Report is the outcome of one run.
type Report struct {
	Results      []check.Result // catalog order
	Success      bool           // true iff every hard requirement is present
	Remediations []Remediation  // install commands for whatever is still absent
}

// Remediation lists the commands one package manager would use for the
// requirements still absent after any fix pass.
type Remediation struct {
	Manager  string   // display name
	Commands []string // catalog order
}

// FatalError aborts a run before any requirement is probed. Everything
// else the engine encounters folds into the report instead.
type FatalError struct {
	Reason string
	Err    error
}

func (e *FatalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *FatalError) Unwrap() error { return e.Err }

// Engine checks requirements against an environment. Runs are sequential;
// the only state shared between items is the in-process search path, which
// grows as detection discovers install directories.
type Engine struct {
	Env          sysenv.Env
	Requirements []prereq.Requirement
	Logger       *slog.Logger

	// ConfirmInstall is asked before each installer invocation; nil means
	// always proceed. The CLI wires an interactive prompt here.
	ConfirmInstall func(requirement, command string) bool

	// AroundInstall wraps installer invocations for progress display; nil
	// runs them inline.
	AroundInstall func(title string, run func())
}

// Check probes every requirement in order, applies the requested fix
// passes, and assembles the report. The only error it returns is a
// *FatalError; per-item trouble never aborts the run.
func (e *Engine) Check(ctx context.Context, opts Options) (Report, error) {
	if err := e.verifyShell(); err != nil {
		return Report{}, err
	}

	findings := make([]prereq.Finding, len(e.Requirements))
	results := make([]check.Result, len(e.Requirements))
	for i, req := range e.Requirements {
		findings[i] = e.detect(ctx, req)
		results[i] = e.resultFor(req, findings[i])
	}

	if opts.AutoFix {
		e.installMissing(ctx, findings, results)
	}
	if opts.AutoFix || opts.SetEnvOnly {
		e.writeEnvVars(ctx, findings, results)
	}

	return e.assemble(results), nil
}

// verifyShell catches environments too broken to probe anything, such as a
// search path without the platform shell on it.
func (e *Engine) verifyShell() error {
	shell := "sh"
	if e.Env.OS() == "windows" {
		shell = "cmd.exe"
	}
	if _, err := e.Env.LookPath(shell); err != nil {
		return &FatalError{Reason: fmt.Sprintf("broken environment: %s is not on the search path", shell), Err: err}
	}
	return nil
}

// detect runs one probe and publishes any newly discovered install dir to
// the in-process search path so later probes in this run see it.
func (e *Engine) detect(ctx context.Context, req prereq.Requirement) prereq.Finding {
	f := req.Probe.Detect(ctx, e.Env)
	if f.Present && f.PrependDir != "" {
		if err := e.Env.PrependPath(f.PrependDir); err != nil {
			e.log().Warn("could not extend the search path", "requirement", req.Name, "dir", f.PrependDir, "error", err)
		} else {
			e.log().Debug("search path extended", "requirement", req.Name, "dir", f.PrependDir)
		}
	}
	e.log().Debug("probe finished", "requirement", req.Name, "present", f.Present)
	return f
}

func (e *Engine) resultFor(req prereq.Requirement, f prereq.Finding) check.Result {
	r := check.Result{Name: req.Name, Optional: req.Optional}

	if !f.Present {
		err := f.Err
		if err == nil {
			err = errors.New("not detected")
		}
		if f.Detail != "" {
			r.AddDetail(f.Detail)
		}
		return r.Absent(err.Error(), err)
	}

	r.Status = check.StatusPresent
	if f.Path != "" {
		r.AddDetailf("path: %s", f.Path)
	}
	if f.Banner != "" {
		r.AddDetailf("version: %s", f.Banner)
	}
	if f.Detail != "" {
		r.AddDetail(f.Detail)
	}
	if req.EnvVar != "" {
		if v, _ := e.Env.LookupEnv(req.EnvVar); v != "" {
			r.AddDetailf("%s=%s", req.EnvVar, v)
		} else {
			r.AddDetailf("%s is not set (--fix-env-only writes it)", req.EnvVar)
		}
	}
	return r
}

// installMissing attempts exactly one install per absent hard requirement,
// using the first available manager that covers it, then re-probes once.
func (e *Engine) installMissing(ctx context.Context, findings []prereq.Finding, results []check.Result) {
	available := pm.Detect(e.Env)
	if len(available) == 0 {
		e.log().Warn("auto-fix requested but no package manager is available")
		return
	}

	for i, req := range e.Requirements {
		if findings[i].Present || req.Optional {
			continue
		}
		mgr, command, ok := pm.FirstCommand(req.Install, available)
		if !ok {
			e.log().Debug("no install command for any available manager", "requirement", req.Name)
			continue
		}
		if e.ConfirmInstall != nil && !e.ConfirmInstall(req.Name, command) {
			e.log().Info("install declined", "requirement", req.Name)
			results[i].AddDetail("fix declined")
			continue
		}

		e.log().Info("installing", "requirement", req.Name, "manager", mgr.Name, "command", command)
		var out string
		var err error
		run := func() { out, err = pm.Run(ctx, e.Env, command) }
		if e.AroundInstall != nil {
			e.AroundInstall(fmt.Sprintf("Installing %s via %s", req.Name, mgr.Name), run)
		} else {
			run()
		}

		if err != nil {
			// Installer trouble stays local to this item.
			e.log().Warn("install failed", "requirement", req.Name, "manager", mgr.Name, "error", err)
			results[i].AddDetailf("install via %s failed: %v", mgr.Name, err)
		}
		if out != "" {
			e.log().Debug("installer output", "requirement", req.Name, "output", out)
		}

		// One re-probe, never a second install attempt.
		f := e.detect(ctx, req)
		if !f.Present {
			if err == nil {
				results[i].AddDetailf("still absent after %s install", mgr.Name)
			}
			continue
		}
		findings[i] = f
		results[i] = e.resultFor(req, f)
		results[i].AddDetailf("installed via %s", mgr.Name)
	}
}

// writeEnvVars persists the expected environment variable of every present
// requirement that declares one, unless the user already set it. A failed
// write downgrades to a note; the item stays present.
func (e *Engine) writeEnvVars(ctx context.Context, findings []prereq.Finding, results []check.Result) {
	for i, req := range e.Requirements {
		if req.EnvVar == "" || !findings[i].Present || findings[i].Home == "" {
			continue
		}
		if v, _ := e.Env.LookupEnv(req.EnvVar); v != "" {
			continue
		}

		err := e.Env.SetUserEnv(ctx, req.EnvVar, findings[i].Home)
		switch {
		case err == nil:
			e.log().Info("environment variable set", "var", req.EnvVar, "value", findings[i].Home)
			replaceEnvDetail(&results[i], req.EnvVar, fmt.Sprintf("%s=%s (set for current user)", req.EnvVar, findings[i].Home))
		case errors.Is(err, sysenv.ErrUserScopeUnsupported):
			e.log().Warn("environment variable set for this process only", "var", req.EnvVar)
			replaceEnvDetail(&results[i], req.EnvVar, fmt.Sprintf("%s=%s (process scope only)", req.EnvVar, findings[i].Home))
		default:
			e.log().Warn("could not set environment variable", "var", req.EnvVar, "error", err)
			replaceEnvDetail(&results[i], req.EnvVar, fmt.Sprintf("could not set %s: %v", req.EnvVar, err))
		}
	}
}

// replaceEnvDetail swaps the "not set" hint for the fix outcome.
func replaceEnvDetail(r *check.Result, envVar, detail string) {
	prefix := envVar + " is not set"
	for i, d := range r.Details {
		if strings.HasPrefix(d, prefix) {
			r.Details[i] = detail
			return
		}
	}
	r.AddDetail(detail)
}

func (e *Engine) assemble(results []check.Result) Report {
	rep := Report{Results: results, Success: true}
	for _, r := range results {
		if r.Blocking() {
			rep.Success = false
		}
	}

	for _, m := range pm.Registry() {
		var commands []string
		for i, r := range results {
			if r.Present() {
				continue
			}
			if cmd := e.Requirements[i].Install[m.ID]; cmd != "" {
				commands = append(commands, cmd)
			}
		}
		if len(commands) > 0 {
			rep.Remediations = append(rep.Remediations, Remediation{Manager: m.Name, Commands: commands})
		}
	}
	return rep
}

func (e *Engine) log() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}
