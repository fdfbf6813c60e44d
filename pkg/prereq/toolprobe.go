package prereq

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tkoskela/toolgate/pkg/sysenv"
	"github.com/tkoskela/toolgate/pkg/version"
)

// ToolProbe detects a command line tool by resolving its executable and
// running a version probe.
type ToolProbe struct {
	Executable  string   // bare executable name, no extension
	VersionArgs []string // args for the identity probe (default: --version)
	InstallDirs []string // well-known install dirs scanned when PATH misses; ${VAR} expanded
}

// Detect resolves the executable against the search path, falling back to
// the well-known install directories, then runs the version probe. Empty
// probe output counts as absent.
func (p *ToolProbe) Detect(ctx context.Context, env sysenv.Env) Finding {
	path, lookErr := env.LookPath(p.Executable)
	if lookErr == nil {
		return p.probe(ctx, env, path, "")
	}

	for _, dir := range p.InstallDirs {
		expanded := sysenv.Expand(env, dir)
		if expanded == "" || !env.DirExists(expanded) {
			continue
		}
		candidate := filepath.Join(expanded, p.exeName(env))
		if f := p.probe(ctx, env, candidate, expanded); f.Present {
			return f
		}
	}

	return Finding{Err: fmt.Errorf("%s not found on PATH or in known install directories: %w", p.Executable, lookErr)}
}

// Describe returns the probe invocation, e.g. "cargo --version".
func (p *ToolProbe) Describe() string {
	return fmt.Sprintf("%s %s", p.Executable, strings.Join(p.versionArgs(), " "))
}

func (p *ToolProbe) probe(ctx context.Context, env sysenv.Env, path, prependDir string) Finding {
	stdout, stderr, err := env.RunCommand(ctx, path, p.versionArgs()...)
	if err != nil {
		return Finding{Err: fmt.Errorf("version probe %s: %w", path, err)}
	}

	// Some tools print their banner on stderr.
	banner := firstLine(stdout)
	if banner == "" {
		banner = firstLine(stderr)
	}
	if banner == "" {
		return Finding{Err: fmt.Errorf("version probe %s produced no output", path)}
	}

	f := Finding{
		Present:    true,
		Path:       path,
		Home:       filepath.Dir(path),
		PrependDir: prependDir,
		Banner:     banner,
	}
	if v, err := version.Extract(banner); err == nil {
		f.Version = v.String()
	}
	return f
}

func (p *ToolProbe) versionArgs() []string {
	if len(p.VersionArgs) > 0 {
		return p.VersionArgs
	}
	return []string{"--version"}
}

func (p *ToolProbe) exeName(env sysenv.Env) string {
	if env.OS() == "windows" && filepath.Ext(p.Executable) == "" {
		return p.Executable + ".exe"
	}
	return p.Executable
}

// firstLine returns the first non-blank line of s, trimmed.
func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
