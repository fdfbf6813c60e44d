// Package catalog declares the fixed, ordered list of prerequisites the
// application build needs on a developer workstation.
package catalog

import (
	"fmt"
	"strings"

	"github.com/tkoskela/toolgate/pkg/prereq"
)

// DefaultMinDisk is the free space floor for a full build tree plus caches.
const DefaultMinDisk = 10 * prereq.GB

// Option adjusts catalog construction.
type Option func(*settings)

type settings struct {
	minDisk uint64
	workDir string
}

// WithMinDisk overrides the free disk floor.
func WithMinDisk(bytes uint64) Option {
	return func(s *settings) { s.minDisk = bytes }
}

// WithWorkDir sets the path whose volume the disk requirement checks.
func WithWorkDir(path string) Option {
	return func(s *settings) { s.workDir = path }
}

// Default returns the catalog in fixed order. Order matters: toolchains
// come before tools that depend on them, so a single auto-fix run can
// install one and let the next probe see it.
func Default(opts ...Option) []prereq.Requirement {
	s := settings{minDisk: DefaultMinDisk, workDir: "."}
	for _, opt := range opts {
		opt(&s)
	}

	return []prereq.Requirement{
		{
			Name: "Git",
			Probe: &prereq.ToolProbe{
				Executable:  "git",
				InstallDirs: []string{`${ProgramFiles}\Git\cmd`},
			},
			Install: map[string]string{
				"winget": "winget install --id Git.Git -e --source winget",
				"choco":  "choco install git -y",
				"scoop":  "scoop install git",
			},
		},
		{
			Name: "Rust toolchain",
			Probe: &prereq.ToolProbe{
				Executable:  "cargo",
				InstallDirs: []string{`${USERPROFILE}\.cargo\bin`},
			},
			Install: map[string]string{
				"winget": "winget install --id Rustlang.Rustup -e --source winget",
				"choco":  "choco install rustup.install -y",
				"scoop":  "scoop install rustup",
			},
		},
		{
			Name: "LLVM/Clang",
			Probe: &prereq.ToolProbe{
				Executable:  "clang",
				InstallDirs: []string{`${ProgramFiles}\LLVM\bin`},
			},
			// bindgen needs libclang; point it at the discovered install.
			EnvVar: "LIBCLANG_PATH",
			Install: map[string]string{
				"winget": "winget install --id LLVM.LLVM -e --source winget",
				"choco":  "choco install llvm -y",
				"scoop":  "scoop install llvm",
			},
		},
		{
			Name: "Node.js",
			Probe: &prereq.ToolProbe{
				Executable:  "node",
				InstallDirs: []string{`${ProgramFiles}\nodejs`},
			},
			Install: map[string]string{
				"winget": "winget install --id OpenJS.NodeJS.LTS -e --source winget",
				"choco":  "choco install nodejs-lts -y",
				"scoop":  "scoop install nodejs-lts",
			},
		},
		{
			Name: "pnpm",
			Probe: &prereq.ToolProbe{
				Executable:  "pnpm",
				InstallDirs: []string{`${LOCALAPPDATA}\pnpm`},
			},
			Install: map[string]string{
				"winget": "winget install --id pnpm.pnpm -e --source winget",
				"choco":  "choco install pnpm -y",
				"scoop":  "scoop install pnpm",
			},
		},
		{
			Name:  "Visual Studio Build Tools",
			Probe: &prereq.VSWhereProbe{},
			Install: map[string]string{
				"winget": "winget install --id Microsoft.VisualStudio.2022.BuildTools -e --source winget",
				"choco":  "choco install visualstudio2022buildtools -y",
			},
		},
		{
			Name: "NSIS",
			Probe: &prereq.ToolProbe{
				Executable:  "makensis",
				VersionArgs: []string{"/VERSION"},
				InstallDirs: []string{`${ProgramFiles(x86)}\NSIS`, `${ProgramFiles(x86)}\NSIS\Bin`},
			},
			Install: map[string]string{
				"winget": "winget install --id NSIS.NSIS -e --source winget",
				"choco":  "choco install nsis -y",
				"scoop":  "scoop install nsis",
			},
		},
		{
			Name:     "sccache",
			Optional: true,
			Probe: &prereq.ToolProbe{
				Executable:  "sccache",
				InstallDirs: []string{`${USERPROFILE}\.cargo\bin`},
			},
			Install: map[string]string{
				"winget": "winget install --id Mozilla.sccache -e --source winget",
				"choco":  "choco install sccache -y",
				"scoop":  "scoop install sccache",
			},
		},
		{
			Name:     "Free disk space",
			Optional: true,
			Probe:    &prereq.DiskProbe{Path: s.workDir, MinBytes: s.minDisk},
		},
	}
}

// Select filters reqs down to the named subset, preserving catalog order.
// Names are case-insensitive; unknown names are an error.
func Select(reqs []prereq.Requirement, names []string) ([]prereq.Requirement, error) {
	if len(names) == 0 {
		return reqs, nil
	}

	known := make(map[string]int, len(reqs))
	for i, r := range reqs {
		known[strings.ToLower(r.Name)] = i
	}

	keep := make(map[int]bool, len(names))
	for _, n := range names {
		i, ok := known[strings.ToLower(n)]
		if !ok {
			return nil, fmt.Errorf("unknown requirement %q (run \"toolgate list\" for the catalog)", n)
		}
		keep[i] = true
	}

	out := make([]prereq.Requirement, 0, len(keep))
	for i, r := range reqs {
		if keep[i] {
			out = append(out, r)
		}
	}
	return out, nil
}

// Skip removes the named requirements. Unknown names are ignored so config
// files survive catalog renames.
func Skip(reqs []prereq.Requirement, names []string) []prereq.Requirement {
	if len(names) == 0 {
		return reqs
	}

	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[strings.ToLower(n)] = true
	}

	out := make([]prereq.Requirement, 0, len(reqs))
	for _, r := range reqs {
		if !drop[strings.ToLower(r.Name)] {
			out = append(out, r)
		}
	}
	return out
}
