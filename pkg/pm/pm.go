// Package pm integrates the package managers that can remediate missing
// prerequisites: winget, Chocolatey and Scoop.
package pm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tkoskela/toolgate/pkg/sysenv"
)

// Manager describes one supported package manager.
type Manager struct {
	ID         string // key used in Requirement.Install maps
	Name       string // display name
	Executable string // binary probed for availability
}

// Registry returns the supported managers in preference order. Auto-fix
// uses the first available one that has a command for the missing item.
func Registry() []Manager {
	return []Manager{
		{ID: "winget", Name: "winget", Executable: "winget"},
		{ID: "choco", Name: "Chocolatey", Executable: "choco"},
		{ID: "scoop", Name: "Scoop", Executable: "scoop"},
	}
}

// Detect returns the managers currently on the search path, in registry
// order.
func Detect(env sysenv.Env) []Manager {
	var found []Manager
	for _, m := range Registry() {
		if _, err := env.LookPath(m.Executable); err == nil {
			found = append(found, m)
		}
	}
	return found
}

// FirstCommand returns the install command of the first manager in
// available order that covers the requirement.
func FirstCommand(install map[string]string, available []Manager) (Manager, string, bool) {
	for _, m := range available {
		if cmd, ok := install[m.ID]; ok && cmd != "" {
			return m, cmd, true
		}
	}
	return Manager{}, "", false
}

// Run executes one install command line and returns its combined output.
// Commands are fixed catalog strings split on whitespace; no shell is
// involved.
func Run(ctx context.Context, env sysenv.Env, command string) (string, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return "", errors.New("empty install command")
	}

	stdout, stderr, err := env.RunCommand(ctx, fields[0], fields[1:]...)
	out := strings.TrimSpace(strings.TrimSpace(stdout) + "\n" + strings.TrimSpace(stderr))
	if err != nil {
		return out, fmt.Errorf("%s: %w", fields[0], err)
	}
	return out, nil
}
