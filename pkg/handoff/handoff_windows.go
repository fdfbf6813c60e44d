//go:build windows

package handoff

import (
	"os"
	"os/exec"
)

// Run starts the build command with the caller's stdio and waits for it.
// Windows has no exec syscall that replaces the current process, so the
// wrapper stays alive as the parent.
func (r Real) Run(name string, args []string) error {
	// #nosec G204 -- intentional: the gate runs whatever command the user put after "--".
	cmd := exec.Command(name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
