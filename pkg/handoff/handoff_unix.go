//go:build unix

package handoff

import (
	"os"
	"os/exec"
	"syscall"
)

// execFunc is a seam for tests; syscall.Exec never returns on success.
var execFunc = syscall.Exec

// Run replaces the current process with the build command.
func (r Real) Run(name string, args []string) error {
	binary, err := exec.LookPath(name)
	if err != nil {
		return err
	}

	// argv[0] must be the program name by convention.
	argv := append([]string{name}, args...)
	// #nosec G204 -- intentional: the gate runs whatever command the user put after "--".
	return execFunc(binary, argv, os.Environ())
}
