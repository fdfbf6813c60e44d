// Package handoff runs the wrapped build command once the gate is green.
package handoff

import (
	"errors"
	"os/exec"
)

// Runner hands control to the build command after a passing check.
type Runner interface {
	// Run executes the command with the caller's stdio. On Unix the current
	// process is replaced outright and Run only returns on failure to start;
	// on Windows the wrapper stays alive as the parent and waits.
	Run(name string, args []string) error
}

// Real is the production implementation.
type Real struct{}

// ExitCode maps a Run error to the exit code the wrapper should propagate.
// The wrapped command's own exit code passes through untouched.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exit *exec.ExitError
	if errors.As(err, &exit) {
		return exit.ExitCode()
	}
	return 1
}
