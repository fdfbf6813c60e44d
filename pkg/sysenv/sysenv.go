// Package sysenv abstracts the host environment behind a single interface
// so detection and fix logic can be tested without touching the machine.
package sysenv

import (
	"context"
	"errors"
	"os"
)

// Env is every touchpoint between the checker and the host. Detection code
// only calls the read-only methods; the mutating ones (SetUserEnv,
// PrependPath) are reserved for explicit fix passes.
type Env interface {
	// LookPath resolves an executable name against the in-process search path.
	LookPath(name string) (string, error)

	// RunCommand executes a program and captures its output streams.
	RunCommand(ctx context.Context, name string, args ...string) (stdout, stderr string, err error)

	// LookupEnv reads a process environment variable.
	LookupEnv(key string) (string, bool)

	// SetUserEnv sets a variable in the current process and persists it at
	// user scope where the platform supports that.
	SetUserEnv(ctx context.Context, key, value string) error

	// PrependPath puts dir at the front of the in-process search path so
	// later LookPath calls see executables installed there.
	PrependPath(dir string) error

	// DirExists reports whether path exists and is a directory.
	DirExists(path string) bool

	// FreeDisk returns the free bytes on the volume containing path.
	FreeDisk(path string) (uint64, error)

	// OS returns the platform name, matching runtime.GOOS values.
	OS() string
}

// ErrUserScopeUnsupported is returned by SetUserEnv on platforms without
// per-user persistent environment variables. The process-scope set has
// already happened when this is returned.
var ErrUserScopeUnsupported = errors.New("user-scope environment variables are only persisted on windows")

// Expand substitutes ${VAR} references in s using env. Unset variables
// expand to the empty string, matching os.ExpandEnv.
func Expand(env Env, s string) string {
	return os.Expand(s, func(key string) string {
		v, _ := env.LookupEnv(key)
		return v
	})
}
