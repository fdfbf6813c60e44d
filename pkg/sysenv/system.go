package sysenv

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"runtime"
)

// System implements Env using the real host.
type System struct{}

// LookPath searches for an executable in PATH.
func (s *System) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// RunCommand executes a command and returns its output.
func (s *System) RunCommand(ctx context.Context, name string, args ...string) (stdout, stderr string, err error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf
	err = cmd.Run()
	return outBuf.String(), errBuf.String(), err
}

// LookupEnv reads a process environment variable.
func (s *System) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// SetUserEnv sets the variable for this process, then persists it at user
// scope. On platforms without user-scope persistence the process set still
// sticks and ErrUserScopeUnsupported is returned.
func (s *System) SetUserEnv(ctx context.Context, key, value string) error {
	if err := os.Setenv(key, value); err != nil {
		return err
	}
	return s.persistUserEnv(ctx, key, value)
}

// PrependPath puts dir at the front of the in-process search path.
func (s *System) PrependPath(dir string) error {
	path := os.Getenv("PATH")
	return os.Setenv("PATH", dir+string(os.PathListSeparator)+path)
}

// DirExists reports whether path exists and is a directory.
func (s *System) DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// OS returns runtime.GOOS.
func (s *System) OS() string {
	return runtime.GOOS
}
