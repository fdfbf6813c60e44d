//go:build unix

package sysenv

import (
	"context"
	"syscall"
)

// persistUserEnv has nowhere durable to write outside Windows. The caller
// already got the process-scope set; report the downgrade.
func (s *System) persistUserEnv(_ context.Context, _, _ string) error {
	return ErrUserScopeUnsupported
}

// FreeDisk returns free disk space in bytes at the given path.
func (s *System) FreeDisk(path string) (uint64, error) {
	var stat syscall.Statfs_t
	if err := syscall.Statfs(path, &stat); err != nil {
		return 0, err
	}
	// Available blocks * block size
	return uint64(stat.Bavail) * uint64(stat.Bsize), nil // #nosec G115 -- block size is always positive
}
