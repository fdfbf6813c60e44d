//go:build windows

package sysenv

import (
	"context"
	"fmt"
	"os/exec"

	"golang.org/x/sys/windows"
)

// persistUserEnv writes the variable into the user's registry hive via setx
// so new shells see it. setx truncates values beyond 1024 characters, which
// is fine for the install directory paths written here.
func (s *System) persistUserEnv(ctx context.Context, key, value string) error {
	out, err := exec.CommandContext(ctx, "setx", key, value).CombinedOutput()
	if err != nil {
		return fmt.Errorf("setx %s: %v: %s", key, err, out)
	}
	return nil
}

// FreeDisk returns the free bytes available to the current user on the
// volume containing path.
func (s *System) FreeDisk(path string) (uint64, error) {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return 0, err
	}
	var freeToCaller, total, totalFree uint64
	if err := windows.GetDiskFreeSpaceEx(p, &freeToCaller, &total, &totalFree); err != nil {
		return 0, err
	}
	return freeToCaller, nil
}
