package sysenv

import (
	"context"
	"os/exec"
	"strings"
)

// FakeEnv is an in-memory Env for tests. It records every mutation so tests
// can assert that read-only code paths stayed read-only.
type FakeEnv struct {
	Tools    map[string]*FakeTool // keyed by executable name
	Vars     map[string]string    // process environment
	Dirs     map[string]bool      // directories that exist beyond tool homes
	Free     map[string]uint64    // free disk bytes per path
	Commands map[string]*FakeCmd  // scripted commands, keyed by rendered command line
	System   string               // reported GOOS

	DefaultFree uint64 // FreeDisk fallback for paths not in Free
	FreeErr     error  // forces FreeDisk to fail
	UserEnvErr  error  // forces SetUserEnv to fail
	PrependErr  error  // forces PrependPath to fail

	Ran       []string          // every RunCommand invocation, rendered
	UserEnv   map[string]string // user-scope writes recorded by SetUserEnv
	Prepended []string          // search-path additions in call order
}

// FakeTool is one executable known to a FakeEnv.
type FakeTool struct {
	Path     string // absolute path, forward slashes work on every host
	OnPath   bool   // resolvable via LookPath without a prepend
	Banner   string // stdout of any probe invocation
	Stderr   string // stderr of any probe invocation
	ProbeErr error  // forces probe invocations to fail
}

// FakeCmd is a canned result for one exact command line.
type FakeCmd struct {
	Stdout string
	Stderr string
	Err    error
	Hook   func(*FakeEnv) // runs on invocation, before the result is returned
	Calls  int
}

// NewFakeEnv returns a windows-flavored fake with a working shell and
// plenty of disk.
func NewFakeEnv() *FakeEnv {
	f := &FakeEnv{
		Tools:       map[string]*FakeTool{},
		Vars:        map[string]string{"PATH": "C:/Windows/System32"},
		Dirs:        map[string]bool{},
		Free:        map[string]uint64{},
		Commands:    map[string]*FakeCmd{},
		System:      "windows",
		DefaultFree: 256 << 30,
		UserEnv:     map[string]string{},
	}
	f.AddTool("cmd.exe", "C:/Windows/System32/cmd.exe", "Microsoft Windows [Version 10.0.22631.3447]")
	return f
}

// AddTool registers an executable resolvable from the search path.
func (f *FakeEnv) AddTool(name, path, banner string) *FakeTool {
	t := &FakeTool{Path: path, OnPath: true, Banner: banner}
	f.Tools[name] = t
	return t
}

// AddInstalledTool registers an executable that exists on disk but is not
// on the search path until its directory is prepended.
func (f *FakeEnv) AddInstalledTool(name, path, banner string) *FakeTool {
	t := &FakeTool{Path: path, Banner: banner}
	f.Tools[name] = t
	return t
}

// Script registers a canned result for an exact command line, e.g.
// "winget install --id Rustlang.Rustup -e".
func (f *FakeEnv) Script(line string, c *FakeCmd) *FakeCmd {
	f.Commands[line] = c
	return c
}

// LookPath resolves name against registered tools and prepended dirs.
func (f *FakeEnv) LookPath(name string) (string, error) {
	t, ok := f.Tools[name]
	if !ok || !f.resolvable(t) {
		return "", &exec.Error{Name: name, Err: exec.ErrNotFound}
	}
	return t.Path, nil
}

// RunCommand matches scripted command lines first, then tool invocations by
// name or absolute path.
func (f *FakeEnv) RunCommand(_ context.Context, name string, args ...string) (string, string, error) {
	line := strings.Join(append([]string{name}, args...), " ")
	f.Ran = append(f.Ran, line)

	if c, ok := f.Commands[line]; ok {
		c.Calls++
		if c.Hook != nil {
			c.Hook(f)
		}
		return c.Stdout, c.Stderr, c.Err
	}

	for exe, t := range f.Tools {
		// Absolute paths run regardless of PATH, names need resolution.
		if name != t.Path && (name != exe || !f.resolvable(t)) {
			continue
		}
		if t.ProbeErr != nil {
			return "", t.Stderr, t.ProbeErr
		}
		return t.Banner, t.Stderr, nil
	}
	return "", "", &exec.Error{Name: name, Err: exec.ErrNotFound}
}

// LookupEnv reads from the fake process environment.
func (f *FakeEnv) LookupEnv(key string) (string, bool) {
	v, ok := f.Vars[key]
	return v, ok
}

// SetUserEnv records the user-scope write and mirrors it into Vars.
func (f *FakeEnv) SetUserEnv(_ context.Context, key, value string) error {
	if f.UserEnvErr != nil {
		return f.UserEnvErr
	}
	f.UserEnv[key] = value
	f.Vars[key] = value
	return nil
}

// PrependPath records the search-path addition.
func (f *FakeEnv) PrependPath(dir string) error {
	if f.PrependErr != nil {
		return f.PrependErr
	}
	f.Prepended = append(f.Prepended, dir)
	return nil
}

// DirExists reports registered dirs and the parent dirs of known tools.
func (f *FakeEnv) DirExists(path string) bool {
	if f.Dirs[path] {
		return true
	}
	for _, t := range f.Tools {
		if fakeDir(t.Path) == path {
			return true
		}
	}
	return false
}

// FreeDisk returns the scripted free space for path.
func (f *FakeEnv) FreeDisk(path string) (uint64, error) {
	if f.FreeErr != nil {
		return 0, f.FreeErr
	}
	if v, ok := f.Free[path]; ok {
		return v, nil
	}
	return f.DefaultFree, nil
}

// OS returns the configured GOOS.
func (f *FakeEnv) OS() string {
	return f.System
}

func (f *FakeEnv) resolvable(t *FakeTool) bool {
	if t.OnPath {
		return true
	}
	dir := fakeDir(t.Path)
	for _, p := range f.Prepended {
		if p == dir {
			return true
		}
	}
	return false
}

// fakeDir splits on either separator so tests can use windows-style paths
// on any host.
func fakeDir(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[:i]
	}
	return path
}
