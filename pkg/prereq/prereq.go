// Package prereq defines the requirement model and the probes that detect
// whether each build prerequisite is available on the host.
package prereq

import (
	"context"

	"github.com/tkoskela/toolgate/pkg/sysenv"
)

// Probe detects one requirement. Implementations read the environment and
// never mutate it. Every failure folds into an absent Finding instead of an
// error, so one broken probe cannot abort a run.
type Probe interface {
	// Detect classifies the requirement against env.
	Detect(ctx context.Context, env sysenv.Env) Finding

	// Describe returns a one-line summary of what Detect runs.
	Describe() string
}

// Finding is what a probe reports back.
type Finding struct {
	Present    bool
	Path       string // resolved executable path, when applicable
	Home       string // directory an environment variable should point at
	PrependDir string // install dir to put on the search path when PATH missed it
	Banner     string // first line of the identity probe output
	Version    string // version parsed from the banner, display only
	Detail     string // extra context for findings without a banner
	Err        error  // why detection classified Absent
}

// Requirement is one named prerequisite of the build.
type Requirement struct {
	Name     string
	Probe    Probe
	EnvVar   string            // env var expected to name Finding.Home ("" = none)
	Optional bool              // soft requirement: absence never fails a run
	Install  map[string]string // package manager id -> install command line
}
