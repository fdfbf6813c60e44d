package prereq

import (
	"context"
	"fmt"

	"github.com/tkoskela/toolgate/pkg/sysenv"
)

// DiskProbe checks free disk space on the volume holding Path. There is no
// installer for disk space; the remediation is freeing some.
type DiskProbe struct {
	Path     string // checked path (default ".")
	MinBytes uint64
}

// Detect reads free space and compares it against the minimum.
func (p *DiskProbe) Detect(_ context.Context, env sysenv.Env) Finding {
	free, err := env.FreeDisk(p.path())
	if err != nil {
		return Finding{Err: fmt.Errorf("failed to check disk space: %v", err)}
	}

	detail := fmt.Sprintf("free: %s at %s (need %s)", FormatSize(free), p.path(), FormatSize(p.MinBytes))
	if free < p.MinBytes {
		return Finding{
			Detail: detail,
			Err:    fmt.Errorf("disk space %s < required %s", FormatSize(free), FormatSize(p.MinBytes)),
		}
	}
	return Finding{Present: true, Detail: detail}
}

// Describe returns the threshold being checked.
func (p *DiskProbe) Describe() string {
	return fmt.Sprintf("free disk at %s >= %s", p.path(), FormatSize(p.MinBytes))
}

func (p *DiskProbe) path() string {
	if p.Path != "" {
		return p.Path
	}
	return "."
}
