package prereq

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/tkoskela/toolgate/pkg/sysenv"
	"github.com/tkoskela/toolgate/pkg/version"
)

// vswhere ships with the Visual Studio Installer at a fixed location and is
// the supported way to enumerate installed instances.
const (
	vswhereDir       = `${ProgramFiles(x86)}\Microsoft Visual Studio\Installer`
	vcToolsComponent = "Microsoft.VisualStudio.Component.VC.Tools.x86.x64"
)

// VSWhereProbe detects a Visual Studio installation carrying the C++
// toolset by parsing vswhere's JSON output.
type VSWhereProbe struct {
	InstallerDir string // overrides the fixed vswhere location
}

// Detect runs vswhere and classifies present when at least one installation
// has the MSVC x64 build tools component.
func (p *VSWhereProbe) Detect(ctx context.Context, env sysenv.Env) Finding {
	exe, err := p.locate(env)
	if err != nil {
		return Finding{Err: err}
	}

	stdout, stderr, err := env.RunCommand(ctx, exe,
		"-latest", "-products", "*", "-requires", vcToolsComponent, "-format", "json")
	if err != nil {
		return Finding{Err: fmt.Errorf("vswhere: %v: %s", err, strings.TrimSpace(stderr))}
	}
	if !gjson.Valid(stdout) {
		return Finding{Err: errors.New("vswhere returned unparsable output")}
	}

	inst := gjson.Get(stdout, "0")
	if !inst.Exists() {
		return Finding{Err: errors.New("no Visual Studio installation with the C++ build tools")}
	}
	home := inst.Get("installationPath").String()
	if home == "" {
		return Finding{Err: errors.New("vswhere reported an installation without a path")}
	}

	banner := strings.TrimSpace(inst.Get("displayName").String() + " " + inst.Get("installationVersion").String())
	f := Finding{
		Present: true,
		Home:    home,
		Banner:  banner,
		Detail:  "install: " + home,
	}
	if v, err := version.Extract(inst.Get("installationVersion").String()); err == nil {
		f.Version = v.String()
	}
	return f
}

// Describe returns the vswhere query.
func (p *VSWhereProbe) Describe() string {
	return "vswhere.exe -latest -products * -requires " + vcToolsComponent
}

func (p *VSWhereProbe) locate(env sysenv.Env) (string, error) {
	if p.InstallerDir != "" {
		return filepath.Join(p.InstallerDir, "vswhere.exe"), nil
	}
	// Chocolatey and some setups shim vswhere onto PATH.
	if path, err := env.LookPath("vswhere"); err == nil {
		return path, nil
	}
	dir := sysenv.Expand(env, vswhereDir)
	if dir == "" || !env.DirExists(dir) {
		return "", errors.New("vswhere.exe not found; is the Visual Studio Installer present?")
	}
	return filepath.Join(dir, "vswhere.exe"), nil
}
