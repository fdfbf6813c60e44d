package output

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/tkoskela/toolgate/pkg/check"
	"github.com/tkoskela/toolgate/pkg/engine"
	"github.com/tkoskela/toolgate/pkg/prereq"
)

// noColors blanks the ANSI codes for exact-match assertions and restores
// them when the test ends.
func noColors(t *testing.T) {
	t.Helper()
	oldGreen, oldRed, oldYellow, oldDim, oldReset := green, red, yellow, dim, reset
	green, red, yellow, dim, reset = "", "", "", "", ""
	t.Cleanup(func() { green, red, yellow, dim, reset = oldGreen, oldRed, oldYellow, oldDim, oldReset })
}

func TestFormatLabelPlain(t *testing.T) {
	noColors(t)

	// Without colors every detail passes through untouched.
	for _, in := range []string{"path: C:/tools", "version: 1.2.3", "no colon here", ""} {
		if got := formatLabel(in); got != in {
			t.Errorf("formatLabel(%q) = %q, want input unchanged", in, got)
		}
	}
}

func TestFormatLabelDimsThePrefix(t *testing.T) {
	oldDim, oldReset := dim, reset
	dim, reset = "<d>", "</d>"
	t.Cleanup(func() { dim, reset = oldDim, oldReset })

	cases := map[string]string{
		"path: C:/tools":               "<d>path:</d> C:/tools",
		"free: 42GB at . (need 10GB)":  "<d>free:</d> 42GB at . (need 10GB)",
		"version: cargo 1.79.0 (meta)": "<d>version:</d> cargo 1.79.0 (meta)",
		"plain detail":                 "plain detail",
	}
	for in, want := range cases {
		if got := formatLabel(in); got != want {
			t.Errorf("formatLabel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPrintResultPresent(t *testing.T) {
	noColors(t)
	var buf bytes.Buffer

	PrintResult(&buf, check.Result{
		Name:    "Git",
		Status:  check.StatusPresent,
		Details: []string{"path: C:/Program Files/Git/cmd/git", "version: git version 2.45.0"},
	})

	expected := "[OK] Git\n     path: C:/Program Files/Git/cmd/git\n     version: git version 2.45.0\n"
	if buf.String() != expected {
		t.Errorf("output = %q, want %q", buf.String(), expected)
	}
}

func TestPrintResultMissing(t *testing.T) {
	noColors(t)
	var buf bytes.Buffer

	PrintResult(&buf, check.Result{
		Name:    "NSIS",
		Status:  check.StatusAbsent,
		Details: []string{"makensis not found on PATH"},
	})

	expected := "[MISSING] NSIS\n          makensis not found on PATH\n"
	if buf.String() != expected {
		t.Errorf("output = %q, want %q", buf.String(), expected)
	}
}

func TestPrintResultOptionalWarns(t *testing.T) {
	noColors(t)
	var buf bytes.Buffer

	PrintResult(&buf, check.Result{
		Name:     "sccache",
		Status:   check.StatusAbsent,
		Optional: true,
	})

	if !strings.HasPrefix(buf.String(), "[WARN] sccache\n") {
		t.Errorf("output = %q, want a [WARN] line", buf.String())
	}
}

func present(name string) check.Result {
	return check.Result{Name: name, Status: check.StatusPresent, Details: []string{"path: C:/tools/" + name}}
}

func absent(name string, optional bool) check.Result {
	return check.Result{Name: name, Status: check.StatusAbsent, Optional: optional, Err: errors.New(name + " not found")}
}

func TestPrintReportAllPresent(t *testing.T) {
	noColors(t)
	var buf bytes.Buffer

	PrintReport(&buf, engine.Report{
		Results: []check.Result{present("Git"), present("Node.js")},
		Success: true,
	}, false)

	out := buf.String()
	if !strings.Contains(out, "[OK] Git") || !strings.Contains(out, "[OK] Node.js") {
		t.Errorf("output missing item lines: %q", out)
	}
	if !strings.Contains(out, "All 2 requirements present.") {
		t.Errorf("output missing summary: %q", out)
	}
}

func TestPrintReportQuietSuppressesPresent(t *testing.T) {
	noColors(t)
	var buf bytes.Buffer

	PrintReport(&buf, engine.Report{
		Results: []check.Result{present("Git"), absent("NSIS", false)},
		Success: false,
	}, true)

	out := buf.String()
	if strings.Contains(out, "[OK]") {
		t.Errorf("quiet output should not contain present items: %q", out)
	}
	if !strings.Contains(out, "[MISSING] NSIS") {
		t.Errorf("quiet output should keep absent items: %q", out)
	}
}

func TestPrintReportRemediations(t *testing.T) {
	noColors(t)
	var buf bytes.Buffer

	PrintReport(&buf, engine.Report{
		Results: []check.Result{absent("NSIS", false)},
		Success: false,
		Remediations: []engine.Remediation{
			{Manager: "winget", Commands: []string{"winget install --id NSIS.NSIS -e"}},
			{Manager: "Chocolatey", Commands: []string{"choco install nsis -y"}},
		},
	}, false)

	out := buf.String()
	if !strings.Contains(out, "To fix, run one of:") {
		t.Errorf("output missing remediation header: %q", out)
	}
	if !strings.Contains(out, "winget:") || !strings.Contains(out, "winget install --id NSIS.NSIS -e") {
		t.Errorf("output missing winget block: %q", out)
	}
	if !strings.Contains(out, "Chocolatey:") || !strings.Contains(out, "choco install nsis -y") {
		t.Errorf("output missing chocolatey block: %q", out)
	}
}

func TestPrintReportOptionalOnlyMissing(t *testing.T) {
	noColors(t)
	var buf bytes.Buffer

	PrintReport(&buf, engine.Report{
		Results: []check.Result{present("Git"), absent("sccache", true)},
		Success: true,
		Remediations: []engine.Remediation{
			{Manager: "winget", Commands: []string{"winget install --id Mozilla.sccache -e"}},
		},
	}, false)

	out := buf.String()
	if !strings.Contains(out, "1 of 2 requirements missing (optional only).") {
		t.Errorf("output missing summary: %q", out)
	}
	if strings.Contains(out, "To fix, run one of:") {
		t.Errorf("successful runs should not print the remediation block: %q", out)
	}
}

func TestPrintCatalog(t *testing.T) {
	noColors(t)
	var buf bytes.Buffer

	reqs := []prereq.Requirement{
		{
			Name:   "LLVM/Clang",
			EnvVar: "LIBCLANG_PATH",
			Probe:  &prereq.ToolProbe{Executable: "clang"},
			Install: map[string]string{
				"winget": "winget install --id LLVM.LLVM -e",
				"scoop":  "scoop install llvm",
			},
		},
		{
			Name:     "Free disk space",
			Optional: true,
			Probe:    &prereq.DiskProbe{MinBytes: 10 * prereq.GB},
		},
	}
	PrintCatalog(&buf, reqs)

	out := buf.String()
	for _, want := range []string{
		"LLVM/Clang (required)",
		"probe: clang --version",
		"env: LIBCLANG_PATH",
		"winget: winget install --id LLVM.LLVM -e",
		"scoop: scoop install llvm",
		"Free disk space (optional)",
		"probe: free disk at . >= 10.0GB",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
