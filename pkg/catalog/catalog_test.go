package catalog

import (
	"strings"
	"testing"

	"github.com/tkoskela/toolgate/pkg/prereq"
)

func names(reqs []prereq.Requirement) []string {
	out := make([]string, len(reqs))
	for i, r := range reqs {
		out[i] = r.Name
	}
	return out
}

func TestDefaultOrder(t *testing.T) {
	want := []string{
		"Git",
		"Rust toolchain",
		"LLVM/Clang",
		"Node.js",
		"pnpm",
		"Visual Studio Build Tools",
		"NSIS",
		"sccache",
		"Free disk space",
	}

	got := names(Default())
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("catalog order = %v, want %v", got, want)
	}
}

func TestDefaultShape(t *testing.T) {
	seen := map[string]bool{}
	for _, r := range Default() {
		if seen[r.Name] {
			t.Errorf("duplicate requirement name %q", r.Name)
		}
		seen[r.Name] = true

		if r.Probe == nil {
			t.Errorf("%s has no probe", r.Name)
		}
		if r.Probe.Describe() == "" {
			t.Errorf("%s has an empty probe description", r.Name)
		}
	}
}

func TestHardRequirementsHaveRemediation(t *testing.T) {
	for _, r := range Default() {
		if r.Optional {
			continue
		}
		if r.Install["winget"] == "" {
			t.Errorf("%s has no winget command", r.Name)
		}
		if r.Install["choco"] == "" {
			t.Errorf("%s has no choco command", r.Name)
		}
	}
}

func TestClangExportsLibclangPath(t *testing.T) {
	for _, r := range Default() {
		if r.Name == "LLVM/Clang" {
			if r.EnvVar != "LIBCLANG_PATH" {
				t.Errorf("EnvVar = %q, want LIBCLANG_PATH", r.EnvVar)
			}
			return
		}
	}
	t.Fatal("LLVM/Clang not in catalog")
}

func TestSoftRequirements(t *testing.T) {
	soft := map[string]bool{"sccache": true, "Free disk space": true}
	for _, r := range Default() {
		if r.Optional != soft[r.Name] {
			t.Errorf("%s Optional = %v, want %v", r.Name, r.Optional, soft[r.Name])
		}
	}
}

func TestWithMinDiskAndWorkDir(t *testing.T) {
	reqs := Default(WithMinDisk(20*prereq.GB), WithWorkDir("D:/src/app"))

	disk := reqs[len(reqs)-1]
	desc := disk.Probe.Describe()
	if !strings.Contains(desc, "20.0GB") {
		t.Errorf("Describe() = %q, want the overridden minimum", desc)
	}
	if !strings.Contains(desc, "D:/src/app") {
		t.Errorf("Describe() = %q, want the overridden path", desc)
	}
}

func TestSelectPreservesCatalogOrder(t *testing.T) {
	got, err := Select(Default(), []string{"nsis", "git"})
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if len(got) != 2 || got[0].Name != "Git" || got[1].Name != "NSIS" {
		t.Errorf("Select = %v, want [Git NSIS]", names(got))
	}
}

func TestSelectUnknownName(t *testing.T) {
	if _, err := Select(Default(), []string{"Git", "cmake"}); err == nil {
		t.Error("Select of an unknown name should fail")
	} else if !strings.Contains(err.Error(), "cmake") {
		t.Errorf("err = %v, want the unknown name in it", err)
	}
}

func TestSelectEmptyKeepsAll(t *testing.T) {
	all := Default()
	got, err := Select(all, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(all) {
		t.Errorf("Select(nil) kept %d of %d", len(got), len(all))
	}
}

func TestSkip(t *testing.T) {
	got := Skip(Default(), []string{"SCCACHE", "no such item"})

	for _, r := range got {
		if r.Name == "sccache" {
			t.Error("Skip did not remove sccache")
		}
	}
	if len(got) != len(Default())-1 {
		t.Errorf("Skip kept %d items, want %d", len(got), len(Default())-1)
	}
}
