package marker

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/zeebo/blake3"

	"github.com/tkoskela/toolgate/pkg/prereq"
	"github.com/tkoskela/toolgate/pkg/sysenv"
)

// FileName is the marker written to the work tree after a fully green check.
const FileName = ".toolgate-ok"

// EnvFingerprint hashes the parts of the environment that can change a check
// outcome: the operating system, the search path, and every env var the
// catalog manages. Gate runs skip re-probing only while it stays stable.
func EnvFingerprint(env sysenv.Env, reqs []prereq.Requirement) string {
	h := blake3.New()
	line := func(s string) {
		_, _ = h.Write([]byte(s))
		_, _ = h.Write([]byte{'\n'})
	}

	line(env.OS())
	path, _ := env.LookupEnv("PATH")
	line(path)
	for _, req := range reqs {
		if req.EnvVar == "" {
			continue
		}
		val, _ := env.LookupEnv(req.EnvVar)
		line(req.EnvVar + "=" + val)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Write records a passing check. The first line is the timestamp and the
// second the environment fingerprint, so later runs can tell age and drift
// apart.
func Write(dir, fingerprint string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create marker directory: %w", err)
	}
	content := time.Now().UTC().Format(time.RFC3339) + "\n" + fingerprint + "\n"
	return os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644)
}

// Fresh reports whether a marker exists, carries the same fingerprint, and
// is no older than maxAge. A maxAge of zero disables the age cutoff.
func Fresh(dir, fingerprint string, maxAge time.Duration) bool {
	at, stored, err := read(dir)
	if err != nil {
		return false
	}
	if stored != fingerprint {
		return false
	}
	if maxAge > 0 && time.Since(at) > maxAge {
		return false
	}
	return true
}

// Age returns how long ago the marker was written, or zero when there is no
// readable marker.
func Age(dir string) time.Duration {
	at, _, err := read(dir)
	if err != nil {
		return 0
	}
	return time.Since(at)
}

// Clear removes the marker so the next gate run re-checks. Clearing a marker
// that is already gone is not an error.
func Clear(dir string) error {
	err := os.Remove(filepath.Join(dir, FileName))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("remove marker file: %w", err)
	}
	return nil
}

func read(dir string) (time.Time, string, error) {
	content, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		return time.Time{}, "", err
	}

	lines := strings.SplitN(strings.TrimSpace(string(content)), "\n", 2)
	at, err := time.Parse(time.RFC3339, strings.TrimSpace(lines[0]))
	if err != nil {
		return time.Time{}, "", err
	}
	fingerprint := ""
	if len(lines) == 2 {
		fingerprint = strings.TrimSpace(lines[1])
	}
	return at, fingerprint, nil
}
