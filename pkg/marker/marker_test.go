package marker

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tkoskela/toolgate/pkg/prereq"
	"github.com/tkoskela/toolgate/pkg/sysenv"
)

func fingerprintReqs() []prereq.Requirement {
	return []prereq.Requirement{
		{Name: "Git"},
		{Name: "LLVM/Clang", EnvVar: "LIBCLANG_PATH"},
	}
}

func TestEnvFingerprintStable(t *testing.T) {
	env := sysenv.NewFakeEnv()

	first := EnvFingerprint(env, fingerprintReqs())
	second := EnvFingerprint(env, fingerprintReqs())

	assert.Equal(t, first, second)
	assert.Len(t, first, 64) // 32-byte digest, hex encoded
}

func TestEnvFingerprintTracksManagedVars(t *testing.T) {
	env := sysenv.NewFakeEnv()

	before := EnvFingerprint(env, fingerprintReqs())
	env.Vars["LIBCLANG_PATH"] = "C:/Program Files/LLVM/bin"
	after := EnvFingerprint(env, fingerprintReqs())

	assert.NotEqual(t, before, after)
}

func TestEnvFingerprintTracksSearchPath(t *testing.T) {
	env := sysenv.NewFakeEnv()

	before := EnvFingerprint(env, fingerprintReqs())
	env.Vars["PATH"] = "C:/Program Files/Git/cmd;" + env.Vars["PATH"]
	after := EnvFingerprint(env, fingerprintReqs())

	assert.NotEqual(t, before, after)
}

func TestEnvFingerprintIgnoresUnmanagedVars(t *testing.T) {
	env := sysenv.NewFakeEnv()

	before := EnvFingerprint(env, fingerprintReqs())
	env.Vars["EDITOR"] = "vim"
	after := EnvFingerprint(env, fingerprintReqs())

	assert.Equal(t, before, after)
}

func TestWriteAndFresh(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Write(dir, "abc123"))

	assert.True(t, Fresh(dir, "abc123", time.Hour))
	assert.True(t, Fresh(dir, "abc123", 0), "zero maxAge disables the cutoff")
}

func TestFreshRejectsDifferentFingerprint(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Write(dir, "abc123"))

	assert.False(t, Fresh(dir, "def456", time.Hour))
}

func TestFreshRejectsStaleMarker(t *testing.T) {
	dir := t.TempDir()
	stale := time.Now().UTC().Add(-48 * time.Hour).Format(time.RFC3339)
	content := stale + "\nabc123\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644))

	assert.False(t, Fresh(dir, "abc123", 24*time.Hour))
	assert.True(t, Fresh(dir, "abc123", 0))
}

func TestFreshWithoutMarker(t *testing.T) {
	assert.False(t, Fresh(t.TempDir(), "abc123", time.Hour))
}

func TestFreshRejectsCorruptMarker(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("not a timestamp\nabc123\n"), 0o644))

	assert.False(t, Fresh(dir, "abc123", time.Hour))
}

func TestFreshRejectsMarkerWithoutFingerprint(t *testing.T) {
	dir := t.TempDir()
	content := time.Now().UTC().Format(time.RFC3339) + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644))

	assert.False(t, Fresh(dir, "abc123", time.Hour))
}

func TestWriteCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "sub", "dir")
	require.NoError(t, Write(dir, "abc123"))

	assert.FileExists(t, filepath.Join(dir, FileName))
}

func TestAge(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Write(dir, "abc123"))

	age := Age(dir)
	assert.GreaterOrEqual(t, age, time.Duration(0))
	assert.Less(t, age, time.Minute)
}

func TestAgeWithoutMarker(t *testing.T) {
	assert.Equal(t, time.Duration(0), Age(t.TempDir()))
}

func TestClear(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Write(dir, "abc123"))

	require.NoError(t, Clear(dir))
	assert.NoFileExists(t, filepath.Join(dir, FileName))

	// Clearing twice is fine.
	assert.NoError(t, Clear(dir))
}
