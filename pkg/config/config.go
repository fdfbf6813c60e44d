package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the per-repository config, discovered by walking up from the
// working directory.
const FileName = ".toolgate.yaml"

// File is the optional per-repository configuration. Pointer fields
// distinguish "not set" from an explicit false so flags stay authoritative.
type File struct {
	Quiet     *bool    `yaml:"quiet"`
	AutoFix   *bool    `yaml:"autofix"`
	Skip      []string `yaml:"skip"`
	MinDisk   string   `yaml:"min_disk"`
	LogLevel  string   `yaml:"log_level"`
	LogFormat string   `yaml:"log_format"`
}

// Find locates the nearest config file. An explicit path wins and must
// exist. Otherwise the search walks up from startDir and gives up past the
// repository root (a .git entry) or the home directory. Returns "" when no
// file exists; running without one is fine.
func Find(startDir, explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("config file not found: %w", err)
		}
		return explicitPath, nil
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", startDir, err)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate home directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		// A config beyond the repository root or the home directory
		// belongs to someone else.
		if dir == home {
			return "", nil
		}
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return "", nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Load reads and parses one config file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // intentional: reading the discovered config file
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return &f, nil
}
