// Package config manages chunkplan configuration.
//
// Configuration is layered: built-in defaults, then an optional YAML file,
// then command-line flags. The file location can be given explicitly or via
// the CHUNKPLAN_CONFIG environment variable; otherwise .chunkplan.yaml in the
// working directory is used if it exists.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// EnvConfig overrides the config file location.
	EnvConfig = "CHUNKPLAN_CONFIG"

	// DefaultFileName is looked up in the working directory.
	DefaultFileName = ".chunkplan.yaml"
)

// ResolvePath returns the config file to load.
// Precedence:
//   - explicit (from --config)
//   - CHUNKPLAN_CONFIG environment variable
//   - .chunkplan.yaml in dir
//
// An empty path means no file should be loaded. The default file is only
// returned when it exists; the other two are loaded unconditionally.
func ResolvePath(explicit, dir string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if env := os.Getenv(EnvConfig); env != "" {
		return env, nil
	}

	candidate := filepath.Join(dir, DefaultFileName)
	info, err := os.Stat(candidate)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to stat %s: %w", candidate, err)
	}
	if info.IsDir() {
		return "", nil
	}
	return candidate, nil
}
