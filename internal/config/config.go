package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/danieljhkim/chunkplan/internal/element"
)

// ErrInvalidConfiguration indicates a setting the planner cannot run with.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// DefaultArch is the architecture the plan is computed for.
const DefaultArch = "aarch64"

// DefaultSourceCommand lists every element of a target in staged order with
// its cache state and full key. The architecture option and the target are
// added by SourceConfig.Argv.
var DefaultSourceCommand = []string{
	"bst", "show",
	"--deps", "all",
	"--order", "stage",
	"--format", "%{name}||%{state}||%{full-key}",
}

// Config holds all planner settings.
type Config struct {
	// CoreSplit is the number of pending elements placed in the core group
	CoreSplit int `yaml:"core_split"`

	// NumChunks is the number of leaf chunks (<= 0 produces none)
	NumChunks int `yaml:"num_chunks"`

	// CachedState is the state string that marks an element as cached
	CachedState string `yaml:"cached_state"`

	// StripExtensions are removed from chunk labels
	StripExtensions []string `yaml:"strip_extensions"`

	// Source configures the plan source
	Source SourceConfig `yaml:"source"`
}

// SourceConfig configures how the ordered element list is obtained.
type SourceConfig struct {
	// Command is the build-graph command; the target is appended
	Command []string `yaml:"command"`

	// Dir is the working directory for Command (default: current directory)
	Dir string `yaml:"dir,omitempty"`

	// Arch is passed as "-o arch <arch>" right after the program name;
	// empty omits the option
	Arch string `yaml:"arch"`
}

// Argv returns the command with the architecture option inserted after the
// program name. The target is not included.
func (s SourceConfig) Argv() []string {
	if len(s.Command) == 0 {
		return nil
	}

	argv := make([]string, 0, len(s.Command)+3)
	argv = append(argv, s.Command[0])
	if s.Arch != "" {
		argv = append(argv, "-o", "arch", s.Arch)
	}
	return append(argv, s.Command[1:]...)
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		CoreSplit:       200,
		NumChunks:       0,
		CachedState:     element.StateCached,
		StripExtensions: []string{".bst"},
		Source: SourceConfig{
			Command: append([]string(nil), DefaultSourceCommand...),
			Arch:    DefaultArch,
		},
	}
}

// Load returns the defaults overlaid with the YAML file at path. An empty
// path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %v", ErrInvalidConfiguration, path, err)
	}
	return cfg, nil
}

// Validate checks the settings the planner relies on.
func (c *Config) Validate() error {
	if c.CoreSplit < 0 {
		return fmt.Errorf("%w: core_split must be >= 0, got %d", ErrInvalidConfiguration, c.CoreSplit)
	}
	if strings.TrimSpace(c.CachedState) == "" {
		return fmt.Errorf("%w: cached_state must not be empty", ErrInvalidConfiguration)
	}
	if len(c.Source.Command) == 0 || c.Source.Command[0] == "" {
		return fmt.Errorf("%w: source.command must not be empty", ErrInvalidConfiguration)
	}
	return nil
}

// ParseChunkCount parses a chunk count argument. Negative values are
// accepted and produce zero chunks.
func ParseChunkCount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: chunk count %q is not an integer", ErrInvalidConfiguration, s)
	}
	return n, nil
}
