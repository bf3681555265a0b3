// Package projectconfig provides the ProjectConfig struct and loader for
// .rollcall.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file searched for by Load.
const FileName = ".rollcall.yaml"

// Default values for project configuration. New() references them and no
// other code should duplicate them.
const (
	DefaultBackend          = "file"
	DefaultRejectDuplicates = false
	DefaultShowSessions     = true
)

// StorageConfig selects the persistence backend. Options are decoded by the
// storage package into the backend's option struct.
type StorageConfig struct {
	Backend string         `yaml:"backend,omitempty"`
	Options map[string]any `yaml:"options,omitempty"`
}

// RosterConfig holds roster registration policy.
type RosterConfig struct {
	RejectDuplicates *bool `yaml:"reject_duplicates,omitempty"`
}

// ReportConfig holds report rendering defaults.
type ReportConfig struct {
	ShowSessions *bool `yaml:"show_sessions,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .rollcall.yaml.
type ProjectConfig struct {
	Storage StorageConfig `yaml:"storage,omitempty"`
	Roster  RosterConfig  `yaml:"roster,omitempty"`
	Report  ReportConfig  `yaml:"report,omitempty"`

	// Dir is the directory the config file was found in, or the start
	// directory when no file exists. Relative storage dirs resolve against it.
	Dir string `yaml:"-"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Storage: StorageConfig{
			Backend: DefaultBackend,
		},
		Roster: RosterConfig{
			RejectDuplicates: boolPtr(DefaultRejectDuplicates),
		},
		Report: ReportConfig{
			ShowSessions: boolPtr(DefaultShowSessions),
		},
	}
}

// Load finds .rollcall.yaml by walking up from startDir (max 10 levels),
// unmarshals it, and fills in missing fields with defaults.
// If no config file is found, returns defaults with a nil error.
// Real I/O errors (e.g. permission denied) are returned to the caller.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	absStart, err := filepath.Abs(startDir)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", startDir, err)
	}
	cfg.Dir = absStart

	data, dir, err := findConfigFile(absStart)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("loading %s: %w", FileName, err)
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FileName, err)
	}

	mergeConfig(cfg, &fileCfg)
	cfg.Dir = dir
	return cfg, nil
}

// StorageOptions returns a copy of the storage options with a relative
// "dir" resolved against the config directory. An unset dir stays unset so
// the backend applies its own default under Dir.
func (c *ProjectConfig) StorageOptions() map[string]any {
	opts := maps.Clone(c.Storage.Options)
	if opts == nil {
		opts = map[string]any{}
	}

	if dir, ok := opts["dir"].(string); ok && dir != "" && !filepath.IsAbs(dir) && c.Dir != "" {
		opts["dir"] = filepath.Join(c.Dir, dir)
	}
	return opts
}

// findConfigFile walks up from dir looking for .rollcall.yaml (max 10 levels).
// Returns os.ErrNotExist if no config file is found.
func findConfigFile(dir string) ([]byte, string, error) {
	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, FileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return data, dir, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, "", fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return nil, "", os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	if src.Storage.Backend != "" {
		dst.Storage.Backend = src.Storage.Backend
	}
	if src.Storage.Options != nil {
		dst.Storage.Options = src.Storage.Options
	}

	if src.Roster.RejectDuplicates != nil {
		dst.Roster.RejectDuplicates = src.Roster.RejectDuplicates
	}

	if src.Report.ShowSessions != nil {
		dst.Report.ShowSessions = src.Report.ShowSessions
	}
}

func boolPtr(b bool) *bool {
	return &b
}
