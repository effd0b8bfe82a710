package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	// DataDir holds the canonical catalog database.
	DataDir string `toml:"data_dir"`
	// MappingDir holds the accepted and review mapping tables.
	MappingDir string `toml:"mapping_dir"`
	// LogDir receives the run log in addition to stdout.
	LogDir string `toml:"log_dir"`
}

// Sources contains default locations for the raw datasets consumed by the
// ingest commands. Command-line flags override these.
type Sources struct {
	ReferenceCSV string `toml:"reference_csv"`
	MatchesDir   string `toml:"matches_dir"`
}

// Matching contains the score thresholds and blocking bounds for the
// resolution passes.
type Matching struct {
	// AutoAccept is the minimum fuzzy score for automatic acceptance.
	AutoAccept int `toml:"auto_accept"`
	// ReviewLow is the minimum fuzzy score recorded for human review.
	ReviewLow int `toml:"review_low"`
	// PositionMin is the score floor for position-corroborated promotion.
	PositionMin int `toml:"position_min"`
	// PositionUnknownMin is the stricter floor applied when the query side
	// carries no positional signal.
	PositionUnknownMin int `toml:"position_unknown_min"`
	// QuickMaxCandidates caps the candidate pool in the quick pass.
	QuickMaxCandidates int `toml:"quick_max_candidates"`
	// FullMaxCandidates caps the candidate pool in the full-fuzzy pass.
	FullMaxCandidates int `toml:"full_max_candidates"`
	// TokenCeiling skips blocking tokens whose posting list exceeds it.
	TokenCeiling int `toml:"token_ceiling"`
}

// Logging contains log output configuration.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for playerlink.
type Config struct {
	Paths    Paths    `toml:"paths"`
	Sources  Sources  `toml:"sources"`
	Matching Matching `toml:"matching"`
	Logging  Logging  `toml:"logging"`
}

// SampleConfig returns the commented sample configuration file.
func SampleConfig() string { return sampleConfig }

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/playerlink/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded. A missing file is not an error: the
// defaults apply and exists reports false.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// EnsureDirectories creates the data, mapping, and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.MappingDir, c.Paths.LogDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// CatalogPath returns the location of the canonical catalog database.
func (c *Config) CatalogPath() string {
	return filepath.Join(c.Paths.DataDir, "catalog.db")
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs("playerlink.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	return defaultPath, false, nil
}

func (c *Config) normalize() error {
	var err error
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.MappingDir == "" {
		c.Paths.MappingDir = filepath.Join(c.Paths.DataDir, "mappings")
	}
	if c.Paths.MappingDir, err = expandPath(c.Paths.MappingDir); err != nil {
		return fmt.Errorf("paths.mapping_dir: %w", err)
	}
	if c.Paths.LogDir == "" {
		c.Paths.LogDir = filepath.Join(c.Paths.DataDir, "logs")
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Sources.ReferenceCSV != "" {
		if c.Sources.ReferenceCSV, err = expandPath(c.Sources.ReferenceCSV); err != nil {
			return fmt.Errorf("sources.reference_csv: %w", err)
		}
	}
	if c.Sources.MatchesDir != "" {
		if c.Sources.MatchesDir, err = expandPath(c.Sources.MatchesDir); err != nil {
			return fmt.Errorf("sources.matches_dir: %w", err)
		}
	}
	return nil
}

// CreateSample writes the commented sample configuration to path.
func CreateSample(path string) error {
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// ExpandPath resolves ~ prefixes and makes the path absolute.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if path == "~" || len(path) >= 2 && path[0] == '~' && path[1] == '/' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if path == "~" {
			return home, nil
		}
		return filepath.Join(home, path[2:]), nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve path %s: %w", path, err)
	}
	return abs, nil
}
