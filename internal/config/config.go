package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"pplmatch/internal/speaker"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains file locations.
type Paths struct {
	// Database is the SQLite file holding source tables and saved runs.
	Database string `toml:"database"`
	// LegislaturesFile overrides the embedded legislature period table.
	LegislaturesFile string `toml:"legislatures_file"`
	// LogDir, when set, receives a pplmatch.log copy of every log line.
	LogDir string `toml:"log_dir"`
}

// Matching contains the matching engine knobs.
type Matching struct {
	FuzzyThreshold float64 `toml:"fuzzy_threshold"`
	LegislatureMin int     `toml:"legislature_min"`
	LegislatureMax int     `toml:"legislature_max"`
	// Legislatures, when non-empty, replaces the min/max range.
	Legislatures []int `toml:"legislatures"`
	Workers      int   `toml:"workers"`
	Verbose      bool  `toml:"verbose"`
}

// Lexicon mirrors speaker.Lexicon. Each list replaces the default wholesale
// when present in the file.
type Lexicon struct {
	Roles        []string `toml:"roles"`
	RolePrefixes []string `toml:"role_prefixes"`
	Crowds       []string `toml:"crowds"`
	Honorifics   []string `toml:"honorifics"`
	Actions      []string `toml:"actions"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for pplmatch.
//
// Configuration sections:
//   - Paths: database, period table override, log directory
//   - Matching: fuzzy threshold, legislature scope, parallelism
//   - Lexicon: role, crowd, honorific, and action word lists
//   - Logging: log format and level
type Config struct {
	Paths    Paths    `toml:"paths"`
	Matching Matching `toml:"matching"`
	Lexicon  Lexicon  `toml:"lexicon"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
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
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
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

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
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

// SpeakerLexicon returns the configured lexicon as a speaker.Lexicon.
func (c *Config) SpeakerLexicon() speaker.Lexicon {
	return speaker.Lexicon{
		Roles:        c.Lexicon.Roles,
		RolePrefixes: c.Lexicon.RolePrefixes,
		Crowds:       c.Lexicon.Crowds,
		Honorifics:   c.Lexicon.Honorifics,
		Actions:      c.Lexicon.Actions,
	}.Clone()
}

// LogFile returns the log file path, or "" when file logging is off.
func (c *Config) LogFile() string {
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return ""
	}
	return filepath.Join(c.Paths.LogDir, "pplmatch.log")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
