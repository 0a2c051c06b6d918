package config

import (
	"fmt"
	"os"

	"pplmatch/internal/faults"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateMatching(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func invalid(format string, args ...any) error {
	return faults.Wrap(faults.ErrConfiguration, "config", "", fmt.Sprintf(format, args...), nil)
}

func (c *Config) validatePaths() error {
	if c.Paths.Database == "" {
		return invalid("paths.database must be set")
	}
	if c.Paths.LegislaturesFile != "" {
		info, err := os.Stat(c.Paths.LegislaturesFile)
		if err != nil {
			return invalid("paths.legislatures_file %q: %v", c.Paths.LegislaturesFile, err)
		}
		if info.IsDir() {
			return invalid("paths.legislatures_file %q is a directory", c.Paths.LegislaturesFile)
		}
	}
	return nil
}

func (c *Config) validateMatching() error {
	m := c.Matching
	if m.FuzzyThreshold < 0 || m.FuzzyThreshold > 100 {
		return invalid("matching.fuzzy_threshold must be in [0, 100], got %g", m.FuzzyThreshold)
	}
	if len(m.Legislatures) == 0 {
		if m.LegislatureMin <= 0 || m.LegislatureMax <= 0 {
			return invalid("matching.legislature_min and legislature_max must be positive")
		}
		if m.LegislatureMin > m.LegislatureMax {
			return invalid("matching.legislature_min (%d) exceeds legislature_max (%d)", m.LegislatureMin, m.LegislatureMax)
		}
	}
	for _, leg := range m.Legislatures {
		if leg <= 0 {
			return invalid("matching.legislatures entries must be positive, got %d", leg)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return invalid("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
}
