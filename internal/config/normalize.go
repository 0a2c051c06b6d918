package config

import (
	"fmt"
	"os"
	"runtime"
	"sort"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeMatching()
	c.normalizeLexicon()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	c.Paths.Database = strings.TrimSpace(c.Paths.Database)
	if c.Paths.Database == "" {
		if value, ok := os.LookupEnv(envDatabase); ok && strings.TrimSpace(value) != "" {
			c.Paths.Database = strings.TrimSpace(value)
		} else {
			c.Paths.Database = defaultDatabasePath
		}
	}
	if c.Paths.Database, err = expandPath(c.Paths.Database); err != nil {
		return fmt.Errorf("paths.database: %w", err)
	}

	c.Paths.LegislaturesFile = strings.TrimSpace(c.Paths.LegislaturesFile)
	if c.Paths.LegislaturesFile == "" {
		if value, ok := os.LookupEnv(envLegislaturesFile); ok {
			c.Paths.LegislaturesFile = strings.TrimSpace(value)
		}
	}
	if c.Paths.LegislaturesFile, err = expandPath(c.Paths.LegislaturesFile); err != nil {
		return fmt.Errorf("paths.legislatures_file: %w", err)
	}

	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeMatching() {
	if c.Matching.Workers <= 0 {
		c.Matching.Workers = runtime.GOMAXPROCS(0)
	}
	if len(c.Matching.Legislatures) > 0 {
		legs := append([]int(nil), c.Matching.Legislatures...)
		sort.Ints(legs)
		out := legs[:0]
		for i, leg := range legs {
			if i > 0 && leg == legs[i-1] {
				continue
			}
			out = append(out, leg)
		}
		c.Matching.Legislatures = out
	}
}

func (c *Config) normalizeLexicon() {
	c.Lexicon.Roles = trimList(c.Lexicon.Roles)
	c.Lexicon.RolePrefixes = trimList(c.Lexicon.RolePrefixes)
	c.Lexicon.Crowds = trimList(c.Lexicon.Crowds)
	c.Lexicon.Honorifics = trimList(c.Lexicon.Honorifics)
	c.Lexicon.Actions = trimList(c.Lexicon.Actions)
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func trimList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
