package testsupport

import (
	"path/filepath"
	"testing"

	"pplmatch/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with a unique temp database per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.Database = filepath.Join(base, "data", "pplmatch.db")
	cfgVal.Matching.Workers = 2

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithThreshold overrides the fuzzy threshold.
func WithThreshold(threshold float64) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Matching.FuzzyThreshold = threshold
	}
}

// WithLegislatures restricts the run to an explicit legislature set.
func WithLegislatures(legs ...int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Matching.Legislatures = append([]int(nil), legs...)
	}
}

// WithLogDir enables file logging inside the test's temp directory.
func WithLogDir() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.LogDir = filepath.Join(b.baseDir, "logs")
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(filepath.Dir(cfg.Paths.Database))
}
