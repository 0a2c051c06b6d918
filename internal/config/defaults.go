package config

import (
	"runtime"

	"pplmatch/internal/speaker"
)

const (
	defaultConfigPath     = "~/.config/pplmatch/config.toml"
	projectConfigName     = "pplmatch.toml"
	defaultDatabasePath   = "~/.local/share/pplmatch/pplmatch.db"
	defaultFuzzyThreshold = 85.0
	defaultLegislatureMin = 35
	defaultLegislatureMax = 43
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"

	envDatabase         = "PPLMATCH_DATABASE"
	envLegislaturesFile = "PPLMATCH_LEGISLATURES_FILE"
)

// Default returns a Config populated with repository defaults. Paths.Database
// is left empty so the environment fallback can apply during normalization.
func Default() Config {
	lex := speaker.QuebecLexicon()
	return Config{
		Matching: Matching{
			FuzzyThreshold: defaultFuzzyThreshold,
			LegislatureMin: defaultLegislatureMin,
			LegislatureMax: defaultLegislatureMax,
			Workers:        runtime.GOMAXPROCS(0),
		},
		Lexicon: Lexicon{
			Roles:        lex.Roles,
			RolePrefixes: lex.RolePrefixes,
			Crowds:       lex.Crowds,
			Honorifics:   lex.Honorifics,
			Actions:      lex.Actions,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
