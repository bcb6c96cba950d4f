// Package rnconfig loads .renamify.yml / renamify.yml, the optional
// workspace config file. The teacher itself is flag-only (main.go's
// Configuration struct is populated entirely from flag.*), but yaml.v3 is
// already in its indirect dependency graph and the rest of the retrieval
// pack (brennhill-stricture, inful-docbuilder) both load yaml configs the
// same way, so a config file is the idiomatic choice here.
package rnconfig

import (
	"os"

	"github.com/renamify-go/renamify/internal/casemodel"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// Config is the on-disk workspace configuration.
type Config struct {
	// ExtraAcronyms are appended to the built-in acronym set.
	ExtraAcronyms []string `yaml:"acronyms,omitempty"`
	// DisableAcronyms turns off acronym-aware tokenization entirely.
	DisableAcronyms bool `yaml:"disable_acronyms,omitempty"`

	// DefaultStyles overrides casemodel.DefaultStyles() when set.
	DefaultStyles []string `yaml:"default_styles,omitempty"`

	// UnrestrictedLevel is the default walker unrestricted_level
	// (spec.md §4.H): 0 honor all ignore files, 1 skip .gitignore, 2 skip
	// all + hidden, 3 also treat binaries as text.
	UnrestrictedLevel int `yaml:"unrestricted_level,omitempty"`

	// BackupMaxAgeDays / BackupMaxCount are parsed from the config file,
	// adapted from the teacher's BackupManager (core/backup_manager.go
	// maxBackups/maxAgeDays); no command prunes .renamify/backups by them.
	BackupMaxAgeDays int `yaml:"backup_max_age_days,omitempty"`
	BackupMaxCount   int `yaml:"backup_max_count,omitempty"`

	// AtomicNames forces these identifiers to be treated as atomic
	// (no token splitting) wherever they appear as old/new.
	AtomicNames []string `yaml:"atomic_names,omitempty"`

	// IncludePlurals is parsed from the config file but read by no
	// command; no plural variants are generated.
	IncludePlurals bool `yaml:"include_plurals,omitempty"`
}

// Default returns the built-in default configuration.
func Default() Config {
	return Config{
		UnrestrictedLevel: 0,
		BackupMaxAgeDays:  30,
		BackupMaxCount:    20,
	}
}

// Candidates lists the config file names checked, in order, by Load.
var Candidates = []string{".renamify.yml", "renamify.yml"}

// Load reads the first existing config file under dir, falling back to
// Default() if none is present.
func Load(dir string) (Config, error) {
	cfg := Default()
	for _, name := range Candidates {
		path := dir + string(os.PathSeparator) + name
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}
	return cfg, nil
}

// ResolvedStyles converts DefaultStyles (if any) into []casemodel.Style,
// coercing loose string values (e.g. from an env var override) via cast.
func (c Config) ResolvedStyles() []casemodel.Style {
	if len(c.DefaultStyles) == 0 {
		return nil
	}
	var out []casemodel.Style
	for _, raw := range c.DefaultStyles {
		s := cast.ToString(raw)
		if style, ok := casemodel.ParseStyle(s); ok {
			out = append(out, style)
		}
	}
	return out
}
