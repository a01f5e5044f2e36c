// Package config loads the engine's deployment configuration from YAML:
// capture exclusions and windows, public-suffix extensions, and formscan
// sink declarations. All values have production defaults; an absent file is
// not an error for callers that want pure defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aliasvault/formcore/capture"
	"github.com/aliasvault/formcore/match"
)

// Config is the top-level engine configuration.
type Config struct {
	Capture capture.Config `yaml:"capture"`
	Match   MatchConfig    `yaml:"match"`
	Sinks   []SinkConfig   `yaml:"sinks"`
}

// MatchConfig extends the matcher's compiled-in defaults.
type MatchConfig struct {
	// ExtraSuffixes adds two-level public-suffix entries ("co.uk" form)
	// to the default table.
	ExtraSuffixes []string `yaml:"extra_suffixes"`
}

// SinkConfig declares an output backend for captured logins.
type SinkConfig struct {
	Type string `yaml:"type"` // stdout | callback
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	return &Config{}
}

// LoadFile reads a YAML configuration file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Suffixes builds the matcher suffix table: defaults plus extensions.
func (c *Config) Suffixes() match.SuffixSet {
	return match.DefaultSuffixes().Extend(c.Match.ExtraSuffixes...)
}

// Matcher builds a matcher from this configuration.
func (c *Config) Matcher() *match.Matcher {
	return match.New(match.WithSuffixes(c.Suffixes()))
}
