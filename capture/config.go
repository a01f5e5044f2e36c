package capture

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// DisableValue is the only marker value that suppresses capture. "false",
// empty, or any other value does not.
const DisableValue = "true"

// Config controls a Monitor. The zero value gets production defaults via
// applyDefaults.
type Config struct {
	// ExcludedDomains suppress capture on the product's own surfaces and
	// loopback addresses. Matching is exact or by subdomain suffix. Note
	// that "localhost" is deliberately absent from the defaults: local
	// development sites are legitimate capture targets.
	ExcludedDomains []string `yaml:"excluded_domains"`

	// DisableAttr is the page-level opt-out attribute checked on <html>
	// and <body>. Only the exact value "true" suppresses.
	DisableAttr string `yaml:"disable_attr"`

	// DebounceWindow suppresses identical fingerprints re-triggered within
	// it, absorbing the click + native-submit double fire.
	DebounceWindow time.Duration `yaml:"debounce_window"`

	// AutoDismiss is the default lifetime of the capture popup the caller
	// shows. The engine only carries the constant; the timer is the
	// caller's.
	AutoDismiss time.Duration `yaml:"auto_dismiss"`

	// MaxDebounceEntries bounds the fingerprint cache.
	MaxDebounceEntries int `yaml:"max_debounce_entries"`
}

// UnmarshalYAML accepts durations in time.ParseDuration form ("5s").
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		ExcludedDomains    []string `yaml:"excluded_domains"`
		DisableAttr        string   `yaml:"disable_attr"`
		DebounceWindow     string   `yaml:"debounce_window"`
		AutoDismiss        string   `yaml:"auto_dismiss"`
		MaxDebounceEntries int      `yaml:"max_debounce_entries"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	c.ExcludedDomains = raw.ExcludedDomains
	c.DisableAttr = raw.DisableAttr
	c.MaxDebounceEntries = raw.MaxDebounceEntries

	for _, f := range []struct {
		name string
		src  string
		dst  *time.Duration
	}{
		{"debounce_window", raw.DebounceWindow, &c.DebounceWindow},
		{"auto_dismiss", raw.AutoDismiss, &c.AutoDismiss},
	} {
		if f.src == "" {
			continue
		}
		d, err := time.ParseDuration(f.src)
		if err != nil {
			return fmt.Errorf("capture: %s: %w", f.name, err)
		}
		*f.dst = d
	}
	return nil
}

func (c *Config) applyDefaults() {
	if len(c.ExcludedDomains) == 0 {
		c.ExcludedDomains = []string{"aliasvault.net", "127.0.0.1", "0.0.0.0"}
	}
	if c.DisableAttr == "" {
		c.DisableAttr = "av-disable"
	}
	if c.DebounceWindow <= 0 {
		c.DebounceWindow = 5 * time.Second
	}
	if c.AutoDismiss <= 0 {
		c.AutoDismiss = 15 * time.Second
	}
	if c.MaxDebounceEntries <= 0 {
		c.MaxDebounceEntries = 256
	}
}
