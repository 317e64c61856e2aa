// Package yaml loads the geolens configuration file. Every setting here
// has a CLI flag counterpart; flags win when both are given.
package yaml

import (
	"errors"
	"os"
	"time"

	"github.com/fwojciec/geolens"
	"github.com/fwojciec/geolens/analyze"
	"github.com/fwojciec/geolens/crawl"
	"github.com/fwojciec/geolens/http"
	"gopkg.in/yaml.v3"
)

// Simulator backends the config accepts.
const (
	BackendOllama = "ollama"
	BackendGemini = "gemini"
)

// Config is the on-disk configuration.
type Config struct {
	// Weights overrides rule severity weights by rule id. A rule id the
	// batteries don't know is ignored.
	Weights map[string]int `yaml:"weights"`

	Simulator SimulatorConfig `yaml:"simulator"`
	Fetch     FetchConfig     `yaml:"fetch"`
	Audit     AuditConfig     `yaml:"audit"`
}

// SimulatorConfig controls the AI simulation backend.
type SimulatorConfig struct {
	Enabled bool   `yaml:"enabled"`
	Backend string `yaml:"backend"` // ollama | gemini

	// Model and URL default to the backend's own defaults when empty.
	Model string `yaml:"model"`
	URL   string `yaml:"url"`

	Timeout Duration `yaml:"timeout"`
}

// FetchConfig controls page fetching.
type FetchConfig struct {
	Timeout   Duration `yaml:"timeout"`
	UserAgent string   `yaml:"user_agent"`
}

// AuditConfig controls site audits.
type AuditConfig struct {
	Concurrency int `yaml:"concurrency"`

	// MaxPages of zero means no cap for sitemap audits and the built-in
	// cap for link walks.
	MaxPages int `yaml:"max_pages"`

	// Rate limits fetches per domain, in requests per second. Zero
	// disables rate limiting.
	Rate float64 `yaml:"rate"`
}

// LoadConfig reads and validates a YAML config file. A missing file is
// ENOTFOUND; the caller decides whether that matters (it does for an
// explicit --config, not for the default path).
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, geolens.Errorf(geolens.ENOTFOUND, "config file %s not found", path)
		}
		return nil, err
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		var gerr *geolens.Error
		if errors.As(err, &gerr) {
			return nil, gerr
		}
		return nil, geolens.Errorf(geolens.EINVALID, "parse config %s: %v", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Simulator.Backend == "" {
		c.Simulator.Backend = BackendOllama
	}
	if c.Simulator.Timeout <= 0 {
		c.Simulator.Timeout = Duration(analyze.DefaultSimulatorTimeout)
	}
	if c.Fetch.Timeout <= 0 {
		c.Fetch.Timeout = Duration(http.DefaultFetchTimeout)
	}
	if c.Fetch.UserAgent == "" {
		c.Fetch.UserAgent = http.DefaultUserAgent
	}
	if c.Audit.Concurrency <= 0 {
		c.Audit.Concurrency = crawl.DefaultConcurrency
	}
}

func (c *Config) validate() error {
	if c.Simulator.Backend != BackendOllama && c.Simulator.Backend != BackendGemini {
		return geolens.Errorf(geolens.EINVALID, "unknown simulator backend %q", c.Simulator.Backend)
	}
	for id, w := range c.Weights {
		if w < 0 {
			return geolens.Errorf(geolens.EINVALID, "negative weight %d for rule %q", w, id)
		}
	}
	if c.Audit.Rate < 0 {
		return geolens.Errorf(geolens.EINVALID, "negative audit rate %v", c.Audit.Rate)
	}
	return nil
}

// Duration is a time.Duration that unmarshals from Go duration strings
// such as "30s" or "2m".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return geolens.Errorf(geolens.EINVALID, "invalid duration %q", s)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the duration as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }
