// Package config handles the dispenser.yaml service configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultListen is the address the gateway binds when none is configured.
const DefaultListen = ":8080"

// Config is the service configuration.
type Config struct {
	// Listen is the HTTP listen address (host:port).
	Listen string `yaml:"listen,omitempty"`

	// Secrets references the tenant secret map, e.g.
	// env://STUDENT_PASSWORDS_JSON, file:///etc/dispenser/tenants.json,
	// or awssm://us-east-1/course/tenants.
	Secrets string `yaml:"secrets,omitempty"`

	AWS   AWSConfig   `yaml:"aws,omitempty"`
	Audit AuditConfig `yaml:"audit,omitempty"`
}

// AWSConfig configures the STS client and role ARN derivation.
type AWSConfig struct {
	Region    string `yaml:"region,omitempty"`
	Partition string `yaml:"partition,omitempty"`

	// AccountID overrides caller-identity discovery when set.
	AccountID string `yaml:"account_id,omitempty"`

	// SessionDuration is passed to AssumeRole when positive ("15m", "1h").
	// Zero lets STS apply its default.
	SessionDuration Duration `yaml:"session_duration,omitempty"`
}

// AuditConfig configures the decision log.
type AuditConfig struct {
	// Path is the SQLite database path. Empty disables the audit log.
	Path string `yaml:"path,omitempty"`
}

// Duration is a time.Duration that unmarshals from YAML strings like "15m".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the duration as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Load reads the configuration file at path, applies environment
// overrides, and validates the result. An empty path loads defaults and
// environment only.
func Load(path string) (*Config, error) {
	cfg := &Config{Listen: DefaultListen}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
		if cfg.Listen == "" {
			cfg.Listen = DefaultListen
		}
	}

	// Environment overrides, mainly for containerized deployments.
	if v := os.Getenv("DISPENSER_LISTEN"); v != "" {
		cfg.Listen = v
	}
	if v := os.Getenv("DISPENSER_SECRETS"); v != "" {
		cfg.Secrets = v
	}
	if v := os.Getenv("DISPENSER_AUDIT_DB"); v != "" {
		cfg.Audit.Path = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks for required fields.
func (c *Config) Validate() error {
	if c.Secrets == "" {
		return fmt.Errorf("no secrets reference configured (set secrets: in dispenser.yaml or DISPENSER_SECRETS)")
	}
	return nil
}
