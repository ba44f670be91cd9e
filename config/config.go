// Package config loads skeletonize settings from file and environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sonnes/skeletonize/redact"
	"github.com/sonnes/skeletonize/truncate"
)

const (
	configFileName = "config.yaml"
	configDirName  = "skeletonize"
)

// Config for skeletonize. Pointer fields; nil = unset.
type Config struct {
	Threshold *int          `yaml:"threshold"`
	Head      *int          `yaml:"head"`
	Tail      *int          `yaml:"tail"`
	Redact    *RedactConfig `yaml:"redact"`
}

// RedactConfig selects redaction rules applied to every skeleton.
type RedactConfig struct {
	Rules     []string `yaml:"rules"`     // "secrets", "pii"
	Allowlist []string `yaml:"allowlist"` // regex patterns left untouched
}

// LoadFrom loads config from path. Missing files return zero Config, nil.
func LoadFrom(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else if len(data) > 0 {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return Config{}, err
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Load reads $XDG_CONFIG_HOME/skeletonize/config.yaml.
func Load() (Config, error) {
	return LoadFrom(DefaultPath())
}

// Policy resolves the truncation policy, filling unset fields from
// truncate.DefaultPolicy.
func (c Config) Policy() truncate.Policy {
	p := truncate.DefaultPolicy()
	if c.Threshold != nil {
		p.Threshold = *c.Threshold
	}
	if c.Head != nil {
		p.Head = *c.Head
	}
	if c.Tail != nil {
		p.Tail = *c.Tail
	}
	return p
}

// RedactConfig resolves the redaction settings. ok is false when no rules
// are configured.
func (c Config) RedactConfig() (cfg redact.Config, ok bool, err error) {
	if c.Redact == nil || len(c.Redact.Rules) == 0 {
		return redact.Config{}, false, nil
	}
	cfg, err = redact.ParseKinds(c.Redact.Rules)
	if err != nil {
		return redact.Config{}, false, err
	}
	cfg.Allowlist = c.Redact.Allowlist
	return cfg, true, nil
}

func (c *Config) applyEnvOverrides() error {
	for _, o := range []struct {
		env string
		dst **int
	}{
		{"SKELETONIZE_THRESHOLD", &c.Threshold},
		{"SKELETONIZE_HEAD", &c.Head},
		{"SKELETONIZE_TAIL", &c.Tail},
	} {
		v, ok := os.LookupEnv(o.env)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("parse %s: %w", o.env, err)
		}
		*o.dst = &n
	}

	if v, ok := os.LookupEnv("SKELETONIZE_REDACT"); ok {
		if c.Redact == nil {
			c.Redact = &RedactConfig{}
		}
		c.Redact.Rules = nil
		for _, r := range strings.Split(v, ",") {
			if r = strings.TrimSpace(r); r != "" {
				c.Redact.Rules = append(c.Redact.Rules, r)
			}
		}
	}

	return nil
}

func (c *Config) validate() error {
	if c.Threshold != nil && *c.Threshold <= 0 {
		return fmt.Errorf("threshold must be positive, got %d", *c.Threshold)
	}
	if err := c.Policy().Validate(); err != nil {
		return err
	}
	if _, _, err := c.RedactConfig(); err != nil {
		return fmt.Errorf("redact.rules: %w", err)
	}
	return nil
}

// DefaultPath returns the config file location under XDG_CONFIG_HOME,
// falling back to ~/.config.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, configDirName, configFileName)
}
