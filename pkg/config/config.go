package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/klothoplatform/sesdomain/pkg/naming"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

const DefaultProject = "sesdomain"

var ErrInvalidConfig = errors.New("invalid configuration")

// Config describes one email domain deployment. The environment doubles as the stack name.
type Config struct {
	Project     string            `json:"project" yaml:"project" toml:"project"`
	Environment string            `json:"environment" yaml:"environment" toml:"environment" validate:"required"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Region      string            `json:"region" yaml:"region" toml:"region" validate:"required"`
	BaseDomain  string            `json:"base_domain" yaml:"base_domain" toml:"base_domain" validate:"required"`
	ZoneId      string            `json:"zone_id" yaml:"zone_id" toml:"zone_id" validate:"required"`
	ZoneName    string            `json:"zone_name,omitempty" yaml:"zone_name,omitempty" toml:"zone_name,omitempty"`
	AdminEmail  string            `json:"admin_email" yaml:"admin_email" toml:"admin_email" validate:"required,email"`
	Tags        map[string]string `json:"tags,omitempty" yaml:"tags,omitempty" toml:"tags,omitempty"`
	StateDir    string            `json:"state_dir,omitempty" yaml:"state_dir,omitempty" toml:"state_dir,omitempty"`

	// Format is the format the file was read from.
	Format string `json:"-" yaml:"-" toml:"-"`
}

// Load reads a json, yaml or toml config file (by extension), applies defaults and validates it.
func Load(fpath string) (Config, error) {
	var cfg Config

	f, err := os.Open(fpath)
	if err != nil {
		return cfg, errors.Wrap(err, "failed to open config")
	}
	defer f.Close() // nolint:errcheck

	switch filepath.Ext(fpath) {
	case ".json":
		dec := json.NewDecoder(f)
		dec.DisallowUnknownFields()
		err = dec.Decode(&cfg)
		cfg.Format = "json"

	case ".yaml", ".yml":
		dec := yaml.NewDecoder(f)
		dec.KnownFields(true)
		err = dec.Decode(&cfg)
		cfg.Format = "yaml"

	case ".toml":
		dec := toml.NewDecoder(f)
		dec.DisallowUnknownFields()
		err = dec.Decode(&cfg)
		cfg.Format = "toml"

	default:
		err = errors.Errorf("unsupported config extension %q", filepath.Ext(fpath))
	}
	if err != nil {
		return cfg, errors.Wrapf(err, "failed to decode config %s", fpath)
	}
	cfg.ApplyDefaults()
	return cfg, cfg.Validate()
}

func (c *Config) ApplyDefaults() {
	if c.Project == "" {
		c.Project = DefaultProject
	}
	if c.ZoneName == "" {
		c.ZoneName = c.BaseDomain
	}
	if c.StateDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			c.StateDir = filepath.Join(home, "."+DefaultProject, "state")
		}
	} else if rest, ok := strings.CutPrefix(c.StateDir, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			c.StateDir = filepath.Join(home, rest)
		}
	}
}

// Validate reports every problem with the config at once.
func (c Config) Validate() error {
	errs := ValidateStruct(c)
	if c.BaseDomain != "" {
		errs = multierr.Append(errs, naming.ValidateDomain(c.BaseDomain))
	}
	if c.Environment != "" {
		errs = multierr.Append(errs, naming.ValidateEnvironment(c.Environment))
	}
	if c.ZoneName != "" && c.ZoneName != c.BaseDomain {
		if err := naming.ValidateDomain(c.ZoneName); err != nil {
			errs = multierr.Append(errs, errors.Wrap(err, "zone_name"))
		}
	}
	if errs != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errs)
	}
	return nil
}
