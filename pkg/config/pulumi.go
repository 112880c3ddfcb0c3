package config

import (
	"github.com/iancoleman/strcase"
	"github.com/pkg/errors"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	pulumiconfig "github.com/pulumi/pulumi/sdk/v3/go/pulumi/config"
)

// Namespace is the Pulumi config namespace read by [FromPulumi].
const Namespace = "sesdomain"

// Key is the stack config key for a config file field, e.g. "base_domain" is read from
// "sesdomain:baseDomain".
func Key(field string) string {
	return strcase.ToLowerCamel(field)
}

// FromPulumi reads the deployment config from the stack configuration. The environment
// defaults to the stack name and the region to aws:region.
func FromPulumi(ctx *pulumi.Context) (Config, error) {
	c := pulumiconfig.New(ctx, Namespace)
	cfg := Config{
		Project:     ctx.Project(),
		Environment: c.Get(Key("environment")),
		Description: c.Get(Key("description")),
		Region:      pulumiconfig.Get(ctx, "aws:region"),
		BaseDomain:  c.Get(Key("base_domain")),
		ZoneId:      c.Get(Key("zone_id")),
		ZoneName:    c.Get(Key("zone_name")),
		AdminEmail:  c.Get(Key("admin_email")),
		Format:      "pulumi",
	}
	if err := c.GetObject(Key("tags"), &cfg.Tags); err != nil {
		return cfg, errors.Wrap(err, "failed to read tags")
	}
	if cfg.Environment == "" {
		cfg.Environment = ctx.Stack()
	}
	if cfg.ZoneName == "" {
		cfg.ZoneName = cfg.BaseDomain
	}
	return cfg, cfg.Validate()
}
