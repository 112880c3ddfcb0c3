package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lithammer/dedent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    Config
		wantErr bool
	}{
		{
			name: "yaml",
			file: "cfg.yaml",
			content: dedent.Dedent(`
				environment: staging
				region: us-east-1
				base_domain: example.com
				zone_id: Z123
				admin_email: admin@example.com
				tags:
				  team: platform
				state_dir: /tmp/state
				`),
			want: Config{
				Project:     DefaultProject,
				Environment: "staging",
				Region:      "us-east-1",
				BaseDomain:  "example.com",
				ZoneId:      "Z123",
				ZoneName:    "example.com",
				AdminEmail:  "admin@example.com",
				Tags:        map[string]string{"team": "platform"},
				StateDir:    "/tmp/state",
				Format:      "yaml",
			},
		},
		{
			name: "toml",
			file: "cfg.toml",
			content: `
project = "mail"
environment = "production"
region = "eu-west-1"
base_domain = "example.org"
zone_id = "Z9"
zone_name = "example.org"
admin_email = "dmarc@example.org"
state_dir = "/var/state"
`,
			want: Config{
				Project:     "mail",
				Environment: "production",
				Region:      "eu-west-1",
				BaseDomain:  "example.org",
				ZoneId:      "Z9",
				ZoneName:    "example.org",
				AdminEmail:  "dmarc@example.org",
				StateDir:    "/var/state",
				Format:      "toml",
			},
		},
		{
			name: "json",
			file: "cfg.json",
			content: `{"environment": "dev", "region": "us-west-2", "base_domain": "example.net",
				"zone_id": "Z1", "admin_email": "a@example.net", "state_dir": "/s"}`,
			want: Config{
				Project:     DefaultProject,
				Environment: "dev",
				Region:      "us-west-2",
				BaseDomain:  "example.net",
				ZoneId:      "Z1",
				ZoneName:    "example.net",
				AdminEmail:  "a@example.net",
				StateDir:    "/s",
				Format:      "json",
			},
		},
		{
			name:    "unknown field",
			file:    "cfg.yaml",
			content: "environment: dev\nbogus: 1\n",
			wantErr: true,
		},
		{
			name:    "unsupported extension",
			file:    "cfg.ini",
			content: "environment=dev",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert := assert.New(t)
			got, err := Load(writeFile(t, tt.file, tt.content))
			if tt.wantErr {
				assert.Error(err)
				return
			}
			if !assert.NoError(err) {
				return
			}
			assert.Equal(tt.want, got)
		})
	}
}

func TestValidate(t *testing.T) {
	valid := Config{
		Environment: "staging",
		Region:      "us-east-1",
		BaseDomain:  "example.com",
		ZoneId:      "Z123",
		AdminEmail:  "admin@example.com",
	}
	tests := []struct {
		name     string
		mutate   func(c *Config)
		contains []string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{
			name:     "missing zone and region",
			mutate:   func(c *Config) { c.ZoneId = ""; c.Region = "" },
			contains: []string{"zone_id: failed 'required' validation", "region: failed 'required' validation"},
		},
		{
			name:     "bad email",
			mutate:   func(c *Config) { c.AdminEmail = "not-an-email" },
			contains: []string{"admin_email: failed 'email' validation"},
		},
		{
			name:     "public suffix base domain",
			mutate:   func(c *Config) { c.BaseDomain = "co.uk" },
			contains: []string{"invalid domain"},
		},
		{
			name:     "dotted environment",
			mutate:   func(c *Config) { c.Environment = "a.b" },
			contains: []string{"single label"},
		},
		{
			name:     "bad zone name",
			mutate:   func(c *Config) { c.ZoneName = "nodot" },
			contains: []string{"zone_name"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert := assert.New(t)
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if len(tt.contains) == 0 {
				assert.NoError(err)
				return
			}
			if !assert.ErrorIs(err, ErrInvalidConfig) {
				return
			}
			for _, s := range tt.contains {
				assert.Contains(err.Error(), s)
			}
		})
	}
}

func TestApplyDefaults_homeStateDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	cfg := Config{BaseDomain: "example.com", StateDir: "~/states"}
	cfg.ApplyDefaults()
	assert.Equal(t, filepath.Join(home, "states"), cfg.StateDir)
	assert.Equal(t, "example.com", cfg.ZoneName)
	assert.Equal(t, DefaultProject, cfg.Project)
}

func TestKey(t *testing.T) {
	tests := map[string]string{
		"base_domain": "baseDomain",
		"zone_id":     "zoneId",
		"admin_email": "adminEmail",
		"tags":        "tags",
	}
	for field, want := range tests {
		assert.Equal(t, want, Key(field), field)
	}
}
