// Package config handles configuration for the SkillLink client, including
// defaults, environment variables, JSON overlay, and command-line flags.
package config

import (
	"time"

	"github.com/skilllink/skilllink/internal/common"
)

// Environment variable names read by parseEnv. ProjectURL and AnonKey are
// mandatory; everything else has a usable default.
const (
	EnvProjectURL      = "SKILLLINK_URL"
	EnvAnonKey         = "SKILLLINK_ANON_KEY"
	EnvStorageBucket   = "SKILLLINK_STORAGE_BUCKET"
	EnvStorageRegion   = "SKILLLINK_STORAGE_REGION"
	EnvStorageAccessID = "SKILLLINK_STORAGE_ACCESS_ID"
	EnvStorageSecret   = "SKILLLINK_STORAGE_SECRET"
)

// Config holds runtime settings for the SkillLink client.
//
// Fields:
//   - ProjectURL: base URL of the backend project (auth, tables, storage all
//     hang off this endpoint). Mandatory.
//   - AnonKey: the project's anonymous API key, sent with every request.
//     Mandatory.
//   - StorageBucket: bucket used for avatar and post image uploads.
//   - StorageRegion / StorageAccessID / StorageSecret: credentials for the
//     S3-compatible storage endpoint exposed by the project.
//   - SessionStaleAfter: how long a cached session read stays fresh.
//   - RequestTimeout: per-request deadline applied by the REST client.
type Config struct {
	ProjectURL        string
	AnonKey           string
	StorageBucket     string
	StorageRegion     string
	StorageAccessID   string
	StorageSecret     string
	SessionStaleAfter time.Duration
	RequestTimeout    time.Duration
}

// LoadDefaults populates c with sensible defaults. Endpoint and key have no
// default on purpose: they must come from the environment, JSON, or flags.
func (c *Config) LoadDefaults() {
	c.StorageBucket = "avatars"
	c.StorageRegion = "us-east-1"
	c.SessionStaleAfter = 5 * time.Minute
	c.RequestTimeout = 12 * time.Second
}

// Validate checks that mandatory settings are present. A *common.ConfigError
// from here is fatal: the caller must not proceed past startup.
func (c *Config) Validate() error {
	var missing []string
	if c.ProjectURL == "" {
		missing = append(missing, EnvProjectURL)
	}
	if c.AnonKey == "" {
		missing = append(missing, EnvAnonKey)
	}
	if len(missing) > 0 {
		return &common.ConfigError{Missing: missing}
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment, a JSON file (if supplied), and command-line flags.
// Later sources take precedence over earlier ones.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
