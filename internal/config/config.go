// Package config loads the devblog configuration from the environment and
// an optional .env file.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/luisacerv/devblog"
)

// Config holds the settings read from the environment.
type Config struct {
	SiteName        string `mapstructure:"site_name"`
	SiteURL         string `mapstructure:"site_url"`
	SiteDescription string `mapstructure:"site_description"`
	SiteAuthor      string `mapstructure:"site_author"`
	ShareHandle     string `mapstructure:"share_handle"`

	Addr         string `mapstructure:"addr"`
	ContentDir   string `mapstructure:"content_dir"`
	DatabasePath string `mapstructure:"database_path"`
	AvatarPath   string `mapstructure:"avatar_path"`

	LoadTimeoutSeconds int64         `mapstructure:"load_timeout"`
	LoadTimeout        time.Duration `mapstructure:"-"`
	LoadLimit          int           `mapstructure:"load_limit"`

	LogLevel string `mapstructure:"log_level"`
}

// Load reads .env (if present) and the environment. Unset keys take their
// defaults.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	v := viper.New()

	v.SetDefault("site_name", "Luis Cervantes")
	v.SetDefault("site_url", "http://localhost:3000")
	v.SetDefault("site_description", "Notes on software, crypto and solving problems.")
	v.SetDefault("site_author", "Luis Cervantes")
	v.SetDefault("share_handle", "luis_acervantes")
	v.SetDefault("addr", ":3000")
	v.SetDefault("content_dir", "")
	v.SetDefault("database_path", "")
	v.SetDefault("avatar_path", "")
	v.SetDefault("load_timeout", 10) // seconds
	v.SetDefault("load_limit", 60)
	v.SetDefault("log_level", "info")

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.LoadTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid load_timeout (must be positive seconds)")
	}
	cfg.LoadTimeout = time.Duration(cfg.LoadTimeoutSeconds) * time.Second

	if cfg.LoadLimit <= 0 {
		return nil, fmt.Errorf("invalid load_limit (must be positive)")
	}
	return &cfg, nil
}

// Site converts the settings into the App configuration.
func (c *Config) Site() devblog.SiteConfig {
	return devblog.SiteConfig{
		Name:         c.SiteName,
		URL:          c.SiteURL,
		Description:  c.SiteDescription,
		Author:       c.SiteAuthor,
		ShareHandle:  c.ShareHandle,
		Addr:         c.Addr,
		ContentDir:   c.ContentDir,
		DatabasePath: c.DatabasePath,
		AvatarPath:   c.AvatarPath,
		LoadTimeout:  c.LoadTimeout,
		LoadLimit:    c.LoadLimit,
	}
}
