// Package config resolves runtime settings from an optional catalog.yaml
// plus environment overrides. Env always wins so deployments can tweak a
// setting without touching the file.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the full runtime configuration.
type Config struct {
	Port          string `yaml:"port"`
	DataDir       string `yaml:"data_dir"`
	SiteDir       string `yaml:"site_dir"`
	StaticDir     string `yaml:"static_dir"`
	WatermarkText string `yaml:"watermark_text"`
	FontPath      string `yaml:"font_path"`
	AdminPassword string `yaml:"admin_password"`
	RenderWorkers int64  `yaml:"render_workers"`
}

// Defaults mirrors the site's layout: data/ and images/ siblings under
// the site root, with static assets served from it directly.
func Defaults() Config {
	return Config{
		Port:          "8888",
		DataDir:       "data",
		SiteDir:       ".",
		StaticDir:     "static",
		WatermarkText: "GeorgiaJedi",
		FontPath:      "",
		RenderWorkers: 2,
	}
}

// Load reads path (if it exists) and applies env overrides. A missing
// file is fine; a malformed one is an error.
func Load(path string) (Config, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if cfg.RenderWorkers < 1 {
		cfg.RenderWorkers = 2
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setString(&cfg.Port, "CATALOG_PORT")
	setString(&cfg.DataDir, "CATALOG_DATA_DIR")
	setString(&cfg.SiteDir, "CATALOG_SITE_DIR")
	setString(&cfg.StaticDir, "CATALOG_STATIC_DIR")
	setString(&cfg.WatermarkText, "CATALOG_WATERMARK_TEXT")
	setString(&cfg.FontPath, "CATALOG_FONT_PATH")
	setString(&cfg.AdminPassword, "CATALOG_ADMIN_PASSWORD")
	if v := os.Getenv("CATALOG_RENDER_WORKERS"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			cfg.RenderWorkers = n
		}
	}
}
