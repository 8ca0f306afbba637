package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and will be replaced by defaults in main.
type Config struct {
	Addr        string `json:"addr" yaml:"addr" toml:"addr"`
	DatasetsDir string `json:"datasets_dir" yaml:"datasets_dir" toml:"datasets_dir"`
	DBPath      string `json:"db_path" yaml:"db_path" toml:"db_path"`
	LogLevel    string `json:"log_level" yaml:"log_level" toml:"log_level"`

	// Grid defaults; the original site shipped inconsistent constants, so
	// these are tunables rather than fixed values.
	GridSeed int `json:"grid_seed" yaml:"grid_seed" toml:"grid_seed"`
	GridStep int `json:"grid_step" yaml:"grid_step" toml:"grid_step"`

	// Identity settings. AdminEmails is a comma-separated allow-list; any
	// sign-up whose email appears here is provisioned as an admin.
	AdminEmails     string `json:"admin_emails" yaml:"admin_emails" toml:"admin_emails"`
	TokenTTLMinutes int    `json:"token_ttl_minutes" yaml:"token_ttl_minutes" toml:"token_ttl_minutes"`

	CORSEnabled bool   `json:"cors_enabled" yaml:"cors_enabled" toml:"cors_enabled"`
	CORSOrigins string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// ApplyEnv overlays GLAMPD_* environment variables onto cfg. Unset variables
// leave the current value intact.
func ApplyEnv(cfg *Config) error {
	if v := os.Getenv("GLAMPD_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("GLAMPD_DATASETS_DIR"); v != "" {
		cfg.DatasetsDir = v
	}
	if v := os.Getenv("GLAMPD_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("GLAMPD_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("GLAMPD_ADMIN_EMAILS"); v != "" {
		cfg.AdminEmails = v
	}
	if v := os.Getenv("GLAMPD_TOKEN_TTL_MINUTES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid GLAMPD_TOKEN_TTL_MINUTES: %w", err)
		}
		cfg.TokenTTLMinutes = n
	}
	if v := os.Getenv("GLAMPD_CORS_ORIGINS"); v != "" {
		cfg.CORSEnabled = true
		cfg.CORSOrigins = v
	}
	return nil
}

// ApplyDefaults fills unspecified fields with service defaults.
func ApplyDefaults(cfg *Config) {
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "glampd.db"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.GridSeed == 0 {
		cfg.GridSeed = 3
	}
	if cfg.GridStep == 0 {
		cfg.GridStep = 2
	}
	if cfg.TokenTTLMinutes == 0 {
		cfg.TokenTTLMinutes = 12 * 60
	}
}

// ValidateIdentity checks the settings the session adapter cannot start
// without. Catalog and grid endpoints have no such dependency, so this is
// only fatal when the identity subsystem is enabled.
func ValidateIdentity(cfg Config) error {
	if strings.TrimSpace(cfg.DBPath) == "" {
		return fmt.Errorf("identity backend requires db_path")
	}
	if cfg.TokenTTLMinutes < 0 {
		return fmt.Errorf("token_ttl_minutes must not be negative")
	}
	for _, e := range AdminEmailList(cfg) {
		if !strings.Contains(e, "@") {
			return fmt.Errorf("admin_emails entry %q is not an email address", e)
		}
	}
	return nil
}

// AdminEmailList splits the comma-separated allow-list, trimming whitespace
// and dropping empty entries.
func AdminEmailList(cfg Config) []string {
	if cfg.AdminEmails == "" {
		return nil
	}
	parts := strings.Split(cfg.AdminEmails, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// TokenTTL returns the configured token lifetime.
func TokenTTL(cfg Config) time.Duration {
	return time.Duration(cfg.TokenTTLMinutes) * time.Minute
}

// CORSOriginList splits the comma-separated origins value.
func CORSOriginList(cfg Config) []string {
	if cfg.CORSOrigins == "" {
		return nil
	}
	parts := strings.Split(cfg.CORSOrigins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
