package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	API    APIConfig
	Export ExportConfig
	UI     UIConfig
	Log    LogConfig
}

// APIConfig holds ledger backend settings.
type APIConfig struct {
	BaseURL          string `mapstructure:"base_url"`
	Timeout          time.Duration
	BreakerThreshold uint32 `mapstructure:"breaker_threshold"`
}

// ExportConfig holds artifact export settings.
type ExportConfig struct {
	Dir string
}

// UIConfig holds presentation defaults for the query forms.
type UIConfig struct {
	DefaultAccount   string `mapstructure:"default_account"`
	DefaultStartDate string `mapstructure:"default_start_date"`
	DefaultEndDate   string `mapstructure:"default_end_date"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Path  string
	Level string
}

// Load reads configuration from file and env. Env var overrides use prefix
// TELLERDESK_.
func Load() (Config, error) {
	v := viper.New()

	home := os.Getenv("HOME")

	// default values
	v.SetDefault("api.base_url", "http://localhost:8080")
	v.SetDefault("api.timeout", "15s")
	v.SetDefault("api.breaker_threshold", 5)
	v.SetDefault("export.dir", filepath.Join(home, "Documents", "tellerdesk"))
	v.SetDefault("ui.default_account", "478758")
	v.SetDefault("ui.default_start_date", "2026-01-10")
	v.SetDefault("ui.default_end_date", "2026-01-10")
	v.SetDefault("log.path", filepath.Join(home, ".local", "state", "tellerdesk", "tellerdesk.log"))
	v.SetDefault("log.level", "info")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("TELLERDESK_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(home, ".config", "tellerdesk"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("TELLERDESK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}
