package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"github.com/yhkl-dev/EaseCLI/where"
)

// EnvPrefix is prepended to every environment override, e.g. EASECLI_API_BASE_URL
const EnvPrefix = "EASECLI"

// SetDefaults registers DefaultConfig values with viper
func SetDefaults(v *viper.Viper) {
	defaults := DefaultConfig()
	v.SetDefault("api.base_url", defaults.API.BaseURL)
	v.SetDefault("api.timeout", defaults.API.Timeout)
	v.SetDefault("player.tick_rate", defaults.Player.TickRate)
	v.SetDefault("player.backend", defaults.Player.Backend)
	v.SetDefault("player.volume", defaults.Player.Volume)
	v.SetDefault("cache.dir", defaults.Cache.Dir)
	v.SetDefault("ui.enhanced_graphics", defaults.UI.EnhancedGraphics)
	v.SetDefault("ui.progress_bar_width", defaults.UI.ProgressBarWidth)
	v.SetDefault("ui.max_column_width", defaults.UI.MaxColumnWidth)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.json", defaults.Log.JSON)
	v.SetDefault("account.phone", "")
	v.SetDefault("account.password", "")
}

// Load reads config.toml (if any) into a Config. An explicit file path wins
// over the search path. A missing config file is not an error.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(where.Config())
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values the player cannot run without
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("missing required config: api.base_url")
	}
	if c.Player.TickRate <= 0 {
		return fmt.Errorf("player.tick_rate must be positive, got %d", c.Player.TickRate)
	}
	if c.Player.Backend != BackendBeep && c.Player.Backend != BackendMPV {
		return fmt.Errorf("unknown player.backend %q", c.Player.Backend)
	}
	if c.Player.Volume < 0 || c.Player.Volume > 100 {
		return fmt.Errorf("player.volume must be within 0..100, got %d", c.Player.Volume)
	}
	if c.Cache.Dir == "" {
		return fmt.Errorf("missing required config: cache.dir")
	}
	return nil
}
