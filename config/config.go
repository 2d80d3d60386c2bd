package config

import (
	"time"

	"github.com/yhkl-dev/EaseCLI/where"
)

// Config represents the complete application configuration
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Player  PlayerConfig  `mapstructure:"player"`
	Cache   CacheConfig   `mapstructure:"cache"`
	UI      UIConfig      `mapstructure:"ui"`
	Log     LogConfig     `mapstructure:"log"`
	Account AccountConfig `mapstructure:"account"`
}

// APIConfig contains music service connection settings
type APIConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Timeout int    `mapstructure:"timeout"` // in seconds
}

// PlayerConfig contains playback settings
type PlayerConfig struct {
	TickRate int    `mapstructure:"tick_rate"` // in milliseconds
	Backend  string `mapstructure:"backend"`
	Volume   int    `mapstructure:"volume"` // percent
}

// CacheConfig contains media cache settings
type CacheConfig struct {
	Dir string `mapstructure:"dir"`
}

// UIConfig contains user interface settings
type UIConfig struct {
	EnhancedGraphics bool `mapstructure:"enhanced_graphics"`
	ProgressBarWidth int  `mapstructure:"progress_bar_width"`
	MaxColumnWidth   int  `mapstructure:"max_column_width"`
}

// LogConfig contains log file settings
type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// AccountConfig holds optional credentials for logging in at start
type AccountConfig struct {
	Phone    string `mapstructure:"phone"`
	Password string `mapstructure:"password"`
}

const (
	BackendBeep = "beep"
	BackendMPV  = "mpv"
)

// GetTimeout returns the HTTP timeout as a time.Duration
func (a *APIConfig) GetTimeout() time.Duration {
	return time.Duration(a.Timeout) * time.Second
}

// GetTickRate returns the tick cadence as a time.Duration
func (p *PlayerConfig) GetTickRate() time.Duration {
	return time.Duration(p.TickRate) * time.Millisecond
}

// HasCredentials reports whether auto-login is configured
func (a *AccountConfig) HasCredentials() bool {
	return a.Phone != "" && a.Password != ""
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:3000",
			Timeout: 30,
		},
		Player: PlayerConfig{
			TickRate: 1000,
			Backend:  BackendBeep,
			Volume:   100,
		},
		Cache: CacheConfig{
			Dir: where.Audio(),
		},
		UI: UIConfig{
			EnhancedGraphics: true,
			ProgressBarWidth: 30,
			MaxColumnWidth:   40,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
