// Package where resolves the platform directories used by the player.
package where

import (
	"os"
	"path/filepath"
)

const appName = "easecli"

// EnvConfigPath overrides the configuration directory
const EnvConfigPath = "EASECLI_CONFIG_PATH"

func ensureDir(path string) string {
	_ = os.MkdirAll(path, os.ModePerm)
	return path
}

func home() string {
	dir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return dir
}

// Config returns the configuration directory
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}
	return filepath.Join(home(), ".config", appName)
}

// Logs returns the directory log files are written to
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// Audio returns the user's music folder, where downloaded tracks are kept.
// XDG_MUSIC_DIR wins when set; every supported platform otherwise uses ~/Music.
func Audio() string {
	if dir := os.Getenv("XDG_MUSIC_DIR"); dir != "" {
		return dir
	}
	return filepath.Join(home(), "Music")
}
