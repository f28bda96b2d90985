// Package config provides configuration management for the hoyoctl command
package config

import (
	"os"
	"time"
)

// Config holds all configuration for hoyoctl
type Config struct {
	// Cookie is the raw HoYoLAB browser cookie string.
	Cookie string
	// Language is the response language requested from the service.
	Language string
	// Game selects the target game for game-scoped commands.
	Game string
	// Timeout bounds each HTTP call.
	Timeout time.Duration
}

// Load loads configuration from environment with defaults
func Load() *Config {
	return &Config{
		Cookie:   getEnv("HOYOGO_COOKIE", ""),
		Language: getEnv("HOYOGO_LANG", "en-us"),
		Game:     getEnv("HOYOGO_GAME", "genshin"),
		Timeout:  30 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
