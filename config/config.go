package config

import (
	"os"
	"strings"
)

const (
	defaultDatabasePath = "clients.db"
	defaultPort         = "8080"
	defaultUIAssetsPath = "./web/static"
)

type Config struct {
	// database path
	DatabasePath string

	// listen port
	Port string

	// directory the management UI is served from
	UIAssetsPath string

	// origins allowed by CORS (the UI dev server, a deployed frontend, ...)
	AllowedOrigins []string
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func LoadConfig() (Config, error) {
	cfg := Config{
		DatabasePath: getEnvOrDefault("DATABASE_PATH", defaultDatabasePath),
		Port:         getEnvOrDefault("PORT", defaultPort),
		UIAssetsPath: getEnvOrDefault("UI_ASSETS_PATH", defaultUIAssetsPath),
	}

	origins := getEnvOrDefault("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:8080")
	for _, origin := range strings.Split(origins, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}

	return cfg, nil
}
