// Package config loads the monitor's configuration from environment
// variables, pre-loading a .env file when one is present.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is the process-level configuration surface: every environment
// variable the binary understands, resolved once at startup.
type Config struct {
	ServerURL         string
	ServerPort        int
	Username          string
	Password          string
	NetworkLayoutFile string
	CACertFile        string
	MetricsAddr       string
}

// Load pre-loads a .env file if one exists in the working directory (a
// missing file is not an error) and then reads the LTNM_* environment
// variables into a Config.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("config: loading .env: %w", err)
	}

	port, err := strconv.Atoi(getenv("LTNM_SERVER_PORT", "443"))
	if err != nil {
		return Config{}, fmt.Errorf("config: LTNM_SERVER_PORT: %w", err)
	}

	cfg := Config{
		ServerURL:         os.Getenv("LTNM_SERVER_URL"),
		ServerPort:        port,
		Username:          os.Getenv("LTNM_USERNAME"),
		Password:          os.Getenv("LTNM_PASSWORD"),
		NetworkLayoutFile: os.Getenv("LTNM_NETWORK_LAYOUT_FILE_PATH"),
		CACertFile:        os.Getenv("LTNM_CA_CERT_FILE"),
		MetricsAddr:       getenv("LTNM_METRICS_ADDR", ":8080"),
	}
	if cfg.ServerURL == "" {
		return Config{}, fmt.Errorf("config: LTNM_SERVER_URL is required")
	}
	if cfg.CACertFile == "" {
		return Config{}, fmt.Errorf("config: LTNM_CA_CERT_FILE is required")
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
