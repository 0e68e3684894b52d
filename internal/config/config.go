package config

import (
	"os"
	"strconv"
)

// DefaultBaseURL is the public demo deployment of the booking platform. Both
// the UI and the API live on the same host.
const DefaultBaseURL = "https://automationintesting.online"

type Config struct {
	// BaseURL is the web UI host.
	BaseURL string
	// APIBaseURL is the REST endpoint host, usually identical to BaseURL.
	APIBaseURL string
	// Headless controls whether the browser renders a window.
	Headless bool
	// ScreenshotDir receives on-failure captures.
	ScreenshotDir string
	// CI tightens behavior on build machines (always headless).
	CI bool
	// LogLevel feeds logging.New.
	LogLevel string
}

// FromEnv reads configuration from the environment. Callers load .env first
// (godotenv) at process entry points.
func FromEnv() Config {
	cfg := Config{
		BaseURL:       envOr("BASE_URL", DefaultBaseURL),
		APIBaseURL:    os.Getenv("API_BASE_URL"),
		Headless:      envBool("HEADLESS", true),
		ScreenshotDir: envOr("SCREENSHOT_DIR", "test-results/screenshots"),
		CI:            envBool("CI", false),
		LogLevel:      envOr("LOG_LEVEL", "info"),
	}

	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = cfg.BaseURL
	}

	if cfg.CI {
		cfg.Headless = true
	}

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}

	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}

	return parsed
}
