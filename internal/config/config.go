package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultFeedURL         = "https://www.hamqsl.com/solarxml.php"
	defaultRefreshInterval = 5 * time.Minute
	defaultRequestTimeout  = 30 * time.Second
	defaultPort            = 8080
)

// Config holds environment-driven settings for the propagation server.
type Config struct {
	FeedURL         string
	RefreshInterval time.Duration
	RequestTimeout  time.Duration
	Port            int
}

// Load reads configuration from environment variables (optionally .env).
func Load() (Config, error) {
	_ = godotenv.Load() // ignore missing file

	cfg := Config{
		FeedURL:         defaultFeedURL,
		RefreshInterval: defaultRefreshInterval,
		RequestTimeout:  defaultRequestTimeout,
		Port:            defaultPort,
	}

	if url := strings.TrimSpace(os.Getenv("SOLAR_FEED_URL")); url != "" {
		cfg.FeedURL = url
	}

	if v := strings.TrimSpace(os.Getenv("FEED_REFRESH_INTERVAL")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return cfg, fmt.Errorf("invalid FEED_REFRESH_INTERVAL: %s", v)
		}
		cfg.RefreshInterval = d
	}

	if v := strings.TrimSpace(os.Getenv("FEED_REQUEST_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return cfg, fmt.Errorf("invalid FEED_REQUEST_TIMEOUT: %s", v)
		}
		cfg.RequestTimeout = d
	}

	if portStr := strings.TrimSpace(os.Getenv("PORT")); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			cfg.Port = port
		} else {
			return cfg, fmt.Errorf("invalid PORT: %s", portStr)
		}
	}

	return cfg, nil
}

// ListenAddr returns the host:port string for the HTTP server.
func (c Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}
