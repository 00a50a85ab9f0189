package infra

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultUserAgent identifies this client to the backend and the IP
	// geolocation service.
	DefaultUserAgent = "LocalMartGo/1.0"
)

// Config holds all application settings, loaded from YAML with sensitive
// values overridable through environment variables.
type Config struct {
	App struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"app"`

	API struct {
		BaseURL    string `yaml:"base_url"`
		WSURL      string `yaml:"ws_url"`
		Token      string `yaml:"token"`
		TimeoutSec int    `yaml:"timeout_sec"`
	} `yaml:"api"`

	Location struct {
		IPLookupURL     string  `yaml:"ip_lookup_url"`
		GPSTimeoutSec   int     `yaml:"gps_timeout_sec"`
		CacheWindowSec  int     `yaml:"cache_window_sec"`
		DefaultRadiusKm float64 `yaml:"default_radius_km"`
		ManualCity      string  `yaml:"manual_city"`
		EnableFallback  bool    `yaml:"enable_fallback"`
	} `yaml:"location"`

	Payment struct {
		ReturnURL string `yaml:"return_url"`
	} `yaml:"payment"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// LoadConfig reads and parses the configuration file, applies environment
// overrides, and validates the result.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	overrideWithEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks configuration validity
func (c *Config) Validate() error {
	if c.API.BaseURL == "" || (!hasPrefix(c.API.BaseURL, "http://") && !hasPrefix(c.API.BaseURL, "https://")) {
		return fmt.Errorf("invalid API base URL: %s", c.API.BaseURL)
	}

	if c.API.WSURL != "" && !hasPrefix(c.API.WSURL, "ws://") && !hasPrefix(c.API.WSURL, "wss://") {
		return fmt.Errorf("invalid WS URL: %s", c.API.WSURL)
	}

	if c.Location.DefaultRadiusKm <= 0 {
		return fmt.Errorf("default radius must be positive")
	}

	if c.Location.GPSTimeoutSec < 0 || c.Location.CacheWindowSec < 0 {
		return fmt.Errorf("location timeouts must not be negative")
	}

	return nil
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[0:len(prefix)] == prefix
}

// overrideWithEnv applies environment variable overrides for sensitive
// or deployment-specific values.
func overrideWithEnv(cfg *Config) {
	if url := os.Getenv("LOCALMART_API_URL"); url != "" {
		cfg.API.BaseURL = url
	}
	if url := os.Getenv("LOCALMART_WS_URL"); url != "" {
		cfg.API.WSURL = url
	}
	if token := os.Getenv("LOCALMART_TOKEN"); token != "" {
		cfg.API.Token = token
	}
	if url := os.Getenv("LOCALMART_IP_LOOKUP_URL"); url != "" {
		cfg.Location.IPLookupURL = url
	}
}
