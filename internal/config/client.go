package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultRequestTimeout = 10 * time.Second
	defaultAPIBaseURL     = "http://localhost:8080/api/v1"
)

// Client captures configuration for the on-device session core: where the
// MilkChain API lives, how long requests may take, and where credentials are
// persisted between runs.
type Client struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	StorePath      string
	LogLevel       string
}

// clientFile is the YAML shape of the config file. The timeout is a duration
// string ("10s", "1m30s").
type clientFile struct {
	APIBaseURL     string `yaml:"api_base_url"`
	RequestTimeout string `yaml:"request_timeout"`
	StorePath      string `yaml:"store_path"`
	LogLevel       string `yaml:"log_level"`
}

// LoadClient reads client configuration from a YAML file, then applies
// environment overrides (MILKCHAIN_API_URL, MILKCHAIN_STORE_PATH,
// MILKCHAIN_LOG_LEVEL). A missing file is not an error; defaults apply.
func LoadClient(path string) (Client, error) {
	cfg := Client{
		APIBaseURL:     defaultAPIBaseURL,
		RequestTimeout: defaultRequestTimeout,
		LogLevel:       defaultLogLevel,
	}

	if path == "" {
		path = DefaultClientConfigPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var file clientFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return Client{}, fmt.Errorf("parse %s: %w", path, err)
		}
		if file.APIBaseURL != "" {
			cfg.APIBaseURL = file.APIBaseURL
		}
		if file.StorePath != "" {
			cfg.StorePath = file.StorePath
		}
		if file.LogLevel != "" {
			cfg.LogLevel = file.LogLevel
		}
		if file.RequestTimeout != "" {
			d, err := time.ParseDuration(file.RequestTimeout)
			if err != nil {
				return Client{}, fmt.Errorf("invalid request_timeout in %s: %w", path, err)
			}
			cfg.RequestTimeout = d
		}
	case os.IsNotExist(err):
		// defaults
	default:
		return Client{}, fmt.Errorf("read %s: %w", path, err)
	}

	if v := os.Getenv("MILKCHAIN_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("MILKCHAIN_STORE_PATH"); v != "" {
		cfg.StorePath = v
	}
	if v := os.Getenv("MILKCHAIN_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	if cfg.StorePath == "" {
		cfg.StorePath = defaultStorePath()
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}

	return cfg, nil
}

// DefaultClientConfigPath returns ~/.milkchain/config.yaml.
func DefaultClientConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".milkchain", "config.yaml")
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "credentials.db"
	}
	return filepath.Join(home, ".milkchain", "credentials.db")
}
