package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Windsor   WindsorConfig   `yaml:"windsor"`
	Cache     CacheConfig     `yaml:"cache"`
	Report    ReportConfig    `yaml:"report"`
	Companies []CompanyConfig `yaml:"companies"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// WindsorConfig holds settings for the Windsor data connector API
type WindsorConfig struct {
	BaseURL        string `yaml:"base_url"`
	APIKey         string `yaml:"api_key"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	MaxRetries     int    `yaml:"max_retries"`
}

// Timeout returns the connector request timeout as a duration
func (w WindsorConfig) Timeout() time.Duration {
	return time.Duration(w.TimeoutSeconds) * time.Second
}

// CacheConfig holds the Redis report-cache settings. The cache is optional;
// with Enabled false every report request recomputes from the connector.
type CacheConfig struct {
	Enabled       bool   `yaml:"enabled"`
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
	TTLMinutes    int    `yaml:"ttl_minutes"`
}

// TTL returns the cache entry lifetime as a duration
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLMinutes) * time.Minute
}

// ReportConfig holds report-generation settings
type ReportConfig struct {
	TopN            int    `yaml:"top_n"`
	DefaultPlatform string `yaml:"default_platform"`
}

// CompanyConfig maps one client company to its connected platform accounts.
// This mapping is injected into the report assembler; no company table
// lives in code.
type CompanyConfig struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Accounts map[string]string `yaml:"accounts"`
}

// Load reads configuration from a YAML file and applies defaults
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Set defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Windsor.BaseURL == "" {
		cfg.Windsor.BaseURL = "https://connectors.windsor.ai"
	}
	if cfg.Windsor.TimeoutSeconds == 0 {
		cfg.Windsor.TimeoutSeconds = 60
	}
	if cfg.Windsor.MaxRetries == 0 {
		cfg.Windsor.MaxRetries = 3
	}
	if cfg.Cache.RedisAddr == "" {
		cfg.Cache.RedisAddr = "localhost:6379"
	}
	if cfg.Cache.TTLMinutes == 0 {
		cfg.Cache.TTLMinutes = 60
	}
	if cfg.Report.TopN == 0 {
		cfg.Report.TopN = 3
	}
	if cfg.Report.DefaultPlatform == "" {
		cfg.Report.DefaultPlatform = "tiktok"
	}

	return &cfg, nil
}

// LoadFromEnv loads configuration from a YAML file with environment
// variable overrides. A .env file is honored when present.
func LoadFromEnv(path string) (*Config, error) {
	// Load .env file if present (ignore errors - it's optional)
	_ = godotenv.Load()

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	if apiKey := os.Getenv("WINDSOR_API_KEY"); apiKey != "" {
		cfg.Windsor.APIKey = apiKey
	}
	if baseURL := os.Getenv("WINDSOR_BASE_URL"); baseURL != "" {
		cfg.Windsor.BaseURL = baseURL
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Cache.RedisAddr = addr
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		cfg.Cache.RedisPassword = password
	}
	if host := os.Getenv("SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid SERVER_PORT %q: %w", port, err)
		}
		cfg.Server.Port = p
	}

	return cfg, nil
}

// Company returns the configured company with the given id.
func (c *Config) Company(id string) (CompanyConfig, bool) {
	for _, company := range c.Companies {
		if company.ID == id {
			return company, true
		}
	}
	return CompanyConfig{}, false
}
