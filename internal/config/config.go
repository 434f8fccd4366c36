// Package config loads service configuration from a YAML file with
// environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"time"
)

const (
	defaultServerPort    = 8060
	defaultServerTimeout = 30
	defaultRedisAddress  = "localhost:6379"
	defaultMinBodySize   = 100
)

type Config struct {
	Debug          bool                 `env:"APP_DEBUG" yaml:"debug"`
	Server         ServerConfig         `yaml:"server"`
	Sites          SitesConfig          `yaml:"sites"`
	Redis          RedisConfig          `yaml:"redis"`
	Headers        HeaderProfiles       `yaml:"headers"`
	ConnectionTest ConnectionTestConfig `yaml:"connection_test"`
}

type ServerConfig struct {
	Host         string        `env:"SERVER_HOST" yaml:"host"`
	Port         int           `env:"SERVER_PORT" yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	CORSOrigins  []string      `env:"CORS_ORIGINS" yaml:"cors_origins"`
}

// SitesConfig locates the persisted site-configuration file.
type SitesConfig struct {
	File  string `env:"SITES_FILE" yaml:"file"`
	Watch bool   `env:"SITES_WATCH" yaml:"watch"` // reload on external edits
}

// RedisConfig holds Redis connection configuration for event publishing.
type RedisConfig struct {
	Address  string `env:"REDIS_ADDRESS"        yaml:"address"`
	Password string `env:"REDIS_PASSWORD"       yaml:"password"`
	DB       int    `env:"REDIS_DB"             yaml:"db"`
	Enabled  bool   `env:"REDIS_EVENTS_ENABLED" yaml:"enabled"`
}

// HeaderProfiles holds the two fixed outbound header sets: the lean search
// profile and the fuller browser-fingerprint profile used by connection tests.
type HeaderProfiles struct {
	Search map[string]string `yaml:"search"`
	Test   map[string]string `yaml:"test"`
}

// ConnectionTestConfig tunes site health checks.
type ConnectionTestConfig struct {
	Keywords           []string `yaml:"keywords"`
	MinResponseSize    int      `yaml:"min_response_size"`
	InvalidIndicators  []string `yaml:"invalid_indicators"`
	ValidResponseCodes []int    `yaml:"valid_response_codes"`
}

func (c *Config) Validate() error {
	if c.Server.Host == "" {
		return errors.New("server.host is required")
	}
	if c.Server.Port <= 0 {
		return errors.New("server.port is required and must be positive")
	}
	if c.Sites.File == "" {
		return errors.New("sites.file is required")
	}
	return nil
}

// Load reads the config file, applies defaults, then env overrides.
func Load(path string) (*Config, error) {
	cfg, err := loadWithDefaults[Config](path, setDefaults)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func setDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaultServerPort
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = defaultServerTimeout * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = defaultServerTimeout * time.Second
	}
	if len(cfg.Server.CORSOrigins) == 0 {
		cfg.Server.CORSOrigins = []string{
			"http://localhost:5173",
			"http://localhost:8080",
		}
	}
	if cfg.Sites.File == "" {
		cfg.Sites.File = "sites.json"
	}
	if cfg.Redis.Address == "" {
		cfg.Redis.Address = defaultRedisAddress
	}
	if len(cfg.Headers.Search) == 0 {
		cfg.Headers.Search = map[string]string{
			"Accept":     "application/json",
			"User-Agent": "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/138.0.0.0 Safari/537.36 Edg/138.0.0.0",
		}
	}
	if len(cfg.Headers.Test) == 0 {
		cfg.Headers.Test = map[string]string{
			"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/138.0.0.0 Safari/537.36",
			"Accept":          "application/json",
			"Accept-Language": "zh-CN,zh;q=0.9,en;q=0.8",
			"Accept-Encoding": "gzip, deflate",
			"Cache-Control":   "no-cache",
			"Pragma":          "no-cache",
		}
	}
	if len(cfg.ConnectionTest.Keywords) == 0 {
		cfg.ConnectionTest.Keywords = []string{"电影", "电视剧", "动漫", "综艺", "纪录片"}
	}
	if cfg.ConnectionTest.MinResponseSize == 0 {
		cfg.ConnectionTest.MinResponseSize = defaultMinBodySize
	}
	if len(cfg.ConnectionTest.InvalidIndicators) == 0 {
		cfg.ConnectionTest.InvalidIndicators = []string{
			"verify", "captcha", "验证", "人机验证", "Request ID",
		}
	}
	if len(cfg.ConnectionTest.ValidResponseCodes) == 0 {
		cfg.ConnectionTest.ValidResponseCodes = []int{1, 0, 200}
	}
}
