// Package config loads node configuration from a YAML file, with
// environment variable overrides and defaults suitable for running with no
// config file at all (the CLI's bare `node <port>` invocation).
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full node configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Chain     ChainConfig     `yaml:"chain"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// LoggingConfig controls the zerolog logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// CORSConfig controls the CORS middleware.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
	AllowedMethods []string `yaml:"allowed_methods"`
	AllowedHeaders []string `yaml:"allowed_headers"`
}

// RateLimitConfig controls the token-bucket rate limiter.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// ChainConfig controls mining and peer-communication behavior.
type ChainConfig struct {
	Difficulty  int           `yaml:"difficulty"`
	PeerTimeout time.Duration `yaml:"peer_timeout"`
}

// Default returns the configuration used when no file is present: a node
// that works standalone on the given port.
func Default(port string) *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":" + port,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type"},
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 50,
			Burst:             100,
		},
		Chain: ChainConfig{
			Difficulty:  2,
			PeerTimeout: 10 * time.Second,
		},
	}
}

// Load reads configPath if present, falling back to Default(port) if it
// doesn't exist, then applies environment variable overrides and validates
// the result.
func Load(configPath string, port string) (*Config, error) {
	cfg := Default(port)

	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if port != "" {
		cfg.Server.Addr = ":" + port
	}
	if addr := os.Getenv("BLOCKNODE_SERVER_ADDR"); addr != "" {
		cfg.Server.Addr = addr
	}
	if level := os.Getenv("BLOCKNODE_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	if diff := os.Getenv("BLOCKNODE_DIFFICULTY"); diff != "" {
		n, err := strconv.Atoi(diff)
		if err != nil {
			return nil, fmt.Errorf("parse BLOCKNODE_DIFFICULTY: %w", err)
		}
		cfg.Chain.Difficulty = n
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Validate checks invariants Load can't fix with a default.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Chain.Difficulty < 0 {
		return fmt.Errorf("chain.difficulty must be non-negative")
	}
	return nil
}
