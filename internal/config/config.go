package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr                string
	AllowedOrigins      string
	RedisURL            string
	GameTTL             time.Duration
	LogLevel            string
	Development         bool
	MatchmakingInterval time.Duration
}

func defaults() Config {
	return Config{
		Addr:                ":3000",
		AllowedOrigins:      "http://localhost:5173",
		GameTTL:             24 * time.Hour,
		LogLevel:            "info",
		MatchmakingInterval: time.Second,
	}
}

// Load reads SZACHY_* environment variables, then lets command-line flags in
// args override them.
func Load(args []string) (Config, error) {
	cfg := defaults()
	if err := cfg.fromEnv(); err != nil {
		return Config{}, err
	}

	fs := flag.NewFlagSet("szachy", flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP listen address")
	fs.StringVar(&cfg.AllowedOrigins, "origins", cfg.AllowedOrigins, "Comma-separated allowed CORS and websocket origins")
	fs.StringVar(&cfg.RedisURL, "redis", cfg.RedisURL, "Redis URL (empty keeps games in memory)")
	fs.DurationVar(&cfg.GameTTL, "game-ttl", cfg.GameTTL, "How long Redis keeps a game (0 = forever)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	fs.BoolVar(&cfg.Development, "dev", cfg.Development, "Human-readable development logging")
	fs.DurationVar(&cfg.MatchmakingInterval, "matchmaking-interval", cfg.MatchmakingInterval, "How often queued players are paired")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) fromEnv() error {
	if v, ok := os.LookupEnv("SZACHY_ADDR"); ok {
		c.Addr = v
	}
	if v, ok := os.LookupEnv("SZACHY_ALLOWED_ORIGINS"); ok {
		c.AllowedOrigins = v
	}
	if v, ok := os.LookupEnv("SZACHY_REDIS_URL"); ok {
		c.RedisURL = v
	}
	if v, ok := os.LookupEnv("SZACHY_LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	if v, ok := os.LookupEnv("SZACHY_DEV"); ok {
		dev, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("SZACHY_DEV: %w", err)
		}
		c.Development = dev
	}
	if v, ok := os.LookupEnv("SZACHY_GAME_TTL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("SZACHY_GAME_TTL: %w", err)
		}
		c.GameTTL = d
	}
	if v, ok := os.LookupEnv("SZACHY_MATCHMAKING_INTERVAL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("SZACHY_MATCHMAKING_INTERVAL: %w", err)
		}
		c.MatchmakingInterval = d
	}
	return nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return errors.New("listen address is empty")
	}
	if len(c.Origins()) == 0 {
		return errors.New("at least one allowed origin is required")
	}
	if c.MatchmakingInterval <= 0 {
		return fmt.Errorf("matchmaking interval must be positive, got %s", c.MatchmakingInterval)
	}
	if c.GameTTL < 0 {
		return fmt.Errorf("game ttl must not be negative, got %s", c.GameTTL)
	}
	return nil
}

// Origins splits AllowedOrigins on commas.
func (c Config) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
