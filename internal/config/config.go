// Package config loads server and play settings from an optional YAML file
// overlaid with command line flags.
package config

import (
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/onemillion/internal/clients/imagefeed"
	"github.com/KirkDiggler/onemillion/internal/engine"
	"github.com/KirkDiggler/onemillion/internal/errors"
)

// Flag names
const (
	FlagConfig        = "config"
	FlagHTTPPort      = "http-port"
	FlagGRPCPort      = "grpc-port"
	FlagRedisAddr     = "redis-addr"
	FlagDatabase      = "database"
	FlagMitigation    = "mitigation"
	FlagImageURL      = "image-url"
	FlagImageTimeout  = "image-timeout"
	FlagFallbackImage = "fallback-image"
	FlagWaitPeriod    = "wait-period"
	FlagAssetDir      = "asset-dir"
	FlagLogLevel      = "log-level"
)

// Config holds every runtime setting
type Config struct {
	HTTPPort int `yaml:"http_port"`
	GRPCPort int `yaml:"grpc_port"`

	// RedisAddr selects the Redis high score store; empty keeps it in memory
	RedisAddr string `yaml:"redis_addr"`

	// Database is a SQLite file for game runs; empty keeps them in memory
	Database string `yaml:"database"`

	Mitigation    string        `yaml:"mitigation"`
	ImageURL      string        `yaml:"image_url"`
	ImageTimeout  time.Duration `yaml:"image_timeout"`
	FallbackImage string        `yaml:"fallback_image"`

	// WaitPeriod is how long play pauses before each deferred step
	WaitPeriod time.Duration `yaml:"wait_period"`

	// AssetDir resolves local image paths for the board image
	AssetDir string `yaml:"asset_dir"`

	LogLevel string `yaml:"log_level"`
}

// Default returns the built in settings
func Default() *Config {
	return &Config{
		HTTPPort:      8080,
		GRPCPort:      50051,
		Mitigation:    string(engine.MitigationDefense),
		ImageURL:      imagefeed.DefaultURL,
		ImageTimeout:  imagefeed.DefaultTimeout,
		FallbackImage: "imgs/dragon.png",
		WaitPeriod:    2 * time.Second,
		AssetDir:      ".",
		LogLevel:      "info",
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.InvalidArgumentf("failed to read config file %s: %v", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.InvalidArgumentf("failed to parse config file %s: %v", path, err)
	}

	return cfg, nil
}

// RegisterFlags binds the flags to c, which should hold the defaults
func (c *Config) RegisterFlags(fs *pflag.FlagSet) {
	fs.IntVar(&c.HTTPPort, FlagHTTPPort, c.HTTPPort, "HTTP API port")
	fs.IntVar(&c.GRPCPort, FlagGRPCPort, c.GRPCPort, "gRPC health port")
	fs.StringVar(&c.RedisAddr, FlagRedisAddr, c.RedisAddr, "Redis address for the high score (in memory when empty)")
	fs.StringVar(&c.Database, FlagDatabase, c.Database, "SQLite file for game runs (in memory when empty)")
	fs.StringVar(&c.Mitigation, FlagMitigation, c.Mitigation, "defend mitigation: defense or halve")
	fs.StringVar(&c.ImageURL, FlagImageURL, c.ImageURL, "decorative image feed URL")
	fs.DurationVar(&c.ImageTimeout, FlagImageTimeout, c.ImageTimeout, "image feed timeout")
	fs.StringVar(&c.FallbackImage, FlagFallbackImage, c.FallbackImage, "image shown when the feed fails")
	fs.DurationVar(&c.WaitPeriod, FlagWaitPeriod, c.WaitPeriod, "pause before boss turns and announcements")
	fs.StringVar(&c.AssetDir, FlagAssetDir, c.AssetDir, "directory holding local images")
	fs.StringVar(&c.LogLevel, FlagLogLevel, c.LogLevel, "log level: debug, info, warn, error")
}

// Merge copies the flags the user set from flags onto c
func (c *Config) Merge(fs *pflag.FlagSet, flags *Config) {
	fs.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case FlagHTTPPort:
			c.HTTPPort = flags.HTTPPort
		case FlagGRPCPort:
			c.GRPCPort = flags.GRPCPort
		case FlagRedisAddr:
			c.RedisAddr = flags.RedisAddr
		case FlagDatabase:
			c.Database = flags.Database
		case FlagMitigation:
			c.Mitigation = flags.Mitigation
		case FlagImageURL:
			c.ImageURL = flags.ImageURL
		case FlagImageTimeout:
			c.ImageTimeout = flags.ImageTimeout
		case FlagFallbackImage:
			c.FallbackImage = flags.FallbackImage
		case FlagWaitPeriod:
			c.WaitPeriod = flags.WaitPeriod
		case FlagAssetDir:
			c.AssetDir = flags.AssetDir
		case FlagLogLevel:
			c.LogLevel = flags.LogLevel
		}
	})
}

// Validate checks every setting
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRange("http_port", c.HTTPPort, 1, 65535, vb)
	errors.ValidateRange("grpc_port", c.GRPCPort, 1, 65535, vb)
	if c.HTTPPort == c.GRPCPort {
		vb.Field("grpc_port", "must differ from http_port")
	}

	errors.ValidateEnum("mitigation", c.Mitigation, engine.Mitigations(), vb)

	if u, err := url.Parse(c.ImageURL); err != nil || !u.IsAbs() {
		vb.Field("image_url", "must be an absolute URL")
	}
	if c.ImageTimeout <= 0 {
		vb.Field("image_timeout", "must be positive")
	}
	errors.ValidateRequired("fallback_image", c.FallbackImage, vb)
	if c.WaitPeriod < 0 {
		vb.Field("wait_period", "must not be negative")
	}
	errors.ValidateEnum("log_level", strings.ToLower(c.LogLevel), []string{"debug", "info", "warn", "error"}, vb)

	return vb.Build()
}

// Level returns the slog level for LogLevel
func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
