package config

import (
	"fmt"

	pkgconfig "github.com/weiawesome/wes-io-live/pkg/config"
	"github.com/weiawesome/wes-io-live/pkg/objectid"
)

type Config struct {
	Server    ServerConfig
	GRPC      GRPCConfig
	ObjectID  ObjectIDConfig  `mapstructure:"objectid"`
	NanoID    NanoIDConfig    `mapstructure:"nanoid"`
	CUID2     CUID2Config     `mapstructure:"cuid2"`
	Batch     BatchConfig     `mapstructure:"batch"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Log       LogConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type GRPCConfig struct {
	Host string
	Port int
}

type ObjectIDConfig struct {
	TimestampPolicy string `mapstructure:"timestamp_policy"`
	DefaultFormat   string `mapstructure:"default_format"`
	DefaultType     int    `mapstructure:"default_type"`
}

type NanoIDConfig struct {
	Size     int    `mapstructure:"size"`
	Alphabet string `mapstructure:"alphabet"`
}

type CUID2Config struct {
	Length int `mapstructure:"length"`
}

type BatchConfig struct {
	Max int `mapstructure:"max"`
}

// RateLimitConfig bounds HTTP requests per client IP. RPS 0 disables it.
type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

type LogConfig struct {
	Level  string
	Pretty bool
}

var defaults = map[string]interface{}{
	"server.host":               "0.0.0.0",
	"server.port":               8090,
	"grpc.host":                 "0.0.0.0",
	"grpc.port":                 50053,
	"objectid.timestamp_policy": "strict",
	"objectid.default_format":   "hex",
	"objectid.default_type":     0,
	"nanoid.size":               21,
	"nanoid.alphabet":           "_-0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ",
	"cuid2.length":              24,
	"batch.max":                 objectid.MaxBatch,
	"ratelimit.rps":             100.0,
	"ratelimit.burst":           200,
	"log.level":                 "info",
	"log.pretty":                false,
}

var envs = map[string]string{
	"server.port":               "PORT",
	"grpc.port":                 "GRPC_PORT",
	"objectid.timestamp_policy": "OBJECTID_TIMESTAMP_POLICY",
	"objectid.default_format":   "OBJECTID_DEFAULT_FORMAT",
	"objectid.default_type":     "OBJECTID_DEFAULT_TYPE",
	"nanoid.size":               "NANOID_SIZE",
	"nanoid.alphabet":           "NANOID_ALPHABET",
	"cuid2.length":              "CUID2_LENGTH",
	"batch.max":                 "BATCH_MAX",
	"ratelimit.rps":             "RATE_LIMIT_RPS",
	"ratelimit.burst":           "RATE_LIMIT_BURST",
	"log.level":                 "LOG_LEVEL",
}

func Load() (*Config, error) {
	return LoadFrom("./config", "config")
}

// LoadFrom reads configName from configPath, applies defaults and
// environment overrides, and validates the result.
func LoadFrom(configPath, configName string) (*Config, error) {
	v, err := pkgconfig.Load(configPath, configName)
	if err != nil {
		return nil, err
	}
	if err := pkgconfig.Apply(v, defaults, envs); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects values the generators would refuse at startup.
func (c *Config) Validate() error {
	if _, err := objectid.ParseTimestampPolicy(c.ObjectID.TimestampPolicy); err != nil {
		return fmt.Errorf("objectid.timestamp_policy: %w", err)
	}
	if _, err := objectid.ParseFormat(c.ObjectID.DefaultFormat); err != nil {
		return fmt.Errorf("objectid.default_format: %w", err)
	}
	if c.ObjectID.DefaultType < 0 || c.ObjectID.DefaultType > objectid.MaxType {
		return fmt.Errorf("objectid.default_type: %w: %d", objectid.ErrInvalidType, c.ObjectID.DefaultType)
	}
	if c.Batch.Max < 1 || c.Batch.Max > objectid.MaxBatch {
		return fmt.Errorf("batch.max must be between 1 and %d, got %d", objectid.MaxBatch, c.Batch.Max)
	}
	if c.RateLimit.RPS < 0 {
		return fmt.Errorf("ratelimit.rps must not be negative, got %v", c.RateLimit.RPS)
	}
	if c.RateLimit.RPS > 0 && c.RateLimit.Burst < 1 {
		return fmt.Errorf("ratelimit.burst must be at least 1 when ratelimit.rps is set, got %d", c.RateLimit.Burst)
	}
	return nil
}

// ObjectIDOptions resolves the typed objectid settings.
func (c *Config) ObjectIDOptions() (objectid.TimestampPolicy, objectid.Format, error) {
	policy, err := objectid.ParseTimestampPolicy(c.ObjectID.TimestampPolicy)
	if err != nil {
		return policy, objectid.Hex, err
	}
	format, err := objectid.ParseFormat(c.ObjectID.DefaultFormat)
	return policy, format, err
}
