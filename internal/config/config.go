// Package config loads the replica driver configuration from YAML or JSON files.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Store kinds.
const (
	StoreNone   = "none"
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

// Config holds every setting the CLI and servers understand.
// Keys mirror the command line flags so files and flags read the same.
type Config struct {
	BaseDir     string            `mapstructure:"base_dir"`
	BinaryPath  string            `mapstructure:"fuse_replica_binary_path"`
	OutputRoot  string            `mapstructure:"output_root_path"`
	LogLevel    string            `mapstructure:"log_level"`
	Strict      bool              `mapstructure:"strict"`
	Timeout     time.Duration     `mapstructure:"timeout"`
	MetricsFile string            `mapstructure:"metrics_file"`
	Env         map[string]string `mapstructure:"env"`
	Store       StoreConfig       `mapstructure:"store"`
}

// StoreConfig selects where run records go.
type StoreConfig struct {
	Kind          string        `mapstructure:"kind"`
	Dir           string        `mapstructure:"dir"`
	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`
	TTL           time.Duration `mapstructure:"ttl"`
	Lock          bool          `mapstructure:"lock"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		LogLevel: "info",
		Store: StoreConfig{
			Kind:      StoreNone,
			Dir:       filepath.Join(".replica", "runs"),
			RedisAddr: "localhost:6379",
		},
	}
}

// Load reads path (YAML unless the extension is .json) on top of Default.
// An empty path returns Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	raw := map[string]any{}
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &raw); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}

	if err := Decode(raw, &cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Decode merges a generic map into cfg. Durations need a unit ("90s", "2h"),
// other scalars are weakly typed and unknown keys are rejected.
func Decode(raw map[string]any, cfg *Config) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			rejectBareDurationHook,
			mapstructure.StringToTimeDurationHookFunc(),
		),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           cfg,
	})
	if err != nil {
		return fmt.Errorf("failed to build config decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

var durationType = reflect.TypeOf(time.Duration(0))

// rejectBareDurationHook refuses numbers for duration fields, so "timeout: 30"
// is an error instead of 30 nanoseconds. Zero stays allowed.
func rejectBareDurationHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != durationType {
		return data, nil
	}
	switch from.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		if reflect.ValueOf(data).IsZero() {
			return data, nil
		}
		return nil, fmt.Errorf("duration %v needs a unit, e.g. \"%vs\"", data, data)
	}
	return data, nil
}

// Validate checks enumerated and non-negative fields.
func (c Config) Validate() error {
	switch c.Store.Kind {
	case StoreNone, StoreMemory, StoreFile, StoreRedis:
	default:
		return fmt.Errorf("invalid config: unknown store kind %q", c.Store.Kind)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("invalid config: timeout must not be negative")
	}
	if c.Store.TTL < 0 {
		return fmt.Errorf("invalid config: store ttl must not be negative")
	}
	return nil
}
