// Package config loads wegive settings from defaults, an optional YAML file,
// WEGIVE_* environment variables and bound command-line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Makepad-fr/wegive/internal/model"
)

const (
	EnvPrefix = "wegive"
	FileName  = "wegive"
	// KeyDelimiter separates nested keys. Addresses in geocoding.static
	// often contain dots, so the viper default "." cannot be used.
	KeyDelimiter = "::"
)

// Key joins a nested configuration path, e.g. Key("data", "dir").
func Key(parts ...string) string { return strings.Join(parts, KeyDelimiter) }

type Config struct {
	Data      DataConfig      `mapstructure:"data" yaml:"data"`
	Store     StoreConfig     `mapstructure:"store" yaml:"store"`
	Geocoding GeocodingConfig `mapstructure:"geocoding" yaml:"geocoding"`
	Map       MapConfig       `mapstructure:"map" yaml:"map"`
	Report    ReportConfig    `mapstructure:"report" yaml:"report"`
	Log       LogConfig       `mapstructure:"log" yaml:"log"`
	Sentry    SentryConfig    `mapstructure:"sentry" yaml:"sentry"`
	UI        UIConfig        `mapstructure:"ui" yaml:"ui"`
}

type DataConfig struct {
	Dir string `mapstructure:"dir" yaml:"dir"`
}

type StoreConfig struct {
	Driver string `mapstructure:"driver" yaml:"driver"`
	// File is relative to the data dir unless absolute. Empty picks the
	// driver's default file name.
	File string `mapstructure:"file" yaml:"file"`
}

type GeocodingConfig struct {
	Google  GoogleConfig                `mapstructure:"google" yaml:"google"`
	Timeout time.Duration               `mapstructure:"timeout" yaml:"timeout"`
	Static  map[string]model.Coordinate `mapstructure:"static" yaml:"static"`
}

type GoogleConfig struct {
	APIKey string `mapstructure:"api_key" yaml:"api_key"`
	Region string `mapstructure:"region" yaml:"region"`
}

type MapConfig struct {
	Center     model.Coordinate `mapstructure:"center" yaml:"center"`
	Zoom       int              `mapstructure:"zoom" yaml:"zoom"`
	SingleZoom int              `mapstructure:"single_zoom" yaml:"single_zoom"`
}

type ReportConfig struct {
	Dir string   `mapstructure:"dir" yaml:"dir"`
	S3  S3Config `mapstructure:"s3" yaml:"s3"`
}

type S3Config struct {
	Bucket    string `mapstructure:"bucket" yaml:"bucket"`
	Prefix    string `mapstructure:"prefix" yaml:"prefix"`
	Region    string `mapstructure:"region" yaml:"region"`
	AccessKey string `mapstructure:"access_key" yaml:"access_key"`
	SecretKey string `mapstructure:"secret_key" yaml:"secret_key"`
}

type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	// File "-" logs to stderr; empty means <data dir>/wegive.log.
	File string `mapstructure:"file" yaml:"file"`
}

type SentryConfig struct {
	DSN         string `mapstructure:"dsn" yaml:"dsn"`
	Environment string `mapstructure:"environment" yaml:"environment"`
}

type UIConfig struct {
	// Theme is classic, neon or mono.
	Theme string `mapstructure:"theme" yaml:"theme"`
	// Color is auto, always or never.
	Color string `mapstructure:"color" yaml:"color"`
}

// New returns a viper instance with defaults and environment lookup set up.
// Callers may bind flags to it before calling Load.
func New() *viper.Viper {
	v := viper.NewWithOptions(viper.KeyDelimiter(KeyDelimiter))
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(KeyDelimiter, "_"))
	v.AutomaticEnv()
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(Key("data", "dir"), defaultDataDir())
	v.SetDefault(Key("store", "driver"), "json")
	v.SetDefault(Key("store", "file"), "")
	v.SetDefault(Key("geocoding", "google", "api_key"), "")
	v.SetDefault(Key("geocoding", "google", "region"), "")
	v.SetDefault(Key("geocoding", "timeout"), "0s")
	v.SetDefault(Key("geocoding", "static"), map[string]any{})
	v.SetDefault(Key("map", "center", "lat"), 1.2966)
	v.SetDefault(Key("map", "center", "lng"), 103.8521)
	v.SetDefault(Key("map", "zoom"), 12)
	v.SetDefault(Key("map", "single_zoom"), 14)
	v.SetDefault(Key("report", "dir"), ".")
	v.SetDefault(Key("report", "s3", "bucket"), "")
	v.SetDefault(Key("report", "s3", "prefix"), "")
	v.SetDefault(Key("report", "s3", "region"), "")
	v.SetDefault(Key("report", "s3", "access_key"), "")
	v.SetDefault(Key("report", "s3", "secret_key"), "")
	v.SetDefault(Key("log", "level"), "info")
	v.SetDefault(Key("log", "file"), "")
	v.SetDefault(Key("sentry", "dsn"), "")
	v.SetDefault(Key("sentry", "environment"), "")
	v.SetDefault(Key("ui", "theme"), "classic")
	v.SetDefault(Key("ui", "color"), "auto")
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".wegive"
	}
	return filepath.Join(home, ".wegive")
}

// Load reads file, or searches ./wegive.yaml and ~/.config/wegive/wegive.yaml
// when file is empty. A missing searched-for file is not an error.
func Load(v *viper.Viper, file string) (Config, error) {
	v.SetConfigType("yaml")
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(FileName)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "wegive"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Map.SingleZoom <= 0 {
		cfg.Map.SingleZoom = 14
	}
	return cfg, nil
}

// Show renders cfg as YAML with secrets masked.
func Show(cfg Config) ([]byte, error) {
	cfg.Geocoding.Google.APIKey = mask(cfg.Geocoding.Google.APIKey)
	cfg.Report.S3.AccessKey = mask(cfg.Report.S3.AccessKey)
	cfg.Report.S3.SecretKey = mask(cfg.Report.S3.SecretKey)
	cfg.Sentry.DSN = mask(cfg.Sentry.DSN)
	return yaml.Marshal(cfg)
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "****"
}
