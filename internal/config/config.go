package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. PAPERDESK_SERVER_PORT.
const EnvPrefix = "PAPERDESK"

// Config is the configuration shared by the dashboard server and the
// audiobook reader.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Market  MarketConfig  `mapstructure:"market"`
	Speech  SpeechConfig  `mapstructure:"speech"`
	PDF     PDFConfig     `mapstructure:"pdf"`
	Tasks   TasksConfig   `mapstructure:"tasks"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds the dashboard HTTP server settings.
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	APIKey          string        `mapstructure:"api_key"` // empty disables auth on /api
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// MarketConfig holds the price history client settings.
type MarketConfig struct {
	BaseURL       string        `mapstructure:"base_url"`
	Timeout       time.Duration `mapstructure:"timeout"`
	RatePerSecond float64       `mapstructure:"rate_per_second"`
	Burst         int           `mapstructure:"burst"`
	MaxRetries    int           `mapstructure:"max_retries"`
	RetryBase     time.Duration `mapstructure:"retry_base"`
	StatsWindow   time.Duration `mapstructure:"stats_window"`
}

// SpeechConfig holds the text-to-speech settings.
type SpeechConfig struct {
	Binary        string  `mapstructure:"binary"`
	Voice         string  `mapstructure:"voice"`
	Transcoder    string  `mapstructure:"transcoder"` // ffmpeg binary; empty disables mp3
	DefaultRate   int     `mapstructure:"default_rate"`
	DefaultVolume float64 `mapstructure:"default_volume"`
	SegmentWords  int     `mapstructure:"segment_words"`
}

type PDFConfig struct {
	FallbackPdftotext bool `mapstructure:"fallback_pdftotext"`
}

type TasksConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// LoggingConfig holds logging configuration. File is used by the
// terminal UI, which cannot log to the screen.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// Load reads configuration from an optional file and environment
// variables. An empty path uses defaults and environment only.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// PORT is honoured for platforms that inject it.
	if err := v.BindEnv("server.port", EnvPrefix+"_SERVER_PORT", "PORT"); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8090")
	v.SetDefault("server.api_key", "")
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.shutdown_timeout", "30s")

	v.SetDefault("market.base_url", "https://query1.finance.yahoo.com")
	v.SetDefault("market.timeout", "15s")
	v.SetDefault("market.rate_per_second", 2.0)
	v.SetDefault("market.burst", 4)
	v.SetDefault("market.max_retries", 3)
	v.SetDefault("market.retry_base", "1s")
	v.SetDefault("market.stats_window", "1h")

	v.SetDefault("speech.binary", "espeak-ng")
	v.SetDefault("speech.voice", "")
	v.SetDefault("speech.transcoder", "ffmpeg")
	v.SetDefault("speech.default_rate", 200)
	v.SetDefault("speech.default_volume", 1.0)
	v.SetDefault("speech.segment_words", 60)

	v.SetDefault("pdf.fallback_pdftotext", true)

	v.SetDefault("tasks.ttl", "1h")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.file", "")
}

// Validate checks that all configuration values are valid.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port == "" {
		errs = append(errs, errors.New("server.port is required"))
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("server.shutdown_timeout must be positive"))
	}

	if c.Market.BaseURL == "" {
		errs = append(errs, errors.New("market.base_url is required"))
	}
	if c.Market.RatePerSecond <= 0 {
		errs = append(errs, errors.New("market.rate_per_second must be positive"))
	}
	if c.Market.Burst < 1 {
		errs = append(errs, errors.New("market.burst must be at least 1"))
	}
	if c.Market.MaxRetries < 0 || c.Market.MaxRetries > 10 {
		errs = append(errs, errors.New("market.max_retries must be between 0 and 10"))
	}

	if c.Speech.Binary == "" {
		errs = append(errs, errors.New("speech.binary is required"))
	}
	if c.Speech.DefaultRate < 80 || c.Speech.DefaultRate > 300 {
		errs = append(errs, errors.New("speech.default_rate must be between 80 and 300"))
	}
	if c.Speech.DefaultVolume < 0 || c.Speech.DefaultVolume > 1 {
		errs = append(errs, errors.New("speech.default_volume must be between 0.0 and 1.0"))
	}
	if c.Speech.SegmentWords < 1 {
		errs = append(errs, errors.New("speech.segment_words must be at least 1"))
	}

	if c.Tasks.TTL <= 0 {
		errs = append(errs, errors.New("tasks.ttl must be positive"))
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		errs = append(errs, errors.New("logging.level must be one of: debug, info, warn, error"))
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Logging.Format] {
		errs = append(errs, errors.New("logging.format must be one of: json, text"))
	}

	return errors.Join(errs...)
}
