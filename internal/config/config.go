package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"mosaicbot/internal/core/domain"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	LogLevel       string
	LogPretty      bool
	MaxImages      int
	Workers        int
	MaxPixels      int
	OutputDir      string
	OutputPrefix   string
	HTTPAddr       string
	MaxUploadBytes int64
	BotToken       string
	HandlerTimeout time.Duration
}

func setDefaults() {
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.pretty", true)
	viper.SetDefault("batch.max_images", domain.DefaultMaxImages)
	viper.SetDefault("batch.workers", 1)
	viper.SetDefault("batch.max_pixels", 50_000_000)
	viper.SetDefault("output.dir", ".")
	viper.SetDefault("output.prefix", domain.DefaultOutputPrefix)
	viper.SetDefault("http.addr", ":8080")
	viper.SetDefault("http.max_upload_mb", 256)
	viper.SetDefault("handler.timeout", "60s")
}

// Read loads config.toml from the working directory, if present, and environment overrides
// prefixed with MOSAIC_.
func Read() error {
	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("toml")
	viper.SetEnvPrefix("mosaic")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	log.Debug().Msg("reading config file...")
	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("could not read config file: %w", err)
		}
		log.Debug().Msg("no config file found, using defaults")
	}

	return nil
}

// Load turns the current viper state into a Config.
func Load() (*Config, error) {
	setDefaults()

	timeout, err := time.ParseDuration(viper.GetString("handler.timeout"))
	if err != nil {
		return nil, fmt.Errorf("invalid handler timeout in config: %w", err)
	}

	cfg := &Config{
		LogLevel:       viper.GetString("log.level"),
		LogPretty:      viper.GetBool("log.pretty"),
		MaxImages:      viper.GetInt("batch.max_images"),
		Workers:        viper.GetInt("batch.workers"),
		MaxPixels:      viper.GetInt("batch.max_pixels"),
		OutputDir:      viper.GetString("output.dir"),
		OutputPrefix:   viper.GetString("output.prefix"),
		HTTPAddr:       viper.GetString("http.addr"),
		MaxUploadBytes: viper.GetInt64("http.max_upload_mb") << 20,
		BotToken:       viper.GetString("telegram.bot_token"),
		HandlerTimeout: timeout,
	}

	if cfg.MaxImages < 1 {
		return nil, fmt.Errorf("batch.max_images must be positive, got %d", cfg.MaxImages)
	}

	if cfg.Workers < 1 {
		return nil, fmt.Errorf("batch.workers must be positive, got %d", cfg.Workers)
	}

	return cfg, nil
}

// SetupLogging applies the configured level and output format to the global logger.
func SetupLogging(cfg *Config) {
	var logLevel zerolog.Level

	switch cfg.LogLevel {
	case "info":
		logLevel = zerolog.InfoLevel
	case "debug":
		logLevel = zerolog.DebugLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	}
}
