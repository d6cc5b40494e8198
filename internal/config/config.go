// Package config loads the settings of the import driver and CLI.
//
// Values come, lowest precedence first, from built-in defaults, an optional
// YAML config file and PROJIMPORT_* environment variables. A .env file in the
// working directory is loaded into the environment first.
package config

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "PROJIMPORT"

const maxWorkers = 64

// Config holds the driver settings.
type Config struct {
	// Workers bounds the records transformed concurrently within one pass.
	Workers int `mapstructure:"workers"`
	// Mapping is the path of the mapping file.
	Mapping string `mapstructure:"mapping"`
	// Bundle is the path of the exported record bundle.
	Bundle string `mapstructure:"bundle"`
	// TargetDB is the destination database used to look up issues of other
	// projects by key. postgres:// URLs use pgx, anything else sqlite.
	TargetDB string `mapstructure:"target_db"`
	// LookupTimeout bounds the retries of one lookup by key.
	LookupTimeout time.Duration `mapstructure:"lookup_timeout"`

	Log LogConfig `mapstructure:"log"`
}

// LogConfig selects the log level and format.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("workers", 4)
	v.SetDefault("mapping", "")
	v.SetDefault("bundle", "")
	v.SetDefault("target_db", "")
	v.SetDefault("lookup_timeout", 10*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Load reads the configuration. An empty path skips the config file.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var errs []error

	if c.Workers < 1 || c.Workers > maxWorkers {
		errs = append(errs, fmt.Errorf("workers must be between 1 and %d, got %d", maxWorkers, c.Workers))
	}

	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be text or json, got %q", c.Log.Format))
	}

	if c.LookupTimeout <= 0 {
		errs = append(errs, errors.New("lookup_timeout must be positive"))
	}

	return errors.Join(errs...)
}

// UsesPostgres reports whether TargetDB is a PostgreSQL URL.
func (c *Config) UsesPostgres() bool {
	return strings.HasPrefix(c.TargetDB, "postgres://") || strings.HasPrefix(c.TargetDB, "postgresql://")
}

// NewLogger builds a logger writing to out.
func (c LogConfig) NewLogger(out io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.Level)
	if err != nil {
		return nil, fmt.Errorf("log.level: %w", err)
	}

	log := logrus.New()
	log.SetOutput(out)
	log.SetLevel(level)

	if c.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return log, nil
}
