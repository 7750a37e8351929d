// Package config loads process settings for the command line and server.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/soil"
)

// EnvPrefix is prepended to every environment variable, e.g. RBC_PORT.
const EnvPrefix = "RBC"

// Config holds settings read from rbc.yaml, the environment and .env.
type Config struct {
	Port            int
	DBPath          string
	SoilURL         string
	SoilTimeout     time.Duration
	RateLimit       float64
	RateBurst       int
	ShutdownTimeout time.Duration
	AllowOrigin     string
}

// Load reads configuration. An explicit file must exist; otherwise rbc.yaml
// in the working directory is optional. Environment variables override the
// file, and .env is loaded into the environment first when present.
func Load(file string) (Config, error) {
	_ = godotenv.Load() // ignore missing file

	v := viper.New()
	v.SetDefault("port", 8080)
	v.SetDefault("db_path", "rbc.db")
	v.SetDefault("soil_url", soil.DefaultURL)
	v.SetDefault("soil_timeout", 30*time.Second)
	v.SetDefault("rate_limit", 1.0)
	v.SetDefault("rate_burst", 3)
	v.SetDefault("shutdown_timeout", 5*time.Second)
	v.SetDefault("allow_origin", "*")

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading %s: %w", file, err)
		}
	} else {
		v.SetConfigName("rbc")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("reading rbc.yaml: %w", err)
			}
		}
	}

	cfg := Config{
		Port:            v.GetInt("port"),
		DBPath:          v.GetString("db_path"),
		SoilURL:         v.GetString("soil_url"),
		SoilTimeout:     v.GetDuration("soil_timeout"),
		RateLimit:       v.GetFloat64("rate_limit"),
		RateBurst:       v.GetInt("rate_burst"),
		ShutdownTimeout: v.GetDuration("shutdown_timeout"),
		AllowOrigin:     v.GetString("allow_origin"),
	}
	return cfg, cfg.Validate()
}

// Validate checks that every setting is usable.
func (c Config) Validate() error {
	switch {
	case c.Port <= 0 || c.Port > 65535:
		return fmt.Errorf("invalid port: %d", c.Port)
	case c.DBPath == "":
		return errors.New("db_path is required")
	case c.SoilTimeout <= 0:
		return fmt.Errorf("invalid soil_timeout: %s", c.SoilTimeout)
	case c.RateLimit <= 0:
		return fmt.Errorf("invalid rate_limit: %g", c.RateLimit)
	case c.RateBurst < 1:
		return fmt.Errorf("invalid rate_burst: %d", c.RateBurst)
	}
	return nil
}

// ListenAddr returns the address the server binds to.
func (c Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}
