package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port            string
	Env             string
	PostgresConnStr string
	JWTSecret       string
	TokenTTL        time.Duration
}

// Load reads configuration from the environment (and an optional
// config.yaml) with viper. JWT_SECRET has no default on purpose.
func Load() (*Config, error) {
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("TOKEN_TTL", "72h")

	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	_ = viper.ReadInConfig() // ignore error if no file

	cfg := &Config{
		Port:            viper.GetString("PORT"),
		Env:             viper.GetString("ENV"),
		PostgresConnStr: viper.GetString("POSTGRES_CONN_STR"),
		JWTSecret:       viper.GetString("JWT_SECRET"),
		TokenTTL:        parseDuration(viper.GetString("TOKEN_TTL"), 72*time.Hour),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable not set")
	}

	return cfg, nil
}

func parseDuration(s string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return def
}
