package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config aggregates server configuration from environment variables and
// an optional config file. Everything auth-related is fixed at startup.
type Config struct {
	Server struct {
		Addr string
	}
	Database struct {
		Path string
	}
	Auth struct {
		SigningKey      string
		TokenTTLMinutes int
		Issuer          string
		BcryptCost      int
		SeedUsers       bool
	}
}

// LoadConfig reads configuration with the AUTH_ env prefix, falling back
// to config.yaml in the working directory when present.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("AUTH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", "0.0.0.0:8080")
	v.SetDefault("database.path", "data/auth.db")
	v.SetDefault("auth.signingkey", "")
	v.SetDefault("auth.tokenttlminutes", 30)
	v.SetDefault("auth.issuer", "go-auth")
	v.SetDefault("auth.bcryptcost", 12)
	v.SetDefault("auth.seedusers", false)

	v.SetConfigName("config")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional file

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// TokenTTL converts the configured minutes into a duration.
func (c Config) TokenTTL() time.Duration {
	return time.Duration(c.Auth.TokenTTLMinutes) * time.Minute
}
