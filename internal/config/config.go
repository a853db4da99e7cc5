// Package config loads application settings from the environment, with an
// optional .env file for local development.
package config

import (
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Addr        string `mapstructure:"ADDR"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	AMQPURL     string `mapstructure:"AMQP_URL"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`
	LogFormat   string `mapstructure:"LOG_FORMAT"`
}

// Load reads configuration from the environment. A missing .env file is fine.
func Load() (Config, error) {
	_ = godotenv.Load()

	viper.SetDefault("ADDR", ":8080")
	viper.SetDefault("LOG_LEVEL", "INFO")
	viper.SetDefault("LOG_FORMAT", "json")
	viper.AutomaticEnv()

	// Bind explicitly so the variables appear in Unmarshal
	_ = viper.BindEnv("ADDR")
	_ = viper.BindEnv("DATABASE_URL")
	_ = viper.BindEnv("AMQP_URL")
	_ = viper.BindEnv("LOG_LEVEL")
	_ = viper.BindEnv("LOG_FORMAT")

	var cfg Config
	err := viper.Unmarshal(&cfg)
	return cfg, err
}
