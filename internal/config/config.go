// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"fmt"

	"github.com/realtydash/realty-dashboard/pkg/constants"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for realty-dashboard.
type Configuration struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Security SecurityConfig `mapstructure:"security"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig holds the HTTP listener options.
type ServerConfig struct {
	Address string `mapstructure:"address"`
	Mode    string `mapstructure:"mode"` // gin mode: debug, release, test
}

// DatabaseConfig holds the SQLite options.
type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	LogMode bool   `mapstructure:"log_mode"`
}

// JWTConfig holds session token options.
type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	Issuer      string `mapstructure:"issuer"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

// SecurityConfig holds credential hashing options.
type SecurityConfig struct {
	BcryptCost int `mapstructure:"bcrypt_cost"`
}

// StorageConfig holds the local fallback store options.
type StorageConfig struct {
	FallbackDir string `mapstructure:"fallback_dir"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputFile string `mapstructure:"output_file"` // optional file output
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	viper.SetDefault("server.address", constants.DefaultServerAddress)
	viper.SetDefault("database.path", "data/realty-dashboard.db")
	viper.SetDefault("jwt.issuer", "realty-dashboard")
	viper.SetDefault("jwt.expire_hours", constants.DefaultTokenTTLHours)
	viper.SetDefault("security.bcrypt_cost", constants.DefaultBcryptCost)
	viper.SetDefault("storage.fallback_dir", "data/fallback")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := viper.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	if configuration.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt.secret must be set")
	}

	return &configuration, nil
}
