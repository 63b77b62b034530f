package config

import (
	"time"

	"keyword-planner/pkg/logger"
)

// Config mirrors google-ads.yaml plus the settings this tool adds on top
type Config struct {
	DeveloperToken     string        `mapstructure:"developer_token"`
	ClientID           string        `mapstructure:"client_id"`
	ClientSecret       string        `mapstructure:"client_secret"`
	RefreshToken       string        `mapstructure:"refresh_token"`
	LoginCustomerID    string        `mapstructure:"login_customer_id"`
	Endpoint           string        `mapstructure:"endpoint"`
	APIVersion         string        `mapstructure:"api_version"`
	DefaultLocationIDs []string      `mapstructure:"default_location_ids"`
	DefaultLanguageID  string        `mapstructure:"default_language_id"`
	PageSize           int           `mapstructure:"page_size"`
	RequestTimeout     time.Duration `mapstructure:"request_timeout"`
	Server             ServerConfig  `mapstructure:"server"`
	Logger             LoggerConfig  `mapstructure:"logger"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// LoggerConfig is decoded straight into the logger package's settings
type LoggerConfig = logger.Config

type Manager interface {
	Load(configPath string) (*Config, error)
}
