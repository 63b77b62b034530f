package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// PathEnv names the variable that points at google-ads.yaml
	PathEnv = "GOOGLE_ADS_CONFIGURATION_FILE_PATH"
	// DefaultPath is used when PathEnv is unset
	DefaultPath = "/app/google-ads.yaml"

	envPrefix = "GOOGLE_ADS"
)

// ResolvePath returns the explicit path, else $GOOGLE_ADS_CONFIGURATION_FILE_PATH,
// else DefaultPath.
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if p := os.Getenv(PathEnv); p != "" {
		return p
	}
	return DefaultPath
}

type manager struct {
	mu    sync.Mutex
	viper *viper.Viper
}

func NewManager() Manager {
	return &manager{
		viper: viper.New(),
	}
}

// Load reads .env (when present), then the YAML file, then GOOGLE_ADS_*
// environment overrides. A missing file is fine as long as the environment
// supplies the credentials.
func (m *manager) Load(configPath string) (*Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	m.setupViper(configPath)

	return m.read()
}

func (m *manager) read() (*Config, error) {
	if err := m.viper.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := m.viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.LoginCustomerID = strings.ReplaceAll(strings.TrimSpace(config.LoginCustomerID), "-", "")

	if err := m.validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &config, nil
}

func (m *manager) setupViper(configPath string) {
	m.viper.SetConfigFile(configPath)
	if filepath.Ext(configPath) == "" {
		m.viper.SetConfigType("yaml")
	}

	m.viper.SetEnvPrefix(envPrefix)
	m.viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	m.viper.AutomaticEnv()

	// Every key needs a default so AutomaticEnv can see it during Unmarshal
	m.viper.SetDefault("developer_token", "")
	m.viper.SetDefault("client_id", "")
	m.viper.SetDefault("client_secret", "")
	m.viper.SetDefault("refresh_token", "")
	m.viper.SetDefault("login_customer_id", "")
	m.viper.SetDefault("endpoint", "https://googleads.googleapis.com")
	m.viper.SetDefault("api_version", "v17")
	m.viper.SetDefault("default_location_ids", []string{"2392"})
	m.viper.SetDefault("default_language_id", "1005")
	m.viper.SetDefault("page_size", 100)
	m.viper.SetDefault("request_timeout", 30*time.Second)
	m.viper.SetDefault("server.host", "0.0.0.0")
	m.viper.SetDefault("server.port", 8080)
	m.viper.SetDefault("logger.level", "info")
	m.viper.SetDefault("logger.format", "json")
	m.viper.SetDefault("logger.output", "stderr")
	m.viper.SetDefault("logger.time_format", time.RFC3339)
}

func (m *manager) validateConfig(config *Config) error {
	if config.DeveloperToken == "" {
		return fmt.Errorf("developer_token is required")
	}

	if config.ClientID == "" || config.ClientSecret == "" {
		return fmt.Errorf("client_id and client_secret are required")
	}

	if config.RefreshToken == "" {
		return fmt.Errorf("refresh_token is required")
	}

	if config.PageSize <= 0 {
		return fmt.Errorf("page_size must be positive")
	}

	if config.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive")
	}

	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	return nil
}
