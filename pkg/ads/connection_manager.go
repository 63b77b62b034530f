package ads

import (
	"time"

	"github.com/valyala/fasthttp"

	"keyword-planner/pkg/logger"
)

// ConnectionConfig holds configuration for the HTTP connections to the API
type ConnectionConfig struct {
	MaxConnsPerHost     int           `json:"max_conns_per_host"`
	MaxIdleConnDuration time.Duration `json:"max_idle_conn_duration"`
	ReadTimeout         time.Duration `json:"read_timeout"`
	WriteTimeout        time.Duration `json:"write_timeout"`
	RequestTimeout      time.Duration `json:"request_timeout"`

	// Dial overrides the dialer, mainly for in-memory listeners in tests
	Dial fasthttp.DialFunc `json:"-"`
}

// DefaultConnectionConfig returns settings suited to a handful of sequential calls
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		MaxConnsPerHost:     16,
		MaxIdleConnDuration: 90 * time.Second,
		ReadTimeout:         60 * time.Second,
		WriteTimeout:        30 * time.Second,
		RequestTimeout:      60 * time.Second,
	}
}

// ConnectionManager owns the fasthttp client used for API calls
type ConnectionManager struct {
	config ConnectionConfig
	client *fasthttp.Client
	log    *logger.Logger
}

// NewConnectionManager creates a new connection manager with specified config
func NewConnectionManager(config ConnectionConfig) *ConnectionManager {
	defaults := DefaultConnectionConfig()
	if config.MaxConnsPerHost <= 0 {
		config.MaxConnsPerHost = defaults.MaxConnsPerHost
	}
	if config.MaxIdleConnDuration <= 0 {
		config.MaxIdleConnDuration = defaults.MaxIdleConnDuration
	}
	if config.ReadTimeout <= 0 {
		config.ReadTimeout = defaults.ReadTimeout
	}
	if config.WriteTimeout <= 0 {
		config.WriteTimeout = defaults.WriteTimeout
	}
	if config.RequestTimeout <= 0 {
		config.RequestTimeout = defaults.RequestTimeout
	}

	client := &fasthttp.Client{
		Name:                "keyword-planner/1.0",
		MaxConnsPerHost:     config.MaxConnsPerHost,
		MaxIdleConnDuration: config.MaxIdleConnDuration,
		ReadTimeout:         config.ReadTimeout,
		WriteTimeout:        config.WriteTimeout,
		Dial:                config.Dial,
	}

	return &ConnectionManager{
		config: config,
		client: client,
		log:    logger.GetLogger().WithField("component", "connection_manager"),
	}
}

// GetFastHTTPClient returns the managed HTTP client
func (cm *ConnectionManager) GetFastHTTPClient() *fasthttp.Client {
	return cm.client
}

// RequestTimeout returns the per-request timeout
func (cm *ConnectionManager) RequestTimeout() time.Duration {
	return cm.config.RequestTimeout
}

// Close closes all idle connections
func (cm *ConnectionManager) Close() {
	cm.log.Debug("Closing connection manager")
	cm.client.CloseIdleConnections()
}
