package logger

import (
	"os"
	"sync"
)

var (
	globalLogger *Logger
	mu           sync.RWMutex
)

// GetLogger returns the global logger, building a default one on first use.
// The default writes JSON to stderr at warn level; DEBUG=true or LOG_LEVEL
// override the level.
func GetLogger() *Logger {
	mu.RLock()
	l := globalLogger
	mu.RUnlock()
	if l != nil {
		return l
	}

	mu.Lock()
	defer mu.Unlock()
	if globalLogger == nil {
		level := "warn"
		if os.Getenv("DEBUG") == "true" {
			level = "debug"
		} else if env := os.Getenv("LOG_LEVEL"); env != "" {
			level = env
		}

		globalLogger = New(Config{
			Level:  level,
			Format: "json",
			Output: "stderr",
		})
	}
	return globalLogger
}

// SetLogger replaces the global logger. Components pick it up when they
// are constructed, so call it before building clients.
func SetLogger(logger *Logger) {
	mu.Lock()
	globalLogger = logger
	mu.Unlock()
	SetGlobalLogger(logger)
}
