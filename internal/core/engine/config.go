package engine

import (
	"time"

	"resptx/internal/core/rules"
)

// Settings is the full configuration document
type Settings struct {
	Log       LogSettings    `mapstructure:"log"`
	Server    ServerSettings `mapstructure:"server"`
	Upstream  Upstream       `mapstructure:"upstream"`
	Transform rules.RawInput `mapstructure:"transform"`
}

// LogSettings controls logger construction
type LogSettings struct {
	// Level is one of debug, info, warn, error
	Level string `mapstructure:"level"`
	// File enables a rotated log file next to stdout when set
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// ServerSettings defines the listening address
type ServerSettings struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Upstream defines the backend service configuration
type Upstream struct {
	// BaseURL is the base URL for the upstream service (supports "env:VAR")
	BaseURL string `mapstructure:"base_url"`
	// Timeout bounds the upstream round trip, including the response headers
	Timeout time.Duration `mapstructure:"timeout"`
	// FlushInterval is passed to the reverse proxy; negative flushes after every write
	FlushInterval time.Duration `mapstructure:"flush_interval"`
}

// Default values
const (
	DefaultHost     = "0.0.0.0"
	DefaultPort     = 8080
	DefaultLogLevel = "info"
	DefaultTimeout  = 60 * time.Second
)

// ApplyDefaults fills zero values
func (s *Settings) ApplyDefaults() {
	if s.Log.Level == "" {
		s.Log.Level = DefaultLogLevel
	}
	if s.Server.Host == "" {
		s.Server.Host = DefaultHost
	}
	if s.Server.Port == 0 {
		s.Server.Port = DefaultPort
	}
	if s.Upstream.Timeout == 0 {
		s.Upstream.Timeout = DefaultTimeout
	}
}
