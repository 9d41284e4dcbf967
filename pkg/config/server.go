// Package config implements command-line flag parsing and JSON
// config-file loading for both the server and client binaries.
package config

import (
	"time"

	"github.com/saulvaldelvira/http-server/pkg/logging"
)

// PoolConfig configures the server's worker pool.
type PoolConfig struct {
	NWorkers          uint16
	PendingBufferSize uint16 // 0 = unlimited (no max-in-flight cap)
}

// TLSConfig configures transport-layer encryption.
type TLSConfig struct {
	Enabled        bool
	CertFile       string
	PrivateKeyFile string
}

// ServerConfig holds every setting the http-server binary accepts,
// whether from defaults, a JSON config file, or command-line flags —
// applied in that order, so flags win.
type ServerConfig struct {
	Port              uint16
	Pool              PoolConfig
	KeepAliveTimeout  time.Duration
	KeepAliveRequests uint16
	LogFile           string
	LogLevel          logging.Level
	TLS               TLSConfig
}

// DefaultServerConfig matches the original implementation's defaults:
// port 80, 1024 workers, keep-alive disabled, a 10000-request cap once
// keep-alive is turned on.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Port: 80,
		Pool: PoolConfig{
			NWorkers: 1024,
		},
		KeepAliveTimeout:  0,
		KeepAliveRequests: 10000,
		LogLevel:          logging.LevelWarn,
	}
}
