package config

import "github.com/rzvngherman/OneDrive-REST-API/internal/graph"

// Default values for configuration options. These are "layer 0" of the
// override chain and work without any config file.
const (
	defaultListenAddr        = "127.0.0.1:8080"
	defaultReadHeaderTimeout = "10s"
	defaultShutdownTimeout   = "15s"
	defaultRequestTimeout    = "30s"
	defaultMaxResponseSize   = "1MiB"
	defaultLogLevel          = "info"
	defaultLogFormat         = "auto"
)

// DefaultConfig returns a Config populated with all default values. It is the
// starting point for TOML decoding, so unset fields keep their defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			ListenAddr:        defaultListenAddr,
			ReadHeaderTimeout: defaultReadHeaderTimeout,
			ShutdownTimeout:   defaultShutdownTimeout,
		},
		Graph: GraphConfig{
			RootAddress:     graph.DefaultRootAddress,
			RequestTimeout:  defaultRequestTimeout,
			MaxResponseSize: defaultMaxResponseSize,
			UserAgent:       graph.DefaultUserAgent,
		},
		Logging: LoggingConfig{
			LogLevel:  defaultLogLevel,
			LogFormat: defaultLogFormat,
		},
	}
}
