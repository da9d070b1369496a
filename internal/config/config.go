// Package config implements TOML configuration loading, validation, and
// platform-specific path resolution for onedrive-rest-api. Values resolve
// through a four-layer override chain (defaults -> config file ->
// environment -> CLI flags). The transport choice (live or mock) is part of
// the resolved configuration and is fixed for the life of the process.
package config

import "time"

// Config is the top-level configuration structure parsed from a TOML file.
type Config struct {
	Server  ServerConfig  `toml:"server" json:"server"`
	Graph   GraphConfig   `toml:"graph" json:"graph"`
	Logging LoggingConfig `toml:"logging" json:"logging"`
}

// ServerConfig controls the inbound HTTP listener.
type ServerConfig struct {
	ListenAddr        string `toml:"listen_addr" json:"listen_addr"`
	ReadHeaderTimeout string `toml:"read_header_timeout" json:"read_header_timeout"`
	ShutdownTimeout   string `toml:"shutdown_timeout" json:"shutdown_timeout"`
}

// GraphConfig controls how lookups reach the provider. Mock selects the
// canned transport instead of the network.
type GraphConfig struct {
	RootAddress        string `toml:"root_address" json:"root_address"`
	Mock               bool   `toml:"mock" json:"mock"`
	RequestTimeout     string `toml:"request_timeout" json:"request_timeout"`
	MaxResponseSize    string `toml:"max_response_size" json:"max_response_size"`
	UserAgent          string `toml:"user_agent" json:"user_agent"`
	EscapePathSegments bool   `toml:"escape_path_segments" json:"escape_path_segments"`
}

// LoggingConfig controls log output: level and format.
type LoggingConfig struct {
	LogLevel  string `toml:"log_level" json:"log_level"`
	LogFormat string `toml:"log_format" json:"log_format"`
}

// CLIOverrides holds values from CLI flags. Pointer fields distinguish "not
// specified" (nil) from an explicit false.
type CLIOverrides struct {
	ConfigPath string // --config flag (empty = use env or default)
	Mock       *bool  // --mock flag
	ListenAddr string // --listen flag (empty = not set)
}

// Resolved is the effective configuration after every override layer.
type Resolved struct {
	Config

	// Path is the config file consulted, whether or not it existed.
	Path string `json:"config_path"`
	// MockSource names the layer that decided Graph.Mock.
	MockSource string `json:"mock_source"`
}

// Layer names reported in Resolved.MockSource.
const (
	SourceDefault = "default"
	SourceFile    = "file"
	SourceEnv     = "env"
	SourceFlag    = "flag"
)

// Durations below are validated at load time, so parse errors cannot occur
// on a Resolved config; a zero is returned if they somehow do.

// ReadHeaderTimeoutDuration returns server.read_header_timeout.
func (s ServerConfig) ReadHeaderTimeoutDuration() time.Duration {
	return parsedDuration(s.ReadHeaderTimeout)
}

// ShutdownTimeoutDuration returns server.shutdown_timeout.
func (s ServerConfig) ShutdownTimeoutDuration() time.Duration {
	return parsedDuration(s.ShutdownTimeout)
}

// RequestTimeoutDuration returns graph.request_timeout.
func (g GraphConfig) RequestTimeoutDuration() time.Duration {
	return parsedDuration(g.RequestTimeout)
}

// MaxResponseBytes returns graph.max_response_size in bytes.
func (g GraphConfig) MaxResponseBytes() int64 {
	n, err := ParseSize(g.MaxResponseSize)
	if err != nil {
		return 0
	}

	return n
}

func parsedDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0
	}

	return d
}
