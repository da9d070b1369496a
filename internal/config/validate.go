package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"
)

// Validation range constants.
const (
	minReadHeaderTimeout = 1 * time.Second
	minShutdownTimeout   = 1 * time.Second
	minRequestTimeout    = 1 * time.Second
	maxRequestTimeout    = 5 * time.Minute
	minResponseSize      = 1024
)

// Validate checks all configuration values and returns every error found,
// so a user can fix the whole file in one pass.
func Validate(cfg *Config) error {
	var errs []error

	errs = append(errs, validateServer(&cfg.Server)...)
	errs = append(errs, validateGraph(&cfg.Graph)...)
	errs = append(errs, validateLogging(&cfg.Logging)...)

	return errors.Join(errs...)
}

func validateServer(s *ServerConfig) []error {
	var errs []error

	if _, _, err := net.SplitHostPort(s.ListenAddr); err != nil {
		errs = append(errs, fmt.Errorf("server.listen_addr: invalid host:port %q: %w", s.ListenAddr, err))
	}

	errs = append(errs, validateDurationMin("server.read_header_timeout", s.ReadHeaderTimeout, minReadHeaderTimeout)...)
	errs = append(errs, validateDurationMin("server.shutdown_timeout", s.ShutdownTimeout, minShutdownTimeout)...)

	return errs
}

func validateGraph(g *GraphConfig) []error {
	var errs []error

	errs = append(errs, validateRootAddress(g.RootAddress)...)
	errs = append(errs, validateDurationRange("graph.request_timeout", g.RequestTimeout,
		minRequestTimeout, maxRequestTimeout)...)

	n, err := ParseSize(g.MaxResponseSize)
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("graph.max_response_size: %w", err))
	case n < minResponseSize:
		errs = append(errs, fmt.Errorf("graph.max_response_size: must be >= %d bytes, got %q",
			minResponseSize, g.MaxResponseSize))
	}

	return errs
}

func validateRootAddress(raw string) []error {
	u, err := url.Parse(raw)
	if err != nil {
		return []error{fmt.Errorf("graph.root_address: %w", err)}
	}

	if u.Scheme != "https" && u.Scheme != "http" {
		return []error{fmt.Errorf("graph.root_address: scheme must be http or https, got %q", raw)}
	}

	if u.Host == "" {
		return []error{fmt.Errorf("graph.root_address: missing host in %q", raw)}
	}

	if u.RawQuery != "" || u.Fragment != "" {
		return []error{fmt.Errorf("graph.root_address: must not carry a query or fragment, got %q", raw)}
	}

	return nil
}

func validateDurationMin(field, value string, minimum time.Duration) []error {
	d, err := time.ParseDuration(value)
	if err != nil {
		return []error{fmt.Errorf("%s: invalid duration %q: %w", field, value, err)}
	}

	if d < minimum {
		return []error{fmt.Errorf("%s: must be >= %s, got %s", field, minimum, d)}
	}

	return nil
}

func validateDurationRange(field, value string, minimum, maximum time.Duration) []error {
	if errs := validateDurationMin(field, value, minimum); errs != nil {
		return errs
	}

	if d, _ := time.ParseDuration(value); d > maximum {
		return []error{fmt.Errorf("%s: must be <= %s, got %s", field, maximum, d)}
	}

	return nil
}

func validateLogging(l *LoggingConfig) []error {
	var errs []error

	if !validLogLevels[l.LogLevel] {
		errs = append(errs, fmt.Errorf("logging.log_level: must be one of debug, info, warn, error; got %q", l.LogLevel))
	}

	if !validLogFormats[l.LogFormat] {
		errs = append(errs, fmt.Errorf("logging.log_format: must be one of auto, text, json; got %q", l.LogFormat))
	}

	return errs
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"auto": true,
	"text": true,
	"json": true,
}
