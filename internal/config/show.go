package config

import (
	"fmt"
	"io"
)

// RenderEffective writes the resolved configuration as an annotated summary
// to w. This powers the "config show" command.
func RenderEffective(r *Resolved, w io.Writer) error {
	ew := &errWriter{w: w}

	if r.Path != "" {
		ew.printf("# Effective configuration (file: %s)\n\n", r.Path)
	} else {
		ew.printf("# Effective configuration (no config file)\n\n")
	}

	ew.printf("[server]\n")
	ew.printf("  listen_addr          = %q\n", r.Server.ListenAddr)
	ew.printf("  read_header_timeout  = %q\n", r.Server.ReadHeaderTimeout)
	ew.printf("  shutdown_timeout     = %q\n\n", r.Server.ShutdownTimeout)

	ew.printf("[graph]\n")
	ew.printf("  root_address         = %q\n", r.Graph.RootAddress)
	ew.printf("  mock                 = %t  # from %s\n", r.Graph.Mock, r.MockSource)
	ew.printf("  request_timeout      = %q\n", r.Graph.RequestTimeout)
	ew.printf("  max_response_size    = %q\n", r.Graph.MaxResponseSize)
	ew.printf("  user_agent           = %q\n", r.Graph.UserAgent)
	ew.printf("  escape_path_segments = %t\n\n", r.Graph.EscapePathSegments)

	ew.printf("[logging]\n")
	ew.printf("  log_level            = %q\n", r.Logging.LogLevel)
	ew.printf("  log_format           = %q\n", r.Logging.LogFormat)

	return ew.err
}

// errWriter wraps an io.Writer and keeps the first write error; later writes
// become no-ops.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}

	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
