package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Options configures logger construction
type Options struct {
	ServiceName string
	Level       string // trace, debug, info, warn, error; default info
	Format      string // console or json; default console
	Output      io.Writer
}

// New builds a zerolog logger from options. Console format is for
// local runs; json for anything that ships logs.
func New(opts Options) zerolog.Logger {
	output := opts.Output
	if output == nil {
		output = os.Stderr
	}

	if strings.ToLower(opts.Format) != "json" {
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: "15:04:05"}
	}

	logger := zerolog.New(output).
		Level(ParseLevel(opts.Level)).
		With().
		Timestamp()

	if opts.ServiceName != "" {
		logger = logger.Str("service", opts.ServiceName)
	}

	return logger.Logger()
}

// ParseLevel maps a level name to a zerolog level, defaulting to info
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Nop returns a disabled logger for tests
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
