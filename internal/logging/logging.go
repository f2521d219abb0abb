package logging

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Level converts a config string to a zerolog level, defaulting to info.
func Level(level string) zerolog.Level {
	switch strings.ToUpper(level) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// New returns the console logger the CLI runs with. Output goes through a
// ConsoleWriter so interactive use stays readable; structured fields are
// still attached to every line.
func New(out io.Writer, level string) zerolog.Logger {
	w := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(w).Level(Level(level)).With().Timestamp().Logger()
}
