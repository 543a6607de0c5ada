package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global logger from the environment.
// LOG_LEVEL sets the level: debug, info, warn, error (default: info).
// LOG_FORMAT selects "json" or "console". Lambda defaults to JSON so
// CloudWatch can index the fields; everything else defaults to console.
func Init() {
	zerolog.SetGlobalLevel(parseLevel(os.Getenv("LOG_LEVEL")))
	log.Logger = zerolog.New(writer(os.Getenv("LOG_FORMAT"), os.Stderr)).With().Timestamp().Logger()
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func writer(format string, out io.Writer) io.Writer {
	switch format {
	case "json":
		return out
	case "console":
		return zerolog.ConsoleWriter{Out: out}
	}
	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		return out
	}
	return zerolog.ConsoleWriter{Out: out}
}
