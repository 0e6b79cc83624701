package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Setup builds the root logger. Components derive their own child loggers
// from it via log.With().Str("component", ...).
//
// format "pretty" renders human-readable console output for development;
// anything else emits JSON lines for production ingestion.
func Setup(level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	log := zerolog.New(os.Stdout)
	if format == "pretty" {
		log = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}

	return log.With().Timestamp().Caller().Logger()
}
