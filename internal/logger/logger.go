package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global zerolog logger. Debug mode writes
// human-readable console output; every other mode writes JSON lines.
func Init(ginMode, level string) {
	Setup(os.Stderr, ginMode, level)
}

func Setup(w io.Writer, ginMode, level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if ginMode == "debug" {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w}).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(w).With().Timestamp().Logger()
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}
