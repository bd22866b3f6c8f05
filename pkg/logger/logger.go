package logger

import (
	"os"

	"github.com/rs/zerolog"
)

const envProduction = "production"

// New builds the process logger. Production gets JSON on stdout at info
// level, everything else gets the console writer with caller info.
func New(environment string) zerolog.Logger {
	if environment == envProduction {
		return zerolog.New(os.Stdout).With().Timestamp().Logger().Level(zerolog.InfoLevel)
	}

	return zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Caller().Logger().Level(zerolog.DebugLevel)
}
