package logging

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// New builds the process logger from a level name. Unknown or empty levels
// fall back to info so a missing LOG_LEVEL never silences failures.
func New(level string) *zerolog.Logger {
	parsed, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || parsed == zerolog.NoLevel {
		parsed = zerolog.InfoLevel
	}

	logger := zerolog.New(os.Stderr).
		Level(parsed).
		With().
		Timestamp().
		Logger()

	return &logger
}

// ForComponent labels a child logger with the component name, the way page
// objects and clients identify themselves in output.
func ForComponent(log *zerolog.Logger, name string) *zerolog.Logger {
	child := log.With().Str("component", name).Logger()
	return &child
}
