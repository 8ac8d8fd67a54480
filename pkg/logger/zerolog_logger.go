package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ZerologLogger implements Logger using rs/zerolog. All entries carry the
// provided component field.
type ZerologLogger struct {
	log zerolog.Logger
}

func New(component string, level string, pretty bool) Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	var z zerolog.Logger
	if pretty {
		writer := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		z = zerolog.New(writer).Level(lvl).With().Timestamp().Str("component", component).Logger()
	} else {
		z = zerolog.New(os.Stdout).Level(lvl).With().Timestamp().Str("component", component).Logger()
	}

	return &ZerologLogger{log: z}
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return &ZerologLogger{log: zerolog.Nop()}
}

func (l *ZerologLogger) Debugf(format string, args ...any) {
	l.log.Debug().Msgf(format, args...)
}

func (l *ZerologLogger) Infof(format string, args ...any) {
	l.log.Info().Msgf(format, args...)
}

func (l *ZerologLogger) Warnf(format string, args ...any) {
	l.log.Warn().Msgf(format, args...)
}

func (l *ZerologLogger) Errorf(format string, args ...any) {
	l.log.Error().Msgf(format, args...)
}
