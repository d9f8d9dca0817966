// Package logger holds the process-wide zerolog instance. Configuration
// happens once at startup via New; everything else reads through GetLogger.
package logger

import (
	"errors"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	globalLogger zerolog.Logger
	once         sync.Once
)

func console() zerolog.Logger {
	writer := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(writer).With().Timestamp().Logger()
}

// GetLogger returns the shared logger. Before New runs it falls back to a
// console logger at info level so early startup paths can still log.
func GetLogger() zerolog.Logger {
	once.Do(func() {
		globalLogger = console().Level(zerolog.InfoLevel)
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	})
	return globalLogger
}

// New configures the shared logger from the log level and format settings
// and returns it. Format is "json" or "console".
func New(level, format string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Logger{}, err
	}

	var base zerolog.Logger
	switch strings.ToLower(format) {
	case "json":
		base = zerolog.New(os.Stdout).With().Timestamp().Logger()
	case "console":
		base = console()
	default:
		return zerolog.Logger{}, errors.New("unsupported log format")
	}

	zerolog.SetGlobalLevel(lvl)
	globalLogger = base.Level(lvl)
	return globalLogger, nil
}
