// Package logger owns the process-wide zerolog instance. New installs it
// from configuration at startup; GetLogger hands out a console logger at
// info level until then so early startup paths can still log.
package logger

import (
	"fmt"
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

func consoleWriter() zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}
}

// GetLogger returns the process-wide logger.
func GetLogger() zerolog.Logger {
	once.Do(func() {
		globalLogger = zerolog.New(consoleWriter()).With().Timestamp().Logger().Level(zerolog.InfoLevel)
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	})
	return globalLogger
}

// New builds a logger for the configured level and format ("json" or
// "console") and installs it as the process-wide instance.
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
		base = zerolog.New(consoleWriter()).With().Timestamp().Logger()
	default:
		return zerolog.Logger{}, fmt.Errorf("unsupported log format %q", format)
	}

	zerolog.SetGlobalLevel(lvl)
	globalLogger = base.Level(lvl)
	return globalLogger, nil
}
