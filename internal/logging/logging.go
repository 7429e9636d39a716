// Package logging configures the CLI's structured logger. Output goes to
// stderr so stdout stays reserved for rendered views and JSON records.
package logging

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

const levelEnvVar = "HELM_LOG_LEVEL"

// Logger is the process-wide logger. Warn by default: the CLI is quiet unless
// something is off.
var Logger = newLogger("")

// Configure applies the log level, flag value winning over the environment.
func Configure(flagLevel string) {
	level := flagLevel
	if level == "" {
		level = os.Getenv(levelEnvVar)
	}
	Logger = newLogger(level)
}

func newLogger(level string) *log.Logger {
	logger := log.New(os.Stderr)
	logger.SetTimeFormat("")
	logger.SetLevel(parseLevel(level))
	return logger
}

func parseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.WarnLevel
	}
}
