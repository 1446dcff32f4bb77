// Package logger builds the hclog logger shared by the services.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// EnvLevel overrides the configured log level.
const EnvLevel = "RULEGATE_LOG_LEVEL"

// New creates a logger writing to stderr so stdout stays reserved for reports.
// The level is taken from RULEGATE_LOG_LEVEL first, then from configured.
func New(name, configured string) hclog.Logger {
	return NewWithOutput(name, configured, os.Stderr)
}

// NewWithOutput is New with an explicit destination.
func NewWithOutput(name, configured string, w io.Writer) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:        name,
		DisableTime: true,
		JSONFormat:  os.Getenv("RULEGATE_LOG_JSON") == "1",
		Output:      w,
		Level:       determineLogLevel(configured),
	})
}

// determineLogLevel returns the level from the environment, then from the
// configuration, defaulting to WARN.
func determineLogLevel(configured string) hclog.Level {
	if env := os.Getenv(EnvLevel); env != "" {
		return parseLogLevel(strings.ToUpper(env))
	}
	return parseLogLevel(strings.ToUpper(configured))
}

func parseLogLevel(levelStr string) hclog.Level {
	switch levelStr {
	case "TRACE":
		return hclog.Trace
	case "DEBUG":
		return hclog.Debug
	case "INFO":
		return hclog.Info
	case "ERROR":
		return hclog.Error
	default:
		return hclog.Warn
	}
}
