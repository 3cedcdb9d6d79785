package logging

import (
	"os"

	"github.com/charmbracelet/log"
)

// DebugEnabled returns true if debug mode is enabled via TASKBOARD_DEBUG
func DebugEnabled() bool {
	return os.Getenv("TASKBOARD_DEBUG") != ""
}

// SetDefault makes logger the target of the package-level helpers
func SetDefault(logger *log.Logger) {
	log.SetDefault(logger)
}

// Debugf logs a formatted debug message on the default logger
func Debugf(format string, args ...interface{}) {
	log.Debugf(format, args...)
}
