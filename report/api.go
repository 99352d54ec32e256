package report

import (
	"os"
	"sync"
	"time"
)

// log is the global logger instance.
var log *Logger

// Init initializes the global logger with the provided log level.  If the
// logger has already been initialized, this function does nothing.
func Init(logLevel int, timestamps bool) {
	if log == nil {
		log = &Logger{
			m:          &sync.Mutex{},
			logLevel:   logLevel,
			timestamps: timestamps,
			startTime:  time.Now(),
		}
	}
}

// ParseLogLevel converts a log level name into one of the enumerated log
// levels.  Invalid names default to LogLevelInfo.
func ParseLogLevel(name string) int {
	switch name {
	case "silent":
		return LogLevelSilent
	case "error":
		return LogLevelError
	case "warn":
		return LogLevelWarning
	case "debug":
		return LogLevelDebug
	default:
		return LogLevelInfo
	}
}

// ShouldProceed indicates whether or not there have been any non-fatal errors
// recorded so far.
func ShouldProceed() bool {
	return log.errorCount == 0
}

// ErrorCount returns the number of non-fatal errors recorded so far.
func ErrorCount() int {
	return log.errorCount
}

// -----------------------------------------------------------------------------
// NOTE: All log functions will only display if the appropriate log level is
// set; below their level they fail silently.

// Debugf records a debug message.
func Debugf(message string, args ...interface{}) {
	log.record(LogLevelDebug, message, args...)
}

// Infof records an informational message.
func Infof(message string, args ...interface{}) {
	log.record(LogLevelInfo, message, args...)
}

// Warningf records a warning: a recoverable anomaly in the input that does not
// stop serialization.
func Warningf(message string, args ...interface{}) {
	log.record(LogLevelWarning, message, args...)
}

// Errorf records a non-fatal error.  Serialization continues, but the error
// count is incremented.
func Errorf(message string, args ...interface{}) {
	log.m.Lock()
	log.errorCount++
	log.m.Unlock()

	log.record(LogLevelError, message, args...)
}

// Fatalf records a fatal error and terminates the process.  Fatal errors are
// reserved for defects (an IR case the serializer failed to recognize, a label
// bookkeeping violation) and unrecoverable environment errors.  This function
// does not return.
func Fatalf(message string, args ...interface{}) {
	log.record(LogLevelFatal, message, args...)
	os.Exit(1)
}
