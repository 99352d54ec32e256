package report

import (
	"fmt"
	"sync"
	"time"
)

// Logger is responsible for recording leveled messages emitted during
// serialization.  The logger respects the set log level and is synchronized:
// its methods can be safely called from multiple goroutines.
type Logger struct {
	// The mutex used to synchronize different log method calls.
	m *sync.Mutex

	// The selected log level of the logger.  This must be one of the
	// enumerated log levels below.
	logLevel int

	// Indicates whether messages should carry a timestamp relative to the
	// moment the logger was initialized.
	timestamps bool

	// The moment the logger was initialized; used for timestamps.
	startTime time.Time

	// The number of non-fatal errors recorded so far.
	errorCount int
}

// Enumeration of the different possible log levels.
const (
	LogLevelDebug   = iota // Displays all messages (most verbose).
	LogLevelInfo           // Displays informational messages and above (default).
	LogLevelWarning        // Displays only warnings and errors.
	LogLevelError          // Displays only errors.
	LogLevelFatal          // Displays only fatal errors.
	LogLevelSilent         // Displays no output whatsoever (fatal errors still abort).
)

// record formats a message and displays it if the given level clears the
// logger's configured log level.
func (l *Logger) record(level int, message string, args ...interface{}) {
	l.m.Lock()
	defer l.m.Unlock()

	if level < l.logLevel {
		return
	}

	msg := fmt.Sprintf(message, args...)
	if l.timestamps {
		displayMessage(level, l.elapsed(), msg)
	} else {
		displayMessage(level, "", msg)
	}
}

// elapsed renders the time elapsed since logger initialization as
// `HH:MM:SS.mmm`.
func (l *Logger) elapsed() string {
	d := time.Since(l.startTime)
	return fmt.Sprintf(
		"%02d:%02d:%02d.%03d",
		int(d.Hours()),
		int(d.Minutes())%60,
		int(d.Seconds())%60,
		d.Milliseconds()%1000,
	)
}
