package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, LogLevelSilent, ParseLogLevel("silent"))
	assert.Equal(t, LogLevelError, ParseLogLevel("error"))
	assert.Equal(t, LogLevelWarning, ParseLogLevel("warn"))
	assert.Equal(t, LogLevelDebug, ParseLogLevel("debug"))

	// anything else defaults to info
	assert.Equal(t, LogLevelInfo, ParseLogLevel("info"))
	assert.Equal(t, LogLevelInfo, ParseLogLevel("bogus"))
}

func TestErrorAccumulation(t *testing.T) {
	Init(LogLevelSilent, false)

	before := ErrorCount()
	assert.Equal(t, before == 0, ShouldProceed())

	Errorf("synthetic anomaly %d", 1)
	assert.Equal(t, before+1, ErrorCount())
	assert.False(t, ShouldProceed())
}

func TestLevelOrdering(t *testing.T) {
	// the fatal sink must outrank every recoverable severity
	assert.Less(t, LogLevelDebug, LogLevelInfo)
	assert.Less(t, LogLevelInfo, LogLevelWarning)
	assert.Less(t, LogLevelWarning, LogLevelError)
	assert.Less(t, LogLevelError, LogLevelFatal)
}
