package export

import (
	"os"
	"testing"

	"irjson/report"
)

func TestMain(m *testing.M) {
	// tests only care about the emitted trees, not the log output
	report.Init(report.LogLevelSilent, false)
	os.Exit(m.Run())
}
