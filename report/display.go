package report

import (
	"fmt"

	"github.com/pterm/pterm"
)

var (
	DebugStyleBG = pterm.NewStyle(pterm.BgDarkGray, pterm.FgWhite)
	DebugColorFG = pterm.FgGray
	InfoStyleBG  = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	InfoColorFG  = pterm.FgLightGreen
	WarnStyleBG  = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	WarnColorFG  = pterm.FgYellow
	ErrorStyleBG = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	ErrorColorFG = pterm.FgRed
)

// levelBadges maps each log level to the short badge displayed in front of a
// message at that level.
var levelBadges = map[int]string{
	LogLevelDebug:   "DEBUG",
	LogLevelInfo:    "INFO",
	LogLevelWarning: "WARN",
	LogLevelError:   "ERROR",
	LogLevelFatal:   "FATAL",
}

// displayMessage displays a single log line: a colored level badge, an
// optional timestamp, and the message itself.
func displayMessage(level int, timestamp, message string) {
	bg, fg := levelStyles(level)

	bg.Print(levelBadges[level])
	if timestamp != "" {
		fmt.Print(" " + timestamp + " -")
	}
	fg.Println(" " + message)
}

// levelStyles returns the badge and text styles used for the given level.
func levelStyles(level int) (*pterm.Style, pterm.Color) {
	switch level {
	case LogLevelDebug:
		return DebugStyleBG, DebugColorFG
	case LogLevelWarning:
		return WarnStyleBG, WarnColorFG
	case LogLevelError, LogLevelFatal:
		return ErrorStyleBG, ErrorColorFG
	default:
		return InfoStyleBG, InfoColorFG
	}
}
