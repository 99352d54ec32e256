package cmd

import (
	"fmt"
	"os"
	"strings"

	"irjson/common"
	"irjson/util"
)

// logLevelNames are the values accepted by the -ll/--loglevel option.
var logLevelNames = []string{"debug", "info", "warn", "error", "silent"}

const usage = `Usage: irjson [flags|options] <path to LLVM IR file>

Flags:
------
-h, --help       Displays usage information (ie. this text).
-v, --version    Displays the current irjson version.
--verbose        Raises the log level to debug.
-t, --test       Enables the internal self-test log mode.
--timestamps     Timestamps every log line.

Options:
--------
-o,  --output     Sets the path at which to create the JSON document.  The
                  path must not name an existing file.  Defaults to the input
                  path with a .json extension.
-ll, --loglevel   Sets the exporter's log-level.  Valid values are:
                    - "debug" for outputting all messages
                    - "info" for outputting all but debug messages (default)
                    - "warn" for outputting errors and warnings
                    - "error" for outputting errors only
                    - "silent" for no output
-c,  --config     Sets the path to an irjson.toml tool configuration file.
`

// Prints the usage message and exits the exporter with the given exit code.
func printUsage(exitCode int) {
	fmt.Print(usage, "\n")
	os.Exit(exitCode)
}

// argParser is a command-line argument parser.
type argParser struct {
	// The arguments being parsed.
	args []string

	// The argument parser's position within those arguments.
	ndx int
}

// Set containing all the argument names that correspond to options.
var options = map[string]struct{}{
	"o":         {},
	"ll":        {},
	"c":         {},
	"-output":   {},
	"-loglevel": {},
	"-config":   {},
}

// argumentError displays an argument error and exits the program.
func argumentError(message string, args ...interface{}) {
	fmt.Print("argument error: ", fmt.Sprintf(message, args...), "\n\n")
	printUsage(1)
}

// nextArg parses the next command-line argument if one exists.  The first
// value is the name of the argument.  If this argument is positional, this
// value is empty.  The second value is the value of the argument.  If this
// value is empty, the argument is a flag.  The final value indicates whether
// or not there was an argument to parse.
func (ap *argParser) nextArg() (string, string, bool) {
	if ap.ndx >= len(ap.args) {
		return "", "", false
	}

	arg := ap.args[ap.ndx]
	ap.ndx++

	if strings.HasPrefix(arg, "-") { // flag or option
		name := arg[1:]

		if _, ok := options[name]; ok { // option
			// Make sure the option value exists.
			if ap.ndx < len(ap.args) && !strings.HasPrefix(ap.args[ap.ndx], "-") {
				value := ap.args[ap.ndx]
				ap.ndx++
				return name, value, true
			}

			argumentError("option %s requires an argument", strings.TrimLeft(name, "-"))
		}

		// flag
		return name, "", true
	}

	// positional
	return "", arg, true
}

// NewExporterFromArgs creates a new exporter configured from the command-line
// arguments and, when one is named, the tool configuration file.
func NewExporterFromArgs() *Exporter {
	e := &Exporter{logLevel: "info"}
	configPath := ""

	ap := &argParser{args: os.Args[1:]}
	for {
		name, value, ok := ap.nextArg()
		if !ok {
			break
		}

		switch name {
		case "h", "-help":
			printUsage(0)
		case "v", "-version":
			fmt.Printf("%s %s\n", common.ToolName, common.ToolVersion)
			os.Exit(0)
		case "-verbose":
			e.logLevel = "debug"
		case "t", "-test":
			e.testMode = true
			e.logLevel = "debug"
		case "-timestamps":
			e.timestamps = true
		case "o", "-output":
			e.outputPath = value
		case "ll", "-loglevel":
			if !util.Contains(logLevelNames, value) {
				argumentError("invalid log level `%s`", value)
			}
			e.logLevel = value
		case "c", "-config":
			configPath = value
		case "":
			if e.inputPath != "" {
				argumentError("multiple input paths given")
			}
			e.inputPath = value
		default:
			argumentError("unknown argument `%s`", name)
		}
	}

	if configPath != "" {
		cfg, err := loadConfig(configPath)
		if err != nil {
			argumentError("unable to load tool configuration: %s", err.Error())
		}
		e.applyConfig(cfg)
	}

	if e.inputPath == "" {
		argumentError("an input path is required")
	}
	if e.outputPath == "" {
		e.outputPath = defaultOutputPath(e.inputPath)
	}

	return e
}

// defaultOutputPath derives the output path from the input path by replacing a
// trailing .ll extension with .json.  Any other extension is kept and .json is
// appended after it.
func defaultOutputPath(inputPath string) string {
	base := strings.TrimSuffix(inputPath, common.IRFileExt)
	return base + ".json"
}
