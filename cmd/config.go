package cmd

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/pelletier/go-toml"
)

// tomlConfig represents the irjson tool configuration as it is encoded in
// TOML.
type tomlConfig struct {
	Output     string `toml:"output"`
	LogLevel   string `toml:"log-level"`
	Timestamps bool   `toml:"timestamps"`
	TestMode   bool   `toml:"test-mode"`
}

// loadConfig loads and deserializes a tool configuration file.
func loadConfig(path string) (*tomlConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open config file at `%s`: %w", path, err)
	}
	defer f.Close()

	buff, err := ioutil.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("error reading config file at `%s`: %w", path, err)
	}

	cfg := &tomlConfig{}
	if err := toml.Unmarshal(buff, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file at `%s`: %w", path, err)
	}

	return cfg, nil
}

// applyConfig folds file-level settings into the exporter.  An output path or
// a non-default log level given on the command line wins over the file; a log
// level of `info` is indistinguishable from the default and yields to the
// file.  Timestamps and test mode are switched on by either source, and test
// mode from the file raises the log level to debug.
func (e *Exporter) applyConfig(cfg *tomlConfig) {
	if e.outputPath == "" && cfg.Output != "" {
		e.outputPath = cfg.Output
	}

	if e.logLevel == "info" && cfg.LogLevel != "" {
		e.logLevel = cfg.LogLevel
	}

	if cfg.Timestamps {
		e.timestamps = true
	}

	if cfg.TestMode {
		e.testMode = true
		e.logLevel = "debug"
	}
}
