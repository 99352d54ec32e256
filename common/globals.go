package common

// ToolName is the name the exporter reports about itself.
const ToolName string = "irjson"

// ToolVersion is the current irjson version as a string.
const ToolVersion string = "0.1.0"

// ConfigFileName is the name for irjson tool configuration files.
const ConfigFileName string = "irjson.toml"

// IRFileExt is the file extension for a textual LLVM IR input file.
const IRFileExt string = ".ll"
