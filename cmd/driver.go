// Package cmd is the top-level "driver" package for the irjson exporter: it
// contains all the functionality for parsing command-line arguments, loading
// tool configuration, and running the export pipeline.
package cmd

import (
	"os"

	"irjson/common"
	"irjson/export"
	"irjson/report"

	"github.com/kr/pretty"
	"github.com/llir/llvm/asm"
)

// Exporter represents the overall state and configuration of an export run.
type Exporter struct {
	// The path to the LLVM IR file to export.
	inputPath string

	// The path at which to create the JSON document.
	outputPath string

	// The name of the selected log level.
	logLevel string

	// Whether log lines should carry timestamps.
	timestamps bool

	// Whether the internal self-test log mode is enabled.
	testMode bool
}

// RunExporter is the main entry point for the exporter.  This should be
// called directly from main.
func RunExporter() int {
	e := NewExporterFromArgs()

	report.Init(report.ParseLogLevel(e.logLevel), e.timestamps)
	if e.testMode {
		report.Debugf("%s %s running in self-test mode", common.ToolName, common.ToolVersion)
	}

	return e.Export()
}

// Export runs the export pipeline: materialize the module, prepare the
// function contexts, serialize, and write the document out.  Fatal errors
// terminate the process from within the pipeline; anything else reports
// success.
func (e *Exporter) Export() int {
	// Materialize the IR module.  The module must parse in full before any
	// serialization begins.
	mod, err := asm.ParseFile(e.inputPath)
	if err != nil {
		report.Fatalf("unable to materialize IR module at `%s`: %s", e.inputPath, err.Error())
	}
	report.Debugf("materialized module `%s`", e.inputPath)

	// Serialize.  The contexts live from the prepare phase to the end of
	// module serialization.
	doc, _ := export.RunPass(mod)
	defer export.Reset()

	if e.testMode {
		report.Debugf("document tree:\n%# v", pretty.Formatter(doc))
	}

	// Marshal in full before touching the file system: a fatal error must
	// never leave a partial document behind.
	data, err := export.MarshalDocument(doc)
	if err != nil {
		report.Fatalf("unable to marshal document: %s", err.Error())
	}

	// The output file must be new; silently replacing an earlier document
	// would let two runs race each other.
	f, err := os.OpenFile(e.outputPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		report.Fatalf("unable to create output file at `%s`: %s", e.outputPath, err.Error())
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		report.Fatalf("error writing output file at `%s`: %s", e.outputPath, err.Error())
	}

	report.Infof("exported `%s` to `%s`", e.inputPath, e.outputPath)
	return 0
}
