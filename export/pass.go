package export

import (
	"github.com/llir/llvm/ir"
)

// PreservedAnalyses is the token the exporter hands back to the invoking
// pipeline, describing which of the pipeline's analyses survived the pass.
type PreservedAnalyses int

const (
	// PreservedNone marks every analysis as invalidated.  The exporter is
	// read-only in practice, but the conservative token keeps downstream
	// passes from assuming so.
	PreservedNone PreservedAnalyses = iota

	// PreservedAll marks every analysis as intact.
	PreservedAll
)

// RunPass is the module-pass entry point: it prepares the labeling context of
// every function in the module, then assembles the output document.  The
// caller is responsible for releasing the contexts with Reset once the
// document has been written out.
func RunPass(mod *ir.Module) (obj, PreservedAnalyses) {
	Prepare(mod)
	doc := SerializeModule(mod)
	return doc, PreservedNone
}
