package export

import (
	"irjson/report"

	"github.com/llir/llvm/ir"
)

// FuncContext is the function-scoped labeling context.  It assigns dense
// integer labels, starting at 0 and in program order, to the arguments, basic
// blocks, and instructions of a single function.  Every reference emitted
// while serializing that function resolves through its context; the three
// namespaces are independent of each other.
type FuncContext struct {
	// blockLabels maps each basic block to its label.
	blockLabels map[*ir.Block]int

	// instLabels maps each instruction, including every block's terminator,
	// to its label.  Non-value terminators do not implement value.Value, so
	// the map is keyed on bare interface identity.
	instLabels map[interface{}]int

	// argLabels maps each function parameter to its label.
	argLabels map[*ir.Param]int
}

func newFuncContext() *FuncContext {
	return &FuncContext{
		blockLabels: make(map[*ir.Block]int),
		instLabels:  make(map[interface{}]int),
		argLabels:   make(map[*ir.Param]int),
	}
}

// addBlock assigns the next dense block label to the given block.  Labeling
// the same block twice is a defect.
func (ctx *FuncContext) addBlock(block *ir.Block) {
	if _, ok := ctx.blockLabels[block]; ok {
		report.Fatalf("block labeled twice: %s", block.Ident())
	}

	ctx.blockLabels[block] = len(ctx.blockLabels)
}

// addInstruction assigns the next dense instruction label to the given
// instruction.  Labeling the same instruction twice is a defect.
func (ctx *FuncContext) addInstruction(inst interface{}) {
	if _, ok := ctx.instLabels[inst]; ok {
		report.Fatalf("instruction labeled twice: %v", inst)
	}

	ctx.instLabels[inst] = len(ctx.instLabels)
}

// addArgument assigns the next dense argument label to the given parameter.
// Labeling the same parameter twice is a defect.
func (ctx *FuncContext) addArgument(param *ir.Param) {
	if _, ok := ctx.argLabels[param]; ok {
		report.Fatalf("argument labeled twice: %s", param.Ident())
	}

	ctx.argLabels[param] = len(ctx.argLabels)
}

// getBlock returns the label of a block previously added to this context.  A
// missing entry is a defect.
func (ctx *FuncContext) getBlock(block *ir.Block) int {
	label, ok := ctx.blockLabels[block]
	if !ok {
		report.Fatalf("block has no label: %s", block.Ident())
	}

	return label
}

// getInstruction returns the label of an instruction previously added to this
// context.  A missing entry is a defect.
func (ctx *FuncContext) getInstruction(inst interface{}) int {
	label, ok := ctx.instLabels[inst]
	if !ok {
		report.Fatalf("instruction has no label: %v", inst)
	}

	return label
}

// lookupInstruction is the non-asserting form of getInstruction used by value
// dispatch, where failure means the value is of some other, unexpected kind.
func (ctx *FuncContext) lookupInstruction(inst interface{}) (int, bool) {
	label, ok := ctx.instLabels[inst]
	return label, ok
}

// getArgument returns the label of a parameter previously added to this
// context.  A missing entry is a defect.
func (ctx *FuncContext) getArgument(param *ir.Param) int {
	label, ok := ctx.argLabels[param]
	if !ok {
		report.Fatalf("argument has no label: %s", param.Ident())
	}

	return label
}

// -----------------------------------------------------------------------------

// contexts is the process-wide registry mapping each non-filtered function to
// its labeling context.  Prepare populates it in full before any emission
// runs: a block-address constant in one function cites labels in another, so
// on-demand labeling during emission cannot work.
var contexts map[*ir.Func]*FuncContext

// Prepare builds the labeling context of every non-filtered function in the
// module.  It must run, once, before SerializeModule.
func Prepare(mod *ir.Module) {
	contexts = make(map[*ir.Func]*FuncContext)

	for _, fn := range mod.Funcs {
		// debug intrinsics are dropped from the output entirely: no context,
		// no labels
		if isDebugFunction(fn) {
			continue
		}

		ctx := newFuncContext()
		for _, param := range fn.Params {
			ctx.addArgument(param)
		}

		for _, block := range fn.Blocks {
			ctx.addBlock(block)
			for _, inst := range block.Insts {
				if isDebugInstruction(inst) {
					continue
				}

				ctx.addInstruction(inst)
			}

			ctx.addInstruction(block.Term)
		}

		contexts[fn] = ctx
	}
}

// Reset releases every function context.  The registry's lifetime matches a
// single export run: populate, emit, release.
func Reset() {
	contexts = nil
}

// functionContext returns the context registered for the given function.  A
// missing context is a defect: either Prepare never ran or the function was
// filtered.
func functionContext(fn *ir.Func) *FuncContext {
	ctx, ok := contexts[fn]
	if !ok {
		report.Fatalf("function context not ready: %s", fn.Ident())
	}

	return ctx
}
