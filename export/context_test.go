package export

import (
	"testing"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextLabelsAreDense(t *testing.T) {
	mod := ir.NewModule()

	a := ir.NewParam("a", types.I32)
	b := ir.NewParam("b", types.I32)
	fn := mod.NewFunc("f", types.I32, a, b)

	entry := fn.NewBlock("entry")
	next := fn.NewBlock("next")
	sum := entry.NewAdd(a, b)
	entry.NewBr(next)
	dbl := next.NewMul(sum, sum)
	next.NewRet(dbl)

	Prepare(mod)
	defer Reset()
	ctx := functionContext(fn)

	// arguments, blocks, and instructions are labeled independently, starting
	// at 0, in declaration and program order
	assert.Equal(t, 0, ctx.getArgument(a))
	assert.Equal(t, 1, ctx.getArgument(b))

	assert.Equal(t, 0, ctx.getBlock(entry))
	assert.Equal(t, 1, ctx.getBlock(next))

	assert.Equal(t, 0, ctx.getInstruction(sum))
	assert.Equal(t, 1, ctx.getInstruction(entry.Term))
	assert.Equal(t, 2, ctx.getInstruction(dbl))
	assert.Equal(t, 3, ctx.getInstruction(next.Term))
}

func TestContextsAreFunctionScoped(t *testing.T) {
	mod := ir.NewModule()

	f := mod.NewFunc("f", types.Void)
	fEntry := f.NewBlock("entry")
	fEntry.NewRet(nil)

	g := mod.NewFunc("g", types.Void)
	gEntry := g.NewBlock("entry")
	gEntry.NewRet(nil)

	Prepare(mod)
	defer Reset()

	// each function's labels restart at 0
	assert.Equal(t, 0, functionContext(f).getBlock(fEntry))
	assert.Equal(t, 0, functionContext(g).getBlock(gEntry))

	_, ok := functionContext(f).lookupInstruction(gEntry.Term)
	assert.False(t, ok)
}

func TestPrepareSkipsDebugFunctions(t *testing.T) {
	mod := ir.NewModule()
	dbg := mod.NewFunc("llvm.dbg.declare", types.Void)
	fn := mod.NewFunc("f", types.Void)
	fn.NewBlock("").NewRet(nil)

	Prepare(mod)
	defer Reset()

	_, ok := contexts[dbg]
	assert.False(t, ok)

	_, ok = contexts[fn]
	require.True(t, ok)
}
