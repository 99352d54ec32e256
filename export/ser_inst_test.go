package export

import (
	"testing"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildAddFunc lowers `int f(int a, int b) { return a + b; }`.
func buildAddFunc(mod *ir.Module) *ir.Func {
	a := ir.NewParam("a", types.I32)
	b := ir.NewParam("b", types.I32)
	fn := mod.NewFunc("f", types.I32, a, b)

	entry := fn.NewBlock("entry")
	sum := entry.NewAdd(a, b)
	entry.NewRet(sum)
	return fn
}

func TestSerializeInstAdd(t *testing.T) {
	mod := ir.NewModule()
	fn := buildAddFunc(mod)
	Prepare(mod)
	defer Reset()

	ctx := functionContext(fn)
	entry := fn.Blocks[0]

	inst := ctx.serializeInstruction(entry.Insts[0])
	assert.Equal(t, obj{"Int": obj{"width": 32}}, inst["ty"])
	assert.Equal(t, 0, inst["index"])

	require.Contains(t, inst["repr"], "Binary")
	payload := inst["repr"].(obj)["Binary"].(obj)
	assert.Equal(t, "add", payload["opcode"])
	assert.Equal(t, obj{"Argument": obj{
		"ty":    obj{"Int": obj{"width": 32}},
		"index": 0,
	}}, payload["lhs"])
	assert.Equal(t, obj{"Argument": obj{
		"ty":    obj{"Int": obj{"width": 32}},
		"index": 1,
	}}, payload["rhs"])
}

func TestSerializeInstReturnReference(t *testing.T) {
	mod := ir.NewModule()
	fn := buildAddFunc(mod)
	Prepare(mod)
	defer Reset()

	ctx := functionContext(fn)
	term := ctx.serializeInstruction(fn.Blocks[0].Term)

	assert.Equal(t, obj{"Void": nil}, term["ty"])
	assert.Equal(t, 1, term["index"])

	require.Contains(t, term["repr"], "Return")
	payload := term["repr"].(obj)["Return"].(obj)
	assert.Equal(t, obj{"Instruction": obj{
		"ty":    obj{"Int": obj{"width": 32}},
		"index": 0,
	}}, payload["value"])
}

func TestSerializeInstMemory(t *testing.T) {
	mod := ir.NewModule()
	fn := mod.NewFunc("mem", types.I32)
	entry := fn.NewBlock("")

	slot := entry.NewAlloca(types.I32)
	entry.NewStore(constant.NewInt(types.I32, 7), slot)
	loaded := entry.NewLoad(types.I32, slot)
	entry.NewRet(loaded)

	Prepare(mod)
	defer Reset()
	ctx := functionContext(fn)

	alloca := ctx.serializeInstRepr(entry.Insts[0])
	require.Contains(t, alloca, "Alloca")
	payload := alloca["Alloca"].(obj)
	assert.Equal(t, obj{"Int": obj{"width": 32}}, payload["allocated_type"])
	assert.Equal(t, 0, payload["address_space"])
	assert.NotContains(t, payload, "size")

	store := ctx.serializeInstRepr(entry.Insts[1])
	require.Contains(t, store, "Store")
	payload = store["Store"].(obj)
	assert.Equal(t, "not_atomic", payload["ordering"])
	assert.Equal(t, obj{"Int": obj{"width": 32}}, payload["pointee_type"])

	load := ctx.serializeInstRepr(entry.Insts[2])
	require.Contains(t, load, "Load")
	payload = load["Load"].(obj)
	assert.Equal(t, "not_atomic", payload["ordering"])
	assert.Equal(t, obj{"Instruction": obj{
		"ty":    obj{"Pointer": obj{"address_space": 0}},
		"index": 0,
	}}, payload["pointer"])
}

func TestSerializeInstPhi(t *testing.T) {
	mod := ir.NewModule()
	cond := ir.NewParam("cond", types.I1)
	fn := mod.NewFunc("diamond", types.I32, cond)

	entry := fn.NewBlock("entry")
	left := fn.NewBlock("left")
	right := fn.NewBlock("right")
	join := fn.NewBlock("join")

	entry.NewCondBr(cond, left, right)
	left.NewBr(join)
	right.NewBr(join)

	phi := join.NewPhi(
		ir.NewIncoming(constant.NewInt(types.I32, 1), left),
		ir.NewIncoming(constant.NewInt(types.I32, 2), right),
	)
	join.NewRet(phi)

	Prepare(mod)
	defer Reset()
	ctx := functionContext(fn)

	repr := ctx.serializeInstRepr(phi)
	require.Contains(t, repr, "Phi")
	options := repr["Phi"].(obj)["options"].(arr)
	require.Len(t, options, 2)

	// the pairing is by block identity: label 1 is `left`, label 2 is `right`
	first := options[0].(obj)
	assert.Equal(t, 1, first["block"])
	assert.Equal(t, obj{"Constant": SerializeConstant(constant.NewInt(types.I32, 1))}, first["value"])

	second := options[1].(obj)
	assert.Equal(t, 2, second["block"])
	assert.Equal(t, obj{"Constant": SerializeConstant(constant.NewInt(types.I32, 2))}, second["value"])
}

func TestSerializeInstSwitch(t *testing.T) {
	mod := ir.NewModule()
	x := ir.NewParam("x", types.I32)
	fn := mod.NewFunc("pick", types.Void, x)

	entry := fn.NewBlock("entry")
	one := fn.NewBlock("one")
	five := fn.NewBlock("five")
	nine := fn.NewBlock("nine")
	dflt := fn.NewBlock("default")

	entry.NewSwitch(x, dflt,
		ir.NewCase(constant.NewInt(types.I32, 1), one),
		ir.NewCase(constant.NewInt(types.I32, 5), five),
		ir.NewCase(constant.NewInt(types.I32, 9), nine),
	)
	for _, block := range []*ir.Block{one, five, nine, dflt} {
		block.NewRet(nil)
	}

	Prepare(mod)
	defer Reset()
	ctx := functionContext(fn)

	repr := ctx.serializeInstRepr(entry.Term)
	require.Contains(t, repr, "Switch")
	payload := repr["Switch"].(obj)

	cases := payload["cases"].(arr)
	require.Len(t, cases, 3)
	assert.Equal(t, 1, cases[0].(obj)["block"])
	assert.Equal(t, 3, cases[2].(obj)["block"])

	// the default target never appears among the cases
	assert.Equal(t, 4, payload["default"])
	for _, cs := range cases {
		assert.NotEqual(t, 4, cs.(obj)["block"])
	}
}

func TestSerializeInstCmpXchg(t *testing.T) {
	mod := ir.NewModule()
	ptr := ir.NewParam("p", types.NewPointer(types.I64))
	fn := mod.NewFunc("cas", types.Void, ptr)
	entry := fn.NewBlock("")

	cmpxchg := entry.NewCmpXchg(
		ptr,
		constant.NewInt(types.I64, 0),
		constant.NewInt(types.I64, 1),
		enum.AtomicOrderingAcquireRelease,
		enum.AtomicOrderingMonotonic,
	)
	entry.NewRet(nil)

	Prepare(mod)
	defer Reset()
	ctx := functionContext(fn)

	repr := ctx.serializeInstRepr(cmpxchg)
	require.Contains(t, repr, "AtomicCmpXchg")
	payload := repr["AtomicCmpXchg"].(obj)
	assert.Equal(t, "acq_rel", payload["ordering_success"])
	assert.Equal(t, "monotonic", payload["ordering_failure"])
	assert.Equal(t, "system", payload["scope"])
	assert.Equal(t, obj{"Int": obj{"width": 64}}, payload["pointee_type"])
	assert.Equal(t, 0, payload["address_space"])
}

func TestSerializeInstAtomicRMW(t *testing.T) {
	mod := ir.NewModule()
	ptr := ir.NewParam("p", types.NewPointer(types.I32))
	fn := mod.NewFunc("rmw", types.Void, ptr)
	entry := fn.NewBlock("")

	rmw := entry.NewAtomicRMW(enum.AtomicOpAdd, ptr, constant.NewInt(types.I32, 1), enum.AtomicOrderingSequentiallyConsistent)
	rmw.SyncScope = "singlethread"
	entry.NewRet(nil)

	Prepare(mod)
	defer Reset()
	ctx := functionContext(fn)

	repr := ctx.serializeInstRepr(rmw)
	require.Contains(t, repr, "AtomicRMW")
	payload := repr["AtomicRMW"].(obj)
	assert.Equal(t, "add", payload["opcode"])
	assert.Equal(t, "seq_cst", payload["ordering"])
	assert.Equal(t, "thread", payload["scope"])
}

func TestSerializeInstCasts(t *testing.T) {
	mod := ir.NewModule()
	x := ir.NewParam("x", types.I32)
	p := ir.NewParam("p", types.NewPointer(types.I8))
	fn := mod.NewFunc("casts", types.Void, x, p)
	entry := fn.NewBlock("")

	sext := entry.NewSExt(x, types.I64)
	p2i := entry.NewPtrToInt(p, types.I64)
	entry.NewRet(nil)

	Prepare(mod)
	defer Reset()
	ctx := functionContext(fn)

	repr := ctx.serializeInstRepr(sext)
	require.Contains(t, repr, "Cast")
	payload := repr["Cast"].(obj)
	assert.Equal(t, "sext", payload["opcode"])
	assert.Equal(t, obj{"Int": obj{"width": 32}}, payload["src_ty"])
	assert.Equal(t, obj{"Int": obj{"width": 64}}, payload["dst_ty"])
	assert.NotContains(t, payload, "src_address_space")

	repr = ctx.serializeInstRepr(p2i)
	payload = repr["Cast"].(obj)
	assert.Equal(t, "ptr_to_int", payload["opcode"])
	assert.Equal(t, 0, payload["src_address_space"])
	assert.NotContains(t, payload, "dst_address_space")
}

func TestSerializeInstCallClassification(t *testing.T) {
	mod := ir.NewModule()
	callee := mod.NewFunc("callee", types.Void)
	intrinsic := mod.NewFunc("llvm.memset.p0i8.i64", types.Void)

	fptr := ir.NewParam("fp", types.NewPointer(types.NewFunc(types.Void)))
	fn := mod.NewFunc("caller", types.Void, fptr)
	entry := fn.NewBlock("")
	direct := entry.NewCall(callee)
	intr := entry.NewCall(intrinsic)
	indirect := entry.NewCall(fptr)
	entry.NewRet(nil)

	Prepare(mod)
	defer Reset()
	ctx := functionContext(fn)

	assert.Contains(t, ctx.serializeInstRepr(direct), "CallDirect")
	assert.Contains(t, ctx.serializeInstRepr(intr), "Intrinsic")
	assert.Contains(t, ctx.serializeInstRepr(indirect), "CallIndirect")
}

func TestSerializeInstGEP(t *testing.T) {
	mod := ir.NewModule()
	p := ir.NewParam("p", types.NewPointer(types.NewArray(4, types.I32)))
	fn := mod.NewFunc("index", types.Void, p)
	entry := fn.NewBlock("")

	gep := entry.NewGetElementPtr(
		types.NewArray(4, types.I32),
		p,
		constant.NewInt(types.I64, 0),
		constant.NewInt(types.I64, 2),
	)
	entry.NewRet(nil)

	Prepare(mod)
	defer Reset()
	ctx := functionContext(fn)

	repr := ctx.serializeInstRepr(gep)
	require.Contains(t, repr, "GEP")
	payload := repr["GEP"].(obj)
	assert.Equal(t, obj{"Int": obj{"width": 32}}, payload["dst_pointee_ty"])
	assert.Len(t, payload["indices"], 2)
	assert.Equal(t, 0, payload["address_space"])
}

func TestDebugCallsFilteredFromBody(t *testing.T) {
	mod := ir.NewModule()
	dbg := mod.NewFunc("llvm.dbg.value", types.Void)

	fn := mod.NewFunc("traced", types.Void)
	entry := fn.NewBlock("")
	entry.NewCall(dbg)
	entry.NewRet(nil)

	Prepare(mod)
	defer Reset()
	ctx := functionContext(fn)

	block := ctx.serializeBlock(entry)
	assert.Empty(t, block["body"])
	require.Contains(t, block["terminator"].(obj)["repr"], "Return")

	// the terminator is the only labeled instruction
	assert.Equal(t, 0, block["terminator"].(obj)["index"])
}
