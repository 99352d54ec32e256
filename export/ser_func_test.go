package export

import (
	"testing"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeFunctionDeclaration(t *testing.T) {
	mod := ir.NewModule()
	fn := mod.NewFunc("declared", types.I32, ir.NewParam("x", types.I32))

	Prepare(mod)
	defer Reset()

	result := SerializeFunction(fn)
	assert.Equal(t, "declared", result["name"])
	assert.Equal(t, false, result["is_defined"])
	assert.Equal(t, false, result["is_exact"])
	assert.Equal(t, false, result["is_intrinsic"])
	assert.Empty(t, result["blocks"])

	params := result["params"].([]obj)
	require.Len(t, params, 1)
	assert.Equal(t, "x", params[0]["name"])
	assert.Equal(t, obj{"Int": obj{"width": 32}}, params[0]["ty"])
}

func TestSerializeFunctionDefinition(t *testing.T) {
	mod := ir.NewModule()
	fn := buildAddFunc(mod)

	Prepare(mod)
	defer Reset()

	result := SerializeFunction(fn)
	assert.Equal(t, true, result["is_defined"])
	assert.Equal(t, true, result["is_exact"])

	blocks := result["blocks"].(arr)
	require.Len(t, blocks, 1)
	block := blocks[0].(obj)
	assert.Equal(t, 0, block["label"])
	assert.Equal(t, "entry", block["name"])
	assert.Len(t, block["body"], 1)
	require.Contains(t, block["terminator"].(obj)["repr"], "Return")
}

func TestSerializeFunctionWeakLinkageIsNotExact(t *testing.T) {
	mod := ir.NewModule()
	fn := mod.NewFunc("weak", types.Void)
	fn.NewBlock("").NewRet(nil)
	fn.Linkage = enum.LinkageWeak

	Prepare(mod)
	defer Reset()

	result := SerializeFunction(fn)
	assert.Equal(t, true, result["is_defined"])
	assert.Equal(t, false, result["is_exact"])
}

func TestSerializeFunctionIntrinsicFlag(t *testing.T) {
	mod := ir.NewModule()
	fn := mod.NewFunc("llvm.memcpy.p0i8.p0i8.i64", types.Void)

	Prepare(mod)
	defer Reset()

	result := SerializeFunction(fn)
	assert.Equal(t, true, result["is_intrinsic"])
}

func TestSerializeParameterFacets(t *testing.T) {
	param := ir.NewParam("agg", types.NewPointer(types.I64))
	param.Attrs = append(param.Attrs, ir.SRet{Typ: types.I64})

	result := serializeParameter(param)
	assert.Equal(t, obj{"Int": obj{"width": 64}}, result["struct_ret"])
	assert.NotContains(t, result, "by_val")

	plain := ir.NewParam("n", types.I32)
	result = serializeParameter(plain)
	assert.NotContains(t, result, "struct_ret")
}
