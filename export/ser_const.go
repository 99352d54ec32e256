package export

import (
	"math/big"
	"strconv"

	"irjson/report"
	"irjson/util"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
)

// SerializeConstant produces the {ty, repr} envelope of a constant.
func SerializeConstant(c constant.Constant) obj {
	// gep indices may arrive wrapped with an inrange marker; the marker has
	// no standing in the schema
	if idx, ok := c.(*constant.Index); ok {
		c = idx.Constant
	}

	return obj{
		"ty":   SerializeType(c.Type()),
		"repr": serializeConstRepr(c),
	}
}

// serializeConstRepr produces the tagged representation of a constant.  The
// case analysis is total over the constant universe: an unrecognized constant
// is a defect.
func serializeConstRepr(c constant.Constant) obj {
	switch c := c.(type) {
	// constant data
	case *constant.Int:
		return obj{"Int": obj{"value": intText(c)}}
	case *constant.Float:
		return obj{"Float": obj{"value": floatText(c)}}
	case *constant.Null:
		return obj{"Null": nil}
	case *constant.NoneToken:
		return obj{"None": nil}
	case *constant.Undef:
		return obj{"Undef": nil}
	case *constant.Poison:
		// poison refines undef; the consumer does not distinguish them
		return obj{"Undef": nil}
	case *constant.ZeroInitializer:
		return obj{"Default": nil}
	case *constant.CharArray:
		return obj{"Array": obj{"elements": charArrayElements(c)}}

	// constant aggregates
	case *constant.Array:
		return obj{"Array": obj{"elements": util.Map(c.Elems, SerializeConstant)}}
	case *constant.Struct:
		return obj{"Struct": obj{"elements": util.Map(c.Fields, SerializeConstant)}}
	case *constant.Vector:
		return obj{"Vector": obj{"elements": util.Map(c.Elems, SerializeConstant)}}

	// references to global declarations
	case *ir.Global:
		return obj{"Variable": globalRef(c.Name(), "global variable")}
	case *ir.Func:
		return obj{"Function": globalRef(c.Name(), "function")}
	case *ir.Alias:
		return obj{"Alias": globalRef(c.Name(), "alias")}
	case *ir.IFunc:
		return obj{"Interface": globalRef(c.Name(), "ifunc")}

	// block addresses
	case *constant.BlockAddress:
		return obj{"Label": serializeBlockAddress(c)}

	// constant expressions
	case constant.Expression:
		return obj{"Expr": obj{"inst": serializeConstExpr(c)}}

	default:
		report.Fatalf("unknown constant: %v", c)
		return nil
	}
}

// globalRef builds a reference to a named global entity.  An unnamed global
// is a data anomaly: the reference is emitted without a name and an error is
// recorded.
func globalRef(name, kind string) obj {
	if name == "" {
		report.Errorf("reference to unnamed %s", kind)
		return obj{}
	}

	return obj{"name": name}
}

// serializeBlockAddress resolves a block-address constant against the
// process-wide context registry.  The registry must already hold the target
// function's context: block addresses are the one place a reference crosses
// function boundaries.
func serializeBlockAddress(c *constant.BlockAddress) obj {
	fn, ok := c.Func.(*ir.Func)
	if !ok {
		report.Fatalf("block address scoped to a non-function: %v", c)
	}
	if fn.Name() == "" {
		report.Fatalf("block address referring to an unnamed function")
	}

	block, ok := c.Block.(*ir.Block)
	if !ok {
		report.Fatalf("block address targeting a non-block: %v", c)
	}

	return obj{
		"func":  fn.Name(),
		"block": functionContext(fn).getBlock(block),
	}
}

// intText renders an integer constant as an unsigned decimal string of its
// bit pattern, at any width.
func intText(c *constant.Int) string {
	x := c.X
	if x.Sign() < 0 {
		// negative values are stored in signed form; re-express the bit
		// pattern as an unsigned value of the type's width
		mod := new(big.Int).Lsh(big.NewInt(1), uint(c.Typ.BitSize))
		x = new(big.Int).Add(x, mod)
	}

	return x.String()
}

// floatText renders a floating-point constant as text without losing
// precision.
func floatText(c *constant.Float) string {
	if c.NaN {
		return "nan"
	}

	if c.X.IsInf() {
		if c.X.Signbit() {
			return "-inf"
		}
		return "+inf"
	}

	return c.X.Text('g', -1)
}

// charArrayElements expands the packed byte payload of a character array into
// per-element i8 constants.
func charArrayElements(c *constant.CharArray) arr {
	elems := make(arr, 0, len(c.X))
	for _, b := range c.X {
		elems = append(elems, obj{
			"ty":   obj{"Int": obj{"width": 8}},
			"repr": obj{"Int": obj{"value": strconv.Itoa(int(b))}},
		})
	}

	return elems
}
