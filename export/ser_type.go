package export

import (
	"irjson/report"
	"irjson/util"

	"github.com/llir/llvm/ir/types"
)

// SerializeType produces the tagged representation of an IR type.  The case
// analysis is total over the type universe: a type kind not recognized here
// is a defect, not data to be skipped.
func SerializeType(typ types.Type) obj {
	switch t := typ.(type) {
	case *types.VoidType:
		return obj{"Void": nil}
	case *types.IntType:
		return obj{"Int": obj{"width": int(t.BitSize)}}
	case *types.FloatType:
		return obj{"Float": serializeTypeFloat(t)}
	case *types.ArrayType:
		return obj{"Array": obj{
			"element": SerializeType(t.ElemType),
			"length":  int(t.Len),
		}}
	case *types.VectorType:
		// for scalable vectors the length is the minimum element count
		return obj{"Vector": obj{
			"element": SerializeType(t.ElemType),
			"fixed":   !t.Scalable,
			"length":  int(t.Len),
		}}
	case *types.StructType:
		return obj{"Struct": serializeTypeStruct(t)}
	case *types.FuncType:
		return obj{"Function": obj{
			"params":   util.Map(t.Params, SerializeType),
			"variadic": t.Variadic,
			"ret":      SerializeType(t.RetType),
		}}
	case *types.PointerType:
		// opaque-pointer model: the pointee is not part of the schema
		return obj{"Pointer": obj{"address_space": int(t.AddrSpace)}}
	case *types.LabelType:
		return obj{"Label": nil}
	case *types.TokenType:
		return obj{"Token": nil}
	case *types.MetadataType:
		return obj{"Metadata": nil}
	case *types.MMXType:
		// the x86 register-file types carry no element structure
		return obj{"Token": nil}
	default:
		report.Fatalf("unknown type kind: %v", typ)
		return nil
	}
}

// serializeTypeFloat maps a floating-point kind to its width and canonical
// name.
func serializeTypeFloat(t *types.FloatType) obj {
	switch t.Kind {
	case types.FloatKindHalf:
		return obj{"width": 16, "name": "half"}
	case types.FloatKindFloat:
		return obj{"width": 32, "name": "float"}
	case types.FloatKindDouble:
		return obj{"width": 64, "name": "double"}
	case types.FloatKindX86_FP80:
		return obj{"width": 80, "name": "x86_fp80"}
	case types.FloatKindFP128:
		return obj{"width": 128, "name": "fp128"}
	case types.FloatKindPPC_FP128:
		return obj{"width": 128, "name": "ppc_fp128"}
	default:
		report.Fatalf("unknown floating-point kind: %v", t.Kind)
		return nil
	}
}

// serializeTypeStruct produces the payload of a struct type.  The name is
// present only for identified structs; the field list is present only for
// non-opaque ones.
func serializeTypeStruct(t *types.StructType) obj {
	result := obj{}

	if t.TypeName != "" {
		result["name"] = t.TypeName
	}

	if !t.Opaque {
		result["fields"] = util.Map(t.Fields, SerializeType)
	}

	return result
}
