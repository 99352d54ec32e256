package export

import (
	"irjson/report"
	"irjson/util"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// serializeInstruction emits the envelope of an instruction or terminator:
// its result type, its label, its SSA name when it has one, and the tagged
// payload.  Instructions that produce no value are typed Void.
func (ctx *FuncContext) serializeInstruction(inst interface{}) obj {
	result := obj{}

	if v, ok := inst.(value.Value); ok {
		result["ty"] = SerializeType(v.Type())
	} else {
		result["ty"] = obj{"Void": nil}
	}

	result["index"] = ctx.getInstruction(inst)

	if named, ok := inst.(value.Named); ok && named.Name() != "" {
		result["name"] = named.Name()
	}

	result["repr"] = ctx.serializeInstRepr(inst)
	return result
}

// serializeInstRepr produces the tagged payload of an instruction or
// terminator.  The case analysis is total over the instruction universe: an
// instruction kind not recognized here is a defect.
func (ctx *FuncContext) serializeInstRepr(inst interface{}) obj {
	switch inst := inst.(type) {
	// memory
	case *ir.InstAlloca:
		payload := obj{
			"allocated_type": SerializeType(inst.ElemType),
			"address_space":  addrSpace(inst.Type()),
		}
		if inst.NElems != nil {
			payload["size"] = ctx.serializeValue(inst.NElems)
		}
		return obj{"Alloca": payload}

	case *ir.InstLoad:
		return obj{"Load": obj{
			"pointee_type":  SerializeType(inst.ElemType),
			"pointer":       ctx.serializeValue(inst.Src),
			"ordering":      orderingToken(inst.Ordering),
			"address_space": addrSpace(inst.Src.Type()),
		}}

	case *ir.InstStore:
		return obj{"Store": obj{
			"pointee_type":  SerializeType(inst.Src.Type()),
			"pointer":       ctx.serializeValue(inst.Dst),
			"value":         ctx.serializeValue(inst.Src),
			"ordering":      orderingToken(inst.Ordering),
			"address_space": addrSpace(inst.Dst.Type()),
		}}

	case *ir.InstVAArg:
		return obj{"VAArg": obj{
			"pointer": ctx.serializeValue(inst.ArgList),
		}}

	// calls
	case *ir.InstCall:
		return ctx.serializeInstCall(inst)

	// unary operators
	case *ir.InstFNeg:
		return unaryRepr("fneg", ctx.serializeValue(inst.X))

	// binary operators
	case *ir.InstAdd:
		return binaryRepr("add", ctx.serializeValue(inst.X), ctx.serializeValue(inst.Y))
	case *ir.InstFAdd:
		return binaryRepr("fadd", ctx.serializeValue(inst.X), ctx.serializeValue(inst.Y))
	case *ir.InstSub:
		return binaryRepr("sub", ctx.serializeValue(inst.X), ctx.serializeValue(inst.Y))
	case *ir.InstFSub:
		return binaryRepr("fsub", ctx.serializeValue(inst.X), ctx.serializeValue(inst.Y))
	case *ir.InstMul:
		return binaryRepr("mul", ctx.serializeValue(inst.X), ctx.serializeValue(inst.Y))
	case *ir.InstFMul:
		return binaryRepr("fmul", ctx.serializeValue(inst.X), ctx.serializeValue(inst.Y))
	case *ir.InstUDiv:
		return binaryRepr("udiv", ctx.serializeValue(inst.X), ctx.serializeValue(inst.Y))
	case *ir.InstSDiv:
		return binaryRepr("sdiv", ctx.serializeValue(inst.X), ctx.serializeValue(inst.Y))
	case *ir.InstFDiv:
		return binaryRepr("fdiv", ctx.serializeValue(inst.X), ctx.serializeValue(inst.Y))
	case *ir.InstURem:
		return binaryRepr("urem", ctx.serializeValue(inst.X), ctx.serializeValue(inst.Y))
	case *ir.InstSRem:
		return binaryRepr("srem", ctx.serializeValue(inst.X), ctx.serializeValue(inst.Y))
	case *ir.InstFRem:
		return binaryRepr("frem", ctx.serializeValue(inst.X), ctx.serializeValue(inst.Y))
	case *ir.InstShl:
		return binaryRepr("shl", ctx.serializeValue(inst.X), ctx.serializeValue(inst.Y))
	case *ir.InstLShr:
		return binaryRepr("lshr", ctx.serializeValue(inst.X), ctx.serializeValue(inst.Y))
	case *ir.InstAShr:
		return binaryRepr("ashr", ctx.serializeValue(inst.X), ctx.serializeValue(inst.Y))
	case *ir.InstAnd:
		return binaryRepr("and", ctx.serializeValue(inst.X), ctx.serializeValue(inst.Y))
	case *ir.InstOr:
		return binaryRepr("or", ctx.serializeValue(inst.X), ctx.serializeValue(inst.Y))
	case *ir.InstXor:
		return binaryRepr("xor", ctx.serializeValue(inst.X), ctx.serializeValue(inst.Y))

	// comparisons
	case *ir.InstICmp:
		return compareRepr(intPredicate(inst.Pred), inst.X.Type(), ctx.serializeValue(inst.X), ctx.serializeValue(inst.Y))
	case *ir.InstFCmp:
		return compareRepr(floatPredicate(inst.Pred), inst.X.Type(), ctx.serializeValue(inst.X), ctx.serializeValue(inst.Y))

	// casts
	case *ir.InstTrunc:
		return castRepr("trunc", inst.From.Type(), inst.To, ctx.serializeValue(inst.From))
	case *ir.InstZExt:
		return castRepr("zext", inst.From.Type(), inst.To, ctx.serializeValue(inst.From))
	case *ir.InstSExt:
		return castRepr("sext", inst.From.Type(), inst.To, ctx.serializeValue(inst.From))
	case *ir.InstFPTrunc:
		return castRepr("fp_trunc", inst.From.Type(), inst.To, ctx.serializeValue(inst.From))
	case *ir.InstFPExt:
		return castRepr("fp_ext", inst.From.Type(), inst.To, ctx.serializeValue(inst.From))
	case *ir.InstFPToUI:
		return castRepr("fp_to_ui", inst.From.Type(), inst.To, ctx.serializeValue(inst.From))
	case *ir.InstFPToSI:
		return castRepr("fp_to_si", inst.From.Type(), inst.To, ctx.serializeValue(inst.From))
	case *ir.InstUIToFP:
		return castRepr("ui_to_fp", inst.From.Type(), inst.To, ctx.serializeValue(inst.From))
	case *ir.InstSIToFP:
		return castRepr("si_to_fp", inst.From.Type(), inst.To, ctx.serializeValue(inst.From))
	case *ir.InstPtrToInt:
		return castRepr("ptr_to_int", inst.From.Type(), inst.To, ctx.serializeValue(inst.From))
	case *ir.InstIntToPtr:
		return castRepr("int_to_ptr", inst.From.Type(), inst.To, ctx.serializeValue(inst.From))
	case *ir.InstBitCast:
		return castRepr("bitcast", inst.From.Type(), inst.To, ctx.serializeValue(inst.From))
	case *ir.InstAddrSpaceCast:
		return castRepr("address_space_cast", inst.From.Type(), inst.To, ctx.serializeValue(inst.From))

	case *ir.InstFreeze:
		return obj{"Freeze": obj{
			"operand": ctx.serializeValue(inst.X),
		}}

	// pointer arithmetic
	case *ir.InstGetElementPtr:
		return gepRepr(
			inst.ElemType,
			inst.Type(),
			ctx.serializeValue(inst.Src),
			util.Map(inst.Indices, ctx.serializeValue),
		)

	// choice
	case *ir.InstPhi:
		options := make(arr, 0, len(inst.Incs))
		for _, inc := range inst.Incs {
			// the pairing is by block identity, never by position
			options = append(options, obj{
				"block": ctx.blockLabel(inc.Pred),
				"value": ctx.serializeValue(inc.X),
			})
		}
		return obj{"Phi": obj{"options": options}}

	case *ir.InstSelect:
		return obj{"ITE": obj{
			"cond":       ctx.serializeValue(inst.Cond),
			"then_value": ctx.serializeValue(inst.ValueTrue),
			"else_value": ctx.serializeValue(inst.ValueFalse),
		}}

	// aggregates
	case *ir.InstExtractValue:
		return obj{"GetValue": obj{
			"from_ty":   SerializeType(inst.X.Type()),
			"aggregate": ctx.serializeValue(inst.X),
			"indices":   aggregateIndices(inst.Indices),
		}}

	case *ir.InstInsertValue:
		return obj{"SetValue": obj{
			"aggregate": ctx.serializeValue(inst.X),
			"value":     ctx.serializeValue(inst.Elem),
			"indices":   aggregateIndices(inst.Indices),
		}}

	case *ir.InstExtractElement:
		return obj{"GetElement": obj{
			"vec_ty": SerializeType(inst.X.Type()),
			"vector": ctx.serializeValue(inst.X),
			"slot":   ctx.serializeValue(inst.Index),
		}}

	case *ir.InstInsertElement:
		return obj{"SetElement": obj{
			"vector": ctx.serializeValue(inst.X),
			"value":  ctx.serializeValue(inst.Elem),
			"slot":   ctx.serializeValue(inst.Index),
		}}

	case *ir.InstShuffleVector:
		return obj{"ShuffleVector": obj{
			"lhs":  ctx.serializeValue(inst.X),
			"rhs":  ctx.serializeValue(inst.Y),
			"mask": shuffleMask(inst.Mask),
		}}

	// concurrency
	case *ir.InstFence:
		return obj{"Fence": obj{
			"ordering": orderingToken(inst.Ordering),
			"scope":    scopeToken(inst.SyncScope),
		}}

	case *ir.InstCmpXchg:
		return obj{"AtomicCmpXchg": obj{
			"pointee_type":     SerializeType(inst.Cmp.Type()),
			"pointer":          ctx.serializeValue(inst.Ptr),
			"value_cmp":        ctx.serializeValue(inst.Cmp),
			"value_xchg":       ctx.serializeValue(inst.New),
			"address_space":    addrSpace(inst.Ptr.Type()),
			"ordering_success": orderingToken(inst.SuccessOrdering),
			"ordering_failure": orderingToken(inst.FailureOrdering),
			"scope":            scopeToken(inst.SyncScope),
		}}

	case *ir.InstAtomicRMW:
		return obj{"AtomicRMW": obj{
			"pointee_type":  SerializeType(inst.X.Type()),
			"pointer":       ctx.serializeValue(inst.Dst),
			"value":         ctx.serializeValue(inst.X),
			"address_space": addrSpace(inst.Dst.Type()),
			"opcode":        atomicOpcode(inst.Op),
			"ordering":      orderingToken(inst.Ordering),
			"scope":         scopeToken(inst.SyncScope),
		}}

	// exception handling (non-terminator)
	case *ir.InstLandingPad:
		clauses := make(arr, 0, len(inst.Clauses))
		for _, clause := range inst.Clauses {
			c, ok := clause.X.(constant.Constant)
			if !ok {
				report.Fatalf("landing pad clause is not a constant: %v", clause.X)
			}
			clauses = append(clauses, SerializeConstant(c))
		}
		return obj{"LandingPad": obj{
			"clauses":    clauses,
			"is_cleanup": inst.Cleanup,
		}}

	case *ir.InstCatchPad:
		return obj{"CatchPad": nil}
	case *ir.InstCleanupPad:
		return obj{"CleanupPad": nil}

	// terminators
	case *ir.TermRet:
		payload := obj{}
		if inst.X != nil {
			payload["value"] = ctx.serializeValue(inst.X)
		}
		return obj{"Return": payload}

	case *ir.TermBr:
		return obj{"Branch": obj{
			"targets": arr{ctx.blockLabel(inst.Target)},
		}}

	case *ir.TermCondBr:
		return obj{"Branch": obj{
			"cond": ctx.serializeValue(inst.Cond),
			"targets": arr{
				ctx.blockLabel(inst.TargetTrue),
				ctx.blockLabel(inst.TargetFalse),
			},
		}}

	case *ir.TermSwitch:
		return ctx.serializeTermSwitch(inst)

	case *ir.TermIndirectBr:
		targets := make(arr, 0, len(inst.ValidTargets))
		for _, target := range inst.ValidTargets {
			targets = append(targets, ctx.blockLabel(target))
		}
		return obj{"IndirectJump": obj{
			"address": ctx.serializeValue(inst.Addr),
			"targets": targets,
		}}

	case *ir.TermInvoke:
		return ctx.serializeTermInvoke(inst)

	case *ir.TermResume:
		return obj{"Resume": obj{
			"value": ctx.serializeValue(inst.X),
		}}

	case *ir.TermUnreachable:
		return obj{"Unreachable": nil}

	// exception handling (terminator)
	case *ir.TermCatchSwitch:
		return obj{"CatchSwitch": nil}
	case *ir.TermCatchRet:
		return obj{"CatchReturn": nil}
	case *ir.TermCleanupRet:
		return obj{"CleanupReturn": nil}

	// very rare cases (terminator)
	case *ir.TermCallBr:
		return obj{"CallBranch": nil}

	default:
		report.Fatalf("unknown instruction: %v", inst)
		return nil
	}
}

// serializeInstCall classifies and serializes a call: to an inline assembly
// template, to an intrinsic, directly to a named function, or through an
// arbitrary callee value.
func (ctx *FuncContext) serializeInstCall(inst *ir.InstCall) obj {
	if asmVal, ok := inst.Callee.(*ir.InlineAsm); ok {
		return obj{"CallAsm": obj{
			"asm":  SerializeInlineAsm(asmVal),
			"args": util.Map(inst.Args, ctx.serializeValue),
		}}
	}

	payload := obj{
		"callee":      ctx.serializeValue(inst.Callee),
		"target_type": SerializeType(calleeSignature(inst.Callee)),
		"args":        util.Map(inst.Args, ctx.serializeValue),
	}

	if callee, ok := inst.Callee.(*ir.Func); ok {
		if isIntrinsicFunction(callee) {
			return obj{"Intrinsic": payload}
		}
		return obj{"CallDirect": payload}
	}

	return obj{"CallIndirect": payload}
}

// serializeTermInvoke classifies and serializes an invoke the same way calls
// are classified, with the normal and unwind successors alongside.
func (ctx *FuncContext) serializeTermInvoke(inst *ir.TermInvoke) obj {
	normal := ctx.blockLabel(inst.NormalRetTarget)
	unwind := ctx.blockLabel(inst.ExceptionRetTarget)

	if asmVal, ok := inst.Invokee.(*ir.InlineAsm); ok {
		return obj{"InvokeAsm": obj{
			"asm":    SerializeInlineAsm(asmVal),
			"args":   util.Map(inst.Args, ctx.serializeValue),
			"normal": normal,
			"unwind": unwind,
		}}
	}

	payload := obj{
		"callee":      ctx.serializeValue(inst.Invokee),
		"target_type": SerializeType(calleeSignature(inst.Invokee)),
		"args":        util.Map(inst.Args, ctx.serializeValue),
		"normal":      normal,
		"unwind":      unwind,
	}

	if _, ok := inst.Invokee.(*ir.Func); ok {
		return obj{"InvokeDirect": payload}
	}

	return obj{"InvokeIndirect": payload}
}

// serializeTermSwitch emits the switch condition, its cases in declaration
// order, and the default target.  The default successor never appears among
// the cases.
func (ctx *FuncContext) serializeTermSwitch(inst *ir.TermSwitch) obj {
	cases := make(arr, 0, len(inst.Cases))
	for _, cs := range inst.Cases {
		caseVal, ok := cs.X.(constant.Constant)
		if !ok {
			report.Fatalf("switch case value is not a constant: %v", cs.X)
		}
		cases = append(cases, obj{
			"block": ctx.blockLabel(cs.Target),
			"value": SerializeConstant(caseVal),
		})
	}

	result := obj{
		"cond_ty": SerializeType(inst.X.Type()),
		"cond":    ctx.serializeValue(inst.X),
		"cases":   cases,
	}
	if inst.TargetDefault != nil {
		result["default"] = ctx.blockLabel(inst.TargetDefault)
	}
	return obj{"Switch": result}
}

// -----------------------------------------------------------------------------
// Shared payload builders.  Constant expressions are lowered through these as
// well, so they take pre-serialized operands.

func unaryRepr(opcode string, operand obj) obj {
	return obj{"Unary": obj{
		"opcode":  opcode,
		"operand": operand,
	}}
}

func binaryRepr(opcode string, lhs, rhs obj) obj {
	return obj{"Binary": obj{
		"opcode": opcode,
		"lhs":    lhs,
		"rhs":    rhs,
	}}
}

func compareRepr(predicate string, operandType types.Type, lhs, rhs obj) obj {
	return obj{"Compare": obj{
		"predicate":    predicate,
		"operand_type": SerializeType(operandType),
		"lhs":          lhs,
		"rhs":          rhs,
	}}
}

// castRepr builds a cast payload.  Casts that move values between address
// spaces carry the address spaces involved.
func castRepr(opcode string, srcTy, dstTy types.Type, operand obj) obj {
	payload := obj{
		"opcode":  opcode,
		"src_ty":  SerializeType(srcTy),
		"dst_ty":  SerializeType(dstTy),
		"operand": operand,
	}

	switch opcode {
	case "ptr_to_int":
		payload["src_address_space"] = addrSpace(srcTy)
	case "int_to_ptr":
		payload["dst_address_space"] = addrSpace(dstTy)
	case "address_space_cast":
		payload["src_address_space"] = addrSpace(srcTy)
		payload["dst_address_space"] = addrSpace(dstTy)
	}

	return obj{"Cast": payload}
}

// gepRepr builds a GEP payload from the source element type, the instruction
// result type, and pre-serialized pointer and index operands.
func gepRepr(srcElem types.Type, resultTy types.Type, pointer obj, indices []obj) obj {
	return obj{"GEP": obj{
		"src_pointee_ty": SerializeType(srcElem),
		"dst_pointee_ty": SerializeType(pointeeType(resultTy)),
		"pointer":        pointer,
		"indices":        indices,
		"address_space":  addrSpace(resultTy),
	}}
}

// aggregateIndices converts the constant index path of an extractvalue or
// insertvalue into a JSON array.
func aggregateIndices(indices []uint64) arr {
	result := make(arr, 0, len(indices))
	for _, idx := range indices {
		result = append(result, int(idx))
	}

	return result
}

// shuffleMask extracts the integer shuffle mask from its constant-vector
// operand.  Undefined mask slots are rendered as -1.
func shuffleMask(mask value.Value) arr {
	switch mask := mask.(type) {
	case *constant.Vector:
		result := make(arr, 0, len(mask.Elems))
		for _, elem := range mask.Elems {
			switch elem := elem.(type) {
			case *constant.Int:
				result = append(result, int(elem.X.Int64()))
			case *constant.Undef, *constant.Poison:
				result = append(result, -1)
			default:
				report.Fatalf("unknown shuffle mask element: %v", elem)
			}
		}
		return result

	case *constant.ZeroInitializer:
		vecTy, ok := mask.Type().(*types.VectorType)
		if !ok {
			report.Fatalf("shuffle mask is not of a vector type: %v", mask)
		}
		result := make(arr, 0, int(vecTy.Len))
		for i := uint64(0); i < vecTy.Len; i++ {
			result = append(result, 0)
		}
		return result

	case *constant.Undef:
		vecTy, ok := mask.Type().(*types.VectorType)
		if !ok {
			report.Fatalf("shuffle mask is not of a vector type: %v", mask)
		}
		result := make(arr, 0, int(vecTy.Len))
		for i := uint64(0); i < vecTy.Len; i++ {
			result = append(result, -1)
		}
		return result

	default:
		report.Fatalf("unknown shuffle mask: %v", mask)
		return nil
	}
}

// -----------------------------------------------------------------------------
// Vocabulary tables.

// orderingToken maps an atomic ordering to its canonical textual form.
func orderingToken(ordering enum.AtomicOrdering) string {
	switch ordering {
	case enum.AtomicOrderingNone:
		return "not_atomic"
	case enum.AtomicOrderingUnordered:
		return "unordered"
	case enum.AtomicOrderingMonotonic:
		return "monotonic"
	case enum.AtomicOrderingAcquire:
		return "acquire"
	case enum.AtomicOrderingRelease:
		return "release"
	case enum.AtomicOrderingAcquireRelease:
		return "acq_rel"
	case enum.AtomicOrderingSequentiallyConsistent:
		return "seq_cst"
	default:
		report.Fatalf("unknown atomic ordering: %v", ordering)
		return ""
	}
}

// scopeToken maps a synchronization scope to the fixed system/thread/unknown
// vocabulary.  An absent scope means the whole system.
func scopeToken(scope string) string {
	switch scope {
	case "":
		return "system"
	case "singlethread":
		return "thread"
	default:
		return "unknown"
	}
}

// atomicOpcode maps an atomic read-modify-write operation to its opcode name.
func atomicOpcode(op enum.AtomicOp) string {
	switch op {
	case enum.AtomicOpXChg:
		return "xchg"
	case enum.AtomicOpAdd:
		return "add"
	case enum.AtomicOpFAdd:
		return "fadd"
	case enum.AtomicOpSub:
		return "sub"
	case enum.AtomicOpFSub:
		return "fsub"
	case enum.AtomicOpMax:
		return "max"
	case enum.AtomicOpUMax:
		return "umax"
	case enum.AtomicOpMin:
		return "min"
	case enum.AtomicOpUMin:
		return "umin"
	case enum.AtomicOpAnd:
		return "and"
	case enum.AtomicOpOr:
		return "or"
	case enum.AtomicOpXor:
		return "xor"
	case enum.AtomicOpNAnd:
		return "nand"
	default:
		report.Fatalf("unknown atomic-rmw operation: %v", op)
		return ""
	}
}

// intPredicate maps an integer comparison predicate to its two-letter-family
// form.
func intPredicate(pred enum.IPred) string {
	switch pred {
	case enum.IPredEQ:
		return "i_eq"
	case enum.IPredNE:
		return "i_ne"
	case enum.IPredUGT:
		return "i_ugt"
	case enum.IPredUGE:
		return "i_uge"
	case enum.IPredULT:
		return "i_ult"
	case enum.IPredULE:
		return "i_ule"
	case enum.IPredSGT:
		return "i_sgt"
	case enum.IPredSGE:
		return "i_sge"
	case enum.IPredSLT:
		return "i_slt"
	case enum.IPredSLE:
		return "i_sle"
	default:
		report.Fatalf("unknown integer comparison predicate: %v", pred)
		return ""
	}
}

// floatPredicate maps a floating-point comparison predicate to its
// two-letter-family form.
func floatPredicate(pred enum.FPred) string {
	switch pred {
	case enum.FPredFalse:
		return "f_false"
	case enum.FPredOEQ:
		return "f_oeq"
	case enum.FPredOGT:
		return "f_ogt"
	case enum.FPredOGE:
		return "f_oge"
	case enum.FPredOLT:
		return "f_olt"
	case enum.FPredOLE:
		return "f_ole"
	case enum.FPredONE:
		return "f_one"
	case enum.FPredORD:
		return "f_ord"
	case enum.FPredUNO:
		return "f_uno"
	case enum.FPredUEQ:
		return "f_ueq"
	case enum.FPredUGT:
		return "f_ugt"
	case enum.FPredUGE:
		return "f_uge"
	case enum.FPredULT:
		return "f_ult"
	case enum.FPredULE:
		return "f_ule"
	case enum.FPredUNE:
		return "f_une"
	case enum.FPredTrue:
		return "f_true"
	default:
		report.Fatalf("unknown floating-point comparison predicate: %v", pred)
		return ""
	}
}
