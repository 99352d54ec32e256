package export

import (
	"github.com/llir/llvm/ir"
)

// SerializeInlineAsm emits the template string, the constraint string, and
// the signature of an inline assembly value.
func SerializeInlineAsm(asmVal *ir.InlineAsm) obj {
	return obj{
		"signature":  SerializeType(calleeSignature(asmVal)),
		"asm":        asmVal.Asm,
		"constraint": asmVal.Constraint,
	}
}
