// Package bytecode defines the flat-byte instruction encoding the
// interpreter fetches, decodes, and executes: a single opcode byte
// followed by zero or more little-endian immediate bytes.
package bytecode

// Op is a single opcode byte. Operand width is encoded in the name: an
// "_int8" suffix takes one signed byte, everything else with an operand
// takes four bytes per operand field (int32 or uint32);
// assign_func_rest_param carries two such fields.
type Op byte

const (
	OpPushInt8 Op = iota
	OpPushInt32
	OpPushTrue
	OpPushFalse
	OpPushConst
	OpPushThis
	OpPushArguments
	OpDouble
	OpPop
	OpNeg
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpRem
	OpLt
	OpGt
	OpLe
	OpGe
	OpEq
	OpNe
	OpSeq
	OpSne
	OpAnd
	OpOr
	OpJmp
	OpJmpIfFalse
	OpGetLocal
	OpSetLocal
	OpGetArgLocal
	OpSetArgLocal
	OpGetName
	OpSetName
	OpDeclVar
	OpCreateContext
	OpSetCurCallobj
	OpGetMember
	OpSetMember
	OpCreateObject
	OpCreateArray
	OpCall
	OpConstruct
	OpReturn
	OpAssignFuncRestParam
	OpEnd
	OpGetGlobal
	OpSetGlobal
	OpLand
	OpLor

	opCount
)

// numOps is asserted by opcode_test.go to equal the spec's documented
// 49-entry opcode table.
const numOps = int(opCount)

var opNames = [opCount]string{
	OpPushInt8:             "push_int8",
	OpPushInt32:            "push_int32",
	OpPushTrue:             "push_true",
	OpPushFalse:            "push_false",
	OpPushConst:            "push_const",
	OpPushThis:             "push_this",
	OpPushArguments:        "push_arguments",
	OpDouble:               "double",
	OpPop:                  "pop",
	OpNeg:                  "neg",
	OpAdd:                  "add",
	OpSub:                  "sub",
	OpMul:                  "mul",
	OpDiv:                  "div",
	OpRem:                  "rem",
	OpLt:                   "lt",
	OpGt:                   "gt",
	OpLe:                   "le",
	OpGe:                   "ge",
	OpEq:                   "eq",
	OpNe:                   "ne",
	OpSeq:                  "seq",
	OpSne:                  "sne",
	OpAnd:                  "and",
	OpOr:                   "or",
	OpJmp:                  "jmp",
	OpJmpIfFalse:           "jmp_if_false",
	OpGetLocal:             "get_local",
	OpSetLocal:             "set_local",
	OpGetArgLocal:          "get_arg_local",
	OpSetArgLocal:          "set_arg_local",
	OpGetName:              "get_name",
	OpSetName:              "set_name",
	OpDeclVar:              "decl_var",
	OpCreateContext:        "create_context",
	OpSetCurCallobj:        "set_cur_callobj",
	OpGetMember:            "get_member",
	OpSetMember:            "set_member",
	OpCreateObject:         "create_object",
	OpCreateArray:          "create_array",
	OpCall:                 "call",
	OpConstruct:            "construct",
	OpReturn:               "return",
	OpAssignFuncRestParam:  "assign_func_rest_param",
	OpEnd:                  "end",
	OpGetGlobal:            "get_global",
	OpSetGlobal:            "set_global",
	OpLand:                 "land",
	OpLor:                  "lor",
}

func (op Op) String() string {
	if int(op) < len(opNames) && opNames[op] != "" {
		return opNames[op]
	}
	return "op(?)"
}

// operandWidth returns the number of immediate bytes following op in the
// instruction stream: 0 (none), 1 (int8), 4 (int32/uint32), or 8 (two
// uint32 fields, assign_func_rest_param).
func operandWidth(op Op) int {
	switch op {
	case OpPushInt8:
		return 1
	case OpPushInt32, OpPushConst,
		OpJmp, OpJmpIfFalse,
		OpGetLocal, OpSetLocal, OpGetArgLocal, OpSetArgLocal,
		OpGetName, OpSetName, OpDeclVar,
		OpCreateContext, OpCreateObject, OpCreateArray, OpCall, OpConstruct,
		OpGetGlobal, OpSetGlobal:
		return 4
	case OpAssignFuncRestParam:
		return 8
	default:
		return 0
	}
}
