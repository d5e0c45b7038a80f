package bytecode

import (
	"encoding/binary"

	"github.com/cwbudde/go-esvm/internal/runtime"
)

// Chunk is one compiled unit: a flat instruction stream plus its constant
// and name pools. Multiple function bodies live concatenated in the same
// Code slice, addressed by entry-point offset (runtime.Function.Entry).
type Chunk struct {
	Code   []byte
	Consts []runtime.Value
	Names  []string
}

// DecodeInt8 reads the signed byte operand at pc (the byte immediately
// following an _int8 opcode).
func DecodeInt8(code []byte, pc int) int8 {
	return int8(code[pc])
}

// DecodeInt32 reads a little-endian signed 32-bit operand at pc, used for
// relative jump offsets.
func DecodeInt32(code []byte, pc int) int32 {
	return int32(binary.LittleEndian.Uint32(code[pc : pc+4]))
}

// DecodeUint32 reads a little-endian unsigned 32-bit operand at pc, used
// for constant/name/local indices and argument counts.
func DecodeUint32(code []byte, pc int) uint32 {
	return binary.LittleEndian.Uint32(code[pc : pc+4])
}

// InstrLen returns the total length in bytes (opcode + operand) of the
// instruction at pc, for callers that need to skip over it without
// executing it (e.g. a disassembler).
func InstrLen(code []byte, pc int) int {
	return 1 + operandWidth(Op(code[pc]))
}
