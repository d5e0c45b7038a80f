package bytecode

import (
	"encoding/binary"

	"github.com/cwbudde/go-esvm/internal/runtime"
)

// Builder hand-assembles a Chunk one instruction at a time. It exists for
// tests that need to construct bytecode directly without going through an
// emitter -- emission from source is out of scope here and lives upstream
// of this package.
type Builder struct {
	chunk Chunk
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) op(op Op) *Builder {
	b.chunk.Code = append(b.chunk.Code, byte(op))
	return b
}

func (b *Builder) int8(op Op, v int8) *Builder {
	b.chunk.Code = append(b.chunk.Code, byte(op), byte(v))
	return b
}

func (b *Builder) uint32(op Op, v uint32) *Builder {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, v)
	b.chunk.Code = append(append(b.chunk.Code, byte(op)), buf...)
	return b
}

func (b *Builder) int32(op Op, v int32) *Builder {
	return b.uint32(op, uint32(v))
}

func (b *Builder) PushInt8(v int8) *Builder        { return b.int8(OpPushInt8, v) }
func (b *Builder) PushInt32(v int32) *Builder       { return b.int32(OpPushInt32, v) }
func (b *Builder) PushTrue() *Builder               { return b.op(OpPushTrue) }
func (b *Builder) PushFalse() *Builder              { return b.op(OpPushFalse) }
func (b *Builder) PushThis() *Builder               { return b.op(OpPushThis) }
func (b *Builder) PushArguments() *Builder          { return b.op(OpPushArguments) }
func (b *Builder) Double() *Builder                 { return b.op(OpDouble) }
func (b *Builder) Pop() *Builder                    { return b.op(OpPop) }
func (b *Builder) Neg() *Builder                    { return b.op(OpNeg) }
func (b *Builder) Add() *Builder                    { return b.op(OpAdd) }
func (b *Builder) Sub() *Builder                    { return b.op(OpSub) }
func (b *Builder) Mul() *Builder                    { return b.op(OpMul) }
func (b *Builder) Div() *Builder                    { return b.op(OpDiv) }
func (b *Builder) Rem() *Builder                    { return b.op(OpRem) }
func (b *Builder) Lt() *Builder                     { return b.op(OpLt) }
func (b *Builder) Gt() *Builder                     { return b.op(OpGt) }
func (b *Builder) Le() *Builder                     { return b.op(OpLe) }
func (b *Builder) Ge() *Builder                     { return b.op(OpGe) }
func (b *Builder) Eq() *Builder                     { return b.op(OpEq) }
func (b *Builder) Ne() *Builder                     { return b.op(OpNe) }
func (b *Builder) Seq() *Builder                    { return b.op(OpSeq) }
func (b *Builder) Sne() *Builder                    { return b.op(OpSne) }
func (b *Builder) And() *Builder                    { return b.op(OpAnd) }
func (b *Builder) Or() *Builder                     { return b.op(OpOr) }
func (b *Builder) GetMember() *Builder              { return b.op(OpGetMember) }
func (b *Builder) SetMember() *Builder              { return b.op(OpSetMember) }
func (b *Builder) SetCurCallobj() *Builder          { return b.op(OpSetCurCallobj) }
func (b *Builder) Return() *Builder                 { return b.op(OpReturn) }
func (b *Builder) End() *Builder                    { return b.op(OpEnd) }
func (b *Builder) Land() *Builder                   { return b.op(OpLand) }
func (b *Builder) Lor() *Builder                     { return b.op(OpLor) }

func (b *Builder) PushConst(idx uint32) *Builder      { return b.uint32(OpPushConst, idx) }
func (b *Builder) Jmp(rel int32) *Builder             { return b.int32(OpJmp, rel) }
func (b *Builder) JmpIfFalse(rel int32) *Builder      { return b.int32(OpJmpIfFalse, rel) }
func (b *Builder) GetLocal(idx uint32) *Builder       { return b.uint32(OpGetLocal, idx) }
func (b *Builder) SetLocal(idx uint32) *Builder       { return b.uint32(OpSetLocal, idx) }
func (b *Builder) GetArgLocal(idx uint32) *Builder    { return b.uint32(OpGetArgLocal, idx) }
func (b *Builder) SetArgLocal(idx uint32) *Builder    { return b.uint32(OpSetArgLocal, idx) }
func (b *Builder) GetName(idx uint32) *Builder        { return b.uint32(OpGetName, idx) }
func (b *Builder) SetName(idx uint32) *Builder        { return b.uint32(OpSetName, idx) }
func (b *Builder) DeclVar(idx uint32) *Builder        { return b.uint32(OpDeclVar, idx) }
func (b *Builder) CreateContext(nparams uint32) *Builder { return b.uint32(OpCreateContext, nparams) }
func (b *Builder) CreateArray(n uint32) *Builder      { return b.uint32(OpCreateArray, n) }
func (b *Builder) Call(nargs uint32) *Builder         { return b.uint32(OpCall, nargs) }
func (b *Builder) Construct(nargs uint32) *Builder    { return b.uint32(OpConstruct, nargs) }
func (b *Builder) GetGlobal(idx uint32) *Builder      { return b.uint32(OpGetGlobal, idx) }
func (b *Builder) SetGlobal(idx uint32) *Builder      { return b.uint32(OpSetGlobal, idx) }
func (b *Builder) CreateObject(npairs uint32) *Builder { return b.uint32(OpCreateObject, npairs) }

func (b *Builder) AssignFuncRestParam(nparams, dst uint32) *Builder {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint32(buf[0:4], nparams)
	binary.LittleEndian.PutUint32(buf[4:8], dst)
	b.chunk.Code = append(append(b.chunk.Code, byte(OpAssignFuncRestParam)), buf...)
	return b
}

// AddConst interns a constant value, returning its index.
func (b *Builder) AddConst(v runtime.Value) uint32 {
	b.chunk.Consts = append(b.chunk.Consts, v)
	return uint32(len(b.chunk.Consts) - 1)
}

// AddName interns a name string, returning its index.
func (b *Builder) AddName(name string) uint32 {
	b.chunk.Names = append(b.chunk.Names, name)
	return uint32(len(b.chunk.Names) - 1)
}

// PatchInt32 overwrites the 4-byte operand of a jmp/jmp_if_false already
// written at opcodePos, for back-patching a forward branch once its
// target is known.
func (b *Builder) PatchInt32(opcodePos int, rel int32) {
	binary.LittleEndian.PutUint32(b.chunk.Code[opcodePos+1:opcodePos+5], uint32(rel))
}

// Label returns the current write offset, for computing relative jump
// operands by hand.
func (b *Builder) Label() int32 {
	return int32(len(b.chunk.Code))
}

// Build finalizes and returns the assembled chunk.
func (b *Builder) Build() *Chunk {
	return &b.chunk
}
