package bytecode

import (
	"testing"

	"github.com/cwbudde/go-esvm/internal/runtime"
)

func TestBuilderRoundTripsOperands(t *testing.T) {
	b := NewBuilder()
	constIdx := b.AddConst(runtime.Number(42))
	b.PushInt8(-7).PushConst(constIdx).Add().Return()
	chunk := b.Build()

	if Op(chunk.Code[0]) != OpPushInt8 {
		t.Fatalf("expected first op push_int8, got %v", Op(chunk.Code[0]))
	}
	if got := DecodeInt8(chunk.Code, 1); got != -7 {
		t.Errorf("DecodeInt8 = %d, want -7", got)
	}

	pc := 2
	if Op(chunk.Code[pc]) != OpPushConst {
		t.Fatalf("expected push_const at pc=%d, got %v", pc, Op(chunk.Code[pc]))
	}
	if got := DecodeUint32(chunk.Code, pc+1); got != constIdx {
		t.Errorf("DecodeUint32 = %d, want %d", got, constIdx)
	}
	if chunk.Consts[constIdx].AsNumber() != 42 {
		t.Errorf("const pool[%d] = %+v, want 42", constIdx, chunk.Consts[constIdx])
	}
}

func TestInstrLenMatchesOperandWidth(t *testing.T) {
	b := NewBuilder()
	b.PushInt8(1).Jmp(10).PushTrue().End()
	chunk := b.Build()

	pc := 0
	if l := InstrLen(chunk.Code, pc); l != 2 {
		t.Errorf("push_int8 InstrLen = %d, want 2", l)
	}
	pc += 2
	if l := InstrLen(chunk.Code, pc); l != 5 {
		t.Errorf("jmp InstrLen = %d, want 5", l)
	}
	pc += 5
	if l := InstrLen(chunk.Code, pc); l != 1 {
		t.Errorf("push_true InstrLen = %d, want 1", l)
	}
}

func TestNegativeJumpOffsetRoundTrips(t *testing.T) {
	b := NewBuilder()
	b.Jmp(-12)
	chunk := b.Build()
	if got := DecodeInt32(chunk.Code, 1); got != -12 {
		t.Errorf("DecodeInt32 = %d, want -12", got)
	}
}
