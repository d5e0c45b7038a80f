package vm

import (
	"github.com/cwbudde/go-esvm/internal/bytecode"
	"github.com/cwbudde/go-esvm/internal/runtime"
)

// execBinaryOp implements the add/sub/mul/div/rem/lt/gt/le/ge/eq/ne/seq/
// sne/and/or table of spec.md §4.4: number pairs evaluate as IEEE doubles,
// rem/and/or truncate both operands to 64-bit integers, add concatenates
// when one operand is a string and the other a string or number, and any
// other mismatched pair is popped without a replacement push.
func (vm *VM) execBinaryOp(op bytecode.Op) {
	b := vm.pop()
	a := vm.pop()

	switch op {
	case bytecode.OpEq:
		vm.push(runtime.Bool(runtime.Equals(a, b)))
		return
	case bytecode.OpNe:
		vm.push(runtime.Bool(!runtime.Equals(a, b)))
		return
	case bytecode.OpSeq:
		vm.push(runtime.Bool(runtime.Equals(a, b)))
		return
	case bytecode.OpSne:
		vm.push(runtime.Bool(!runtime.Equals(a, b)))
		return
	}

	if op == bytecode.OpAdd && (a.Tag == runtime.TagString || b.Tag == runtime.TagString) {
		if isConcatable(a) && isConcatable(b) {
			vm.push(runtime.String(stringify(a) + stringify(b)))
			return
		}
	}

	if a.Tag != runtime.TagNumber || b.Tag != runtime.TagNumber {
		// Mismatched operand pair: both operands already popped, nothing
		// replaces them.
		return
	}

	an, bn := a.AsNumber(), b.AsNumber()
	switch op {
	case bytecode.OpAdd:
		vm.push(runtime.Number(an + bn))
	case bytecode.OpSub:
		vm.push(runtime.Number(an - bn))
	case bytecode.OpMul:
		vm.push(runtime.Number(an * bn))
	case bytecode.OpDiv:
		vm.push(runtime.Number(an / bn))
	case bytecode.OpRem:
		vm.push(runtime.Number(float64(int64(an) % int64(bn))))
	case bytecode.OpLt:
		vm.push(runtime.Bool(an < bn))
	case bytecode.OpGt:
		vm.push(runtime.Bool(an > bn))
	case bytecode.OpLe:
		vm.push(runtime.Bool(an <= bn))
	case bytecode.OpGe:
		vm.push(runtime.Bool(an >= bn))
	case bytecode.OpAnd:
		vm.push(runtime.Number(float64(int64(an) & int64(bn))))
	case bytecode.OpOr:
		vm.push(runtime.Number(float64(int64(an) | int64(bn))))
	}
}

// isConcatable reports whether v participates in string-concatenation add
// (a Number or a String; Bool/Object/etc. are not per spec.md's "number/
// string pairs in either order" wording).
func isConcatable(v runtime.Value) bool {
	return v.Tag == runtime.TagNumber || v.Tag == runtime.TagString
}

func stringify(v runtime.Value) string {
	if v.Tag == runtime.TagString {
		return v.AsString()
	}
	return formatNumber(v.AsNumber())
}
