package vm

import (
	"github.com/cwbudde/go-esvm/internal/bytecode"
	"github.com/cwbudde/go-esvm/internal/diag"
	"github.com/cwbudde/go-esvm/internal/runtime"
)

// loop is the fetch-decode-execute loop of spec.md §4.4. It runs until it
// observes RETURN or END belonging to this invocation, recursing (via
// invokeUserFunction) into itself for nested user-function calls.
func (vm *VM) loop() (runtime.Value, error) {
	code := vm.chunk.Code
	for {
		if vm.pc >= len(code) {
			return topOrUndefined(vm.stack), nil
		}
		opPC := vm.pc
		op := bytecode.Op(code[vm.pc])
		vm.pc++

		switch op {
		case bytecode.OpPushInt8:
			v := bytecode.DecodeInt8(code, vm.pc)
			vm.pc++
			vm.push(runtime.Number(float64(v)))

		case bytecode.OpPushInt32:
			v := bytecode.DecodeInt32(code, vm.pc)
			vm.pc += 4
			vm.push(runtime.Number(float64(v)))

		case bytecode.OpPushTrue:
			vm.push(runtime.Bool(true))

		case bytecode.OpPushFalse:
			vm.push(runtime.Bool(false))

		case bytecode.OpPushConst:
			idx := bytecode.DecodeUint32(code, vm.pc)
			vm.pc += 4
			vm.push(vm.chunk.Consts[idx])

		case bytecode.OpPushThis:
			vm.push(vm.scope.This)

		case bytecode.OpPushArguments:
			vm.push(runtime.ArgumentsSentinel)

		case bytecode.OpDouble:
			vm.push(vm.top())

		case bytecode.OpPop:
			vm.pop()

		case bytecode.OpNeg:
			v := vm.pop()
			vm.push(runtime.Number(-v.AsNumber()))

		case bytecode.OpAdd, bytecode.OpSub, bytecode.OpMul, bytecode.OpDiv, bytecode.OpRem,
			bytecode.OpLt, bytecode.OpGt, bytecode.OpLe, bytecode.OpGe,
			bytecode.OpEq, bytecode.OpNe, bytecode.OpSeq, bytecode.OpSne,
			bytecode.OpAnd, bytecode.OpOr:
			vm.execBinaryOp(op)

		case bytecode.OpJmp:
			off := bytecode.DecodeInt32(code, vm.pc)
			vm.pc += 4
			target := vm.pc + int(off)
			if off < 0 {
				vm.loopSpans = append(vm.loopSpans, LoopSpan{Target: target, Here: vm.pc})
			}
			vm.pc = target

		case bytecode.OpJmpIfFalse:
			off := bytecode.DecodeInt32(code, vm.pc)
			vm.pc += 4
			cond := vm.pop()
			if cond.Tag == runtime.TagBool && !cond.AsBool() {
				vm.pc += int(off)
			}

		case bytecode.OpGetLocal:
			idx := bytecode.DecodeUint32(code, vm.pc)
			vm.pc += 4
			vm.push(vm.stack[vm.lp+int(idx)])

		case bytecode.OpSetLocal:
			idx := bytecode.DecodeUint32(code, vm.pc)
			vm.pc += 4
			vm.stack[vm.lp+int(idx)] = vm.pop()

		case bytecode.OpGetArgLocal:
			idx := bytecode.DecodeUint32(code, vm.pc)
			vm.pc += 4
			vm.push(vm.stack[vm.bp+int(idx)])

		case bytecode.OpSetArgLocal:
			idx := bytecode.DecodeUint32(code, vm.pc)
			vm.pc += 4
			vm.stack[vm.bp+int(idx)] = vm.pop()

		case bytecode.OpGetName:
			idx := bytecode.DecodeUint32(code, vm.pc)
			vm.pc += 4
			name := vm.chunk.Names[idx]
			v, ok := vm.scope.Lookup(name)
			if !ok {
				return runtime.Undefined, diag.NewCallError("get_name", opPC, "unbound name %q", name)
			}
			vm.push(v)

		case bytecode.OpSetName:
			idx := bytecode.DecodeUint32(code, vm.pc)
			vm.pc += 4
			name := vm.chunk.Names[idx]
			vm.scope.Assign(name, vm.pop())

		case bytecode.OpDeclVar:
			idx := bytecode.DecodeUint32(code, vm.pc)
			vm.pc += 4
			name := vm.chunk.Names[idx]
			vm.scope.Declare(name, vm.pop())

		case bytecode.OpCreateContext:
			k := bytecode.DecodeUint32(code, vm.pc)
			vm.pc += 4
			for i := uint32(0); i < k; i++ {
				vm.push(runtime.Undefined)
			}

		case bytecode.OpSetCurCallobj:
			v := vm.pop()
			fn := v.AsFunction()
			if fn == nil {
				vm.push(v)
				break
			}
			clone := fn.Clone()
			clone.Frame.Parent = vm.scope
			vm.push(runtime.FromFunction(clone))

		case bytecode.OpGetMember:
			key := vm.pop()
			parent := vm.pop()
			vm.push(runtime.GetMember(parent, key, vm.argWindow()))

		case bytecode.OpSetMember:
			val := vm.pop()
			key := vm.pop()
			parent := vm.pop()
			runtime.SetMember(parent, key, val, vm.argWindow())

		case bytecode.OpCreateObject:
			k := bytecode.DecodeUint32(code, vm.pc)
			vm.pc += 4
			obj := runtime.NewObject()
			for i := uint32(0); i < k; i++ {
				value := vm.pop()
				key := vm.pop()
				obj.SetOwn(key.AsString(), value)
			}
			vm.push(runtime.FromObject(obj))

		case bytecode.OpCreateArray:
			k := bytecode.DecodeUint32(code, vm.pc)
			vm.pc += 4
			elems := make([]runtime.Value, k)
			for i := uint32(0); i < k; i++ {
				elems[i] = vm.pop()
			}
			arr := runtime.NewArray(elems)
			if vm.arrayProto != nil {
				arr.Props.Proto = runtime.FromObject(vm.arrayProto)
			}
			vm.push(runtime.FromArray(arr))

		case bytecode.OpCall:
			argc := bytecode.DecodeUint32(code, vm.pc)
			vm.pc += 4
			if err := vm.execCall(int(argc), opPC); err != nil {
				return runtime.Undefined, err
			}

		case bytecode.OpConstruct:
			argc := bytecode.DecodeUint32(code, vm.pc)
			vm.pc += 4
			if err := vm.execConstruct(int(argc), opPC); err != nil {
				return runtime.Undefined, err
			}

		case bytecode.OpReturn:
			return vm.execReturn(), nil

		case bytecode.OpAssignFuncRestParam:
			nparams := bytecode.DecodeUint32(code, vm.pc)
			dst := bytecode.DecodeUint32(code, vm.pc+4)
			vm.pc += 8
			rest := append([]runtime.Value(nil), vm.stack[vm.bp+int(nparams):vm.lp]...)
			arr := runtime.NewArray(rest)
			if vm.arrayProto != nil {
				arr.Props.Proto = runtime.FromObject(vm.arrayProto)
			}
			vm.stack[vm.lp+int(dst)] = runtime.FromArray(arr)

		case bytecode.OpEnd:
			return topOrUndefined(vm.stack), nil

		case bytecode.OpGetGlobal, bytecode.OpSetGlobal:
			// Open question in spec.md §9: these opcodes carry an operand
			// but no effective body. Decode and discard it.
			vm.pc += 4

		case bytecode.OpLand, bytecode.OpLor:
			// JIT-reserved placeholders; a no-op advance per spec.md §9.

		default:
			return runtime.Undefined, diag.NewInvariantError("dispatch", opPC, "unknown opcode %d", op)
		}
	}
}

// execReturn implements `return_`: pop a history frame, drain the stack
// down to its saved stack pointer while preserving the single return
// value on top, and restore pc/bp/lp/scope to the caller's.
func (vm *VM) execReturn() runtime.Value {
	retVal := vm.top()
	f := vm.history[len(vm.history)-1]
	vm.history = vm.history[:len(vm.history)-1]

	vm.stack = vm.stack[:f.sp]
	vm.stack = append(vm.stack, retVal)

	vm.bp, vm.lp, vm.pc, vm.scope = f.bp, f.lp, f.returnPC, f.prevScope
	return retVal
}

func topOrUndefined(stack []runtime.Value) runtime.Value {
	if len(stack) == 0 {
		return runtime.Undefined
	}
	return stack[len(stack)-1]
}
