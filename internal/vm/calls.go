package vm

import (
	"github.com/cwbudde/go-esvm/internal/builtins"
	"github.com/cwbudde/go-esvm/internal/diag"
	"github.com/cwbudde/go-esvm/internal/runtime"
)

// execCall implements `call argc` per spec.md §4.4: unwrap NeedThis/
// WithThis off the popped callee, then dispatch on its underlying tag.
func (vm *VM) execCall(argc int, opPC int) error {
	calleeRaw := vm.pop()
	callee, receiver, hasThis := calleeRaw.Unwrap()

	switch callee.Tag {
	case runtime.TagBuiltin:
		args := vm.popN(argc)
		this := runtime.Undefined
		if hasThis {
			this = receiver
		}
		result, err := builtins.Dispatch(callee.AsBuiltinID(), vm, this, args)
		if err != nil {
			return err
		}
		vm.push(result)
		return nil

	case runtime.TagFunction:
		fn := callee.AsFunction()
		bpNew := len(vm.stack) - argc
		this := runtime.Undefined
		if hasThis {
			this = receiver
		}
		// RETURN has already left the result on top of the stack.
		if _, err := vm.invokeUserFunction(fn, bpNew, argc, this); err != nil {
			return err
		}
		return nil

	default:
		return diag.NewCallError("call", opPC, "value of tag %s is not callable", callee.Tag)
	}
}

// execConstruct implements `construct argc`: identical to call on a
// Function, plus fresh-object allocation and this-substitution on return.
func (vm *VM) execConstruct(argc int, opPC int) error {
	calleeRaw := vm.pop()
	callee, _, _ := calleeRaw.Unwrap()

	if callee.Tag != runtime.TagFunction {
		return diag.NewCallError("construct", opPC, "value of tag %s is not constructible", callee.Tag)
	}
	fn := callee.AsFunction()
	bpNew := len(vm.stack) - argc

	newObj := runtime.NewObject()
	if proto := runtime.GetMember(callee, runtime.String("prototype"), nil); proto.Tag == runtime.TagObject {
		newObj.Proto = proto
	}
	thisVal := runtime.FromObject(newObj)

	result, err := vm.invokeUserFunction(fn, bpNew, argc, thisVal)
	if err != nil {
		return err
	}
	// RETURN has already left result on top of the stack; replace it there.
	if !isObjectLike(result) {
		vm.stack[len(vm.stack)-1] = thisVal
	}
	return nil
}

func isObjectLike(v runtime.Value) bool {
	switch v.Tag {
	case runtime.TagObject, runtime.TagArray, runtime.TagFunction, runtime.TagBuiltin:
		return true
	default:
		return false
	}
}

// invokeUserFunction runs fn against args already resident on the value
// stack at [bpNew, bpNew+nargs), recursing the fetch-decode-execute loop
// until this invocation's own RETURN. The new activation record's parent
// is the function's captured Frame.Parent (set by set_cur_callobj at
// push-site), never the caller's scope -- this is what makes closures
// capture lexically instead of dynamically.
func (vm *VM) invokeUserFunction(fn *runtime.Function, bpNew, nargs int, this runtime.Value) (runtime.Value, error) {
	record := runtime.NewActivationRecord(fn.Frame.Params, fn.Frame.Parent)
	record.BindThis(this)
	for i, name := range fn.Frame.Params {
		if i < nargs {
			record.Declare(name, vm.stack[bpNew+i])
		} else {
			record.Declare(name, runtime.Undefined)
		}
	}

	vm.history = append(vm.history, historyFrame{
		bp: vm.bp, lp: vm.lp, sp: bpNew, returnPC: vm.pc, prevScope: vm.scope,
	})

	vm.bp = bpNew
	vm.lp = bpNew + nargs
	vm.scope = record
	vm.pc = int(fn.Entry)

	return vm.loop()
}

// CallValue implements builtins.Host: invoke callee with an explicit
// receiver and a Go slice of arguments, used by Function.prototype.call
// to re-dispatch without having gone through the `call` opcode.
func (vm *VM) CallValue(callee runtime.Value, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
	unwrapped, receiver, hasThis := callee.Unwrap()
	if hasThis {
		this = receiver
	}

	switch unwrapped.Tag {
	case runtime.TagBuiltin:
		return builtins.Dispatch(unwrapped.AsBuiltinID(), vm, this, args)
	case runtime.TagFunction:
		fn := unwrapped.AsFunction()
		bpNew := len(vm.stack)
		for _, a := range args {
			vm.push(a)
		}
		result, err := vm.invokeUserFunction(fn, bpNew, len(args), this)
		if err != nil {
			return runtime.Undefined, err
		}
		// invokeUserFunction's RETURN already drained the stack back to
		// bpNew and left result sitting there; pop it back off since the
		// caller (a builtin, not the `call` opcode) wants it as a plain
		// Go value, not left on the evaluation stack.
		vm.pop()
		return result, nil
	default:
		return runtime.Undefined, diag.NewCallError("call", -1, "value of tag %s is not callable", unwrapped.Tag)
	}
}
