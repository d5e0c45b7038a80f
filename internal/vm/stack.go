package vm

import "github.com/cwbudde/go-esvm/internal/runtime"

func (vm *VM) push(v runtime.Value) {
	vm.stack = append(vm.stack, v)
}

func (vm *VM) pop() runtime.Value {
	v := vm.stack[len(vm.stack)-1]
	vm.stack = vm.stack[:len(vm.stack)-1]
	return v
}

func (vm *VM) top() runtime.Value {
	return vm.stack[len(vm.stack)-1]
}

// popN removes the top n values and returns them in their original
// left-to-right (push) order.
func (vm *VM) popN(n int) []runtime.Value {
	if n == 0 {
		return nil
	}
	start := len(vm.stack) - n
	out := make([]runtime.Value, n)
	copy(out, vm.stack[start:])
	vm.stack = vm.stack[:start]
	return out
}

// argWindow returns the current call's argument window without removing
// it from the stack -- get_arg_local and the Arguments sentinel both
// address through this slice.
func (vm *VM) argWindow() []runtime.Value {
	return vm.stack[vm.bp:vm.lp]
}
