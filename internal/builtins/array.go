package builtins

import "github.com/cwbudde/go-esvm/internal/runtime"

// builtinArrayPrototypePush implements Array.prototype.push, grounded on
// the teacher's array mutation helpers: this is installed as a NeedThis
// value on the array prototype object (spec.md §3), so get_member rebinds
// it to the receiving array before call dispatch ever reaches here.
func builtinArrayPrototypePush(host Host, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
	arr := this.AsArray()
	if arr == nil {
		return runtime.Undefined, nil
	}
	length := arr.Push(args...)
	return runtime.Number(float64(length)), nil
}
