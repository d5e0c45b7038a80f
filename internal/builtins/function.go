package builtins

import "github.com/cwbudde/go-esvm/internal/runtime"

// builtinFunctionPrototypeCall implements Function.prototype.call,
// grounded on the teacher's callValueWithSelf: args[0] becomes the
// receiver, the remaining arguments are forwarded to the callee bound as
// "this" in the call.
func builtinFunctionPrototypeCall(host Host, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
	var receiver runtime.Value
	var rest []runtime.Value
	if len(args) > 0 {
		receiver = args[0]
		rest = args[1:]
	} else {
		receiver = runtime.Undefined
	}
	return host.CallValue(this, receiver, rest)
}
