package builtins

import (
	"fmt"

	"github.com/cwbudde/go-esvm/internal/runtime"
)

// builtinConsoleLog implements console.log: format every argument with a
// single trailing newline, the same shape as the teacher's PrintLn.
func builtinConsoleLog(host Host, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
	fmt.Fprintln(host.Output(), joinArgs(args))
	return runtime.Undefined, nil
}

// builtinProcessStdoutWrite implements process.stdout.write: same family
// as console.log but with no trailing newline, per spec.md §6.
func builtinProcessStdoutWrite(host Host, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
	fmt.Fprint(host.Output(), joinArgs(args))
	return runtime.Undefined, nil
}

func joinArgs(args []runtime.Value) string {
	var out string
	for i, a := range args {
		if i > 0 {
			out += " "
		}
		out += displayString(a)
	}
	return out
}

// displayString renders a Value the way console.log prints it, distinct
// from runtime string coercion used by the "add" opcode.
func displayString(v runtime.Value) string {
	switch v.Tag {
	case runtime.TagUndefined:
		return "undefined"
	case runtime.TagBool:
		if v.AsBool() {
			return "true"
		}
		return "false"
	case runtime.TagNumber:
		return fmt.Sprintf("%g", v.AsNumber())
	case runtime.TagString:
		return v.AsString()
	case runtime.TagArray:
		return "[object Array]"
	case runtime.TagObject:
		return "[object Object]"
	case runtime.TagFunction, runtime.TagBuiltin:
		return "[object Function]"
	default:
		return "undefined"
	}
}
