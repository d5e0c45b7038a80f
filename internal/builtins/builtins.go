// Package builtins implements the host dispatch table spec.md §6 requires:
// a fixed array of host functions addressed by integer id, plus the global
// object hierarchies (console, process, Math, Array, Function) that expose
// them to interpreted code.
package builtins

import (
	"io"
	"math/rand"

	"github.com/cwbudde/go-esvm/internal/diag"
	"github.com/cwbudde/go-esvm/internal/runtime"
)

// Host is the subset of *vm.VM the builtin table needs. It is declared here
// rather than imported from internal/vm to avoid an import cycle: vm depends
// on builtins to run the dispatch table, so builtins cannot depend back on
// vm's concrete type. internal/vm.VM implements this interface structurally.
type Host interface {
	// Output is the writer console.log and process.stdout.write append to.
	Output() io.Writer
	// Rand is the VM's seeded random source, so Math.random is reproducible
	// given a fixed VM seed rather than reading the global math/rand source.
	Rand() *rand.Rand
	// CallValue invokes callee with the given receiver and arguments,
	// re-entering the interpreter loop for user functions. Used by
	// Function.prototype.call to re-dispatch.
	CallValue(callee runtime.Value, this runtime.Value, args []runtime.Value) (runtime.Value, error)
}

// Func is a single host builtin: host is the interpreter requesting the
// call, this is the receiver (Undefined if none was captured), args are
// already unwrapped into left-to-right order.
type Func func(host Host, this runtime.Value, args []runtime.Value) (runtime.Value, error)

// Fixed dispatch-table indices; spec.md §3 models BuiltinFunction(id) as an
// integer index, so these constants are the id space runtime.Value.Builtin
// carries.
const (
	ConsoleLog = iota
	ProcessStdoutWrite
	ArrayPrototypePush
	MathFloor
	MathPow
	MathRandom
	FunctionPrototypeCall

	tableSize
)

// Table is indexed by the constants above; Install wires the matching
// object-hierarchy member to runtime.Builtin(id) for each entry.
var Table = [tableSize]Func{
	ConsoleLog:            builtinConsoleLog,
	ProcessStdoutWrite:    builtinProcessStdoutWrite,
	ArrayPrototypePush:    builtinArrayPrototypePush,
	MathFloor:             builtinMathFloor,
	MathPow:               builtinMathPow,
	MathRandom:            builtinMathRandom,
	FunctionPrototypeCall: builtinFunctionPrototypeCall,
}

// Dispatch invokes the id-th table entry, the step call/construct (spec.md
// §4.4) performs once it has unwrapped a BuiltinFunction callee.
func Dispatch(id int, host Host, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
	if id < 0 || id >= len(Table) || Table[id] == nil {
		return runtime.Undefined, diag.NewCallError("call", -1, "unknown builtin id %d", id)
	}
	return Table[id](host, this, args)
}
