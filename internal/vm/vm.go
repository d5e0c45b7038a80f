// Package vm implements the fetch-decode-execute loop that runs a
// bytecode.Chunk against the runtime value model: the evaluation stack,
// the scope chain, call/construct dispatch, and closure capture.
package vm

import (
	"io"
	"math/rand"

	"github.com/cwbudde/go-esvm/internal/builtins"
	"github.com/cwbudde/go-esvm/internal/bytecode"
	"github.com/cwbudde/go-esvm/internal/runtime"
)

// Default VM configuration, mirroring the teacher's defaultStackCapacity
// convention for pre-sizing the evaluation stack.
const defaultStackCapacity = 256

// historyFrame is one entry of the call-history stack spec.md §4.4 names:
// the caller's (bp, lp), the stack depth to restore on return, and the
// resume program counter.
type historyFrame struct {
	bp, lp, sp int
	returnPC   int
	prevScope  *runtime.ActivationRecord
}

// LoopSpan records one backward jump (target, here) for the profiler/JIT
// hook spec.md §4.4 describes for negative-offset jmp. Nothing in this
// repository consumes it; it exists as the attachment point a tracing
// JIT would read from.
type LoopSpan struct {
	Target int
	Here   int
}

// VM executes bytecode chunks produced upstream of this core (the
// emitter is an external collaborator; see spec.md §1).
type VM struct {
	chunk *bytecode.Chunk

	stack []runtime.Value
	bp    int // argument window start
	lp    int // local window start
	pc    int

	history []historyFrame

	global *runtime.ActivationRecord
	scope  *runtime.ActivationRecord

	arrayProto    *runtime.Object
	functionProto *runtime.Object

	output io.Writer
	rand   *rand.Rand

	loopSpans []LoopSpan
}

// New creates a VM writing console/process output to out and seeding
// Math.random from a fixed seed (so runs are reproducible), grounded on
// the teacher's NewVMWithOutput constructor shape.
func New(out io.Writer, seed int64) *VM {
	global := runtime.NewActivationRecord(nil, nil)
	// spec.md §3 Invariant (c): this refers to the global object for
	// top-level code, mirroring the original's CallObject::new_global
	// self-binding its own vals map as this.
	global.BindThis(runtime.FromObject(runtime.NewObject()))
	vm := &VM{
		stack:  make([]runtime.Value, 0, defaultStackCapacity),
		global: global,
		scope:  global,
		output: out,
		rand:   rand.New(rand.NewSource(seed)),
	}
	vm.arrayProto, vm.functionProto = builtins.Install(global)
	return vm
}

// Output implements builtins.Host.
func (vm *VM) Output() io.Writer { return vm.output }

// Rand implements builtins.Host.
func (vm *VM) Rand() *rand.Rand { return vm.rand }

// Global returns the root activation record, pre-seeded by builtins.Install.
func (vm *VM) Global() *runtime.ActivationRecord { return vm.global }

// ArrayPrototype returns the shared array prototype object create_array
// attaches to every Array it constructs.
func (vm *VM) ArrayPrototype() *runtime.Object { return vm.arrayProto }

// FunctionPrototype returns the shared Function.prototype object. The VM
// never attaches it itself; whoever builds Function constants wires it onto
// Function.Obj.Proto.
func (vm *VM) FunctionPrototype() *runtime.Object { return vm.functionProto }

// LoopSpans returns every backward-jump span recorded so far.
func (vm *VM) LoopSpans() []LoopSpan { return vm.loopSpans }

// Run executes chunk from pc 0 against the global activation record and
// returns whatever is left on top of the stack when the top-level program
// reaches END. Running twice on the same VM resumes with accumulated
// global state, matching a REPL-style host embedding.
func (vm *VM) Run(chunk *bytecode.Chunk) (runtime.Value, error) {
	vm.chunk = chunk
	vm.pc = 0
	vm.bp = 0
	vm.lp = 0
	return vm.loop()
}
