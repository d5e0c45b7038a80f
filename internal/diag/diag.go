// Package diag defines the runtime diagnostics the interpreter reports in
// place of the source-position compiler errors an upstream parser/emitter
// would produce: this core has no lexer positions available to it, only a
// bytecode program counter.
package diag

import "fmt"

// AnalysisError reports a malformed AST shape the free-variable analyzer
// cannot handle -- an assignment target that is neither an identifier nor
// a member expression, for example. Raised before execution begins.
type AnalysisError struct {
	Op      string
	Message string
}

func NewAnalysisError(op, format string, args ...any) *AnalysisError {
	return &AnalysisError{Op: op, Message: fmt.Sprintf(format, args...)}
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("analysis error in %s: %s", e.Op, e.Message)
}

// CallError reports invoking a non-callable value or reaching an
// un-bound name -- fatal, and not recoverable from interpreted code: the
// source language has no exception surface.
type CallError struct {
	Op      string
	PC      int
	Message string
}

func NewCallError(op string, pc int, format string, args ...any) *CallError {
	return &CallError{Op: op, PC: pc, Message: fmt.Sprintf(format, args...)}
}

func (e *CallError) Error() string {
	return fmt.Sprintf("%s at pc=%d: %s", e.Op, e.PC, e.Message)
}

// InvariantError reports a condition the emitter is supposed to guarantee
// -- stack underflow, an unknown opcode, an out-of-range constant index.
// These indicate a bug upstream of this core, not a program error.
type InvariantError struct {
	Op      string
	PC      int
	Message string
}

func NewInvariantError(op string, pc int, format string, args ...any) *InvariantError {
	return &InvariantError{Op: op, PC: pc, Message: fmt.Sprintf(format, args...)}
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s at pc=%d: %s", e.Op, e.PC, e.Message)
}
