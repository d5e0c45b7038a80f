package analyzer

import (
	"fmt"
	"math/rand"

	"github.com/cwbudde/go-esvm/internal/diag"
)

// funcScope is the per-function analysis state the algorithm pushes and
// pops as it descends into nested function bodies: the names declared
// directly in this function (own name, formals, locals, hoisted inner
// declarations), the free-variable accumulator, the mangle map for this
// function's immediate inner declarations, and the this-use flag.
type funcScope struct {
	decl    map[string]struct{}
	free    map[string]struct{}
	mangle  map[string]string
	useThis bool
}

func newFuncScope() *funcScope {
	return &funcScope{
		decl:   make(map[string]struct{}),
		free:   make(map[string]struct{}),
		mangle: make(map[string]string),
	}
}

// Analyzer runs the free-variable pass of spec.md §4.1 over a parsed
// StatementList, grounded on the teacher's separation of a semantic-
// analysis pass from parsing: a stateful walker carrying a seeded mangle
// source and a stack of per-function scopes.
type Analyzer struct {
	rnd    *rand.Rand
	global map[string]struct{}
	stack  []*funcScope
}

// New creates an Analyzer whose mangle sequence is deterministic for a
// given seed, so that two runs over the same tree with the same seed
// rewrite nested function names identically.
func New(seed int64) *Analyzer {
	return &Analyzer{
		rnd:    rand.New(rand.NewSource(seed)),
		global: make(map[string]struct{}),
	}
}

// Analyze runs the full algorithm over program: step 1 hoists every
// top-level function declaration's name into the global set before
// recursing into any body, then each statement is visited in order.
func (a *Analyzer) Analyze(program *StatementList) error {
	a.hoistFunctionDecls(program.Statements, a.global, nil, false)
	for _, stmt := range program.Statements {
		if err := a.visitStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

// hoistFunctionDecls implements step 1 (doMangle=false, declaring straight
// into the global set) and the hoisting half of step 3 (doMangle=true,
// declaring into decl and rewriting each declaration's name in place).
// Only direct FunctionDecl children of stmts are hoisted; nested function
// bodies are handled when the walker later descends into them.
func (a *Analyzer) hoistFunctionDecls(stmts []Node, decl map[string]struct{}, mangle map[string]string, doMangle bool) {
	for _, stmt := range stmts {
		fd, ok := stmt.(*FunctionDecl)
		if !ok {
			continue
		}
		name := fd.Name
		if doMangle {
			mangled := fmt.Sprintf("%s.%d", fd.Name, a.rnd.Uint32())
			fd.MangledName = mangled
			fd.Name = mangled
			if mangle != nil {
				mangle[name] = mangled
			}
			name = mangled
		}
		decl[name] = struct{}{}
	}
}

// visitStatement dispatches a single statement node. Nil is tolerated so
// callers can walk optional slots (If.Else, Return.Value) uniformly.
func (a *Analyzer) visitStatement(n Node) error {
	switch s := n.(type) {
	case nil:
		return nil
	case *StatementList:
		for _, stmt := range s.Statements {
			if err := a.visitStatement(stmt); err != nil {
				return err
			}
		}
	case *FunctionDecl:
		return a.visitFunctionDecl(s)
	case *VarDecl:
		if err := a.visitExpr(s.Init); err != nil {
			return err
		}
		a.declareLocal(s.Name)
	case *Assign:
		return a.visitAssign(s)
	case *Return:
		return a.visitExpr(s.Value)
	case *If:
		if err := a.visitExpr(s.Cond); err != nil {
			return err
		}
		if err := a.visitStatement(s.Then); err != nil {
			return err
		}
		return a.visitStatement(s.Else)
	case *While:
		if err := a.visitExpr(s.Cond); err != nil {
			return err
		}
		return a.visitStatement(s.Body)
	default:
		// Expression used in statement position (e.g. a bare Call).
		return a.visitExpr(n)
	}
	return nil
}

// visitExpr dispatches a single expression node, recording free-variable
// and this-use annotations along the way.
func (a *Analyzer) visitExpr(n Node) error {
	switch e := n.(type) {
	case nil:
		return nil
	case *Identifier:
		a.resolveRead(e)
	case *This:
		if len(a.stack) > 0 {
			a.stack[len(a.stack)-1].useThis = true
		}
	case *Call:
		if err := a.visitExpr(e.Callee); err != nil {
			return err
		}
		for _, arg := range e.Args {
			if err := a.visitExpr(arg); err != nil {
				return err
			}
		}
	case *Member:
		if err := a.visitExpr(e.Object); err != nil {
			return err
		}
		if e.Computed {
			return a.visitExpr(e.Key)
		}
	case *UnaryOp:
		return a.visitExpr(e.Operand)
	case *BinaryOp:
		if err := a.visitExpr(e.Left); err != nil {
			return err
		}
		return a.visitExpr(e.Right)
	case *TernaryOp:
		if err := a.visitExpr(e.Cond); err != nil {
			return err
		}
		if err := a.visitExpr(e.Then); err != nil {
			return err
		}
		return a.visitExpr(e.Else)
	case *Assign:
		return a.visitAssign(e)
	case *FunctionDecl:
		// A function expression in value position: same contract as a
		// declaration, just not hoisted ahead of its use.
		return a.visitFunctionDecl(e)
	default:
		return diag.NewAnalysisError("visit_expr", "unsupported node type %T", n)
	}
	return nil
}

// visitFunctionDecl implements steps 2, 3, 4 and 8: push a scope seeded
// with the function's own name and formals, hoist and mangle inner
// declarations, recurse into the body, then pop and record the
// annotations.
func (a *Analyzer) visitFunctionDecl(fd *FunctionDecl) error {
	scope := newFuncScope()
	scope.decl[fd.Name] = struct{}{}
	for _, p := range fd.Params {
		scope.decl[p] = struct{}{}
	}

	a.stack = append(a.stack, scope)
	a.hoistFunctionDecls(fd.Body.Statements, scope.decl, scope.mangle, true)

	for _, stmt := range fd.Body.Statements {
		if err := a.visitStatement(stmt); err != nil {
			a.stack = a.stack[:len(a.stack)-1]
			return err
		}
	}

	a.stack = a.stack[:len(a.stack)-1]

	for name := range scope.decl {
		delete(scope.free, name)
	}
	fd.UseThis = scope.useThis
	fd.FreeVars = scope.free
	return nil
}

// visitAssign implements step 6. Unlike a plain read, a bare-identifier
// assignment target is checked against the whole enclosing scope chain
// (not just the current function and global): a name visible nowhere on
// the chain becomes an implicit global declaration, mirroring
// runtime.ActivationRecord.Assign's create-in-global-on-miss behavior.
func (a *Analyzer) visitAssign(as *Assign) error {
	if err := a.visitExpr(as.Value); err != nil {
		return err
	}
	switch t := as.Target.(type) {
	case *Identifier:
		name := a.rewriteMangled(t)
		switch {
		case !a.visibleOnChain(name):
			a.global[name] = struct{}{}
		case len(a.stack) > 0:
			top := a.stack[len(a.stack)-1]
			if _, declared := top.decl[name]; !declared {
				if _, isGlobal := a.global[name]; !isGlobal {
					top.free[name] = struct{}{}
				}
			}
		}
		return nil
	case *Member:
		return a.visitExpr(t)
	default:
		return diag.NewAnalysisError("assign", "malformed assignment target %T", as.Target)
	}
}

// resolveRead implements step 5: rewrite via the current mangle chain,
// then decide between "already known" / "promote to global" (top level) /
// "record as free" (inside a function).
func (a *Analyzer) resolveRead(id *Identifier) {
	name := a.rewriteMangled(id)

	if len(a.stack) == 0 {
		if _, ok := a.global[name]; !ok {
			a.global[name] = struct{}{}
		}
		return
	}

	top := a.stack[len(a.stack)-1]
	if _, declared := top.decl[name]; declared {
		return
	}
	if _, isGlobal := a.global[name]; isGlobal {
		return
	}
	top.free[name] = struct{}{}
}

// rewriteMangled looks up id.Name against each enclosing function scope's
// mangle map, innermost first, rewriting id.Name in place on a hit (the
// transitive renaming step 5 and step 2/1 of the invariants require), and
// returns the (possibly rewritten) name.
func (a *Analyzer) rewriteMangled(id *Identifier) string {
	for i := len(a.stack) - 1; i >= 0; i-- {
		if mangled, ok := a.stack[i].mangle[id.Name]; ok {
			id.Name = mangled
			return mangled
		}
	}
	return id.Name
}

// declareLocal adds name to the innermost scope's declared set, or to the
// global set at top level.
func (a *Analyzer) declareLocal(name string) {
	if len(a.stack) == 0 {
		a.global[name] = struct{}{}
		return
	}
	a.stack[len(a.stack)-1].decl[name] = struct{}{}
}

// visibleOnChain reports whether name is declared in the current function
// or any enclosing one, or in the global set.
func (a *Analyzer) visibleOnChain(name string) bool {
	for i := len(a.stack) - 1; i >= 0; i-- {
		if _, ok := a.stack[i].decl[name]; ok {
			return true
		}
	}
	_, ok := a.global[name]
	return ok
}

// Globals returns the set of names the analysis promoted into (or found
// already in) the global scope. Exposed read-only for tests and any
// emitter that wants to pre-declare globals.
func (a *Analyzer) Globals() map[string]struct{} {
	return a.global
}
