package runtime

// Function is a user-defined function value: a bytecode entry offset, its
// own property object (carrying prototype/__proto__), and a captured
// activation template.
//
// Frame is a template, not a live activation: at push-site the emitter
// follows a push of this value with set_cur_callobj, which sets
// Frame.Parent to whatever record was live at that moment -- closure
// capture happens where the function literal is pushed, never at the call
// site. Frame.Bindings is unused on the template; each call clones a fresh
// record (see invokeUserFunction in internal/vm) with empty bindings and
// Parent = Frame.Parent.
type Function struct {
	Obj   *Object
	Frame *ActivationRecord
	Entry int32
}

// NewFunction constructs a function value whose captured frame has no
// parent yet; the emitter is expected to run set_cur_callobj immediately
// after pushing it. Every function is given its own "prototype" object up
// front (the source language's implicit per-function prototype), so that
// `new f()` always has a concrete prototype to chain onto unless the
// program overwrites f.prototype itself.
func NewFunction(entry int32, params []string) *Function {
	obj := NewObject()
	obj.SetOwn("prototype", FromObject(NewObject()))
	return &Function{
		Entry: entry,
		Obj:   obj,
		Frame: &ActivationRecord{Params: params},
	}
}

// Clone produces a fresh Function sharing Entry and Obj (DWScript-style
// function declarations are singletons) but with an independent Frame
// template, so each occurrence of a function literal on the stack captures
// its own enclosing record via set_cur_callobj.
func (f *Function) Clone() *Function {
	return &Function{
		Entry: f.Entry,
		Obj:   f.Obj,
		Frame: &ActivationRecord{Params: f.Frame.Params, Parent: f.Frame.Parent},
	}
}
