package runtime

import "testing"

func TestArrayGetMemberBounds(t *testing.T) {
	arr := NewArray([]Value{Number(10), Number(20), Number(30)})
	v := FromArray(arr)

	if got := GetMember(v, Number(1), nil); got.AsNumber() != 20 {
		t.Errorf("arr[1] = %+v, want 20", got)
	}
	if got := GetMember(v, Number(5), nil); got.Tag != TagUndefined {
		t.Errorf("out-of-range index should be Undefined, got %+v", got)
	}
	if got := GetMember(v, String("length"), nil); got.AsNumber() != 3 {
		t.Errorf("arr.length = %+v, want 3", got)
	}
}

func TestArrayPushExtendsLengthAndElement(t *testing.T) {
	arr := NewArray([]Value{Number(10), Number(20), Number(30)})
	arr.Push(Number(40))

	if arr.Length != 4 {
		t.Fatalf("length after push = %d, want 4", arr.Length)
	}
	v := FromArray(arr)
	if got := GetMember(v, Number(3), nil); got.AsNumber() != 40 {
		t.Errorf("arr[3] after push = %+v, want 40", got)
	}
}

func TestArraySetMemberExtendsWithUndefined(t *testing.T) {
	arr := NewArray([]Value{Number(1)})
	SetMember(FromArray(arr), Number(3), String("x"), nil)

	if arr.Length != 4 {
		t.Fatalf("length after sparse write = %d, want 4", arr.Length)
	}
	if got := arr.Elems[1]; got.Tag != TagUndefined {
		t.Errorf("gap slot 1 = %+v, want Undefined", got)
	}
	if got := arr.Elems[3]; got.AsString() != "x" {
		t.Errorf("slot 3 = %+v, want x", got)
	}
}

func TestArrayLengthWriteTruncates(t *testing.T) {
	arr := NewArray([]Value{Number(1), Number(2), Number(3)})
	SetMember(FromArray(arr), String("length"), Number(1), nil)

	if arr.Length != 1 || len(arr.Elems) != 1 {
		t.Fatalf("truncated array = %+v", arr)
	}
}

func TestObjectPrototypeWalk(t *testing.T) {
	proto := NewObject()
	proto.SetOwn("greeting", String("hi"))
	child := NewObject()
	child.Proto = FromObject(proto)

	got := GetMember(FromObject(child), String("greeting"), nil)
	if got.AsString() != "hi" {
		t.Errorf("prototype lookup = %+v, want hi", got)
	}
}

func TestObjectMethodBindingWrapsWithThis(t *testing.T) {
	obj := NewObject()
	fn := FromFunction(NewFunction(0, nil))
	obj.SetOwn("g", fn)

	got := GetMember(FromObject(obj), String("g"), nil)
	if got.Tag != TagWithThis {
		t.Fatalf("method access should wrap WithThis, got tag %v", got.Tag)
	}
	callee, this, has := got.Unwrap()
	if !has {
		t.Fatal("expected a captured receiver")
	}
	if !Equals(callee, fn) {
		t.Error("wrapped callee should be the stored function")
	}
	if this.AsObject() != obj {
		t.Error("wrapped this should be the receiving object")
	}
}

func TestArrayPrototypePushNeedThisRebindsToArray(t *testing.T) {
	arrProto := NewObject()
	pushFn := Builtin(0)
	arrProto.SetOwn("push", NeedThis(pushFn))

	arr := NewArray(nil)
	arr.Props.Proto = FromObject(arrProto)

	got := GetMember(FromArray(arr), String("push"), nil)
	if got.Tag != TagWithThis {
		t.Fatalf("array.push access should wrap WithThis, got tag %v", got.Tag)
	}
	_, this, has := got.Unwrap()
	if !has || this.AsArray() != arr {
		t.Error("array.push should rebind this to the array")
	}
}

func TestFunctionPrototypeCallRebindsToFunction(t *testing.T) {
	functionProto := NewObject()
	functionProto.SetOwn("call", NeedThis(Builtin(6)))

	fn := NewFunction(0, []string{"n"})
	fn.Obj.Proto = FromObject(functionProto)
	fnVal := FromFunction(fn)

	got := GetMember(fnVal, String("call"), nil)
	if got.Tag != TagWithThis {
		t.Fatalf("fn.call access should wrap WithThis, got tag %v", got.Tag)
	}
	_, this, has := got.Unwrap()
	if !has || !Equals(this, fnVal) {
		t.Error("fn.call should rebind this to the function itself")
	}
}

func TestArgumentsSentinelReadsWindow(t *testing.T) {
	window := []Value{Number(1), Number(2), Number(3)}

	if got := GetMember(ArgumentsSentinel, Number(1), window); got.AsNumber() != 2 {
		t.Errorf("arguments[1] = %+v, want 2", got)
	}
	if got := GetMember(ArgumentsSentinel, String("length"), window); got.AsNumber() != 3 {
		t.Errorf("arguments.length = %+v, want 3", got)
	}

	SetMember(ArgumentsSentinel, Number(0), Number(99), window)
	if window[0].AsNumber() != 99 {
		t.Error("writing through the arguments sentinel should overwrite the window slot")
	}
}

func TestStringIndexingAndLength(t *testing.T) {
	s := String("hi")
	if got := GetMember(s, Number(1), nil); got.AsString() != "i" {
		t.Errorf("s[1] = %+v, want i", got)
	}
	if got := GetMember(s, String("length"), nil); got.AsNumber() != 2 {
		t.Errorf("s.length = %+v, want 2", got)
	}
	if got := GetMember(s, String("bogus"), nil); got.Tag != TagUndefined {
		t.Errorf("unknown string property should be Undefined, got %+v", got)
	}
}

func TestProtoChainTerminatesOnCycle(t *testing.T) {
	a := NewObject()
	b := NewObject()
	a.Proto = FromObject(b)
	b.Proto = FromObject(a) // cycle

	got := GetMember(FromObject(a), String("missing"), nil)
	if got.Tag != TagUndefined {
		t.Errorf("cyclic prototype walk should terminate with Undefined, got %+v", got)
	}
}
