package runtime

import "testing"

func TestEqualsStructural(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"undefined==undefined", Undefined, Undefined, true},
		{"numbers equal", Number(3), Number(3), true},
		{"numbers differ", Number(3), Number(4), false},
		{"strings equal", String("hi"), String("hi"), true},
		{"strings differ", String("hi"), String("bye"), false},
		{"mismatched tags", Number(1), String("1"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equals(tt.a, tt.b); got != tt.want {
				t.Errorf("Equals(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestEqualsObjectIdentity(t *testing.T) {
	o1 := NewObject()
	o2 := NewObject()
	a := FromObject(o1)
	b := FromObject(o1)
	c := FromObject(o2)

	if !Equals(a, b) {
		t.Error("two Values sharing the same object map must be equal")
	}
	if Equals(a, c) {
		t.Error("two Values over distinct object maps must not be equal")
	}
}

func TestSharedObjectObservesWrites(t *testing.T) {
	o := NewObject()
	a := FromObject(o)
	b := FromObject(o)

	SetMember(a, String("x"), Number(42), nil)

	got := GetMember(b, String("x"), nil)
	if got.Tag != TagNumber || got.AsNumber() != 42 {
		t.Errorf("write through a was not observed through b: %+v", got)
	}
}

func TestUnwrapNeedThisAndWithThis(t *testing.T) {
	fn := FromFunction(NewFunction(0, nil))

	nt := NeedThis(fn)
	callee, this, has := nt.Unwrap()
	if has {
		t.Error("NeedThis should not report a captured receiver")
	}
	if !Equals(callee, fn) {
		t.Error("NeedThis should unwrap to the original callee")
	}
	if this.Tag != TagUndefined {
		t.Error("NeedThis unwrap should report Undefined this")
	}

	recv := FromObject(NewObject())
	wt := WithThis(fn, recv)
	callee2, this2, has2 := wt.Unwrap()
	if !has2 {
		t.Error("WithThis should report a captured receiver")
	}
	if !Equals(callee2, fn) || !Equals(this2, recv) {
		t.Error("WithThis should unwrap to (callee, this)")
	}
}
