package runtime

// GetMember implements get_member(parent, key) exactly per the dispatch
// table in spec §4.2. window is the current call's argument window
// (stack[bp:lp]); it is only consulted when parent is the Arguments sentinel.
func GetMember(parent Value, key Value, window []Value) Value {
	switch parent.Tag {
	case TagString:
		return getStringMember(parent.AsString(), key)
	case TagObject:
		return getObjectMember(parent.AsObject(), key, parent)
	case TagFunction:
		return getObjectMember(parent.AsFunction().Obj, key, parent)
	case TagNeedThis:
		callee, _, _ := parent.Unwrap()
		if callee.Tag == TagFunction {
			return getObjectMember(callee.AsFunction().Obj, key, callee)
		}
		return Undefined
	case TagArray:
		return getArrayMember(parent.AsArray(), key, parent)
	case TagArguments:
		return getArgumentsMember(window, key)
	default:
		return Undefined
	}
}

// SetMember implements set_member(parent, key, val) per spec §4.2.
func SetMember(parent Value, key Value, val Value, window []Value) {
	switch parent.Tag {
	case TagObject:
		setObjectMember(parent.AsObject(), key, val)
	case TagFunction:
		setObjectMember(parent.AsFunction().Obj, key, val)
	case TagNeedThis:
		callee, _, _ := parent.Unwrap()
		if callee.Tag == TagFunction {
			setObjectMember(callee.AsFunction().Obj, key, val)
		}
	case TagArray:
		setArrayMember(parent.AsArray(), key, val)
	case TagArguments:
		setArgumentsMember(window, key, val)
	default:
		// Strings and all other variants are not writable targets; the
		// spec defines no set_member behavior for them, so this is a no-op
		// rather than a fatal error.
	}
}

func getStringMember(s string, key Value) Value {
	if idx, ok := isIntegerNumber(key); ok {
		units := utf16Units(s)
		if idx >= 0 && idx < len(units) {
			return String(utf16UnitString(units, idx))
		}
		return Undefined
	}
	if key.Tag == TagString && key.AsString() == "length" {
		return Number(float64(len(utf16Units(s))))
	}
	return Undefined
}

func getObjectMember(obj *Object, key Value, receiver Value) Value {
	if obj == nil || key.Tag != TagString {
		return Undefined
	}
	k := key.AsString()
	if k == "__proto__" {
		return obj.Proto
	}
	v, ok := lookupChain(obj, k)
	if !ok {
		return Undefined
	}
	switch v.Tag {
	case TagFunction:
		return WithThis(v, receiver)
	case TagNeedThis:
		// Generalizes the Array side-property rebinding rule to every
		// object/function lookup: a NeedThis member (e.g. Function.call)
		// always resolves bound to whatever it was read off.
		callee, _, _ := v.Unwrap()
		return WithThis(callee, receiver)
	default:
		return v
	}
}

func setObjectMember(obj *Object, key Value, val Value) {
	if obj == nil || key.Tag != TagString {
		return
	}
	k := key.AsString()
	if k == "__proto__" {
		obj.Proto = val
		return
	}
	obj.SetOwn(k, val)
}

func getArrayMember(arr *Array, key Value, receiver Value) Value {
	if arr == nil {
		return Undefined
	}
	if idx, ok := isIntegerNumber(key); ok {
		if idx >= 0 && idx < len(arr.Elems) {
			return arr.Elems[idx]
		}
		return Undefined
	}
	if key.Tag != TagString {
		return Undefined
	}
	k := key.AsString()
	if k == "length" {
		return Number(float64(arr.Length))
	}
	if k == "__proto__" {
		return arr.Props.Proto
	}
	v, ok := lookupChain(arr.Props, k)
	if !ok {
		return Undefined
	}
	if v.Tag == TagNeedThis {
		callee, _, _ := v.Unwrap()
		return WithThis(callee, receiver)
	}
	return v
}

func setArrayMember(arr *Array, key Value, val Value) {
	if arr == nil {
		return
	}
	if idx, ok := isIntegerNumber(key); ok {
		if idx < 0 {
			return
		}
		if idx >= len(arr.Elems) {
			for len(arr.Elems) <= idx {
				arr.Elems = append(arr.Elems, Undefined)
			}
			arr.Length = len(arr.Elems)
		}
		arr.Elems[idx] = val
		return
	}
	if key.Tag != TagString {
		return
	}
	k := key.AsString()
	switch k {
	case "length":
		newLen, ok := isIntegerNumber(val)
		if !ok || newLen < 0 {
			newLen = 0
		}
		if newLen < len(arr.Elems) {
			arr.Elems = arr.Elems[:newLen]
		} else {
			for len(arr.Elems) < newLen {
				arr.Elems = append(arr.Elems, Undefined)
			}
		}
		arr.Length = newLen
	case "__proto__":
		arr.Props.Proto = val
	default:
		arr.Props.SetOwn(k, val)
	}
}

func getArgumentsMember(window []Value, key Value) Value {
	if idx, ok := isIntegerNumber(key); ok {
		if idx >= 0 && idx < len(window) {
			return window[idx]
		}
		return Undefined
	}
	if key.Tag == TagString && key.AsString() == "length" {
		return Number(float64(len(window)))
	}
	return Undefined
}

func setArgumentsMember(window []Value, key Value, val Value) {
	idx, ok := isIntegerNumber(key)
	if !ok || idx < 0 || idx >= len(window) {
		return
	}
	window[idx] = val
}
