package runtime

// maxProtoDepth bounds the prototype-chain walk so that a cyclic __proto__
// edge cannot hang property lookup; see spec Design Notes on cyclic chains.
const maxProtoDepth = 1000

// Object is a shared, mutable string-keyed property map with a prototype
// edge. Multiple Values may reference the same Object; writes through any
// of them are observed by all (Invariant 3).
type Object struct {
	Props map[string]Value
	Proto Value
}

// NewObject creates an empty heap object with no prototype.
func NewObject() *Object {
	return &Object{Props: make(map[string]Value), Proto: Undefined}
}

// GetOwn looks up key directly on o, without walking the prototype chain.
func (o *Object) GetOwn(key string) (Value, bool) {
	v, ok := o.Props[key]
	return v, ok
}

// SetOwn inserts or updates key directly on o.
func (o *Object) SetOwn(key string, v Value) {
	o.Props[key] = v
}

// lookupChain walks __proto__ edges starting at o looking for key,
// terminating at an object whose prototype is not itself an Object, or
// after maxProtoDepth hops to tolerate a cycle.
func lookupChain(o *Object, key string) (Value, bool) {
	cur := o
	for i := 0; i < maxProtoDepth && cur != nil; i++ {
		if v, ok := cur.Props[key]; ok {
			return v, true
		}
		if cur.Proto.Tag != TagObject {
			return Undefined, false
		}
		cur = cur.Proto.Data.(*Object)
	}
	return Undefined, false
}
