package jsonvalue

// Member of an object
type Member struct {
	Key   string
	Value Value
}

// Object is a JSON object that keeps members in insertion order
type Object struct {
	members []Member
	index   map[string]int
}

// NewObject returns an empty object
func NewObject() *Object {
	return &Object{index: map[string]int{}}
}

// Set sets the member value. A new key is appended at the end,
// an existing key keeps its position.
func (o *Object) Set(key string, v Value) *Object {
	if o.index == nil {
		o.index = map[string]int{}
	}
	if i, ok := o.index[key]; ok {
		o.members[i].Value = v
		return o
	}
	o.index[key] = len(o.members)
	o.members = append(o.members, Member{Key: key, Value: v})
	return o
}

// Get returns the member value
func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return Value{}, false
	}
	i, ok := o.index[key]
	if !ok {
		return Value{}, false
	}
	return o.members[i].Value, true
}

// Has returns true if the key is present
func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Delete removes the member, keeping the order of the rest
func (o *Object) Delete(key string) {
	if o == nil {
		return
	}
	i, ok := o.index[key]
	if !ok {
		return
	}
	o.members = append(o.members[:i], o.members[i+1:]...)
	delete(o.index, key)
	for j := i; j < len(o.members); j++ {
		o.index[o.members[j].Key] = j
	}
}

// Len returns the number of members
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.members)
}

// Keys returns the keys in insertion order
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	keys := make([]string, len(o.members))
	for i, m := range o.members {
		keys[i] = m.Key
	}
	return keys
}

// Members returns a copy of the members in insertion order
func (o *Object) Members() []Member {
	if o == nil {
		return nil
	}
	return append([]Member(nil), o.members...)
}

// Clone returns a deep copy of the object
func (o *Object) Clone() *Object {
	c := NewObject()
	if o == nil {
		return c
	}
	for _, m := range o.members {
		c.Set(m.Key, cloneValue(m.Value))
	}
	return c
}

// Equal returns true if both objects have the same members in the same order
func (o *Object) Equal(other *Object) bool {
	if o.Len() != other.Len() {
		return false
	}
	for i := 0; i < o.Len(); i++ {
		a, b := o.members[i], other.members[i]
		if a.Key != b.Key || !Equal(a.Value, b.Value) {
			return false
		}
	}
	return true
}

// MarshalJSON implements json.Marshaler
func (o *Object) MarshalJSON() ([]byte, error) {
	return Marshal(ObjectValue(o))
}

// UnmarshalJSON implements json.Unmarshaler
func (o *Object) UnmarshalJSON(data []byte) error {
	obj, err := ParseObject(data)
	if err != nil {
		return err
	}
	*o = *obj
	return nil
}

func cloneValue(v Value) Value {
	switch v.kind {
	case ArrayKind:
		items := make([]Value, len(v.arr))
		for i, item := range v.arr {
			items[i] = cloneValue(item)
		}
		return Array(items...)
	case ObjectKind:
		return ObjectValue(v.obj.Clone())
	default:
		return v
	}
}
