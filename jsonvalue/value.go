package jsonvalue

import (
	"encoding/json"
	"math"
	"strconv"
)

// Kind of JSON value
type Kind int

// Kinds of JSON values
const (
	NullKind Kind = iota
	BoolKind
	NumberKind
	StringKind
	ArrayKind
	ObjectKind
)

var kindNames = [...]string{"null", "bool", "number", "string", "array", "object"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Value is a JSON value. The zero Value is null.
type Value struct {
	kind Kind
	b    bool
	// s holds the string value, or the literal text of a number
	s   string
	arr []Value
	obj *Object
}

// Null returns the null value
func Null() Value {
	return Value{}
}

// Bool returns a boolean value
func Bool(b bool) Value {
	return Value{kind: BoolKind, b: b}
}

// String returns a string value
func String(s string) Value {
	return Value{kind: StringKind, s: s}
}

// Number returns a number value with the given literal text.
// The literal is validated when the value is marshaled.
func Number(n json.Number) Value {
	return Value{kind: NumberKind, s: string(n)}
}

// Int returns an integer number value
func Int(i int64) Value {
	return Value{kind: NumberKind, s: strconv.FormatInt(i, 10)}
}

// Float returns a number value formatted the way encoding/json formats float64.
// NaN and infinities can be constructed but fail to marshal.
func Float(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{kind: NumberKind, s: strconv.FormatFloat(f, 'g', -1, 64)}
	}
	abs := math.Abs(f)
	format := byte('f')
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	b := strconv.AppendFloat(nil, f, format, -1, 64)
	if format == 'e' {
		// clean up e-09 to e-9
		n := len(b)
		if n >= 4 && b[n-4] == 'e' && b[n-3] == '-' && b[n-2] == '0' {
			b[n-2] = b[n-1]
			b = b[:n-1]
		}
	}
	return Value{kind: NumberKind, s: string(b)}
}

// Array returns an array value
func Array(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: ArrayKind, arr: items}
}

// ObjectValue returns an object value. A nil object is treated as empty.
func ObjectValue(o *Object) Value {
	if o == nil {
		o = NewObject()
	}
	return Value{kind: ObjectKind, obj: o}
}

// Kind returns the kind of the value
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull returns true for the null value
func (v Value) IsNull() bool {
	return v.kind == NullKind
}

// AsBool returns the boolean and true if the value is a bool
func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == BoolKind
}

// AsString returns the string and true if the value is a string
func (v Value) AsString() (string, bool) {
	if v.kind != StringKind {
		return "", false
	}
	return v.s, true
}

// AsNumber returns the number literal and true if the value is a number
func (v Value) AsNumber() (json.Number, bool) {
	if v.kind != NumberKind {
		return "", false
	}
	return json.Number(v.s), true
}

// Float64 returns the number as float64
func (v Value) Float64() (float64, bool) {
	if v.kind != NumberKind {
		return 0, false
	}
	f, err := strconv.ParseFloat(v.s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Int64 returns the number as int64, truncating a fractional part
func (v Value) Int64() (int64, bool) {
	if v.kind != NumberKind {
		return 0, false
	}
	if i, err := strconv.ParseInt(v.s, 10, 64); err == nil {
		return i, true
	}
	f, err := strconv.ParseFloat(v.s, 64)
	if err != nil || f > math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

// AsArray returns the items and true if the value is an array
func (v Value) AsArray() ([]Value, bool) {
	if v.kind != ArrayKind {
		return nil, false
	}
	return v.arr, true
}

// AsObject returns the object and true if the value is an object
func (v Value) AsObject() (*Object, bool) {
	if v.kind != ObjectKind {
		return nil, false
	}
	return v.obj, true
}

// Interface returns the value as plain Go types, as encoding/json would
// decode it with UseNumber: nil, bool, json.Number, string, []any, map[string]any.
// Member order is lost.
func (v Value) Interface() any {
	switch v.kind {
	case BoolKind:
		return v.b
	case NumberKind:
		return json.Number(v.s)
	case StringKind:
		return v.s
	case ArrayKind:
		list := make([]any, len(v.arr))
		for i, item := range v.arr {
			list[i] = item.Interface()
		}
		return list
	case ObjectKind:
		m := make(map[string]any, v.obj.Len())
		for _, m2 := range v.obj.members {
			m[m2.Key] = m2.Value.Interface()
		}
		return m
	default:
		return nil
	}
}

// Equal returns true if both values are the same JSON, including member order
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case NullKind:
		return true
	case BoolKind:
		return a.b == b.b
	case NumberKind, StringKind:
		return a.s == b.s
	case ArrayKind:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	default:
		return a.obj.Equal(b.obj)
	}
}

// MarshalJSON implements json.Marshaler
func (v Value) MarshalJSON() ([]byte, error) {
	return Marshal(v)
}

// UnmarshalJSON implements json.Unmarshaler
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
