package jsonvalue

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// FromGo converts a Go value to a Value through encoding/json.
// Struct fields keep their declaration order; Go maps are written by
// encoding/json in sorted key order. Values that encoding/json rejects
// (channels, functions, cycles, NaN) fail with ErrSerialization.
func FromGo(i any) (Value, error) {
	switch t := i.(type) {
	case Value:
		return t, nil
	case *Value:
		if t == nil {
			return Null(), nil
		}
		return *t, nil
	case *Object:
		return ObjectValue(t), nil
	}

	raw, err := json.Marshal(i)
	if err != nil {
		return Value{}, errors.Mark(errors.WithMessage(err, "unable to serialize"), ErrSerialization)
	}
	return Parse(raw)
}

// ObjectFromGo is like FromGo but requires the result to be an object
func ObjectFromGo(i any) (*Object, error) {
	v, err := FromGo(i)
	if err != nil {
		return nil, err
	}
	obj, ok := v.AsObject()
	if !ok {
		return nil, errors.Mark(errors.Errorf("expected object, found %s", v.Kind()), ErrSerialization)
	}
	return obj, nil
}
