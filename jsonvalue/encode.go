package jsonvalue

import (
	"bytes"
	"encoding/json"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
)

// ErrSerialization is returned, wrapped, when a value cannot be
// represented as JSON
var ErrSerialization = errors.New("value is not JSON serializable")

// Marshal returns the compact JSON encoding of v.
// Object members are written in insertion order. Strings are escaped the
// way JSON.stringify escapes them: only quote, backslash and control
// characters; '<', '>', '&' and U+2028/U+2029 are written as is.
func Marshal(v Value) ([]byte, error) {
	e := &encoder{}
	if err := e.encode(v); err != nil {
		return nil, err
	}
	return e.buf.Bytes(), nil
}

// MarshalIndent is like Marshal but applies indentation for display
func MarshalIndent(v Value, prefix, indent string) ([]byte, error) {
	raw, err := Marshal(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err = json.Indent(&buf, raw, prefix, indent); err != nil {
		return nil, errors.WithStack(err)
	}
	return buf.Bytes(), nil
}

// Compact returns the compact form of a JSON document without reordering,
// equivalent to Parse followed by Marshal
func Compact(data []byte) ([]byte, error) {
	v, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return Marshal(v)
}

// encoder tracks the objects and arrays on the current path,
// a container met again is a cycle
type encoder struct {
	buf  bytes.Buffer
	path map[any]struct{}
}

// enter returns false if ref is already on the path
func (e *encoder) enter(ref any) bool {
	if e.path == nil {
		e.path = make(map[any]struct{})
	}
	if _, ok := e.path[ref]; ok {
		return false
	}
	e.path[ref] = struct{}{}
	return true
}

func (e *encoder) leave(ref any) {
	delete(e.path, ref)
}

var errCycle = errors.Mark(errors.New("circular reference"), ErrSerialization)

func (e *encoder) encode(v Value) error {
	buf := &e.buf
	switch v.kind {
	case NullKind:
		buf.WriteString("null")
	case BoolKind:
		if v.b {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case NumberKind:
		if !isValidNumber(v.s) {
			return errors.Mark(errors.Errorf("invalid number literal: %q", v.s), ErrSerialization)
		}
		buf.WriteString(v.s)
	case StringKind:
		writeString(buf, v.s)
	case ArrayKind:
		if len(v.arr) > 0 {
			// elements share the backing array, the first one identifies it
			ref := &v.arr[0]
			if !e.enter(ref) {
				return errors.WithStack(errCycle)
			}
			defer e.leave(ref)
		}
		buf.WriteByte('[')
		for i, item := range v.arr {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := e.encode(item); err != nil {
				return errors.WithMessagef(err, "index %d", i)
			}
		}
		buf.WriteByte(']')
	case ObjectKind:
		if !e.enter(v.obj) {
			return errors.WithStack(errCycle)
		}
		defer e.leave(v.obj)

		buf.WriteByte('{')
		for i, m := range v.obj.members {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeString(buf, m.Key)
			buf.WriteByte(':')
			if err := e.encode(m.Value); err != nil {
				return errors.WithMessagef(err, "member %q", m.Key)
			}
		}
		buf.WriteByte('}')
	default:
		return errors.Mark(errors.Errorf("unknown kind: %d", v.kind), ErrSerialization)
	}
	return nil
}

const hex = "0123456789abcdef"

func writeString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	start := 0
	for i := 0; i < len(s); {
		if b := s[i]; b < utf8.RuneSelf {
			if b >= 0x20 && b != '"' && b != '\\' {
				i++
				continue
			}
			buf.WriteString(s[start:i])
			switch b {
			case '"', '\\':
				buf.WriteByte('\\')
				buf.WriteByte(b)
			case '\b':
				buf.WriteString(`\b`)
			case '\f':
				buf.WriteString(`\f`)
			case '\n':
				buf.WriteString(`\n`)
			case '\r':
				buf.WriteString(`\r`)
			case '\t':
				buf.WriteString(`\t`)
			default:
				buf.WriteString(`\u00`)
				buf.WriteByte(hex[b>>4])
				buf.WriteByte(hex[b&0xF])
			}
			i++
			start = i
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			buf.WriteString(s[start:i])
			buf.WriteString("\ufffd")
			i += size
			start = i
			continue
		}
		i += size
	}
	buf.WriteString(s[start:])
	buf.WriteByte('"')
}

// isValidNumber reports whether s is a valid JSON number literal
func isValidNumber(s string) bool {
	if s == "" {
		return false
	}
	if s[0] == '-' {
		s = s[1:]
		if s == "" {
			return false
		}
	}

	switch {
	case s[0] == '0':
		s = s[1:]
	case '1' <= s[0] && s[0] <= '9':
		s = s[1:]
		for len(s) > 0 && '0' <= s[0] && s[0] <= '9' {
			s = s[1:]
		}
	default:
		return false
	}

	if len(s) >= 2 && s[0] == '.' && '0' <= s[1] && s[1] <= '9' {
		s = s[2:]
		for len(s) > 0 && '0' <= s[0] && s[0] <= '9' {
			s = s[1:]
		}
	}

	if len(s) >= 2 && (s[0] == 'e' || s[0] == 'E') {
		s = s[1:]
		if s[0] == '+' || s[0] == '-' {
			s = s[1:]
			if s == "" {
				return false
			}
		}
		for len(s) > 0 && '0' <= s[0] && s[0] <= '9' {
			s = s[1:]
		}
	}
	return s == ""
}
