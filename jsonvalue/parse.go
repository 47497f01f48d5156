package jsonvalue

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
)

// ParseError is returned when the input is not valid JSON
type ParseError struct {
	// Offset is the byte offset in the input where the error was detected
	Offset int64
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid JSON at offset %d: %s", e.Offset, e.Msg)
}

// Parse returns the JSON value in data.
// The whole input must be a single JSON value, surrounding whitespace aside.
func Parse(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return Value{}, parseError(dec, err)
	}
	v, err := parseValue(dec, tok)
	if err != nil {
		return Value{}, err
	}

	offset := dec.InputOffset()
	if _, err = dec.Token(); err != io.EOF {
		if err != nil {
			return Value{}, parseError(dec, err)
		}
		return Value{}, errors.WithStack(&ParseError{
			Offset: offset + int64(len(data[offset:])-len(bytes.TrimLeft(data[offset:], " \t\r\n"))),
			Msg:    "invalid character after top-level value",
		})
	}
	return v, nil
}

// ParseObject returns the JSON object in data, failing if data holds
// any other kind of value
func ParseObject(data []byte) (*Object, error) {
	v, err := Parse(data)
	if err != nil {
		return nil, err
	}
	obj, ok := v.AsObject()
	if !ok {
		return nil, errors.WithStack(&ParseError{
			Msg: fmt.Sprintf("expected object, found %s", v.Kind()),
		})
	}
	return obj, nil
}

func parseValue(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return Number(t), nil
	case string:
		return String(t), nil
	case json.Delim:
		switch t {
		case '[':
			return parseArray(dec)
		case '{':
			return parseObject(dec)
		}
	}
	return Value{}, errors.WithStack(&ParseError{
		Offset: dec.InputOffset(),
		Msg:    fmt.Sprintf("unexpected token %v", tok),
	})
}

func parseArray(dec *json.Decoder) (Value, error) {
	items := []Value{}
	for {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, parseError(dec, err)
		}
		if d, ok := tok.(json.Delim); ok && d == ']' {
			return Array(items...), nil
		}
		v, err := parseValue(dec, tok)
		if err != nil {
			return Value{}, err
		}
		items = append(items, v)
	}
}

func parseObject(dec *json.Decoder) (Value, error) {
	obj := NewObject()
	for {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, parseError(dec, err)
		}
		if d, ok := tok.(json.Delim); ok && d == '}' {
			return ObjectValue(obj), nil
		}
		key, ok := tok.(string)
		if !ok {
			return Value{}, errors.WithStack(&ParseError{
				Offset: dec.InputOffset(),
				Msg:    "object key must be a string",
			})
		}

		tok, err = dec.Token()
		if err != nil {
			return Value{}, parseError(dec, err)
		}
		v, err := parseValue(dec, tok)
		if err != nil {
			return Value{}, err
		}
		// duplicate keys: last value wins, first position is kept
		obj.Set(key, v)
	}
}

func parseError(dec *json.Decoder, err error) error {
	var serr *json.SyntaxError
	if errors.As(err, &serr) {
		return errors.WithStack(&ParseError{Offset: serr.Offset, Msg: serr.Error()})
	}
	if err == io.EOF || errors.Is(err, io.ErrUnexpectedEOF) {
		return errors.WithStack(&ParseError{Offset: dec.InputOffset(), Msg: "unexpected end of JSON input"})
	}
	return errors.WithStack(&ParseError{Offset: dec.InputOffset(), Msg: err.Error()})
}
