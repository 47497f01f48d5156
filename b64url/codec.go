package b64url

import (
	"encoding/base64"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrDecoding is returned, wrapped, when a segment is not valid Base64Url
var ErrDecoding = errors.New("invalid base64url")

var urlReplacer = strings.NewReplacer("+", "-", "/", "_")
var stdReplacer = strings.NewReplacer("-", "+", "_", "/")

// Encode returns base64url encoding with padding stripped
func Encode(b []byte) string {
	s := base64.StdEncoding.EncodeToString(b)
	return strings.TrimRight(urlReplacer.Replace(s), "=")
}

// EncodeString returns base64url encoding of s
func EncodeString(s string) string {
	return Encode([]byte(s))
}

// Decode returns the bytes of a base64url segment.
// Padding is restored before decoding, so it is optional in the input.
func Decode(seg string) ([]byte, error) {
	s := strings.TrimRight(seg, "=")
	if i := strings.IndexFunc(s, notAlphabet); i >= 0 {
		return nil, errors.Mark(errors.Errorf("illegal base64url data at input byte %d", i), ErrDecoding)
	}
	switch len(s) % 4 {
	case 1:
		return nil, errors.Mark(errors.Errorf("invalid base64url length: %d", len(s)), ErrDecoding)
	case 2:
		s += "=="
	case 3:
		s += "="
	}

	b, err := base64.StdEncoding.DecodeString(stdReplacer.Replace(s))
	if err != nil {
		return nil, errors.Mark(errors.WithMessage(err, "invalid base64url"), ErrDecoding)
	}
	return b, nil
}

// notAlphabet reports runes outside [A-Za-z0-9_-].
// The std decoder skips '\r' and '\n', and accepts '+' and '/'.
func notAlphabet(r rune) bool {
	switch {
	case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
		return false
	}
	return true
}

// DecodeString returns the decoded segment as a string
func DecodeString(seg string) (string, error) {
	b, err := Decode(seg)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
