package jwt

import (
	"fmt"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/jwtool/jsonvalue"
	"github.com/effective-security/jwtool/metricskey"
)

// DecodeUnverified splits the token and decodes its header and claims,
// but doesn't validate the signature. It's only useful for inspecting a
// token, or in cases where the signature has been checked previously in
// the stack.
//
// WARNING: never base an authorization decision on the result.
//
// Errors: ErrMalformedToken for a wrong number of segments, or a header or
// payload that is valid JSON but not an object (also a *jsonvalue.ParseError);
// b64url.ErrDecoding for a bad segment encoding; *jsonvalue.ParseError for
// invalid JSON.
func DecodeUnverified(tokenString string) (*Token, error) {
	start := time.Now()
	token, err := decodeUnverified(tokenString)
	result := "ok"
	if err != nil {
		result = "error"
	}
	metricskey.PerfJWTDecode.MeasureSince(start, result)
	return token, err
}

func decodeUnverified(tokenString string) (*Token, error) {
	tokenString = strings.TrimSpace(tokenString)
	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		return nil, errors.Mark(errors.Errorf("malformed token: expected 3 segments, found %d", len(parts)), ErrMalformedToken)
	}

	header, err := decodeObject(parts[0])
	if err != nil {
		return nil, errors.WithMessage(err, "unable to decode header")
	}
	claims, err := decodeObject(parts[1])
	if err != nil {
		return nil, errors.WithMessage(err, "unable to decode payload")
	}

	token := &Token{
		Raw:          tokenString,
		Header:       header,
		Claims:       Claims{Object: claims},
		Signature:    parts[2],
		signingInput: parts[0] + "." + parts[1],
	}
	if v, ok := header.Get("alg"); ok {
		token.Algorithm, _ = v.AsString()
	}
	return token, nil
}

func decodeObject(seg string) (*jsonvalue.Object, error) {
	raw, err := DecodeSegment(seg)
	if err != nil {
		return nil, err
	}
	v, err := jsonvalue.Parse(raw)
	if err != nil {
		return nil, err
	}
	obj, ok := v.AsObject()
	if !ok {
		return nil, errors.Mark(errors.WithStack(&jsonvalue.ParseError{
			Msg: fmt.Sprintf("expected object, found %s", v.Kind()),
		}), ErrMalformedToken)
	}
	return obj, nil
}
