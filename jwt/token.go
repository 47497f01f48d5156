package jwt

import (
	"github.com/effective-security/jwtool/b64url"
	"github.com/effective-security/jwtool/jsonvalue"
)

// Token for JWT
type Token struct {
	Raw       string            // The raw token. Populated when you decode a token
	Algorithm string            // The alg header value, empty if missing
	Header    *jsonvalue.Object // The first segment of the token
	Claims    Claims            // The second segment of the token
	Signature string            // The third segment of the token, base64url encoded

	signingInput string
}

// SigningInput returns the first two segments joined by '.',
// the exact string the signature is computed over
func (t *Token) SigningInput() string {
	return t.signingInput
}

// KeyID returns the kid header value, if any
func (t *Token) KeyID() string {
	if v, ok := t.Header.Get("kid"); ok {
		if s, ok := v.AsString(); ok {
			return s
		}
	}
	return ""
}

// DecodeSegment JWT specific base64url decoding, padding is optional
func DecodeSegment(seg string) ([]byte, error) {
	return b64url.Decode(seg)
}

// EncodeSegment returns JWT specific base64url encoding with padding stripped
func EncodeSegment(seg []byte) string {
	return b64url.Encode(seg)
}
