package jwt

import "github.com/cockroachdb/errors"

var (
	// ErrMalformedToken is returned, wrapped, when a token does not have
	// exactly three segments, or its header or payload is not a JSON object
	ErrMalformedToken = errors.New("malformed token")
	// ErrUnsupportedAlgorithm is returned, wrapped, for algorithms other than HS256, HS384, HS512
	ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")
	// ErrKeyNotFound is returned, wrapped, when a key set has no key for the token
	ErrKeyNotFound = errors.New("key not found")
)
