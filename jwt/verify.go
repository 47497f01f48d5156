package jwt

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/jwtool/metricskey"
	"github.com/effective-security/xlog"
)

// VerificationResult is the outcome of a signature verification
type VerificationResult int

// Verification results. The zero value is not a valid result,
// so an uninitialized result never reads as Valid.
const (
	// Valid means the signature matches the secret
	Valid VerificationResult = iota + 1
	// InvalidSignature means the signature does not match, or the
	// algorithm is not supported and the signature cannot be checked
	InvalidSignature
	// MalformedToken means the token could not be decoded
	MalformedToken
)

func (r VerificationResult) String() string {
	switch r {
	case Valid:
		return "valid"
	case InvalidSignature:
		return "invalid signature"
	case MalformedToken:
		return "malformed token"
	default:
		return "unknown"
	}
}

// Keyfunc is a callback function to supply the key for verification.
// The function receives the decoded, but unverified Token.
// This allows you to use properties in the Header of the token (such as `kid`)
// to identify which key to use.
type Keyfunc func(*Token) ([]byte, error)

// Verify checks the token signature with secret.
//
// The error is non-nil only with MalformedToken, and describes why the
// token could not be decoded. A signature mismatch is not an error.
func Verify(tokenString string, secret []byte) (VerificationResult, error) {
	_, res, err := VerifyToken(tokenString, secret)
	return res, err
}

// VerifyToken is like Verify, and also returns the decoded token for display.
// The token is nil for MalformedToken.
func VerifyToken(tokenString string, secret []byte) (*Token, VerificationResult, error) {
	return VerifyWithKeyfunc(tokenString, func(*Token) ([]byte, error) {
		return secret, nil
	})
}

// VerifyWithKeySet resolves the secret from the key set by the kid header
func VerifyWithKeySet(ctx context.Context, tokenString string, ks KeySet) (*Token, VerificationResult, error) {
	return VerifyWithKeyfunc(tokenString, func(t *Token) ([]byte, error) {
		return ks.GetKey(ctx, t.KeyID())
	})
}

// VerifyWithKeyfunc decodes the token and checks its signature with the
// key returned by keyFunc. A keyFunc error is returned with InvalidSignature.
func VerifyWithKeyfunc(tokenString string, keyFunc Keyfunc) (*Token, VerificationResult, error) {
	token, err := DecodeUnverified(tokenString)
	if err != nil {
		return nil, MalformedToken, err
	}

	key, err := keyFunc(token)
	if err != nil {
		return token, InvalidSignature, errors.WithMessage(err, "unable to get key")
	}
	return token, token.Verify(key), nil
}

// Verify recomputes the signature over the token's own signing input and
// compares it with the token signature in constant time
func (t *Token) Verify(secret []byte) VerificationResult {
	a, err := LookupAlgorithm(t.Algorithm)
	if err != nil {
		logger.KV(xlog.DEBUG, "reason", "unsupported_alg", "alg", t.Algorithm, "err", err.Error())
		return InvalidSignature
	}

	defer metricskey.PerfJWTOperation.MeasureSince(time.Now(), a.Name, "verify")

	sig, err := a.Sign(t.signingInput, secret)
	if err != nil {
		logger.KV(xlog.ERROR, "reason", "sign", "alg", a.Name, "err", err.Error())
		return InvalidSignature
	}

	expected := EncodeSegment(sig)
	if subtle.ConstantTimeCompare([]byte(expected), []byte(t.Signature)) != 1 {
		logger.KV(xlog.DEBUG, "reason", "invalid_signature", "alg", a.Name)
		return InvalidSignature
	}
	return Valid
}
