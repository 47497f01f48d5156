package jwt

import (
	"crypto"
	"crypto/hmac"
	_ "crypto/sha256" // register SHA-256 for crypto.Hash
	_ "crypto/sha512" // register SHA-384 and SHA-512 for crypto.Hash
	"io"
	"strings"

	"github.com/cockroachdb/errors"
)

// Algorithm describes a supported HMAC signing algorithm
type Algorithm struct {
	// Name is the alg header value
	Name string
	// Hash is the hash function used by HMAC
	Hash crypto.Hash
	// MinKeyBits is the recommended minimum key length, equal to the hash size (RFC 7518 3.2)
	MinKeyBits int
}

// Supported algorithms
var (
	HS256 = &Algorithm{Name: "HS256", Hash: crypto.SHA256, MinKeyBits: 256}
	HS384 = &Algorithm{Name: "HS384", Hash: crypto.SHA384, MinKeyBits: 384}
	HS512 = &Algorithm{Name: "HS512", Hash: crypto.SHA512, MinKeyBits: 512}
)

// DefaultAlgorithm is used when no algorithm is specified
const DefaultAlgorithm = "HS256"

var algorithms = map[string]*Algorithm{
	HS256.Name: HS256,
	HS384.Name: HS384,
	HS512.Name: HS512,
}

// asymmetric algorithms are recognized, but need an external key provider
var asymmetric = map[string]bool{
	"RS256": true, "RS384": true, "RS512": true,
	"PS256": true, "PS384": true, "PS512": true,
	"ES256": true, "ES384": true, "ES512": true,
	"EdDSA": true,
}

// Algorithms returns names of the supported algorithms
func Algorithms() []string {
	return []string{HS256.Name, HS384.Name, HS512.Name}
}

// LookupAlgorithm returns the algorithm for the alg header value
func LookupAlgorithm(name string) (*Algorithm, error) {
	if a, ok := algorithms[name]; ok {
		return a, nil
	}
	switch {
	case name == "":
		return nil, errors.Mark(errors.New("no alg specified"), ErrUnsupportedAlgorithm)
	case strings.EqualFold(name, "none"):
		return nil, errors.Mark(errors.New("unsecured tokens are not accepted"), ErrUnsupportedAlgorithm)
	case asymmetric[name]:
		return nil, errors.Mark(errors.Errorf("asymmetric algorithm requires an external key provider: %s", name), ErrUnsupportedAlgorithm)
	}
	return nil, errors.Mark(errors.Errorf("unsupported algorithm: %s", name), ErrUnsupportedAlgorithm)
}

// Sign returns the HMAC of signingInput keyed by secret.
// The result is deterministic for the same input and key.
func (a *Algorithm) Sign(signingInput string, secret []byte) ([]byte, error) {
	return newSymmetricSigner(a, secret).Sign(nil, []byte(signingInput), nil)
}

// Sign returns the signature of signingInput with the named algorithm
func Sign(signingInput string, secret []byte, alg string) ([]byte, error) {
	a, err := LookupAlgorithm(alg)
	if err != nil {
		return nil, err
	}
	return a.Sign(signingInput, secret)
}

type symSigner struct {
	algo *Algorithm
	key  []byte
}

func newSymmetricSigner(algo *Algorithm, key []byte) crypto.Signer {
	return &symSigner{
		algo: algo,
		key:  key,
	}
}

// Public implements crypto.Signer
func (s *symSigner) Public() crypto.PublicKey {
	return s
}

// Sign implements crypto.Signer. The digest is the message itself,
// HMAC does its own hashing.
func (s *symSigner) Sign(_ io.Reader, digest []byte, opts crypto.SignerOpts) ([]byte, error) {
	hash := s.algo.Hash
	if opts != nil {
		hash = opts.HashFunc()
	}
	if !hash.Available() {
		return nil, errors.Errorf("hash function not available: %v", hash)
	}

	h := hmac.New(hash.New, s.key)
	h.Write(digest)

	return h.Sum(nil), nil
}
