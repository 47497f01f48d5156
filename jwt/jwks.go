package jwt

import (
	"context"
	"encoding/json"
	"os"

	"github.com/cockroachdb/errors"
	jose "github.com/go-jose/go-jose/v3"
)

// KeySet is an interface for resolving HMAC keys by key ID
type KeySet interface {
	GetKey(ctx context.Context, kid string) ([]byte, error)
}

// StaticKeySet is a key set of symmetric JWKs ("kty":"oct")
type StaticKeySet struct {
	Keys []jose.JSONWebKey
}

// GetKey returns the key for the given kid.
// With an empty kid the first key is returned.
func (s *StaticKeySet) GetKey(_ context.Context, keyID string) ([]byte, error) {
	for _, key := range s.Keys {
		if keyID == "" || key.KeyID == keyID {
			secret, ok := key.Key.([]byte)
			if !ok {
				return nil, errors.Errorf("key is not symmetric: %s (%T)", key.KeyID, key.Key)
			}
			return secret, nil
		}
	}
	return nil, errors.Mark(errors.Errorf("key not found: %s", keyID), ErrKeyNotFound)
}

// ParseKeySet returns a key set from a JWKS document, or a single JWK
func ParseKeySet(raw []byte) (*StaticKeySet, error) {
	var probe struct {
		Keys json.RawMessage `json:"keys"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, errors.WithMessage(err, "failed to decode keys")
	}

	if probe.Keys == nil {
		var key jose.JSONWebKey
		if err := json.Unmarshal(raw, &key); err != nil {
			return nil, errors.WithMessage(err, "failed to decode key")
		}
		return &StaticKeySet{Keys: []jose.JSONWebKey{key}}, nil
	}

	var keySet jose.JSONWebKeySet
	if err := json.Unmarshal(raw, &keySet); err != nil {
		return nil, errors.WithMessage(err, "failed to decode keys")
	}
	if len(keySet.Keys) == 0 {
		return nil, errors.New("key set is empty")
	}
	return &StaticKeySet{Keys: keySet.Keys}, nil
}

// LoadKeySet returns a key set from a JWKS file
func LoadKeySet(path string) (*StaticKeySet, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithMessagef(err, "unable to read file")
	}
	ks, err := ParseKeySet(raw)
	if err != nil {
		return nil, errors.WithMessagef(err, "unable to load key set: %s", path)
	}
	return ks, nil
}
