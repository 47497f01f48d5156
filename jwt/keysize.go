package jwt

import (
	"fmt"
	"unicode/utf8"
)

// KeyBits returns the effective bit length of a text secret, counted per
// code point by its UTF-8 width: 8 bits for ASCII, 16 up to U+07FF, 24 up to
// U+FFFF, 32 above. Bytes that are not valid UTF-8 count 8 bits each.
func KeyBits(secret string) int {
	bits := 0
	for i := 0; i < len(secret); {
		r, size := utf8.DecodeRuneInString(secret[i:])
		switch {
		case r == utf8.RuneError && size == 1:
			bits += 8
		case r <= 0x7f:
			bits += 8
		case r <= 0x7ff:
			bits += 16
		case r <= 0xffff:
			bits += 24
		default:
			bits += 32
		}
		i += size
	}
	return bits
}

// KeyStrengthWarning reports a secret shorter than the algorithm recommends.
// It is advisory, encoding is not blocked.
type KeyStrengthWarning struct {
	Algorithm   string
	Bits        int
	Recommended int
}

func (w *KeyStrengthWarning) String() string {
	return fmt.Sprintf("%s key is %d bits, below the recommended minimum of %d bits",
		w.Algorithm, w.Bits, w.Recommended)
}

// CheckKeyStrength returns a warning if secret is shorter than the minimum
// recommended for alg, or nil. Unsupported algorithms return nil.
func CheckKeyStrength(alg, secret string) *KeyStrengthWarning {
	a, err := LookupAlgorithm(alg)
	if err != nil {
		return nil
	}
	bits := KeyBits(secret)
	if bits >= a.MinKeyBits {
		return nil
	}
	return &KeyStrengthWarning{
		Algorithm:   a.Name,
		Bits:        bits,
		Recommended: a.MinKeyBits,
	}
}
