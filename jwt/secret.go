package jwt

import (
	"encoding/base64"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/jwtool/b64url"
	"github.com/effective-security/xlog"
)

// Secret formats
const (
	SecretPlain  = "plain"
	SecretBase64 = "base64"
)

// ParseSecret returns the HMAC key bytes of secret.
// With SecretPlain the UTF-8 bytes of the text are used. With SecretBase64 the
// text is decoded as standard or URL-safe Base64; if it does not decode,
// the text is used as is and a warning is logged.
func ParseSecret(secret, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "", SecretPlain:
		return []byte(secret), nil
	case SecretBase64:
		if b, err := base64.StdEncoding.DecodeString(secret); err == nil {
			return b, nil
		}
		if b, err := b64url.Decode(secret); err == nil {
			return b, nil
		}
		logger.KV(xlog.WARNING, "reason", "invalid_base64_secret", "fallback", SecretPlain)
		return []byte(secret), nil
	}
	return nil, errors.Errorf("unsupported secret format: %s", format)
}
