package b64url_test

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/jwtool/b64url"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	tcases := []struct {
		in  string
		exp string
	}{
		{"", ""},
		{"f", "Zg"},
		{"fo", "Zm8"},
		{"foo", "Zm9v"},
		{`{"alg":"HS256","typ":"JWT"}`, "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9"},
		{"\xfb\xff\xbf", "-_-_"},
	}
	for _, tc := range tcases {
		assert.Equal(t, tc.exp, b64url.EncodeString(tc.in), "input %q", tc.in)

		dec, err := b64url.DecodeString(tc.exp)
		require.NoError(t, err)
		assert.Equal(t, tc.in, dec)
	}
}

func TestDecode_Padding(t *testing.T) {
	for _, s := range []string{"Zg", "Zg=", "Zg=="} {
		b, err := b64url.Decode(s)
		require.NoError(t, err, s)
		assert.Equal(t, "f", string(b))
	}
}

func TestDecode_Errors(t *testing.T) {
	tcases := []struct {
		in  string
		err string
	}{
		{"Z", "invalid base64url length: 1"},
		{"Zm9v+A", "illegal base64url data at input byte 4"},
		{"Zm9v/A", "illegal base64url data at input byte 4"},
		{"Zm9v*A", "illegal base64url data at input byte 4"},
		{"Zm9v!", "illegal base64url data at input byte 4"},
		{"Zm9v\r\n\r\n", "illegal base64url data at input byte 4"},
		{"Zm9v\n", "illegal base64url data at input byte 4"},
		{"Zm 9v", "illegal base64url data at input byte 2"},
		{"Zm=9v", "illegal base64url data at input byte 2"},
		{"Zm9vY", "invalid base64url length: 5"},
	}
	for _, tc := range tcases {
		_, err := b64url.Decode(tc.in)
		require.Error(t, err, tc.in)
		assert.EqualError(t, err, tc.err)
		assert.True(t, errors.Is(err, b64url.ErrDecoding), tc.in)
	}
}

func TestRoundTrip_Binary(t *testing.T) {
	b := make([]byte, 256)
	for i := range b {
		b[i] = byte(i)
	}
	for n := 0; n <= len(b); n++ {
		enc := b64url.Encode(b[:n])
		assert.NotContains(t, enc, "=")
		assert.NotContains(t, enc, "+")
		assert.NotContains(t, enc, "/")

		dec, err := b64url.Decode(enc)
		require.NoError(t, err)
		assert.Equal(t, b[:n], dec)
	}
}
