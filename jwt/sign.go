package jwt

/*
MIT License.

Copyright 2022 Denis Issoupov

Permission is hereby granted, free of charge, to any person obtaining
a copy of this software and associated documentation files (the
"Software"), to deal in the Software without restriction, including
without limitation the rights to use, copy, modify, merge, publish,
distribute, sublicense, and/or sell copies of the Software, and to
permit persons to whom the Software is furnished to do so, subject to
the following conditions:

The above copyright notice and this permission notice shall be
included in all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF
MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND
NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR COPYRIGHT HOLDERS BE
LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER IN AN ACTION
OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN CONNECTION
WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
*/

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/jwtool/jsonvalue"
	"github.com/effective-security/jwtool/metricskey"
	"github.com/effective-security/xlog"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/jwtool", "jwt")

// Encode returns a signed token for the claims.
// The header is {"alg":alg,"typ":"JWT"}; alg defaults to HS256.
// A nil claims object is encoded as {}.
func Encode(claims *jsonvalue.Object, secret []byte, alg string) (string, error) {
	return EncodeWithHeader(nil, claims, secret, alg)
}

// EncodeGo is like Encode, but takes claims as a Go value, such as a struct
// or a map. Values that cannot be serialized fail with jsonvalue.ErrSerialization.
func EncodeGo(claims any, secret []byte, alg string) (string, error) {
	obj, err := jsonvalue.ObjectFromGo(claims)
	if err != nil {
		return "", errors.WithMessage(err, "unable to serialize claims")
	}
	return EncodeWithHeader(nil, obj, secret, alg)
}

// EncodeWithHeader returns a signed token with additional header members,
// for example kid. The alg and typ members are always written first.
// If alg is empty, the alg member of header is used, or HS256.
func EncodeWithHeader(header, claims *jsonvalue.Object, secret []byte, alg string) (string, error) {
	if alg == "" {
		alg = DefaultAlgorithm
		if v, ok := header.Get("alg"); ok {
			if s, ok := v.AsString(); ok && s != "" {
				alg = s
			}
		}
	}

	a, err := LookupAlgorithm(alg)
	if err != nil {
		return "", err
	}

	defer metricskey.PerfJWTOperation.MeasureSince(time.Now(), a.Name, "sign")

	if w := CheckKeyStrength(a.Name, string(secret)); w != nil {
		logger.KV(xlog.WARNING,
			"reason", "weak_key",
			"alg", a.Name,
			"bits", w.Bits,
			"recommended", w.Recommended)
	}

	return signJWT(a, buildHeader(a.Name, header), claims, secret)
}

func buildHeader(alg string, extra *jsonvalue.Object) *jsonvalue.Object {
	h := jsonvalue.NewObject().
		Set("alg", jsonvalue.String(alg)).
		Set("typ", jsonvalue.String("JWT"))

	for _, m := range extra.Members() {
		switch m.Key {
		case "alg":
			// the signing algorithm always wins
		case "typ":
			// typ can be replaced, but not removed
			if !m.Value.IsNull() {
				h.Set("typ", m.Value)
			}
		default:
			h.Set(m.Key, m.Value)
		}
	}
	return h
}

func signJWT(a *Algorithm, header, claims *jsonvalue.Object, secret []byte) (string, error) {
	jsonHeader, err := jsonvalue.Marshal(jsonvalue.ObjectValue(header))
	if err != nil {
		return "", errors.WithMessage(err, "unable to serialize header")
	}
	jsonClaims, err := jsonvalue.Marshal(jsonvalue.ObjectValue(claims))
	if err != nil {
		return "", errors.WithMessage(err, "unable to serialize claims")
	}

	sstr := EncodeSegment(jsonHeader) + "." + EncodeSegment(jsonClaims)
	sig, err := a.Sign(sstr, secret)
	if err != nil {
		return "", errors.WithMessage(err, "failed to sign token")
	}

	logger.KV(xlog.DEBUG, "alg", a.Name, "claims", claims.Len())

	return sstr + "." + EncodeSegment(sig), nil
}
