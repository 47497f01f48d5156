package jwt

import (
	"math"
	"strings"
	"time"

	"github.com/effective-security/jwtool/jsonvalue"
)

// Claims provides generic claims on an ordered JSON object
type Claims struct {
	*jsonvalue.Object
}

// NewClaims returns empty claims
func NewClaims() Claims {
	return Claims{Object: jsonvalue.NewObject()}
}

// String will return the named claim as a string,
// if the underlying type is not a string,
// it will return its JSON text.
func (c Claims) String(k string) string {
	v, ok := c.Get(k)
	if !ok || v.IsNull() {
		return ""
	}
	if s, ok := v.AsString(); ok {
		return s
	}
	raw, err := jsonvalue.Marshal(v)
	if err != nil {
		return ""
	}
	return string(raw)
}

// Strings returns the named claim as a list, for claims like iss and aud
// that are either a string or an array of strings.
// It returns false if the claim is missing or has another type.
func (c Claims) Strings(k string) ([]string, bool) {
	v, ok := c.Get(k)
	if !ok {
		return nil, false
	}
	if s, ok := v.AsString(); ok {
		return []string{s}, true
	}
	items, ok := v.AsArray()
	if !ok {
		return nil, false
	}
	list := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.AsString()
		if !ok {
			return nil, false
		}
		list = append(list, s)
	}
	return list, true
}

// Time will return the named NumericDate claim as Time,
// nil if the claim is missing or not a number
func (c Claims) Time(k string) *time.Time {
	secs, present, valid := c.numericDate(k)
	if !present || !valid {
		return nil
	}
	whole, frac := math.Modf(secs)
	t := time.Unix(int64(whole), int64(frac*1e9)).UTC()
	return &t
}

// Subject returns the sub claim
func (c Claims) Subject() string {
	return c.String("sub")
}

// numericDate returns seconds since epoch
func (c Claims) numericDate(k string) (secs float64, present, valid bool) {
	v, ok := c.Get(k)
	if !ok {
		return 0, false, false
	}
	f, ok := v.Float64()
	return f, true, ok
}

// ClaimsBuilder fills the registered claims the way the encoder form does:
// issuer and audience accept a comma separated list.
type ClaimsBuilder struct {
	claims *jsonvalue.Object
}

// NewClaimsBuilder returns a builder that adds to a copy of payload.
// A nil payload starts from {"sub":"user","name":"John Doe"},
// an empty one stays empty.
func NewClaimsBuilder(payload *jsonvalue.Object) *ClaimsBuilder {
	if payload == nil {
		payload = jsonvalue.NewObject().
			Set("sub", jsonvalue.String("user")).
			Set("name", jsonvalue.String("John Doe"))
	}
	return &ClaimsBuilder{claims: payload.Clone()}
}

// WithSubject sets sub
func (b *ClaimsBuilder) WithSubject(sub string) *ClaimsBuilder {
	if sub != "" {
		b.claims.Set("sub", jsonvalue.String(sub))
	}
	return b
}

// WithIssuer sets iss from a comma separated list:
// a single value is written as a string, several as an array
func (b *ClaimsBuilder) WithIssuer(list string) *ClaimsBuilder {
	return b.withList("iss", list)
}

// WithAudience sets aud from a comma separated list
func (b *ClaimsBuilder) WithAudience(list string) *ClaimsBuilder {
	return b.withList("aud", list)
}

// WithExpiresAt sets exp
func (b *ClaimsBuilder) WithExpiresAt(t time.Time) *ClaimsBuilder {
	if !t.IsZero() {
		b.claims.Set("exp", jsonvalue.Int(t.Unix()))
	}
	return b
}

// WithIssuedAt sets iat
func (b *ClaimsBuilder) WithIssuedAt(t time.Time) *ClaimsBuilder {
	if !t.IsZero() {
		b.claims.Set("iat", jsonvalue.Int(t.Unix()))
	}
	return b
}

// WithNotBefore sets nbf
func (b *ClaimsBuilder) WithNotBefore(t time.Time) *ClaimsBuilder {
	if !t.IsZero() {
		b.claims.Set("nbf", jsonvalue.Int(t.Unix()))
	}
	return b
}

// Set sets a claim
func (b *ClaimsBuilder) Set(k string, v jsonvalue.Value) *ClaimsBuilder {
	b.claims.Set(k, v)
	return b
}

// Claims returns the built claims
func (b *ClaimsBuilder) Claims() Claims {
	return Claims{Object: b.claims.Clone()}
}

func (b *ClaimsBuilder) withList(k, list string) *ClaimsBuilder {
	var items []jsonvalue.Value
	for _, s := range strings.Split(list, ",") {
		if s = strings.TrimSpace(s); s != "" {
			items = append(items, jsonvalue.String(s))
		}
	}
	switch len(items) {
	case 0:
	case 1:
		b.claims.Set(k, items[0])
	default:
		b.claims.Set(k, jsonvalue.Array(items...))
	}
	return b
}
