package jwt_test

import (
	"testing"
	"time"

	"github.com/effective-security/jwtool/jsonvalue"
	"github.com/effective-security/jwtool/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClaims(t *testing.T) {
	c := jwt.Claims{Object: mustObject(t, `{"jti":"123","aud":["t1","t2"],"iss":"me","n":5,"obj":{"a":1},"bad":[1],"exp":1516239022.5,"null":null}`)}

	assert.Equal(t, "123", c.String("jti"))
	assert.Equal(t, "5", c.String("n"))
	assert.Equal(t, `{"a":1}`, c.String("obj"))
	assert.Empty(t, c.String("missing"))
	assert.Empty(t, c.String("null"))

	list, ok := c.Strings("aud")
	require.True(t, ok)
	assert.Equal(t, []string{"t1", "t2"}, list)
	list, ok = c.Strings("iss")
	require.True(t, ok)
	assert.Equal(t, []string{"me"}, list)
	_, ok = c.Strings("bad")
	assert.False(t, ok)
	_, ok = c.Strings("n")
	assert.False(t, ok)
	_, ok = c.Strings("missing")
	assert.False(t, ok)

	exp := c.Time("exp")
	require.NotNil(t, exp)
	assert.Equal(t, int64(1516239022), exp.Unix())
	assert.Equal(t, 500*time.Millisecond, time.Duration(exp.Nanosecond()))
	assert.Nil(t, c.Time("jti"))
	assert.Nil(t, c.Time("missing"))

	empty := jwt.NewClaims()
	assert.Equal(t, 0, empty.Len())
	assert.Empty(t, empty.Subject())
}

func TestClaimsBuilder(t *testing.T) {
	now := time.Unix(1700000000, 0)

	c := jwt.NewClaimsBuilder(nil).
		WithIssuer("a.com").
		WithAudience(" x , y ,, ").
		WithExpiresAt(now.Add(time.Hour)).
		WithIssuedAt(now).
		WithNotBefore(time.Time{}).
		Claims()
	assert.Equal(t, `{"sub":"user","name":"John Doe","iss":"a.com","aud":["x","y"],"exp":1700003600,"iat":1700000000}`, mustMarshal(t, c.Object))

	payload := mustObject(t, `{"name":"n"}`)
	b := jwt.NewClaimsBuilder(payload).
		WithSubject("s").
		WithIssuer("").
		Set("role", jsonvalue.String("admin"))
	assert.Equal(t, `{"name":"n","sub":"s","role":"admin"}`, mustMarshal(t, b.Claims().Object))
	// input is not modified
	assert.Equal(t, `{"name":"n"}`, mustMarshal(t, payload))

	// an explicit empty payload gets no defaults
	empty := jwt.NewClaimsBuilder(jsonvalue.NewObject()).Claims()
	assert.Equal(t, `{}`, mustMarshal(t, empty.Object))
	assert.Equal(t, `{"aud":"api"}`,
		mustMarshal(t, jwt.NewClaimsBuilder(jsonvalue.NewObject()).WithAudience("api").Claims().Object))

	// claims returned are independent from the builder
	c1 := b.Claims()
	b.WithNotBefore(now)
	assert.False(t, c1.Has("nbf"))
	assert.True(t, b.Claims().Has("nbf"))
}
