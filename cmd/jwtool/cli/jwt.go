package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/jwtool/config"
	"github.com/effective-security/jwtool/jsonvalue"
	"github.com/effective-security/jwtool/jwt"
	"github.com/effective-security/jwtool/x/print"
	"github.com/effective-security/xlog"
)

// EncodeCmd signs a new token
type EncodeCmd struct {
	Payload      string        `help:"JSON claims, @file or - for stdin. Default {\"sub\":\"user\",\"name\":\"John Doe\"}"`
	Secret       string        `help:"HMAC secret, supports env:// and file:// schemas"`
	SecretFormat string        `name:"secret-format" help:"secret format: plain or base64"`
	Alg          string        `help:"signing algorithm: HS256, HS384 or HS512"`
	Header       string        `help:"additional JSON header members, or @file"`
	Iss          string        `help:"issuer, comma separated list"`
	Aud          string        `help:"audience, comma separated list"`
	Sub          string        `help:"subject"`
	Exp          time.Duration `help:"token lifetime, adds iat and exp claims"`
}

// Run the command
func (a *EncodeCmd) Run(ctx *Cli) error {
	cfg, err := ctx.Config().Merge(&config.Config{
		Algorithm:    a.Alg,
		Issuer:       a.Iss,
		Audience:     a.Aud,
		Expiry:       config.Duration(a.Exp),
		Secret:       a.Secret,
		SecretFormat: a.SecretFormat,
	})
	if err != nil {
		return err
	}
	if err = cfg.Validate(); err != nil {
		return err
	}
	if cfg.Secret == "" {
		return errors.New("secret is required")
	}

	secret, err := cfg.SecretBytes()
	if err != nil {
		return err
	}

	var payload *jsonvalue.Object
	if a.Payload != "" {
		payload, err = readObject(ctx, a.Payload)
		if err != nil {
			return errors.WithMessage(err, "invalid payload")
		}
	}
	var header *jsonvalue.Object
	if a.Header != "" {
		header, err = readObject(ctx, a.Header)
		if err != nil {
			return errors.WithMessage(err, "invalid header")
		}
	}

	b := jwt.NewClaimsBuilder(payload).
		WithSubject(a.Sub).
		WithIssuer(cfg.Issuer).
		WithAudience(cfg.Audience)
	if cfg.Expiry > 0 {
		now := time.Now()
		b.WithIssuedAt(now).WithExpiresAt(now.Add(time.Duration(cfg.Expiry)))
	}

	if w := jwt.CheckKeyStrength(cfg.Algorithm, string(secret)); w != nil {
		fmt.Fprintf(ctx.ErrWriter(), "warning: %s\n", w)
	}

	token, err := jwt.EncodeWithHeader(header, b.Claims().Object, secret, cfg.Algorithm)
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.Writer(), token)
	return nil
}

// DecodeCmd prints the token without verification
type DecodeCmd struct {
	Token string `kong:"arg" required:"" help:"JWT compact token, or - for stdin"`
}

// Run the command
func (a *DecodeCmd) Run(ctx *Cli) error {
	raw, err := ctx.ReadToken(a.Token)
	if err != nil {
		return err
	}
	t, err := jwt.DecodeUnverified(raw)
	if err != nil {
		return errors.WithMessage(err, "could not parse token")
	}

	w := ctx.Writer()
	print.Token(w, t)
	fmt.Fprintln(w, "WARNING: signature NOT verified, do not trust these claims")
	return nil
}

// VerifyCmd checks the token signature and claims
type VerifyCmd struct {
	Token        string        `kong:"arg" required:"" help:"JWT compact token, or - for stdin"`
	Secret       string        `help:"HMAC secret, supports env:// and file:// schemas"`
	SecretFormat string        `name:"secret-format" help:"secret format: plain or base64"`
	KeySet       string        `name:"keyset" help:"JWKS file with symmetric keys, selected by kid"`
	Iss          string        `help:"expected issuer"`
	Aud          string        `help:"expected audience"`
	CheckExp     bool          `name:"check-exp" help:"check exp and nbf claims"`
	Leeway       time.Duration `help:"allowed clock skew for time claims"`
}

// Run the command
func (a *VerifyCmd) Run(ctx *Cli) error {
	cfg, err := ctx.Config().Merge(&config.Config{
		Issuer:       a.Iss,
		Audience:     a.Aud,
		Leeway:       config.Duration(a.Leeway),
		Secret:       a.Secret,
		SecretFormat: a.SecretFormat,
		KeySet:       a.KeySet,
	})
	if err != nil {
		return err
	}

	raw, err := ctx.ReadToken(a.Token)
	if err != nil {
		return err
	}

	var (
		t   *jwt.Token
		res jwt.VerificationResult
	)
	switch {
	case cfg.KeySet != "":
		ks, err := jwt.LoadKeySet(cfg.KeySet)
		if err != nil {
			return err
		}
		t, res, err = jwt.VerifyWithKeySet(ctx.Context(), raw, ks)
		if err != nil && res != jwt.MalformedToken {
			logger.KV(xlog.DEBUG, "reason", "keyset", "err", err.Error())
		}
		return a.report(ctx, cfg, t, res, err)
	case cfg.Secret != "":
		secret, err := cfg.SecretBytes()
		if err != nil {
			return err
		}
		t, res, err = jwt.VerifyToken(raw, secret)
		return a.report(ctx, cfg, t, res, err)
	}
	return errors.New("either secret or keyset is required")
}

func (a *VerifyCmd) report(ctx *Cli, cfg *config.Config, t *jwt.Token, res jwt.VerificationResult, err error) error {
	w := ctx.Writer()
	switch res {
	case jwt.MalformedToken:
		cause := strings.TrimPrefix(err.Error(), "malformed token: ")
		fmt.Fprintf(w, "%s: %s\n", res, cause)
		return errors.WithMessage(err, "could not parse token")
	case jwt.InvalidSignature:
		if err != nil {
			fmt.Fprintf(w, "%s: %s\n", res, err.Error())
		} else {
			fmt.Fprintln(w, res)
		}
		return errors.New("signature did not match")
	}

	fmt.Fprintln(w, res)

	results := jwt.ValidateClaims(t.Claims, cfg.ValidationOptions(a.CheckExp))
	print.ClaimResults(w, results)
	if failed := results.Failures(); len(failed) > 0 {
		return errors.Errorf("claim validation failed: %s", failed[0])
	}
	return nil
}

// KeyBitsCmd prints the effective bit length of a secret
type KeyBitsCmd struct {
	Secret string `kong:"arg" required:"" help:"secret text, supports env:// and file:// schemas"`
	Alg    string `help:"algorithm to check the key strength for"`
}

// Run the command
func (a *KeyBitsCmd) Run(ctx *Cli) error {
	secret, err := config.ResolveSchema(a.Secret)
	if err != nil {
		return err
	}
	alg := a.Alg
	if alg == "" {
		alg = ctx.Config().Algorithm
	}
	if _, err = jwt.LookupAlgorithm(alg); err != nil {
		return err
	}

	w := ctx.Writer()
	fmt.Fprintf(w, "%d bits\n", jwt.KeyBits(secret))
	if warn := jwt.CheckKeyStrength(alg, secret); warn != nil {
		fmt.Fprintf(w, "warning: %s\n", warn)
	}
	return nil
}

func readObject(ctx *Cli, val string) (*jsonvalue.Object, error) {
	raw, err := ctx.ReadValue(val)
	if err != nil {
		return nil, err
	}
	return jsonvalue.ParseObject(raw)
}
