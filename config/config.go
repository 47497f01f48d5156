// Package config provides the jwtool configuration file
package config

import (
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/jwtool/jwt"
	"github.com/effective-security/xlog"
	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/jwtool", "config")

// Config provides defaults for encoding and verification
type Config struct {
	// Algorithm specifies the signing algorithm, HS256 by default
	Algorithm string `json:"algorithm,omitempty" yaml:"algorithm,omitempty"`
	// Issuer specifies the iss claim to add, or to expect
	Issuer string `json:"issuer,omitempty" yaml:"issuer,omitempty"`
	// Audience specifies the aud claim to add, or to expect
	Audience string `json:"audience,omitempty" yaml:"audience,omitempty"`
	// Expiry specifies the token lifetime for the exp claim
	Expiry Duration `json:"expiry,omitempty" yaml:"expiry,omitempty"`
	// Leeway specifies allowed clock skew for time based claims
	Leeway Duration `json:"leeway,omitempty" yaml:"leeway,omitempty"`

	// Secret specifies the HMAC secret, supports env:// and file:// schemas
	Secret string `json:"secret,omitempty" yaml:"secret,omitempty"`
	// SecretFormat specifies plain or base64
	SecretFormat string `json:"secret_format,omitempty" yaml:"secret_format,omitempty"`
	// KeySet specifies a JWKS file with symmetric keys
	KeySet string `json:"keyset,omitempty" yaml:"keyset,omitempty"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Algorithm:    jwt.DefaultAlgorithm,
		SecretFormat: jwt.SecretPlain,
	}
}

// Load returns configuration loaded from a file,
// or the default configuration if file is empty
func Load(file string) (*Config, error) {
	cfg := Default()
	if file == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.WithMessage(err, "unable to read file")
	}

	if strings.HasSuffix(file, ".json") {
		err = json.Unmarshal(raw, cfg)
		if err != nil {
			return nil, errors.WithMessagef(err, "unable parse JSON: %s", file)
		}
	} else {
		err = yaml.Unmarshal(raw, cfg)
		if err != nil {
			return nil, errors.WithMessagef(err, "unable parse YAML: %s", file)
		}
	}

	if err = cfg.Validate(); err != nil {
		return nil, errors.WithMessagef(err, "invalid configuration: %q", file)
	}

	logger.KV(xlog.DEBUG, "config", file, "alg", cfg.Algorithm, "issuer", cfg.Issuer)
	return cfg, nil
}

// Validate returns error if the configuration is invalid
func (c *Config) Validate() error {
	if _, err := jwt.LookupAlgorithm(c.Algorithm); err != nil {
		return err
	}
	switch strings.ToLower(c.SecretFormat) {
	case "", jwt.SecretPlain, jwt.SecretBase64:
	default:
		return errors.Errorf("unsupported secret format: %s", c.SecretFormat)
	}
	return nil
}

// Merge returns a copy of the configuration with non-empty values
// of override applied
func (c *Config) Merge(override *Config) (*Config, error) {
	merged := new(Config)
	if err := copier.Copy(merged, c); err != nil {
		return nil, errors.WithStack(err)
	}
	if override != nil {
		if err := copier.CopyWithOption(merged, override, copier.Option{IgnoreEmpty: true}); err != nil {
			return nil, errors.WithStack(err)
		}
	}
	return merged, nil
}

// SecretBytes resolves the secret schema and returns the HMAC key
func (c *Config) SecretBytes() ([]byte, error) {
	s, err := ResolveSchema(c.Secret)
	if err != nil {
		return nil, errors.WithMessage(err, "unable to resolve secret")
	}
	return jwt.ParseSecret(s, c.SecretFormat)
}

// ValidationOptions returns claim checks for the configured issuer and audience
func (c *Config) ValidationOptions(checkTimes bool) jwt.ValidationOptions {
	return jwt.ValidationOptions{
		Leeway:          time.Duration(c.Leeway),
		CheckExpiration: checkTimes,
		CheckNotBefore:  checkTimes,
		Issuer:          c.Issuer,
		Audience:        c.Audience,
	}
}

// ResolveSchema returns the value for env:// and file:// references,
// or the value itself
func ResolveSchema(val string) (string, error) {
	switch {
	case strings.HasPrefix(val, "env://"):
		name := strings.TrimPrefix(val, "env://")
		v, ok := os.LookupEnv(name)
		if !ok {
			return "", errors.Errorf("environment variable not set: %s", name)
		}
		return v, nil
	case strings.HasPrefix(val, "file://"):
		b, err := os.ReadFile(strings.TrimPrefix(val, "file://"))
		if err != nil {
			return "", errors.WithStack(err)
		}
		return strings.TrimRight(string(b), "\r\n"), nil
	}
	return val, nil
}

// Duration is time.Duration that reads "1h30m" style strings in JSON and YAML
type Duration time.Duration

// String returns the duration string
func (d Duration) String() string {
	return time.Duration(d).String()
}

// MarshalJSON implements json.Marshaler
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler
func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		var n int64
		if err2 := json.Unmarshal(b, &n); err2 != nil {
			return errors.Errorf("invalid duration: %s", b)
		}
		*d = Duration(time.Duration(n) * time.Second)
		return nil
	}
	return d.parse(s)
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (any, error) {
	return d.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	return d.parse(value.Value)
}

func (d *Duration) parse(s string) error {
	if s == "" {
		*d = 0
		return nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return errors.WithStack(err)
	}
	*d = Duration(v)
	return nil
}
