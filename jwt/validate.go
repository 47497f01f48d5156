package jwt

import (
	"fmt"
	"strings"
	"time"
)

// ClaimReason is the reason code of a claim check
type ClaimReason int

// Claim check reasons
const (
	// ClaimOK means the check passed
	ClaimOK ClaimReason = iota
	// Expired means now is after exp
	Expired
	// IssuerMismatch means iss does not contain the expected issuer
	IssuerMismatch
	// AudienceMismatch means aud does not contain the expected audience
	AudienceMismatch
	// NotYetValid means now is before nbf
	NotYetValid
	// IssuedInFuture means iat is after now
	IssuedInFuture
	// ClaimMissing means a required claim is not present
	ClaimMissing
	// ClaimInvalid means the claim has a wrong type
	ClaimInvalid
)

var reasonNames = map[ClaimReason]string{
	ClaimOK:          "ok",
	Expired:          "expired",
	IssuerMismatch:   "issuer mismatch",
	AudienceMismatch: "audience mismatch",
	NotYetValid:      "not yet valid",
	IssuedInFuture:   "issued in the future",
	ClaimMissing:     "claim missing",
	ClaimInvalid:     "claim invalid",
}

func (r ClaimReason) String() string {
	if s, ok := reasonNames[r]; ok {
		return s
	}
	return "unknown"
}

// ClaimResult is the outcome of a single claim check
type ClaimResult struct {
	Claim  string
	Reason ClaimReason
	Detail string
}

// OK returns true if the check passed
func (r ClaimResult) OK() bool {
	return r.Reason == ClaimOK
}

func (r ClaimResult) String() string {
	if r.Detail == "" {
		return fmt.Sprintf("%s: %s", r.Claim, r.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", r.Claim, r.Reason, r.Detail)
}

// ClaimResults is a list of claim check outcomes
type ClaimResults []ClaimResult

// OK returns true if all checks passed
func (rs ClaimResults) OK() bool {
	for _, r := range rs {
		if !r.OK() {
			return false
		}
	}
	return true
}

// Failures returns the failed checks
func (rs ClaimResults) Failures() ClaimResults {
	var failed ClaimResults
	for _, r := range rs {
		if !r.OK() {
			failed = append(failed, r)
		}
	}
	return failed
}

func pass(claim string) ClaimResult {
	return ClaimResult{Claim: claim, Reason: ClaimOK}
}

// ValidateExpiration fails with Expired when now is after exp.
// A missing exp passes.
func ValidateExpiration(c Claims, now time.Time) ClaimResult {
	exp, present, valid := c.numericDate("exp")
	switch {
	case !present:
		return pass("exp")
	case !valid:
		return ClaimResult{Claim: "exp", Reason: ClaimInvalid, Detail: "not a number"}
	case float64(now.Unix()) > exp:
		return ClaimResult{Claim: "exp", Reason: Expired, Detail: fmt.Sprintf("expired at %s", c.Time("exp").Format(time.RFC3339))}
	}
	return pass("exp")
}

// ValidateNotBefore fails with NotYetValid when now is before nbf.
// A missing nbf passes.
func ValidateNotBefore(c Claims, now time.Time) ClaimResult {
	nbf, present, valid := c.numericDate("nbf")
	switch {
	case !present:
		return pass("nbf")
	case !valid:
		return ClaimResult{Claim: "nbf", Reason: ClaimInvalid, Detail: "not a number"}
	case float64(now.Unix()) < nbf:
		return ClaimResult{Claim: "nbf", Reason: NotYetValid, Detail: fmt.Sprintf("valid from %s", c.Time("nbf").Format(time.RFC3339))}
	}
	return pass("nbf")
}

// ValidateIssuedAt fails with IssuedInFuture when iat is after now.
// A missing iat passes.
func ValidateIssuedAt(c Claims, now time.Time) ClaimResult {
	iat, present, valid := c.numericDate("iat")
	switch {
	case !present:
		return pass("iat")
	case !valid:
		return ClaimResult{Claim: "iat", Reason: ClaimInvalid, Detail: "not a number"}
	case float64(now.Unix()) < iat:
		return ClaimResult{Claim: "iat", Reason: IssuedInFuture, Detail: fmt.Sprintf("issued at %s", c.Time("iat").Format(time.RFC3339))}
	}
	return pass("iat")
}

// ValidateIssuer fails with IssuerMismatch unless iss equals the expected
// issuer, or is a list that contains it
func ValidateIssuer(c Claims, expected string) ClaimResult {
	return validateMembership(c, "iss", expected, IssuerMismatch)
}

// ValidateAudience fails with AudienceMismatch unless aud equals the expected
// audience, or is a list that contains it
func ValidateAudience(c Claims, expected string) ClaimResult {
	return validateMembership(c, "aud", expected, AudienceMismatch)
}

func validateMembership(c Claims, claim, expected string, reason ClaimReason) ClaimResult {
	if !c.Has(claim) {
		return ClaimResult{Claim: claim, Reason: reason, Detail: claim + " claim not found"}
	}
	list, ok := c.Strings(claim)
	if !ok {
		return ClaimResult{Claim: claim, Reason: reason, Detail: "not a string or list of strings"}
	}
	for _, s := range list {
		if s == expected {
			return pass(claim)
		}
	}
	return ClaimResult{
		Claim:  claim,
		Reason: reason,
		Detail: fmt.Sprintf("%s, expected: %s", strings.Join(list, ","), expected),
	}
}

// ValidationOptions selects the claim checks to run
type ValidationOptions struct {
	// Now returns the current time, time.Now if nil
	Now func() time.Time
	// Leeway is allowed clock skew for exp, nbf and iat
	Leeway time.Duration

	CheckExpiration bool
	CheckNotBefore  bool
	CheckIssuedAt   bool

	// Issuer, if set, must be in the iss claim
	Issuer string
	// Audience, if set, must be in the aud claim
	Audience string

	// Required lists claims that must be present
	Required []string
}

// ValidateClaims runs the selected checks and returns every outcome.
// It never modifies the claims.
func ValidateClaims(c Claims, opts ValidationOptions) ClaimResults {
	now := time.Now()
	if opts.Now != nil {
		now = opts.Now()
	}

	var results ClaimResults
	for _, k := range opts.Required {
		if c.Has(k) {
			results = append(results, pass(k))
		} else {
			results = append(results, ClaimResult{Claim: k, Reason: ClaimMissing, Detail: k + " claim not found"})
		}
	}
	if opts.CheckExpiration {
		results = append(results, ValidateExpiration(c, now.Add(-opts.Leeway)))
	}
	if opts.CheckNotBefore {
		results = append(results, ValidateNotBefore(c, now.Add(opts.Leeway)))
	}
	if opts.CheckIssuedAt {
		results = append(results, ValidateIssuedAt(c, now.Add(opts.Leeway)))
	}
	if opts.Issuer != "" {
		results = append(results, ValidateIssuer(c, opts.Issuer))
	}
	if opts.Audience != "" {
		results = append(results, ValidateAudience(c, opts.Audience))
	}
	return results
}
