// Package print provides helpers to print tokens and claims
package print

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/effective-security/jwtool/jsonvalue"
	"github.com/effective-security/jwtool/jwt"
)

// JSON prints value as indented JSON
func JSON(w io.Writer, value any) {
	b, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		fmt.Fprintf(w, "failed to encode: %v\n", err)
		return
	}
	_, _ = w.Write(b)
	fmt.Fprint(w, "\n")
}

// Object prints ordered JSON object, members are kept in their order
func Object(w io.Writer, o *jsonvalue.Object) {
	b, err := jsonvalue.MarshalIndent(jsonvalue.ObjectValue(o), "", "  ")
	if err != nil {
		fmt.Fprintf(w, "failed to encode: %v\n", err)
		return
	}
	_, _ = w.Write(b)
	fmt.Fprint(w, "\n")
}

var timeClaims = []string{"iat", "nbf", "exp"}

// Token prints the token header, payload and signature
func Token(w io.Writer, t *jwt.Token) {
	fmt.Fprintln(w, "Header:")
	Object(w, t.Header)
	fmt.Fprintln(w, "Payload:")
	Object(w, t.Claims.Object)
	for _, k := range timeClaims {
		if tm := t.Claims.Time(k); tm != nil {
			fmt.Fprintf(w, "  %s: %s\n", k, tm.Format(time.RFC3339))
		}
	}
	fmt.Fprintf(w, "Signature: %s\n", t.Signature)
}

// ClaimResults prints outcomes of claim validation
func ClaimResults(w io.Writer, results jwt.ClaimResults) {
	for _, r := range results {
		if r.OK() {
			fmt.Fprintf(w, "  [ok]   %s\n", r.Claim)
		} else {
			fmt.Fprintf(w, "  [fail] %s\n", r.String())
		}
	}
}
