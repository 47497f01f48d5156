// Package jwt provides encoding, decoding and verification of JSON Web Tokens
// signed with HMAC (HS256, HS384, HS512), as defined by RFC 7519 and RFC 7518.
//
// The package provides:
//   - Encode: assembles header, claims and signature into a compact token
//   - DecodeUnverified: splits and decodes a token WITHOUT checking the signature
//   - Verify: recomputes and compares the signature in constant time
//   - Claim validators for exp, nbf, iat, iss and aud
//   - Key strength checks for HMAC secrets, and static JWK key sets
//
// Header and claims are ordered JSON objects (see package jsonvalue), so a token
// is reproducible byte for byte from the same claims in the same insertion order.
// Keys are not sorted before signing.
//
// DecodeUnverified is meant for inspection and display only. Its result must
// never be used for authorization decisions; use Verify or VerifyToken, then
// ValidateClaims.
//
// All functions are stateless and safe for concurrent use.
package jwt
