// Package b64url implements the unpadded, URL-safe Base64 alphabet used by
// every segment of a compact JSON Web Token (RFC 7515 Appendix C).
//
// Encoding never emits padding. Decoding accepts input with or without
// trailing '=' characters; missing padding is computed from the input length.
package b64url
