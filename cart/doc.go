// Package cart holds the cookie-backed cart: a signed token codec, the
// normalizer that turns an authenticated but untrusted payload into a Cart,
// and the pure mutation helpers used by request handlers.
//
// Token lifecycle:
// absent -> valid (decoded + normalized) -> mutated -> re-signed -> re-issued,
// or absent -> present-but-invalid -> treated as absent.
package cart
