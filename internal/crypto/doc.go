// Package crypto exposes the primitives executed by the local backend.
//
// Contents
//
//   - XSalsa20-Poly1305 secretbox (SecretboxSeal, SecretboxOpen)
//   - Ed25519 key pairs, combined and detached signatures, and secret key
//     accessors (GenerateKeypair, SeedKeypair, Sign, Open, SignDetached,
//     VerifyDetached, SkToSeed, SkToPk)
//   - X25519 scalar multiplication and Ed25519 to X25519 key conversion
//     (ScalarBaseMult, ScalarMult, SkToCurve25519, PkToCurve25519)
//   - scrypt password hashing with libsodium's parameter selection
//     (PickParams, Scrypt, ScryptLL)
//   - Short public-key fingerprints for display (Fingerprint)
//
// # Notes
//
// Functions take and return plain byte slices because their inputs arrive as
// decoded hex. Every size is checked here as well, since a remote caller may
// skip client-side validation. Returned slices never alias the inputs, so
// callers may wipe inputs with memzero.Zero once a call returns.
package crypto
