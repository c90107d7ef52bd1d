package crypto

import "errors"

var (
	// ErrDecrypt is returned when a secretbox fails authentication.
	ErrDecrypt = errors.New("decryption failed")
	// ErrSignature is returned when a signed message does not verify.
	ErrSignature = errors.New("signature verification failed")
	// ErrWeakPoint is returned when scalar multiplication yields the identity.
	ErrWeakPoint = errors.New("scalar multiplication produced an all-zero output")
	// ErrInvalidPoint is returned for public keys that do not decode to a usable point.
	ErrInvalidPoint = errors.New("invalid Ed25519 public key")
	// ErrSize is returned when an input has the wrong length.
	ErrSize = errors.New("invalid input size")
	// ErrParams is returned for unusable scrypt parameters.
	ErrParams = errors.New("invalid scrypt parameters")
)
