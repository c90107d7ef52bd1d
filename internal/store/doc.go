// Package store provides file-based persistence for signing keypairs.
//
// A Keyring keeps one JSON file per named keypair under <home>/keys. The
// public key is stored in the clear; the secret key is sealed with
// ChaCha20-Poly1305 under a key derived from a passphrase with scrypt.
// Writes go through a temp file and rename. All methods are safe for
// concurrent use.
package store
