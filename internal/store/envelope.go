package store

import (
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"sodiumbridge/internal/util/memzero"
)

// The current supported version of the sealed secret format.
const envelopeVersion = 1

// ErrWrongPassphrase is returned when the passphrase is incorrect or the
// sealed secret has been modified.
var ErrWrongPassphrase = errors.New("wrong passphrase or corrupted key")

// envelope holds a sealed secret and its KDF parameters.
type envelope struct {
	V      int    `json:"v"`
	Salt   []byte `json:"salt"`
	N      int    `json:"scrypt_N"`
	R      int    `json:"scrypt_r"`
	P      int    `json:"scrypt_p"`
	Cipher []byte `json:"cipher"`
}

// Tunables for scrypt key derivation.
func scryptParamsDefault() (N, r, p int) { return 1 << 15, 8, 1 }

// seal derives a key from passphrase and encrypts raw. ad is bound to the
// ciphertext so a sealed secret cannot be moved to another record.
func seal(passphrase string, raw, ad []byte, N, r, p int) (envelope, error) {
	var salt [16]byte
	if _, err := rand.Read(salt[:]); err != nil {
		return envelope{}, err
	}
	key, err := scrypt.Key([]byte(passphrase), salt[:], N, r, p, chacha20poly1305.KeySize)
	if err != nil {
		return envelope{}, err
	}
	defer memzero.Zero(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return envelope{}, err
	}
	var nonce [chacha20poly1305.NonceSize]byte // zero nonce; the salt makes every key unique
	ct := aead.Seal(nil, nonce[:], raw, append(salt[:], ad...))

	return envelope{V: envelopeVersion, Salt: salt[:], N: N, R: r, P: p, Cipher: ct}, nil
}

// open reverses seal.
func open(passphrase string, env envelope, ad []byte) ([]byte, error) {
	if env.V > envelopeVersion {
		return nil, fmt.Errorf("unsupported key format version %d", env.V)
	}
	key, err := scrypt.Key([]byte(passphrase), env.Salt, env.N, env.R, env.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	var nonce [chacha20poly1305.NonceSize]byte
	pt, err := aead.Open(nil, nonce[:], env.Cipher, append(append([]byte(nil), env.Salt...), ad...))
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	return pt, nil
}
