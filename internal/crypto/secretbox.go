package crypto

import (
	"fmt"

	"golang.org/x/crypto/nacl/secretbox"

	"sodiumbridge/internal/util/memzero"
)

const (
	SecretboxKeyBytes   = 32
	SecretboxNonceBytes = 24
	SecretboxMACBytes   = secretbox.Overhead
)

// SecretboxSeal returns MAC‖ciphertext of msg under nonce and key.
func SecretboxSeal(msg, nonce, key []byte) ([]byte, error) {
	n, k, err := secretboxParams(nonce, key)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(k[:])
	return secretbox.Seal(nil, msg, n, k), nil
}

// SecretboxOpen authenticates and decrypts box. It returns ErrDecrypt when
// the MAC does not match.
func SecretboxOpen(box, nonce, key []byte) ([]byte, error) {
	n, k, err := secretboxParams(nonce, key)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(k[:])
	msg, ok := secretbox.Open(nil, box, n, k)
	if !ok {
		return nil, ErrDecrypt
	}
	if msg == nil {
		msg = []byte{}
	}
	return msg, nil
}

func secretboxParams(nonce, key []byte) (*[SecretboxNonceBytes]byte, *[SecretboxKeyBytes]byte, error) {
	if len(nonce) != SecretboxNonceBytes {
		return nil, nil, fmt.Errorf("%w: nonce must be %d bytes", ErrSize, SecretboxNonceBytes)
	}
	if len(key) != SecretboxKeyBytes {
		return nil, nil, fmt.Errorf("%w: key must be %d bytes", ErrSize, SecretboxKeyBytes)
	}
	var n [SecretboxNonceBytes]byte
	var k [SecretboxKeyBytes]byte
	copy(n[:], nonce)
	copy(k[:], key)
	return &n, &k, nil
}
