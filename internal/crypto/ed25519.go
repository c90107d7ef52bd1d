package crypto

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
)

const (
	SignBytes          = ed25519.SignatureSize
	SignPublicKeyBytes = ed25519.PublicKeySize
	SignSecretKeyBytes = ed25519.PrivateKeySize
	SignSeedBytes      = ed25519.SeedSize
)

// GenerateKeypair returns a new Ed25519 key pair. sk is seed‖pk.
func GenerateKeypair() (pk, sk []byte, err error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, nil, err
	}
	return pub, priv, nil
}

// SeedKeypair derives the Ed25519 key pair for seed.
func SeedKeypair(seed []byte) (pk, sk []byte, err error) {
	if len(seed) != SignSeedBytes {
		return nil, nil, fmt.Errorf("%w: seed must be %d bytes", ErrSize, SignSeedBytes)
	}
	priv := ed25519.NewKeyFromSeed(seed)
	pub := make([]byte, SignPublicKeyBytes)
	copy(pub, priv[SignSeedBytes:])
	return pub, priv, nil
}

// Sign returns signature‖msg.
func Sign(sk, msg []byte) ([]byte, error) {
	sig, err := SignDetached(sk, msg)
	if err != nil {
		return nil, err
	}
	return append(sig, msg...), nil
}

// Open verifies signature‖msg against pk and returns msg.
func Open(signed, pk []byte) ([]byte, error) {
	if len(pk) != SignPublicKeyBytes {
		return nil, fmt.Errorf("%w: public key must be %d bytes", ErrSize, SignPublicKeyBytes)
	}
	if len(signed) < SignBytes {
		return nil, ErrSignature
	}
	sig, msg := signed[:SignBytes], signed[SignBytes:]
	if !ed25519.Verify(ed25519.PublicKey(pk), msg, sig) {
		return nil, ErrSignature
	}
	return append([]byte{}, msg...), nil
}

// SignDetached signs msg with sk and returns the signature.
func SignDetached(sk, msg []byte) ([]byte, error) {
	if len(sk) != SignSecretKeyBytes {
		return nil, fmt.Errorf("%w: secret key must be %d bytes", ErrSize, SignSecretKeyBytes)
	}
	return ed25519.Sign(ed25519.PrivateKey(sk), msg), nil
}

// VerifyDetached reports whether sig is a valid signature of msg by pk.
// Malformed sizes verify as false.
func VerifyDetached(sig, msg, pk []byte) bool {
	if len(sig) != SignBytes || len(pk) != SignPublicKeyBytes {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pk), msg, sig)
}

// SkToSeed returns the seed half of sk.
func SkToSeed(sk []byte) ([]byte, error) {
	if len(sk) != SignSecretKeyBytes {
		return nil, fmt.Errorf("%w: secret key must be %d bytes", ErrSize, SignSecretKeyBytes)
	}
	return append([]byte{}, sk[:SignSeedBytes]...), nil
}

// SkToPk returns the public key half of sk.
func SkToPk(sk []byte) ([]byte, error) {
	if len(sk) != SignSecretKeyBytes {
		return nil, fmt.Errorf("%w: secret key must be %d bytes", ErrSize, SignSecretKeyBytes)
	}
	return append([]byte{}, sk[SignSeedBytes:]...), nil
}
