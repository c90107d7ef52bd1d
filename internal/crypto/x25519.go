package crypto

import (
	"crypto/sha512"
	"errors"
	"fmt"

	"filippo.io/edwards25519"
	"golang.org/x/crypto/curve25519"

	"sodiumbridge/internal/util/memzero"
)

const (
	ScalarmultBytes       = curve25519.PointSize
	ScalarmultScalarBytes = curve25519.ScalarSize
)

// ScalarBaseMult returns n·B. The scalar is clamped per RFC 7748.
func ScalarBaseMult(n []byte) ([]byte, error) {
	if len(n) != ScalarmultScalarBytes {
		return nil, fmt.Errorf("%w: scalar must be %d bytes", ErrSize, ScalarmultScalarBytes)
	}
	return curve25519.X25519(n, curve25519.Basepoint)
}

// ScalarMult returns n·p. A low-order p yields ErrWeakPoint.
func ScalarMult(n, p []byte) ([]byte, error) {
	if len(n) != ScalarmultScalarBytes {
		return nil, fmt.Errorf("%w: scalar must be %d bytes", ErrSize, ScalarmultScalarBytes)
	}
	if len(p) != ScalarmultBytes {
		return nil, fmt.Errorf("%w: point must be %d bytes", ErrSize, ScalarmultBytes)
	}
	out, err := curve25519.X25519(n, p)
	if err != nil {
		return nil, errors.Join(ErrWeakPoint, err)
	}
	return out, nil
}

// SkToCurve25519 derives the X25519 secret key of an Ed25519 secret key:
// the clamped low half of SHA-512(seed).
func SkToCurve25519(sk []byte) ([]byte, error) {
	if len(sk) != SignSecretKeyBytes {
		return nil, fmt.Errorf("%w: secret key must be %d bytes", ErrSize, SignSecretKeyBytes)
	}
	h := sha512.Sum512(sk[:SignSeedBytes])
	defer memzero.Zero(h[:])

	out := make([]byte, ScalarmultScalarBytes)
	copy(out, h[:ScalarmultScalarBytes])
	clamp(out)
	return out, nil
}

// PkToCurve25519 maps an Ed25519 public key to the Montgomery u-coordinate
// of the same point. Keys that fail to decode or have small order are
// rejected with ErrInvalidPoint.
func PkToCurve25519(pk []byte) ([]byte, error) {
	if len(pk) != SignPublicKeyBytes {
		return nil, fmt.Errorf("%w: public key must be %d bytes", ErrSize, SignPublicKeyBytes)
	}
	p, err := new(edwards25519.Point).SetBytes(pk)
	if err != nil {
		return nil, errors.Join(ErrInvalidPoint, err)
	}
	if new(edwards25519.Point).MultByCofactor(p).Equal(edwards25519.NewIdentityPoint()) == 1 {
		return nil, ErrInvalidPoint
	}
	return p.BytesMontgomery(), nil
}

func clamp(k []byte) {
	k[0] &= 248
	k[31] &= 127
	k[31] |= 64
}
