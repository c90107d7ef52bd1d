package crypto_test

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"sodiumbridge/internal/crypto"
)

func unhex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestSecretbox_RoundTrip(t *testing.T) {
	key := bytes.Repeat([]byte{7}, crypto.SecretboxKeyBytes)
	nonce := bytes.Repeat([]byte{9}, crypto.SecretboxNonceBytes)

	box, err := crypto.SecretboxSeal(nil, nonce, key)
	require.NoError(t, err)
	require.Len(t, box, crypto.SecretboxMACBytes)

	box, err = crypto.SecretboxSeal([]byte("attack at dawn"), nonce, key)
	require.NoError(t, err)
	msg, err := crypto.SecretboxOpen(box, nonce, key)
	require.NoError(t, err)
	require.Equal(t, "attack at dawn", string(msg))

	box[0] ^= 1
	_, err = crypto.SecretboxOpen(box, nonce, key)
	require.ErrorIs(t, err, crypto.ErrDecrypt)
}

func TestSecretbox_Sizes(t *testing.T) {
	_, err := crypto.SecretboxSeal(nil, make([]byte, 23), make([]byte, 32))
	require.ErrorIs(t, err, crypto.ErrSize)
	_, err = crypto.SecretboxOpen(nil, make([]byte, 24), make([]byte, 31))
	require.ErrorIs(t, err, crypto.ErrSize)
}

// RFC 8032, section 7.1, test 1.
func TestSeedKeypair_RFC8032(t *testing.T) {
	seed := unhex(t, "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60")
	pk, sk, err := crypto.SeedKeypair(seed)
	require.NoError(t, err)
	require.Equal(t, "d75a980182b10ab7d54bfed3c964073a0ee172f3daa62325af021a68f707511a", hex.EncodeToString(pk))

	sig, err := crypto.SignDetached(sk, nil)
	require.NoError(t, err)
	require.Equal(t, "e5564300c360ac729086e2cc806e828a84877f1eb8e5d974d873e06522490155"+
		"5fb8821590a33bacc61e39701cf9b46bd25bf5f0595bbe24655141438e7a100b", hex.EncodeToString(sig))

	gotSeed, err := crypto.SkToSeed(sk)
	require.NoError(t, err)
	require.Equal(t, seed, gotSeed)
	gotPk, err := crypto.SkToPk(sk)
	require.NoError(t, err)
	require.Equal(t, pk, gotPk)
}

func TestSignOpen(t *testing.T) {
	pk, sk, err := crypto.GenerateKeypair()
	require.NoError(t, err)

	signed, err := crypto.Sign(sk, []byte("hello"))
	require.NoError(t, err)
	require.Len(t, signed, crypto.SignBytes+5)

	msg, err := crypto.Open(signed, pk)
	require.NoError(t, err)
	require.Equal(t, "hello", string(msg))

	signed[len(signed)-1] ^= 1
	_, err = crypto.Open(signed, pk)
	require.ErrorIs(t, err, crypto.ErrSignature)

	_, err = crypto.Open(make([]byte, 10), pk)
	require.ErrorIs(t, err, crypto.ErrSignature)
}

func TestVerifyDetached(t *testing.T) {
	pk, sk, err := crypto.GenerateKeypair()
	require.NoError(t, err)
	sig, err := crypto.SignDetached(sk, []byte("m"))
	require.NoError(t, err)

	require.True(t, crypto.VerifyDetached(sig, []byte("m"), pk))
	require.False(t, crypto.VerifyDetached(sig, []byte("n"), pk))
	require.False(t, crypto.VerifyDetached(sig[:63], []byte("m"), pk))
}

// RFC 7748, section 6.1.
func TestScalarMult_RFC7748(t *testing.T) {
	alice := unhex(t, "77076d0a7318a57d3c16c17251b26645df4c2f87ebc0992ab177fba51db92c2a")
	bobPub := unhex(t, "de9edb7d7b7dc1b4d35b61c2ece435373f8343c85b78674dadfc7e146f882b4f")

	pub, err := crypto.ScalarBaseMult(alice)
	require.NoError(t, err)
	require.Equal(t, "8520f0098930a754748b7ddcb43ef75a0dbf3a0d26381af4eba4a98eaa9b4e6a", hex.EncodeToString(pub))

	shared, err := crypto.ScalarMult(alice, bobPub)
	require.NoError(t, err)
	require.Equal(t, "4a5d9d5ba4ce2de1728e3bf480350f25e07e21c947d19e3376f09b3c1e161742", hex.EncodeToString(shared))
}

func TestScalarMult_LowOrderPoint(t *testing.T) {
	_, err := crypto.ScalarMult(bytes.Repeat([]byte{1}, 32), make([]byte, 32))
	require.ErrorIs(t, err, crypto.ErrWeakPoint)
}

func TestEd25519ToCurve25519_Consistent(t *testing.T) {
	pk, sk, err := crypto.GenerateKeypair()
	require.NoError(t, err)

	xsk, err := crypto.SkToCurve25519(sk)
	require.NoError(t, err)
	xpk, err := crypto.PkToCurve25519(pk)
	require.NoError(t, err)

	derived, err := crypto.ScalarBaseMult(xsk)
	require.NoError(t, err)
	require.Equal(t, xpk, derived)
}

func TestPkToCurve25519_RejectsSmallOrder(t *testing.T) {
	// the identity point
	id := make([]byte, 32)
	id[0] = 1
	_, err := crypto.PkToCurve25519(id)
	require.True(t, errors.Is(err, crypto.ErrInvalidPoint))
}

func TestPickParams(t *testing.T) {
	p := crypto.PickParams(crypto.PwhashOpsLimitInteractive, crypto.PwhashMemLimitInteractive)
	require.Equal(t, crypto.ScryptParams{N: 16384, R: 8, P: 1}, p)
	require.EqualValues(t, crypto.PwhashMemLimitInteractive, p.Memory())

	// ops-bound branch
	require.Equal(t, crypto.ScryptParams{N: 1024, R: 8, P: 1}, crypto.PickParams(32768, 1<<24))

	// opsLimit is floored
	require.Equal(t, crypto.PickParams(1, 1<<24), crypto.PickParams(32768, 1<<24))
}

// RFC 7914, section 12, first vector.
func TestScryptLL_RFC7914(t *testing.T) {
	key, err := crypto.ScryptLL(nil, nil, crypto.ScryptParams{N: 16, R: 1, P: 1}, 64)
	require.NoError(t, err)
	require.Equal(t, "77d6576238657b203b19ca42c18a0497f16b4844e3074ae8dfdffa3fede21442"+
		"fcd0069ded0948f8326a753a0fc81f17e8d3e0fb2e0d3628cf35e20c38d18906", hex.EncodeToString(key))
}

func TestScryptLL_RejectsBadParams(t *testing.T) {
	for _, p := range []crypto.ScryptParams{{N: 1, R: 1, P: 1}, {N: 15, R: 1, P: 1}, {N: 16, R: 0, P: 1}, {N: 16, R: 1, P: 0}} {
		_, err := crypto.ScryptLL([]byte("pw"), []byte("salt"), p, 32)
		require.ErrorIs(t, err, crypto.ErrParams, "%+v", p)
	}
}

func TestScrypt_SaltSize(t *testing.T) {
	_, err := crypto.Scrypt([]byte("pw"), make([]byte, 16), 1, 1, 32)
	require.ErrorIs(t, err, crypto.ErrSize)
}

func TestFingerprint(t *testing.T) {
	fp := crypto.Fingerprint([]byte("pk"))
	require.Len(t, fp, 20)
}
