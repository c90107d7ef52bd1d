package codec_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"sodiumbridge/internal/codec"
	"sodiumbridge/internal/domain"
)

func TestEncode_LowercaseHighNibbleFirst(t *testing.T) {
	require.Equal(t, "", codec.Encode(nil))
	require.Equal(t, "00ff10", codec.Encode([]byte{0x00, 0xff, 0x10}))
	require.Equal(t, "0123456789abcdef", codec.Encode([]byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd, 0xef}))
}

func TestEncode_AllBytes(t *testing.T) {
	all := make([]byte, 256)
	for i := range all {
		all[i] = byte(i)
	}
	enc := codec.Encode(all)
	require.Len(t, enc, 512)
	require.Equal(t, strings.ToLower(enc), enc)

	dec, err := codec.Decode(enc)
	require.NoError(t, err)
	require.True(t, bytes.Equal(all, dec))
}

func TestDecode_CaseInsensitive(t *testing.T) {
	got, err := codec.Decode("DeadBEEF")
	require.NoError(t, err)
	require.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, got)
	require.Equal(t, "deadbeef", codec.Encode(got))
}

func TestDecode_RejectsNonHex(t *testing.T) {
	for _, in := range []string{"abc", "zz", "0x00", "a b "} {
		_, err := codec.Decode(in)
		require.Error(t, err, in)
		require.True(t, domain.IsKind(err, domain.KindFormat), in)
	}
}

func TestIsHex(t *testing.T) {
	require.True(t, codec.IsHex(""))
	require.True(t, codec.IsHex("aBcD09"))
	require.False(t, codec.IsHex("abc"))
	require.False(t, codec.IsHex("gg"))
	require.False(t, codec.IsHex([]byte("00")))
	require.False(t, codec.IsHex(42))
}

func TestEnsureHex(t *testing.T) {
	s, err := codec.EnsureHex([]byte{0xca, 0xfe})
	require.NoError(t, err)
	require.Equal(t, "cafe", s)

	// hex text is passed through untouched, case included
	s, err = codec.EnsureHex("CAFE")
	require.NoError(t, err)
	require.Equal(t, "CAFE", s)

	_, err = codec.EnsureHex("not hex")
	require.True(t, domain.IsKind(err, domain.KindType))

	_, err = codec.EnsureHex(12)
	require.True(t, domain.IsKind(err, domain.KindType))
}

func TestDecodedLen(t *testing.T) {
	n, ok := codec.DecodedLen("0011")
	require.True(t, ok)
	require.Equal(t, 2, n)

	n, ok = codec.DecodedLen(make([]byte, 7))
	require.True(t, ok)
	require.Equal(t, 7, n)

	_, ok = codec.DecodedLen("001")
	require.False(t, ok)
	_, ok = codec.DecodedLen(3.5)
	require.False(t, ok)
}
