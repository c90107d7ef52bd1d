package codec

import "sodiumbridge/internal/domain"

// Encode returns the lowercase hex form of b, high nibble first.
func Encode(b []byte) string {
	out := make([]byte, len(b)*2)
	for i, v := range b {
		out[2*i] = hexDigit(v >> 4)
		out[2*i+1] = hexDigit(v & 0x0f)
	}
	return string(out)
}

// hexDigit maps 0..9 to '0'..'9' and 10..15 to 'a'..'f' without branching.
func hexDigit(n byte) byte {
	c := int(n)
	return byte(87 + c + (((c - 10) >> 8) &^ 38))
}

// EnsureHex returns v as hex text. A string that is already hex is returned
// unchanged; a []byte is encoded. Anything else is a KindType error.
func EnsureHex(v any) (string, error) {
	switch t := v.(type) {
	case string:
		if IsHex(t) {
			return t, nil
		}
		return "", domain.NewError(domain.KindType, "", "bytes must be a byte slice or a hex string")
	case []byte:
		return Encode(t), nil
	default:
		return "", domain.NewError(domain.KindType, "", "bytes must be a byte slice or a hex string")
	}
}

// Decode parses hex text into bytes. It fails with KindFormat unless IsHex(s).
func Decode(s string) ([]byte, error) {
	if !IsHex(s) {
		return nil, domain.NewError(domain.KindFormat, "", "the provided string doesn't look like hex data")
	}
	out := make([]byte, len(s)/2)
	for i := range out {
		out[i] = nibble(s[2*i])<<4 | nibble(s[2*i+1])
	}
	return out, nil
}

// IsHex reports whether v is a string of even length made only of hex digits.
func IsHex(v any) bool {
	s, ok := v.(string)
	if !ok || len(s)%2 != 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isHexChar(s[i]) {
			return false
		}
	}
	return true
}

// DecodedLen returns the byte length of a hex string or a byte slice, and
// false for anything else.
func DecodedLen(v any) (int, bool) {
	switch t := v.(type) {
	case string:
		if !IsHex(t) {
			return 0, false
		}
		return len(t) / 2, true
	case []byte:
		return len(t), true
	default:
		return 0, false
	}
}

func isHexChar(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// nibble assumes isHexChar(c).
func nibble(c byte) byte {
	switch {
	case c <= '9':
		return c - '0'
	case c >= 'a':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
