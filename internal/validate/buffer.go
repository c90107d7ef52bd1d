package validate

import (
	"sodiumbridge/internal/codec"
	"sodiumbridge/internal/domain"
)

// CheckBufferAny fails with KindType unless v is a []byte or a hex string.
func CheckBufferAny(v any, name string) error {
	if _, ok := codec.DecodedLen(v); !ok {
		return domain.NewError(domain.KindType, name, "%s must be either a byte slice or a hex string", name)
	}
	return nil
}

// CheckBuffer fails with KindType unless v is a []byte or a hex string that
// decodes to exactly n bytes.
func CheckBuffer(v any, name string, n int) error {
	got, ok := codec.DecodedLen(v)
	if !ok {
		return domain.NewError(domain.KindType, name, "%s must be a byte slice or a hex string, and must be %d bytes long", name, n)
	}
	if got != n {
		return domain.NewError(domain.KindType, name, "%s must be %d bytes long", name, n)
	}
	return nil
}

// CheckMinBuffer fails with KindType for a non-buffer and with KindValue when
// v decodes to fewer than n bytes.
func CheckMinBuffer(v any, name string, n int) error {
	if err := CheckBufferAny(v, name); err != nil {
		return err
	}
	got, _ := codec.DecodedLen(v)
	if got < n {
		return domain.NewError(domain.KindValue, name, "%s must be at least %d bytes long", name, n)
	}
	return nil
}
