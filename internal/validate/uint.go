package validate

import (
	"math"

	"sodiumbridge/internal/domain"
)

// CheckUint fails with KindType unless v is a non-negative integer. When pred
// is non-nil and rejects the value it fails with KindValue.
func CheckUint(v any, name string, pred func(uint64) bool) error {
	n, ok := ToUint(v)
	if !ok {
		return domain.NewError(domain.KindType, name, "%s must be a non-negative integer", name)
	}
	if pred != nil && !pred(n) {
		return domain.NewError(domain.KindValue, name, "The value of %s (%d) is invalid", name, n)
	}
	return nil
}

// CheckPositiveUint fails with KindType unless v is an integer >= 1.
func CheckPositiveUint(v any, name string) error {
	n, ok := ToUint(v)
	if !ok || n == 0 {
		return domain.NewError(domain.KindType, name, "%s must be a positive integer", name)
	}
	return nil
}

// ToUint converts the integer forms a caller may pass: any Go integer type,
// an integral float, or a numeric domain.Value. Negative or fractional values
// report false.
func ToUint(v any) (uint64, bool) {
	switch t := v.(type) {
	case int:
		return signed(int64(t))
	case int8:
		return signed(int64(t))
	case int16:
		return signed(int64(t))
	case int32:
		return signed(int64(t))
	case int64:
		return signed(t)
	case uint:
		return uint64(t), true
	case uint8:
		return uint64(t), true
	case uint16:
		return uint64(t), true
	case uint32:
		return uint64(t), true
	case uint64:
		return t, true
	case float32:
		return integral(float64(t))
	case float64:
		return integral(t)
	case domain.Value:
		return t.AsNumber()
	default:
		return 0, false
	}
}

func signed(n int64) (uint64, bool) {
	if n < 0 {
		return 0, false
	}
	return uint64(n), true
}

func integral(f float64) (uint64, bool) {
	if !(f >= 0) || f != math.Trunc(f) || f >= math.MaxUint64 {
		return 0, false
	}
	return uint64(f), true
}
