package catalog

import (
	"sodiumbridge/internal/domain"
	"sodiumbridge/internal/validate"
)

// ParamKind selects the validation rule of a parameter.
type ParamKind uint8

const (
	// BufferAny accepts a buffer of any length.
	BufferAny ParamKind = iota
	// BufferFixed requires exactly Len bytes.
	BufferFixed
	// BufferMin requires at least Len bytes.
	BufferMin
	// Uint accepts any non-negative integer.
	Uint
	// PositiveUint accepts integers >= 1.
	PositiveUint
	// UintPredicate accepts non-negative integers for which Pred holds.
	UintPredicate
)

// Param describes one positional argument.
type Param struct {
	Name string
	Kind ParamKind
	Len  int
	Pred func(uint64) bool
}

// IsBuffer reports whether the argument travels as hex text.
func (p Param) IsBuffer() bool {
	return p.Kind == BufferAny || p.Kind == BufferFixed || p.Kind == BufferMin
}

// Check applies the parameter's rule to v.
func (p Param) Check(v any) error {
	switch p.Kind {
	case BufferAny:
		return validate.CheckBufferAny(v, p.Name)
	case BufferFixed:
		return validate.CheckBuffer(v, p.Name, p.Len)
	case BufferMin:
		return validate.CheckMinBuffer(v, p.Name, p.Len)
	case Uint:
		return validate.CheckUint(v, p.Name, nil)
	case PositiveUint:
		return validate.CheckPositiveUint(v, p.Name)
	case UintPredicate:
		return validate.CheckUint(v, p.Name, p.Pred)
	default:
		return domain.NewError(domain.KindType, p.Name, "%s has an unknown parameter kind", p.Name)
	}
}

// ShapeKind is the declared form of a successful reply.
type ShapeKind uint8

const (
	// ShapeBuffer is a single hex string decoded into bytes.
	ShapeBuffer ShapeKind = iota
	// ShapeScalar is a single value passed through as-is.
	ShapeScalar
	// ShapeRecord is a flat record with declared fields.
	ShapeRecord
)

// FieldKind is the declared form of one record field.
type FieldKind uint8

const (
	FieldBuffer FieldKind = iota
	FieldScalar
)

// Field is a declared record field.
type Field struct {
	Name string
	Kind FieldKind
}

// Shape describes how a reply is rehydrated.
type Shape struct {
	Kind   ShapeKind
	Fields []Field
}

// Op describes one backend operation.
type Op struct {
	Name        string
	Params      []Param
	Result      Shape
	Implemented bool
}

// Validate checks args against the declared parameters in order and returns
// the first failure.
func (o Op) Validate(args []any) error {
	if len(args) != len(o.Params) {
		return domain.NewError(domain.KindType, "", "%s expects %d arguments, got %d", o.Name, len(o.Params), len(args))
	}
	for i, p := range o.Params {
		if err := p.Check(args[i]); err != nil {
			return err
		}
	}
	return nil
}
