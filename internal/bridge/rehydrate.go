package bridge

import (
	"sodiumbridge/internal/catalog"
	"sodiumbridge/internal/codec"
	"sodiumbridge/internal/domain"
)

// Rehydrate converts a raw reply into a Result following shape. Buffer
// positions must hold hex text. Any mismatch fails the whole reply with
// KindFormat and no partial result.
func Rehydrate(shape catalog.Shape, reply domain.Reply) (domain.Result, error) {
	switch shape.Kind {
	case catalog.ShapeBuffer:
		if reply.IsRecord() {
			return domain.Result{}, domain.NewError(domain.KindFormat, "", "expected a single buffer, got a record")
		}
		b, err := decodeBuffer("", reply.Value)
		if err != nil {
			return domain.Result{}, err
		}
		return domain.Result{Buffer: b}, nil

	case catalog.ShapeScalar:
		if reply.IsRecord() {
			return domain.Result{}, domain.NewError(domain.KindFormat, "", "expected a single value, got a record")
		}
		return domain.Result{Value: reply.Value}, nil

	case catalog.ShapeRecord:
		if !reply.IsRecord() {
			return domain.Result{}, domain.NewError(domain.KindFormat, "", "expected a record, got %s", reply.Value.Kind())
		}
		return rehydrateRecord(shape.Fields, reply.Fields)

	default:
		return domain.Result{}, domain.NewError(domain.KindFormat, "", "unknown result shape %d", shape.Kind)
	}
}

func rehydrateRecord(fields []catalog.Field, raw map[string]domain.Value) (domain.Result, error) {
	res := domain.Result{
		Buffers: make(map[string][]byte, len(fields)),
		Values:  map[string]domain.Value{},
	}
	declared := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		declared[f.Name] = struct{}{}
		v, ok := raw[f.Name]
		if !ok {
			return domain.Result{}, domain.NewError(domain.KindFormat, f.Name, "reply is missing field %s", f.Name)
		}
		if f.Kind == catalog.FieldScalar {
			res.Values[f.Name] = v
			continue
		}
		b, err := decodeBuffer(f.Name, v)
		if err != nil {
			return domain.Result{}, err
		}
		res.Buffers[f.Name] = b
	}
	// undeclared fields pass through untouched
	for name, v := range raw {
		if _, ok := declared[name]; !ok {
			res.Values[name] = v
		}
	}
	return res, nil
}

func decodeBuffer(field string, v domain.Value) ([]byte, error) {
	s, ok := v.AsText()
	if !ok {
		return nil, domain.NewError(domain.KindFormat, field, "expected hex text, got %s", v.Kind())
	}
	b, err := codec.Decode(s)
	if err != nil {
		return nil, domain.WrapError(domain.KindFormat, field, err, "reply is not hex: %v", err)
	}
	return b, nil
}
