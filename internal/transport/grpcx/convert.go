package grpcx

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/types/known/structpb"

	"sodiumbridge/internal/domain"
)

// maxExact is the largest integer a protobuf number carries without loss.
const maxExact = 1 << 53

func valueToProto(v domain.Value) (*structpb.Value, error) {
	switch v.Kind() {
	case domain.ValueText:
		s, _ := v.AsText()
		return structpb.NewStringValue(s), nil
	case domain.ValueNumber:
		n, _ := v.AsNumber()
		if n > maxExact {
			return nil, fmt.Errorf("number %d does not fit a protobuf number", n)
		}
		return structpb.NewNumberValue(float64(n)), nil
	case domain.ValueBool:
		b, _ := v.AsBool()
		return structpb.NewBoolValue(b), nil
	default:
		return structpb.NewNullValue(), nil
	}
}

func valueFromProto(pv *structpb.Value) (domain.Value, error) {
	switch k := pv.GetKind().(type) {
	case *structpb.Value_StringValue:
		return domain.Text(k.StringValue), nil
	case *structpb.Value_NumberValue:
		f := k.NumberValue
		if !(f >= 0) || f != math.Trunc(f) || f > maxExact {
			return domain.Value{}, fmt.Errorf("number %v is not a non-negative integer", f)
		}
		return domain.Number(uint64(f)), nil
	case *structpb.Value_BoolValue:
		return domain.Bool(k.BoolValue), nil
	case *structpb.Value_NullValue, nil:
		return domain.Value{}, nil
	default:
		return domain.Value{}, fmt.Errorf("unsupported value %T", k)
	}
}

func requestToStruct(req domain.Request) (*structpb.Struct, error) {
	args := make([]*structpb.Value, len(req.Args))
	for i, a := range req.Args {
		v, err := valueToProto(a)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		args[i] = v
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"op":   structpb.NewStringValue(req.Op),
		"args": structpb.NewListValue(&structpb.ListValue{Values: args}),
	}}, nil
}

func requestFromStruct(s *structpb.Struct) (domain.Request, error) {
	op := s.GetFields()["op"].GetStringValue()
	if op == "" {
		return domain.Request{}, fmt.Errorf("missing op")
	}
	raw := s.GetFields()["args"].GetListValue().GetValues()
	args := make([]domain.Value, len(raw))
	for i, pv := range raw {
		v, err := valueFromProto(pv)
		if err != nil {
			return domain.Request{}, fmt.Errorf("argument %d: %w", i, err)
		}
		args[i] = v
	}
	return domain.Request{Op: op, Args: args}, nil
}

func replyToStruct(r domain.Reply) (*structpb.Struct, error) {
	var result *structpb.Value
	if r.IsRecord() {
		fields := make(map[string]*structpb.Value, len(r.Fields))
		for name, v := range r.Fields {
			pv, err := valueToProto(v)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", name, err)
			}
			fields[name] = pv
		}
		result = structpb.NewStructValue(&structpb.Struct{Fields: fields})
	} else {
		pv, err := valueToProto(r.Value)
		if err != nil {
			return nil, err
		}
		result = pv
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{"result": result}}, nil
}

func replyFromStruct(s *structpb.Struct) (domain.Reply, error) {
	result, ok := s.GetFields()["result"]
	if !ok {
		return domain.Reply{}, fmt.Errorf("reply has no result")
	}
	if rec := result.GetStructValue(); rec != nil {
		fields := make(map[string]domain.Value, len(rec.GetFields()))
		for name, pv := range rec.GetFields() {
			v, err := valueFromProto(pv)
			if err != nil {
				return domain.Reply{}, fmt.Errorf("field %s: %w", name, err)
			}
			fields[name] = v
		}
		return domain.RecordReply(fields), nil
	}
	v, err := valueFromProto(result)
	if err != nil {
		return domain.Reply{}, err
	}
	return domain.ScalarReply(v), nil
}
