package types

import (
	"bytes"
	"encoding/json"
)

// Request is one operation call as handed to a backend: the operation name and
// its already-encoded arguments, in declaration order.
type Request struct {
	Op   string  `json:"op"`
	Args []Value `json:"args"`
}

// Reply is the raw success payload of a backend: either a single Value or a
// flat record of named Values. Fields is nil for single values.
type Reply struct {
	Value  Value
	Fields map[string]Value
}

// ScalarReply wraps a single value.
func ScalarReply(v Value) Reply { return Reply{Value: v} }

// RecordReply wraps a flat record.
func RecordReply(fields map[string]Value) Reply {
	if fields == nil {
		fields = map[string]Value{}
	}
	return Reply{Fields: fields}
}

// IsRecord reports whether r carries named fields.
func (r Reply) IsRecord() bool { return r.Fields != nil }

// MarshalJSON encodes a record as a JSON object and a scalar as its value.
func (r Reply) MarshalJSON() ([]byte, error) {
	if r.IsRecord() {
		return json.Marshal(r.Fields)
	}
	return json.Marshal(r.Value)
}

// UnmarshalJSON mirrors MarshalJSON.
func (r *Reply) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		fields := map[string]Value{}
		if err := json.Unmarshal(trimmed, &fields); err != nil {
			return err
		}
		*r = RecordReply(fields)
		return nil
	}
	var v Value
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return err
	}
	*r = ScalarReply(v)
	return nil
}

// Result is a Reply after rehydration: hex positions decoded back into bytes.
//
// Buffer is set for single-buffer operations, Value for single scalars, and
// Buffers/Values for record operations.
type Result struct {
	Buffer  []byte
	Value   Value
	Buffers map[string][]byte
	Values  map[string]Value
}

// Field returns the named buffer field of a record result.
func (r Result) Field(name string) []byte { return r.Buffers[name] }
