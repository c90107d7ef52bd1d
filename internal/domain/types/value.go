package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ValueKind tags the variant held by a Value.
type ValueKind uint8

const (
	// ValueNull is the zero Value.
	ValueNull ValueKind = iota
	// ValueText carries a string, normally hex-encoded bytes.
	ValueText
	// ValueNumber carries a non-negative integer.
	ValueNumber
	// ValueBool carries a boolean, e.g. a verification verdict.
	ValueBool
)

// String returns the name of the kind.
func (k ValueKind) String() string {
	switch k {
	case ValueText:
		return "text"
	case ValueNumber:
		return "number"
	case ValueBool:
		return "bool"
	default:
		return "null"
	}
}

// Value is a single scalar crossing the bridge in either direction.
//
// Arguments are text (hex) or numbers; replies may also carry booleans.
type Value struct {
	kind ValueKind
	text string
	num  uint64
	b    bool
}

// Text returns a text Value.
func Text(s string) Value { return Value{kind: ValueText, text: s} }

// Number returns a numeric Value.
func Number(n uint64) Value { return Value{kind: ValueNumber, num: n} }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: ValueBool, b: b} }

// Kind reports which variant v holds.
func (v Value) Kind() ValueKind { return v.kind }

// AsText returns the text payload and whether v is text.
func (v Value) AsText() (string, bool) { return v.text, v.kind == ValueText }

// AsNumber returns the numeric payload and whether v is a number.
func (v Value) AsNumber() (uint64, bool) { return v.num, v.kind == ValueNumber }

// AsBool returns the boolean payload and whether v is a boolean.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == ValueBool }

// String renders v for logs and the CLI.
func (v Value) String() string {
	switch v.kind {
	case ValueText:
		return v.text
	case ValueNumber:
		return strconv.FormatUint(v.num, 10)
	case ValueBool:
		return strconv.FormatBool(v.b)
	default:
		return "null"
	}
}

// MarshalJSON encodes v as a native JSON string, number, boolean or null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case ValueText:
		return json.Marshal(v.text)
	case ValueNumber:
		return []byte(strconv.FormatUint(v.num, 10)), nil
	case ValueBool:
		return json.Marshal(v.b)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON mirrors MarshalJSON. Numbers must be non-negative integers.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty value")
	}
	switch data[0] {
	case 'n':
		*v = Value{}
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Text(s)
		return nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*v = Bool(b)
		return nil
	default:
		n, err := strconv.ParseUint(string(data), 10, 64)
		if err != nil {
			return fmt.Errorf("value %s is not a non-negative integer", data)
		}
		*v = Number(n)
		return nil
	}
}
