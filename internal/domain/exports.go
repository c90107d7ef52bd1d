package domain

import (
	interfaces "sodiumbridge/internal/domain/interfaces"
	types "sodiumbridge/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	Value     = types.Value
	ValueKind = types.ValueKind
	Request   = types.Request
	Reply     = types.Reply
	Result    = types.Result
)

// Value kinds.
const (
	ValueNull   = types.ValueNull
	ValueText   = types.ValueText
	ValueNumber = types.ValueNumber
	ValueBool   = types.ValueBool
)

// Constructors re-exported from the types subpackage.
var (
	Text        = types.Text
	Number      = types.Number
	Bool        = types.Bool
	ScalarReply = types.ScalarReply
	RecordReply = types.RecordReply
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	Backend = interfaces.Backend
)
