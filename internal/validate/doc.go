// Package validate checks call arguments before anything is sent to a backend.
//
// Every check is pure and synchronous and returns a *domain.Error whose Param
// names the offending argument. Buffers are accepted either as []byte or as hex
// text; lengths are always measured in decoded bytes.
package validate
