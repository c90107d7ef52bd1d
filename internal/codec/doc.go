// Package codec converts byte buffers to and from the two textual forms the
// bridge understands.
//
//   - Hex: Encode, EnsureHex, Decode and IsHex. Output is always lowercase,
//     input is case-insensitive, and the empty string is valid hex.
//   - UTF-8: Transcoder.ToText and Transcoder.ToBytes, strict in both
//     directions. The zero Transcoder validates through golang.org/x/text;
//     a Manual transcoder decodes in fixed-size chunks and never splits a
//     multi-byte sequence across a chunk boundary.
//
// All functions are pure and safe for concurrent use.
package codec
