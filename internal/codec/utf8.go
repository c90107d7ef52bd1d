package codec

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"sodiumbridge/internal/domain"
)

// ChunkSize is the default chunk size of the manual decoder.
const ChunkSize = 8192

// Transcoder converts between byte buffers and UTF-8 text.
//
// The zero value validates with golang.org/x/text. Setting Manual decodes in
// ChunkSize pieces using unicode/utf8 only; both strategies produce identical
// output and reject the same inputs.
type Transcoder struct {
	Manual    bool
	ChunkSize int
}

// ToText decodes b as strict UTF-8 with the default Transcoder.
func ToText(b []byte) (string, error) { return Transcoder{}.ToText(b) }

// ToBytes encodes s as UTF-8 with the default Transcoder.
func ToBytes(s string) ([]byte, error) { return Transcoder{}.ToBytes(s) }

// ToText decodes b as UTF-8. Invalid or truncated sequences fail with KindDecode;
// no replacement characters are ever produced.
func (t Transcoder) ToText(b []byte) (string, error) {
	if t.Manual {
		return t.decodeChunked(b)
	}
	out, _, err := transform.Bytes(encoding.UTF8Validator, b)
	if err != nil {
		return "", domain.WrapError(domain.KindDecode, "", err, "the encoded data was not valid UTF-8")
	}
	return string(out), nil
}

// ToBytes encodes s as UTF-8. A string holding invalid UTF-8 fails with KindDecode.
func (t Transcoder) ToBytes(s string) ([]byte, error) {
	if !t.Manual {
		out, _, err := transform.Bytes(encoding.UTF8Validator, []byte(s))
		if err != nil {
			return nil, domain.WrapError(domain.KindDecode, "", err, "the text is not valid UTF-8")
		}
		return out, nil
	}
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			return nil, domain.NewError(domain.KindDecode, "", "the text is not valid UTF-8 at byte %d", i)
		}
		out = utf8.AppendRune(out, r)
		i += size
	}
	return out, nil
}

func (t Transcoder) chunkSize() int {
	switch {
	case t.ChunkSize <= 0:
		return ChunkSize
	case t.ChunkSize < utf8.UTFMax:
		return utf8.UTFMax
	default:
		return t.ChunkSize
	}
}

// decodeChunked decodes b chunk by chunk. A sequence that starts in one chunk
// and ends in the next is moved whole into the next chunk.
func (t Transcoder) decodeChunked(b []byte) (string, error) {
	size := t.chunkSize()
	if len(b) <= size {
		return decodeChunk(b)
	}

	var sb strings.Builder
	sb.Grow(len(b))
	for offset := 0; offset < len(b); {
		end := offset + size
		if end >= len(b) {
			end = len(b)
		} else {
			end -= incompleteTail(b[offset:end])
		}
		s, err := decodeChunk(b[offset:end])
		if err != nil {
			return "", err
		}
		sb.WriteString(s)
		offset = end
	}
	return sb.String(), nil
}

// incompleteTail returns the number of trailing bytes of chunk that begin a
// multi-byte sequence longer than what remains in chunk.
func incompleteTail(chunk []byte) int {
	stop := len(chunk) - utf8.UTFMax
	if stop < 0 {
		stop = 0
	}
	for i := len(chunk) - 1; i >= stop; i-- {
		n := sequenceLen(chunk[i])
		if n == 0 {
			continue
		}
		if have := len(chunk) - i; n > have {
			return have
		}
		return 0
	}
	return 0
}

// sequenceLen classifies a byte by its leading bits: 0 for a continuation
// byte, otherwise the length of the sequence it starts.
func sequenceLen(c byte) int {
	switch {
	case c >= 240:
		return 4
	case c >= 224:
		return 3
	case c >= 192:
		return 2
	case c < 128:
		return 1
	default:
		return 0
	}
}

func decodeChunk(chunk []byte) (string, error) {
	if !utf8.Valid(chunk) {
		return "", domain.NewError(domain.KindDecode, "", "the encoded data was not valid UTF-8")
	}
	return string(chunk), nil
}
