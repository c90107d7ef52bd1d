package local

import (
	"fmt"

	"sodiumbridge/internal/codec"
	"sodiumbridge/internal/domain"
)

// args gives positional access to a request's wire values.
type args []domain.Value

// buffer decodes the hex text at position i.
func (a args) buffer(i int, name string) ([]byte, error) {
	s, ok := a[i].AsText()
	if !ok {
		return nil, fmt.Errorf("%s must be hex text, got %s", name, a[i].Kind())
	}
	b, err := codec.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return b, nil
}

// buffers decodes positions 0..len(names)-1 in order.
func (a args) buffers(names ...string) ([][]byte, error) {
	out := make([][]byte, len(names))
	for i, name := range names {
		b, err := a.buffer(i, name)
		if err != nil {
			return nil, err
		}
		out[i] = b
	}
	return out, nil
}

// number reads the positive integer at position i.
func (a args) number(i int, name string) (uint64, error) {
	n, ok := a[i].AsNumber()
	if !ok || n == 0 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return n, nil
}

func bufferReply(b []byte) domain.Reply {
	return domain.ScalarReply(domain.Text(codec.Encode(b)))
}
