package wirebridge

import (
	"bytes"
	"io"
)

// Encodable is a type that knows how to write itself in the compact binary
// wire format. EncodeWire returns the number of bytes written. Failures from
// the writer must be returned as-is, never wrapped and never swallowed.
type Encodable interface {
	EncodeWire(w io.Writer) (int, error)
}

// Decodable is a type that knows how to read itself from the compact binary
// wire format. Readers handed to DecodeWire also implement io.ByteReader;
// implementations must read exactly the bytes they need, since any unread
// tail is reported as an error by the slice and bridge decode paths.
type Decodable interface {
	DecodeWire(r io.Reader) error
}

// EncodeToBytes renders v in the wire format as a fresh byte slice.
func EncodeToBytes(v Encodable) ([]byte, error) {
	buf := bufPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer bufPool.Put(buf)

	if _, err := v.EncodeWire(buf); err != nil {
		return nil, err
	}
	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}

// DecodeFromBytes decodes v from data. The whole slice must be consumed;
// trailing bytes after a structurally complete value are reported as
// ErrUnconsumed rather than ignored.
func DecodeFromBytes(v Decodable, data []byte) error {
	r := bytes.NewReader(data)
	if err := v.DecodeWire(r); err != nil {
		return err
	}
	if r.Len() > 0 {
		return ErrUnconsumed
	}
	return nil
}
