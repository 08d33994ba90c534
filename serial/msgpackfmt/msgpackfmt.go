// Package msgpackfmt implements the serial contract over MessagePack using
// vmihailenco/msgpack. MessagePack arrays carry their length up front, so an
// unknown-length sequence buffers its elements and emits the array when
// closed; the decode side streams element by element.
package msgpackfmt

import (
	"io"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"

	"github.com/Calisto-Mathias/wirebridge/serial"
)

// Target writes MessagePack to an underlying writer.
type Target struct {
	enc *msgpack.Encoder
}

var _ serial.Target = (*Target)(nil)

func NewTarget(w io.Writer) *Target {
	return &Target{enc: msgpack.NewEncoder(w)}
}

func (t *Target) HumanReadable() bool { return false }

func (t *Target) String(s string) error { return t.enc.EncodeString(s) }

func (t *Target) Seq(n int) (serial.SeqTarget, error) {
	if n >= 0 {
		if err := t.enc.EncodeArrayLen(n); err != nil {
			return nil, err
		}
		return &seqTarget{enc: t.enc, direct: true}, nil
	}
	return &seqTarget{enc: t.enc}, nil
}

type seqTarget struct {
	enc    *msgpack.Encoder
	direct bool
	buf    []byte
}

func (s *seqTarget) Byte(b byte) error {
	if s.direct {
		return s.enc.EncodeUint8(b)
	}
	s.buf = append(s.buf, b)
	return nil
}

func (s *seqTarget) End() error {
	if s.direct {
		return nil
	}
	if err := s.enc.EncodeArrayLen(len(s.buf)); err != nil {
		return err
	}
	for _, b := range s.buf {
		if err := s.enc.EncodeUint8(b); err != nil {
			return err
		}
	}
	return nil
}

// Source reads one MessagePack value from a reader.
type Source struct {
	dec *msgpack.Decoder
}

var _ serial.Source = (*Source)(nil)

func NewSource(r io.Reader) *Source {
	return &Source{dec: msgpack.NewDecoder(r)}
}

func (s *Source) HumanReadable() bool { return false }

func (s *Source) String(expecting string) (string, error) {
	c, err := s.dec.PeekCode()
	if err != nil {
		return "", serial.New(err.Error())
	}
	if !msgpcode.IsString(c) {
		return "", serial.InvalidType(serial.UnexpectedOther(describeCode(c)), expecting)
	}
	str, err := s.dec.DecodeString()
	if err != nil {
		return "", serial.New(err.Error())
	}
	return str, nil
}

func (s *Source) Seq(expecting string) (serial.SeqSource, error) {
	c, err := s.dec.PeekCode()
	if err != nil {
		return nil, serial.New(err.Error())
	}
	if !isArrayCode(c) {
		return nil, serial.InvalidType(serial.UnexpectedOther(describeCode(c)), expecting)
	}
	n, err := s.dec.DecodeArrayLen()
	if err != nil {
		return nil, serial.New(err.Error())
	}
	return &seqSource{dec: s.dec, remaining: n}, nil
}

type seqSource struct {
	dec       *msgpack.Decoder
	remaining int
}

func (s *seqSource) NextByte() (byte, bool, error) {
	if s.remaining <= 0 {
		return 0, false, nil
	}
	b, err := s.dec.DecodeUint8()
	if err != nil {
		return 0, false, serial.New(err.Error())
	}
	s.remaining--
	return b, true, nil
}

func isArrayCode(c byte) bool {
	return msgpcode.IsFixedArray(c) || c == msgpcode.Array16 || c == msgpcode.Array32
}

func describeCode(c byte) string {
	switch {
	case msgpcode.IsString(c):
		return "string"
	case msgpcode.IsBin(c):
		return "bytes"
	case isArrayCode(c):
		return "sequence"
	case msgpcode.IsFixedMap(c) || c == msgpcode.Map16 || c == msgpcode.Map32:
		return "map"
	case c == msgpcode.Nil:
		return "null"
	case c == msgpcode.True || c == msgpcode.False:
		return "boolean"
	case c == msgpcode.Float || c == msgpcode.Double:
		return "floating point"
	default:
		return "integer"
	}
}
