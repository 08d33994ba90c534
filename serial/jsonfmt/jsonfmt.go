// Package jsonfmt implements the serial contract over JSON. JSON is a
// human-readable format, so bridged values arrive as one hex string; the
// sequence form (an array of numbers) is still supported for callers that
// drive it directly.
package jsonfmt

import (
	"bytes"
	"math"
	"strconv"

	jsoniter "github.com/json-iterator/go"

	"github.com/Calisto-Mathias/wirebridge/serial"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Target renders one JSON value into an internal buffer.
type Target struct {
	buf bytes.Buffer
}

var _ serial.Target = (*Target)(nil)

func NewTarget() *Target { return &Target{} }

func (t *Target) HumanReadable() bool { return true }

func (t *Target) String(s string) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	t.buf.Write(b)
	return nil
}

func (t *Target) Seq(n int) (serial.SeqTarget, error) {
	t.buf.WriteByte('[')
	return &seqTarget{t: t}, nil
}

// Bytes returns the rendered JSON document.
func (t *Target) Bytes() []byte { return t.buf.Bytes() }

type seqTarget struct {
	t *Target
	n int
}

func (s *seqTarget) Byte(b byte) error {
	if s.n > 0 {
		s.t.buf.WriteByte(',')
	}
	s.t.buf.WriteString(strconv.Itoa(int(b)))
	s.n++
	return nil
}

func (s *seqTarget) End() error {
	s.t.buf.WriteByte(']')
	return nil
}

// Source reads one JSON value from a document.
type Source struct {
	data []byte
}

var _ serial.Source = (*Source)(nil)

func NewSource(data []byte) *Source { return &Source{data: data} }

func (s *Source) HumanReadable() bool { return true }

func (s *Source) String(expecting string) (string, error) {
	var v any
	if err := json.Unmarshal(s.data, &v); err != nil {
		return "", serial.New(err.Error())
	}
	str, ok := v.(string)
	if !ok {
		return "", serial.InvalidType(serial.Describe(v), expecting)
	}
	return str, nil
}

func (s *Source) Seq(expecting string) (serial.SeqSource, error) {
	var v any
	if err := json.Unmarshal(s.data, &v); err != nil {
		return nil, serial.New(err.Error())
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, serial.InvalidType(serial.Describe(v), expecting)
	}
	return &seqSource{elems: arr}, nil
}

type seqSource struct {
	elems []any
	pos   int
}

func (s *seqSource) NextByte() (byte, bool, error) {
	if s.pos == len(s.elems) {
		return 0, false, nil
	}
	v := s.elems[s.pos]
	f, ok := v.(float64)
	if !ok || f != math.Trunc(f) || f < 0 || f > 255 {
		return 0, false, serial.InvalidValue(serial.Describe(v), "a byte")
	}
	s.pos++
	return byte(f), true, nil
}
