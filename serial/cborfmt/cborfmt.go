// Package cborfmt implements the serial contract over CBOR using
// fxamacker/cbor. CBOR is a binary format: bridged values stream through an
// indefinite-length array, one byte element at a time.
package cborfmt

import (
	"io"

	"github.com/fxamacker/cbor/v2"

	"github.com/Calisto-Mathias/wirebridge/serial"
)

// Target writes CBOR to an underlying writer. The zero value is not ready to
// use; construct with NewTarget or MustTarget.
type Target struct {
	enc *cbor.Encoder
}

var _ serial.Target = (*Target)(nil)

// NewTarget builds a Target using RFC 8949 preferred serialization.
// Deterministic encoding is deliberately not used: it forbids the
// indefinite-length arrays the sequence path streams through.
func NewTarget(w io.Writer) (*Target, error) {
	em, err := cbor.PreferredUnsortedEncOptions().EncMode()
	if err != nil {
		return nil, err
	}
	return &Target{enc: em.NewEncoder(w)}, nil
}

// MustTarget is like NewTarget but panics on error. Handy for tests and
// package-level values.
func MustTarget(w io.Writer) *Target {
	t, err := NewTarget(w)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Target) HumanReadable() bool { return false }

func (t *Target) String(s string) error { return t.enc.Encode(s) }

func (t *Target) Seq(n int) (serial.SeqTarget, error) {
	// Indefinite-length arrays cover both known and unknown n without
	// buffering elements.
	if err := t.enc.StartIndefiniteArray(); err != nil {
		return nil, err
	}
	return seqTarget{enc: t.enc}, nil
}

type seqTarget struct {
	enc *cbor.Encoder
}

func (s seqTarget) Byte(b byte) error { return s.enc.Encode(b) }

func (s seqTarget) End() error { return s.enc.EndIndefinite() }

// Source reads one CBOR value from a document.
type Source struct {
	dm   cbor.DecMode
	data []byte
}

var _ serial.Source = (*Source)(nil)

func NewSource(data []byte) (*Source, error) {
	dm, err := cbor.DecOptions{}.DecMode()
	if err != nil {
		return nil, err
	}
	return &Source{dm: dm, data: data}, nil
}

// MustSource is like NewSource but panics on error.
func MustSource(data []byte) *Source {
	s, err := NewSource(data)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Source) HumanReadable() bool { return false }

func (s *Source) String(expecting string) (string, error) {
	var v any
	if err := s.dm.Unmarshal(s.data, &v); err != nil {
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
	if err := s.dm.Unmarshal(s.data, &v); err != nil {
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
	u, ok := s.elems[s.pos].(uint64)
	if !ok || u > 255 {
		return 0, false, serial.InvalidValue(serial.Describe(s.elems[s.pos]), "a byte")
	}
	s.pos++
	return byte(u), true, nil
}
