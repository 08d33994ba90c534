// Package wirebridge lets types that already speak a compact binary wire
// format participate in structured serialization formats. Human-readable
// formats receive the value as one text-encoded string (hex by default);
// binary formats receive it as a sequence of raw bytes, visited one element
// at a time so no intermediate buffer is allocated. Failures from either
// layer cross the boundary without losing their original payloads.
package wirebridge

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Calisto-Mathias/wirebridge/serial"
)

// With bridges Encodable/Decodable values into a serialization format using
// the configured text encoding for human-readable targets. The zero value is
// not usable; construct with an Encoding, e.g. With{Encoding: HexLower}.
type With struct {
	Encoding Encoding
}

// Serialize renders v into t. Human-readable targets get the whole wire image
// as one atomic string; binary targets get an unknown-length sequence of
// bytes. A disagreement between the native encoder's outcome and the sink's
// recorded state marks a broken encoder or sink: under the bridgedebug build
// tag it aborts with a diagnostic naming the offender, otherwise whichever
// real error exists is propagated.
func (x With) Serialize(v Encodable, t serial.Target) error {
	if t.HumanReadable() {
		var b strings.Builder
		if err := EncodeText(v, x.Encoding, &b); err != nil {
			// A Builder sink cannot fail, so only a broken encoder
			// lands here. Best effort outside bridgedebug.
			return err
		}
		return t.String(b.String())
	}

	seq, err := t.Seq(-1)
	if err != nil {
		return err
	}
	w := &seqWriter{seq: seq}
	_, encErr := v.EncodeWire(w)
	switch {
	case encErr == nil && w.err == nil:
		return seq.End()
	case encErr == nil:
		if debugAsserts {
			panic(fmt.Sprintf("wirebridge: %T silently ate a write error: %v", v, w.err))
		}
		return w.err
	case w.err != nil && errors.Is(encErr, ErrSinkFailed):
		return w.err
	default:
		if debugAsserts {
			panic(fmt.Sprintf("wirebridge: %T returned an unexpected error: %v (sink error: %v)", v, encErr, w.err))
		}
		if w.err != nil {
			return w.err
		}
		return encErr
	}
}

// Deserialize decodes v from s, dispatching on the source's format mode the
// same way Serialize does. All input must be consumed: a tail left over after
// a successful native decode is an error, never silently dropped.
func (x With) Deserialize(v Decodable, s serial.Source) error {
	if s.HumanReadable() {
		str, err := s.String("bytes encoded as a hex string")
		if err != nil {
			return err
		}
		dec, err := x.Encoding.NewDecoder(str)
		if err != nil {
			return Unify(err)
		}
		return consume(v, dec)
	}

	seq, err := s.Seq("a sequence of bytes")
	if err != nil {
		return err
	}
	return consume(v, &seqReader{seq: seq})
}

// byteIter is the common shape of the bridge's decode inputs: a lazy byte
// sequence that latches its own first failure so it survives whatever the
// native decoder turns it into.
type byteIter interface {
	io.Reader
	io.ByteReader
	Err() error
}

// consume drives the native decoder over r and classifies the outcome.
// Failures of the byte source itself win over the native decoder's view of
// them; after success, exactly one probe read distinguishes clean exhaustion
// from leftover input.
func consume(v Decodable, r byteIter) error {
	if err := v.DecodeWire(r); err != nil {
		if srcErr := r.Err(); srcErr != nil {
			return Unify(srcErr)
		}
		return Unify(err)
	}
	switch _, err := r.ReadByte(); {
	case err == nil:
		return Unify(ErrUnconsumed)
	case errors.Is(err, io.EOF):
		return nil
	default:
		return Unify(err)
	}
}

// seqReader adapts element-by-element access to a structured sequence into
// the byte stream a native decoder reads from.
type seqReader struct {
	seq serial.SeqSource
	err error
}

func (r *seqReader) Err() error { return r.err }

func (r *seqReader) ReadByte() (byte, error) {
	if r.err != nil {
		return 0, r.err
	}
	b, ok, err := r.seq.NextByte()
	if err != nil {
		r.err = err
		return 0, err
	}
	if !ok {
		return 0, io.EOF
	}
	return b, nil
}

func (r *seqReader) Read(p []byte) (int, error) {
	for i := range p {
		b, err := r.ReadByte()
		if err != nil {
			return i, err
		}
		p[i] = b
	}
	return len(p), nil
}
