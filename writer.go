package wirebridge

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Calisto-Mathias/wirebridge/serial"
)

// errorTrackingWriter wraps a text sink and latches its first failure.
// A native encoder above only ever sees the opaque ErrSinkFailed; the latched
// error is the side channel through which the real cause is recovered after
// the encoder returns. With the bridgedebug build tag the writer additionally
// asserts the discipline: no write after a failure, and no failure reported
// upward that the sink did not actually produce.
type errorTrackingWriter struct {
	sink io.StringWriter
	err  error
}

func (w *errorTrackingWriter) WriteString(s string) (int, error) {
	w.assertNoError("WriteString")
	n, err := w.sink.WriteString(s)
	if err != nil && w.err == nil {
		w.err = err
	}
	return n, err
}

func (w *errorTrackingWriter) assertNoError(fn string) {
	if debugAsserts && w.err != nil {
		panic(fmt.Sprintf("wirebridge: %s called on errored writer", fn))
	}
}

func (w *errorTrackingWriter) assertWasError(offender any) {
	if debugAsserts && w.err == nil {
		panic(fmt.Sprintf("wirebridge: %T returned an error unexpectedly", offender))
	}
}

// textWriter is the byte-sink façade over a text sink: wire bytes written by
// a native encoder stream through the encoding strategy into the tracked
// sink.
type textWriter struct {
	sink errorTrackingWriter
	enc  ByteEncoder
}

func (w *textWriter) Write(p []byte) (int, error) {
	if err := w.enc.EncodeChunk(&w.sink, p); err != nil {
		w.sink.assertWasError(w.enc)
		return 0, ErrSinkFailed
	}
	return len(p), nil
}

func (w *textWriter) flush() error {
	err := w.enc.Flush(&w.sink)
	if err != nil {
		w.sink.assertWasError(w.enc)
	}
	return err
}

// EncodeText renders v through the encoding strategy into sink, flushing the
// strategy's buffer exactly once at the end. The error returned for a sink
// failure is the sink's own, recovered from the tracking side channel.
func EncodeText(v Encodable, enc Encoding, sink io.StringWriter) error {
	w := &textWriter{sink: errorTrackingWriter{sink: sink}, enc: enc.NewEncoder()}
	if _, err := v.EncodeWire(w); err != nil {
		if debugAsserts && (!errors.Is(err, ErrSinkFailed) || w.sink.err == nil) {
			panic(fmt.Sprintf("wirebridge: %T returned an unexpected error: %v", v, err))
		}
		if w.sink.err != nil {
			return w.sink.err
		}
		return err
	}
	return w.flush()
}

// EncodeToString renders v through the encoding strategy as a single string.
func EncodeToString(v Encodable, enc Encoding) (string, error) {
	var b strings.Builder
	if err := EncodeText(v, enc, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// seqWriter is the byte-sink façade over a structured sequence: every wire
// byte becomes one sequence element. The first element failure aborts the
// write and is kept for the dispatch layer to recover.
type seqWriter struct {
	seq serial.SeqTarget
	err error
}

func (w *seqWriter) Write(p []byte) (int, error) {
	if debugAsserts && w.err != nil {
		panic("wirebridge: Write called on errored sequence writer")
	}
	for i, b := range p {
		if err := w.seq.Byte(b); err != nil {
			w.err = err
			return i, ErrSinkFailed
		}
	}
	return len(p), nil
}
