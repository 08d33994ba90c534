// Package serial defines the structured-serialization contract consumed by the
// bridge: a Target accepts either one atomic string (human-readable formats) or
// an ordered sequence of byte-sized elements (binary formats); a Source supplies
// the dual operations for decoding. Concrete formats live in the subpackages
// jsonfmt, cborfmt and msgpackfmt.
package serial

// Target is the sink side of a serialization format.
type Target interface {
	// HumanReadable reports whether the format represents values as text.
	// Human-readable targets receive one atomic string; binary targets
	// receive a byte sequence.
	HumanReadable() bool

	// String writes one atomic string value.
	String(s string) error

	// Seq opens an ordered sequence of byte-sized elements. n is a length
	// hint; n < 0 means the length is unknown up front.
	Seq(n int) (SeqTarget, error)
}

// SeqTarget accepts the elements of one open sequence.
type SeqTarget interface {
	// Byte appends one element.
	Byte(b byte) error

	// End closes the sequence. No elements may be appended afterwards.
	End() error
}

// Source is the producer side of a serialization format.
type Source interface {
	// HumanReadable reports whether the format represents values as text.
	HumanReadable() bool

	// String reads one atomic string value. On a type mismatch the source
	// reports an invalid-type Error built from the caller-supplied
	// expectation, e.g. "bytes encoded as a hex string".
	String(expecting string) (string, error)

	// Seq opens an ordered sequence of byte-sized elements, with the same
	// expectation mechanism as String.
	Seq(expecting string) (SeqSource, error)
}

// SeqSource yields the elements of one open sequence, in order.
type SeqSource interface {
	// NextByte returns the next element. ok is false once the sequence is
	// exhausted; err reports a malformed or out-of-range element.
	NextByte() (b byte, ok bool, err error)
}
