package wirebridge

import (
	"io"
	"unicode/utf8"
)

// Encoding selects the text encoding used on the human-readable path. A fresh
// encoder is produced per serialize call and a fresh decoder per deserialize
// call; strategy values themselves are stateless and safe to share.
type Encoding interface {
	// NewEncoder returns a fresh, empty byte-to-text encoder.
	NewEncoder() ByteEncoder

	// NewDecoder returns a lazy text-to-byte decoder over s. Construction
	// fails (with *OddLengthError for hex) when s cannot possibly decode.
	NewDecoder(s string) (ByteDecoder, error)
}

// ByteEncoder transforms wire bytes into text through an internal bounded
// buffer. The sink is passed on every call rather than held, so one encoder
// can outlive short-lived sink wrappers.
type ByteEncoder interface {
	// EncodeChunk appends the text form of p to the internal buffer,
	// flushing to sink as many times as needed along the way. p may be
	// larger than the whole buffer.
	EncodeChunk(sink io.StringWriter, p []byte) error

	// Flush writes any buffered text to sink and clears the buffer. It
	// must be called exactly once at the end of a successful encode, even
	// for zero input bytes, so an empty value still produces (empty)
	// output.
	Flush(sink io.StringWriter) error
}

// ByteDecoder is a forward-only lazy sequence of decoded bytes. It decodes on
// demand, stops permanently at the first malformed input, and latches that
// failure so the bridge can recover it after a native decoder has wrapped or
// replaced it.
type ByteDecoder interface {
	io.Reader
	io.ByteReader

	// Err returns the first decode failure, or nil.
	Err() error
}

const (
	lowerHexDigits = "0123456789abcdef"
	upperHexDigits = "0123456789ABCDEF"

	// hexBufLen is the capacity of the encoder's text buffer. Two digits
	// per byte, so one flush covers hexBufLen/2 input bytes.
	hexBufLen = 512
)

var (
	// HexLower encodes bytes as lower-case hex. Decoding accepts both
	// cases regardless of the strategy's own case.
	HexLower Encoding = hexEncoding{digits: lowerHexDigits}

	// HexUpper encodes bytes as upper-case hex.
	HexUpper Encoding = hexEncoding{digits: upperHexDigits}
)

type hexEncoding struct {
	digits string
}

func (e hexEncoding) NewEncoder() ByteEncoder { return &hexEncoder{digits: e.digits} }

func (e hexEncoding) NewDecoder(s string) (ByteDecoder, error) {
	if len(s)%2 != 0 {
		return nil, &OddLengthError{Length: len(s)}
	}
	return &hexDecoder{s: s}, nil
}

// hexEncoder buffers up to hexBufLen text characters. The buffer only ever
// holds an even number of characters, so a byte's two digits never straddle a
// flush boundary.
type hexEncoder struct {
	buf    [hexBufLen]byte
	n      int
	digits string
}

func (e *hexEncoder) EncodeChunk(sink io.StringWriter, p []byte) error {
	for len(p) > 0 {
		if e.n == len(e.buf) {
			if err := e.Flush(sink); err != nil {
				return err
			}
		}
		free := (len(e.buf) - e.n) / 2
		chunk := p
		if len(chunk) > free {
			chunk = chunk[:free]
		}
		for _, b := range chunk {
			e.buf[e.n] = e.digits[b>>4]
			e.buf[e.n+1] = e.digits[b&0x0f]
			e.n += 2
		}
		p = p[len(chunk):]
	}
	return nil
}

func (e *hexEncoder) Flush(sink io.StringWriter) error {
	if _, err := sink.WriteString(string(e.buf[:e.n])); err != nil {
		return err
	}
	e.n = 0
	return nil
}

// hexDecoder walks the input two digits at a time. After the first failure
// every subsequent read returns the same error; io.EOF is only ever reported
// on clean exhaustion.
type hexDecoder struct {
	s   string
	pos int
	err error
}

func (d *hexDecoder) Err() error { return d.err }

func (d *hexDecoder) ReadByte() (byte, error) {
	if d.err != nil {
		return 0, d.err
	}
	if d.pos == len(d.s) {
		return 0, io.EOF
	}
	hi, ok := hexDigit(d.s[d.pos])
	if !ok {
		return 0, d.fail(d.pos)
	}
	lo, ok := hexDigit(d.s[d.pos+1])
	if !ok {
		return 0, d.fail(d.pos + 1)
	}
	d.pos += 2
	return hi<<4 | lo, nil
}

func (d *hexDecoder) Read(p []byte) (int, error) {
	for i := range p {
		b, err := d.ReadByte()
		if err != nil {
			return i, err
		}
		p[i] = b
	}
	return len(p), nil
}

func (d *hexDecoder) fail(at int) error {
	c, _ := utf8.DecodeRuneInString(d.s[at:])
	d.err = &InvalidCharError{Char: c}
	return d.err
}

func hexDigit(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}
