package wirebridge

import (
	"errors"
	"fmt"
	"io"
	"unicode"

	"github.com/Calisto-Mathias/wirebridge/serial"
)

var (
	// ErrMissingData indicates the wire input ended before a complete
	// value could be decoded.
	ErrMissingData = errors.New("wirebridge: missing data (early end of file or slice too short)")

	// ErrNonMinimalCompactSize indicates a compact size that used more
	// bytes than its value requires. Consensus decoding rejects these.
	ErrNonMinimalCompactSize = errors.New("wirebridge: compact size was not encoded minimally")

	// ErrUnconsumed indicates input bytes remained after a structurally
	// complete value was decoded.
	ErrUnconsumed = errors.New("wirebridge: got more bytes than expected")

	// ErrSinkFailed is the only error a bridge writer reports to a native
	// encoder. It carries no cause on purpose: the real, richly-typed
	// failure stays recorded on the writer and is recovered by the bridge
	// after the encoder returns.
	ErrSinkFailed = errors.New("wirebridge: serialization sink failed")
)

// OversizedAllocationError indicates a length prefix requesting more items
// than the decoder is willing to allocate.
type OversizedAllocationError struct {
	Requested uint64
	Max       uint64
}

func (e *OversizedAllocationError) Error() string {
	return fmt.Sprintf("wirebridge: the requested allocation of %d items exceeds maximum of %d", e.Requested, e.Max)
}

// ChecksumError indicates a payload whose trailing checksum does not match
// the checksum computed over the decoded data.
type ChecksumError struct {
	Expected [4]byte
	Actual   []byte
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("wirebridge: invalid checksum: expected %x, actual %x", e.Expected, e.Actual)
}

// UnsupportedFlagError indicates an extension flag byte the decoder does not
// understand.
type UnsupportedFlagError struct {
	Flag byte
}

func (e *UnsupportedFlagError) Error() string {
	return fmt.Sprintf("wirebridge: unsupported flag 0x%02x", e.Flag)
}

// ParseFailedError is a catch-all wire parse failure with a free-form message.
type ParseFailedError string

func (e ParseFailedError) Error() string { return "wirebridge: parse failed: " + string(e) }

// OddLengthError indicates a text decoder could not be constructed because
// the input length cannot possibly decode (hex needs two digits per byte).
type OddLengthError struct {
	Length int
}

func (e *OddLengthError) Error() string {
	return fmt.Sprintf("wirebridge: odd hex string length %d", e.Length)
}

// InvalidCharError indicates text decoding stopped at a character that is not
// part of the encoding's alphabet. Char is the original code point.
type InvalidCharError struct {
	Char rune
}

func (e *InvalidCharError) Error() string {
	return fmt.Sprintf("wirebridge: invalid hex character %q", e.Char)
}

// CheckAllocation guards a decoder's length prefix against oversized
// allocations, returning an OversizedAllocationError when requested > max.
func CheckAllocation(requested, max uint64) error {
	if requested > max {
		return &OversizedAllocationError{Requested: requested, Max: max}
	}
	return nil
}

// Unify converts any failure surfacing from a bridge decode into the
// framework's error type. Already-unified errors pass through unchanged;
// everything in the wire parse taxonomy gets the exact framework wording,
// with inspectable payloads for the checksum and flag cases; anything else is
// carried verbatim as a message.
func Unify(err error) *serial.Error {
	var se *serial.Error
	if errors.As(err, &se) {
		return se
	}

	var (
		odd       *OddLengthError
		badChar   *InvalidCharError
		oversized *OversizedAllocationError
		checksum  *ChecksumError
		flag      *UnsupportedFlagError
		parse     ParseFailedError
	)
	switch {
	case errors.Is(err, ErrUnconsumed):
		return serial.New("got more bytes than expected")
	case errors.Is(err, ErrMissingData), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return serial.New("missing data (early end of file or slice too short)")
	case errors.Is(err, ErrNonMinimalCompactSize):
		return serial.New("compact size was not encoded minimally")
	case errors.As(err, &odd):
		return serial.InvalidLength(odd.Length, "an even number of ASCII-encoded hex digits")
	case errors.As(err, &badChar):
		const expected = "an ASCII-encoded hex digit"
		if badChar.Char <= unicode.MaxASCII {
			return serial.InvalidValue(serial.UnexpectedChar(badChar.Char), expected)
		}
		return serial.InvalidValue(serial.UnexpectedUint(uint64(badChar.Char)), expected)
	case errors.As(err, &oversized):
		return serial.Errorf("the requested allocation of %d items exceeds maximum of %d",
			oversized.Requested, oversized.Max)
	case errors.As(err, &checksum):
		return serial.InvalidValue(
			serial.UnexpectedBytes(checksum.Actual),
			fmt.Sprintf("checksum %02x%02x%02x%02x",
				checksum.Expected[0], checksum.Expected[1], checksum.Expected[2], checksum.Expected[3]),
		)
	case errors.As(err, &flag):
		return serial.InvalidValue(serial.UnexpectedUint(uint64(flag.Flag)), "segwit version 1 flag")
	case errors.As(err, &parse):
		return serial.New(string(parse))
	default:
		return serial.New(err.Error())
	}
}
