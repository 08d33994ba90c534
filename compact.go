package wirebridge

import (
	"encoding/binary"
	"errors"
	"io"

	"golang.org/x/exp/constraints"
)

// Compact sizes are the wire format's variable-length unsigned integers:
// values below 0xfd are one byte, larger values carry a marker byte followed
// by a little-endian 2, 4 or 8 byte payload. Decoding rejects encodings that
// use more bytes than the value requires.

// CompactSizeLen returns the encoded length of n in bytes.
func CompactSizeLen[T constraints.Unsigned](n T) int {
	switch v := uint64(n); {
	case v < 0xfd:
		return 1
	case v <= 0xffff:
		return 3
	case v <= 0xffffffff:
		return 5
	default:
		return 9
	}
}

// WriteCompactSize writes n as a minimally encoded compact size, returning
// the number of bytes written.
func WriteCompactSize(w io.Writer, n uint64) (int, error) {
	var buf [9]byte
	switch {
	case n < 0xfd:
		buf[0] = byte(n)
	case n <= 0xffff:
		buf[0] = 0xfd
		binary.LittleEndian.PutUint16(buf[1:3], uint16(n))
	case n <= 0xffffffff:
		buf[0] = 0xfe
		binary.LittleEndian.PutUint32(buf[1:5], uint32(n))
	default:
		buf[0] = 0xff
		binary.LittleEndian.PutUint64(buf[1:9], n)
	}
	return w.Write(buf[:CompactSizeLen(n)])
}

// ReadCompactSize reads a compact size, failing with ErrMissingData on
// truncated input and ErrNonMinimalCompactSize on a non-minimal encoding.
func ReadCompactSize(r io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:1]); err != nil {
		return 0, missingOnEOF(err)
	}
	switch marker := buf[0]; marker {
	case 0xfd:
		if _, err := io.ReadFull(r, buf[:2]); err != nil {
			return 0, missingOnEOF(err)
		}
		n := uint64(binary.LittleEndian.Uint16(buf[:2]))
		if n < 0xfd {
			return 0, ErrNonMinimalCompactSize
		}
		return n, nil
	case 0xfe:
		if _, err := io.ReadFull(r, buf[:4]); err != nil {
			return 0, missingOnEOF(err)
		}
		n := uint64(binary.LittleEndian.Uint32(buf[:4]))
		if n <= 0xffff {
			return 0, ErrNonMinimalCompactSize
		}
		return n, nil
	case 0xff:
		if _, err := io.ReadFull(r, buf[:8]); err != nil {
			return 0, missingOnEOF(err)
		}
		n := binary.LittleEndian.Uint64(buf[:8])
		if n <= 0xffffffff {
			return 0, ErrNonMinimalCompactSize
		}
		return n, nil
	default:
		return uint64(marker), nil
	}
}

func missingOnEOF(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrMissingData
	}
	return err
}
