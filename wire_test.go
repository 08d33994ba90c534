package wirebridge

import (
	"crypto/sha256"
	"io"
)

// Test fixtures: small types speaking the wire format.

// record is a flag byte, a compact-size-prefixed payload and a 4-byte
// truncated sha256 checksum over the payload. It exercises the whole parse
// failure taxonomy: flag, length, truncation and checksum.
type record struct {
	Data []byte
}

const (
	recordFlag   = 0x01
	maxRecordLen = 4000
)

func (r *record) EncodeWire(w io.Writer) (int, error) {
	total, err := w.Write([]byte{recordFlag})
	if err != nil {
		return total, err
	}
	n, err := WriteCompactSize(w, uint64(len(r.Data)))
	total += n
	if err != nil {
		return total, err
	}
	n, err = w.Write(r.Data)
	total += n
	if err != nil {
		return total, err
	}
	sum := sha256.Sum256(r.Data)
	n, err = w.Write(sum[:4])
	total += n
	return total, err
}

func (r *record) DecodeWire(rd io.Reader) error {
	var flag [1]byte
	if _, err := io.ReadFull(rd, flag[:]); err != nil {
		return missingOnEOF(err)
	}
	if flag[0] != recordFlag {
		return &UnsupportedFlagError{Flag: flag[0]}
	}
	size, err := ReadCompactSize(rd)
	if err != nil {
		return err
	}
	if err := CheckAllocation(size, maxRecordLen); err != nil {
		return err
	}
	data := make([]byte, size)
	if _, err := io.ReadFull(rd, data); err != nil {
		return missingOnEOF(err)
	}
	var sum [4]byte
	if _, err := io.ReadFull(rd, sum[:]); err != nil {
		return missingOnEOF(err)
	}
	want := sha256.Sum256(data)
	var expected [4]byte
	copy(expected[:], want[:4])
	if sum != expected {
		return &ChecksumError{Expected: expected, Actual: sum[:]}
	}
	r.Data = data
	return nil
}

// u32val is a minimal fixed-size wire type: one little-endian uint32.
type u32val uint32

func (v u32val) EncodeWire(w io.Writer) (int, error) {
	return w.Write([]byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)})
}

func (v *u32val) DecodeWire(r io.Reader) error {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return missingOnEOF(err)
	}
	*v = u32val(uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16 | uint32(buf[3])<<24)
	return nil
}

// rawBytes writes its contents verbatim with no framing, for buffer-boundary
// and empty-output tests.
type rawBytes []byte

func (b rawBytes) EncodeWire(w io.Writer) (int, error) { return w.Write(b) }

// chunkedBytes writes the same contents as rawBytes but in fixed-size writes,
// to prove output does not depend on write chunking.
type chunkedBytes struct {
	data  []byte
	chunk int
}

func (c chunkedBytes) EncodeWire(w io.Writer) (int, error) {
	total := 0
	for off := 0; off < len(c.data); off += c.chunk {
		end := off + c.chunk
		if end > len(c.data) {
			end = len(c.data)
		}
		n, err := w.Write(c.data[off:end])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
