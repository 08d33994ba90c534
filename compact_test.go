package wirebridge

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompactSizeRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 0xfc, 0xfd, 0xffff, 0x10000, 0xffffffff, 0x100000000, 1<<64 - 1}
	for _, v := range values {
		var buf bytes.Buffer
		n, err := WriteCompactSize(&buf, v)
		require.NoError(t, err)
		assert.Equal(t, CompactSizeLen(v), n)
		assert.Equal(t, CompactSizeLen(v), buf.Len())

		got, err := ReadCompactSize(&buf)
		require.NoErrorf(t, err, "value %d", v)
		assert.Equalf(t, v, got, "value %d", v)
		assert.Zero(t, buf.Len())
	}
}

func TestCompactSizeLen(t *testing.T) {
	assert.Equal(t, 1, CompactSizeLen(uint8(0xfc)))
	assert.Equal(t, 3, CompactSizeLen(uint16(0xfd)))
	assert.Equal(t, 5, CompactSizeLen(uint32(0x10000)))
	assert.Equal(t, 9, CompactSizeLen(uint64(0x100000000)))
}

func TestCompactSizeRejectsNonMinimal(t *testing.T) {
	nonMinimal := [][]byte{
		{0xfd, 0x01, 0x00},                                     // 1 as uint16
		{0xfd, 0xfc, 0x00},                                     // 0xfc as uint16
		{0xfe, 0xff, 0xff, 0x00, 0x00},                         // 0xffff as uint32
		{0xff, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00}, // uint32 range as uint64
	}
	for _, in := range nonMinimal {
		_, err := ReadCompactSize(bytes.NewReader(in))
		assert.ErrorIsf(t, err, ErrNonMinimalCompactSize, "input %x", in)
	}
}

func TestCompactSizeTruncated(t *testing.T) {
	truncated := [][]byte{
		{},
		{0xfd},
		{0xfd, 0x01},
		{0xfe, 0x01, 0x02, 0x03},
		{0xff, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07},
	}
	for _, in := range truncated {
		_, err := ReadCompactSize(bytes.NewReader(in))
		assert.ErrorIsf(t, err, ErrMissingData, "input %x", in)
	}
}
