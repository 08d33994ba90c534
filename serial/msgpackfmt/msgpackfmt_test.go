package msgpackfmt

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/Calisto-Mathias/wirebridge/serial"
)

func drain(t *testing.T, seq serial.SeqSource) []byte {
	t.Helper()
	var got []byte
	for {
		b, ok, err := seq.NextByte()
		require.NoError(t, err)
		if !ok {
			return got
		}
		got = append(got, b)
	}
}

func TestSeqRoundTripUnknownLength(t *testing.T) {
	var buf bytes.Buffer
	target := NewTarget(&buf)

	seq, err := target.Seq(-1)
	require.NoError(t, err)
	want := []byte{0x00, 0x7f, 0x80, 0xff}
	for _, b := range want {
		require.NoError(t, seq.Byte(b))
	}
	require.NoError(t, seq.End())

	src, err := NewSource(&buf).Seq("a sequence of bytes")
	require.NoError(t, err)
	assert.Equal(t, want, drain(t, src))
}

func TestSeqRoundTripKnownLength(t *testing.T) {
	var buf bytes.Buffer
	target := NewTarget(&buf)

	want := []byte{1, 2, 3}
	seq, err := target.Seq(len(want))
	require.NoError(t, err)
	for _, b := range want {
		require.NoError(t, seq.Byte(b))
	}
	require.NoError(t, seq.End())

	src, err := NewSource(&buf).Seq("a sequence of bytes")
	require.NoError(t, err)
	assert.Equal(t, want, drain(t, src))
}

// The buffered (unknown-length) and direct (known-length) paths must produce
// the same document.
func TestSeqLengthModesAgree(t *testing.T) {
	data := []byte{9, 8, 7, 6, 5}

	render := func(n int) []byte {
		var buf bytes.Buffer
		seq, err := NewTarget(&buf).Seq(n)
		require.NoError(t, err)
		for _, b := range data {
			require.NoError(t, seq.Byte(b))
		}
		require.NoError(t, seq.End())
		return buf.Bytes()
	}

	assert.Equal(t, render(len(data)), render(-1))
}

func TestStringRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTarget(&buf).String("cafebabe"))

	got, err := NewSource(&buf).String("bytes encoded as a hex string")
	require.NoError(t, err)
	assert.Equal(t, "cafebabe", got)
}

func TestSourceTypeMismatch(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, msgpack.NewEncoder(&buf).EncodeInt(42))

	_, err := NewSource(&buf).String("bytes encoded as a hex string")
	var se *serial.Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "invalid type: integer, expected bytes encoded as a hex string", se.Msg)
}

func TestSourceSeqTypeMismatch(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTarget(&buf).String("oops"))

	_, err := NewSource(&buf).Seq("a sequence of bytes")
	var se *serial.Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "invalid type: string, expected a sequence of bytes", se.Msg)
}
