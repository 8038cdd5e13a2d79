package byteio

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ktkr.us/pkg/flacparse"
)

func TestUint32ByteOrder(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0x01, 0x02, 0x03, 0x04, 0x01, 0x02, 0x03, 0x04}))

	le, err := r.Uint32LE("le")
	require.NoError(t, err)
	assert.Equal(t, uint32(0x04030201), le)

	be, err := r.Uint32BE("be")
	require.NoError(t, err)
	assert.Equal(t, uint32(0x01020304), be)

	assert.Equal(t, int64(8), r.Offset())
}

func TestNewReaderReusesReader(t *testing.T) {
	r := NewReader(strings.NewReader("abcd"))
	require.NoError(t, r.Skip(2, "head"))

	again := NewReader(r)
	assert.Same(t, r, again)
	assert.Equal(t, int64(2), again.Offset())
}

func TestBytes(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"empty", 0},
		{"small", 10},
		{"large", directReadLimit + 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := bytes.Repeat([]byte{'x'}, tt.size)
			r := NewReader(iotest.OneByteReader(bytes.NewReader(data)))

			b, err := r.Bytes(uint32(tt.size), "payload")
			require.NoError(t, err)
			assert.Len(t, b, tt.size)
			assert.Equal(t, int64(tt.size), r.Offset())
		})
	}
}

func TestBytesTruncated(t *testing.T) {
	tests := []struct {
		name string
		have int
		want uint32
	}{
		{"small", 3, 10},
		{"large", 3, 1 << 31},
		{"nothing", 0, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(bytes.NewReader(make([]byte, tt.have)))
			_, err := r.Bytes(tt.want, "payload")
			require.Error(t, err)
			assert.ErrorIs(t, err, flacparse.ErrTruncated)
			assert.Contains(t, err.Error(), "payload")
		})
	}
}

func TestSkip(t *testing.T) {
	data := []byte("0123456789")

	t.Run("plain reader", func(t *testing.T) {
		r := NewReader(bytes.NewReader(data))
		require.NoError(t, r.Skip(4, "block"))
		b, err := r.Bytes(2, "rest")
		require.NoError(t, err)
		assert.Equal(t, "45", string(b))
	})

	t.Run("bufio reader", func(t *testing.T) {
		r := NewReader(bufio.NewReader(bytes.NewReader(data)))
		require.NoError(t, r.Skip(4, "block"))
		assert.Equal(t, int64(4), r.Offset())
		b, err := r.Bytes(2, "rest")
		require.NoError(t, err)
		assert.Equal(t, "45", string(b))
	})

	t.Run("past end", func(t *testing.T) {
		r := NewReader(bufio.NewReader(bytes.NewReader(data)))
		err := r.Skip(20, "block")
		assert.ErrorIs(t, err, flacparse.ErrTruncated)
		assert.Equal(t, int64(10), r.Offset())
	})
}

func TestWrapKeepsOtherErrors(t *testing.T) {
	boom := errors.New("boom")
	r := NewReader(iotest.ErrReader(boom))

	_, err := r.Uint32LE("length")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, flacparse.ErrTruncated)
	assert.Equal(t, flacparse.KindIO, flacparse.KindOf(err))
	assert.Contains(t, err.Error(), "read length at offset 0")
}
