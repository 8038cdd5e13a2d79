// Package byteio provides a forward-only byte cursor for the metadata
// decoders. It never buffers ahead of what a decoder asks for, so the
// underlying reader is left exactly after the last field consumed.
package byteio

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"

	"ktkr.us/pkg/flacparse"
)

// Lengths up to this size are read into a buffer allocated up front. Longer
// declared lengths are read incrementally so a bogus length in a short stream
// fails with ErrTruncated instead of a huge allocation.
const directReadLimit = 64 << 10

// Reader counts the bytes consumed from an io.Reader.
type Reader struct {
	r   io.Reader
	off int64
}

// NewReader returns a Reader over r. If r is already a *Reader it is returned
// as is, keeping its offset.
func NewReader(r io.Reader) *Reader {
	if br, ok := r.(*Reader); ok {
		return br
	}
	return &Reader{r: r}
}

// Read implements io.Reader.
func (r *Reader) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	r.off += int64(n)
	return n, err
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int64 {
	return r.off
}

// ReadFull fills p. what names the field for error messages.
func (r *Reader) ReadFull(p []byte, what string) error {
	off := r.off
	if _, err := io.ReadFull(r, p); err != nil {
		return Wrap(err, what, off)
	}
	return nil
}

// Uint32LE reads a 4 byte little-endian integer.
func (r *Reader) Uint32LE(what string) (uint32, error) {
	var b [4]byte
	if err := r.ReadFull(b[:], what); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

// Uint32BE reads a 4 byte big-endian integer.
func (r *Reader) Uint32BE(what string) (uint32, error) {
	var b [4]byte
	if err := r.ReadFull(b[:], what); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b[:]), nil
}

// Bytes reads exactly n bytes.
func (r *Reader) Bytes(n uint32, what string) ([]byte, error) {
	if n <= directReadLimit {
		b := make([]byte, n)
		if err := r.ReadFull(b, what); err != nil {
			return nil, err
		}
		return b, nil
	}

	off := r.off
	var buf bytes.Buffer
	if _, err := io.CopyN(&buf, r, int64(n)); err != nil {
		return nil, Wrap(err, what, off)
	}
	return buf.Bytes(), nil
}

// Skip discards exactly n bytes.
func (r *Reader) Skip(n int64, what string) error {
	off := r.off
	if d, ok := r.r.(interface{ Discard(int) (int, error) }); ok {
		m, err := d.Discard(int(n))
		r.off += int64(m)
		if err != nil {
			return Wrap(err, what, off)
		}
		return nil
	}
	if _, err := io.CopyN(io.Discard, r, n); err != nil {
		return Wrap(err, what, off)
	}
	return nil
}

// Wrap annotates a read error with the field being read and the offset it
// started at. Running out of input becomes flacparse.ErrTruncated.
func Wrap(err error, what string, off int64) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return errors.Wrapf(flacparse.ErrTruncated, "read %s at offset %d", what, off)
	}
	return errors.Wrapf(err, "read %s at offset %d", what, off)
}
