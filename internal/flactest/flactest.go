// Package flactest assembles FLAC metadata streams for tests.
package flactest

import (
	"bytes"
	"encoding/binary"
)

// Block types used by the builders.
const (
	StreamInfo    = 0
	Padding       = 1
	Application   = 2
	SeekTable     = 3
	VorbisComment = 4
	Picture       = 6
)

// Block encodes a metadata block header followed by body. The header length
// is len(body).
func Block(typ byte, last bool, body []byte) []byte {
	return BlockWithLength(typ, last, uint32(len(body)), body)
}

// BlockWithLength is like Block but declares length instead of len(body).
func BlockWithLength(typ byte, last bool, length uint32, body []byte) []byte {
	h := uint32(typ&0x7F)<<24 | length&0xFFFFFF
	if last {
		h |= 1 << 31
	}
	b := binary.BigEndian.AppendUint32(nil, h)
	return append(b, body...)
}

// Comment encodes a Vorbis comment block body.
func Comment(vendor string, comments ...string) []byte {
	var b bytes.Buffer
	writeString(&b, vendor)
	writeUint32(&b, uint32(len(comments)))
	for _, c := range comments {
		writeString(&b, c)
	}
	return b.Bytes()
}

// Stream prefixes blocks with the fLaC signature.
func Stream(blocks ...[]byte) []byte {
	b := []byte("fLaC")
	for _, blk := range blocks {
		b = append(b, blk...)
	}
	return b
}

// Simple is a stream holding a STREAMINFO block, a padding block and a final
// comment block.
func Simple(vendor string, comments ...string) []byte {
	return Stream(
		Block(StreamInfo, false, make([]byte, 34)),
		Block(Padding, false, make([]byte, 16)),
		Block(VorbisComment, true, Comment(vendor, comments...)),
	)
}

func writeString(b *bytes.Buffer, s string) {
	writeUint32(b, uint32(len(s)))
	b.WriteString(s)
}

func writeUint32(b *bytes.Buffer, n uint32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], n)
	b.Write(buf[:])
}
