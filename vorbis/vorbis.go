// Package vorbis decodes Vorbis comment vectors as found in FLAC
// VORBIS_COMMENT metadata blocks.
//
// A comment vector is a vendor string followed by a list of "KEY=VALUE"
// strings. Every length in it is a 32 bit little-endian integer.
//
// Details on the format can be found at
// https://www.xiph.org/vorbis/doc/v-comment.html
package vorbis

import (
	"io"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"

	"ktkr.us/pkg/flacparse"
	"ktkr.us/pkg/flacparse/internal/byteio"
)

// Upper bound on the capacity reserved from the declared comment count. The
// count is untrusted; anything past this grows as comments are decoded.
const maxPrealloc = 64

// Entry is one user comment in the order it was stored.
type Entry struct {
	Key   string
	Value string
}

// Comment is a decoded comment vector.
//
// Lookups and Map see one value per key: when a key is repeated the last
// value wins. Entries keeps every comment, repeats included.
type Comment struct {
	Vendor  string
	Entries []Entry
	tags    map[string]string
}

var _ flacparse.MusicData = (*Comment)(nil)

// ReadComment decodes a comment vector from r, which must be positioned at
// the vendor length field. Nothing past the last comment is consumed.
func ReadComment(r io.Reader) (*Comment, error) {
	br := byteio.NewReader(r)

	vendor, err := readString(br, "vendor string")
	if err != nil {
		return nil, err
	}

	numComments, err := br.Uint32LE("comment count")
	if err != nil {
		return nil, err
	}

	c := &Comment{
		Vendor:  vendor,
		Entries: make([]Entry, 0, min(numComments, maxPrealloc)),
		tags:    make(map[string]string, min(numComments, maxPrealloc)),
	}

	for i := uint32(0); i < numComments; i++ {
		off := br.Offset()
		comment, err := readString(br, "user comment")
		if err != nil {
			return nil, errors.WithMessagef(err, "comment %d", i)
		}

		// A comment holds exactly one '='; keys may be empty.
		key, val, ok := strings.Cut(comment, "=")
		if !ok || strings.Contains(val, "=") {
			return nil, errors.Wrapf(flacparse.ErrMalformed, "could not split user comment %d at offset %d", i, off)
		}

		c.Entries = append(c.Entries, Entry{key, val})
		c.tags[key] = val
	}

	return c, nil
}

func readString(r *byteio.Reader, what string) (string, error) {
	length, err := r.Uint32LE(what + " length")
	if err != nil {
		return "", err
	}

	off := r.Offset()
	s, err := r.Bytes(length, what)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(s) {
		return "", errors.Wrapf(flacparse.ErrMalformed, "%s at offset %d is not valid UTF-8", what, off)
	}
	return string(s), nil
}

// Get returns the value stored for key.
func (c *Comment) Get(key string) (string, bool) {
	v, ok := c.tags[key]
	return v, ok
}

// GetAll returns every value stored for key, in file order.
func (c *Comment) GetAll(key string) []string {
	var vals []string
	for _, e := range c.Entries {
		if e.Key == key {
			vals = append(vals, e.Value)
		}
	}
	return vals
}

func (c *Comment) Title() (string, bool)       { return c.Get(flacparse.KeyTitle) }
func (c *Comment) Artist() (string, bool)      { return c.Get(flacparse.KeyArtist) }
func (c *Comment) Album() (string, bool)       { return c.Get(flacparse.KeyAlbum) }
func (c *Comment) TrackNumber() (string, bool) { return c.Get(flacparse.KeyTrackNumber) }

func (c *Comment) Map() map[string]string {
	return flacparse.CloneTags(c.tags)
}
