// Package flacparse implements routines for reading textual tags from audio
// files.
//
// Currently, this package only aims to provide functionality for Vorbis
// comments stored in FLAC streams. Format packages register themselves with
// RegisterFormat from an init function, so a program that wants DecodeTags to
// recognise FLAC imports the flac package for its side effect:
//
//	import _ "ktkr.us/pkg/flacparse/flac"
package flacparse

import (
	"bufio"
	"io"
)

var formats []format

type format struct {
	name       string
	magic      string
	decodeTags func(io.Reader) (MusicData, error)
}

// RegisterFormat lets the package know how to decode the tags of a file
// format identified by a magic number. Magic may contain "?" wildcards. The
// decode function is handed a reader positioned at the very first byte of the
// stream, magic included.
func RegisterFormat(name, magic string, decodeTags func(io.Reader) (MusicData, error)) {
	formats = append(formats, format{name, magic, decodeTags})
}

// DecodeTags identifies the format of r by its magic number and decodes its
// tags with the registered decoder. It returns the name the format was
// registered under. ErrFormat is returned if no format matched.
func DecodeTags(r io.Reader) (MusicData, string, error) {
	rr, ok := r.(*bufio.Reader)
	if !ok {
		rr = bufio.NewReader(r)
	}
	f := sniff(rr)
	if f.decodeTags == nil {
		return nil, "", ErrFormat
	}
	m, err := f.decodeTags(rr)
	if err != nil {
		return nil, f.name, err
	}
	return m, f.name, nil
}

// match reports whether b fits the magic pattern of a registered format,
// where '?' in magic matches any byte.
func match(magic string, b []byte) bool {
	if len(magic) != len(b) {
		return false
	}
	for i, c := range b {
		if magic[i] != c && magic[i] != '?' {
			return false
		}
	}
	return true
}

// sniff peeks at r and returns the first registered format whose magic
// matches. The zero format means nothing matched.
func sniff(r *bufio.Reader) format {
	for _, f := range formats {
		b, err := r.Peek(len(f.magic))
		if err == nil && match(f.magic, b) {
			return f
		}
	}
	return format{}
}
