package flacparse

import (
	"github.com/pkg/errors"
)

var (
	// ErrFormat is returned by DecodeTags when no registered format
	// recognises the stream.
	ErrFormat = errors.New("flacparse: unknown format")

	// ErrNotFLAC means the stream does not start with the fLaC signature.
	ErrNotFLAC = errors.New("flacparse: not a FLAC stream")

	// ErrNoComment means the last metadata block was reached without
	// finding a Vorbis comment block.
	ErrNoComment = errors.New("flacparse: no vorbis comment block")

	// ErrMalformed means the comment data could not be decoded: a comment
	// that does not hold exactly one '=', or text that is not valid UTF-8.
	ErrMalformed = errors.New("flacparse: malformed comment data")

	// ErrTruncated means the stream ended before a declared length was
	// satisfied.
	ErrTruncated = errors.New("flacparse: unexpected end of stream")
)

// Kind classifies a parse failure.
type Kind int

const (
	KindNone Kind = iota
	KindFormat
	KindNotFLAC
	KindNoComment
	KindMalformed
	KindTruncated
	// KindIO is any other failure of the underlying reader.
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindFormat:
		return "unknown format"
	case KindNotFLAC:
		return "not flac"
	case KindNoComment:
		return "no comment block"
	case KindMalformed:
		return "malformed data"
	case KindTruncated:
		return "truncated"
	case KindIO:
		return "io"
	default:
		return "<unknown kind>"
	}
}

// KindOf reports which Kind err belongs to. A nil error is KindNone.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrFormat):
		return KindFormat
	case errors.Is(err, ErrNotFLAC):
		return KindNotFLAC
	case errors.Is(err, ErrNoComment):
		return KindNoComment
	case errors.Is(err, ErrMalformed):
		return KindMalformed
	case errors.Is(err, ErrTruncated):
		return KindTruncated
	default:
		return KindIO
	}
}
