// Package flac reads the Vorbis comment tags of a FLAC stream.
//
// Only the metadata section is inspected: the stream signature is checked,
// metadata blocks are walked by their headers and skipped until the
// VORBIS_COMMENT block is found, which is then handed to the vorbis package.
// The stream is only ever read forward.
package flac

import (
	"bufio"
	"io"
	"log/slog"

	"github.com/pkg/errors"

	"ktkr.us/pkg/flacparse"
	"ktkr.us/pkg/flacparse/internal/byteio"
	"ktkr.us/pkg/flacparse/vorbis"
)

// Magic is the signature every FLAC stream starts with.
const Magic = "fLaC"

func init() {
	flacparse.RegisterFormat("FLAC", Magic, DecodeTags)
}

// BlockType identifies the body of a metadata block.
type BlockType uint8

const (
	BlockTypeStreamInfo BlockType = iota
	BlockTypePadding
	BlockTypeApplication
	BlockTypeSeekTable
	BlockTypeVorbisComment
	BlockTypeCueSheet
	BlockTypePicture
	BlockTypeInvalid BlockType = 127
)

func (t BlockType) String() string {
	switch t {
	case BlockTypeStreamInfo:
		return "STREAMINFO"
	case BlockTypePadding:
		return "PADDING"
	case BlockTypeApplication:
		return "APPLICATION"
	case BlockTypeSeekTable:
		return "SEEKTABLE"
	case BlockTypeVorbisComment:
		return "VORBIS_COMMENT"
	case BlockTypeCueSheet:
		return "CUESHEET"
	case BlockTypePicture:
		return "PICTURE"
	case BlockTypeInvalid:
		return "INVALID"
	default:
		return "RESERVED"
	}
}

// BlockHeader is the 4 byte header in front of every metadata block.
type BlockHeader struct {
	Last   bool      // no more metadata blocks follow this one
	Type   BlockType // 7 bits
	Length uint32    // body length in bytes, 24 bits
}

func parseBlockHeader(h uint32) BlockHeader {
	return BlockHeader{
		Last:   h>>31 == 1,
		Type:   BlockType((h >> 24) & 0x7F),
		Length: h & 0xFFFFFF,
	}
}

// ValidateSignature consumes 4 bytes from r and reports whether they are the
// FLAC signature. A mismatch is not an error; a short stream is
// flacparse.ErrTruncated.
func ValidateSignature(r io.Reader) (bool, error) {
	var b [len(Magic)]byte
	if err := byteio.NewReader(r).ReadFull(b[:], "stream signature"); err != nil {
		return false, err
	}
	return string(b[:]) == Magic, nil
}

// Parser decodes the tags of FLAC streams. A Parser holds configuration
// only; each call works on the reader it is given and keeps no reference to
// it afterwards.
type Parser struct {
	logger *slog.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger that receives debug records about the blocks
// visited.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// NewParser returns a Parser configured by opts.
func NewParser(opts ...Option) *Parser {
	p := &Parser{logger: discardLogger}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse reads the signature, metadata block headers and Vorbis comments from
// r. r must be positioned at the start of the stream. A stream too short to
// hold the signature is flacparse.ErrNotFLAC. On success r is left
// just past the last comment; r is not buffered by Parse, so pass a
// *bufio.Reader when reading from a file.
func (p *Parser) Parse(r io.Reader) (*vorbis.Comment, error) {
	br := byteio.NewReader(r)

	ok, err := ValidateSignature(br)
	if errors.Is(err, flacparse.ErrTruncated) {
		return nil, errors.Wrap(flacparse.ErrNotFLAC, "stream shorter than signature")
	}
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, flacparse.ErrNotFLAC
	}

	if _, err := p.FindCommentBlock(br); err != nil {
		return nil, err
	}

	c, err := vorbis.ReadComment(br)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("flac: decoded vorbis comments",
		"vendor", c.Vendor,
		"entries", len(c.Entries),
		"offset", br.Offset())
	return c, nil
}

// FindCommentBlock walks metadata blocks until it reads the header of the
// VORBIS_COMMENT block and returns that header, leaving r at the start of the
// block body. r must be positioned just after the signature. Every other block
// is skipped by its declared length. flacparse.ErrNoComment is returned when
// the last block has been skipped.
func (p *Parser) FindCommentBlock(r io.Reader) (BlockHeader, error) {
	br := byteio.NewReader(r)

	for {
		off := br.Offset()
		v, err := br.Uint32BE("metadata block header")
		if err != nil {
			return BlockHeader{}, err
		}
		h := parseBlockHeader(v)

		p.logger.Debug("flac: metadata block",
			"type", h.Type,
			"length", h.Length,
			"last", h.Last,
			"offset", off)

		if h.Type == BlockTypeVorbisComment {
			return h, nil
		}

		if err := br.Skip(int64(h.Length), h.Type.String()+" block"); err != nil {
			return BlockHeader{}, err
		}

		if h.Last {
			return BlockHeader{}, flacparse.ErrNoComment
		}
	}
}

// FindCommentBlock is Parser.FindCommentBlock with the default configuration.
func FindCommentBlock(r io.Reader) (BlockHeader, error) {
	return NewParser().FindCommentBlock(r)
}

// Parse decodes the tags of the FLAC stream r into a format-neutral
// flacparse.Metadata. r is buffered internally, so bytes after the comment
// block may be consumed from it.
func Parse(r io.Reader, opts ...Option) (flacparse.Metadata, error) {
	c, err := NewParser(opts...).Parse(newReader(r))
	if err != nil {
		return flacparse.Metadata{}, err
	}
	return flacparse.Convert(c), nil
}

// DecodeTags decodes the tags of the FLAC stream r. The result is a
// *vorbis.Comment. It is the decoder registered with flacparse.DecodeTags.
func DecodeTags(r io.Reader) (flacparse.MusicData, error) {
	c, err := NewParser().Parse(newReader(r))
	if err != nil {
		return nil, err
	}
	return c, nil
}

func newReader(r io.Reader) *bufio.Reader {
	if br, ok := r.(*bufio.Reader); ok {
		return br
	}
	return bufio.NewReader(r)
}
