package flacparse

// Well-known tag keys. Lookups against them are exact and case-sensitive.
const (
	KeyTitle       = "TITLE"
	KeyArtist      = "ARTIST"
	KeyAlbum       = "ALBUM"
	KeyTrackNumber = "TRACKNUMBER"
)

// MusicData allows different metadata formats to be accessed through the same
// methods. The lookups report false when the tag is absent.
type MusicData interface {
	Title() (string, bool)
	Artist() (string, bool)
	Album() (string, bool)
	// TrackNumber is a string because many tag formats allow values such as
	// "A3" (side A, track 3).
	TrackNumber() (string, bool)
	// Map returns every tag. The returned map belongs to the caller.
	Map() map[string]string
}

// Metadata is the format-neutral variant of MusicData. It keeps only the tag
// mapping; format specific data such as a Vorbis vendor string is dropped.
// The zero value has no tags.
type Metadata struct {
	tags map[string]string
}

// New returns Metadata holding a copy of tags.
func New(tags map[string]string) Metadata {
	return Metadata{tags: CloneTags(tags)}
}

// Convert builds a format-neutral Metadata from any MusicData.
func Convert(m MusicData) Metadata {
	return Metadata{tags: m.Map()}
}

func (m Metadata) Title() (string, bool)       { return m.Get(KeyTitle) }
func (m Metadata) Artist() (string, bool)      { return m.Get(KeyArtist) }
func (m Metadata) Album() (string, bool)       { return m.Get(KeyAlbum) }
func (m Metadata) TrackNumber() (string, bool) { return m.Get(KeyTrackNumber) }

// Get looks up an arbitrary tag.
func (m Metadata) Get(key string) (string, bool) {
	v, ok := m.tags[key]
	return v, ok
}

// Len returns the number of distinct tag keys.
func (m Metadata) Len() int {
	return len(m.tags)
}

func (m Metadata) Map() map[string]string {
	return CloneTags(m.tags)
}

// CloneTags copies a tag mapping. It never returns nil.
func CloneTags(tags map[string]string) map[string]string {
	out := make(map[string]string, len(tags))
	for k, v := range tags {
		out[k] = v
	}
	return out
}
