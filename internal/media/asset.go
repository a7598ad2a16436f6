package media

import "path/filepath"

// Class identifies what role a file plays in a mux.
type Class int

const (
	Video Class = iota
	Audio
	Subtitle
)

// String returns the lowercase class name used in logs.
func (c Class) String() string {
	switch c {
	case Video:
		return "video"
	case Audio:
		return "audio"
	case Subtitle:
		return "subtitle"
	default:
		return "unknown"
	}
}

// Extension returns the file extension expected for the class.
func (c Class) Extension() string {
	switch c {
	case Video:
		return ".mkv"
	case Audio:
		return ".mka"
	case Subtitle:
		return ".ass"
	default:
		return ""
	}
}

// EpisodeKey associates a video with its auxiliary assets. The zero value means
// the key could not be resolved.
type EpisodeKey string

// Resolved reports whether the key carries a value.
func (k EpisodeKey) Resolved() bool {
	return k != ""
}

// Asset is a matched file together with its provenance group.
type Asset struct {
	Path  string
	Class Class
	Key   EpisodeKey
	// Group is the team or provider directory the asset came from. It is only
	// used as display and metadata text.
	Group string
}

// Name returns the base filename of the asset.
func (a Asset) Name() string {
	return filepath.Base(a.Path)
}
