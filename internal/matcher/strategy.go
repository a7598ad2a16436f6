package matcher

import (
	"fmt"
	"path"
	"strings"

	"golang.org/x/text/unicode/norm"

	"dubmux/internal/media"
)

// Strategy decides how a video's episode key is derived and which candidate
// files belong to it. Exactly one strategy is applied for a whole run.
type Strategy interface {
	Name() string
	// VideoKey derives the episode key from a video filename. ok is false when
	// no key can be resolved.
	VideoKey(videoName string) (key media.EpisodeKey, ok bool)
	// Matches reports whether fileName is an asset of class for key.
	Matches(key media.EpisodeKey, fileName string, class media.Class) bool
}

const (
	StrategyNumeric = "numeric"
	StrategyPrefix  = "prefix"
)

// ParseStrategy returns the strategy registered under name.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case StrategyNumeric, "":
		return NumericKey{}, nil
	case StrategyPrefix:
		return Prefix{}, nil
	default:
		return nil, fmt.Errorf("unknown matching strategy %q (want %s or %s)", name, StrategyNumeric, StrategyPrefix)
	}
}

// NumericKey keys files by the first run of decimal digits in their name with
// leading zeros stripped. Extension checks are case-insensitive.
type NumericKey struct{}

func (NumericKey) Name() string { return StrategyNumeric }

func (NumericKey) VideoKey(videoName string) (media.EpisodeKey, bool) {
	key := ExtractNumber(videoName)
	return key, key.Resolved()
}

func (NumericKey) Matches(key media.EpisodeKey, fileName string, class media.Class) bool {
	if !key.Resolved() {
		return false
	}
	if !strings.EqualFold(path.Ext(fileName), class.Extension()) {
		return false
	}
	return ExtractNumber(fileName) == key
}

// ExtractNumber returns the first maximal run of ASCII digits in name with
// leading zeros removed. A run made only of zeros yields "0". Names without
// digits yield the unresolved key.
func ExtractNumber(name string) media.EpisodeKey {
	start := strings.IndexFunc(name, isDigit)
	if start < 0 {
		return ""
	}
	end := start
	for end < len(name) && isDigit(rune(name[end])) {
		end++
	}
	digits := strings.TrimLeft(name[start:end], "0")
	if digits == "" {
		digits = "0"
	}
	return media.EpisodeKey(digits)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// Prefix keys files by the video filename without its extension. Candidates
// must start with the key and end with the class extension; both checks are
// case-sensitive.
type Prefix struct{}

func (Prefix) Name() string { return StrategyPrefix }

func (Prefix) VideoKey(videoName string) (media.EpisodeKey, bool) {
	stem := strings.TrimSuffix(videoName, path.Ext(videoName))
	key := media.EpisodeKey(norm.NFC.String(stem))
	return key, key.Resolved()
}

func (Prefix) Matches(key media.EpisodeKey, fileName string, class media.Class) bool {
	if !key.Resolved() {
		return false
	}
	name := norm.NFC.String(fileName)
	if !strings.HasSuffix(name, class.Extension()) {
		return false
	}
	return strings.HasPrefix(name, string(key))
}
