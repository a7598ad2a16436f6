package language

import (
	"fmt"
	"strings"
)

type entry struct {
	code2   string   // ISO 639-1
	code3   string   // ISO 639-2/B as written into Matroska tags
	alt3    string   // ISO 639-2/T where it differs
	display string
	words   []string // English and native names
}

var languages = []entry{
	{"ja", "jpn", "", "Japanese", []string{"japanese", "日本語"}},
	{"ru", "rus", "", "Russian", []string{"russian", "русский"}},
	{"uk", "ukr", "", "Ukrainian", []string{"ukrainian", "українська"}},
	{"en", "eng", "", "English", []string{"english"}},
	{"zh", "chi", "zho", "Chinese", []string{"chinese"}},
	{"ko", "kor", "", "Korean", []string{"korean"}},
	{"de", "ger", "deu", "German", []string{"german"}},
	{"fr", "fre", "fra", "French", []string{"french"}},
	{"es", "spa", "", "Spanish", []string{"spanish"}},
	{"it", "ita", "", "Italian", []string{"italian"}},
	{"pt", "por", "", "Portuguese", []string{"portuguese"}},
	{"pl", "pol", "", "Polish", []string{"polish"}},
	{"be", "bel", "", "Belarusian", []string{"belarusian"}},
	{"kk", "kaz", "", "Kazakh", []string{"kazakh"}},
}

var index = buildIndex()

func buildIndex() map[string]*entry {
	idx := make(map[string]*entry, len(languages)*4)
	for i := range languages {
		e := &languages[i]
		idx[e.code2] = e
		idx[e.code3] = e
		if e.alt3 != "" {
			idx[e.alt3] = e
		}
		for _, w := range e.words {
			idx[w] = e
		}
	}
	return idx
}

func lookup(code string) *entry {
	return index[strings.ToLower(strings.TrimSpace(code))]
}

// ToISO3 converts a recognized language code or name to the ISO 639-2 code
// written into stream metadata. Unknown 3-letter codes pass through, anything
// else becomes "und".
func ToISO3(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return "und"
	}
	if e := lookup(code); e != nil {
		return e.code3
	}
	if len(code) == 3 {
		return code
	}
	return "und"
}

// Normalize is the strict form of ToISO3 used for configuration values: it
// rejects input that is neither a known language nor a 3-letter code.
func Normalize(code string) (string, error) {
	iso := ToISO3(code)
	if iso == "und" && strings.ToLower(strings.TrimSpace(code)) != "und" {
		return "", fmt.Errorf("unrecognized language %q", code)
	}
	return iso, nil
}

// DisplayName returns a human-readable language name for any recognized code.
// Returns "Unknown" for empty input, or the uppercased code for unrecognized input.
func DisplayName(code string) string {
	if strings.TrimSpace(code) == "" {
		return "Unknown"
	}
	if e := lookup(code); e != nil {
		return e.display
	}
	return strings.ToUpper(strings.TrimSpace(code))
}
