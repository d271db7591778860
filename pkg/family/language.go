package family

import (
	"strings"

	"github.com/matzehuels/vamsha/pkg/errors"
)

// Language is a target language for translation and narrative requests.
type Language string

const (
	Hindi     Language = "Hindi"
	Bengali   Language = "Bengali"
	Tamil     Language = "Tamil"
	Telugu    Language = "Telugu"
	Marathi   Language = "Marathi"
	Gujarati  Language = "Gujarati"
	Kannada   Language = "Kannada"
	Malayalam Language = "Malayalam"
	Punjabi   Language = "Punjabi"
	Odia      Language = "Odia"
	Urdu      Language = "Urdu"
	Sanskrit  Language = "Sanskrit"
)

// DefaultLanguage is selected when nothing else is configured.
const DefaultLanguage = Hindi

var languages = []Language{
	Hindi, Bengali, Tamil, Telugu, Marathi, Gujarati,
	Kannada, Malayalam, Punjabi, Odia, Urdu, Sanskrit,
}

var languageCodes = map[Language]string{
	Hindi:     "hi",
	Bengali:   "bn",
	Tamil:     "ta",
	Telugu:    "te",
	Marathi:   "mr",
	Gujarati:  "gu",
	Kannada:   "kn",
	Malayalam: "ml",
	Punjabi:   "pa",
	Odia:      "or",
	Urdu:      "ur",
	Sanskrit:  "sa",
}

// Languages returns the supported languages in selector order.
func Languages() []Language {
	out := make([]Language, len(languages))
	copy(out, languages)
	return out
}

// Code returns the ISO 639-1 code, or "" for an unsupported language.
func (l Language) Code() string {
	return languageCodes[l]
}

// Valid reports whether l is one of the supported languages.
func (l Language) Valid() bool {
	_, ok := languageCodes[l]
	return ok
}

// Next returns the language after l in selector order, wrapping around.
func (l Language) Next() Language {
	for i, lang := range languages {
		if lang == l {
			return languages[(i+1)%len(languages)]
		}
	}
	return DefaultLanguage
}

// ParseLanguage accepts a language name or its code, case-insensitively.
func ParseLanguage(s string) (Language, error) {
	s = strings.TrimSpace(s)
	for _, lang := range languages {
		if strings.EqualFold(s, string(lang)) || strings.EqualFold(s, lang.Code()) {
			return lang, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidLanguage, "unsupported language %q", s)
}
