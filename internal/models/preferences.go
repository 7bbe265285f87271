// internal/models/preferences.go
package models

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MinFreeTextTokenRunes is the shortest free-text token used for scoring.
const MinFreeTextTokenRunes = 2

// Preferences are the user-declared filter and scoring inputs.
type Preferences struct {
	TempKeys  TempSet `json:"tempKeys"`
	StyleTags TagSet  `json:"styleTags"`
	TasteTags TagSet  `json:"tasteTags"`
	FreeText  string  `json:"freeText"`
}

// Tokens is styleTags ∪ tasteTags, style tags first.
func (p Preferences) Tokens() []string {
	return p.StyleTags.Union(p.TasteTags).Values()
}

// FreeTextTokens splits the free text on whitespace and commas, lowercases
// each piece and keeps pieces of at least two characters.
func (p Preferences) FreeTextTokens() []string {
	return TokenizeFreeText(p.FreeText)
}

// IsEmpty reports whether no filter or scoring input is set.
func (p Preferences) IsEmpty() bool {
	return p.TempKeys.Len() == 0 && p.StyleTags.Len() == 0 && p.TasteTags.Len() == 0 &&
		strings.TrimSpace(p.FreeText) == ""
}

// Clone returns a deep copy.
func (p Preferences) Clone() Preferences {
	return Preferences{
		TempKeys:  p.TempKeys.Clone(),
		StyleTags: p.StyleTags.Clone(),
		TasteTags: p.TasteTags.Clone(),
		FreeText:  p.FreeText,
	}
}

func isFreeTextSeparator(r rune) bool {
	switch r {
	case ',', '、', '，':
		return true
	}
	return unicode.IsSpace(r)
}

// TokenizeFreeText is the tokenizer behind Preferences.FreeTextTokens.
func TokenizeFreeText(s string) []string {
	var out []string
	for _, f := range strings.FieldsFunc(s, isFreeTextSeparator) {
		f = strings.ToLower(f)
		if utf8.RuneCountInString(f) >= MinFreeTextTokenRunes {
			out = append(out, f)
		}
	}
	return out
}

// SplitTagQuery splits a comma separated tag query, trimming pieces and
// dropping empty ones.
func SplitTagQuery(q string) []string {
	var out []string
	for _, part := range strings.FieldsFunc(q, func(r rune) bool { return r == ',' || r == '、' || r == '，' }) {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
