package categorizer

import (
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Combining Diacritical Marks block. Marks outside it are left alone.
const (
	diacriticFirst = '\u0300'
	diacriticLast  = '\u036f'
)

// Transformers keep internal state, so each caller takes its own chain.
var normalizerPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			cases.Lower(language.Und),
			norm.NFD,
			runes.Remove(runes.Predicate(isDiacritic)),
		)
	},
}

func isDiacritic(r rune) bool {
	return r >= diacriticFirst && r <= diacriticLast
}

// Normalize lower-cases text and strips accents ("Crème" -> "creme").
// Everything else (punctuation, emoji, spacing) is returned as is.
// Invalid byte runs become U+FFFD, which the word matcher treats as a delimiter.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, string(utf8.RuneError))
	}

	tr := normalizerPool.Get().(transform.Transformer)
	out, _, err := transform.String(tr, text)
	tr.Reset()
	normalizerPool.Put(tr)
	if err != nil {
		return text
	}
	return out
}
