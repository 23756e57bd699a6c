package categorizer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

const (
	variationSelector16 = '\ufe0f'
	combiningKeycap     = '\u20e3'
)

// EmojiTable decides whether a grapheme cluster is an emoji sequence.
// Emoji sequences are treated as a single delimiter when tokenizing.
type EmojiTable interface {
	IsEmoji(cluster string) bool
}

// EmojiTableFunc adapts a plain function to EmojiTable.
type EmojiTableFunc func(cluster string) bool

func (f EmojiTableFunc) IsEmoji(cluster string) bool { return f(cluster) }

// emojiRunes covers the pictographic blocks plus the joiners and modifiers
// that glue multi-codepoint emoji together. Regional indicators, skin tones
// and most pictographs live in the 1F000 plane range.
var emojiRunes = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x200D, Hi: 0x200D, Stride: 1}, // zero width joiner
		{Lo: 0x20E3, Hi: 0x20E3, Stride: 1}, // combining enclosing keycap
		{Lo: 0x2300, Hi: 0x23FF, Stride: 1},
		{Lo: 0x2600, Hi: 0x27BF, Stride: 1},
		{Lo: 0x2B00, Hi: 0x2BFF, Stride: 1},
	},
	R32: []unicode.Range32{
		{Lo: 0x1F000, Hi: 0x1FAFF, Stride: 1},
		{Lo: 0xE0020, Hi: 0xE007F, Stride: 1}, // tag sequences (subdivision flags)
	},
}

// DefaultEmojiTable classifies clusters produced by uniseg's grapheme
// segmentation, which tracks the current Unicode emoji sequence rules.
var DefaultEmojiTable EmojiTable = EmojiTableFunc(isEmojiSequence)

func isEmojiSequence(cluster string) bool {
	if len(cluster) == 1 {
		return false
	}
	if isKeycapSequence(cluster) {
		return true
	}
	for _, r := range cluster {
		if unicode.Is(emojiRunes, r) {
			return true
		}
	}
	return false
}

func isKeycapBase(r rune) bool {
	return r == '#' || r == '*' || (r >= '0' && r <= '9')
}

// isKeycapSequence matches "5️⃣" and "5⃣": a keycap base followed by the
// presentation selector or the enclosing keycap.
func isKeycapSequence(cluster string) bool {
	first, size := utf8.DecodeRuneInString(cluster)
	if !isKeycapBase(first) {
		return false
	}
	rest := cluster[size:]
	return strings.ContainsRune(rest, combiningKeycap) || strings.ContainsRune(rest, variationSelector16)
}

func isTokenRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}

// Matcher tests for whole-word occurrences in free text.
type Matcher struct {
	emoji EmojiTable
}

// NewMatcher returns a Matcher using the given emoji table, or
// DefaultEmojiTable when table is nil.
func NewMatcher(table EmojiTable) *Matcher {
	if table == nil {
		table = DefaultEmojiTable
	}
	return &Matcher{emoji: table}
}

var defaultMatcher = NewMatcher(nil)

// ContainsWord reports whether word appears in text as a whole token,
// ignoring case and accents. See Matcher.ContainsWord.
func ContainsWord(text, word string) bool {
	return defaultMatcher.ContainsWord(text, word)
}

// Tokenize splits text into normalized [a-z0-9] tokens using the default matcher.
func Tokenize(text string) []string {
	return defaultMatcher.Tokenize(text)
}

// ContainsWord normalizes both arguments and reports whether one of the
// tokens of text equals word. Substrings never match: "ban" is not found in
// "bananas". A word that still holds characters outside [a-z0-9] after
// normalization can never match.
func (m *Matcher) ContainsWord(text, word string) bool {
	target := Normalize(word)
	if target == "" {
		return false
	}
	found := false
	m.eachToken(Normalize(text), func(tok string) bool {
		if tok == target {
			found = true
			return false
		}
		return true
	})
	return found
}

// Tokenize returns the non-empty tokens of the normalized text in order.
func (m *Matcher) Tokenize(text string) []string {
	var tokens []string
	m.eachToken(Normalize(text), func(tok string) bool {
		tokens = append(tokens, tok)
		return true
	})
	return tokens
}

// isDelimiterCluster reports whether a whole cluster ends the current token.
// Joiners and modifiers attach to the letter before them ("e" + ZWJ), so a
// cluster led by a token rune is only a delimiter when it is a keycap.
func (m *Matcher) isDelimiterCluster(cluster string) bool {
	first, _ := utf8.DecodeRuneInString(cluster)
	if isTokenRune(first) && !isKeycapSequence(cluster) {
		return false
	}
	return m.emoji.IsEmoji(cluster)
}

// eachToken walks grapheme clusters of already-normalized text. Emoji
// clusters end the current token as a unit; inside any other cluster each
// rune outside [a-z0-9] ends it. yield returning false stops the walk.
func (m *Matcher) eachToken(text string, yield func(string) bool) {
	start := -1
	flush := func(end int) bool {
		if start < 0 {
			return true
		}
		tok := text[start:end]
		start = -1
		return yield(tok)
	}

	pos := 0
	rest := text
	state := -1
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)

		if m.isDelimiterCluster(cluster) {
			if !flush(pos) {
				return
			}
			pos += len(cluster)
			continue
		}

		for i, r := range cluster {
			if isTokenRune(r) {
				if start < 0 {
					start = pos + i
				}
				continue
			}
			if !flush(pos + i) {
				return
			}
		}
		pos += len(cluster)
	}
	flush(len(text))
}
