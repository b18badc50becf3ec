package rain

import (
	"math/rand"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// GlyphSet is a fixed alphabet the rain draws its characters from.
type GlyphSet struct {
	ID    string
	Title string
	Runes []rune
}

// RangeSet builds a glyph set covering every codepoint in [first, last].
func RangeSet(id, title string, first, last rune) GlyphSet {
	if last < first {
		first, last = last, first
	}
	runes := make([]rune, 0, last-first+1)
	for r := first; r <= last; r++ {
		runes = append(runes, r)
	}
	return GlyphSet{ID: id, Title: title, Runes: runes}
}

// Katakana is the default set: the full-width Katakana block U+30A0..U+30FF.
var Katakana = RangeSet("katakana", "Katakana", 0x30A0, 0x30FF)

// Random returns one glyph chosen uniformly from the set.
// An empty set falls back to Katakana.
func (s GlyphSet) Random(rng *rand.Rand) rune {
	runes := s.Runes
	if len(runes) == 0 {
		runes = Katakana.Runes
	}
	return runes[rng.Intn(len(runes))]
}

// Width returns the widest terminal cell width of any glyph in the set.
func (s GlyphSet) Width() int {
	runes := s.Runes
	if len(runes) == 0 {
		runes = Katakana.Runes
	}
	w := 1
	for _, r := range runes {
		if rw := runewidth.RuneWidth(r); rw > w {
			w = rw
		}
	}
	return w
}

// EncodeGlyph writes the UTF-8 encoding of r into a fresh byte slice.
// Invalid codepoints encode as U+FFFD.
func EncodeGlyph(r rune) []byte {
	buf := make([]byte, utf8.UTFMax)
	n := utf8.EncodeRune(buf, r)
	return buf[:n]
}
