package rain

import (
	"math/rand"
	"testing"
	"unicode/utf8"
)

func TestKatakanaRange(t *testing.T) {
	if len(Katakana.Runes) != 0x60 {
		t.Fatalf("katakana has %d glyphs, expected 96", len(Katakana.Runes))
	}
	if Katakana.Runes[0] != 0x30A0 || Katakana.Runes[len(Katakana.Runes)-1] != 0x30FF {
		t.Errorf("katakana bounds = %U..%U", Katakana.Runes[0], Katakana.Runes[len(Katakana.Runes)-1])
	}
	if w := Katakana.Width(); w != 2 {
		t.Errorf("katakana width = %d, expected 2", w)
	}
}

func TestRangeSetSwapsBounds(t *testing.T) {
	s := RangeSet("digits", "Digits", '9', '0')
	if len(s.Runes) != 10 || s.Runes[0] != '0' {
		t.Errorf("RangeSet = %q", string(s.Runes))
	}
	if w := s.Width(); w != 1 {
		t.Errorf("digit width = %d, expected 1", w)
	}
}

func TestRandomStaysInSet(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	s := GlyphSet{ID: "bin", Runes: []rune{'0', '1'}}
	for i := 0; i < 200; i++ {
		if g := s.Random(rng); g != '0' && g != '1' {
			t.Fatalf("Random() = %q, not in set", g)
		}
	}

	var empty GlyphSet
	g := empty.Random(rng)
	if g < 0x30A0 || g > 0x30FF {
		t.Errorf("empty set should fall back to katakana, got %U", g)
	}
}

func TestEncodeGlyph(t *testing.T) {
	tests := []struct {
		r        rune
		expected int
	}{
		{'A', 1},
		{'λ', 2},
		{0x30A2, 3},
		{0x1F600, 4},
	}
	for _, tc := range tests {
		b := EncodeGlyph(tc.r)
		if len(b) != tc.expected {
			t.Errorf("EncodeGlyph(%U) = %d bytes, expected %d", tc.r, len(b), tc.expected)
		}
		if r, _ := utf8.DecodeRune(b); r != tc.r {
			t.Errorf("EncodeGlyph(%U) decodes to %U", tc.r, r)
		}
	}
	if r, _ := utf8.DecodeRune(EncodeGlyph(-1)); r != utf8.RuneError {
		t.Errorf("invalid rune should encode as U+FFFD, got %U", r)
	}
}

func TestGlyphRing(t *testing.T) {
	g := newGlyphRing(3)
	for _, r := range "abc" {
		g.Push(r)
	}
	if g.At(0) != 'c' || g.At(1) != 'b' || g.At(2) != 'a' {
		t.Fatalf("ring = %q %q %q", g.At(0), g.At(1), g.At(2))
	}

	g.Push('d')
	if g.At(0) != 'd' || g.At(2) != 'b' {
		t.Errorf("push should drop the oldest glyph: %q %q %q", g.At(0), g.At(1), g.At(2))
	}

	g.SetHead('z')
	if g.At(0) != 'z' || g.At(1) != 'c' {
		t.Errorf("SetHead should only replace the head: %q %q", g.At(0), g.At(1))
	}
	if g.Len() != 3 {
		t.Errorf("Len() = %d, expected 3", g.Len())
	}
}
