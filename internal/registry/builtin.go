package registry

import "github.com/vovakirdan/tui-rain/internal/rain"

func init() {
	Register(rain.Katakana)
	Register(rain.RangeSet("halfwidth", "Half-width Katakana", 0xFF66, 0xFF9D))
	Register(rain.GlyphSet{ID: "binary", Title: "Binary", Runes: []rune("01")})
	Register(rain.RangeSet("digits", "Digits", '0', '9'))
	Register(rain.GlyphSet{
		ID:    "latin",
		Title: "Latin",
		Runes: []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"),
	})
	Register(rain.GlyphSet{
		ID:    "greek",
		Title: "Greek",
		Runes: []rune("ΑΒΓΔΕΖΗΘΙΚΛΜΝΞΟΠΡΣΤΥΦΧΨΩαβγδεζηθικλμνξοπρστυφχψω"),
	})
}
