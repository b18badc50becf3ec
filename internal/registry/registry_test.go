package registry

import (
	"testing"

	"github.com/vovakirdan/tui-rain/internal/rain"
)

func TestBuiltinsRegistered(t *testing.T) {
	for _, id := range []string{"katakana", "halfwidth", "binary", "digits", "latin", "greek"} {
		if !Exists(id) {
			t.Errorf("built-in glyph set %q not registered", id)
		}
	}
}

func TestListSorted(t *testing.T) {
	list := List()
	if len(list) < 6 {
		t.Fatalf("List() returned %d sets, expected at least 6", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Errorf("List() not sorted: %q before %q", list[i-1].ID, list[i].ID)
		}
	}
}

func TestListWidths(t *testing.T) {
	widths := map[string]int{}
	for _, info := range List() {
		widths[info.ID] = info.Width
	}
	if widths["katakana"] != 2 {
		t.Errorf("katakana width = %d, expected 2", widths["katakana"])
	}
	if widths["halfwidth"] != 1 {
		t.Errorf("halfwidth width = %d, expected 1", widths["halfwidth"])
	}
	if widths["binary"] != 1 {
		t.Errorf("binary width = %d, expected 1", widths["binary"])
	}
}

func TestLookup(t *testing.T) {
	s, err := Lookup("binary")
	if err != nil {
		t.Fatalf("Lookup(binary) failed: %v", err)
	}
	if string(s.Runes) != "01" {
		t.Errorf("binary runes = %q", string(s.Runes))
	}

	if _, err := Lookup("klingon"); err == nil {
		t.Error("Lookup of an unknown set should fail")
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("registering a duplicate id should panic")
		}
	}()
	Register(rain.GlyphSet{ID: "binary", Runes: []rune("01")})
}

func TestRegisterRejectsEmpty(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("registering an empty set should panic")
		}
	}()
	Register(rain.GlyphSet{ID: "empty"})
}
