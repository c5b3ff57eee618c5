package ui

import (
	"strings"
	"testing"
)

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != 3 {
		t.Fatalf("ThemeNames() returned %d names, want 3", len(names))
	}
	if names[0] != "Nightfox" || names[1] != "Kanagawa" || names[2] != "Slate" {
		t.Fatalf("ThemeNames() = %v, want [Nightfox Kanagawa Slate]", names)
	}

	names[0] = "changed"
	if ThemeNames()[0] != "Nightfox" {
		t.Fatalf("ThemeNames() exposes its backing slice")
	}
}

func TestNextTheme(t *testing.T) {
	tests := []struct{ current, want string }{
		{"Nightfox", "Kanagawa"},
		{"Kanagawa", "Slate"},
		{"Slate", "Nightfox"},
		{"Unknown", "Nightfox"},
	}
	for _, tt := range tests {
		if got := NextTheme(tt.current); got != tt.want {
			t.Fatalf("NextTheme(%s) = %q, want %s", tt.current, got, tt.want)
		}
	}
}

func TestGetTheme(t *testing.T) {
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		if th.Name != name {
			t.Fatalf("GetTheme(%s).Name = %q", name, th.Name)
		}
		if th.Background == "" || th.Text == "" || th.Danger == "" {
			t.Fatalf("GetTheme(%s) has unset colors: %+v", name, th)
		}
	}

	if unknown := GetTheme("Unknown"); unknown.Name != "Nightfox" {
		t.Fatalf("GetTheme(Unknown).Name = %q, want Nightfox (fallback)", unknown.Name)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"Bakewell tart", 20, "Bakewell tart"},
		{"Bakewell tart", 8, "Bakewel…"},
		{"Crème brûlée", 6, "Crème…"},
		{"abc", 1, "…"},
		{"abc", 0, ""},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestBgStyleFill(t *testing.T) {
	bg := newBgStyle("#000000")
	if got := bg.fill("ab", 5); !strings.HasPrefix(got, "ab") || len(got) < 5 {
		t.Fatalf("fill = %q, want ab padded to 5", got)
	}
}
