package types

import "testing"

func TestParseCategory(t *testing.T) {
	tests := []struct {
		token string
		want  Category
		ok    bool
	}{
		{"Nature", Nature, true},
		{"All", All, true},
		{"Architecture", Architecture, true},
		{"nature", All, false},
		{"", All, false},
		{"Portraits", All, false},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, ok := ParseCategory(tt.token)
			if got != tt.want || ok != tt.ok {
				t.Errorf("ParseCategory(%q) = (%q, %v), want (%q, %v)", tt.token, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestResolutionCycle(t *testing.T) {
	r := Res1K
	seen := []Resolution{r}
	for i := 0; i < 3; i++ {
		r = r.Next()
		seen = append(seen, r)
	}
	want := []Resolution{Res1K, Res2K, Res4K, Res1K}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("cycle[%d] = %q, want %q", i, seen[i], want[i])
		}
	}
	if Res2K.Label() != "1440p" {
		t.Errorf("Res2K label = %q, want %q", Res2K.Label(), "1440p")
	}
	if _, ok := ParseResolution("8k"); ok {
		t.Error("ParseResolution accepted 8k")
	}
}

func TestWallpaperTagsAreCopied(t *testing.T) {
	tags := []string{"snow"}
	w := NewWallpaper("1", "u", "Arctic", "me", Nature, tags, false)
	tags[0] = "changed"
	got := w.Tags()
	got[0] = "also changed"
	if w.Tags()[0] != "snow" {
		t.Errorf("wallpaper tags mutated: %v", w.Tags())
	}
}

func TestParseLanguage(t *testing.T) {
	if ParseLanguage("PT") != Portuguese {
		t.Error("PT should parse as Portuguese")
	}
	if ParseLanguage("de") != English {
		t.Error("unknown language should default to English")
	}
	if English.Toggle() != Portuguese || Portuguese.Toggle() != English {
		t.Error("Toggle should alternate languages")
	}
}
