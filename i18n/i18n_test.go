package i18n

import (
	"testing"

	"github.com/qyinm/lumina/types"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		lang types.Language
		key  string
		want string
	}{
		{types.English, NoFavorites, "No favorites yet"},
		{types.Portuguese, NoFavorites, "Nenhum favorito ainda"},
		{types.English, LinkCopied, "Link copied to clipboard!"},
		{types.Portuguese, ShareTitle, "Confira este papel de parede"},
		{"fr", NoWallpapers, "No wallpapers found"},
		{"", Favorites, "Favorites"},
		{types.English, "no.such.key", "no.such.key"},
	}
	for _, tt := range tests {
		t.Run(string(tt.lang)+"/"+tt.key, func(t *testing.T) {
			if got := New(tt.lang).T(tt.key); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTranslateWithArgs(t *testing.T) {
	if got := New(types.Portuguese).T(Showing, 10, 40); got != "10 de 40" {
		t.Errorf("got %q, want %q", got, "10 de 40")
	}
	if got := New(types.English).T(Downloaded, "/tmp/x.png"); got != "Saved to /tmp/x.png" {
		t.Errorf("got %q", got)
	}
}

func TestLanguageResolution(t *testing.T) {
	tests := map[types.Language]types.Language{
		types.English:    types.English,
		types.Portuguese: types.Portuguese,
		"pt-BR":          types.Portuguese,
		"de":             types.English,
	}
	for in, want := range tests {
		if got := New(in).Language(); got != want {
			t.Errorf("New(%q).Language() = %q, want %q", in, got, want)
		}
	}
}

func TestCategoryNames(t *testing.T) {
	en := New(types.English)
	pt := New(types.Portuguese)
	for _, c := range types.AllCategories {
		if got := en.Category(c); got != string(c) {
			t.Errorf("en category %q: got %q", c, got)
		}
		if got := pt.Category(c); got == "" || got == "category."+string(c) {
			t.Errorf("pt category %q missing: got %q", c, got)
		}
	}
	if got := pt.Category(types.Space); got != "Espaço" {
		t.Errorf("pt Space: got %q", got)
	}
}

func TestResolutionLabels(t *testing.T) {
	if got := New(types.English).Resolution(types.Res4K); got != "4K (Ultra)" {
		t.Errorf("got %q", got)
	}
	if got := New(types.Portuguese).Resolution(types.Res1K); got != "1K (Padrão)" {
		t.Errorf("got %q", got)
	}
}

func TestEveryKeyTranslated(t *testing.T) {
	for _, m := range messages {
		if m.en == "" || m.pt == "" {
			t.Errorf("key %q missing a translation", m.key)
		}
	}
	if len(Keys()) != len(messages) {
		t.Errorf("Keys: got %d, want %d", len(Keys()), len(messages))
	}
}
