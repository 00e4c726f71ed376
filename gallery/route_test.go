package gallery

import (
	"testing"

	"github.com/qyinm/lumina/types"
)

func TestParseFragment(t *testing.T) {
	tests := []struct {
		in   string
		want types.Category
	}{
		{"#category=Space", types.Space},
		{"category=Architecture&ref=share", types.Architecture},
		{"ref=x&category=Animals", types.Animals},
		{"Minimal", types.Minimal},
		{"#category=nature", types.All},
		{"#category=", types.All},
		{"#", types.All},
		{"", types.All},
		{"#category=%ZZ", types.All},
		{"#foo=bar", types.All},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseFragment(tt.in); got != tt.want {
				t.Errorf("ParseFragment(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseFragmentOK(t *testing.T) {
	tests := []struct {
		in     string
		want   types.Category
		wantOK bool
	}{
		{"#category=All", types.All, true},
		{"category=All", types.All, true},
		{"All", types.All, true},
		{"#category=Space", types.Space, true},
		{"#category=nature", types.All, false},
		{"#category=", types.All, false},
		{"", types.All, false},
		{"#category=%ZZ", types.All, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseFragmentOK(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseFragmentOK(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestFragmentRoundTrip(t *testing.T) {
	for _, c := range types.AllCategories {
		frag := Fragment(c)
		if got := ParseFragment(frag); got != c {
			t.Errorf("ParseFragment(Fragment(%q)) = %q", c, got)
		}
	}
	if got := Fragment(types.Space); got != "#category=Space" {
		t.Errorf("Fragment(Space) = %q", got)
	}
}
