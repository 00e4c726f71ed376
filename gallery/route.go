package gallery

import (
	"net/url"
	"strings"

	"github.com/qyinm/lumina/types"
)

const categoryParam = "category"

// ParseFragment reads a category deep link. It accepts "#category=Space",
// "category=Space&x=1" or a bare "Space". Unknown or absent tokens yield All.
func ParseFragment(fragment string) types.Category {
	c, _ := ParseFragmentOK(fragment)
	return c
}

// ParseFragmentOK is ParseFragment that also reports whether the link named
// a known category. An explicit "#category=All" is recognised.
func ParseFragmentOK(fragment string) (types.Category, bool) {
	raw := strings.TrimPrefix(strings.TrimSpace(fragment), "#")
	if raw == "" {
		return types.All, false
	}

	token := raw
	if strings.Contains(raw, "=") {
		values, err := url.ParseQuery(raw)
		if err != nil {
			return types.All, false
		}
		token = values.Get(categoryParam)
	} else if unescaped, err := url.QueryUnescape(raw); err == nil {
		token = unescaped
	}

	return types.ParseCategory(token)
}

// Fragment builds the shareable deep link for c.
func Fragment(c types.Category) string {
	return "#" + categoryParam + "=" + url.QueryEscape(c.String())
}
