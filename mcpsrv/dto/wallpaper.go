package dto

type Wallpaper struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Author    string   `json:"author"`
	Category  string   `json:"category"`
	Tags      []string `json:"tags"`
	URL       string   `json:"url"`
	Truncated bool     `json:"url_truncated,omitempty"`
	Generated bool     `json:"is_generated"`
	Favorite  bool     `json:"is_favorite"`
	Filename  string   `json:"filename"`
}

type Category struct {
	Token    string `json:"token"`
	Name     string `json:"name"`
	Fragment string `json:"fragment"`
	Count    int    `json:"count"`
}
