// Package download saves wallpaper images to disk.
package download

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/qyinm/lumina/logging"
	"github.com/qyinm/lumina/types"
)

const (
	// Suffix is appended to every saved file name.
	Suffix = "-lumina.png"

	// DefaultDirPermissions for the download directory
	DefaultDirPermissions = 0o755

	maxImageBytes = 64 << 20
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// ErrUnsupportedURL is returned for image locators that are neither data
// URLs nor http(s) addresses.
var ErrUnsupportedURL = errors.New("unsupported image url")

// Filename is the file name a wallpaper is saved under: the lower-cased
// title with whitespace runs replaced by "-", plus Suffix.
func Filename(w types.Wallpaper) string {
	name := whitespaceRun.ReplaceAllString(strings.ToLower(w.Name()), "-")
	name = strings.NewReplacer("/", "-", `\`, "-").Replace(name)
	return name + Suffix
}

// Saver writes wallpapers into a directory.
type Saver struct {
	dir    string
	client *http.Client
}

// NewSaver returns a Saver writing into dir.
func NewSaver(dir string) *Saver {
	if dir == "" {
		dir = "."
	}
	return &Saver{
		dir: dir,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Dir returns the target directory.
func (s *Saver) Dir() string { return s.dir }

// Save writes the image of w and returns the written path. The file is
// written to a temporary name first and renamed into place.
func (s *Saver) Save(ctx context.Context, w types.Wallpaper) (string, error) {
	if err := os.MkdirAll(s.dir, DefaultDirPermissions); err != nil {
		return "", fmt.Errorf("create download dir: %w", err)
	}

	body, err := s.open(ctx, w.URL())
	if err != nil {
		return "", err
	}
	defer body.Close()

	path := filepath.Join(s.dir, Filename(w))
	tmp, err := os.CreateTemp(s.dir, ".lumina-*.part")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, io.LimitReader(body, maxImageBytes))
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("rename image: %w", err)
	}

	logging.Info("Wallpaper saved", "id", w.ID(), "path", path, "bytes", n)
	return path, nil
}

func (s *Saver) open(ctx context.Context, url string) (io.ReadCloser, error) {
	switch {
	case strings.HasPrefix(url, "data:"):
		data, err := DecodeDataURL(url)
		if err != nil {
			return nil, err
		}
		return io.NopCloser(bytes.NewReader(data)), nil

	case strings.HasPrefix(url, "http://"), strings.HasPrefix(url, "https://"):
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		resp, err := s.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetch image: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("fetch image: unexpected status code: %d", resp.StatusCode)
		}
		return resp.Body, nil

	default:
		return nil, fmt.Errorf("%w: %.32q", ErrUnsupportedURL, url)
	}
}

// DecodeDataURL returns the payload of a base64 data URL.
func DecodeDataURL(url string) ([]byte, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(url, "data:"), ",")
	if !ok {
		return nil, fmt.Errorf("%w: data url has no payload", ErrUnsupportedURL)
	}
	if !strings.HasSuffix(meta, ";base64") {
		return nil, fmt.Errorf("%w: data url is not base64", ErrUnsupportedURL)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode data url: %w", err)
	}
	return data, nil
}
