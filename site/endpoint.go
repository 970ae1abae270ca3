package site

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/ardnew/hyprtxt/lang"
)

var ErrInvalidEndpoint = lang.NewError("invalid endpoint")

// Extension is appended to every generated file name.
const Extension = ".html"

// Endpoint is the logical location of a generated document: the directories
// leading to it and its base name without extension.
type Endpoint struct {
	Dir  []string
	Name string
}

// ParseEndpoint splits a slash-separated logical path such as "blog/post-1".
// Leading and trailing slashes are ignored. Empty segments, "." and ".."
// are rejected.
func ParseEndpoint(p string) (Endpoint, error) {
	trimmed := strings.Trim(p, "/")
	if trimmed == "" {
		return Endpoint{}, ErrInvalidEndpoint.With(slog.String("path", p))
	}

	segs := strings.Split(trimmed, "/")
	for _, seg := range segs {
		if seg == "" || seg == "." || seg == ".." || strings.ContainsRune(seg, '\\') {
			return Endpoint{}, ErrInvalidEndpoint.With(
				slog.String("path", p),
				slog.String("segment", seg))
		}
	}

	return Endpoint{
		Dir:  segs[:len(segs)-1],
		Name: segs[len(segs)-1],
	}, nil
}

// String returns the logical path.
func (e Endpoint) String() string {
	return strings.Join(append(append([]string(nil), e.Dir...), e.Name), "/")
}

// DirPath returns the directory of the endpoint under root.
func (e Endpoint) DirPath(root string) string {
	return filepath.Join(append([]string{root}, e.Dir...)...)
}

// Path returns the file path of the endpoint under root.
func (e Endpoint) Path(root string) string {
	return filepath.Join(e.DirPath(root), e.Name+Extension)
}
