// Package asset bundles static files into a generated site and produces the
// head tags that reference them.
package asset

import (
	"context"
	"log/slog"
	"os"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/natefinch/atomic"

	"github.com/ardnew/hyprtxt/lang"
	"github.com/ardnew/hyprtxt/log"
)

var (
	ErrReadSource = lang.NewError("failed to read asset source")
	ErrCopy       = lang.NewError("failed to copy asset")
	ErrBaseURL    = lang.NewError("invalid asset base URL")
)

// Category groups assets by how a page uses them.
type Category int

const (
	Script Category = iota
	Stylesheet
	Document
	Vector
	Raster
	Audio
)

var categoryInfo = [...]struct{ name, dir string }{
	Script:     {"script", "js"},
	Stylesheet: {"stylesheet", "css"},
	Document:   {"document", "docs"},
	Vector:     {"vector", "vector"},
	Raster:     {"raster", "img"},
	Audio:      {"audio", "sounds"},
}

func (c Category) String() string {
	if c >= 0 && int(c) < len(categoryInfo) {
		return categoryInfo[c].name
	}

	return "Category(" + strconv.Itoa(int(c)) + ")"
}

// Dir returns the directory, relative to the assets root, holding files of
// category c, or "" for an unknown category.
func (c Category) Dir() string {
	if c >= 0 && int(c) < len(categoryInfo) {
		return categoryInfo[c].dir
	}

	return ""
}

var extensions = map[string]Category{
	"js":   Script,
	"css":  Stylesheet,
	"pdf":  Document,
	"svg":  Vector,
	"jpg":  Raster,
	"jpeg": Raster,
	"png":  Raster,
	"mp3":  Audio,
	"ogg":  Audio,
	"flac": Audio,
	"wav":  Audio,
}

// Classify returns the category of a file name by its extension, ignoring
// case. Files without a known extension are not assets.
func Classify(name string) (Category, bool) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	c, ok := extensions[ext]

	return c, ok
}

// Asset is a bundled file.
type Asset struct {
	Name     string   // Base file name
	Category Category // Category by extension
	URL      string   // Site-absolute URL of the copy
	Tag      string   // Head tag referencing the asset, or "" if none applies
}

// DirName is the directory, under the output root, that holds all assets.
const DirName = "assets"

type options struct {
	baseURL string
	logger  log.Logger
}

// Option configures [Bundle].
type Option func(*options)

// WithBaseURL sets the URL prefix under which the output root is served,
// either a path such as "/site/" or an absolute URL such as
// "https://cdn.example.com/site". The default is "/".
func WithBaseURL(base string) Option {
	return func(o *options) { o.baseURL = base }
}

// WithLogger sets the logger used to report each copied file.
func WithLogger(logger log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// Bundle copies every recognized file directly inside src into
// out/assets/<dir>/, in file name order, and describes each copy.
// Subdirectories and unrecognized files are skipped.
func Bundle(ctx context.Context, src, out string, opts ...Option) ([]Asset, error) {
	o := options{baseURL: "/"}
	for _, opt := range opts {
		opt(&o)
	}

	base, err := url.Parse(o.baseURL)
	if err != nil {
		return nil, ErrBaseURL.Wrap(err).With(slog.String("base_url", o.baseURL))
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return nil, ErrReadSource.Wrap(err).With(slog.String("dir", src))
	}

	var assets []Asset

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if entry.IsDir() {
			continue
		}

		cat, ok := Classify(entry.Name())
		if !ok {
			o.logger.DebugContext(ctx, "skip asset", slog.String("file", entry.Name()))

			continue
		}

		dst := filepath.Join(out, DirName, cat.Dir(), entry.Name())
		if err := copyFile(filepath.Join(src, entry.Name()), dst); err != nil {
			return nil, err
		}

		a := Asset{
			Name:     entry.Name(),
			Category: cat,
			URL:      base.JoinPath(DirName, cat.Dir(), entry.Name()).String(),
		}

		if a.Tag, err = tag(a); err != nil {
			return nil, err
		}

		o.logger.InfoContext(ctx, "bundled asset",
			slog.String("file", a.Name),
			slog.String("category", a.Category.String()),
			slog.String("url", a.URL))

		assets = append(assets, a)
	}

	return assets, nil
}

func copyFile(src, dst string) error {
	f, err := os.Open(src)
	if err != nil {
		return ErrCopy.Wrap(err).With(slog.String("src", src))
	}
	defer f.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return ErrCopy.Wrap(err).With(slog.String("dst", dst))
	}

	if err := atomic.WriteFile(dst, f); err != nil {
		return ErrCopy.Wrap(err).With(slog.String("src", src), slog.String("dst", dst))
	}

	return nil
}

// Node returns the element referencing a, or nil for categories that pages
// do not load from the head.
func Node(a Asset) lang.Node {
	switch a.Category {
	case Script:
		// The empty child forces an explicit closing tag.
		return lang.NewElement("script",
			[]lang.Attribute{lang.Attr("src", lang.Lit(a.URL))},
			lang.Text(""))

	case Stylesheet:
		return lang.NewVoid("link",
			lang.Attr("rel", lang.Lit("stylesheet")),
			lang.Attr("type", lang.Lit("text/css")),
			lang.Attr("href", lang.Lit(a.URL)))

	default:
		return nil
	}
}

func tag(a Asset) (string, error) {
	n := Node(a)
	if n == nil {
		return "", nil
	}

	return lang.Render(n, lang.Empty)
}

// Tags concatenates the tags of assets in order.
func Tags(assets []Asset) string {
	var sb strings.Builder
	for _, a := range assets {
		sb.WriteString(a.Tag)
	}

	return sb.String()
}
