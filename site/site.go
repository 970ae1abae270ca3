// Package site generates a static web site from rendered hyprtxt pages.
//
// Pages are wrapped in an optional layout template, which receives the page
// markup through a slot binding. Partials are fragments written unwrapped
// under [PartialDir], for retrieval by client-side requests.
package site

import (
	"bytes"
	"cmp"
	"context"
	"log/slog"
	"maps"
	"os"
	"slices"

	"github.com/natefinch/atomic"

	"github.com/ardnew/hyprtxt/bind"
	"github.com/ardnew/hyprtxt/lang"
	"github.com/ardnew/hyprtxt/log"
)

var (
	ErrDuplicateEndpoint = lang.NewError("duplicate endpoint")
	ErrWrite             = lang.NewError("failed to write site file")
	ErrLayout            = lang.NewError("failed to apply layout")
)

// PartialDir is the directory, under the output root, holding partials.
const PartialDir = "hmi"

// DefaultSlot is the layout binding that receives each page's markup.
const DefaultSlot = "slot"

// Builder collects pages and partials and writes them below a root
// directory.
type Builder struct {
	root     string
	layout   *lang.Template
	slot     string
	bindings lang.Bindings
	render   []lang.RenderOption
	logger   log.Logger

	pages    map[string]document
	partials map[string]document
}

type document struct {
	endpoint Endpoint
	html     string
}

// Option configures a [Builder].
type Option func(*Builder)

// WithLayout wraps every page in layout, binding the page markup to slot.
// An empty slot selects [DefaultSlot].
func WithLayout(layout *lang.Template, slot string) Option {
	return func(b *Builder) {
		b.layout = layout
		b.slot = cmp.Or(slot, DefaultSlot)
	}
}

// WithBindings adds bindings available to the layout. Later calls win.
func WithBindings(bindings lang.Bindings) Option {
	return func(b *Builder) {
		b.bindings = bind.Merge(b.bindings, bindings)
	}
}

// WithRenderOptions sets the options used to render the layout.
func WithRenderOptions(opts ...lang.RenderOption) Option {
	return func(b *Builder) { b.render = opts }
}

// WithLogger sets the logger reporting each written file.
func WithLogger(logger log.Logger) Option {
	return func(b *Builder) { b.logger = logger }
}

// New returns a Builder writing below root.
func New(root string, opts ...Option) *Builder {
	b := &Builder{
		root:     root,
		slot:     DefaultSlot,
		pages:    make(map[string]document),
		partials: make(map[string]document),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// AddPage registers a page at the logical path p. A page may not share its
// output file with a registered partial.
func (b *Builder) AddPage(p, html string) error {
	e, err := ParseEndpoint(p)
	if err != nil {
		return err
	}

	if len(e.Dir) > 0 && e.Dir[0] == PartialDir {
		partial := Endpoint{Dir: e.Dir[1:], Name: e.Name}.String()
		if _, ok := b.partials[partial]; ok {
			return ErrDuplicateEndpoint.With(
				slog.String("path", e.String()),
				slog.String("partial", partial))
		}
	}

	return add(b.pages, e, html)
}

// AddPartial registers a partial at the logical path p, relative to
// [PartialDir]. A partial may not share its output file with a registered
// page.
func (b *Builder) AddPartial(p, html string) error {
	e, err := ParseEndpoint(p)
	if err != nil {
		return err
	}

	if _, ok := b.pages[PartialDir+"/"+e.String()]; ok {
		return ErrDuplicateEndpoint.With(
			slog.String("path", e.String()),
			slog.String("page", PartialDir+"/"+e.String()))
	}

	return add(b.partials, e, html)
}

func add(docs map[string]document, e Endpoint, html string) error {
	key := e.String()
	if _, ok := docs[key]; ok {
		return ErrDuplicateEndpoint.With(slog.String("path", key))
	}

	docs[key] = document{endpoint: e, html: html}

	return nil
}

// Generate renders the layout around every page and writes all pages and
// partials, creating directories as needed. Files are written atomically,
// pages before partials, each group in logical path order. It returns the
// paths written.
func (b *Builder) Generate(ctx context.Context) ([]string, error) {
	var written []string

	for _, key := range slices.Sorted(maps.Keys(b.pages)) {
		doc := b.pages[key]

		html, err := b.wrap(ctx, doc.html)
		if err != nil {
			return written, ErrLayout.Wrap(err).With(slog.String("page", key))
		}

		file, err := b.write(ctx, b.root, doc.endpoint, html)
		if err != nil {
			return written, err
		}

		written = append(written, file)
	}

	partialRoot := Endpoint{Dir: []string{PartialDir}}.DirPath(b.root)

	for _, key := range slices.Sorted(maps.Keys(b.partials)) {
		doc := b.partials[key]

		file, err := b.write(ctx, partialRoot, doc.endpoint, doc.html)
		if err != nil {
			return written, err
		}

		written = append(written, file)
	}

	return written, nil
}

func (b *Builder) wrap(ctx context.Context, html string) (string, error) {
	if b.layout == nil {
		return html, nil
	}

	c := bind.Merge(b.bindings, lang.Bindings{b.slot: html})

	return b.layout.Render(ctx, c, b.render...)
}

func (b *Builder) write(ctx context.Context, root string, e Endpoint, html string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	file := e.Path(root)

	if err := os.MkdirAll(e.DirPath(root), 0o755); err != nil {
		return "", ErrWrite.Wrap(err).With(slog.String("file", file))
	}

	if err := atomic.WriteFile(file, bytes.NewReader([]byte(html))); err != nil {
		return "", ErrWrite.Wrap(err).With(slog.String("file", file))
	}

	b.logger.InfoContext(ctx, "wrote file",
		slog.String("endpoint", e.String()),
		slog.String("file", file),
		slog.Int("bytes", len(html)))

	return file, nil
}
