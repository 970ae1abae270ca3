package site

import (
	"cmp"
	"context"
	"io"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/hyprtxt/asset"
	"github.com/ardnew/hyprtxt/bind"
	"github.com/ardnew/hyprtxt/lang"
)

var (
	ErrManifest = lang.NewError("invalid site manifest")
	ErrTemplate = lang.NewError("failed to load template")
	ErrRender   = lang.NewError("failed to render page")
)

// AssetsBinding is the binding that receives the head tags of bundled
// assets.
const AssetsBinding = "assets"

// DefaultOutput is the output directory used when a manifest names none.
const DefaultOutput = "public"

// Manifest describes a site in YAML. Relative paths are resolved against
// the directory containing the manifest.
//
//	layout: layout.hyp
//	slot: slot
//	output: public
//	assets: assets
//	bindings:
//	  site_name: Example
//	pages:
//	  index: pages/index.hyp
//	  blog/first: pages/first.hyp
//	partials:
//	  counter: partials/counter.hyp
type Manifest struct {
	Layout   string            `yaml:"layout"`
	Slot     string            `yaml:"slot"`
	Output   string            `yaml:"output"`
	Assets   string            `yaml:"assets"`
	BaseURL  string            `yaml:"base_url"`
	Bindings map[string]string `yaml:"bindings"`
	Pages    map[string]string `yaml:"pages"`
	Partials map[string]string `yaml:"partials"`
}

// LoadManifest decodes a manifest, rejecting unknown fields.
func LoadManifest(r io.Reader) (*Manifest, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrManifest.Wrap(err)
	}

	var m Manifest
	if err := yaml.UnmarshalWithOptions(data, &m, yaml.DisallowUnknownField()); err != nil {
		return nil, ErrManifest.Wrap(err)
	}

	if len(m.Pages) == 0 && len(m.Partials) == 0 {
		return nil, ErrManifest.With(slog.String("issue", "no pages or partials"))
	}

	return &m, nil
}

// LoadManifestFile decodes the manifest at path and returns it with the
// directory its relative paths are resolved against.
func LoadManifestFile(path string) (*Manifest, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", ErrManifest.Wrap(err).With(slog.String("file", path))
	}
	defer f.Close()

	m, err := LoadManifest(f)
	if err != nil {
		return nil, "", err
	}

	return m, filepath.Dir(path), nil
}

// Build renders and writes the site described by m.
//
// Every page and partial template is rendered against the manifest
// bindings, extended with [AssetsBinding] when assets are bundled. Pages
// are then wrapped in the layout. It returns the paths of all written files,
// assets excluded.
func Build(ctx context.Context, m *Manifest, baseDir string, opts ...Option) ([]string, error) {
	resolve := func(p string) string {
		if filepath.IsAbs(p) {
			return p
		}

		return filepath.Join(baseDir, p)
	}

	out := resolve(cmp.Or(m.Output, DefaultOutput))
	b := New(out, opts...)

	bindings := bind.Merge(m.Bindings)

	if m.Assets != "" {
		assets, err := asset.Bundle(ctx, resolve(m.Assets), out,
			asset.WithBaseURL(cmp.Or(m.BaseURL, "/")),
			asset.WithLogger(b.logger))
		if err != nil {
			return nil, err
		}

		bindings[AssetsBinding] = asset.Tags(assets)
	}

	WithBindings(bindings)(b)

	if m.Layout != "" {
		layout, err := loadTemplate(ctx, resolve(m.Layout))
		if err != nil {
			return nil, err
		}

		WithLayout(layout, m.Slot)(b)
	}

	for _, group := range []struct {
		docs map[string]string
		add  func(string, string) error
	}{
		{m.Pages, b.AddPage},
		{m.Partials, b.AddPartial},
	} {
		for _, p := range slices.Sorted(maps.Keys(group.docs)) {
			file := resolve(group.docs[p])

			tpl, err := loadTemplate(ctx, file)
			if err != nil {
				return nil, err
			}

			html, err := tpl.Render(ctx, bindings, b.render...)
			if err != nil {
				return nil, ErrRender.Wrap(err).With(slog.String("file", file))
			}

			if err := group.add(p, html); err != nil {
				return nil, err
			}
		}
	}

	return b.Generate(ctx)
}

func loadTemplate(ctx context.Context, file string) (*lang.Template, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, ErrTemplate.Wrap(err).With(slog.String("file", file))
	}
	defer f.Close()

	tpl, err := lang.ParseReader(ctx, f)
	if err != nil {
		return nil, ErrTemplate.Wrap(err).With(slog.String("file", file))
	}

	return tpl, nil
}
