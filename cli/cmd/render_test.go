package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ardnew/hyprtxt/bind"
	"github.com/ardnew/hyprtxt/lang"
)

func TestRender(t *testing.T) {
	dir := t.TempDir()
	ctxFile := writeFile(t, dir, "ctx.yaml", "site:\n  title: Docs\nlang: en\n")

	tests := []struct {
		name   string
		source string
		render Render
		want   string
	}{
		{
			name:   "literal",
			source: `p: "hello"`,
			want:   "<p>hello</p>\n",
		},
		{
			name:   "bind flag",
			source: `h1: title`,
			render: Render{Bind: []string{"title=Home"}},
			want:   "<h1>Home</h1>\n",
		},
		{
			name:   "context file",
			source: `html { lang=lang title: site_title }`,
			render: Render{Context: []string{ctxFile}},
			want:   "<html lang=\"en\"><title>Docs</title></html>\n",
		},
		{
			name:   "bind overrides context",
			source: `title: site_title`,
			render: Render{Context: []string{ctxFile}, Bind: []string{"site_title=Blog"}},
			want:   "<title>Blog</title>\n",
		},
		{
			name:   "eval",
			source: `p: shout`,
			render: Render{Bind: []string{"name=ada"}, Eval: []string{`shout=upper(name) + "!"`}},
			want:   "<p>ADA!</p>\n",
		},
		{
			name:   "sanitize",
			source: `div: body`,
			render: Render{Bind: []string{`body=<b onclick="x()">hi</b>`}, Sanitize: true},
			want:   "<div><b>hi</b></div>\n",
		},
		{
			name:   "merge attributes",
			source: `div { .="a" .="b" }`,
			render: Render{MergeAttrs: true},
			want:   "<div class=\"a b\"/>\n",
		},
		{
			name:   "list bindings",
			source: `div { id=b p: a p: b }`,
			render: Render{Bindings: true},
			want:   "a\nb\n",
		},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.render
			r.Source = writeFile(t, dir, filepath.Join("src", string(rune('a'+i))+".hx"), tt.source)
			r.MaxDepth = lang.DefaultMaxDepth
			r.Suggestions = lang.DefaultSuggestions

			ctx, buf := capture()
			if err := r.Run(ctx); err != nil {
				t.Fatalf("Render.Run() error = %v", err)
			}

			if got := buf.String(); got != tt.want {
				t.Errorf("Render.Run() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderErrors(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "page.hx", `h1: ttl`)

	tests := []struct {
		name   string
		render Render
		want   error
	}{
		{"unbound", Render{Bind: []string{"title=x"}}, lang.ErrUnboundName},
		{"invalid pair", Render{Bind: []string{"novalue"}}, bind.ErrInvalidPair},
		{"bad expression", Render{Eval: []string{"x=1 +"}}, bind.ErrCompile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.render
			r.Source = src
			r.MaxDepth = lang.DefaultMaxDepth
			r.Suggestions = lang.DefaultSuggestions

			ctx, _ := capture()
			if err := r.Run(ctx); !errors.Is(err, tt.want) {
				t.Errorf("Render.Run() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRenderUnboundSuggestion(t *testing.T) {
	src := writeFile(t, t.TempDir(), "page.hx", `h1: ttl`)

	r := Render{Source: src, Bind: []string{"title=x"}, MaxDepth: 8, Suggestions: 3}

	ctx, _ := capture()
	err := r.Run(ctx)

	var uerr *lang.UnboundNameError
	if !errors.As(err, &uerr) {
		t.Fatalf("Render.Run() error = %v, want UnboundNameError", err)
	}

	if len(uerr.Suggestions) == 0 || uerr.Suggestions[0] != "title" {
		t.Errorf("Suggestions = %v, want [title ...]", uerr.Suggestions)
	}

	var serr *SourceError
	if !errors.As(err, &serr) || serr.File != src {
		t.Errorf("error %v does not name %s", err, src)
	}
}

func TestRenderMaxDepth(t *testing.T) {
	src := writeFile(t, t.TempDir(), "page.hx", `a { b { c { d {} } } }`)

	r := Render{Source: src, MaxDepth: 2, Suggestions: 3}

	ctx, _ := capture()
	if err := r.Run(ctx); !errors.Is(err, lang.ErrMaxDepthExceeded) {
		t.Errorf("Render.Run() error = %v, want ErrMaxDepthExceeded", err)
	}
}

func TestRenderOutputFile(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "page.hx", `p: "x"`)
	out := filepath.Join(dir, "public", "index.html")

	r := Render{Source: src, Output: out, MaxDepth: 8, Suggestions: 3}

	ctx, buf := capture()
	if err := r.Run(ctx); err != nil {
		t.Fatalf("Render.Run() error = %v", err)
	}

	if buf.Len() != 0 {
		t.Errorf("unexpected stdout: %q", buf)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}

	if string(data) != "<p>x</p>\n" {
		t.Errorf("output file = %q", data)
	}

	if err := r.Run(ctx); !errors.Is(err, ErrFileExists) {
		t.Errorf("second Run() error = %v, want ErrFileExists", err)
	}

	r.Force = true
	if err := r.Run(ctx); err != nil {
		t.Errorf("forced Run() error = %v", err)
	}
}
