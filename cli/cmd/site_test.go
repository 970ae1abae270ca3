package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSite(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, dir, "layout.hx", `html { head { $: assets } body { $: slot } }`)
	writeFile(t, dir, "pages/index.hx", `h1: site_name`)
	writeFile(t, dir, "static/app.js", "console.log(1)")
	manifest := writeFile(t, dir, "site.yaml", strings.Join([]string{
		"layout: layout.hx",
		"assets: static",
		"bindings:",
		"  site_name: Example",
		"pages:",
		"  index: pages/index.hx",
	}, "\n"))

	out := filepath.Join(dir, "out")

	ctx, buf := capture()
	if err := (&Site{Manifest: manifest, Output: out}).Run(ctx); err != nil {
		t.Fatalf("Site.Run() error = %v", err)
	}

	index := filepath.Join(out, "index.html")
	if diff := cmp.Diff(index+"\n", buf.String()); diff != "" {
		t.Errorf("listed files mismatch (-want +got):\n%s", diff)
	}

	data, err := os.ReadFile(index)
	if err != nil {
		t.Fatal(err)
	}

	want := `<html><head><script src="/assets/js/app.js"></script></head>` +
		`<body><h1>Example</h1></body></html>`
	if string(data) != want {
		t.Errorf("index.html = %s\nwant %s", data, want)
	}

	if _, err := os.Stat(filepath.Join(out, "assets", "js", "app.js")); err != nil {
		t.Errorf("asset not copied: %v", err)
	}
}

func TestAssets(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()

	writeFile(t, src, "site.css", "body{}")
	writeFile(t, src, "app.js", "")
	writeFile(t, src, "logo.png", "")
	writeFile(t, src, "notes.txt", "")

	ctx, buf := capture()
	if err := (&Assets{BaseURL: "/static", Source: src, Output: out}).Run(ctx); err != nil {
		t.Fatalf("Assets.Run() error = %v", err)
	}

	want := `<script src="/static/assets/js/app.js"></script>` + "\n" +
		`<link rel="stylesheet" type="text/css" href="/static/assets/css/site.css">` + "\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("tags mismatch (-want +got):\n%s", diff)
	}

	for _, p := range []string{"js/app.js", "css/site.css", "img/logo.png"} {
		if _, err := os.Stat(filepath.Join(out, "assets", filepath.FromSlash(p))); err != nil {
			t.Errorf("%s not copied: %v", p, err)
		}
	}

	if _, err := os.Stat(filepath.Join(out, "assets", "notes.txt")); !os.IsNotExist(err) {
		t.Errorf("unrecognized file copied: %v", err)
	}
}
