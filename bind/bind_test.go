package bind

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/microcosm-cc/bluemonday"

	"github.com/ardnew/hyprtxt/lang"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		pairs   []string
		want    lang.Bindings
		wantErr error
	}{
		{
			name:  "pairs",
			pairs: []string{"title=Home", "lang=en"},
			want:  lang.Bindings{"title": "Home", "lang": "en"},
		},
		{
			name:  "empty value and embedded equals",
			pairs: []string{"empty=", "query=a=b"},
			want:  lang.Bindings{"empty": "", "query": "a=b"},
		},
		{
			name:  "later wins",
			pairs: []string{"x=1", "x=2"},
			want:  lang.Bindings{"x": "2"},
		},
		{
			name:  "hyphenated name",
			pairs: []string{"data-id=7"},
			want:  lang.Bindings{"data-id": "7"},
		},
		{
			name:    "missing equals",
			pairs:   []string{"title"},
			wantErr: ErrInvalidPair,
		},
		{
			name:    "empty name",
			pairs:   []string{"=x"},
			wantErr: ErrInvalidName,
		},
		{
			name:    "name with spaces",
			pairs:   []string{"page title=x"},
			wantErr: ErrInvalidName,
		},
		{
			name:    "name starting with digit",
			pairs:   []string{"1st=x"},
			wantErr: ErrInvalidName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.pairs)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatal(err)
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadYAML(t *testing.T) {
	doc := `
title: Home
count: 3
ratio: 0.5
draft: false
empty: null
site:
  name: Example
  author:
    name: Ada
`

	got, err := LoadYAML(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}

	want := lang.Bindings{
		"title":            "Home",
		"count":            "3",
		"ratio":            "0.5",
		"draft":            "false",
		"empty":            "",
		"site_name":        "Example",
		"site_author_name": "Ada",
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LoadYAML mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadYAML_Errors(t *testing.T) {
	if _, err := LoadYAML(strings.NewReader("nav:\n  - a\n  - b\n")); !errors.Is(err, ErrSequence) {
		t.Errorf("sequence: got %v", err)
	}

	if _, err := LoadYAML(strings.NewReader("- a\n- b\n")); !errors.Is(err, ErrDecode) {
		t.Errorf("top-level sequence: got %v", err)
	}

	if got, err := LoadYAML(strings.NewReader("")); err != nil || len(got) != 0 {
		t.Errorf("empty document: got %v, %v", got, err)
	}
}

func TestEvaluate(t *testing.T) {
	b := lang.Bindings{"title": "Home", "site": "Example"}

	got, err := Evaluate(b, map[string]string{
		"page_title": `title + " | " + site`,
		"shout":      `upper(title)`,
		"length":     `len(site)`,
		"is_home":    `title == "Home"`,
	})
	if err != nil {
		t.Fatal(err)
	}

	want := lang.Bindings{
		"title":      "Home",
		"site":       "Example",
		"page_title": "Home | Example",
		"shout":      "HOME",
		"length":     "7",
		"is_home":    "true",
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Evaluate mismatch (-want +got):\n%s", diff)
	}

	if len(b) != 2 {
		t.Error("Evaluate modified its input")
	}
}

func TestEvaluate_Errors(t *testing.T) {
	b := lang.Bindings{"title": "Home"}

	if _, err := Evaluate(b, map[string]string{"x": "missing + 1"}); !errors.Is(err, ErrCompile) {
		t.Errorf("unknown name: got %v", err)
	}

	if _, err := Evaluate(b, map[string]string{"x": `title +`}); !errors.Is(err, ErrCompile) {
		t.Errorf("bad syntax: got %v", err)
	}

	if _, err := Evaluate(b, map[string]string{"bad name": `title`}); !errors.Is(err, ErrInvalidName) {
		t.Errorf("bad name: got %v", err)
	}
}

func TestMerge(t *testing.T) {
	got := Merge(
		lang.Bindings{"a": "1", "b": "1"},
		nil,
		lang.Bindings{"b": "2", "c": "2"},
	)

	want := lang.Bindings{"a": "1", "b": "2", "c": "2"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Merge mismatch (-want +got):\n%s", diff)
	}
}

func TestSanitize(t *testing.T) {
	c := Sanitize(lang.Bindings{
		"body": `<b>bold</b><script>alert(1)</script>`,
	}, nil)

	tpl, err := lang.ParseString(context.Background(), `div { $: body }`)
	if err != nil {
		t.Fatal(err)
	}

	got, err := tpl.Render(context.Background(), c)
	if err != nil {
		t.Fatal(err)
	}

	if want := `<div><b>bold</b></div>`; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestSanitize_StrictPolicyAndSuggestions(t *testing.T) {
	c := Sanitize(lang.Bindings{"title": `<i>x</i>`}, bluemonday.StrictPolicy())

	if v, ok := c.Lookup("title"); !ok || v != "x" {
		t.Errorf("Lookup = %q, %v", v, ok)
	}

	_, err := lang.Render(lang.NewElement("p", nil, lang.Slot("ttl")), c)

	var ue *lang.UnboundNameError
	if !errors.As(err, &ue) {
		t.Fatalf("expected unbound name error, got %v", err)
	}

	if diff := cmp.Diff([]string{"title"}, ue.Suggestions); diff != "" {
		t.Errorf("suggestions mismatch (-want +got):\n%s", diff)
	}
}
