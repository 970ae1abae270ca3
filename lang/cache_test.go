package lang

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/ardnew/hyprtxt/log"
)

func TestParseCached_ReturnsSameTemplate(t *testing.T) {
	ClearCache()
	t.Cleanup(ClearCache)

	ctx := context.Background()

	a, err := ParseCached(ctx, `p: "cached"`)
	if err != nil {
		t.Fatal(err)
	}

	b, err := ParseCached(ctx, `p: "cached"`)
	if err != nil {
		t.Fatal(err)
	}

	if a != b {
		t.Error("expected the cached template to be reused")
	}

	c, err := ParseCached(ctx, `p: "cached"`, WithMaxDepth(8))
	if err != nil {
		t.Fatal(err)
	}

	if c == a {
		t.Error("different options must not share a cache entry")
	}

	ClearCache()

	d, err := ParseCached(ctx, `p: "cached"`)
	if err != nil {
		t.Fatal(err)
	}

	if d == a {
		t.Error("expected a fresh template after ClearCache")
	}
}

func TestParseCached_CachesErrors(t *testing.T) {
	ClearCache()
	t.Cleanup(ClearCache)

	for range 2 {
		tpl, err := ParseCached(context.Background(), `p {`)
		if tpl != nil || !errors.Is(err, ErrSyntax) {
			t.Errorf("ParseCached = %v, %v; want syntax error", tpl, err)
		}
	}
}

func TestParseCached_Concurrent(t *testing.T) {
	ClearCache()
	t.Cleanup(ClearCache)

	const workers = 50

	results := make([]*Template, workers)

	var wg sync.WaitGroup

	for i := range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			tpl, err := ParseCached(context.Background(), `html { body { $: slot } }`)
			if err != nil {
				t.Error(err)

				return
			}

			results[i] = tpl
		}()
	}

	wg.Wait()

	for i, tpl := range results {
		if tpl != results[0] {
			t.Fatalf("worker %d got a different template", i)
		}
	}
}

func TestParseCached_PerCallerLogger(t *testing.T) {
	ClearCache()
	t.Cleanup(ClearCache)

	ctx := context.Background()

	var first, second strings.Builder

	logger := func(w *strings.Builder) log.Logger {
		return log.Make(w, log.WithLevel(log.LevelTrace), log.WithFormat(log.FormatJSON))
	}

	a, err := ParseCached(ctx, `p: x`, WithLogger(logger(&first)))
	if err != nil {
		t.Fatal(err)
	}

	b, err := ParseCached(ctx, `p: x`, WithLogger(logger(&second)))
	if err != nil {
		t.Fatal(err)
	}

	if a.Root != b.Root {
		t.Error("expected callers to share the parsed tree")
	}

	first.Reset()

	if _, err := b.Render(ctx, Bindings{"x": "1"}); err != nil {
		t.Fatal(err)
	}

	if strings.Contains(first.String(), "render complete") {
		t.Errorf("second caller's render traced to the first logger:\n%s", first.String())
	}

	if !strings.Contains(second.String(), `"msg":"render complete"`) {
		t.Errorf("second caller's logger missed the render trace:\n%s", second.String())
	}

	plain, err := ParseCached(ctx, `p: x`)
	if err != nil {
		t.Fatal(err)
	}

	before := first.Len() + second.Len()

	if _, err := plain.Render(ctx, Bindings{"x": "1"}); err != nil {
		t.Fatal(err)
	}

	if after := first.Len() + second.Len(); after != before {
		t.Error("caller without a logger traced to another caller's logger")
	}
}

func TestCacheKey(t *testing.T) {
	o := makeOptions()

	if cacheKey("a", o) != cacheKey("a", o) {
		t.Error("cache key is not stable")
	}

	if cacheKey("a", o) == cacheKey("b", o) {
		t.Error("different sources share a key")
	}

	if cacheKey("a", o) == cacheKey("a", makeOptions(WithMaxDepth(1))) {
		t.Error("different options share a key")
	}
}
