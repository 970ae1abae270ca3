package lang

import (
	"bytes"
	"context"
	"encoding/gob"
	"log/slog"
	"strconv"
	"sync"

	"github.com/zeebo/xxh3"

	"github.com/ardnew/hyprtxt/log"
)

// globalCache stores parsed templates keyed by source and options hash.
// Templates are immutable, so a cached value is shared by every caller.
//
//nolint:gochecknoglobals
var globalCache sync.Map

// entry tracks the parse state of one cached source.
type entry struct {
	once     sync.Once
	template *Template
	err      error
}

// hashOptions encodes options using gob and hashes with xxh3.
// Returns a hash that uniquely identifies the options configuration.
func hashOptions(o options) uint64 {
	var buf bytes.Buffer

	enc := gob.NewEncoder(&buf)

	// Encode relevant options fields
	_ = enc.Encode(o.maxDepth)

	return xxh3.Hash(buf.Bytes())
}

// cacheKey returns the cache key for source parsed with o.
func cacheKey(source string, o options) string {
	return strconv.FormatUint(xxh3.HashString(source)^hashOptions(o), 36)
}

// ParseCached behaves like [ParseString] but parses each distinct source
// (under equal options) only once per process, even when called from many
// goroutines. Parse errors are cached as well.
//
// The logger is not part of the cache key. Callers without a logger share
// one cached Template; a caller passing [WithLogger] receives a copy of it
// that traces renders to that logger.
func ParseCached(ctx context.Context, source string, opts ...Option) (*Template, error) {
	o := makeOptions(opts...)
	key := cacheKey(source, o)

	value, cacheHit := globalCache.LoadOrStore(key, new(entry))

	e, ok := value.(*entry)
	if !ok {
		return nil, ErrInvalidNode.
			With(slog.String("issue", "invalid entry type in cache"))
	}

	o.logger.TraceContext(ctx, "cache lookup",
		slog.String("key", key),
		slog.Bool("cache_hit", cacheHit))

	e.once.Do(func() {
		e.template, e.err = ParseString(ctx, source, opts...)
		if e.template != nil {
			e.template.logger = log.Logger{}
		}
	})

	if e.err != nil || o.logger.Logger == nil {
		return e.template, e.err
	}

	return e.template.WithLogger(o.logger), nil
}

// ClearCache removes all cached templates.
// This is primarily useful for testing or when memory needs to be reclaimed.
func ClearCache() {
	globalCache.Clear()
}
