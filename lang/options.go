package lang

import (
	"github.com/ardnew/hyprtxt/log"
)

// DefaultMaxDepth is the default maximum element nesting depth.
// Users may modify this before parsing to change the default.
var DefaultMaxDepth = 256

// options holds parse configuration.
// The comparable fields form part of the parse cache key.
type options struct {
	maxDepth int
	logger   log.Logger // doesn't affect the cache key
}

// Option configures parsing behavior.
type Option func(*options)

// WithMaxDepth sets the maximum element nesting depth. A depth of zero or
// less disables the limit.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		o.maxDepth = depth
	}
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func makeOptions(opts ...Option) options {
	o := options{maxDepth: DefaultMaxDepth}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// renderOptions holds render configuration.
type renderOptions struct {
	mergeAttributes bool
	suggestions     int
}

// RenderOption configures rendering behavior.
type RenderOption func(*renderOptions)

// WithMergeAttributes merges attributes that share a name into the position
// of the first occurrence, joining their values with a single space.
// By default every attribute is rendered in source order.
func WithMergeAttributes() RenderOption {
	return func(o *renderOptions) {
		o.mergeAttributes = true
	}
}

// WithSuggestions sets how many close matches an [UnboundNameError] lists.
// Zero disables suggestions.
func WithSuggestions(n int) RenderOption {
	return func(o *renderOptions) {
		o.suggestions = n
	}
}

// DefaultSuggestions is the default number of unbound name suggestions.
const DefaultSuggestions = 3

func makeRenderOptions(opts ...RenderOption) renderOptions {
	o := renderOptions{suggestions: DefaultSuggestions}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}
