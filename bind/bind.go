// Package bind builds render contexts for hyprtxt templates from command
// line pairs, YAML documents and computed expressions.
package bind

import (
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/goccy/go-yaml"
	"github.com/microcosm-cc/bluemonday"

	"github.com/ardnew/hyprtxt/lang"
)

var (
	ErrInvalidPair = lang.NewError("invalid binding")
	ErrInvalidName = lang.NewError("invalid binding name")
	ErrDecode      = lang.NewError("failed to decode bindings")
	ErrSequence    = lang.NewError("sequences cannot be bound")
	ErrCompile     = lang.NewError("failed to compile expression")
	ErrEvaluate    = lang.NewError("failed to evaluate expression")
)

// Separator joins the keys of nested YAML mappings into one binding name.
const Separator = "_"

// Parse converts name=value pairs into bindings. The value may be empty and
// may itself contain '='. Later pairs override earlier ones.
func Parse(pairs []string) (lang.Bindings, error) {
	b := make(lang.Bindings, len(pairs))

	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, ErrInvalidPair.With(slog.String("pair", pair))
		}

		if !ValidName(name) {
			return nil, ErrInvalidName.With(slog.String("name", name))
		}

		b[name] = value
	}

	return b, nil
}

// ValidName reports whether name can be referenced as a binding in template
// source, i.e. whether it scans as a single identifier.
func ValidName(name string) bool {
	tokens := lang.Scan(name)

	return len(tokens) == 2 &&
		tokens[0].Kind == lang.Identifier &&
		tokens[0].Text == name
}

// LoadYAML reads a YAML mapping as bindings.
//
// Scalars are formatted as strings and null becomes the empty string.
// Nested mappings are flattened by joining keys with [Separator], so
// site: {title: x} binds site_title. Sequences are rejected.
func LoadYAML(r io.Reader) (lang.Bindings, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrDecode.Wrap(err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, ErrDecode.Wrap(err)
	}

	b := make(lang.Bindings, len(doc))
	if err := flatten(b, "", doc); err != nil {
		return nil, err
	}

	return b, nil
}

func flatten(b lang.Bindings, prefix string, m map[string]any) error {
	for _, key := range slices.Sorted(maps.Keys(m)) {
		name := key
		if prefix != "" {
			name = prefix + Separator + key
		}

		switch v := m[key].(type) {
		case map[string]any:
			if err := flatten(b, name, v); err != nil {
				return err
			}

		case map[any]any:
			sm := make(map[string]any, len(v))
			for k, vv := range v {
				sm[fmt.Sprint(k)] = vv
			}

			if err := flatten(b, name, sm); err != nil {
				return err
			}

		case []any:
			return ErrSequence.With(slog.String("name", name))

		case nil:
			b[name] = ""

		default:
			b[name] = fmt.Sprint(v)
		}
	}

	return nil
}

// Evaluate computes a binding for each named expression and returns b
// extended with the results.
//
// Expressions are expr-lang programs whose environment is b, with every
// value a string. They see only the input bindings, never each other's
// results, so evaluation order does not matter. Results are formatted
// with fmt; nil becomes the empty string. b is not modified.
func Evaluate(b lang.Bindings, exprs map[string]string) (lang.Bindings, error) {
	env := make(map[string]any, len(b))
	for name, value := range b {
		env[name] = value
	}

	out := maps.Clone(b)
	if out == nil {
		out = make(lang.Bindings, len(exprs))
	}

	for _, name := range slices.Sorted(maps.Keys(exprs)) {
		if !ValidName(name) {
			return nil, ErrInvalidName.With(slog.String("name", name))
		}

		source := exprs[name]

		program, err := expr.Compile(source, expr.Env(env))
		if err != nil {
			return nil, ErrCompile.Wrap(err).
				With(slog.String("name", name), slog.String("source", source))
		}

		result, err := expr.Run(program, env)
		if err != nil {
			return nil, ErrEvaluate.Wrap(err).
				With(slog.String("name", name), slog.String("source", source))
		}

		if result == nil {
			out[name] = ""
		} else {
			out[name] = fmt.Sprint(result)
		}
	}

	return out, nil
}

// Merge combines bindings; a name bound in a later argument wins.
func Merge(bs ...lang.Bindings) lang.Bindings {
	out := make(lang.Bindings)
	for _, b := range bs {
		maps.Copy(out, b)
	}

	return out
}

// Sanitize wraps c so that every resolved value passes through p.
// With a nil policy, [bluemonday.UGCPolicy] is used.
func Sanitize(c lang.Context, p *bluemonday.Policy) lang.Context {
	if p == nil {
		p = bluemonday.UGCPolicy()
	}

	if c == nil {
		c = lang.Empty
	}

	return &sanitized{ctx: c, policy: p}
}

type sanitized struct {
	ctx    lang.Context
	policy *bluemonday.Policy
}

func (s *sanitized) Lookup(name string) (string, bool) {
	v, ok := s.ctx.Lookup(name)
	if !ok {
		return "", false
	}

	return s.policy.Sanitize(v), true
}

// Names forwards name enumeration so that unbound name suggestions keep
// working through the wrapper.
func (s *sanitized) Names() []string {
	if n, ok := s.ctx.(interface{ Names() []string }); ok {
		return n.Names()
	}

	return nil
}
