package lang

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Render expands the tree rooted at node into HTML, resolving bindings
// against c.
//
// Rendering is pure and deterministic. On error the returned string is
// empty; no partial output is produced.
func Render(node Node, c Context, opts ...RenderOption) (string, error) {
	if c == nil {
		c = Empty
	}

	r := &renderer{
		ctx:  c,
		opts: makeRenderOptions(opts...),
	}

	var sb strings.Builder

	if err := r.node(&sb, node); err != nil {
		return "", err
	}

	return sb.String(), nil
}

type renderer struct {
	ctx  Context
	opts renderOptions
}

func (r *renderer) node(sb *strings.Builder, n Node) error {
	switch n := n.(type) {
	case *Content:
		s, err := r.resolve(n.Value)
		if err != nil {
			return err
		}

		sb.WriteString(s)

		return nil

	case *Element:
		return r.element(sb, n)

	default:
		return ErrInvalidNode.With(slog.String("type", fmt.Sprintf("%T", n)))
	}
}

func (r *renderer) element(sb *strings.Builder, e *Element) error {
	sb.WriteByte('<')
	sb.WriteString(e.Tag)

	if err := r.attributes(sb, e.Attributes); err != nil {
		return err
	}

	switch {
	case e.Void:
		sb.WriteByte('>')

	case len(e.Children) == 0:
		sb.WriteString("/>")

	default:
		sb.WriteByte('>')

		for _, child := range e.Children {
			if err := r.node(sb, child); err != nil {
				return err
			}
		}

		sb.WriteString("</")
		sb.WriteString(e.Tag)
		sb.WriteByte('>')
	}

	return nil
}

func (r *renderer) attributes(sb *strings.Builder, attrs []Attribute) error {
	if r.opts.mergeAttributes {
		return r.mergedAttributes(sb, attrs)
	}

	for _, attr := range attrs {
		value, err := r.resolve(attr.Value)
		if err != nil {
			return err
		}

		writeAttribute(sb, attr.Name, value)
	}

	return nil
}

// mergedAttributes writes each attribute name once, at the position of its
// first occurrence, with all of its values joined by a space.
func (r *renderer) mergedAttributes(sb *strings.Builder, attrs []Attribute) error {
	order := make([]string, 0, len(attrs))
	values := make(map[string][]string, len(attrs))

	for _, attr := range attrs {
		value, err := r.resolve(attr.Value)
		if err != nil {
			return err
		}

		if _, seen := values[attr.Name]; !seen {
			order = append(order, attr.Name)
		}

		values[attr.Name] = append(values[attr.Name], value)
	}

	for _, name := range order {
		writeAttribute(sb, name, strings.Join(values[name], " "))
	}

	return nil
}

func writeAttribute(sb *strings.Builder, name, value string) {
	sb.WriteByte(' ')
	sb.WriteString(name)
	sb.WriteString(`="`)
	sb.WriteString(value)
	sb.WriteByte('"')
}

func (r *renderer) resolve(v Value) (string, error) {
	switch v := v.(type) {
	case Literal:
		return v.Text, nil

	case Binding:
		if s, ok := r.ctx.Lookup(v.Name); ok {
			return s, nil
		}

		return "", &UnboundNameError{
			Name:        v.Name,
			Suggestions: r.suggest(v.Name),
		}

	default:
		return "", ErrInvalidNode.With(slog.String("type", fmt.Sprintf("%T", v)))
	}
}

// suggest returns the bound names that fuzzily match name, best first.
func (r *renderer) suggest(name string) []string {
	n, ok := r.ctx.(namer)
	if !ok || r.opts.suggestions <= 0 {
		return nil
	}

	matches := fuzzy.Find(name, n.Names())

	// Also try the reverse direction so that a longer unbound name still
	// matches a shorter bound one (e.g. "page_title" against "title").
	if len(matches) == 0 {
		for _, candidate := range n.Names() {
			if len(fuzzy.Find(candidate, []string{name})) > 0 {
				matches = append(matches, fuzzy.Match{Str: candidate})
			}
		}
	}

	out := make([]string, 0, min(len(matches), r.opts.suggestions))
	for _, m := range matches {
		if len(out) == r.opts.suggestions {
			break
		}

		out = append(out, m.Str)
	}

	if len(out) == 0 {
		return nil
	}

	return out
}
