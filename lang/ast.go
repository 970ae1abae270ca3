package lang

import (
	"io"
	"iter"
	"strconv"
	"strings"
)

// Node is an element of the template syntax tree: either an [*Element] or a
// [*Content] leaf.
//
// Nodes are never modified after parsing, so a tree may be rendered by any
// number of goroutines at once.
type Node interface {
	node()
}

// Element is an HTML element.
//
// A Void element renders without children or a closing tag. Attributes are
// kept in source order; repeated names are preserved, not merged.
type Element struct {
	Tag        string
	Void       bool
	Attributes []Attribute
	Children   []Node
	Pos        Position
}

func (*Element) node() {}

// Content is a text or placeholder leaf.
type Content struct {
	Value Value
	Pos   Position
}

func (*Content) node() {}

// Attribute is a single name="value" pair of an element.
type Attribute struct {
	Name  string
	Value Value
}

// Walk returns an iterator over n and its descendants in depth-first,
// source order.
func Walk(n Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		walk(n, yield)
	}
}

func walk(n Node, yield func(Node) bool) bool {
	if n == nil {
		return true
	}

	if !yield(n) {
		return false
	}

	if e, ok := n.(*Element); ok {
		for _, child := range e.Children {
			if !walk(child, yield) {
				return false
			}
		}
	}

	return true
}

// Equal reports whether two trees have the same shape, tags, attributes and
// values. Source positions are ignored.
func Equal(a, b Node) bool {
	switch x := a.(type) {
	case *Element:
		y, ok := b.(*Element)
		if !ok || x.Tag != y.Tag || x.Void != y.Void ||
			len(x.Attributes) != len(y.Attributes) ||
			len(x.Children) != len(y.Children) {
			return false
		}

		for i := range x.Attributes {
			if x.Attributes[i] != y.Attributes[i] {
				return false
			}
		}

		for i := range x.Children {
			if !Equal(x.Children[i], y.Children[i]) {
				return false
			}
		}

		return true

	case *Content:
		y, ok := b.(*Content)

		return ok && x.Value == y.Value

	default:
		return a == nil && b == nil
	}
}

// Print writes an indented, human-readable dump of the tree rooted at n.
func Print(w io.Writer, n Node) error {
	var sb strings.Builder

	printIndent(&sb, n, 0)

	_, err := io.WriteString(w, sb.String())

	return err
}

func printIndent(sb *strings.Builder, n Node, indent int) {
	prefix := strings.Repeat("  ", indent)

	switch n := n.(type) {
	case *Element:
		sb.WriteString(prefix)

		if n.Void {
			sb.WriteString("Void: ")
		} else {
			sb.WriteString("Element: ")
		}

		sb.WriteString(n.Tag)
		sb.WriteByte('\n')

		for _, attr := range n.Attributes {
			sb.WriteString(prefix + "  Attribute: " + attr.Name + " = ")
			sb.WriteString(describeValue(attr.Value))
			sb.WriteByte('\n')
		}

		for _, child := range n.Children {
			printIndent(sb, child, indent+1)
		}

	case *Content:
		sb.WriteString(prefix + "Content: " + describeValue(n.Value) + "\n")
	}
}

func describeValue(v Value) string {
	switch v := v.(type) {
	case Literal:
		return "Literal " + strconv.Quote(v.Text)
	case Binding:
		return "Binding " + v.Name
	default:
		return "(nil)"
	}
}
