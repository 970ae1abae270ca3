package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
)

// Format writes the template in canonical source syntax to the writer.
//
// With indent zero the output is a single line; otherwise each item is on
// its own line, indented by indent spaces per level. Parsing the output
// yields a tree [Equal] to the original.
func (t *Template) Format(_ context.Context, w io.Writer, indent int) error {
	return Format(w, t.Root, indent)
}

// Format writes the tree rooted at n in canonical source syntax.
func Format(w io.Writer, n Node, indent int) error {
	var sb strings.Builder

	formatNode(&sb, n, indent, 0)

	// Final newline
	sb.WriteByte('\n')

	_, err := io.WriteString(w, sb.String())

	return err
}

// formatNode formats a node based on its type.
func formatNode(sb *strings.Builder, n Node, indent, depth int) {
	switch n := n.(type) {
	case *Element:
		formatElement(sb, n, indent, depth)

	case *Content:
		sb.WriteString("$: ")
		sb.WriteString(formatValue(n.Value))
	}
}

// formatElement uses the shortest form that re-parses to the same element:
// "tag: value" for a lone content child, "tag* { ... }" for void elements,
// and "tag { ... }" otherwise.
func formatElement(sb *strings.Builder, e *Element, indent, depth int) {
	sb.WriteString(e.Tag)

	if !e.Void && len(e.Attributes) == 0 && len(e.Children) == 1 {
		if c, ok := e.Children[0].(*Content); ok {
			sb.WriteString(": ")
			sb.WriteString(formatValue(c.Value))

			return
		}
	}

	if e.Void {
		sb.WriteByte('*')
	}

	sb.WriteString(" {")

	items := len(e.Attributes) + len(e.Children)
	if e.Void {
		items = len(e.Attributes)
	}

	if items == 0 {
		sb.WriteByte('}')

		return
	}

	sep := func() {
		if indent > 0 {
			sb.WriteByte('\n')
			sb.WriteString(strings.Repeat(" ", (depth+1)*indent))
		} else {
			sb.WriteByte(' ')
		}
	}

	for _, attr := range e.Attributes {
		sep()
		sb.WriteString(attr.Name)
		sb.WriteByte('=')
		sb.WriteString(formatValue(attr.Value))
	}

	if !e.Void {
		for _, child := range e.Children {
			sep()
			formatNode(sb, child, indent, depth+1)
		}
	}

	// Closing brace
	if indent > 0 {
		sb.WriteByte('\n')
		sb.WriteString(strings.Repeat(" ", depth*indent))
	} else {
		sb.WriteByte(' ')
	}

	sb.WriteByte('}')
}

func formatValue(v Value) string {
	switch v := v.(type) {
	case Literal:
		return `"` + v.Text + `"`
	case Binding:
		return v.Name
	default:
		return `""`
	}
}

// FormatJSON writes the template tree as JSON to the writer.
func (t *Template) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(ToData(t.Root), "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(ToData(t.Root))
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes the template tree as YAML to the writer.
func (t *Template) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, ToData(t.Root), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}
