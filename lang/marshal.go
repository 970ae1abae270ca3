package lang

import (
	"encoding/json"
)

// NodeData is a serializable view of a syntax tree node.
//
// Elements set Tag (and Void, Attributes, Children as applicable). Content
// leaves set exactly one of Literal or Binding.
type NodeData struct {
	Tag        string          `json:"tag,omitempty"        yaml:"tag,omitempty"`
	Void       bool            `json:"void,omitempty"       yaml:"void,omitempty"`
	Attributes []AttributeData `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Children   []NodeData      `json:"children,omitempty"   yaml:"children,omitempty"`
	Literal    *string         `json:"literal,omitempty"    yaml:"literal,omitempty"`
	Binding    string          `json:"binding,omitempty"    yaml:"binding,omitempty"`
}

// AttributeData is a serializable view of an [Attribute].
type AttributeData struct {
	Name    string  `json:"name"              yaml:"name"`
	Literal *string `json:"literal,omitempty" yaml:"literal,omitempty"`
	Binding string  `json:"binding,omitempty" yaml:"binding,omitempty"`
}

// ToData converts the tree rooted at n to its serializable view.
func ToData(n Node) NodeData {
	switch n := n.(type) {
	case *Element:
		d := NodeData{Tag: n.Tag, Void: n.Void}

		for _, attr := range n.Attributes {
			a := AttributeData{Name: attr.Name}
			a.Literal, a.Binding = valueData(attr.Value)
			d.Attributes = append(d.Attributes, a)
		}

		for _, child := range n.Children {
			d.Children = append(d.Children, ToData(child))
		}

		return d

	case *Content:
		var d NodeData

		d.Literal, d.Binding = valueData(n.Value)

		return d

	default:
		return NodeData{}
	}
}

func valueData(v Value) (*string, string) {
	switch v := v.(type) {
	case Literal:
		text := v.Text

		return &text, ""
	case Binding:
		return nil, v.Name
	default:
		return nil, ""
	}
}

// MarshalJSON implements json.Marshaler for Template.
func (t *Template) MarshalJSON() ([]byte, error) {
	return json.Marshal(ToData(t.Root))
}
