package lang

// Value is the unit of dynamic content: a [Literal] taken verbatim from source
// or a [Binding] resolved against a [Context] at render time.
type Value interface {
	value()
}

// Literal is a quoted string from template source.
type Literal struct {
	Text string
}

func (Literal) value() {}

// Binding is a named reference resolved against a [Context] when rendering.
type Binding struct {
	Name string
}

func (Binding) value() {}

// Lit returns a [Literal] value.
func Lit(text string) Value { return Literal{Text: text} }

// Bind returns a [Binding] value.
func Bind(name string) Value { return Binding{Name: name} }

// Attr returns an attribute with the given name and value.
func Attr(name string, value Value) Attribute {
	return Attribute{Name: name, Value: value}
}

// Class returns a class attribute, as written by the ".=" shorthand.
func Class(value Value) Attribute { return Attr("class", value) }

// ID returns an id attribute, as written by the "#=" shorthand.
func ID(value Value) Attribute { return Attr("id", value) }

// Text returns a content leaf holding a literal.
func Text(text string) *Content { return &Content{Value: Lit(text)} }

// Slot returns a content leaf holding a binding.
func Slot(name string) *Content { return &Content{Value: Bind(name)} }

// NewElement returns a container element with the given attributes and
// children.
func NewElement(tag string, attrs []Attribute, children ...Node) *Element {
	return &Element{
		Tag:        tag,
		Attributes: attrs,
		Children:   children,
	}
}

// NewVoid returns a void element with the given attributes.
func NewVoid(tag string, attrs ...Attribute) *Element {
	return &Element{
		Tag:        tag,
		Void:       true,
		Attributes: attrs,
	}
}
