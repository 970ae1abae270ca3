package lang

import (
	"strings"
)

// Parse builds a syntax tree from scanned tokens.
//
// The tokens must form exactly one element followed by [EOF]. The first
// syntax error aborts the parse; no partial tree is returned.
func Parse(tokens []Token, opts ...Option) (Node, error) {
	o := makeOptions(opts...)

	return parseTokens(tokens, "", o)
}

func parseTokens(tokens []Token, source string, o options) (Node, error) {
	p := &parser{
		tokens:   tokens,
		source:   source,
		maxDepth: o.maxDepth,
	}

	root, err := p.parseElement()
	if err != nil {
		return nil, err
	}

	if tok := p.peek(0); tok.Kind != EOF {
		return nil, p.errorAt(tok, EOF)
	}

	return root, nil
}

// parser holds the parser state: a cursor over the token sequence.
type parser struct {
	tokens   []Token
	pos      int
	depth    int
	maxDepth int
	source   string
}

// item classifies what starts at the cursor inside a block.
type item int

const (
	itemNone item = iota
	itemElement
	itemContent
	itemAttribute
	itemClass
	itemID
)

// classify applies the block dispatch table. Rules are tried in priority
// order and the first match wins; at most three tokens are examined.
func (p *parser) classify() item {
	t0, t1, t2 := p.peek(0).Kind, p.peek(1).Kind, p.peek(2).Kind

	switch {
	case t0 == Identifier && t1 == BraceOpen: // p { ... }
		return itemElement
	case t0 == Identifier && t1 == Colon: // p: "x"
		return itemElement
	case t0 == Identifier && t1 == Star && t2 == BraceOpen: // meta* { ... }
		return itemElement
	case t0 == Dollar && t1 == Colon: // $: "x"
		return itemContent
	case t0 == Identifier && t1 == Assign: // name="x"
		return itemAttribute
	case t0 == Dot && t1 == Assign: // .="x"
		return itemClass
	case t0 == Hash && t1 == Assign: // #="x"
		return itemID
	default:
		return itemNone
	}
}

// parseElement parses: Ident ( '*' Block | ':' Value | Block ).
func (p *parser) parseElement() (*Element, error) {
	ident := p.peek(0)
	if ident.Kind != Identifier {
		return nil, p.errorAt(ident, Identifier)
	}

	p.depth++
	defer func() { p.depth-- }()

	if p.maxDepth > 0 && p.depth > p.maxDepth {
		err := p.errorAt(ident)
		err.Reason = ErrMaxDepthExceeded.msg
		err.Cause = ErrMaxDepthExceeded

		return nil, err
	}

	p.advance()

	elem := &Element{Tag: ident.Text, Pos: ident.Pos}

	switch tok := p.peek(0); tok.Kind {
	case Star:
		p.advance()

		elem.Void = true

		if err := p.parseBlock(elem); err != nil {
			return nil, err
		}

		return elem, nil

	case Colon:
		p.advance()

		value, err := p.parseValue()
		if err != nil {
			return nil, err
		}

		elem.Children = []Node{&Content{Value: value, Pos: tok.Pos}}

		return elem, nil

	case BraceOpen:
		if err := p.parseBlock(elem); err != nil {
			return nil, err
		}

		return elem, nil

	default:
		return nil, p.errorAt(tok, Star, Colon, BraceOpen)
	}
}

// parseBlock parses: '{' Item* '}' into elem.
func (p *parser) parseBlock(elem *Element) error {
	if tok := p.peek(0); tok.Kind != BraceOpen {
		return p.errorAt(tok, BraceOpen)
	}

	p.advance()

	for {
		// Separators carry no meaning.
		for p.peek(0).Kind == Comma {
			p.advance()
		}

		if p.peek(0).Kind == BraceClose {
			p.advance()

			return nil
		}

		start := p.peek(0)
		kind := p.classify()

		if elem.Void && (kind == itemElement || kind == itemContent) {
			err := p.errorAt(start)
			err.Reason = "void element " + elem.Tag + " cannot have content"

			return err
		}

		switch kind {
		case itemElement:
			child, err := p.parseElement()
			if err != nil {
				return err
			}

			elem.Children = append(elem.Children, child)

		case itemContent:
			content, err := p.parseContent()
			if err != nil {
				return err
			}

			elem.Children = append(elem.Children, content)

		case itemAttribute, itemClass, itemID:
			attr, err := p.parseAttribute(kind)
			if err != nil {
				return err
			}

			elem.Attributes = append(elem.Attributes, attr)

		default:
			return p.blockError()
		}
	}
}

// parseAttribute parses: Ident '=' Value | '.' '=' Value | '#' '=' Value.
func (p *parser) parseAttribute(kind item) (Attribute, error) {
	var name string

	switch kind {
	case itemClass:
		name = "class"
	case itemID:
		name = "id"
	default:
		name = p.peek(0).Text
	}

	p.advance() // name, '.' or '#'
	p.advance() // '='

	value, err := p.parseValue()
	if err != nil {
		return Attribute{}, err
	}

	return Attribute{Name: name, Value: value}, nil
}

// parseContent parses: '$' ':' Value.
func (p *parser) parseContent() (*Content, error) {
	pos := p.peek(0).Pos

	p.advance() // '$'
	p.advance() // ':'

	value, err := p.parseValue()
	if err != nil {
		return nil, err
	}

	return &Content{Value: value, Pos: pos}, nil
}

// parseValue parses: Str | Ident.
func (p *parser) parseValue() (Value, error) {
	tok := p.peek(0)

	switch tok.Kind {
	case String:
		p.advance()

		return Literal{Text: tok.Text}, nil

	case Identifier:
		p.advance()

		return Binding{Name: tok.Text}, nil

	default:
		return nil, p.errorAt(tok, String, Identifier)
	}
}

// blockError reports the token at which no block item could be matched,
// naming what would have completed the nearest partial match.
func (p *parser) blockError() *SyntaxError {
	t0, t1 := p.peek(0), p.peek(1)

	switch t0.Kind {
	case Identifier:
		if t1.Kind == Star {
			return p.errorAt(p.peek(2), BraceOpen)
		}

		return p.errorAt(t1, BraceOpen, Colon, Star, Assign)

	case Dollar:
		return p.errorAt(t1, Colon)

	case Dot, Hash:
		return p.errorAt(t1, Assign)

	default:
		return p.errorAt(t0, Identifier, Dollar, Dot, Hash, BraceClose)
	}
}

// errorAt returns a syntax error located at tok.
func (p *parser) errorAt(tok Token, expected ...Kind) *SyntaxError {
	err := &SyntaxError{
		Pos:      tok.Pos,
		Found:    tok,
		Expected: expected,
		Source:   p.source,
	}

	if tok.Kind == Invalid && strings.HasPrefix(tok.Text, `"`) {
		err.Reason = "unterminated string"
	}

	return err
}

// peek returns the token n positions ahead of the cursor, or EOF past the
// end of the sequence.
func (p *parser) peek(n int) Token {
	if i := p.pos + n; i < len(p.tokens) {
		return p.tokens[i]
	}

	eof := Token{Kind: EOF, Pos: Position{Line: 1, Column: 1}}
	if len(p.tokens) > 0 {
		eof.Pos = p.tokens[len(p.tokens)-1].Pos
	}

	return eof
}

func (p *parser) advance() {
	if p.pos < len(p.tokens) {
		p.pos++
	}
}
