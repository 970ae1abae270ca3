package lang

import "strconv"

// Kind classifies a [Token].
type Kind int

const (
	Invalid    Kind = iota // invalid
	EOF                    // end of input
	Identifier             // identifier
	String                 // string
	BraceOpen              // {
	BraceClose             // }
	Star                   // *
	Colon                  // :
	Assign                 // =
	Dot                    // .
	Hash                   // #
	Dollar                 // $
	Comma                  // ,
)

var kindNames = [...]string{
	Invalid:    "invalid",
	EOF:        "end of input",
	Identifier: "identifier",
	String:     "string",
	BraceOpen:  "{",
	BraceClose: "}",
	Star:       "*",
	Colon:      ":",
	Assign:     "=",
	Dot:        ".",
	Hash:       "#",
	Dollar:     "$",
	Comma:      ",",
}

// String returns the punctuation text of k, or a descriptive name for the
// non-punctuation kinds.
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}

	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// punctuation maps each single-character token to its kind.
var punctuation = map[rune]Kind{
	'{': BraceOpen,
	'}': BraceClose,
	'*': Star,
	':': Colon,
	'=': Assign,
	'.': Dot,
	'#': Hash,
	'$': Dollar,
	',': Comma,
}

// Position identifies a location in template source.
// Line and Column are 1-based; Offset is a byte offset.
type Position struct {
	Offset int
	Line   int
	Column int
}

// String returns "line:column".
func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// Token is a classified lexical unit.
//
// Text holds the identifier name, the string contents without the
// surrounding quotes, the punctuation character, or for Invalid tokens the
// offending input.
type Token struct {
	Kind Kind
	Text string
	Pos  Position
}

// String describes the token for diagnostics.
func (t Token) String() string {
	switch t.Kind {
	case Identifier:
		return "identifier " + strconv.Quote(t.Text)
	case String:
		return "string " + strconv.Quote(t.Text)
	case EOF:
		return t.Kind.String()
	case Invalid:
		return "invalid input " + strconv.Quote(t.Text)
	default:
		return strconv.Quote(t.Kind.String())
	}
}
