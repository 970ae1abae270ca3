package lang

import (
	"unicode"
	"unicode/utf8"
)

// Scan splits template source into tokens.
//
// Scan never fails: input that no lexical rule accepts, including an
// unterminated string, is returned as an [Invalid] token and left for the
// parser to report. The result always ends with exactly one [EOF] token.
func Scan(source string) []Token {
	s := &scanner{
		input: []byte(source),
		line:  1,
		col:   1,
	}

	tokens := make([]Token, 0, len(source)/4+1)

	for {
		tok := s.next()
		tokens = append(tokens, tok)

		if tok.Kind == EOF {
			return tokens
		}
	}
}

// scanner holds the scanner state.
type scanner struct {
	input []byte
	pos   int
	line  int
	col   int
}

// next returns the next token from the input.
func (s *scanner) next() Token {
	s.skipWhitespaceAndComments()

	pos := s.position()

	if s.eof() {
		return Token{Kind: EOF, Pos: pos}
	}

	ch := s.peek()

	if kind, ok := punctuation[ch]; ok {
		s.advance()

		return Token{Kind: kind, Text: string(ch), Pos: pos}
	}

	switch {
	case ch == '"':
		return s.scanString(pos)

	case isIdentifierStart(ch):
		return Token{Kind: Identifier, Text: s.scanIdentifier(), Pos: pos}
	}

	s.advance()

	return Token{Kind: Invalid, Text: string(ch), Pos: pos}
}

// scanIdentifier consumes an identifier. A hyphen is accepted between
// identifier characters so that HTML names like http-equiv scan as one
// token.
func (s *scanner) scanIdentifier() string {
	start := s.pos

	s.advance()

	for !s.eof() {
		ch := s.peek()

		if isIdentifierContinue(ch) {
			s.advance()

			continue
		}

		if ch == '-' {
			r, _ := utf8.DecodeRune(s.input[s.pos+1:])
			if isIdentifierContinue(r) {
				s.advance()

				continue
			}
		}

		break
	}

	return string(s.input[start:s.pos])
}

// scanString consumes a double-quoted string. The contents are kept verbatim;
// a backslash only prevents the following character from closing the string.
func (s *scanner) scanString(pos Position) Token {
	s.advance() // opening quote

	start := s.pos

	for !s.eof() {
		ch := s.peek()

		if ch == '\\' {
			s.advance()

			if !s.eof() {
				s.advance()
			}

			continue
		}

		if ch == '"' {
			text := string(s.input[start:s.pos])
			s.advance() // closing quote

			return Token{Kind: String, Text: text, Pos: pos}
		}

		s.advance()
	}

	return Token{Kind: Invalid, Text: string(s.input[start-1:]), Pos: pos}
}

func (s *scanner) peek() rune {
	if s.eof() {
		return 0
	}

	r, _ := utf8.DecodeRune(s.input[s.pos:])

	return r
}

func (s *scanner) peekN(n int) string {
	if s.pos+n > len(s.input) {
		return string(s.input[s.pos:])
	}

	return string(s.input[s.pos : s.pos+n])
}

func (s *scanner) advance() {
	if s.eof() {
		return
	}

	r, size := utf8.DecodeRune(s.input[s.pos:])

	s.pos += size
	if r == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.input)
}

func (s *scanner) position() Position {
	return Position{
		Offset: s.pos,
		Line:   s.line,
		Column: s.col,
	}
}

func (s *scanner) skipWhitespaceAndComments() {
	for {
		for !s.eof() && unicode.IsSpace(s.peek()) {
			s.advance()
		}

		switch s.peekN(2) {
		case "//":
			for !s.eof() && s.peek() != '\n' {
				s.advance()
			}

		case "/*":
			s.advance()
			s.advance()

			for !s.eof() && s.peekN(2) != "*/" {
				s.advance()
			}

			s.advance()
			s.advance()

		default:
			return
		}
	}
}

// Character classification

func isIdentifierStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentifierContinue(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
