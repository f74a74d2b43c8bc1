package parser

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Scanner tokenizes Java source. It keeps byte offsets on every token so the
// parser can slice unmodeled statements out of the source verbatim.
type Scanner struct {
	source      string
	tokens      []Token
	start       int
	current     int
	line        int
	column      int
	startLine   int
	startColumn int
}

func NewScanner(source string) *Scanner {
	return &Scanner{
		source: source,
		line:   1,
		column: 1,
	}
}

func (s *Scanner) ScanTokens() ([]Token, error) {
	for !s.isAtEnd() {
		s.start = s.current
		s.startLine = s.line
		s.startColumn = s.column
		if err := s.scanToken(); err != nil {
			return nil, err
		}
	}
	s.tokens = append(s.tokens, Token{
		Type: EOF,
		Pos:  Position{Line: s.line, Column: s.column, Offset: s.current},
	})
	return s.tokens, nil
}

func (s *Scanner) scanToken() error {
	c := s.advance()
	switch c {
	case '(':
		s.addToken(LPAREN)
	case ')':
		s.addToken(RPAREN)
	case '{':
		s.addToken(LBRACE)
	case '}':
		s.addToken(RBRACE)
	case '[':
		s.addToken(LBRACKET)
	case ']':
		s.addToken(RBRACKET)
	case ',':
		s.addToken(COMMA)
	case ';':
		s.addToken(SEMICOLON)
	case '@':
		s.addToken(AT)
	case '.':
		// a leading digit after '.' would be a float literal, but the subset
		// never needs to distinguish it from a member access
		s.addToken(DOT)
	case ' ', '\r', '\t':
		// skip
	case '\n':
		s.line++
		s.column = 1
	case '/':
		switch {
		case s.match('/'):
			for !s.isAtEnd() && s.peek() != '\n' {
				s.advance()
			}
		case s.match('*'):
			if err := s.blockComment(); err != nil {
				return err
			}
		default:
			s.addToken(OPERATOR)
		}
	case '"':
		return s.stringLiteral()
	case '\'':
		return s.charLiteral()
	case '-':
		if s.match('>') {
			s.addToken(ARROW)
		} else {
			s.addToken(OPERATOR)
		}
	default:
		if isDigit(c) {
			s.number()
			return nil
		}
		if isIdentStart(c) {
			s.identifier()
			return nil
		}
		// every other punctuation character is an opaque operator
		s.addToken(OPERATOR)
	}
	return nil
}

func (s *Scanner) blockComment() error {
	for !s.isAtEnd() {
		if s.peek() == '*' && s.peekNext() == '/' {
			s.advance()
			s.advance()
			return nil
		}
		if s.peek() == '\n' {
			s.line++
			s.column = 0
		}
		s.advance()
	}
	return fmt.Errorf("line %d: unterminated block comment", s.startLine)
}

func (s *Scanner) stringLiteral() error {
	for !s.isAtEnd() && s.peek() != '"' {
		if s.peek() == '\\' {
			s.advance()
			if s.isAtEnd() {
				break
			}
		}
		if s.peek() == '\n' {
			return fmt.Errorf("line %d: unterminated string literal", s.startLine)
		}
		s.advance()
	}
	if s.isAtEnd() {
		return fmt.Errorf("line %d: unterminated string literal", s.startLine)
	}
	s.advance() // closing quote
	s.addToken(STRING)
	return nil
}

func (s *Scanner) charLiteral() error {
	for !s.isAtEnd() && s.peek() != '\'' {
		if s.peek() == '\\' {
			s.advance()
			if s.isAtEnd() {
				break
			}
		}
		s.advance()
	}
	if s.isAtEnd() {
		return fmt.Errorf("line %d: unterminated character literal", s.startLine)
	}
	s.advance()
	s.addToken(CHAR)
	return nil
}

func (s *Scanner) number() {
	for !s.isAtEnd() && (isDigit(s.peek()) || isNumberCont(s.peek())) {
		s.advance()
	}
	s.addToken(NUMBER)
}

func (s *Scanner) identifier() {
	for !s.isAtEnd() && isIdentPart(s.peek()) {
		s.advance()
	}
	lexeme := s.source[s.start:s.current]
	if kw, ok := keywords[lexeme]; ok {
		s.addToken(kw)
		return
	}
	s.addToken(IDENT)
}

func (s *Scanner) addToken(t TokenType) {
	s.tokens = append(s.tokens, Token{
		Type:   t,
		Lexeme: s.source[s.start:s.current],
		Pos:    Position{Line: s.startLine, Column: s.startColumn, Offset: s.start},
	})
}

func (s *Scanner) advance() byte {
	c := s.source[s.current]
	s.current++
	s.column++
	return c
}

func (s *Scanner) match(expected byte) bool {
	if s.isAtEnd() || s.source[s.current] != expected {
		return false
	}
	s.advance()
	return true
}

func (s *Scanner) peek() byte {
	if s.isAtEnd() {
		return 0
	}
	return s.source[s.current]
}

func (s *Scanner) peekNext() byte {
	if s.current+1 >= len(s.source) {
		return 0
	}
	return s.source[s.current+1]
}

func (s *Scanner) isAtEnd() bool {
	return s.current >= len(s.source)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// isNumberCont accepts the characters that may continue a numeric literal:
// hex digits and prefixes, underscores, exponents, and type suffixes.
func isNumberCont(c byte) bool {
	switch {
	case isDigit(c), c == '_', c == '.', c == 'x', c == 'X', c == 'b', c == 'B':
		return true
	case c == 'e', c == 'E', c == 'l', c == 'L', c == 'f', c == 'F', c == 'd', c == 'D':
		return true
	case c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		return true
	}
	return false
}

func isIdentStart(c byte) bool {
	if c == '_' || c == '$' {
		return true
	}
	if c < utf8.RuneSelf {
		return unicode.IsLetter(rune(c))
	}
	// non-ASCII identifier characters are rare in the sources this tool
	// targets; treat any multibyte rune start as part of an identifier
	return true
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
