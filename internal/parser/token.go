package parser

// TokenType enumerates the lexical token kinds of the Java subset.
type TokenType int

const (
	EOF TokenType = iota
	IDENT
	NUMBER
	STRING
	CHAR

	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACKET
	RBRACKET
	COMMA
	DOT
	SEMICOLON
	AT
	ARROW

	// OPERATOR covers every remaining operator character; the subset parser
	// only needs to know such a token is not part of a call chain.
	OPERATOR

	PACKAGE
	IMPORT
	STATIC
	CLASS
	RETURN
	BREAK
	CONTINUE
)

var keywords = map[string]TokenType{
	"package":  PACKAGE,
	"import":   IMPORT,
	"static":   STATIC,
	"class":    CLASS,
	"return":   RETURN,
	"break":    BREAK,
	"continue": CONTINUE,
}

// Position is a source location. Offset is a byte offset into the original
// source, used for verbatim raw-statement capture.
type Position struct {
	Line   int
	Column int
	Offset int
}

type Token struct {
	Type   TokenType
	Lexeme string
	Pos    Position
}

// End returns the byte offset just past the token.
func (t Token) End() int {
	return t.Pos.Offset + len(t.Lexeme)
}
