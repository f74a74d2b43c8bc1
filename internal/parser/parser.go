package parser

import (
	"fmt"
	"strings"

	"github.com/jfix-dev/jfix/internal/java"
)

// ParseError reports a syntax failure with its source position.
type ParseError struct {
	Msg string
	Pos Position
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
}

// Resolver supplies declaring-type resolution for invocation and annotation
// names. File parsing derives one from the file's imports; template synthesis
// seeds one with stub declarations instead.
type Resolver interface {
	// ResolveStatic maps an unqualified method name to the fully qualified
	// name of its declaring type.
	ResolveStatic(name string) (string, bool)
	// ResolveType maps a simple type name to its fully qualified name.
	ResolveType(name string) (string, bool)
}

// ParseUnit parses one source file of the supported Java subset. Statements
// the subset does not model are preserved verbatim as raw nodes, so printing
// the unit reproduces their text exactly.
func ParseUnit(source string) (*java.CompilationUnit, error) {
	toks, err := NewScanner(source).ScanTokens()
	if err != nil {
		return nil, err
	}
	p := &Parser{source: source, toks: toks}
	return p.parseUnit()
}

// ParseStatements parses a bare statement sequence, resolving unqualified
// invocations through res. The template synthesizer uses this to type-check
// synthesized text against its stub context.
func ParseStatements(source string, res Resolver) ([]java.Stmt, error) {
	toks, err := NewScanner(source).ScanTokens()
	if err != nil {
		return nil, err
	}
	p := &Parser{source: source, toks: toks, res: res}
	var stmts []java.Stmt
	prevEnd := 0
	for !p.at(EOF) {
		lead := cleanTrivia(p.source[prevEnd:p.peekTok().Pos.Offset])
		st, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		setLeading(st, lead)
		stmts = append(stmts, st)
		prevEnd = p.prevTok().End()
	}
	return stmts, nil
}

type Parser struct {
	source string
	toks   []Token
	pos    int
	res    Resolver
}

var classModifiers = map[string]bool{
	"public": true, "protected": true, "private": true,
	"abstract": true, "final": true, "strictfp": true,
}

var methodModifiers = map[string]bool{
	"public": true, "protected": true, "private": true,
	"abstract": true, "final": true, "native": true,
	"synchronized": true, "strictfp": true, "default": true,
}

func (p *Parser) parseUnit() (*java.CompilationUnit, error) {
	unit := &java.CompilationUnit{}
	unit.Header = cleanTrivia(p.source[:p.peekTok().Pos.Offset])
	prevEnd := p.peekTok().Pos.Offset
	if p.at(PACKAGE) {
		p.advance()
		name, err := p.qualifiedName()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(SEMICOLON); err != nil {
			return nil, err
		}
		unit.Package = name
	}
	for p.at(IMPORT) {
		imp, err := p.parseImport()
		if err != nil {
			return nil, err
		}
		unit.Imports = append(unit.Imports, imp)
	}
	p.res = NewImportResolver(unit.Imports)
	if p.pos > 0 {
		prevEnd = p.prevTok().End()
	}
	for !p.at(EOF) {
		doc := cleanTrivia(p.source[prevEnd:p.peekTok().Pos.Offset])
		cls, err := p.parseClass()
		if err != nil {
			return nil, err
		}
		cls.Doc = doc
		unit.Classes = append(unit.Classes, cls)
		prevEnd = p.prevTok().End()
	}
	return unit, nil
}

func (p *Parser) parseImport() (*java.Import, error) {
	if _, err := p.expect(IMPORT); err != nil {
		return nil, err
	}
	static := false
	if p.at(STATIC) {
		p.advance()
		static = true
	}
	var segments []string
	for {
		switch {
		case p.at(IDENT):
			segments = append(segments, p.advance().Lexeme)
		case p.atOperator("*"):
			p.advance()
			segments = append(segments, "*")
		default:
			return nil, p.errorf("expected import path segment")
		}
		if p.at(DOT) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(SEMICOLON); err != nil {
		return nil, err
	}
	return &java.Import{Path: strings.Join(segments, "."), Static: static}, nil
}

func (p *Parser) parseClass() (*java.Class, error) {
	cls := &java.Class{Line: p.peekTok().Pos.Line}
	annotations, err := p.parseAnnotations()
	if err != nil {
		return nil, err
	}
	cls.Annotations = annotations
	for p.at(IDENT) && classModifiers[p.peekTok().Lexeme] {
		cls.Modifiers = append(cls.Modifiers, p.advance().Lexeme)
	}
	if !p.at(CLASS) {
		return nil, p.errorf("expected class declaration, found %q", p.peekTok().Lexeme)
	}
	p.advance()
	nameTok, err := p.expect(IDENT)
	if err != nil {
		return nil, err
	}
	cls.Name = nameTok.Lexeme
	// extends/implements clause is kept as raw text up to the class body
	heritageStart := p.peekTok().Pos.Offset
	heritageEnd := heritageStart
	for !p.at(LBRACE) && !p.at(EOF) {
		heritageEnd = p.advance().End()
	}
	cls.Heritage = strings.TrimSpace(p.source[heritageStart:heritageEnd])
	if _, err := p.expect(LBRACE); err != nil {
		return nil, err
	}
	prevEnd := p.prevTok().End()
	for !p.at(RBRACE) && !p.at(EOF) {
		doc := cleanTrivia(p.source[prevEnd:p.peekTok().Pos.Offset])
		member, err := p.parseMember(cls.Name)
		if err != nil {
			return nil, err
		}
		switch m := member.(type) {
		case *java.Method:
			m.Doc = doc
		case *java.RawMember:
			m.Doc = doc
		}
		cls.Members = append(cls.Members, member)
		prevEnd = p.prevTok().End()
	}
	if _, err := p.expect(RBRACE); err != nil {
		return nil, err
	}
	return cls, nil
}

func (p *Parser) parseMember(className string) (java.Member, error) {
	start := p.pos
	annotations, err := p.parseAnnotations()
	if err != nil {
		return nil, err
	}
	if m, ok := p.tryParseMethod(className, annotations); ok {
		return m, nil
	}
	p.pos = start
	raw, err := p.captureRawStmt()
	if err != nil {
		return nil, err
	}
	rs := raw.(*java.RawStmt)
	return &java.RawMember{Text: rs.Text, Line: rs.Line}, nil
}

func (p *Parser) parseAnnotations() ([]*java.Annotation, error) {
	var annotations []*java.Annotation
	for p.at(AT) {
		atTok := p.advance()
		path, err := p.qualifiedName()
		if err != nil {
			return nil, err
		}
		end := p.prevTok().End()
		if p.at(LPAREN) {
			if end, err = p.skipBalanced(LPAREN, RPAREN); err != nil {
				return nil, err
			}
		}
		ann := &java.Annotation{Name: p.source[atTok.End():end]}
		if strings.Contains(path, ".") {
			ann.Type = path
		} else if p.res != nil {
			if fqn, ok := p.res.ResolveType(path); ok {
				ann.Type = fqn
			}
		}
		annotations = append(annotations, ann)
	}
	return annotations, nil
}

// tryParseMethod attempts to parse a method (or constructor) declaration.
// On failure the caller backtracks and captures the member as raw text.
func (p *Parser) tryParseMethod(className string, annotations []*java.Annotation) (*java.Method, bool) {
	save := p.pos
	m := &java.Method{Annotations: annotations}
	for (p.at(IDENT) && methodModifiers[p.peekTok().Lexeme]) || p.at(STATIC) {
		m.Modifiers = append(m.Modifiers, p.advance().Lexeme)
	}
	typeStart := p.peekTok().Pos.Offset
	if p.atOperator("<") { // generic method type parameters, kept in ReturnType
		if _, err := p.skipAngles(); err != nil {
			p.pos = save
			return nil, false
		}
	}
	if p.at(IDENT) && p.peekAt(1, LPAREN) && p.peekTok().Lexeme == className {
		// constructor
		m.Name = p.advance().Lexeme
	} else {
		if !p.skipType() {
			p.pos = save
			return nil, false
		}
		typeEnd := p.prevTok().End()
		if !p.at(IDENT) {
			p.pos = save
			return nil, false
		}
		m.ReturnType = strings.TrimSpace(p.source[typeStart:typeEnd])
		m.Name = p.advance().Lexeme
	}
	m.Line = p.prevTok().Pos.Line
	if !p.at(LPAREN) {
		p.pos = save
		return nil, false
	}
	paramsStart := p.peekTok().End()
	paramsEnd, err := p.skipBalanced(LPAREN, RPAREN)
	if err != nil {
		p.pos = save
		return nil, false
	}
	m.Params = strings.TrimSpace(p.source[paramsStart : paramsEnd-1])
	if p.at(IDENT) && p.peekTok().Lexeme == "throws" {
		p.advance()
		throwsStart := p.peekTok().Pos.Offset
		throwsEnd := throwsStart
		for !p.at(LBRACE) && !p.at(SEMICOLON) && !p.at(EOF) {
			throwsEnd = p.advance().End()
		}
		m.Throws = strings.TrimSpace(p.source[throwsStart:throwsEnd])
	}
	switch {
	case p.at(SEMICOLON):
		p.advance() // abstract or native method, no body
	case p.at(LBRACE):
		body, err := p.parseBlock()
		if err != nil {
			p.pos = save
			return nil, false
		}
		m.Body = body
	default:
		p.pos = save
		return nil, false
	}
	return m, true
}

// skipType consumes a type reference: qualified name, optional generic
// arguments, optional array brackets.
func (p *Parser) skipType() bool {
	if !p.at(IDENT) {
		return false
	}
	p.advance()
	for p.at(DOT) && p.peekAt(1, IDENT) {
		p.advance()
		p.advance()
	}
	if p.atOperator("<") {
		if _, err := p.skipAngles(); err != nil {
			return false
		}
	}
	for p.at(LBRACKET) && p.peekAt(1, RBRACKET) {
		p.advance()
		p.advance()
	}
	return true
}

func (p *Parser) parseBlock() (*java.Block, error) {
	if _, err := p.expect(LBRACE); err != nil {
		return nil, err
	}
	block := &java.Block{}
	prevEnd := p.prevTok().End()
	for !p.at(RBRACE) && !p.at(EOF) {
		lead := cleanTrivia(p.source[prevEnd:p.peekTok().Pos.Offset])
		st, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		setLeading(st, lead)
		block.Stmts = append(block.Stmts, st)
		prevEnd = p.prevTok().End()
	}
	if _, err := p.expect(RBRACE); err != nil {
		return nil, err
	}
	return block, nil
}

// parseStmt models invocation statements (including fluent chains and lambda
// arguments) and falls back to verbatim raw capture for everything else.
func (p *Parser) parseStmt() (java.Stmt, error) {
	start := p.pos
	if p.at(IDENT) {
		if expr, err := p.parseExpr(); err == nil && p.at(SEMICOLON) {
			if _, ok := expr.(*java.Invocation); ok {
				p.advance() // ';'
				return &java.ExprStmt{X: expr, Line: p.toks[start].Pos.Line}, nil
			}
		}
		p.pos = start
	}
	return p.captureRawStmt()
}

func (p *Parser) parseExpr() (java.Expr, error) {
	prim, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	return p.parsePostfix(prim)
}

func (p *Parser) parsePrimary() (java.Expr, error) {
	if p.atLambda() {
		return p.parseLambda()
	}
	switch {
	case p.at(IDENT):
		name := p.advance().Lexeme
		if p.at(LPAREN) {
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			inv := &java.Invocation{Name: name, Args: args}
			if p.res != nil {
				if fqn, ok := p.res.ResolveStatic(name); ok {
					inv.Type = &java.TypeDescriptor{FullyQualified: fqn}
				}
			}
			return inv, nil
		}
		return &java.Identifier{Name: name}, nil
	case p.at(NUMBER), p.at(STRING), p.at(CHAR):
		return &java.Literal{Text: p.advance().Lexeme}, nil
	}
	return nil, p.errorf("unexpected token %q in expression", p.peekTok().Lexeme)
}

func (p *Parser) parsePostfix(expr java.Expr) (java.Expr, error) {
	for p.at(DOT) {
		p.advance()
		nameTok, err := p.expect(IDENT)
		if err != nil {
			return nil, err
		}
		if p.at(LPAREN) {
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			inv := &java.Invocation{Select: expr, Name: nameTok.Lexeme, Args: args}
			// a call qualified by an imported type resolves to that type;
			// chained calls stay unresolved (the receiver's return type is
			// not known without full semantic analysis)
			if id, ok := expr.(*java.Identifier); ok && p.res != nil {
				if fqn, ok := p.res.ResolveType(id.Name); ok {
					inv.Type = &java.TypeDescriptor{FullyQualified: fqn}
				}
			}
			expr = inv
			continue
		}
		expr = &java.FieldAccess{Target: expr, Name: nameTok.Lexeme}
	}
	return expr, nil
}

func (p *Parser) parseArgs() ([]java.Expr, error) {
	if _, err := p.expect(LPAREN); err != nil {
		return nil, err
	}
	var args []java.Expr
	for !p.at(RPAREN) {
		arg, err := p.parseArg()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.at(COMMA) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}
	return args, nil
}

// parseArg models invocation/lambda/name/literal arguments and keeps any
// other expression (arithmetic, ternary, cast, new) as opaque verbatim text.
func (p *Parser) parseArg() (java.Expr, error) {
	save := p.pos
	if expr, err := p.parseExpr(); err == nil && (p.at(COMMA) || p.at(RPAREN)) {
		return expr, nil
	}
	p.pos = save
	startOff := p.peekTok().Pos.Offset
	endOff := startOff
	depth := 0
	for {
		t := p.peekTok()
		if t.Type == EOF {
			return nil, p.errorf("unterminated argument")
		}
		if depth == 0 && (t.Type == COMMA || t.Type == RPAREN) {
			break
		}
		switch t.Type {
		case LPAREN, LBRACE, LBRACKET:
			depth++
		case RPAREN, RBRACE, RBRACKET:
			depth--
		}
		endOff = t.End()
		p.advance()
	}
	return &java.Literal{Text: strings.TrimSpace(p.source[startOff:endOff])}, nil
}

// atLambda reports whether the upcoming tokens start a lambda expression:
// "x ->", "() ->", or "(a, b) ->".
func (p *Parser) atLambda() bool {
	if p.at(IDENT) && p.peekAt(1, ARROW) {
		return true
	}
	if !p.at(LPAREN) {
		return false
	}
	i := p.pos + 1
	for p.toks[i].Type == IDENT {
		i++
		if p.toks[i].Type == COMMA {
			i++
			continue
		}
		break
	}
	return p.toks[i].Type == RPAREN && p.toks[i+1].Type == ARROW
}

func (p *Parser) parseLambda() (java.Expr, error) {
	lambda := &java.Lambda{Params: []string{}}
	if p.at(IDENT) {
		lambda.Params = append(lambda.Params, p.advance().Lexeme)
	} else {
		p.advance() // '('
		for !p.at(RPAREN) {
			tok, err := p.expect(IDENT)
			if err != nil {
				return nil, err
			}
			lambda.Params = append(lambda.Params, tok.Lexeme)
			if p.at(COMMA) {
				p.advance()
			}
		}
		p.advance() // ')'
	}
	if _, err := p.expect(ARROW); err != nil {
		return nil, err
	}
	if p.at(LBRACE) {
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		lambda.Body = body
		return lambda, nil
	}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	lambda.Expr = expr
	return lambda, nil
}

// captureRawStmt consumes one statement (or class member) as verbatim source
// text: up to a top-level ';', or past a balanced top-level brace group plus
// any else/catch/finally/do-while continuation.
func (p *Parser) captureRawStmt() (java.Stmt, error) {
	startTok := p.peekTok()
	isDo := startTok.Type == IDENT && startTok.Lexeme == "do"
	depth := 0
	for {
		t := p.peekTok()
		if t.Type == EOF {
			return nil, p.errorf("unterminated statement starting at line %d", startTok.Pos.Line)
		}
		p.advance()
		switch t.Type {
		case LPAREN, LBRACKET, LBRACE:
			depth++
		case RPAREN, RBRACKET:
			depth--
		case RBRACE:
			depth--
			if depth == 0 {
				next := p.peekTok()
				if next.Type == SEMICOLON {
					// array initializers and similar end "};"
					continue
				}
				if next.Type == IDENT &&
					(next.Lexeme == "else" || next.Lexeme == "catch" || next.Lexeme == "finally" ||
						(isDo && next.Lexeme == "while")) {
					continue
				}
				return &java.RawStmt{
					Text: p.source[startTok.Pos.Offset:t.End()],
					Line: startTok.Pos.Line,
				}, nil
			}
		case SEMICOLON:
			if depth == 0 {
				return &java.RawStmt{
					Text: p.source[startTok.Pos.Offset:t.End()],
					Line: startTok.Pos.Line,
				}, nil
			}
		}
	}
}

// skipBalanced consumes from the current open token through its matching
// close token and returns the byte offset just past the close.
func (p *Parser) skipBalanced(open, close TokenType) (int, error) {
	if _, err := p.expect(open); err != nil {
		return 0, err
	}
	depth := 1
	for depth > 0 {
		t := p.peekTok()
		if t.Type == EOF {
			return 0, p.errorf("unbalanced %q", p.toks[p.pos-1].Lexeme)
		}
		p.advance()
		switch t.Type {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return t.End(), nil
			}
		}
	}
	return p.prevTok().End(), nil
}

// skipAngles consumes a balanced generic argument list starting at "<".
func (p *Parser) skipAngles() (int, error) {
	if !p.atOperator("<") {
		return 0, p.errorf("expected type arguments")
	}
	depth := 0
	for {
		t := p.peekTok()
		switch {
		case t.Type == EOF, t.Type == SEMICOLON, t.Type == LBRACE:
			return 0, p.errorf("unbalanced type arguments")
		case t.Type == OPERATOR && t.Lexeme == "<":
			depth++
		case t.Type == OPERATOR && t.Lexeme == ">":
			depth--
		}
		p.advance()
		if depth == 0 {
			return t.End(), nil
		}
	}
}

// cleanTrivia reduces the source text between two tokens to its comment
// lines. Comments keep their order; surrounding blank lines are dropped.
func cleanTrivia(s string) string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func setLeading(st java.Stmt, lead string) {
	if lead == "" {
		return
	}
	switch x := st.(type) {
	case *java.ExprStmt:
		x.Leading = lead
	case *java.RawStmt:
		x.Leading = lead
	}
}

func (p *Parser) qualifiedName() (string, error) {
	tok, err := p.expect(IDENT)
	if err != nil {
		return "", err
	}
	segments := []string{tok.Lexeme}
	for p.at(DOT) && p.peekAt(1, IDENT) {
		p.advance()
		segments = append(segments, p.advance().Lexeme)
	}
	return strings.Join(segments, "."), nil
}

func (p *Parser) peekTok() Token {
	return p.toks[p.pos]
}

func (p *Parser) prevTok() Token {
	return p.toks[p.pos-1]
}

func (p *Parser) at(t TokenType) bool {
	return p.toks[p.pos].Type == t
}

func (p *Parser) peekAt(n int, t TokenType) bool {
	if p.pos+n >= len(p.toks) {
		return false
	}
	return p.toks[p.pos+n].Type == t
}

func (p *Parser) atOperator(lexeme string) bool {
	t := p.peekTok()
	return t.Type == OPERATOR && t.Lexeme == lexeme
}

func (p *Parser) advance() Token {
	t := p.toks[p.pos]
	if t.Type != EOF {
		p.pos++
	}
	return t
}

func (p *Parser) expect(t TokenType) (Token, error) {
	if !p.at(t) {
		return Token{}, p.errorf("unexpected token %q", p.peekTok().Lexeme)
	}
	return p.advance(), nil
}

func (p *Parser) errorf(format string, args ...interface{}) error {
	return &ParseError{Msg: fmt.Sprintf(format, args...), Pos: p.peekTok().Pos}
}
