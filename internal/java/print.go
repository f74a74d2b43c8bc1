package java

import "strings"

const indentUnit = "    "

// PrintExpr returns the textual form of an expression.
func PrintExpr(e Expr) string {
	p := &printer{}
	p.expr(e)
	return p.sb.String()
}

// PrintStmt returns the textual form of a statement, leading comments and
// terminator included. RawStmt text is reproduced verbatim.
func PrintStmt(s Stmt) string {
	p := &printer{}
	for _, line := range leadingLines(s) {
		p.sb.WriteString(line)
		p.sb.WriteByte('\n')
	}
	p.stmt(s)
	return p.sb.String()
}

// PrintBlock returns the textual form of a block at the given indent depth,
// braces included.
func PrintBlock(b *Block, depth int) string {
	p := &printer{indent: depth}
	p.block(b)
	return p.sb.String()
}

// PrintUnit renders a whole compilation unit back to source text.
func PrintUnit(u *CompilationUnit) string {
	p := &printer{}
	p.unit(u)
	return p.sb.String()
}

type printer struct {
	sb     strings.Builder
	indent int
}

func (p *printer) pad() {
	for i := 0; i < p.indent; i++ {
		p.sb.WriteString(indentUnit)
	}
}

func (p *printer) expr(e Expr) {
	switch x := e.(type) {
	case *Identifier:
		p.sb.WriteString(x.Name)
	case *Literal:
		p.sb.WriteString(x.Text)
	case *FieldAccess:
		p.expr(x.Target)
		p.sb.WriteByte('.')
		p.sb.WriteString(x.Name)
	case *Invocation:
		if x.Select != nil {
			p.expr(x.Select)
			p.sb.WriteByte('.')
		}
		p.sb.WriteString(x.Name)
		p.sb.WriteByte('(')
		for i, arg := range x.Args {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			p.expr(arg)
		}
		p.sb.WriteByte(')')
	case *Lambda:
		p.sb.WriteByte('(')
		p.sb.WriteString(strings.Join(x.Params, ", "))
		p.sb.WriteString(") -> ")
		if x.Expr != nil {
			p.expr(x.Expr)
			return
		}
		p.block(x.Body)
	}
}

func (p *printer) stmt(s Stmt) {
	switch x := s.(type) {
	case *ExprStmt:
		p.expr(x.X)
		p.sb.WriteByte(';')
	case *RawStmt:
		p.sb.WriteString(x.Text)
	}
}

func (p *printer) block(b *Block) {
	p.sb.WriteString("{\n")
	p.indent++
	for _, s := range b.Stmts {
		for _, line := range leadingLines(s) {
			p.pad()
			p.sb.WriteString(line)
			p.sb.WriteByte('\n')
		}
		p.pad()
		p.stmt(s)
		p.sb.WriteByte('\n')
	}
	p.indent--
	p.pad()
	p.sb.WriteByte('}')
}

func leadingLines(s Stmt) []string {
	var leading string
	switch x := s.(type) {
	case *ExprStmt:
		leading = x.Leading
	case *RawStmt:
		leading = x.Leading
	}
	if leading == "" {
		return nil
	}
	return strings.Split(leading, "\n")
}

func (p *printer) docLines(doc string) {
	if doc == "" {
		return
	}
	for _, line := range strings.Split(doc, "\n") {
		p.pad()
		p.sb.WriteString(line)
		p.sb.WriteByte('\n')
	}
}

func (p *printer) unit(u *CompilationUnit) {
	if u.Header != "" {
		p.docLines(u.Header)
		p.sb.WriteByte('\n')
	}
	if u.Package != "" {
		p.sb.WriteString("package ")
		p.sb.WriteString(u.Package)
		p.sb.WriteString(";\n\n")
	}
	for _, imp := range u.Imports {
		p.sb.WriteString("import ")
		if imp.Static {
			p.sb.WriteString("static ")
		}
		p.sb.WriteString(imp.Path)
		p.sb.WriteString(";\n")
	}
	if len(u.Imports) > 0 {
		p.sb.WriteByte('\n')
	}
	for ci, cls := range u.Classes {
		if ci > 0 {
			p.sb.WriteByte('\n')
		}
		p.class(cls)
	}
}

func (p *printer) class(c *Class) {
	p.docLines(c.Doc)
	for _, ann := range c.Annotations {
		p.sb.WriteByte('@')
		p.sb.WriteString(ann.Name)
		p.sb.WriteByte('\n')
	}
	for _, mod := range c.Modifiers {
		p.sb.WriteString(mod)
		p.sb.WriteByte(' ')
	}
	p.sb.WriteString("class ")
	p.sb.WriteString(c.Name)
	if c.Heritage != "" {
		p.sb.WriteByte(' ')
		p.sb.WriteString(c.Heritage)
	}
	p.sb.WriteString(" {\n")
	p.indent++
	for mi, member := range c.Members {
		if mi > 0 {
			p.sb.WriteByte('\n')
		}
		switch m := member.(type) {
		case *Method:
			p.method(m)
		case *RawMember:
			p.docLines(m.Doc)
			p.pad()
			p.sb.WriteString(m.Text)
			p.sb.WriteByte('\n')
		}
	}
	p.indent--
	p.sb.WriteString("}\n")
}

func (p *printer) method(m *Method) {
	p.docLines(m.Doc)
	for _, ann := range m.Annotations {
		p.pad()
		p.sb.WriteByte('@')
		p.sb.WriteString(ann.Name)
		p.sb.WriteByte('\n')
	}
	p.pad()
	for _, mod := range m.Modifiers {
		p.sb.WriteString(mod)
		p.sb.WriteByte(' ')
	}
	if m.ReturnType != "" {
		p.sb.WriteString(m.ReturnType)
		p.sb.WriteByte(' ')
	}
	p.sb.WriteString(m.Name)
	p.sb.WriteByte('(')
	p.sb.WriteString(m.Params)
	p.sb.WriteByte(')')
	if m.Throws != "" {
		p.sb.WriteString(" throws ")
		p.sb.WriteString(m.Throws)
	}
	if m.Body == nil {
		p.sb.WriteString(";\n")
		return
	}
	p.sb.WriteByte(' ')
	p.block(m.Body)
	p.sb.WriteByte('\n')
}
