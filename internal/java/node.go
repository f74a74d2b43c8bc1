package java

// Kind identifies the variant of a syntax node. The set is closed: every
// traversal switches exhaustively over these values.
type Kind int

const (
	KindCompilationUnit Kind = iota
	KindImport
	KindClass
	KindMethod
	KindAnnotation
	KindBlock
	KindRawMember
	KindExprStmt
	KindRawStmt
	KindInvocation
	KindFieldAccess
	KindIdentifier
	KindLiteral
	KindLambda
)

// Node is implemented by every syntax tree variant.
//
// Nodes are immutable by convention: once constructed they are never mutated.
// Edits go through the With* helpers, which return shallow copies sharing all
// unchanged children with the original.
type Node interface {
	Kind() Kind
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}

// TypeDescriptor is the resolved declaring type of an invocation or the
// resolved type of an annotation. A nil descriptor means the parser could not
// resolve the type; matchers treat that as "unknown", never as a match.
type TypeDescriptor struct {
	FullyQualified string
}

// CompilationUnit is the root of one parsed source file. Header holds any
// comment text above the package declaration (license headers, file docs).
type CompilationUnit struct {
	Header  string
	Package string
	Imports []*Import
	Classes []*Class
}

func (u *CompilationUnit) Kind() Kind { return KindCompilationUnit }

// WithImports returns a copy of the unit with the given import list.
func (u *CompilationUnit) WithImports(imports []*Import) *CompilationUnit {
	out := *u
	out.Imports = imports
	return &out
}

// WithClasses returns a copy of the unit with the given class list.
func (u *CompilationUnit) WithClasses(classes []*Class) *CompilationUnit {
	out := *u
	out.Classes = classes
	return &out
}

// Import is a single import declaration. For a static import, Path is the
// fully qualified type followed by the member name
// (e.g. "org.junit.jupiter.api.Assertions.assertDoesNotThrow").
type Import struct {
	Path   string
	Static bool
}

func (i *Import) Kind() Kind { return KindImport }

// Class is a top-level class declaration. Members keeps declaration order;
// only methods are modeled as structured nodes, every other member survives
// verbatim as a RawMember.
type Class struct {
	Doc         string // comment text above the declaration
	Annotations []*Annotation
	Modifiers   []string
	Name        string
	Heritage    string // raw extends/implements clause, empty when absent
	Members     []Member
	Line        int
}

func (c *Class) Kind() Kind { return KindClass }

// WithMembers returns a copy of the class with the given member list.
func (c *Class) WithMembers(members []Member) *Class {
	out := *c
	out.Members = members
	return &out
}

// Member is a class body member.
type Member interface {
	Node
	memberNode()
}

// RawMember is a class member the parser does not model (fields, static
// initializers, nested types), preserved verbatim.
type RawMember struct {
	Doc  string
	Text string
	Line int
}

func (m *RawMember) Kind() Kind  { return KindRawMember }
func (m *RawMember) memberNode() {}

// Method is a method declaration. Body is nil for abstract methods; a method
// without a body can never be rewritten.
type Method struct {
	Doc         string // comment text above the declaration, javadoc included
	Annotations []*Annotation
	Modifiers   []string
	ReturnType  string
	Name        string
	Params      string // raw parameter list, without the surrounding parens
	Throws      string // raw throws clause, empty when absent
	Body        *Block
	Line        int
}

func (m *Method) Kind() Kind  { return KindMethod }
func (m *Method) memberNode() {}

// WithBody returns a copy of the method with the given body. Annotations,
// signature and all other fields are shared with the receiver.
func (m *Method) WithBody(body *Block) *Method {
	out := *m
	out.Body = body
	return &out
}

// Annotation is a leading method annotation. Name is the annotation as
// written (possibly fully qualified); Type is the resolved fully qualified
// name, empty when resolution failed.
type Annotation struct {
	Name string
	Type string
}

func (a *Annotation) Kind() Kind { return KindAnnotation }

// Block is an ordered statement sequence. Order is execution order and must
// survive every rewrite.
type Block struct {
	Stmts []Stmt
}

func (b *Block) Kind() Kind { return KindBlock }

// WithStmts returns a copy of the block with the given statement list.
func (b *Block) WithStmts(stmts []Stmt) *Block {
	out := *b
	out.Stmts = stmts
	return &out
}

// ExprStmt is an expression used as a statement, e.g. a method call. Leading
// holds any comment text above the statement.
type ExprStmt struct {
	Leading string
	X       Expr
	Line    int
}

func (s *ExprStmt) Kind() Kind { return KindExprStmt }
func (s *ExprStmt) stmtNode()  {}

// RawStmt is a statement the parser does not model (declarations, control
// flow, assignments). Text is the verbatim source slice including the
// terminator, so printing a RawStmt reproduces the input exactly. A RawStmt
// carries no type information and therefore never matches an assertion.
type RawStmt struct {
	Leading string
	Text    string
	Line    int
}

func (s *RawStmt) Kind() Kind { return KindRawStmt }
func (s *RawStmt) stmtNode()  {}

// Invocation is a method invocation. Select is the receiver expression and
// may itself be an Invocation, which is how fluent assertion chains like
// assertThat(x).isNotNull() are detected. Type is the declaring type of the
// invoked method, nil when the parser could not resolve it.
type Invocation struct {
	Select Expr
	Name   string
	Args   []Expr
	Type   *TypeDescriptor
}

func (e *Invocation) Kind() Kind { return KindInvocation }
func (e *Invocation) exprNode()  {}

// FieldAccess is a dotted access that is not a call, e.g. System.out.
type FieldAccess struct {
	Target Expr
	Name   string
}

func (e *FieldAccess) Kind() Kind { return KindFieldAccess }
func (e *FieldAccess) exprNode()  {}

// Identifier is a simple name.
type Identifier struct {
	Name string
}

func (e *Identifier) Kind() Kind { return KindIdentifier }
func (e *Identifier) exprNode()  {}

// Literal is a literal or an opaque expression preserved verbatim. Arguments
// the parser cannot model (arithmetic, ternaries, casts) are kept here so the
// printed call reproduces the input.
type Literal struct {
	Text string
}

func (e *Literal) Kind() Kind { return KindLiteral }
func (e *Literal) exprNode()  {}

// Lambda is a lambda expression. Exactly one of Body and Expr is set.
type Lambda struct {
	Params []string
	Body   *Block
	Expr   Expr
}

func (e *Lambda) Kind() Kind { return KindLambda }
func (e *Lambda) exprNode()  {}
