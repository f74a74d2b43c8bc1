package java

// Inspect traverses the tree rooted at n in depth-first order, calling f for
// each node. If f returns false for a node, its children are skipped. The
// switch below covers the closed set of node kinds.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	switch x := n.(type) {
	case *CompilationUnit:
		for _, imp := range x.Imports {
			Inspect(imp, f)
		}
		for _, cls := range x.Classes {
			Inspect(cls, f)
		}
	case *Class:
		for _, ann := range x.Annotations {
			Inspect(ann, f)
		}
		for _, m := range x.Members {
			Inspect(m, f)
		}
	case *Method:
		for _, ann := range x.Annotations {
			Inspect(ann, f)
		}
		if x.Body != nil {
			Inspect(x.Body, f)
		}
	case *Block:
		for _, s := range x.Stmts {
			Inspect(s, f)
		}
	case *ExprStmt:
		Inspect(x.X, f)
	case *Invocation:
		if x.Select != nil {
			Inspect(x.Select, f)
		}
		for _, arg := range x.Args {
			Inspect(arg, f)
		}
	case *FieldAccess:
		Inspect(x.Target, f)
	case *Lambda:
		if x.Body != nil {
			Inspect(x.Body, f)
		}
		if x.Expr != nil {
			Inspect(x.Expr, f)
		}
	case *Import, *Annotation, *RawMember, *RawStmt, *Identifier, *Literal:
		// leaves
	}
}

// RewriteMethods applies f to every method declaration in the unit, bottom-up
// per class. f returns the (possibly identical) method to keep. Parents are
// only copied when a child actually changed, so an untouched unit comes back
// as the same pointer. Callers rely on that for identity preservation.
func RewriteMethods(unit *CompilationUnit, f func(cls *Class, m *Method) (*Method, error)) (*CompilationUnit, error) {
	var newClasses []*Class
	for ci, cls := range unit.Classes {
		var newMembers []Member
		for mi, member := range cls.Members {
			m, ok := member.(*Method)
			if !ok {
				if newMembers != nil {
					newMembers = append(newMembers, member)
				}
				continue
			}
			rewritten, err := f(cls, m)
			if err != nil {
				return nil, err
			}
			if rewritten == m {
				if newMembers != nil {
					newMembers = append(newMembers, m)
				}
				continue
			}
			if newMembers == nil {
				newMembers = make([]Member, 0, len(cls.Members))
				newMembers = append(newMembers, cls.Members[:mi]...)
			}
			newMembers = append(newMembers, rewritten)
		}
		if newMembers == nil {
			if newClasses != nil {
				newClasses = append(newClasses, cls)
			}
			continue
		}
		if newClasses == nil {
			newClasses = make([]*Class, 0, len(unit.Classes))
			newClasses = append(newClasses, unit.Classes[:ci]...)
		}
		newClasses = append(newClasses, cls.WithMembers(newMembers))
	}
	if newClasses == nil {
		return unit, nil
	}
	return unit.WithClasses(newClasses), nil
}
