package template

// Fully qualified names of the JUnit Jupiter entry points the synthesized
// wrapper references.
const (
	AssertionsFQN          = "org.junit.jupiter.api.Assertions"
	AssertDoesNotThrowName = "assertDoesNotThrow"
	AssertDoesNotThrowFQN  = AssertionsFQN + "." + AssertDoesNotThrowName
	ThrowingSupplierFQN    = "org.junit.jupiter.api.function.ThrowingSupplier"
)

// stubResolver stands in for a classpath during synthesis. It knows only the
// shape of the wrapper API, so synthesized text type-checks without JUnit
// being present at rewrite time.
type stubResolver struct {
	statics map[string]string
	types   map[string]string
}

func newStubResolver() *stubResolver {
	return &stubResolver{
		statics: map[string]string{
			AssertDoesNotThrowName: AssertionsFQN,
		},
		types: map[string]string{
			"Assertions":       AssertionsFQN,
			"ThrowingSupplier": ThrowingSupplierFQN,
		},
	}
}

func (r *stubResolver) ResolveStatic(name string) (string, bool) {
	declaring, ok := r.statics[name]
	return declaring, ok
}

func (r *stubResolver) ResolveType(name string) (string, bool) {
	fqn, ok := r.types[name]
	return fqn, ok
}
