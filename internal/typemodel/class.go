package typemodel

type Field struct {
	Name        string
	Type        TypeRef
	Static      bool
	Transient   bool
	Annotations []string
	// Doc is the raw documentation comment attached to the field, unformatted.
	Doc string
}

// HasAnnotation matches by simple name, so both JsonIgnore and
// com.fasterxml.jackson.annotation.JsonIgnore match "JsonIgnore".
func (f Field) HasAnnotation(name string) bool {
	want := SimpleName(name)
	for _, a := range f.Annotations {
		if SimpleName(a) == want {
			return true
		}
	}
	return false
}

// ClassDescriptor is the structural description of a class.
type ClassDescriptor struct {
	Name          string
	TypeParams    []string
	Fields        []Field
	Super         *TypeRef
	Interfaces    []TypeRef
	IsEnum        bool
	IsInterface   bool
	IsAbstract    bool
	EnumConstants []string
}

// Supertypes returns the direct superclass (if any) followed by the interfaces.
func (c *ClassDescriptor) Supertypes() []TypeRef {
	out := make([]TypeRef, 0, len(c.Interfaces)+1)
	if c.Super != nil {
		out = append(out, *c.Super)
	}
	return append(out, c.Interfaces...)
}

// Ref returns the reference to c with its own type parameters as arguments.
func (c *ClassDescriptor) Ref() TypeRef {
	args := make([]TypeRef, len(c.TypeParams))
	for i, p := range c.TypeParams {
		args[i] = TypeVar(p)
	}
	return Class(c.Name, args...)
}

// TypeResolver returns the descriptor of the class a reference names.
// The second result is false for unresolvable references.
type TypeResolver interface {
	ResolveClass(ref TypeRef) (*ClassDescriptor, bool)
}

// AssignabilityOracle answers whether candidate is target or one of its subtypes.
type AssignabilityOracle interface {
	IsAssignable(target, candidate TypeRef) bool
}

// DocLookup returns the raw documentation string of a field, if any.
type DocLookup interface {
	FieldDoc(class *ClassDescriptor, field Field) (string, bool)
}
