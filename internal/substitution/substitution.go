// Package substitution resolves generic type parameters to concrete types
// across a reference, its fields and its inheritance chain.
package substitution

import (
	"github.com/luchuanbaker/MyPojoToJson/internal/typemodel"
)

// Map pairs the type parameter names of one class with their resolved types.
type Map map[string]typemodel.TypeRef

// Chain holds one Map per class of an inheritance chain, keyed by qualified class name.
type Chain map[string]Map

// For pairs each declared parameter of class with the positional argument of ref.
// Parameters left without an argument (raw use) map to typemodel.MissingGeneric.
func For(ref typemodel.TypeRef, class *typemodel.ClassDescriptor) Map {
	m := make(Map, len(class.TypeParams))
	for i, p := range class.TypeParams {
		if i < len(ref.Args) {
			m[p] = ref.Args[i]
		} else {
			m[p] = typemodel.MissingGeneric
		}
	}
	return m
}

// Apply substitutes every type variable in t through m, including inside
// generic arguments and array components of any dimension. Variables that m
// does not bind become typemodel.MissingGeneric.
func Apply(t typemodel.TypeRef, m Map) typemodel.TypeRef {
	switch t.Kind {
	case typemodel.KindTypeVar:
		if r, ok := m[t.Name]; ok {
			return r
		}
		return typemodel.MissingGeneric
	case typemodel.KindArray:
		return typemodel.ArrayOf(Apply(t.DeepComponent(), m), t.Dims())
	case typemodel.KindClass:
		if !t.ContainsTypeVar() {
			return t
		}
		args := make([]typemodel.TypeRef, len(t.Args))
		for i, a := range t.Args {
			args[i] = Apply(a, m)
		}
		return typemodel.Class(t.Name, args...)
	default:
		return t
	}
}

// FieldType resolves the declared type of a field against the substitution map
// of the reference its declaring class is used through. The boolean is false
// when the field's base type is left unbound by a raw type use.
func FieldType(field typemodel.Field, m Map) (typemodel.TypeRef, bool) {
	declared := field.Type
	if !declared.ContainsTypeVar() {
		return declared, true
	}

	dims := declared.Dims()
	base := declared.DeepComponent()

	var resolved typemodel.TypeRef
	if base.IsTypeVar() {
		// the field type is the bare parameter T
		resolved = Apply(base, m)
	} else {
		// List<E> where E belongs to the declaring class
		args := make([]typemodel.TypeRef, len(base.Args))
		for i, a := range base.Args {
			args[i] = Apply(a, m)
		}
		resolved = typemodel.Class(base.Name, args...)
	}
	if resolved.IsMissing() {
		return typemodel.TypeRef{}, false
	}
	return typemodel.ArrayOf(resolved, dims), true
}

// SuperRef returns the superclass of class as used through m, keeping the
// resolved generic arguments. It returns nil when class has no superclass.
func SuperRef(class *typemodel.ClassDescriptor, m Map) *typemodel.TypeRef {
	if class.Super == nil {
		return nil
	}
	r := Apply(*class.Super, m)
	return &r
}

// ChainFor walks ref's class and every ancestor top-down, recording the
// substitution map of each class. Supertype arguments are resolved through
// the current class's map before the ancestor's map is built, and the map
// recorded first for a class (the one closest to ref) is never overwritten.
func ChainFor(ref typemodel.TypeRef, types typemodel.TypeResolver) Chain {
	chain := make(Chain)
	walkChain(ref, types, chain)
	return chain
}

func walkChain(ref typemodel.TypeRef, types typemodel.TypeResolver, chain Chain) {
	class, ok := types.ResolveClass(ref)
	if !ok {
		return
	}
	if _, seen := chain[class.Name]; seen {
		return
	}
	m := For(ref, class)
	chain[class.Name] = m
	for _, st := range class.Supertypes() {
		walkChain(Apply(st, m), types, chain)
	}
}

// Lookup returns the resolved type of param on class within the chain.
func (c Chain) Lookup(class, param string) (typemodel.TypeRef, bool) {
	m, ok := c[class]
	if !ok {
		return typemodel.TypeRef{}, false
	}
	r, ok := m[param]
	return r, ok
}
