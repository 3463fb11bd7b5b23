// Package typemodel describes nominal type references and the classes they resolve to.
//
// The resolution engine only consumes this model. Hosts supply it through the
// TypeResolver, AssignabilityOracle and DocLookup interfaces; Universe is an
// in-memory implementation of all three.
package typemodel

import (
	"strings"
)

type RefKind int

const (
	KindClass RefKind = iota
	KindPrimitive
	KindTypeVar
	KindArray
	KindMissing
)

// ObjectClass is the universal base type.
const ObjectClass = "java.lang.Object"

// TypeRef is a nominal type name plus its ordered generic arguments.
// Values are immutable once built; helpers always return copies.
type TypeRef struct {
	Kind RefKind
	Name string
	Args []TypeRef
	// Elem is the component type when Kind == KindArray.
	Elem *TypeRef
}

// MissingGeneric stands in for a type parameter that a raw type use left unbound.
var MissingGeneric = TypeRef{Kind: KindMissing, Name: "MissingGenericType"}

func Class(name string, args ...TypeRef) TypeRef {
	return TypeRef{Kind: KindClass, Name: name, Args: args}
}

func Primitive(name string) TypeRef {
	return TypeRef{Kind: KindPrimitive, Name: name}
}

func TypeVar(name string) TypeRef {
	return TypeRef{Kind: KindTypeVar, Name: name}
}

// ArrayOf wraps elem in dims array dimensions.
func ArrayOf(elem TypeRef, dims int) TypeRef {
	t := elem
	for i := 0; i < dims; i++ {
		c := t
		t = TypeRef{Kind: KindArray, Elem: &c}
	}
	return t
}

func (t TypeRef) IsArray() bool     { return t.Kind == KindArray }
func (t TypeRef) IsMissing() bool   { return t.Kind == KindMissing }
func (t TypeRef) IsTypeVar() bool   { return t.Kind == KindTypeVar }
func (t TypeRef) IsPrimitive() bool { return t.Kind == KindPrimitive }
func (t TypeRef) IsClass() bool     { return t.Kind == KindClass }

// Dims returns the array dimension count (0 for non-arrays).
func (t TypeRef) Dims() int {
	n := 0
	for cur := t; cur.Kind == KindArray && cur.Elem != nil; cur = *cur.Elem {
		n++
	}
	return n
}

// DeepComponent strips every array dimension.
func (t TypeRef) DeepComponent() TypeRef {
	cur := t
	for cur.Kind == KindArray && cur.Elem != nil {
		cur = *cur.Elem
	}
	return cur
}

// ContainsTypeVar reports whether t is, or mentions anywhere, a type variable.
func (t TypeRef) ContainsTypeVar() bool {
	switch t.Kind {
	case KindTypeVar:
		return true
	case KindArray:
		return t.Elem != nil && t.Elem.ContainsTypeVar()
	}
	for _, a := range t.Args {
		if a.ContainsTypeVar() {
			return true
		}
	}
	return false
}

// Erasure is the identity of t ignoring generic arguments.
func (t TypeRef) Erasure() string {
	if t.Kind == KindArray {
		return t.DeepComponent().Erasure() + strings.Repeat("[]", t.Dims())
	}
	return t.Name
}

// String renders the canonical text, e.g. java.util.List<java.lang.String>[].
func (t TypeRef) String() string {
	return t.render(func(name string) string { return name })
}

// Presentable renders t with simple class names, e.g. List<String>[].
func (t TypeRef) Presentable() string {
	return t.render(SimpleName)
}

func (t TypeRef) render(name func(string) string) string {
	var sb strings.Builder
	t.write(&sb, name)
	return sb.String()
}

func (t TypeRef) write(sb *strings.Builder, name func(string) string) {
	if t.Kind == KindArray {
		t.DeepComponent().write(sb, name)
		sb.WriteString(strings.Repeat("[]", t.Dims()))
		return
	}
	if t.Kind == KindClass {
		sb.WriteString(name(t.Name))
	} else {
		sb.WriteString(t.Name)
	}
	if len(t.Args) == 0 {
		return
	}
	sb.WriteByte('<')
	for i, a := range t.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		a.write(sb, name)
	}
	sb.WriteByte('>')
}

// SimpleName drops the package and enclosing class qualifiers.
func SimpleName(qualified string) string {
	if i := strings.LastIndexByte(qualified, '.'); i >= 0 {
		return qualified[i+1:]
	}
	return qualified
}
