package substitution

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luchuanbaker/MyPojoToJson/internal/typemodel"
)

var (
	str  = typemodel.Class("java.lang.String")
	item = typemodel.Class("com.acme.Item")
)

func ptr(r typemodel.TypeRef) *typemodel.TypeRef { return &r }

func testUniverse() *typemodel.Universe {
	u := typemodel.NewUniverse()
	u.Add(&typemodel.ClassDescriptor{Name: typemodel.ObjectClass})
	u.Add(&typemodel.ClassDescriptor{Name: "java.lang.Iterable", TypeParams: []string{"T"}, IsInterface: true})
	u.Add(&typemodel.ClassDescriptor{
		Name:        "java.util.Collection",
		TypeParams:  []string{"E"},
		IsInterface: true,
		Interfaces:  []typemodel.TypeRef{typemodel.Class("java.lang.Iterable", typemodel.TypeVar("E"))},
	})
	u.Add(&typemodel.ClassDescriptor{
		Name:        "java.util.List",
		TypeParams:  []string{"E"},
		IsInterface: true,
		Interfaces:  []typemodel.TypeRef{typemodel.Class("java.util.Collection", typemodel.TypeVar("E"))},
	})
	// PageList<T> extends ArrayList-ish base that implements List<T>
	u.Add(&typemodel.ClassDescriptor{
		Name:       "com.acme.PageList",
		TypeParams: []string{"T"},
		Super:      ptr(typemodel.Class(typemodel.ObjectClass)),
		Interfaces: []typemodel.TypeRef{typemodel.Class("java.util.List", typemodel.TypeVar("T"))},
	})
	// StringPage extends PageList<String>
	u.Add(&typemodel.ClassDescriptor{
		Name:  "com.acme.StringPage",
		Super: ptr(typemodel.Class("com.acme.PageList", str)),
	})
	return u
}

func TestForPairsPositionally(t *testing.T) {
	class := &typemodel.ClassDescriptor{Name: "com.acme.Pair", TypeParams: []string{"A", "B"}}

	m := For(typemodel.Class("com.acme.Pair", str, item), class)
	assert.Equal(t, str, m["A"])
	assert.Equal(t, item, m["B"])
}

func TestForRawUseMapsToMissingGeneric(t *testing.T) {
	class := &typemodel.ClassDescriptor{Name: "com.acme.Pair", TypeParams: []string{"A", "B"}}

	m := For(typemodel.Class("com.acme.Pair", str), class)
	require.Len(t, m, 2)
	assert.Equal(t, str, m["A"])
	assert.True(t, m["B"].IsMissing())

	m = For(typemodel.Class("com.acme.Pair"), class)
	require.Len(t, m, 2)
	assert.True(t, m["A"].IsMissing())
}

func TestApply(t *testing.T) {
	m := Map{"T": item}

	assert.Equal(t, item, Apply(typemodel.TypeVar("T"), m))
	assert.True(t, Apply(typemodel.TypeVar("U"), m).IsMissing())

	got := Apply(typemodel.Class("java.util.Map", str, typemodel.Class("java.util.List", typemodel.TypeVar("T"))), m)
	assert.Equal(t, "java.util.Map<java.lang.String, java.util.List<com.acme.Item>>", got.String())

	arr := Apply(typemodel.ArrayOf(typemodel.TypeVar("T"), 3), m)
	assert.Equal(t, 3, arr.Dims())
	assert.Equal(t, item, arr.DeepComponent())
}

func TestFieldType(t *testing.T) {
	m := Map{"T": item, "R": typemodel.MissingGeneric}

	cases := []struct {
		name     string
		declared typemodel.TypeRef
		want     string
		ok       bool
	}{
		{"concrete", str, "java.lang.String", true},
		{"bare parameter", typemodel.TypeVar("T"), "com.acme.Item", true},
		{"parameterized", typemodel.Class("java.util.List", typemodel.TypeVar("T")), "java.util.List<com.acme.Item>", true},
		{"array of parameter", typemodel.ArrayOf(typemodel.TypeVar("T"), 2), "com.acme.Item[][]", true},
		{"array of parameterized", typemodel.ArrayOf(typemodel.Class("java.util.List", typemodel.TypeVar("T")), 1), "java.util.List<com.acme.Item>[]", true},
		{"raw bare parameter", typemodel.TypeVar("R"), "", false},
		{"raw array parameter", typemodel.ArrayOf(typemodel.TypeVar("R"), 1), "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := FieldType(typemodel.Field{Name: "f", Type: tc.declared}, m)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.want, got.String())
			}
		})
	}
}

func TestFieldTypeRawArgumentStaysInReference(t *testing.T) {
	got, ok := FieldType(typemodel.Field{Type: typemodel.Class("java.util.List", typemodel.TypeVar("R"))}, Map{"R": typemodel.MissingGeneric})
	require.True(t, ok)
	require.Len(t, got.Args, 1)
	assert.True(t, got.Args[0].IsMissing())
}

func TestSuperRef(t *testing.T) {
	class := &typemodel.ClassDescriptor{
		Name:       "com.acme.Child",
		TypeParams: []string{"X"},
		Super:      ptr(typemodel.Class("com.acme.Base", typemodel.TypeVar("X"))),
	}
	got := SuperRef(class, Map{"X": str})
	require.NotNil(t, got)
	assert.Equal(t, "com.acme.Base<java.lang.String>", got.String())

	assert.Nil(t, SuperRef(&typemodel.ClassDescriptor{Name: "com.acme.Root"}, Map{}))
}

func TestChainResolvesThroughAncestors(t *testing.T) {
	u := testUniverse()

	chain := ChainFor(typemodel.Class("com.acme.StringPage"), u)

	elem, ok := chain.Lookup("java.lang.Iterable", "T")
	require.True(t, ok)
	assert.Equal(t, str, elem)

	e, ok := chain.Lookup("java.util.List", "E")
	require.True(t, ok)
	assert.Equal(t, str, e)

	_, ok = chain.Lookup("java.util.Map", "K")
	assert.False(t, ok)
}

func TestChainRawUsePropagatesMissingGeneric(t *testing.T) {
	u := testUniverse()

	chain := ChainFor(typemodel.Class("com.acme.PageList"), u)
	elem, ok := chain.Lookup("java.lang.Iterable", "T")
	require.True(t, ok)
	assert.True(t, elem.IsMissing())
}

func TestChainFirstWriterWins(t *testing.T) {
	u := testUniverse()
	// Both paths reach Collection: directly with Item, and via List with String.
	u.Add(&typemodel.ClassDescriptor{
		Name: "com.acme.Odd",
		Interfaces: []typemodel.TypeRef{
			typemodel.Class("java.util.Collection", item),
			typemodel.Class("java.util.List", str),
		},
	})

	chain := ChainFor(typemodel.Class("com.acme.Odd"), u)
	e, ok := chain.Lookup("java.util.Collection", "E")
	require.True(t, ok)
	assert.Equal(t, item, e)
}

func TestChainTerminatesOnCyclicInheritance(t *testing.T) {
	u := typemodel.NewUniverse()
	u.Add(&typemodel.ClassDescriptor{Name: "a.A", Super: ptr(typemodel.Class("a.B"))})
	u.Add(&typemodel.ClassDescriptor{Name: "a.B", Super: ptr(typemodel.Class("a.A"))})

	chain := ChainFor(typemodel.Class("a.A"), u)
	assert.Len(t, chain, 2)
}
