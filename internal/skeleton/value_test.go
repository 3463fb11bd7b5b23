package skeleton

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func marshal(t *testing.T, v Value) string {
	t.Helper()
	b, err := v.MarshalJSON()
	require.NoError(t, err)
	return string(b)
}

func TestScalarJSON(t *testing.T) {
	assert.Equal(t, "null", marshal(t, Null()))
	assert.Equal(t, "false", marshal(t, Bool(false)))
	assert.Equal(t, "0", marshal(t, Int(0)))
	assert.Equal(t, "0.00", marshal(t, Decimal(decimal.New(0, -2))))
	assert.Equal(t, "12.5", marshal(t, Decimal(decimal.RequireFromString("12.5"))))
	assert.Equal(t, "42", marshal(t, Decimal(decimal.NewFromInt(42))))
	assert.Equal(t, `"C"`, marshal(t, String("C")))
}

func TestMarkerJSON(t *testing.T) {
	assert.Equal(t, `"Recursion(Node)..."`, marshal(t, Recursion("Node")))
	assert.Equal(t, `"MaxDepth(Deep)..."`, marshal(t, MaxDepth("Deep")))
	assert.Equal(t, `"(rawType)"`, marshal(t, RawType()))
	assert.Equal(t, `"null(rawType)(Box:T)"`, marshal(t, RawField("Box", "T")))
	assert.Equal(t, `"{}"`, marshal(t, Opaque()))

	assert.True(t, Recursion("Node").IsMarker())
	assert.False(t, String("x").IsMarker())
	assert.Equal(t, "Node", Recursion("Node").Name())
}

func TestObjectKeepsDeclarationOrder(t *testing.T) {
	o := NewObject()
	o.Set("zeta", Int(0))
	o.Set("alpha", String(""))
	o.Set("mid", Bool(false))

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, o.Keys())
	assert.Equal(t, `{"zeta":0,"alpha":"","mid":false}`, marshal(t, ObjectValue(o)))
}

func TestObjectFirstWriterWins(t *testing.T) {
	o := NewObject()
	assert.True(t, o.Set("id", Int(0)))
	assert.False(t, o.Set("id", String("")))

	v, ok := o.Get("id")
	require.True(t, ok)
	assert.Equal(t, KindInt, v.Kind())

	o.Put("id", String("x"))
	v, _ = o.Get("id")
	assert.Equal(t, "x", v.Text())
}

func TestObjectDocSiblingKey(t *testing.T) {
	o := NewObject()
	o.Set("id", Int(0))
	o.SetDoc("name", "/** the name */")
	o.Set("name", String(""))
	o.SetDoc("empty", "")

	_, hasEmpty := o.Doc("empty")
	assert.False(t, hasEmpty)
	assert.Equal(t, `{"id":0,"----JAVA_DOC-----name":"/** the name */","name":""}`, marshal(t, ObjectValue(o)))
}

func TestMapKeyNotHTMLEscaped(t *testing.T) {
	o := NewObject()
	o.Set("{List<String>}", Int(0))
	assert.Equal(t, `{"{List<String>}":0}`, marshal(t, ObjectValue(o)))
}

func TestListJSON(t *testing.T) {
	assert.Equal(t, "[]", marshal(t, EmptyList()))
	assert.Equal(t, `[""]`, marshal(t, ListOf(String(""))))
	assert.Equal(t, `[[0]]`, marshal(t, ListOf(ListOf(Int(0)))))
	assert.Equal(t, 1, ListOf(Null()).Len())
	assert.Equal(t, 0, EmptyList().Len())

	elem, ok := ListOf(Int(3)).Elem()
	require.True(t, ok)
	assert.Equal(t, int64(3), elem.IntValue())
}

func TestListBuilderFilledLater(t *testing.T) {
	l := NewList()
	v := ListValue(l)
	assert.Equal(t, "[]", marshal(t, v))

	l.SetElem(String("x"))
	assert.Equal(t, `["x"]`, marshal(t, v))
	assert.True(t, v.Equal(ListOf(String("x"))))
	assert.Equal(t, "[]", marshal(t, ListValue(nil)))
}

func TestEqual(t *testing.T) {
	build := func(doc string) Value {
		o := NewObject()
		o.Set("a", ListOf(Decimal(decimal.New(0, -2))))
		o.SetDoc("a", doc)
		o.Set("b", Recursion("X"))
		return ObjectValue(o)
	}

	assert.True(t, build("d").Equal(build("d")))
	assert.False(t, build("d").Equal(build("other")))
	assert.False(t, Int(0).Equal(Decimal(decimal.Zero)))
	assert.False(t, ListOf(Int(0)).Equal(EmptyList()))
	assert.True(t, Null().Equal(Value{}))
	assert.True(t, Decimal(decimal.New(0, -2)).Equal(Decimal(decimal.Zero)))
}
