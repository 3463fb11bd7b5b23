package wellknown

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luchuanbaker/MyPojoToJson/internal/skeleton"
	"github.com/luchuanbaker/MyPojoToJson/internal/typemodel"
)

var fixed = time.Date(2024, 3, 9, 7, 5, 1, 0, time.UTC)

func clock() time.Time { return fixed }

func ptr(r typemodel.TypeRef) *typemodel.TypeRef { return &r }

func universe() *typemodel.Universe {
	u := typemodel.NewUniverse()
	u.Add(&typemodel.ClassDescriptor{Name: typemodel.ObjectClass})
	u.Add(&typemodel.ClassDescriptor{Name: "java.lang.Number", IsAbstract: true})
	u.Add(&typemodel.ClassDescriptor{Name: "java.lang.Integer", Super: ptr(typemodel.Class("java.lang.Number"))})
	u.Add(&typemodel.ClassDescriptor{Name: "java.math.BigDecimal", Super: ptr(typemodel.Class("java.lang.Number"))})
	u.Add(&typemodel.ClassDescriptor{Name: "java.lang.CharSequence", IsInterface: true})
	u.Add(&typemodel.ClassDescriptor{Name: "java.lang.String", Interfaces: []typemodel.TypeRef{typemodel.Class("java.lang.CharSequence")}})
	u.Add(&typemodel.ClassDescriptor{Name: "java.time.temporal.Temporal", IsInterface: true})
	u.Add(&typemodel.ClassDescriptor{Name: "java.time.LocalDate", Interfaces: []typemodel.TypeRef{typemodel.Class("java.time.temporal.Temporal")}})
	u.Add(&typemodel.ClassDescriptor{Name: "java.time.Instant", Interfaces: []typemodel.TypeRef{typemodel.Class("java.time.temporal.Temporal")}})
	u.Add(&typemodel.ClassDescriptor{Name: "java.lang.Throwable"})
	u.Add(&typemodel.ClassDescriptor{Name: "java.lang.Exception", Super: ptr(typemodel.Class("java.lang.Throwable"))})
	u.Add(&typemodel.ClassDescriptor{Name: "com.acme.Money", Super: ptr(typemodel.Class("java.math.BigDecimal"))})
	return u
}

func TestPrimitiveDefaults(t *testing.T) {
	cases := map[string]string{
		"boolean": "false",
		"byte":    "0",
		"short":   "0",
		"int":     "0",
		"long":    "0",
		"char":    `"C"`,
		"float":   "0.00",
		"double":  "0.00",
	}
	for name, want := range cases {
		t.Run(name, func(t *testing.T) {
			v, ok := PrimitiveOrBoxed(typemodel.Primitive(name))
			require.True(t, ok)
			b, err := v.MarshalJSON()
			require.NoError(t, err)
			assert.Equal(t, want, string(b))
		})
	}

	_, ok := Primitive("void")
	assert.False(t, ok)
}

func TestBoxedDefaults(t *testing.T) {
	v, ok := PrimitiveOrBoxed(typemodel.Class("java.lang.Integer"))
	require.True(t, ok)
	assert.Equal(t, skeleton.KindInt, v.Kind())

	v, ok = PrimitiveOrBoxed(typemodel.Class("java.lang.Character"))
	require.True(t, ok)
	assert.Equal(t, "C", v.Text())

	_, ok = PrimitiveOrBoxed(typemodel.Class("java.lang.String"))
	assert.False(t, ok)
	_, ok = PrimitiveOrBoxed(typemodel.Class("com.acme.Integer"))
	assert.False(t, ok)
}

func TestDefaultLookupBySubtype(t *testing.T) {
	table := Default(clock)
	u := universe()

	cases := []struct {
		typeName string
		want     string
	}{
		{"java.lang.String", `""`},
		{"java.lang.Integer", "0"},
		{"java.math.BigDecimal", "0.00"},
		{"com.acme.Money", "0.00"},
		{"java.time.LocalDate", `"2024-03-09"`},
		{"java.time.Instant", "1709967901000"},
		{"java.util.Date", `"2024-03-09 07:05:01"`},
		{"java.time.LocalTime", `"07:05:01"`},
		{"java.lang.Exception", `"{Throwable}"`},
		{"java.io.File", `"{File}"`},
	}
	for _, tc := range cases {
		t.Run(tc.typeName, func(t *testing.T) {
			v, ok := table.Lookup(typemodel.Class(tc.typeName), u)
			require.True(t, ok)
			b, err := v.MarshalJSON()
			require.NoError(t, err)
			assert.Equal(t, tc.want, string(b))
		})
	}
}

func TestLookupMisses(t *testing.T) {
	table := Default(clock)
	u := universe()

	_, ok := table.Lookup(typemodel.Class("com.acme.User"), u)
	assert.False(t, ok)
	_, ok = table.Lookup(typemodel.Primitive("int"), u)
	assert.False(t, ok)

	// exact match still works without an oracle
	_, ok = table.Lookup(typemodel.Class("java.math.BigDecimal"), nil)
	assert.True(t, ok)
	_, ok = table.Lookup(typemodel.Class("com.acme.Money"), nil)
	assert.False(t, ok)

	var nilTable *Table
	_, ok = nilTable.Lookup(typemodel.Class("java.lang.String"), u)
	assert.False(t, ok)
}

func TestUUIDProducer(t *testing.T) {
	v, ok := Default(clock).Lookup(typemodel.Class("java.util.UUID"), nil)
	require.True(t, ok)
	assert.Len(t, v.Text(), 36)
}

func TestWithOverridesTakePrecedence(t *testing.T) {
	base := Default(clock)
	table := base.With(Constant("com.acme.Money", skeleton.String("USD 0")))

	v, ok := table.Lookup(typemodel.Class("com.acme.Money"), universe())
	require.True(t, ok)
	assert.Equal(t, "USD 0", v.Text())
	assert.Equal(t, base.Len()+1, table.Len())

	// base table is untouched
	v, ok = base.Lookup(typemodel.Class("com.acme.Money"), universe())
	require.True(t, ok)
	assert.Equal(t, skeleton.KindDecimal, v.Kind())
}

func TestEntriesReturnsCopy(t *testing.T) {
	table := NewTable(Constant("a.A", skeleton.Int(1)))
	entries := table.Entries()
	entries[0] = Constant("b.B", skeleton.Int(2))

	_, ok := table.Lookup(typemodel.Class("a.A"), nil)
	assert.True(t, ok)
}
