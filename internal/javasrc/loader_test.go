package javasrc

import (
	"context"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luchuanbaker/MyPojoToJson/internal/resolver"
	tm "github.com/luchuanbaker/MyPojoToJson/internal/typemodel"
	"github.com/luchuanbaker/MyPojoToJson/internal/wellknown"
)

const srcRoot = "testdata/src"

func load(t *testing.T) *tm.Universe {
	t.Helper()
	u, err := (&Loader{Concurrency: 2}).Load(context.Background(), []string{srcRoot})
	require.NoError(t, err)
	return u
}

func lookup(t *testing.T, u *tm.Universe, name string) *tm.ClassDescriptor {
	t.Helper()
	c, ok := u.Lookup(name)
	require.True(t, ok, "class %s not loaded", name)
	return c
}

func fieldNamed(t *testing.T, c *tm.ClassDescriptor, name string) tm.Field {
	t.Helper()
	for _, f := range c.Fields {
		if f.Name == name {
			return f
		}
	}
	t.Fatalf("field %s not found on %s", name, c.Name)
	return tm.Field{}
}

func TestDiscoverHonoursExcludes(t *testing.T) {
	files, err := (&Loader{}).Discover([]string{srcRoot})
	require.NoError(t, err)
	assert.Len(t, files, 5)
	for _, f := range files {
		assert.NotContains(t, filepath.ToSlash(f), "/target/")
	}

	files, err = (&Loader{Exclude: []string{}}).Discover([]string{srcRoot})
	require.NoError(t, err)
	assert.Len(t, files, 6)

	single := filepath.Join(srcRoot, "com", "acme", "model", "Role.java")
	files, err = (&Loader{}).Discover([]string{single, single})
	require.NoError(t, err)
	assert.Equal(t, []string{single}, files)

	_, err = (&Loader{}).Discover([]string{"testdata/missing"})
	assert.Error(t, err)
}

func TestLoadClassShape(t *testing.T) {
	u := load(t)

	user := lookup(t, u, "com.acme.model.User")
	require.NotNil(t, user.Super)
	assert.Equal(t, tm.Class("com.acme.common.Entity", tm.Class("java.lang.Long")), *user.Super)
	assert.Equal(t, []tm.TypeRef{tm.Class("java.io.Serializable")}, user.Interfaces)

	names := make([]string, len(user.Fields))
	for i, f := range user.Fields {
		names[i] = f.Name
	}
	assert.Equal(t, []string{
		"LIMIT", "name", "cache", "password", "scores", "tags",
		"addresses", "roles", "status", "manager", "page", "inner",
	}, names)

	assert.True(t, fieldNamed(t, user, "LIMIT").Static)
	assert.True(t, fieldNamed(t, user, "cache").Transient)
	assert.True(t, fieldNamed(t, user, "password").HasAnnotation("JsonIgnore"))
	assert.Equal(t, "/** the display name */", fieldNamed(t, user, "name").Doc)
	assert.Empty(t, fieldNamed(t, user, "cache").Doc)

	_, ok := u.Lookup("generated.Ignored")
	assert.False(t, ok)
}

func TestLoadQualifiesTypes(t *testing.T) {
	u := load(t)
	user := lookup(t, u, "com.acme.model.User")
	role := tm.Class("com.acme.model.Role")

	tests := []struct {
		field string
		want  tm.TypeRef
	}{
		{"name", tm.Class("java.lang.String")},
		{"scores", tm.ArrayOf(tm.Primitive("int"), 1)},
		{"tags", tm.ArrayOf(tm.Class("java.lang.String"), 1)},
		{"addresses", tm.Class("java.util.List", tm.Class("com.acme.model.Address"))},
		{"roles", tm.Class("java.util.Map", tm.Class("java.lang.String"), tm.Class("java.util.List", role))},
		{"status", tm.Class("com.acme.model.User.Status")},
		{"manager", tm.Class("com.acme.model.User")},
		{"page", tm.Class("com.acme.common.Page", role)},
		{"inner", tm.Class("com.acme.model.User.Inner")},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			assert.Equal(t, tt.want, fieldNamed(t, user, tt.field).Type)
		})
	}
}

func TestLoadDeclarationKinds(t *testing.T) {
	u := load(t)

	status := lookup(t, u, "com.acme.model.User.Status")
	assert.True(t, status.IsEnum)
	assert.Equal(t, []string{"ACTIVE", "DISABLED"}, status.EnumConstants)

	entity := lookup(t, u, "com.acme.common.Entity")
	assert.True(t, entity.IsAbstract)
	assert.Equal(t, []string{"ID"}, entity.TypeParams)
	assert.Equal(t, tm.TypeVar("ID"), fieldNamed(t, entity, "id").Type)
	assert.Equal(t, tm.Class("java.util.Date"), fieldNamed(t, entity, "createdAt").Type)

	page := lookup(t, u, "com.acme.common.Page")
	require.NotNil(t, page.Super)
	assert.Equal(t, tm.Class("java.util.ArrayList", tm.TypeVar("T")), *page.Super)

	role := lookup(t, u, "com.acme.model.Role")
	assert.True(t, role.IsInterface)
	assert.True(t, fieldNamed(t, role, "PREFIX").Static)

	address := lookup(t, u, "com.acme.model.Address")
	require.Len(t, address.Fields, 2)
	assert.Equal(t, "street", address.Fields[0].Name)
	assert.True(t, address.Fields[1].HasAnnotation("Nullable"))
}

func TestLoadFSAndDuplicates(t *testing.T) {
	fsys := fstest.MapFS{
		"a/Thing.java": {Data: []byte("package p; public class Thing { int first; }")},
		"b/Thing.java": {Data: []byte("package p; public class Thing { int second; }")},
		"c/Other.java": {Data: []byte("package q; import p.Thing; class Other { Thing t; Missing m; }")},
	}
	u, err := (&Loader{}).LoadFS(context.Background(), fsys)
	require.NoError(t, err)

	thing := lookup(t, u, "p.Thing")
	require.Len(t, thing.Fields, 1)
	assert.Equal(t, "first", thing.Fields[0].Name)

	other := lookup(t, u, "q.Other")
	assert.Equal(t, tm.Class("p.Thing"), other.Fields[0].Type)
	assert.Equal(t, tm.Class("Missing"), other.Fields[1].Type)
}

func TestParseTypeExpr(t *testing.T) {
	u := load(t)
	ctx := context.Background()

	tests := []struct {
		expr string
		want tm.TypeRef
	}{
		{"User", tm.Class("com.acme.model.User")},
		{"Map<String, List<User>>", tm.Class("java.util.Map",
			tm.Class("java.lang.String"),
			tm.Class("java.util.List", tm.Class("com.acme.model.User")))},
		{"int[][]", tm.ArrayOf(tm.Primitive("int"), 2)},
		{"java.util.List<Integer>", tm.Class("java.util.List", tm.Class("java.lang.Integer"))},
		{"User.Status", tm.Class("com.acme.model.User.Status")},
		{"Unknown", tm.Class("Unknown")},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := ParseTypeExpr(ctx, tt.expr, u)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "List<", "int x; int", "a b"} {
		_, err := ParseTypeExpr(ctx, bad, u)
		assert.True(t, errors.Is(err, ErrInvalidTypeExpr), "expression %q", bad)
	}
}

func TestResolveLoadedSources(t *testing.T) {
	u := load(t)
	clock := func() time.Time { return time.Date(2024, 3, 9, 7, 5, 1, 0, time.UTC) }

	v, err := resolver.Resolve(context.Background(), tm.Class("com.acme.model.User"), resolver.Options{
		Types:     u,
		WellKnown: wellknown.Default(clock),
	})
	require.NoError(t, err)
	b, err := v.MarshalJSON()
	require.NoError(t, err)

	assert.Equal(t, `{"----JAVA_DOC-----name":"/** the display name */","name":"","password":"",`+
		`"scores":[0],"tags":[""],"addresses":[{"street":"","city":""}],"roles":{"{String}":["{}"]},`+
		`"status":"ACTIVE","manager":"Recursion(User)...","page":["{}"],"inner":{"ratio":0.00},`+
		`"id":0,"createdAt":"2024-03-09 07:05:01"}`, string(b))
}
