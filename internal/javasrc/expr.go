package javasrc

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/luchuanbaker/MyPojoToJson/internal/typemodel"
)

// ErrInvalidTypeExpr is returned for text that is not a Java type.
var ErrInvalidTypeExpr = errors.New("invalid type expression")

const probeClass = "__Probe__"

// ParseTypeExpr parses a Java type such as "Map<String, List<Item>>" and
// qualifies its class names against u. Simple names resolve through
// java.lang or, failing that, to the single class of u carrying that name.
func ParseTypeExpr(ctx context.Context, expr string, u *typemodel.Universe) (typemodel.TypeRef, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" || strings.ContainsAny(expr, ";{}()=") {
		return typemodel.TypeRef{}, errors.Wrapf(ErrInvalidTypeExpr, "%q", expr)
	}

	src := []byte("class " + probeClass + " { " + expr + " __probe__; }")
	unit, err := parseSource(ctx, newParser(), "<expr>", src)
	if err != nil {
		return typemodel.TypeRef{}, err
	}
	if unit.hasError || len(unit.decls) != 1 || len(unit.decls[0].class.Fields) != 1 {
		return typemodel.TypeRef{}, errors.Wrapf(ErrInvalidTypeExpr, "%q", expr)
	}

	t := unit.decls[0].class.Fields[0].Type
	return newLinker(u).qualify(t, nil), nil
}
