package javasrc

import (
	"strings"

	"go.uber.org/zap"

	"github.com/luchuanbaker/MyPojoToJson/internal/typemodel"
)

// linker qualifies the names written in source against every class known
// to the universe: registered library classes plus the declared ones.
type linker struct {
	u        *typemodel.Universe
	declared map[string]*decl
	simple   map[string][]string
}

func newLinker(u *typemodel.Universe) *linker {
	l := &linker{
		u:        u,
		declared: make(map[string]*decl),
		simple:   make(map[string][]string),
	}
	for _, name := range u.Names() {
		l.index(name)
	}
	return l
}

func (l *linker) index(name string) {
	s := typemodel.SimpleName(name)
	l.simple[s] = append(l.simple[s], name)
}

func (l *linker) known(name string) bool {
	if _, ok := l.declared[name]; ok {
		return true
	}
	_, ok := l.u.Lookup(name)
	return ok
}

func (l *linker) unique(simple string) (string, bool) {
	if names := l.simple[simple]; len(names) == 1 {
		return names[0], true
	}
	return "", false
}

// link qualifies every declaration and publishes it to the universe. The
// first declaration of a qualified name wins.
func (l *linker) link(units []*fileUnit, log *zap.SugaredLogger) {
	var decls []*decl
	for _, unit := range units {
		for _, d := range unit.decls {
			if prev, dup := l.declared[d.class.Name]; dup {
				log.Warnw("duplicate class declaration ignored",
					"class", d.class.Name, "file", unit.path, "first", prev.unit.path)
				continue
			}
			if _, lib := l.u.Lookup(d.class.Name); !lib {
				l.index(d.class.Name)
			}
			l.declared[d.class.Name] = d
			decls = append(decls, d)
		}
	}

	for _, d := range decls {
		c := d.class
		if c.Super != nil {
			super := l.qualify(*c.Super, d)
			c.Super = &super
		}
		for i, t := range c.Interfaces {
			c.Interfaces[i] = l.qualify(t, d)
		}
		for i := range c.Fields {
			c.Fields[i].Type = l.qualify(c.Fields[i].Type, d)
		}
	}
	for _, d := range decls {
		l.u.Add(d.class)
	}
}

// qualify rewrites t with qualified class names. d is the declaration whose
// scope applies; nil means only global rules are used.
func (l *linker) qualify(t typemodel.TypeRef, d *decl) typemodel.TypeRef {
	switch t.Kind {
	case typemodel.KindArray:
		return typemodel.ArrayOf(l.qualify(t.DeepComponent(), d), t.Dims())
	case typemodel.KindClass:
		if d != nil && len(t.Args) == 0 && d.typeParams[t.Name] {
			return typemodel.TypeVar(t.Name)
		}
		args := make([]typemodel.TypeRef, len(t.Args))
		for i, a := range t.Args {
			args[i] = l.qualify(a, d)
		}
		return typemodel.Class(l.resolveName(t.Name, d), args...)
	default:
		return t
	}
}

// resolveName follows Java's lookup order for the first segment of name:
// member classes of the enclosing classes, single-type imports, the same
// package, on-demand imports and java.lang. A name unique across the
// universe is accepted last; anything else is kept as written.
func (l *linker) resolveName(name string, d *decl) string {
	if l.known(name) {
		return name
	}
	head, tail := name, ""
	if i := strings.IndexByte(name, '.'); i >= 0 {
		head, tail = name[:i], name[i:]
	}

	try := func(candidate string) bool { return l.known(candidate + tail) }

	if d != nil {
		for _, outer := range d.enclosing {
			if try(outer + "." + head) {
				return outer + "." + head + tail
			}
		}
		if imp, ok := d.unit.imports[head]; ok {
			return imp + tail
		}
		if d.unit.pkg != "" && try(d.unit.pkg+"."+head) {
			return d.unit.pkg + "." + head + tail
		}
		for _, w := range d.unit.wildcards {
			if try(w + "." + head) {
				return w + "." + head + tail
			}
		}
	}
	if try("java.lang." + head) {
		return "java.lang." + head + tail
	}
	if q, ok := l.unique(head); ok && try(q) {
		return q + tail
	}
	return name
}
