package javasrc

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"

	"github.com/luchuanbaker/MyPojoToJson/internal/typemodel"
)

// fileUnit is one parsed compilation unit. Type names in its declarations
// are still written the way the source spells them.
type fileUnit struct {
	path      string
	pkg       string
	imports   map[string]string // simple name -> qualified name
	wildcards []string          // package or class prefixes of on-demand imports
	decls     []*decl
	hasError  bool
}

// decl is a class declared in a fileUnit, with the lexical scope its type
// names must be qualified in.
type decl struct {
	class      *typemodel.ClassDescriptor
	unit       *fileUnit
	enclosing  []string // qualified names, innermost (the class itself) first
	typeParams map[string]bool
}

func newParser() *sitter.Parser {
	p := sitter.NewParser()
	p.SetLanguage(java.GetLanguage())
	return p
}

func parseSource(ctx context.Context, p *sitter.Parser, path string, src []byte) (*fileUnit, error) {
	tree, err := p.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	defer tree.Close()

	unit := &fileUnit{path: path, imports: make(map[string]string)}
	x := extractor{src: src, unit: unit}

	root := tree.RootNode()
	unit.hasError = root.HasError()
	for i := 0; i < int(root.NamedChildCount()); i++ {
		n := root.NamedChild(i)
		switch n.Type() {
		case "package_declaration":
			unit.pkg = x.packageName(n)
		case "import_declaration":
			x.addImport(n)
		case "class_declaration", "interface_declaration", "enum_declaration", "record_declaration":
			x.declare(n, nil, nil)
		}
	}
	return unit, nil
}

type extractor struct {
	src  []byte
	unit *fileUnit
}

func (x *extractor) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(x.src)
}

func (x *extractor) packageName(n *sitter.Node) string {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if c.Type() == "scoped_identifier" || c.Type() == "identifier" {
			return x.text(c)
		}
	}
	return ""
}

func (x *extractor) addImport(n *sitter.Node) {
	var name string
	wildcard := false
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		switch c.Type() {
		case "static":
			// static imports bring members, never types we can expand
			return
		case "scoped_identifier", "identifier":
			name = x.text(c)
		case "asterisk":
			wildcard = true
		}
	}
	switch {
	case name == "":
	case wildcard:
		x.unit.wildcards = append(x.unit.wildcards, name)
	default:
		x.unit.imports[typemodel.SimpleName(name)] = name
	}
}

type modifiers struct {
	keywords    map[string]bool
	annotations []string
}

func (x *extractor) modifiers(n *sitter.Node) modifiers {
	m := modifiers{keywords: make(map[string]bool)}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c.Type() != "modifiers" {
			continue
		}
		for j := 0; j < int(c.ChildCount()); j++ {
			mod := c.Child(j)
			switch mod.Type() {
			case "marker_annotation", "annotation":
				m.annotations = append(m.annotations, x.text(mod.ChildByFieldName("name")))
			default:
				m.keywords[strings.TrimSpace(x.text(mod))] = true
			}
		}
	}
	return m
}

func (x *extractor) declare(n *sitter.Node, outer []string, outerParams map[string]bool) {
	name := x.text(n.ChildByFieldName("name"))
	if name == "" {
		return
	}
	qualified := name
	switch {
	case len(outer) > 0:
		qualified = outer[0] + "." + name
	case x.unit.pkg != "":
		qualified = x.unit.pkg + "." + name
	}

	c := &typemodel.ClassDescriptor{Name: qualified}
	params := make(map[string]bool, len(outerParams))
	for p := range outerParams {
		params[p] = true
	}
	if tp := n.ChildByFieldName("type_parameters"); tp != nil {
		for i := 0; i < int(tp.NamedChildCount()); i++ {
			p := tp.NamedChild(i)
			if p.Type() != "type_parameter" || p.NamedChildCount() == 0 {
				continue
			}
			pname := x.typeParamName(p)
			c.TypeParams = append(c.TypeParams, pname)
			params[pname] = true
		}
	}
	d := &decl{
		class:      c,
		unit:       x.unit,
		enclosing:  append([]string{qualified}, outer...),
		typeParams: params,
	}
	x.unit.decls = append(x.unit.decls, d)

	mods := x.modifiers(n)
	body := n.ChildByFieldName("body")
	switch n.Type() {
	case "class_declaration":
		c.IsAbstract = mods.keywords["abstract"]
		if sc := n.ChildByFieldName("superclass"); sc != nil && sc.NamedChildCount() > 0 {
			super := x.typeRef(sc.NamedChild(int(sc.NamedChildCount()) - 1))
			c.Super = &super
		}
		c.Interfaces = x.typeList(n.ChildByFieldName("interfaces"))
	case "interface_declaration":
		c.IsInterface = true
		for i := 0; i < int(n.NamedChildCount()); i++ {
			if ch := n.NamedChild(i); ch.Type() == "extends_interfaces" {
				c.Interfaces = x.typeList(ch)
			}
		}
	case "enum_declaration":
		c.IsEnum = true
		c.Interfaces = x.typeList(n.ChildByFieldName("interfaces"))
	case "record_declaration":
		c.Interfaces = x.typeList(n.ChildByFieldName("interfaces"))
		c.Fields = x.recordComponents(n.ChildByFieldName("parameters"))
	}

	if body != nil {
		x.members(d, body)
	}
}

// typeParamName reads T out of "T extends Comparable<T>".
func (x *extractor) typeParamName(p *sitter.Node) string {
	for i := 0; i < int(p.NamedChildCount()); i++ {
		c := p.NamedChild(i)
		if c.Type() == "type_identifier" || c.Type() == "identifier" {
			return x.text(c)
		}
	}
	return x.text(p.NamedChild(0))
}

func (x *extractor) members(d *decl, body *sitter.Node) {
	for i := 0; i < int(body.NamedChildCount()); i++ {
		n := body.NamedChild(i)
		switch n.Type() {
		case "field_declaration", "constant_declaration":
			fields := x.fields(n)
			if d.class.IsInterface {
				// interface fields are implicitly static
				for j := range fields {
					fields[j].Static = true
				}
			}
			d.class.Fields = append(d.class.Fields, fields...)
		case "enum_constant":
			d.class.EnumConstants = append(d.class.EnumConstants, x.text(n.ChildByFieldName("name")))
		case "enum_body_declarations":
			x.members(d, n)
		case "class_declaration", "interface_declaration", "enum_declaration", "record_declaration":
			x.declare(n, d.enclosing, d.typeParams)
		}
	}
}

func (x *extractor) fields(n *sitter.Node) []typemodel.Field {
	base := x.typeRef(n.ChildByFieldName("type"))
	mods := x.modifiers(n)
	doc := x.docComment(n)

	var out []typemodel.Field
	for i := 0; i < int(n.NamedChildCount()); i++ {
		v := n.NamedChild(i)
		if v.Type() != "variable_declarator" {
			continue
		}
		t := base
		if dims := countDims(x.text(v.ChildByFieldName("dimensions"))); dims > 0 {
			t = typemodel.ArrayOf(base, dims)
		}
		out = append(out, typemodel.Field{
			Name:        x.text(v.ChildByFieldName("name")),
			Type:        t,
			Static:      mods.keywords["static"],
			Transient:   mods.keywords["transient"],
			Annotations: mods.annotations,
			Doc:         doc,
		})
	}
	return out
}

func (x *extractor) recordComponents(params *sitter.Node) []typemodel.Field {
	if params == nil {
		return nil
	}
	var out []typemodel.Field
	for i := 0; i < int(params.NamedChildCount()); i++ {
		p := params.NamedChild(i)
		if p.Type() != "formal_parameter" {
			continue
		}
		t := x.typeRef(p.ChildByFieldName("type"))
		if dims := countDims(x.text(p.ChildByFieldName("dimensions"))); dims > 0 {
			t = typemodel.ArrayOf(t, dims)
		}
		out = append(out, typemodel.Field{
			Name:        x.text(p.ChildByFieldName("name")),
			Type:        t,
			Annotations: x.modifiers(p).annotations,
		})
	}
	return out
}

func (x *extractor) docComment(n *sitter.Node) string {
	prev := n.PrevNamedSibling()
	if prev == nil {
		return ""
	}
	switch prev.Type() {
	case "block_comment", "comment":
		if text := x.text(prev); strings.HasPrefix(text, "/**") {
			return text
		}
	}
	return ""
}

// typeList flattens super_interfaces / extends_interfaces / type_list nodes.
func (x *extractor) typeList(n *sitter.Node) []typemodel.TypeRef {
	if n == nil {
		return nil
	}
	var out []typemodel.TypeRef
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if c.Type() == "type_list" {
			out = append(out, x.typeList(c)...)
			continue
		}
		out = append(out, x.typeRef(c))
	}
	return out
}

func (x *extractor) typeRef(n *sitter.Node) typemodel.TypeRef {
	if n == nil {
		return typemodel.Class(typemodel.ObjectClass)
	}
	switch n.Type() {
	case "integral_type", "floating_point_type", "boolean_type", "void_type":
		return typemodel.Primitive(x.text(n))
	case "type_identifier":
		return typemodel.Class(x.text(n))
	case "scoped_type_identifier":
		return typemodel.Class(stripTypeArgs(x.text(n)))
	case "generic_type":
		base := x.typeRef(n.NamedChild(0))
		var args []typemodel.TypeRef
		if n.NamedChildCount() > 1 {
			ta := n.NamedChild(1)
			for i := 0; i < int(ta.NamedChildCount()); i++ {
				args = append(args, x.typeRef(ta.NamedChild(i)))
			}
		}
		return typemodel.Class(base.Name, args...)
	case "array_type":
		elem := x.typeRef(n.ChildByFieldName("element"))
		dims := countDims(x.text(n.ChildByFieldName("dimensions")))
		if dims == 0 {
			dims = 1
		}
		return typemodel.ArrayOf(elem, dims)
	case "annotated_type":
		return x.typeRef(n.NamedChild(int(n.NamedChildCount()) - 1))
	case "wildcard":
		return x.wildcard(n)
	default:
		return typemodel.Class(stripTypeArgs(x.text(n)))
	}
}

// wildcard maps "? extends X" to X; unbounded and lower-bounded wildcards
// carry no usable element type and become Object.
func (x *extractor) wildcard(n *sitter.Node) typemodel.TypeRef {
	var bound *sitter.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		switch c.Type() {
		case "super":
			return typemodel.Class(typemodel.ObjectClass)
		case "marker_annotation", "annotation":
		default:
			bound = c
		}
	}
	if bound == nil {
		return typemodel.Class(typemodel.ObjectClass)
	}
	return x.typeRef(bound)
}

func countDims(s string) int {
	return strings.Count(s, "[")
}

func stripTypeArgs(s string) string {
	if !strings.Contains(s, "<") {
		return strings.Join(strings.Fields(s), "")
	}
	var sb strings.Builder
	depth := 0
	for _, r := range s {
		switch {
		case r == '<':
			depth++
		case r == '>':
			depth--
		case depth == 0 && r != ' ':
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
