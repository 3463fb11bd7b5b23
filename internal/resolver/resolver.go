// Package resolver walks a type reference through a host type model and
// produces the JSON skeleton of the value that type describes.
package resolver

import (
	"context"

	"github.com/luchuanbaker/MyPojoToJson/internal/skeleton"
	"github.com/luchuanbaker/MyPojoToJson/internal/substitution"
	"github.com/luchuanbaker/MyPojoToJson/internal/typemodel"
	"github.com/luchuanbaker/MyPojoToJson/internal/wellknown"
)

type shape int

const (
	shapePlain shape = iota
	shapeEnum
	shapeIterable
	shapeMap
	shapeInterface
)

// Resolve produces the skeleton of root. On cancellation or step overflow the
// partial value is discarded and the error wraps ErrCancelled or ErrStepOverflow.
func Resolve(ctx context.Context, root typemodel.TypeRef, opts Options) (skeleton.Value, error) {
	c, err := NewContext(ctx, opts)
	if err != nil {
		return skeleton.Value{}, err
	}
	return c.Run(root)
}

// Run resolves root on this context. A Context must not be reused across requests.
func (c *Context) Run(root typemodel.TypeRef) (skeleton.Value, error) {
	v, err := c.resolve(root)
	if err != nil {
		c.opts.Logger.Debugw("resolution aborted", "type", root.Presentable(), "steps", c.steps, "error", err)
		return skeleton.Value{}, err
	}
	c.opts.Logger.Debugw("resolution finished", "type", root.Presentable(), "steps", c.steps)
	return v, nil
}

func (c *Context) resolve(ref typemodel.TypeRef) (skeleton.Value, error) {
	if v, stop := c.guard(ref); stop {
		return v, nil
	}
	if err := c.checkpoint(ref); err != nil {
		return skeleton.Value{}, err
	}

	if v, ok := c.leaf(ref); ok {
		return v, nil
	}

	switch ref.Kind {
	case typemodel.KindArray:
		list := skeleton.NewList()
		v := skeleton.ListValue(list)
		c.keepPartial(v)
		elem, err := c.resolve(ref.DeepComponent())
		if err != nil {
			return skeleton.Value{}, err
		}
		list.SetElem(elem)
		return v, nil
	case typemodel.KindMissing, typemodel.KindTypeVar:
		return skeleton.RawType(), nil
	}

	class, ok := c.opts.Types.ResolveClass(ref)
	if !ok {
		c.opts.Logger.Debugw("unresolvable type", "type", ref.String())
		return c.emptyObject(), nil
	}

	switch c.classify(ref, class) {
	case shapeEnum:
		if len(class.EnumConstants) == 0 {
			return skeleton.String(""), nil
		}
		return skeleton.String(class.EnumConstants[0]), nil
	case shapeIterable:
		return c.resolveIterable(ref)
	case shapeMap:
		return c.resolveMap(ref)
	case shapeInterface:
		return skeleton.Opaque(), nil
	default:
		return c.resolveClass(ref, class)
	}
}

func (c *Context) leaf(ref typemodel.TypeRef) (skeleton.Value, bool) {
	if v, ok := wellknown.PrimitiveOrBoxed(ref); ok {
		return v, true
	}
	if v, ok := c.opts.WellKnown.Lookup(ref, c.opts.Oracle); ok {
		return v, true
	}
	if ref.IsClass() && ref.Name == typemodel.ObjectClass {
		return c.emptyObject(), true
	}
	return skeleton.Value{}, false
}

func (c *Context) emptyObject() skeleton.Value {
	v := skeleton.ObjectValue(skeleton.NewObject())
	c.keepPartial(v)
	return v
}

// classify picks exactly one shape; the order of the cases is the precedence.
func (c *Context) classify(ref typemodel.TypeRef, class *typemodel.ClassDescriptor) shape {
	switch {
	case class.IsEnum:
		return shapeEnum
	case c.isA(ref, c.opts.IterableContract):
		return shapeIterable
	case c.isA(ref, c.opts.MapContract):
		return shapeMap
	case class.IsInterface:
		return shapeInterface
	}
	return shapePlain
}

func (c *Context) isA(ref typemodel.TypeRef, contract string) bool {
	if ref.Name == contract {
		return true
	}
	return c.opts.Oracle != nil && c.opts.Oracle.IsAssignable(typemodel.Class(contract), ref)
}

// contractArgs resolves the type parameters of a contract class through the
// inheritance chain of ref, in declaration order.
func (c *Context) contractArgs(ref typemodel.TypeRef, contract string) []typemodel.TypeRef {
	chain := substitution.ChainFor(ref, c.opts.Types)
	class, ok := c.opts.Types.ResolveClass(typemodel.Class(contract))
	if !ok {
		return nil
	}
	args := make([]typemodel.TypeRef, len(class.TypeParams))
	for i, p := range class.TypeParams {
		if r, ok := chain.Lookup(class.Name, p); ok {
			args[i] = r
		} else {
			args[i] = typemodel.MissingGeneric
		}
	}
	return args
}

func (c *Context) resolveIterable(ref typemodel.TypeRef) (skeleton.Value, error) {
	list := skeleton.NewList()
	v := skeleton.ListValue(list)
	c.keepPartial(v)

	args := c.contractArgs(ref, c.opts.IterableContract)
	if len(args) == 0 || args[0].IsMissing() {
		return v, nil
	}
	elem, err := c.resolve(args[0])
	if err != nil {
		return skeleton.Value{}, err
	}
	list.SetElem(elem)
	return v, nil
}

func (c *Context) resolveMap(ref typemodel.TypeRef) (skeleton.Value, error) {
	obj := skeleton.NewObject()
	c.keepPartial(skeleton.ObjectValue(obj))

	args := c.contractArgs(ref, c.opts.MapContract)
	key, val := typemodel.MissingGeneric, typemodel.MissingGeneric
	if len(args) == 2 {
		key, val = args[0], args[1]
	}

	value := skeleton.RawType()
	if !val.IsMissing() {
		v, err := c.resolve(val)
		if err != nil {
			return skeleton.Value{}, err
		}
		value = v
	}

	if key.IsMissing() {
		obj.Put(skeleton.RawTypeText, value)
		return skeleton.ObjectValue(obj), nil
	}
	obj.Put("{"+key.Presentable()+"}", value)

	// a structured key is described once under a reserved entry
	kv, err := c.resolve(key)
	if err != nil {
		return skeleton.Value{}, err
	}
	if kv.Kind() == skeleton.KindObject && kv.Object().Len() > 0 {
		obj.Put(skeleton.MapKeyShape, kv)
	}
	return skeleton.ObjectValue(obj), nil
}

func (c *Context) resolveClass(ref typemodel.TypeRef, class *typemodel.ClassDescriptor) (skeleton.Value, error) {
	release := c.enter(ref)
	defer release()

	obj := skeleton.NewObject()
	c.keepPartial(skeleton.ObjectValue(obj))

	seen := map[string]bool{class.Name: true}
	cur, curClass := ref, class
	for {
		m := substitution.For(cur, curClass)
		for _, f := range curClass.Fields {
			if !c.keepField(curClass, f) {
				continue
			}
			v, err := c.resolveField(curClass, f, m)
			if err != nil {
				return skeleton.Value{}, err
			}
			// fields declared closer to ref shadow inherited ones
			if obj.Set(f.Name, v) {
				c.attachDoc(obj, curClass, f)
			}
		}

		super := substitution.SuperRef(curClass, m)
		if super == nil || super.Name == typemodel.ObjectClass {
			break
		}
		superClass, ok := c.opts.Types.ResolveClass(*super)
		if !ok || seen[superClass.Name] {
			break
		}
		if err := c.checkpoint(*super); err != nil {
			return skeleton.Value{}, err
		}
		seen[superClass.Name] = true
		cur, curClass = *super, superClass
	}
	return skeleton.ObjectValue(obj), nil
}

func (c *Context) resolveField(class *typemodel.ClassDescriptor, f typemodel.Field, m substitution.Map) (skeleton.Value, error) {
	t, ok := substitution.FieldType(f, m)
	if !ok {
		return skeleton.RawField(typemodel.SimpleName(class.Name), f.Type.Presentable()), nil
	}
	return c.resolve(t)
}

func (c *Context) keepField(class *typemodel.ClassDescriptor, f typemodel.Field) bool {
	if f.Static {
		return false
	}
	if f.Transient && !c.opts.IncludeTransient {
		return false
	}
	for _, a := range c.opts.IgnoreAnnotations {
		if f.HasAnnotation(a) {
			return false
		}
	}
	if c.opts.FieldFilter != nil && !c.opts.FieldFilter(class, f) {
		return false
	}
	return true
}

func (c *Context) attachDoc(obj *skeleton.Object, class *typemodel.ClassDescriptor, f typemodel.Field) {
	if c.opts.OmitDocs || c.opts.Docs == nil {
		return
	}
	if doc, ok := c.opts.Docs.FieldDoc(class, f); ok {
		obj.SetDoc(f.Name, doc)
	}
}
