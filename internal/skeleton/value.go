// Package skeleton defines the value model produced by the resolver: scalars,
// markers for partial results, ordered objects and single-element lists.
package skeleton

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/shopspring/decimal"
)

type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindDecimal
	KindString
	KindRawType
	KindRecursion
	KindMaxDepth
	KindOpaque
	KindObject
	KindList
)

var kindNames = map[Kind]string{
	KindNull:      "null",
	KindBool:      "bool",
	KindInt:       "int",
	KindDecimal:   "decimal",
	KindString:    "string",
	KindRawType:   "rawType",
	KindRecursion: "recursion",
	KindMaxDepth:  "maxDepth",
	KindOpaque:    "opaque",
	KindObject:    "object",
	KindList:      "list",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Reserved keys and marker texts of the JSON form.
const (
	// DocKeyPrefix prefixes the sibling key that carries a field's documentation.
	DocKeyPrefix = "----JAVA_DOC----"
	// MapKeyShape holds the structure of a map's key type when it is an object.
	MapKeyShape = "__key__"
	// RawTypeText marks an unbound generic parameter.
	RawTypeText = "(rawType)"
	// OpaqueText stands for an interface that has no fields to walk.
	OpaqueText = "{}"
)

// Value is a tagged skeleton value. The zero Value is Null.
type Value struct {
	kind Kind
	b    bool
	i    int64
	d    decimal.Decimal
	s    string
	obj  *Object
	list *List
}

// List is a list value under construction. Values built from it with
// ListValue observe a later SetElem.
type List struct {
	elem *Value
}

func NewList() *List { return &List{} }

// SetElem sets the single element that describes the shape of all elements.
func (l *List) SetElem(v Value) { l.elem = &v }

func Null() Value { return Value{kind: KindNull} }
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }
func Int(i int64) Value { return Value{kind: KindInt, i: i} }
func Decimal(d decimal.Decimal) Value { return Value{kind: KindDecimal, d: d} }
func String(s string) Value { return Value{kind: KindString, s: s} }

// RawType marks a generic parameter that a raw type use left unbound.
func RawType() Value { return Value{kind: KindRawType, s: RawTypeText} }

// RawField marks a field whose type could not be determined because the
// declaring class was used raw, e.g. null(rawType)(Box:T).
func RawField(className, fieldType string) Value {
	return Value{kind: KindRawType, s: "null(rawType)(" + className + ":" + fieldType + ")"}
}

// Recursion marks a type that is already being expanded on the current branch.
func Recursion(name string) Value {
	return Value{kind: KindRecursion, s: name}
}

// MaxDepth marks a branch cut off by the depth ceiling.
func MaxDepth(name string) Value {
	return Value{kind: KindMaxDepth, s: name}
}

func Opaque() Value { return Value{kind: KindOpaque, s: OpaqueText} }

func ObjectValue(o *Object) Value {
	if o == nil {
		o = NewObject()
	}
	return Value{kind: KindObject, obj: o}
}

func ListValue(l *List) Value {
	if l == nil {
		l = NewList()
	}
	return Value{kind: KindList, list: l}
}

func EmptyList() Value { return ListValue(NewList()) }

// ListOf builds a list whose single element describes the shape of all elements.
func ListOf(elem Value) Value {
	l := NewList()
	l.SetElem(elem)
	return ListValue(l)
}

func (v Value) elem() *Value {
	if v.list == nil {
		return nil
	}
	return v.list.elem
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsMarker() bool {
	switch v.kind {
	case KindRawType, KindRecursion, KindMaxDepth, KindOpaque:
		return true
	}
	return false
}

func (v Value) BoolValue() bool { return v.b }
func (v Value) IntValue() int64 { return v.i }
func (v Value) DecimalValue() decimal.Decimal { return v.d }

// Text returns the string payload: the string itself, or the rendered marker.
func (v Value) Text() string {
	switch v.kind {
	case KindRecursion:
		return "Recursion(" + v.s + ")..."
	case KindMaxDepth:
		return "MaxDepth(" + v.s + ")..."
	}
	return v.s
}

// Name is the type name carried by recursion and max-depth markers.
func (v Value) Name() string { return v.s }

func (v Value) Object() *Object { return v.obj }

// Elem returns the representative element of a list, if it has one.
func (v Value) Elem() (Value, bool) {
	e := v.elem()
	if e == nil {
		return Value{}, false
	}
	return *e, true
}

// Len is the entry count of an object or the element count of a list.
func (v Value) Len() int {
	switch v.kind {
	case KindObject:
		return v.obj.Len()
	case KindList:
		if v.elem() != nil {
			return 1
		}
	}
	return 0
}

// Equal compares two values structurally, including object key order and docs.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindInt:
		return v.i == o.i
	case KindDecimal:
		return v.d.Equal(o.d)
	case KindObject:
		return v.obj.Equal(o.obj)
	case KindList:
		ve, oe := v.elem(), o.elem()
		if (ve == nil) != (oe == nil) {
			return false
		}
		return ve == nil || ve.Equal(*oe)
	default:
		return v.s == o.s
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.writeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v Value) writeJSON(buf *bytes.Buffer) error {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.b))
	case KindInt:
		buf.WriteString(strconv.FormatInt(v.i, 10))
	case KindDecimal:
		buf.WriteString(formatDecimal(v.d))
	case KindObject:
		return v.obj.writeJSON(buf)
	case KindList:
		buf.WriteByte('[')
		if e := v.elem(); e != nil {
			if err := e.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	default:
		return writeString(buf, v.Text())
	}
	return nil
}

// formatDecimal keeps the scale of d, so a two-decimal zero renders as 0.00.
func formatDecimal(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}

// writeString encodes s without HTML escaping so keys like {List<String>} stay readable.
func writeString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
	return nil
}
