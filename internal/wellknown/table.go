// Package wellknown maps leaf types to representative default values.
package wellknown

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/luchuanbaker/MyPojoToJson/internal/skeleton"
	"github.com/luchuanbaker/MyPojoToJson/internal/typemodel"
)

const (
	dateTimeLayout = "2006-01-02 15:04:05"
	dateLayout     = "2006-01-02"
	timeLayout     = "15:04:05"
)

// Producer computes a value at resolution time, e.g. the current timestamp.
type Producer func() skeleton.Value

// Entry binds a canonical type name to a constant value or a producer.
type Entry struct {
	Type    string
	Value   skeleton.Value
	Produce Producer
}

func Constant(typeName string, v skeleton.Value) Entry {
	return Entry{Type: typeName, Value: v}
}

func Produced(typeName string, p Producer) Entry {
	return Entry{Type: typeName, Produce: p}
}

func (e Entry) value() skeleton.Value {
	if e.Produce != nil {
		return e.Produce()
	}
	return e.Value
}

// Table is an immutable, ordered list of entries. Lookup returns the first
// entry whose type is equal to or a supertype of the looked-up type, so more
// specific entries must come first.
type Table struct {
	entries []Entry
}

func NewTable(entries ...Entry) *Table {
	return &Table{entries: append([]Entry(nil), entries...)}
}

// With returns a new table where entries take precedence over t's own.
func (t *Table) With(entries ...Entry) *Table {
	merged := make([]Entry, 0, len(entries)+len(t.entries))
	merged = append(merged, entries...)
	merged = append(merged, t.entries...)
	return &Table{entries: merged}
}

func (t *Table) Entries() []Entry {
	return append([]Entry(nil), t.entries...)
}

func (t *Table) Len() int { return len(t.entries) }

// Lookup finds the value for ref. Without an oracle only exact names match.
func (t *Table) Lookup(ref typemodel.TypeRef, oracle typemodel.AssignabilityOracle) (skeleton.Value, bool) {
	if t == nil || !ref.IsClass() {
		return skeleton.Value{}, false
	}
	for _, e := range t.entries {
		if e.Type == ref.Name {
			return e.value(), true
		}
		if oracle != nil && oracle.IsAssignable(typemodel.Class(e.Type), ref) {
			return e.value(), true
		}
	}
	return skeleton.Value{}, false
}

// Zero is the two-decimal zero used for floating point and decimal types.
func Zero() decimal.Decimal {
	return decimal.New(0, -2)
}

// Default returns the standard table. now supplies the clock for date and
// time values; nil means time.Now.
func Default(now func() time.Time) *Table {
	if now == nil {
		now = time.Now
	}
	format := func(layout string) Producer {
		return func() skeleton.Value { return skeleton.String(now().Format(layout)) }
	}
	placeholder := func(typeName string) Entry {
		return Constant(typeName, skeleton.String("{"+typemodel.SimpleName(typeName)+"}"))
	}

	return NewTable(
		Constant("java.lang.Boolean", skeleton.Bool(false)),
		Constant("java.util.concurrent.atomic.AtomicBoolean", skeleton.Bool(false)),
		Constant("java.lang.Float", skeleton.Decimal(Zero())),
		Constant("java.lang.Double", skeleton.Decimal(Zero())),
		Constant("java.math.BigDecimal", skeleton.Decimal(Zero())),
		Constant("java.lang.Number", skeleton.Int(0)),
		Constant("java.lang.CharSequence", skeleton.String("")),
		Produced("java.util.Date", format(dateTimeLayout)),
		Produced("java.time.LocalDateTime", format(dateTimeLayout)),
		Produced("java.time.LocalDate", format(dateLayout)),
		Produced("java.time.LocalTime", format(timeLayout)),
		Produced("java.time.temporal.Temporal", func() skeleton.Value { return skeleton.Int(now().UnixMilli()) }),
		Produced("java.util.UUID", func() skeleton.Value { return skeleton.String(uuid.NewString()) }),
		placeholder("java.io.File"),
		placeholder("java.nio.file.Path"),
		placeholder("java.net.SocketAddress"),
		placeholder("java.net.InetAddress"),
		placeholder("java.util.TimeZone"),
		placeholder("java.lang.Class"),
		placeholder("java.lang.Thread"),
		placeholder("java.lang.Throwable"),
	)
}

var primitiveDefaults = map[string]func() skeleton.Value{
	"boolean": func() skeleton.Value { return skeleton.Bool(false) },
	"byte":    func() skeleton.Value { return skeleton.Int(0) },
	"short":   func() skeleton.Value { return skeleton.Int(0) },
	"int":     func() skeleton.Value { return skeleton.Int(0) },
	"long":    func() skeleton.Value { return skeleton.Int(0) },
	"char":    func() skeleton.Value { return skeleton.String("C") },
	"float":   func() skeleton.Value { return skeleton.Decimal(Zero()) },
	"double":  func() skeleton.Value { return skeleton.Decimal(Zero()) },
}

var boxed = map[string]string{
	"Boolean":   "boolean",
	"Byte":      "byte",
	"Short":     "short",
	"Integer":   "int",
	"Long":      "long",
	"Character": "char",
	"Float":     "float",
	"Double":    "double",
}

// Primitive returns the default of a primitive keyword such as int or boolean.
func Primitive(name string) (skeleton.Value, bool) {
	f, ok := primitiveDefaults[strings.ToLower(name)]
	if !ok {
		return skeleton.Value{}, false
	}
	return f(), true
}

// PrimitiveOrBoxed returns the default of a primitive or of its java.lang box.
func PrimitiveOrBoxed(ref typemodel.TypeRef) (skeleton.Value, bool) {
	switch {
	case ref.IsPrimitive():
		return Primitive(ref.Name)
	case ref.IsClass() && strings.HasPrefix(ref.Name, "java.lang."):
		if p, ok := boxed[strings.TrimPrefix(ref.Name, "java.lang.")]; ok {
			return Primitive(p)
		}
	}
	return skeleton.Value{}, false
}
