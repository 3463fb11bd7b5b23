package javasrc

import (
	"github.com/luchuanbaker/MyPojoToJson/internal/typemodel"
)

func cls(name string, args ...typemodel.TypeRef) typemodel.TypeRef { return typemodel.Class(name, args...) }

func tv(name string) typemodel.TypeRef { return typemodel.TypeVar(name) }

func refTo(t typemodel.TypeRef) *typemodel.TypeRef { return &t }

type jdkClass struct {
	name       string
	params     []string
	super      *typemodel.TypeRef
	interfaces []typemodel.TypeRef
	fields     []typemodel.Field
	iface      bool
	abstract   bool
}

var (
	object   = typemodel.ObjectClass
	number   = refTo(cls("java.lang.Number"))
	utilDate = refTo(cls("java.util.Date"))
	temporal = []typemodel.TypeRef{cls("java.time.temporal.Temporal")}
)

func collection(name string, parents ...string) jdkClass {
	c := jdkClass{name: name, params: []string{"E"}}
	for _, p := range parents {
		c.interfaces = append(c.interfaces, cls(p, tv("E")))
	}
	return c
}

func mapping(name string, parents ...string) jdkClass {
	c := jdkClass{name: name, params: []string{"K", "V"}}
	for _, p := range parents {
		c.interfaces = append(c.interfaces, cls(p, tv("K"), tv("V")))
	}
	return c
}

func iface(c jdkClass) jdkClass {
	c.iface = true
	return c
}

// jdkClasses is the slice of the Java class library the resolver needs to
// recognise collections, maps and well-known leaf types without the JDK
// sources on the search path.
var jdkClasses = []jdkClass{
	{name: object},
	{name: "java.io.Serializable", iface: true},
	{name: "java.lang.CharSequence", iface: true},
	{name: "java.lang.Comparable", params: []string{"T"}, iface: true},
	{name: "java.lang.String", interfaces: []typemodel.TypeRef{cls("java.lang.CharSequence"), cls("java.lang.Comparable", cls("java.lang.String"))}},
	{name: "java.lang.StringBuilder", interfaces: []typemodel.TypeRef{cls("java.lang.CharSequence")}},
	{name: "java.lang.Number", abstract: true},
	{name: "java.lang.Boolean"},
	{name: "java.lang.Character"},
	{name: "java.lang.Byte", super: number},
	{name: "java.lang.Short", super: number},
	{name: "java.lang.Integer", super: number},
	{name: "java.lang.Long", super: number},
	{name: "java.lang.Float", super: number},
	{name: "java.lang.Double", super: number},
	{name: "java.lang.Void"},
	{name: "java.lang.Enum", params: []string{"E"}, abstract: true},
	{name: "java.lang.Record", abstract: true},
	{name: "java.lang.Class", params: []string{"T"}},
	{name: "java.lang.Thread"},
	{name: "java.lang.Throwable"},
	{name: "java.lang.Exception", super: refTo(cls("java.lang.Throwable"))},
	{name: "java.lang.RuntimeException", super: refTo(cls("java.lang.Exception"))},
	{name: "java.lang.Iterable", params: []string{"T"}, iface: true},

	iface(collection("java.util.Collection", "java.lang.Iterable")),
	iface(collection("java.util.List", "java.util.Collection")),
	iface(collection("java.util.Set", "java.util.Collection")),
	iface(collection("java.util.SortedSet", "java.util.Set")),
	iface(collection("java.util.NavigableSet", "java.util.SortedSet")),
	iface(collection("java.util.Queue", "java.util.Collection")),
	iface(collection("java.util.Deque", "java.util.Queue")),
	collection("java.util.ArrayList", "java.util.List"),
	collection("java.util.LinkedList", "java.util.List", "java.util.Deque"),
	collection("java.util.Vector", "java.util.List"),
	collection("java.util.concurrent.CopyOnWriteArrayList", "java.util.List"),
	collection("java.util.HashSet", "java.util.Set"),
	collection("java.util.LinkedHashSet", "java.util.Set"),
	collection("java.util.TreeSet", "java.util.NavigableSet"),
	collection("java.util.ArrayDeque", "java.util.Deque"),
	collection("java.util.PriorityQueue", "java.util.Queue"),

	iface(mapping("java.util.Map")),
	iface(mapping("java.util.SortedMap", "java.util.Map")),
	iface(mapping("java.util.NavigableMap", "java.util.SortedMap")),
	iface(mapping("java.util.concurrent.ConcurrentMap", "java.util.Map")),
	mapping("java.util.HashMap", "java.util.Map"),
	mapping("java.util.LinkedHashMap", "java.util.Map"),
	mapping("java.util.TreeMap", "java.util.NavigableMap"),
	mapping("java.util.Hashtable", "java.util.Map"),
	mapping("java.util.EnumMap", "java.util.Map"),
	mapping("java.util.concurrent.ConcurrentHashMap", "java.util.concurrent.ConcurrentMap"),
	{name: "java.util.Properties", super: refTo(cls("java.util.Hashtable", cls(object), cls(object)))},

	{name: "java.util.Optional", params: []string{"T"}, fields: []typemodel.Field{{Name: "value", Type: tv("T")}}},
	{name: "java.util.UUID"},
	{name: "java.util.TimeZone", abstract: true},
	{name: "java.util.SimpleTimeZone", super: refTo(cls("java.util.TimeZone"))},
	{name: "java.util.Date"},
	{name: "java.sql.Date", super: utilDate},
	{name: "java.sql.Timestamp", super: utilDate},

	{name: "java.time.temporal.TemporalAccessor", iface: true},
	{name: "java.time.temporal.Temporal", iface: true, interfaces: []typemodel.TypeRef{cls("java.time.temporal.TemporalAccessor")}},
	{name: "java.time.LocalDate", interfaces: temporal},
	{name: "java.time.LocalTime", interfaces: temporal},
	{name: "java.time.LocalDateTime", interfaces: temporal},
	{name: "java.time.Instant", interfaces: temporal},
	{name: "java.time.ZonedDateTime", interfaces: temporal},
	{name: "java.time.OffsetDateTime", interfaces: temporal},
	{name: "java.time.Year", interfaces: temporal},
	{name: "java.time.YearMonth", interfaces: temporal},

	{name: "java.math.BigDecimal", super: number},
	{name: "java.math.BigInteger", super: number},
	{name: "java.util.concurrent.atomic.AtomicBoolean"},
	{name: "java.util.concurrent.atomic.AtomicInteger", super: number},
	{name: "java.util.concurrent.atomic.AtomicLong", super: number},

	{name: "java.io.File"},
	{name: "java.nio.file.Path", iface: true},
	{name: "java.net.SocketAddress", abstract: true},
	{name: "java.net.InetSocketAddress", super: refTo(cls("java.net.SocketAddress"))},
	{name: "java.net.InetAddress"},
	{name: "java.net.Inet4Address", super: refTo(cls("java.net.InetAddress"))},
	{name: "java.net.Inet6Address", super: refTo(cls("java.net.InetAddress"))},
}

// RegisterJDK adds the built-in library classes to u.
func RegisterJDK(u *typemodel.Universe) {
	for _, j := range jdkClasses {
		u.Add(&typemodel.ClassDescriptor{
			Name:        j.name,
			TypeParams:  j.params,
			Super:       j.super,
			Interfaces:  j.interfaces,
			Fields:      j.fields,
			IsInterface: j.iface,
			IsAbstract:  j.abstract,
		})
	}
}
