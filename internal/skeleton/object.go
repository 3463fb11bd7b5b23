package skeleton

import (
	"bytes"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Object is an ordered mapping of keys to values. Each key may carry a raw
// documentation annotation that is emitted as a sibling entry.
type Object struct {
	fields *orderedmap.OrderedMap[string, Value]
	docs   map[string]string
}

func NewObject() *Object {
	return &Object{
		fields: orderedmap.New[string, Value](),
		docs:   make(map[string]string),
	}
}

// Set stores v under key. An existing key keeps its position and value; the
// first writer wins so subclass fields shadow inherited ones.
func (o *Object) Set(key string, v Value) bool {
	if _, exists := o.fields.Get(key); exists {
		return false
	}
	o.fields.Set(key, v)
	return true
}

// Put stores v under key, replacing any existing value in place.
func (o *Object) Put(key string, v Value) {
	o.fields.Set(key, v)
}

func (o *Object) SetDoc(key, doc string) {
	if doc == "" {
		return
	}
	o.docs[key] = doc
}

func (o *Object) Get(key string) (Value, bool) {
	return o.fields.Get(key)
}

func (o *Object) Doc(key string) (string, bool) {
	d, ok := o.docs[key]
	return d, ok
}

func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return o.fields.Len()
}

func (o *Object) Keys() []string {
	keys := make([]string, 0, o.fields.Len())
	for pair := o.fields.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

func (o *Object) Equal(other *Object) bool {
	if o.Len() != other.Len() {
		return false
	}
	if o == nil || other == nil {
		return o.Len() == 0 && other.Len() == 0
	}
	a, b := o.fields.Oldest(), other.fields.Oldest()
	for ; a != nil && b != nil; a, b = a.Next(), b.Next() {
		if a.Key != b.Key || !a.Value.Equal(b.Value) {
			return false
		}
		if o.docs[a.Key] != other.docs[b.Key] {
			return false
		}
	}
	return true
}

func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := o.writeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (o *Object) writeJSON(buf *bytes.Buffer) error {
	buf.WriteByte('{')
	first := true
	entry := func(key string, write func() error) error {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		if err := writeString(buf, key); err != nil {
			return err
		}
		buf.WriteByte(':')
		return write()
	}

	for pair := o.fields.Oldest(); pair != nil; pair = pair.Next() {
		if doc, ok := o.docs[pair.Key]; ok {
			if err := entry(DocKeyPrefix+"-"+pair.Key, func() error { return writeString(buf, doc) }); err != nil {
				return err
			}
		}
		v := pair.Value
		if err := entry(pair.Key, func() error { return v.writeJSON(buf) }); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}
