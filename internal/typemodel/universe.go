package typemodel

import (
	"sort"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultAssignCacheSize = 4096

type assignKey struct {
	target    string
	candidate string
}

// Universe is an in-memory class registry. It implements TypeResolver,
// AssignabilityOracle and DocLookup and is safe for concurrent readers.
type Universe struct {
	mu      sync.RWMutex
	classes map[string]*ClassDescriptor
	simple  map[string][]string
	assign  *lru.Cache[assignKey, bool]
}

func NewUniverse() *Universe {
	cache, err := lru.New[assignKey, bool](defaultAssignCacheSize)
	if err != nil {
		// only fails for a non-positive size
		panic(err)
	}
	return &Universe{
		classes: make(map[string]*ClassDescriptor),
		simple:  make(map[string][]string),
		assign:  cache,
	}
}

// Add registers c, replacing any class with the same qualified name.
func (u *Universe) Add(c *ClassDescriptor) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if _, exists := u.classes[c.Name]; !exists {
		s := SimpleName(c.Name)
		u.simple[s] = append(u.simple[s], c.Name)
	}
	u.classes[c.Name] = c
	u.assign.Purge()
}

func (u *Universe) Lookup(name string) (*ClassDescriptor, bool) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	c, ok := u.classes[name]
	return c, ok
}

// LookupSimple returns the qualified name for a simple class name when it is unique.
func (u *Universe) LookupSimple(simple string) (string, bool) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	names := u.simple[simple]
	if len(names) != 1 {
		return "", false
	}
	return names[0], true
}

// Names returns every registered qualified class name, sorted.
func (u *Universe) Names() []string {
	u.mu.RLock()
	defer u.mu.RUnlock()
	names := make([]string, 0, len(u.classes))
	for n := range u.classes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (u *Universe) Len() int {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return len(u.classes)
}

func (u *Universe) ResolveClass(ref TypeRef) (*ClassDescriptor, bool) {
	if ref.Kind != KindClass {
		return nil, false
	}
	return u.Lookup(ref.Name)
}

func (u *Universe) IsAssignable(target, candidate TypeRef) bool {
	if target.Kind != KindClass || candidate.Kind != KindClass {
		return target.Kind == candidate.Kind && target.Erasure() == candidate.Erasure()
	}
	if target.Name == candidate.Name {
		return true
	}

	key := assignKey{target: target.Name, candidate: candidate.Name}
	if v, ok := u.assign.Get(key); ok {
		return v
	}
	v := u.isSubclass(target.Name, candidate.Name)
	u.assign.Add(key, v)
	return v
}

func (u *Universe) isSubclass(target, candidate string) bool {
	if target == ObjectClass {
		return true
	}
	seen := map[string]bool{candidate: true}
	queue := []string{candidate}
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		c, ok := u.Lookup(name)
		if !ok {
			continue
		}
		for _, st := range c.Supertypes() {
			if st.Name == target {
				return true
			}
			if !seen[st.Name] {
				seen[st.Name] = true
				queue = append(queue, st.Name)
			}
		}
	}
	return false
}

func (u *Universe) FieldDoc(_ *ClassDescriptor, field Field) (string, bool) {
	if field.Doc == "" {
		return "", false
	}
	return field.Doc, true
}
