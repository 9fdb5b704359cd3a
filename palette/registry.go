package palette

import "sort"

// firstIndex is the first auto-assigned registry index; indices 0 and
// 1 belong to the system.
const firstIndex = 2

// Entry is a named palette with its stable hardware index.
type Entry struct {
	Name    string
	Index   int
	Palette Palette
}

// Registry maps palette names to hardware palette indices. Indices
// are assigned once per name and never change; registering a name a
// second time returns the original entry untouched.
type Registry struct {
	entries map[string]*Entry
	next    int
}

// NewRegistry returns an empty registry with auto-assignment starting
// after the reserved system indices.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*Entry),
		next:    firstIndex,
	}
}

// Register adds p under name with the next free index. If name is
// already registered its existing entry is returned and the counter
// does not move.
func (r *Registry) Register(name string, p Palette) *Entry {
	if e, ok := r.entries[name]; ok {
		return e
	}
	e := &Entry{Name: name, Index: r.next, Palette: p}
	r.entries[name] = e
	r.next++
	return e
}

// RegisterAt adds p under name with an explicit index, bypassing the
// counter. Colliding with an auto-assigned or reserved index is the
// caller's responsibility. As with Register, an existing name wins.
func (r *Registry) RegisterAt(name string, p Palette, index int) *Entry {
	if e, ok := r.entries[name]; ok {
		return e
	}
	e := &Entry{Name: name, Index: index, Palette: p}
	r.entries[name] = e
	return e
}

// Lookup returns the entry for name, or nil.
func (r *Registry) Lookup(name string) *Entry {
	return r.entries[name]
}

// Entries returns all entries ordered by index.
func (r *Registry) Entries() []*Entry {
	out := make([]*Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}
