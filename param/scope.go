package param

import "iter"

// Entry is one named value of a Scope.
type Entry struct {
	Name  string
	Value Value
}

// Scope maps unique names to values and remembers the order names were first set.
//
// Overwriting a name replaces its value in place; the name keeps its position.
type Scope struct {
	index   map[string]int
	entries []Entry
}

// NewScope creates an empty scope.
func NewScope() *Scope {
	return &Scope{
		index:   make(map[string]int),
		entries: make([]Entry, 0),
	}
}

// Set stores v under name; the last write wins.
func (s *Scope) Set(name string, v Value) {
	if i, ok := s.index[name]; ok {
		s.entries[i].Value = v
		return
	}

	s.index[name] = len(s.entries)
	s.entries = append(s.entries, Entry{Name: name, Value: v})
}

// Get returns the value stored under name.
func (s *Scope) Get(name string) (Value, bool) {
	if s == nil {
		return Value{}, false
	}

	i, ok := s.index[name]
	if !ok {
		return Value{}, false
	}

	return s.entries[i].Value, true
}

// Len returns the number of names in the scope.
func (s *Scope) Len() int {
	if s == nil {
		return 0
	}

	return len(s.entries)
}

// Names returns the names in insertion order.
func (s *Scope) Names() []string {
	if s == nil {
		return nil
	}

	names := make([]string, len(s.entries))
	for i, e := range s.entries {
		names[i] = e.Name
	}

	return names
}

// All iterates over the entries in insertion order.
func (s *Scope) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if s == nil {
			return
		}
		for _, e := range s.entries {
			if !yield(e.Name, e.Value) {
				return
			}
		}
	}
}

// Entries returns a copy of the entries in insertion order.
func (s *Scope) Entries() []Entry {
	if s == nil {
		return nil
	}

	out := make([]Entry, len(s.entries))
	copy(out, s.entries)

	return out
}
