package hubspot

import (
	"sort"
)

// Param is a single named request parameter.
type Param struct {
	Key   string
	Value any
}

// Params is an ordered parameter bag. Order is preserved into the query string.
//
// Values may be scalars (strings, bools, numbers, fmt.Stringer), timestamps
// (time.Time), a Range, or a slice of any of those; a slice is expanded into
// one fragment per element under the same key.
type Params []Param

// Range is an inclusive range. Keys containing "range" require one.
type Range struct {
	Begin any
	End   any
}

// NewRange creates an inclusive range
func NewRange(begin, end any) Range {
	return Range{Begin: begin, End: end}
}

// ParamsFromMap builds a bag from a map, ordering keys lexically so the
// resulting query string is deterministic.
func ParamsFromMap(m map[string]any) Params {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	params := make(Params, 0, len(keys))
	for _, k := range keys {
		params = append(params, Param{Key: k, Value: m[k]})
	}
	return params
}

// Add returns a new bag with key=value appended. The receiver is left untouched.
func (p Params) Add(key string, value any) Params {
	out := make(Params, len(p), len(p)+1)
	copy(out, p)
	return append(out, Param{Key: key, Value: value})
}

// Set returns a new bag where key holds only value, keeping the position of the
// first existing entry or appending when absent.
func (p Params) Set(key string, value any) Params {
	out := make(Params, 0, len(p)+1)
	found := false
	for _, param := range p {
		if param.Key != key {
			out = append(out, param)
			continue
		}
		if !found {
			out = append(out, Param{Key: key, Value: value})
			found = true
		}
	}
	if !found {
		out = append(out, Param{Key: key, Value: value})
	}
	return out
}

// Get returns the first value stored under key.
func (p Params) Get(key string) (any, bool) {
	for _, param := range p {
		if param.Key == key {
			return param.Value, true
		}
	}
	return nil, false
}

// Has reports whether key is present.
func (p Params) Has(key string) bool {
	_, ok := p.Get(key)
	return ok
}

// Without returns a new bag with every entry under the given keys removed.
func (p Params) Without(keys ...string) Params {
	drop := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		drop[k] = struct{}{}
	}

	out := make(Params, 0, len(p))
	for _, param := range p {
		if _, ok := drop[param.Key]; ok {
			continue
		}
		out = append(out, param)
	}
	return out
}

// Clone returns a shallow copy of the bag.
func (p Params) Clone() Params {
	if p == nil {
		return Params{}
	}
	out := make(Params, len(p))
	copy(out, p)
	return out
}
