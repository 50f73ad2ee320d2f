package filter

// Record is a decoded JSON object such as an owner or a blog topic.
type Record = map[string]any

// Matcher reports whether a record passes a filter.
type Matcher interface {
	Match(record Record) bool
}
