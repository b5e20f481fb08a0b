package crawl

// Queue keeps discovered sources in discovery order, each once.
type Queue struct {
	items []string
	seen  map[string]bool
	key   func(string) string
}

// NewQueue creates an empty Queue. Sources are compared by key(source);
// a nil key compares them verbatim.
func NewQueue(key func(string) string) *Queue {
	if key == nil {
		key = func(s string) string { return s }
	}
	return &Queue{
		seen: make(map[string]bool),
		key:  key,
	}
}

// Add appends source unless an equivalent one was added before.
// It reports whether the source was new.
func (q *Queue) Add(source string) bool {
	k := q.key(source)
	if q.seen[k] {
		return false
	}
	q.seen[k] = true
	q.items = append(q.items, source)
	return true
}

// Len returns the number of unique sources.
func (q *Queue) Len() int {
	return len(q.items)
}

// All returns the sources in discovery order.
func (q *Queue) All() []string {
	out := make([]string, len(q.items))
	copy(out, q.items)
	return out
}
