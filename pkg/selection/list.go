// Package selection provides an ordered list with an optional cursor.
package selection

// Policy decides what happens when the cursor moves past either end.
type Policy int

const (
	// Wrap moves from the last item to the first and vice versa.
	Wrap Policy = iota
	// Clamp keeps the cursor on the first or last item.
	Clamp
)

// String returns the configuration name of the policy.
func (p Policy) String() string {
	switch p {
	case Clamp:
		return "clamp"
	default:
		return "wrap"
	}
}

// ParsePolicy maps "wrap" and "clamp" to a Policy.
func ParsePolicy(s string) (Policy, bool) {
	switch s {
	case "wrap", "":
		return Wrap, true
	case "clamp":
		return Clamp, true
	}
	return Wrap, false
}

const noSelection = -1

// List holds items and a cursor that is either unset or a valid index.
// Use New to construct one.
type List[T any] struct {
	items  []T
	cursor int // noSelection or an index into items
	policy Policy
}

// Option configures a List.
type Option func(*listOptions)

type listOptions struct {
	policy Policy
}

// WithPolicy sets the end-of-list policy. The default is Wrap.
func WithPolicy(p Policy) Option {
	return func(o *listOptions) {
		o.policy = p
	}
}

// New creates a list over items with no selection.
func New[T any](items []T, opts ...Option) *List[T] {
	var o listOptions
	for _, opt := range opts {
		opt(&o)
	}
	return &List[T]{
		items:  items,
		cursor: noSelection,
		policy: o.policy,
	}
}

// Len returns the number of items.
func (l *List[T]) Len() int {
	return len(l.items)
}

// Policy returns the end-of-list policy.
func (l *List[T]) Policy() Policy {
	return l.policy
}

// Items returns the backing slice. Callers must not append to it.
func (l *List[T]) Items() []T {
	return l.items
}

// At returns a pointer to the item at i, or nil when out of range.
func (l *List[T]) At(i int) *T {
	if i < 0 || i >= len(l.items) {
		return nil
	}
	return &l.items[i]
}

// Index returns the cursor position.
func (l *List[T]) Index() (int, bool) {
	if l.cursor < 0 || l.cursor >= len(l.items) {
		return noSelection, false
	}
	return l.cursor, true
}

// Selected returns the item under the cursor.
func (l *List[T]) Selected() (T, bool) {
	var zero T
	i, ok := l.Index()
	if !ok {
		return zero, false
	}
	return l.items[i], true
}

// Select moves the cursor to i. Out-of-range indexes are rejected.
func (l *List[T]) Select(i int) bool {
	if i < 0 || i >= len(l.items) {
		return false
	}
	l.cursor = i
	return true
}

// Unselect clears the cursor. Items are left untouched.
func (l *List[T]) Unselect() {
	l.cursor = noSelection
}

// Next moves the cursor down one item. With no selection it selects the
// first item.
func (l *List[T]) Next() {
	n := len(l.items)
	if n == 0 {
		return
	}
	switch {
	case l.cursor < 0:
		l.Select(0)
	case l.cursor >= n-1:
		if l.policy == Wrap {
			l.Select(0)
		} else {
			l.Select(n - 1)
		}
	default:
		l.Select(l.cursor + 1)
	}
}

// Previous moves the cursor up one item. With no selection it selects
// the first item.
func (l *List[T]) Previous() {
	n := len(l.items)
	if n == 0 {
		return
	}
	switch {
	case l.cursor < 0:
		l.Select(0)
	case l.cursor == 0:
		if l.policy == Wrap {
			l.Select(n - 1)
		} else {
			l.Select(0)
		}
	default:
		l.Select(l.cursor - 1)
	}
}
