package dag

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrHeaderNotFound is wrapped by *NotFoundError.
	ErrHeaderNotFound = errors.New("header not found")
	// ErrCircularDependency is wrapped by *CycleError.
	ErrCircularDependency = errors.New("circular dependency")
	// ErrDuplicateHeader is returned when a record is added twice.
	ErrDuplicateHeader = errors.New("header already registered")
	// ErrSealed is returned when a record is added after the build phase.
	ErrSealed = errors.New("graph is sealed")
)

// Record is one parsed header. It is never modified after it is added to a
// Graph.
type Record struct {
	Key  string
	Body string
	// Deps are the headers this one includes directly, in include order.
	Deps []string
}

// NotFoundError reports an include that no search root could satisfy.
type NotFoundError struct {
	Header string
	Parent string
	Roots  []string
}

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("%s: %q included by %q", ErrHeaderNotFound, e.Header, e.Parent)
	if len(e.Roots) > 0 {
		msg += fmt.Sprintf(" (searched %s)", strings.Join(e.Roots, ", "))
	}
	return msg
}

func (e *NotFoundError) Unwrap() error {
	return ErrHeaderNotFound
}

// CycleError reports a cycle outside the core namespace. Stack is the walk
// stack at the moment the cycle closed, ending with Header again.
type CycleError struct {
	Header string
	Stack  []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%s on %q: %s", ErrCircularDependency, e.Header, strings.Join(e.Stack, " -> "))
}

func (e *CycleError) Unwrap() error {
	return ErrCircularDependency
}

// Namespace is a set of header patterns. A pattern ending in "/" matches
// every key below that directory; any other pattern matches one key.
type Namespace []string

// Contains reports whether key matches any pattern.
func (n Namespace) Contains(key string) bool {
	for _, pattern := range n {
		if strings.HasSuffix(pattern, "/") {
			if strings.HasPrefix(key, pattern) {
				return true
			}
		} else if key == pattern {
			return true
		}
	}
	return false
}

// LeafSet holds the headers the root file includes directly.
type LeafSet struct {
	keys map[string]struct{}
}

// Add records key as a leaf.
func (l *LeafSet) Add(key string) {
	if l.keys == nil {
		l.keys = make(map[string]struct{})
	}
	l.keys[key] = struct{}{}
}

// Contains reports whether key is a leaf. It is safe on a nil *LeafSet.
func (l *LeafSet) Contains(key string) bool {
	if l == nil {
		return false
	}
	_, ok := l.keys[key]
	return ok
}

// Sorted returns the leaves in lexicographic order.
func (l *LeafSet) Sorted() []string {
	out := make([]string, 0, len(l.keys))
	for key := range l.keys {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}
