package dag

import (
	"context"
	"fmt"
	"slices"

	"github.com/specialistvlad/amalgamate/internal/ctxlog"
)

// Locator finds the file that provides a header key.
type Locator interface {
	Locate(key string) (path string, ok bool)
	Roots() []string
}

// Loader reads and parses the file at path for the header key.
type Loader interface {
	Load(key, path string) (body string, deps []string, err error)
}

// Builder populates a Graph by resolving headers and everything they
// include.
type Builder struct {
	graph   *Graph
	locator Locator
	loader  Loader
}

// NewBuilder returns a Builder that adds records to g.
func NewBuilder(g *Graph, locator Locator, loader Loader) *Builder {
	return &Builder{graph: g, locator: locator, loader: loader}
}

type pending struct {
	key    string
	parent string
	depth  int
}

// Resolve registers key and, depth first in include order, every header it
// transitively includes. Headers already in the graph are skipped. parent
// names the file that included key and only appears in errors.
func (b *Builder) Resolve(ctx context.Context, key, parent string) error {
	logger := ctxlog.FromContext(ctx)

	stack := []pending{{key: key, parent: parent, depth: 1}}
	for len(stack) > 0 {
		next := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if b.graph.Has(next.key) {
			continue
		}

		path, ok := b.locator.Locate(next.key)
		if !ok {
			return &NotFoundError{Header: next.key, Parent: next.parent, Roots: b.locator.Roots()}
		}
		logger.Debug("Parsing header.", "header", next.key, "path", path, "depth", next.depth)

		body, deps, err := b.loader.Load(next.key, path)
		if err != nil {
			return fmt.Errorf("failed to parse header %q: %w", next.key, err)
		}
		if err := b.graph.Add(&Record{Key: next.key, Body: body, Deps: deps}); err != nil {
			return err
		}

		// Pushed in reverse so the first include is resolved first.
		for _, dep := range slices.Backward(deps) {
			if !b.graph.Has(dep) {
				stack = append(stack, pending{key: dep, parent: next.key, depth: next.depth + 1})
			}
		}
	}
	return nil
}
