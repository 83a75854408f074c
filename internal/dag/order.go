package dag

import (
	"context"
	"strings"

	"github.com/specialistvlad/amalgamate/internal/ctxlog"
)

// SortOptions configures the tie-breaks of Sort.
type SortOptions struct {
	// Core headers may include each other cyclically.
	Core Namespace
	// Leaves are pushed towards the end of the order.
	Leaves *LeafSet
	// Categories is an ordered list of key prefixes. Headers matching an
	// earlier prefix sort first; unmatched headers sort last.
	Categories []string
}

// Sort returns every header of g exactly once, dependencies before the
// headers that include them (core cycles aside), ordered by the tie-breaks
// in opts.
func Sort(ctx context.Context, g *Graph, opts SortOptions) ([]string, error) {
	seq, err := postOrder(g, opts.Core)
	if err != nil {
		return nil, err
	}

	o := orderer{graph: g, opts: opts}
	o.refine(seq)

	logger := ctxlog.FromContext(ctx)
	for i, key := range seq {
		logger.Debug("Sorted order.", "position", i, "header", key)
	}
	return seq, nil
}

type frame struct {
	key  string
	next int
}

// postOrder walks g depth first from every record in discovery order and
// returns headers in the order their walk finished.
func postOrder(g *Graph, core Namespace) ([]string, error) {
	seq := make([]string, 0, g.Len())
	done := make(map[string]bool, g.Len())
	onStack := make(map[string]bool)

	for _, root := range g.order {
		if done[root] {
			continue
		}

		stack := []frame{{key: root}}
		onStack[root] = true
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			rec := g.records[top.key]

			if top.next < len(rec.Deps) {
				child := rec.Deps[top.next]
				top.next++

				if onStack[child] {
					if core.Contains(child) || core.Contains(top.key) {
						continue
					}
					return nil, &CycleError{Header: child, Stack: append(stackKeys(stack), child)}
				}
				if done[child] {
					continue
				}
				if !g.Has(child) {
					return nil, &NotFoundError{Header: child, Parent: top.key}
				}
				onStack[child] = true
				stack = append(stack, frame{key: child})
				continue
			}

			done[top.key] = true
			delete(onStack, top.key)
			seq = append(seq, top.key)
			stack = stack[:len(stack)-1]
		}
	}
	return seq, nil
}

func stackKeys(stack []frame) []string {
	keys := make([]string, len(stack))
	for i, f := range stack {
		keys[i] = f.key
	}
	return keys
}

type orderer struct {
	graph *Graph
	opts  SortOptions
}

// refine is an insertion sort that only swaps neighbours, so a header never
// passes one it directly depends on.
func (o *orderer) refine(seq []string) {
	for i := 1; i < len(seq); i++ {
		for j := i - 1; j >= 0; j-- {
			if !o.before(seq[j+1], seq[j]) {
				break
			}
			seq[j], seq[j+1] = seq[j+1], seq[j]
		}
	}
}

// before reports whether header h should be emitted ahead of other.
func (o *orderer) before(h, other string) bool {
	if o.graph.DependsOn(h, other) {
		return false
	}

	hLeaf, otherLeaf := o.opts.Leaves.Contains(h), o.opts.Leaves.Contains(other)
	if hLeaf != otherLeaf {
		return otherLeaf
	}

	if hc, oc := o.category(h), o.category(other); hc != oc {
		return hc < oc
	}
	return h < other
}

func (o *orderer) category(key string) int {
	for i, prefix := range o.opts.Categories {
		if strings.HasPrefix(key, prefix) {
			return i
		}
	}
	return len(o.opts.Categories)
}
