// Package session holds the state of one amalgamation run: the header
// graph, the leaf headers named by the root file and the merged copyright
// lines. A Session is used for exactly one run and is not safe for
// concurrent use.
package session

import (
	"context"
	"fmt"
	"os"

	"github.com/specialistvlad/amalgamate/internal/ctxlog"
	"github.com/specialistvlad/amalgamate/internal/dag"
	"github.com/specialistvlad/amalgamate/internal/header"
	"github.com/specialistvlad/amalgamate/internal/license"
	"github.com/specialistvlad/amalgamate/internal/rewrite"
)

// Options are the per-run settings a Session needs.
type Options struct {
	Library      string
	Prefix       string
	WordBoundary bool
	Core         dag.Namespace
	Categories   []string
}

// Section is one header of the amalgamation in output order.
type Section struct {
	Key  string
	Body string
}

// Result is everything the composer needs to write the amalgamation.
type Result struct {
	Copyrights []string
	Leaves     []string
	Sections   []Section
}

// Session owns the state of one run.
type Session struct {
	opts       Options
	graph      *dag.Graph
	leaves     dag.LeafSet
	copyrights license.Set
	parser     *header.Parser
	builder    *dag.Builder
}

// New returns a Session that finds headers through locator.
func New(locator dag.Locator, opts Options) *Session {
	s := &Session{
		opts:  opts,
		graph: dag.New(),
	}
	s.parser = header.NewParser(opts.Library, &s.copyrights, rewrite.New(opts.Library, opts.Prefix, opts.WordBoundary))
	s.builder = dag.NewBuilder(s.graph, locator, s)
	return s
}

// Load reads and parses one library header. It implements dag.Loader.
func (s *Session) Load(key, path string) (string, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}
	parsed, err := s.parser.Parse(string(data), path, true)
	if err != nil {
		return "", nil, err
	}
	return parsed.Body, parsed.Includes, nil
}

// Amalgamate resolves every header rootText includes, transitively, and
// returns them in output order. Only the includes of the root file are
// used; its own body is discarded.
func (s *Session) Amalgamate(ctx context.Context, rootName, rootText string) (*Result, error) {
	logger := ctxlog.FromContext(ctx)

	root, err := s.parser.Parse(rootText, rootName, false)
	if err != nil {
		return nil, fmt.Errorf("failed to parse input %q: %w", rootName, err)
	}

	for _, key := range root.Includes {
		s.leaves.Add(key)
		if err := s.builder.Resolve(ctx, key, rootName); err != nil {
			return nil, err
		}
	}
	s.graph.Seal()
	logger.Debug("Resolved headers.", "headers", s.graph.Len(), "leaves", len(root.Includes), "copyrights", s.copyrights.Len())

	order, err := dag.Sort(ctx, s.graph, dag.SortOptions{
		Core:       s.opts.Core,
		Leaves:     &s.leaves,
		Categories: s.opts.Categories,
	})
	if err != nil {
		return nil, err
	}

	sections := make([]Section, 0, len(order))
	for _, key := range order {
		rec, _ := s.graph.Record(key)
		sections = append(sections, Section{Key: key, Body: rec.Body})
	}
	return &Result{
		Copyrights: s.copyrights.Sorted(),
		Leaves:     s.leaves.Sorted(),
		Sections:   sections,
	}, nil
}
