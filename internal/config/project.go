package config

import (
	"context"
	"fmt"
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/amalgamate/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// DefaultLibrary is the reserved name of the amalgamated library.
const DefaultLibrary = "ghost"

// DefaultSearchRoots are searched in order for every header key.
var DefaultSearchRoots = []string{"include", "experimental"}

// DefaultCoreNamespace lists the headers allowed to include each other.
var DefaultCoreNamespace = []string{"ghost/ghost_core.h", "ghost/core/"}

// DefaultCategoryOrder groups headers roughly by closeness to the compiler
// and platform. Headers matching no entry sort after all of them.
var DefaultCategoryOrder = []string{
	"ghost/core/ghost_version.h",
	"ghost/core/ghost_config.h",
	"ghost/core/ghost_has.h",
	"ghost/preprocessor/",
	"ghost/header/",
	"ghost/language/",
	"ghost/type/",
	"ghost/debug/",
	"ghost/string/",
	"ghost/math/",
	"ghost/serialization/",
	"ghost/malloc/",
	"ghost/thread/",
}

// Project holds the settings of one library.
type Project struct {
	Library       string
	SearchRoots   []string
	CoreNamespace []string
	CategoryOrder []string
	SourceURL     string
	// Output is used when no output file is given on the command line.
	Output       string
	WordBoundary bool
}

// Default returns the settings used when no project file is given.
func Default() *Project {
	return &Project{
		Library:       DefaultLibrary,
		SearchRoots:   slices.Clone(DefaultSearchRoots),
		CoreNamespace: slices.Clone(DefaultCoreNamespace),
		CategoryOrder: slices.Clone(DefaultCategoryOrder),
	}
}

// projectFile mirrors the attributes of a project file. Pointers and nil
// slices mark attributes that were not set.
type projectFile struct {
	Library       *string  `hcl:"library,optional"`
	SearchRoots   []string `hcl:"search_roots,optional"`
	CoreNamespace []string `hcl:"core_namespace,optional"`
	CategoryOrder []string `hcl:"category_order,optional"`
	SourceURL     *string  `hcl:"source_url,optional"`
	Output        *string  `hcl:"output,optional"`
	WordBoundary  *bool    `hcl:"word_boundary,optional"`
}

// Load reads the project file at path on top of the defaults. prefix is
// visible to expressions in the file.
func Load(ctx context.Context, path, prefix string) (*Project, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading project file.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse project file %s: %w", path, diags)
	}

	var raw projectFile
	diags = gohcl.DecodeBody(file.Body, evalContext(prefix), &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode project file %s: %w", path, diags)
	}

	p := Default()
	p.merge(&raw)
	logger.Debug("Loaded project file.", "library", p.Library, "search_roots", p.SearchRoots)
	return p, nil
}

func evalContext(prefix string) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"prefix": cty.StringVal(prefix),
		},
		Functions: map[string]function.Function{
			"upper": stdlib.UpperFunc,
			"lower": stdlib.LowerFunc,
		},
	}
}

func (p *Project) merge(raw *projectFile) {
	if raw.Library != nil {
		p.Library = *raw.Library
	}
	if raw.SearchRoots != nil {
		p.SearchRoots = raw.SearchRoots
	}
	if raw.CoreNamespace != nil {
		p.CoreNamespace = raw.CoreNamespace
	}
	if raw.CategoryOrder != nil {
		p.CategoryOrder = raw.CategoryOrder
	}
	if raw.SourceURL != nil {
		p.SourceURL = *raw.SourceURL
	}
	if raw.Output != nil {
		p.Output = *raw.Output
	}
	if raw.WordBoundary != nil {
		p.WordBoundary = *raw.WordBoundary
	}
}
