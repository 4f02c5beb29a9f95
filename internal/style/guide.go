// Package style defines the style-guide model: ordered rule lists
// grouped by phase, plus the options that select and parameterize them.
// A style guide is data; the transformer applies it without knowing
// which guide it runs.
package style

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Polkas/styler/internal/parsetable"
	"github.com/Polkas/styler/serrors"
)

// Scope is the invasiveness level of styling. Each level includes the
// less invasive ones.
type Scope int

const (
	ScopeSpaces Scope = iota + 1
	ScopeIndention
	ScopeLineBreaks
	ScopeTokens
)

// ParseScope converts the option spelling to a Scope
func ParseScope(s string) (Scope, error) {
	switch s {
	case "", "tokens":
		return ScopeTokens, nil
	case "line_breaks":
		return ScopeLineBreaks, nil
	case "indention":
		return ScopeIndention, nil
	case "spaces":
		return ScopeSpaces, nil
	}
	return 0, serrors.NewInvalidOption(fmt.Sprintf("unknown scope %q", s))
}

// String returns the option spelling of the scope
func (s Scope) String() string {
	switch s {
	case ScopeSpaces:
		return "spaces"
	case ScopeIndention:
		return "indention"
	case ScopeLineBreaks:
		return "line_breaks"
	case ScopeTokens:
		return "tokens"
	}
	return "unknown"
}

// Rule is one named transformation applied at every nest. It receives
// the nest's rows and returns them, possibly shrunk.
type Rule struct {
	Name string
	Fn   func(rows []*parsetable.Row) []*parsetable.Row
}

// Guide is an ordered collection of rules grouped by phase plus the
// options that parameterize them.
type Guide struct {
	Name    string
	Version string

	Initialize []Rule
	LineBreak  []Rule
	Space      []Rule
	Token      []Rule
	Indention  []Rule

	Scope           Scope
	Strict          bool
	IndentBy        int
	BaseIndention   int
	UseRawIndention bool
	IncludeRoxygen  bool

	// Operators that get zero surrounding spaces.
	ZeroSpaceOps map[string]bool
}

// CacheKey identifies the guide and every output-relevant option for
// cache hashing. Options that cannot change the output, like dry mode,
// stay out.
func (g *Guide) CacheKey() string {
	zero := make([]string, 0, len(g.ZeroSpaceOps))
	for op := range g.ZeroSpaceOps {
		zero = append(zero, op)
	}
	sort.Strings(zero)
	return strings.Join([]string{
		g.Name,
		g.Version,
		g.Scope.String(),
		fmt.Sprintf("strict=%t", g.Strict),
		fmt.Sprintf("indent_by=%d", g.IndentBy),
		fmt.Sprintf("base_indention=%d", g.BaseIndention),
		fmt.Sprintf("raw_indention=%t", g.UseRawIndention),
		fmt.Sprintf("roxygen=%t", g.IncludeRoxygen),
		"zero=" + strings.Join(zero, ","),
	}, "|")
}

// Validate checks the guide is usable
func (g *Guide) Validate() error {
	if g.Name == "" || g.Version == "" {
		return serrors.NewInvalidOption("style guide needs a name and a version")
	}
	if g.IndentBy < 0 || g.BaseIndention < 0 {
		return serrors.NewInvalidOption("indention values must be non-negative")
	}
	return nil
}
