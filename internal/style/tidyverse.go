package style

import "github.com/Polkas/styler/internal/parsetable"

// TidyverseOptions parameterize the stock guide
type TidyverseOptions struct {
	Scope           Scope
	Strict          bool
	IndentBy        int
	BaseIndention   int
	IncludeRoxygen  bool
	UseRawIndention bool
	ZeroSpaceOps    map[string]bool
}

// Tidyverse builds the stock style guide. Rule lists are assembled per
// phase and then cut down to the requested scope; ordering within a
// phase is part of the guide's contract, later rules win ties.
func Tidyverse(opts TidyverseOptions) *Guide {
	if opts.IndentBy == 0 {
		opts.IndentBy = 2
	}
	if opts.Scope == 0 {
		opts.Scope = ScopeTokens
	}
	if opts.ZeroSpaceOps == nil {
		opts.ZeroSpaceOps = DefaultZeroSpaceOps()
	}
	// A scope below indention must not touch line starts at all, so the
	// serializer falls back to the verbatim original columns.
	if opts.Scope < ScopeIndention {
		opts.UseRawIndention = true
	}

	g := &Guide{
		Name:            "tidyverse",
		Version:         "1.0.0",
		Scope:           opts.Scope,
		Strict:          opts.Strict,
		IndentBy:        opts.IndentBy,
		BaseIndention:   opts.BaseIndention,
		UseRawIndention: opts.UseRawIndention,
		IncludeRoxygen:  opts.IncludeRoxygen,
		ZeroSpaceOps:    opts.ZeroSpaceOps,
	}

	g.Initialize = []Rule{initializeRule()}

	if opts.Scope >= ScopeLineBreaks {
		g.LineBreak = []Rule{
			lineBreakAroundBraces(),
			lineBreakAroundElse(),
			lineBreakAfterPipe(),
			resolveSemicolon(),
			capBlankLines(),
		}
	}

	if opts.Scope >= ScopeSpaces {
		g.Space = []Rule{
			spaceAroundOps(opts.Strict, opts.ZeroSpaceOps),
			spaceAroundComma(opts.Strict),
			spaceInsideParens(),
			spaceBeforeOpeningParen(),
			spaceBeforeBrace(),
			spaceBeforeComment(opts.Strict),
			spaceInComment(),
		}
	}

	if opts.Scope >= ScopeTokens {
		g.Token = []Rule{
			forceAssignmentOp(),
			fixQuotes(),
		}
	}

	if opts.Scope >= ScopeIndention && !opts.UseRawIndention {
		g.Indention = []Rule{
			indentBraces(opts.IndentBy),
			indentParens(opts.IndentBy),
			indentOp(opts.IndentBy),
			indentWithoutParen(opts.IndentBy),
			indentRefFunDec(),
		}
	}

	return g
}

// initializeRule resets the derived columns rules write
func initializeRule() Rule {
	return Rule{Name: "initialize", Fn: func(rows []*parsetable.Row) []*parsetable.Row {
		for _, r := range rows {
			r.Indent = 0
			r.Newlines = 0
			if r.IndentRefID == 0 {
				r.IndentRefID = r.ID
			}
		}
		return rows
	}}
}
