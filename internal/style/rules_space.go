package style

import "github.com/Polkas/styler/internal/parsetable"

// spaceAroundOps spaces binary operators with one space per side and
// keeps unary operators tight. Zero-space operators win over spacing.
func spaceAroundOps(strict bool, zeroOps map[string]bool) Rule {
	name := "add_space_around_op"
	if strict {
		name = "set_space_around_op"
	}
	return Rule{Name: name, Fn: func(rows []*parsetable.Row) []*parsetable.Row {
		if isUnaryNest(rows) {
			rows[0].Spaces = 0
			return rows
		}
		for i := 1; i < len(rows)-1; i++ {
			r := rows[i]
			if !r.Terminal {
				continue
			}
			switch {
			case zeroOps[r.Kind]:
				rows[i-1].Spaces = 0
				r.Spaces = 0
			case spacedOps[r.Kind]:
				if strict {
					rows[i-1].Spaces = 1
					r.Spaces = 1
				} else {
					rows[i-1].Spaces = atLeast(rows[i-1].Spaces, 1)
					r.Spaces = atLeast(r.Spaces, 1)
				}
			}
		}
		return rows
	}}
}

// spaceAroundComma drops the space before a comma and puts one after it
func spaceAroundComma(strict bool) Rule {
	return Rule{Name: "style_space_around_comma", Fn: func(rows []*parsetable.Row) []*parsetable.Row {
		for i, r := range rows {
			if r.Kind != "','" {
				continue
			}
			if i > 0 {
				rows[i-1].Spaces = 0
			}
			if strict {
				r.Spaces = 1
			} else {
				r.Spaces = atLeast(r.Spaces, 1)
			}
		}
		return rows
	}}
}

// spaceInsideParens removes padding just inside (), [] and [[]]
func spaceInsideParens() Rule {
	return Rule{Name: "remove_space_inside_parens", Fn: func(rows []*parsetable.Row) []*parsetable.Row {
		for i, r := range rows {
			if openerKinds[r.Kind] {
				r.Spaces = 0
			}
			if closerKinds[r.Kind] && i > 0 {
				rows[i-1].Spaces = 0
			}
		}
		return rows
	}}
}

// spaceBeforeOpeningParen removes the space between a callee and its
// argument list while keeping one after control-flow keywords
func spaceBeforeOpeningParen() Rule {
	return Rule{Name: "style_space_before_opening_paren", Fn: func(rows []*parsetable.Row) []*parsetable.Row {
		for i := 1; i < len(rows); i++ {
			if !openerKinds[rows[i].Kind] {
				continue
			}
			prev := rows[i-1]
			if prev.Terminal && spacedKeywords[prev.Kind] {
				prev.Spaces = 1
			} else if prev.Kind != "','" {
				prev.Spaces = 0
			}
		}
		return rows
	}}
}

// spaceBeforeBrace sets exactly one space before an opening brace, as in
// function(x) { and ) {
func spaceBeforeBrace() Rule {
	return Rule{Name: "set_space_before_brace", Fn: func(rows []*parsetable.Row) []*parsetable.Row {
		for i := 1; i < len(rows); i++ {
			r := rows[i]
			if r.LagNewlines > 0 {
				continue
			}
			if r.Kind == "'{'" || isBraceExpr(r) {
				if prev := rows[i-1]; prev.Kind != "'('" {
					prev.Spaces = 1
				}
			}
		}
		return rows
	}}
}

// spaceBeforeComment keeps end-of-line comments one space away from code
func spaceBeforeComment(strict bool) Rule {
	return Rule{Name: "set_space_before_comment", Fn: func(rows []*parsetable.Row) []*parsetable.Row {
		for i := 1; i < len(rows); i++ {
			r := rows[i]
			if r.Kind != parsetable.Comment || r.LagNewlines > 0 {
				continue
			}
			if strict {
				rows[i-1].Spaces = 1
			} else {
				rows[i-1].Spaces = atLeast(rows[i-1].Spaces, 1)
			}
		}
		return rows
	}}
}

// spaceInComment separates the comment prefix from its body. The rule
// rewrites comment text, which stays whitespace-only to the parser and
// is excluded from round-trip comparison.
func spaceInComment() Rule {
	return Rule{Name: "set_space_in_comment", Fn: func(rows []*parsetable.Row) []*parsetable.Row {
		for _, r := range rows {
			if r.Kind == parsetable.Comment && !r.StylerIgnore {
				r.Text = restyleComment(r.Text)
			}
		}
		return rows
	}}
}
