package style

import "github.com/Polkas/styler/internal/parsetable"

// lineBreakAroundBraces puts the body of a { } block on its own lines:
// a line break after the opening brace (end-of-line comments may stay)
// and one before the closing brace, with blank-line padding dropped.
func lineBreakAroundBraces() Rule {
	return Rule{Name: "set_line_break_around_braces", Fn: func(rows []*parsetable.Row) []*parsetable.Row {
		n := len(rows)
		if n < 2 || rows[0].Kind != "'{'" || rows[n-1].Kind != "'}'" {
			return rows
		}
		// first row after the brace, skipping a trailing same-line comment
		i := 1
		if rows[1].Kind == parsetable.Comment && rows[1].LagNewlines == 0 && n > 2 {
			i = 2
		}
		if i < n {
			rows[i].LagNewlines = atMost(atLeast(rows[i].LagNewlines, 1), 1)
		}
		if n > 1 {
			rows[n-1].LagNewlines = atMost(atLeast(rows[n-1].LagNewlines, 1), 1)
		}
		return rows
	}}
}

// lineBreakAroundElse glues else to the closing brace of the branch
// before it: } else on one line
func lineBreakAroundElse() Rule {
	return Rule{Name: "set_line_break_around_else", Fn: func(rows []*parsetable.Row) []*parsetable.Row {
		for i := 1; i < len(rows); i++ {
			r := rows[i]
			if r.Kind != parsetable.Else {
				continue
			}
			if isBraceExpr(rows[i-1]) {
				r.LagNewlines = 0
			}
		}
		return rows
	}}
}

// lineBreakAfterPipe moves a line break that precedes a pipe operator in
// a multi-line chain to after it. Pipes with no break before them are
// left as they are, and a pipe is never pulled up across an end-of-line
// comment.
func lineBreakAfterPipe() Rule {
	return Rule{Name: "set_line_break_after_pipe", Fn: func(rows []*parsetable.Row) []*parsetable.Row {
		if !anyMultiline(rows) {
			return rows
		}
		for i := 1; i < len(rows)-1; i++ {
			r := rows[i]
			if !r.Terminal || !pipeKinds[r.Kind] {
				continue
			}
			if r.LagNewlines > 0 && rows[i-1].Kind != parsetable.Comment {
				r.LagNewlines = 0
				rows[i+1].LagNewlines = atLeast(rows[i+1].LagNewlines, 1)
			}
		}
		return rows
	}}
}

// resolveSemicolon turns expression separators into line breaks and
// drops the semicolon token. Ignored regions keep theirs.
func resolveSemicolon() Rule {
	return Rule{Name: "resolve_semicolon", Fn: func(rows []*parsetable.Row) []*parsetable.Row {
		out := rows[:0]
		for i, r := range rows {
			if r.Kind == "';'" && !r.StylerIgnore {
				if i+1 < len(rows) {
					rows[i+1].LagNewlines = atLeast(rows[i+1].LagNewlines, 1)
				}
				continue
			}
			out = append(out, r)
		}
		return out
	}}
}

// capBlankLines limits runs of blank lines to two
func capBlankLines() Rule {
	return Rule{Name: "cap_blank_lines", Fn: func(rows []*parsetable.Row) []*parsetable.Row {
		for _, r := range rows {
			if !r.StylerIgnore {
				r.LagNewlines = atMost(r.LagNewlines, 3)
			}
		}
		return rows
	}}
}
