package style

import "github.com/Polkas/styler/internal/parsetable"

// hasNestBreak reports whether this nest itself breaks lines. Breaks
// inside child subtrees are the children's business; indenting a nest
// whose rows share one line would push the whole subtree sideways.
func hasNestBreak(rows []*parsetable.Row) bool {
	for i := 1; i < len(rows); i++ {
		if rows[i].LagNewlines > 0 {
			return true
		}
	}
	return false
}

// indentBraces indents everything between { and } by indentBy. The
// amounts accumulate down the tree when contexts unnest to terminals.
func indentBraces(indentBy int) Rule {
	return Rule{Name: "indent_braces", Fn: func(rows []*parsetable.Row) []*parsetable.Row {
		n := len(rows)
		if n < 3 || rows[0].Kind != "'{'" || rows[n-1].Kind != "'}'" || !hasNestBreak(rows) {
			return rows
		}
		for _, r := range rows[1 : n-1] {
			r.Indent += indentBy
		}
		return rows
	}}
}

// indentParens indents rows between an opening and a closing paren or
// bracket. The value only shows on rows that start a line.
func indentParens(indentBy int) Rule {
	return Rule{Name: "indent_parens", Fn: func(rows []*parsetable.Row) []*parsetable.Row {
		if !hasNestBreak(rows) {
			return rows
		}
		open := -1
		for i, r := range rows {
			if openerKinds[r.Kind] && open == -1 {
				open = i
			}
		}
		if open == -1 {
			return rows
		}
		close := -1
		for i := len(rows) - 1; i > open; i-- {
			if closerKinds[rows[i].Kind] {
				close = i
				break
			}
		}
		for i := open + 1; i < close; i++ {
			rows[i].Indent += indentBy
		}
		// A closing paren that starts its own line sits at the outer level,
		// which is what skipping it here encodes.
		return rows
	}}
}

// indentOp indents the continuation rows of a binary operator chain
func indentOp(indentBy int) Rule {
	return Rule{Name: "indent_op", Fn: func(rows []*parsetable.Row) []*parsetable.Row {
		if len(rows) < 3 || !rows[1].Terminal || !indentOpKinds[rows[1].Kind] || !hasNestBreak(rows) {
			return rows
		}
		for _, r := range rows[1:] {
			r.Indent += indentBy
		}
		return rows
	}}
}

// indentWithoutParen indents an unbraced body hanging under a control
// keyword or function head
func indentWithoutParen(indentBy int) Rule {
	return Rule{Name: "indent_without_paren", Fn: func(rows []*parsetable.Row) []*parsetable.Row {
		if len(rows) < 2 || !rows[0].Terminal || !hasNestBreak(rows) {
			return rows
		}
		indentBody := func(r *parsetable.Row) {
			if !isBraceExpr(r) {
				r.Indent += indentBy
			}
		}
		switch rows[0].Kind {
		case parsetable.Repeat:
			indentBody(rows[1])
		case parsetable.Function, "'\\\\'":
			indentBody(rows[len(rows)-1])
		case parsetable.If, parsetable.For, parsetable.While:
			for i := 1; i < len(rows); i++ {
				if rows[i].Kind == "')'" && i+1 < len(rows) {
					indentBody(rows[i+1])
				}
				if rows[i].Kind == parsetable.Else && i+1 < len(rows) {
					indentBody(rows[i+1])
				}
			}
		}
		return rows
	}}
}

// indentRefFunDec aligns the formals of a multi-line function
// declaration to its opening paren
func indentRefFunDec() Rule {
	return Rule{Name: "update_indention_ref_fun_dec", Fn: func(rows []*parsetable.Row) []*parsetable.Row {
		if len(rows) < 4 || !rows[0].Terminal ||
			(rows[0].Kind != parsetable.Function && rows[0].Kind != "'\\\\'") {
			return rows
		}
		if !anyMultiline(rows[:len(rows)-1]) {
			return rows
		}
		paren := rows[1]
		if paren.Kind != "'('" {
			return rows
		}
		for i := 2; i < len(rows)-1; i++ {
			if rows[i].Kind == "')'" {
				break
			}
			rows[i].IndentRefID = paren.ID
		}
		return rows
	}}
}
