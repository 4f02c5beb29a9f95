package style

import (
	"strings"

	"github.com/Polkas/styler/internal/parsetable"
)

// forceAssignmentOp rewrites = assignment to <-. Argument and formal
// defaults (EQ_SUB, EQ_FORMALS) keep their spelling.
func forceAssignmentOp() Rule {
	return Rule{Name: "force_assignment_op", Fn: func(rows []*parsetable.Row) []*parsetable.Row {
		for _, r := range rows {
			if r.Terminal && r.Kind == parsetable.EqAssign && !r.StylerIgnore {
				r.Kind = parsetable.LeftAssign
				r.Text = "<-"
			}
		}
		return rows
	}}
}

// fixQuotes rewrites single-quoted strings to double-quoted ones when
// the body contains no double quote
func fixQuotes() Rule {
	return Rule{Name: "fix_quotes", Fn: func(rows []*parsetable.Row) []*parsetable.Row {
		for _, r := range rows {
			if !r.Terminal || r.Kind != parsetable.StrConst || r.StylerIgnore {
				continue
			}
			t := r.Text
			if len(t) < 2 || t[0] != '\'' || t[len(t)-1] != '\'' {
				continue
			}
			body := t[1 : len(t)-1]
			if strings.Contains(body, `"`) {
				continue
			}
			r.Text = `"` + body + `"`
		}
		return rows
	}}
}
