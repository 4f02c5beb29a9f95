// Package transform walks the nested parse table, applies the style
// guide's rule phases in their fixed order and reconstructs source text
// from the result.
package transform

import (
	"github.com/Polkas/styler/internal/parsetable"
	"github.com/Polkas/styler/internal/style"
)

// Apply runs the guide over the nested table. Line-break, space and
// token phases visit parents before children; indention visits children
// first so inner widths are settled when outer alignment is decided.
func Apply(t *parsetable.Table, g *style.Guide) {
	t.Rows = visitPre(t.Rows, g, true)
	t.Rows = visitPost(t.Rows, g)
}

func visitPre(rows []*parsetable.Row, g *style.Guide, root bool) []*parsetable.Row {
	parsetable.InitWhitespace(rows, root)
	for _, rule := range g.Initialize {
		rows = rule.Fn(rows)
	}
	for _, rule := range g.LineBreak {
		rows = rule.Fn(rows)
	}
	for _, rule := range g.Space {
		rows = rule.Fn(rows)
	}
	for _, rule := range g.Token {
		rows = rule.Fn(rows)
	}
	for _, r := range rows {
		if !r.Terminal && len(r.Child) > 0 {
			r.Child = visitPre(r.Child, g, false)
		}
	}
	return rows
}

func visitPost(rows []*parsetable.Row, g *style.Guide) []*parsetable.Row {
	for _, r := range rows {
		if !r.Terminal && len(r.Child) > 0 {
			r.Child = visitPost(r.Child, g)
		}
	}
	for _, rule := range g.Indention {
		rows = rule.Fn(rows)
	}
	return rows
}
