package transform

import (
	"strings"

	"github.com/Polkas/styler/internal/parsetable"
	"github.com/Polkas/styler/internal/style"
)

// propagate pushes each nest's whitespace and indention context down to
// its terminals: the first child inherits the breaks before the nest,
// the last child the spaces after it, and every child the accumulated
// indent. Values add up, so deeper nests keep their own contributions.
func propagate(rows []*parsetable.Row) {
	for _, r := range rows {
		if r.Terminal || len(r.Child) == 0 {
			continue
		}
		first := r.Child[0]
		first.LagNewlines += r.LagNewlines
		first.LagSpaces += r.LagSpaces
		last := r.Child[len(r.Child)-1]
		last.Spaces += r.Spaces
		for _, c := range r.Child {
			c.Indent += r.Indent
			if c.IndentRefID == c.ID && r.IndentRefID != r.ID {
				c.IndentRefID = r.IndentRefID
			}
		}
		propagate(r.Child)
	}
}

// CollectTerminals flattens the nested rows into the terminal sequence
// in output order
func CollectTerminals(rows []*parsetable.Row) []*parsetable.Row {
	var out []*parsetable.Row
	var walk func(rs []*parsetable.Row)
	walk = func(rs []*parsetable.Row) {
		for _, r := range rs {
			if r.Terminal || len(r.Child) == 0 {
				out = append(out, r)
			} else {
				walk(r.Child)
			}
		}
	}
	walk(rows)
	return out
}

// reconcile derives the trailing attributes from the following token's
// leading ones just before emission, so lag and lead agree. Restored
// ignore-region tokens keep their own leading whitespace.
func reconcile(terms []*parsetable.Row) {
	for i := 0; i < len(terms)-1; i++ {
		cur, next := terms[i], terms[i+1]
		cur.Newlines = next.LagNewlines
		if next.LagNewlines == 0 && !next.StylerIgnore {
			next.LagSpaces = cur.Spaces
		}
	}
}

// Serialize emits text from the fully transformed nested table
func Serialize(t *parsetable.Table, g *style.Guide) string {
	return SerializeWithSnapshot(t, g, nil)
}

// SerializeWithSnapshot emits text and splices the original state of
// ignore spans back over the styled one first
func SerializeWithSnapshot(t *parsetable.Table, g *style.Guide, snap Snapshot) string {
	propagate(t.Rows)
	terms := CollectTerminals(t.Rows)
	if snap != nil {
		RestoreIgnored(terms, snap)
	}
	return Emit(terms, g)
}

// Emit renders a terminal sequence. Between successive terminals it
// writes the reconciled line breaks, then indentation when a break was
// emitted, otherwise the reconciled spaces.
func Emit(terms []*parsetable.Row, g *style.Guide) string {
	if len(terms) == 0 {
		return ""
	}
	reconcile(terms)

	var b strings.Builder
	cols := make(map[int]int, len(terms))
	col := 0 // 0-based column where the next character lands

	writeText := func(r *parsetable.Row) {
		cols[r.ID] = col + 1
		if idx := strings.LastIndexByte(r.Text, '\n'); idx >= 0 {
			col = len([]rune(r.Text[idx+1:]))
		} else {
			col += len([]rune(r.Text))
		}
		b.WriteString(r.Text)
	}
	writeSpaces := func(n int) {
		if n < 0 {
			n = 0
		}
		b.WriteString(strings.Repeat(" ", n))
		col += n
	}

	first := terms[0]
	for k := 0; k < first.LagNewlines; k++ {
		b.WriteByte('\n')
	}
	writeSpaces(indentFor(first, g, cols))
	writeText(first)

	for i := 1; i < len(terms); i++ {
		prev, cur := terms[i-1], terms[i]
		breaks := max(prev.Newlines, cur.LagNewlines)
		if breaks > 0 {
			for k := 0; k < breaks; k++ {
				b.WriteByte('\n')
			}
			col = 0
			writeSpaces(indentFor(cur, g, cols))
		} else {
			writeSpaces(max(prev.Spaces, cur.LagSpaces))
		}
		writeText(cur)
	}
	return b.String()
}

// indentFor resolves the indentation of a line-starting token. Ignored
// regions and raw indention reproduce the original column verbatim;
// base indention is left out of those, or restyling would shift the
// lines again on every pass. Aligned tokens follow their indention
// reference's emitted column; everything else uses the accumulated
// indent plus the base indention.
func indentFor(r *parsetable.Row, g *style.Guide, cols map[int]int) int {
	if r.StylerIgnore {
		return r.LagSpaces
	}
	if g.UseRawIndention {
		return r.Col1 - 1
	}
	if r.IndentRefID != r.ID {
		if c, ok := cols[r.IndentRefID]; ok {
			return c
		}
	}
	return g.BaseIndention + r.Indent
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
