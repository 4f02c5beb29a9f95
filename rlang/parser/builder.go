package parser

import (
	"sort"
	"strings"

	"github.com/Polkas/styler/internal/parsetable"
	"github.com/Polkas/styler/rlang/lexer"
)

// builder flattens the parser's node tree into parse-table rows,
// assigning ids so that every expression's id is larger than its
// children's. Comment rows are attached last and get the highest ids.
type builder struct {
	lines  [][]rune
	rows   []*parsetable.Row
	nextID int
}

func newBuilder(text string) *builder {
	raw := strings.Split(text, "\n")
	lines := make([][]rune, len(raw))
	for i, l := range raw {
		lines[i] = []rune(l)
	}
	return &builder{lines: lines}
}

// emit creates rows for n and its descendants, children before parents
func (b *builder) emit(n *node) *parsetable.Row {
	if n.term {
		row := b.terminalRow(n)
		b.rows = append(b.rows, row)
		return row
	}

	kids := make([]*parsetable.Row, 0, len(n.kids))
	for _, k := range n.kids {
		kids = append(kids, b.emit(k))
	}

	b.nextID++
	row := &parsetable.Row{
		ID:    b.nextID,
		Kind:  n.kind,
		Line1: kids[0].Line1,
		Col1:  kids[0].Col1,
		Line2: kids[len(kids)-1].Line2,
		Col2:  kids[len(kids)-1].Col2,
	}
	row.Text = b.slice(row.Line1, row.Col1, row.Line2, row.Col2)
	for _, k := range kids {
		k.Parent = row.ID
	}
	b.rows = append(b.rows, row)
	return row
}

// terminalRow creates a row for a single token
func (b *builder) terminalRow(n *node) *parsetable.Row {
	b.nextID++
	kind := n.kind
	if kind == "" {
		kind = n.tok.Type.ParseKind()
	}
	return &parsetable.Row{
		ID:       b.nextID,
		Kind:     kind,
		Text:     n.tok.Lexeme,
		Terminal: true,
		Line1:    n.tok.Line,
		Col1:     n.tok.Column,
		Line2:    n.tok.EndLine,
		Col2:     n.tok.EndColumn,
	}
}

// attachComments inserts comment rows. A comment inside an expression
// becomes a child of the innermost enclosing expression; a top-level
// comment attaches to the following top-level expression with a negative
// parent, or to the root when no expression follows.
func (b *builder) attachComments(comments []lexer.Token) {
	for _, c := range comments {
		b.nextID++
		row := &parsetable.Row{
			ID:       b.nextID,
			Kind:     parsetable.Comment,
			Text:     c.Lexeme,
			Terminal: true,
			Line1:    c.Line,
			Col1:     c.Column,
			Line2:    c.EndLine,
			Col2:     c.EndColumn,
		}
		row.Parent = b.commentParent(row)
		b.rows = append(b.rows, row)
	}
}

// commentParent resolves the parent id for a comment row
func (b *builder) commentParent(c *parsetable.Row) int {
	var innermost *parsetable.Row
	for _, r := range b.rows {
		if r.Terminal || !contains(r, c) {
			continue
		}
		if innermost == nil || contains(innermost, r) {
			innermost = r
		}
	}
	if innermost != nil {
		return innermost.ID
	}

	// Top level: attach to the next top-level expression in source order.
	var next *parsetable.Row
	for _, r := range b.rows {
		if r.Terminal || r.Parent != 0 {
			continue
		}
		if after(r, c) && (next == nil || startsBefore(r, next)) {
			next = r
		}
	}
	if next != nil {
		return -next.ID
	}
	return 0
}

// contains reports whether outer's span strictly contains inner's
func contains(outer, inner *parsetable.Row) bool {
	startsBefore := outer.Line1 < inner.Line1 ||
		(outer.Line1 == inner.Line1 && outer.Col1 <= inner.Col1)
	endsAfter := outer.Line2 > inner.Line2 ||
		(outer.Line2 == inner.Line2 && outer.Col2 >= inner.Col2)
	same := outer.Line1 == inner.Line1 && outer.Col1 == inner.Col1 &&
		outer.Line2 == inner.Line2 && outer.Col2 == inner.Col2
	return startsBefore && endsAfter && !same
}

// after reports whether r starts after c ends
func after(r, c *parsetable.Row) bool {
	return r.Line1 > c.Line2 || (r.Line1 == c.Line2 && r.Col1 > c.Col2)
}

// startsBefore reports whether a starts before b in source order
func startsBefore(a, b *parsetable.Row) bool {
	return a.Line1 < b.Line1 || (a.Line1 == b.Line1 && a.Col1 < b.Col1)
}

// slice extracts the original source text for an inclusive span
func (b *builder) slice(line1, col1, line2, col2 int) string {
	if line1 < 1 || line1 > len(b.lines) || line2 > len(b.lines) {
		return ""
	}
	if line1 == line2 {
		return safeSlice(b.lines[line1-1], col1-1, col2)
	}
	parts := make([]string, 0, line2-line1+1)
	parts = append(parts, safeSlice(b.lines[line1-1], col1-1, len(b.lines[line1-1])))
	for l := line1 + 1; l < line2; l++ {
		parts = append(parts, string(b.lines[l-1]))
	}
	parts = append(parts, safeSlice(b.lines[line2-1], 0, col2))
	return strings.Join(parts, "\n")
}

func safeSlice(line []rune, from, to int) string {
	if from < 0 {
		from = 0
	}
	if to > len(line) {
		to = len(line)
	}
	if from >= to {
		return ""
	}
	return string(line[from:to])
}

// sortRows is used by tests to get rows in a stable source order
func sortRows(rows []*parsetable.Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Line1 != b.Line1 {
			return a.Line1 < b.Line1
		}
		return a.Col1 < b.Col1
	})
}
