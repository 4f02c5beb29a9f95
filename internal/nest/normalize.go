package nest

import "github.com/Polkas/styler/internal/parsetable"

// Operator kinds whose chains are flattened into a single nest, grouped
// into classes so that mixed chains of the same precedence flatten while
// a + b * c keeps its nesting.
var flattenClass = map[string]string{
	"'+'":                   "math-add",
	"'-'":                   "math-add",
	"'*'":                   "math-mult",
	"'/'":                   "math-mult",
	parsetable.SpecialPipe:  "pipe",
	parsetable.SpecialIn:    "pipe",
	parsetable.SpecialOther: "pipe",
	parsetable.Pipe:         "pipe",
}

// FlattenOperators rewrites nested binary operator chains like
// ((a + b) + c) into one nest holding the whole chain, so spacing and
// line-break rules see every operand and operator as siblings. Token
// order is unchanged.
func FlattenOperators(rows []*parsetable.Row) {
	for _, r := range rows {
		flattenRow(r)
	}
}

func flattenRow(row *parsetable.Row) {
	for _, c := range row.Child {
		flattenRow(c)
	}
	class := chainClass(row)
	if class == "" {
		return
	}
	for {
		n := len(row.Child)
		first, last := row.Child[0], row.Child[n-1]
		switch {
		case !first.Terminal && chainClass(first) == class:
			row.Child = append(append([]*parsetable.Row{}, first.Child...), row.Child[1:]...)
			reparent(first.Child, row.ID)
		case !last.Terminal && chainClass(last) == class:
			row.Child = append(row.Child[:n-1], last.Child...)
			reparent(last.Child, row.ID)
		default:
			return
		}
	}
}

// chainClass returns the flatten class of a binary-operator nest, or ""
func chainClass(row *parsetable.Row) string {
	if row.Terminal || len(row.Child) < 3 {
		return ""
	}
	op := row.Child[1]
	if !op.Terminal {
		return ""
	}
	return flattenClass[op.Kind]
}

func reparent(rows []*parsetable.Row, parent int) {
	for _, r := range rows {
		r.Parent = parent
	}
}

// RelocateEqAssign rewrites = assignment nests so their layout matches
// the <- shape: lhs, operator and rhs as peers under a plain expression
// nest. The spacing rules then cover both spellings with one code path.
func RelocateEqAssign(rows []*parsetable.Row) {
	for _, r := range rows {
		if !r.Terminal && r.Kind == "equal_assign" {
			r.Kind = parsetable.Expr
		}
		RelocateEqAssign(r.Child)
	}
}

// AssignBlocks gives every top-level row a block id; two rows share a
// block iff they touch the same source line. With caching disabled every
// row lands in block 1, matching the single-pass styling path.
func AssignBlocks(rows []*parsetable.Row, cacheActive bool) {
	if !cacheActive {
		for _, r := range rows {
			r.Block = 1
		}
		return
	}
	block := 0
	lastLine := -1
	for _, r := range rows {
		if r.Line1 > lastLine {
			block++
		}
		r.Block = block
		if r.Line2 > lastLine {
			lastLine = r.Line2
		}
	}
}
