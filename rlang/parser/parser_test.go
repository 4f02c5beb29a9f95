package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Polkas/styler/internal/parsetable"
	"github.com/Polkas/styler/serrors"
)

func parse(t *testing.T, src string) *parsetable.Table {
	t.Helper()
	table, err := New("test.R").Parse(src)
	require.NoError(t, err)
	return table
}

func rowsOfKind(tbl *parsetable.Table, kind string) []*parsetable.Row {
	var out []*parsetable.Row
	for _, r := range tbl.Rows {
		if r.Kind == kind {
			out = append(out, r)
		}
	}
	return out
}

func topLevel(tbl *parsetable.Table) []*parsetable.Row {
	var out []*parsetable.Row
	for _, r := range tbl.Rows {
		if r.Parent == 0 && !r.Terminal {
			out = append(out, r)
		}
	}
	sortRows(out)
	return out
}

func TestParseCallShape(t *testing.T) {
	tbl := parse(t, "f(x = 1)")

	top := topLevel(tbl)
	require.Len(t, top, 1)
	call := top[0]
	assert.Equal(t, "f(x = 1)", call.Text)

	var kids []*parsetable.Row
	for _, r := range tbl.Rows {
		if r.Parent == call.ID {
			kids = append(kids, r)
		}
	}
	sortRows(kids)
	require.Len(t, kids, 6)
	assert.Equal(t, parsetable.Expr, kids[0].Kind)
	assert.Equal(t, "'('", kids[1].Kind)
	assert.Equal(t, parsetable.SymbolSub, kids[2].Kind)
	assert.Equal(t, parsetable.EqSub, kids[3].Kind)
	assert.Equal(t, parsetable.Expr, kids[4].Kind)
	assert.Equal(t, "')'", kids[5].Kind)

	// The callee symbol is re-kinded inside its wrapper.
	var callee *parsetable.Row
	for _, r := range tbl.Rows {
		if r.Parent == kids[0].ID {
			callee = r
		}
	}
	require.NotNil(t, callee)
	assert.Equal(t, parsetable.SymbolFnCall, callee.Kind)
}

func TestParseEqAssignKind(t *testing.T) {
	tbl := parse(t, "a = 1")
	require.Len(t, rowsOfKind(tbl, "equal_assign"), 1)
	require.Len(t, rowsOfKind(tbl, parsetable.EqAssign), 1)
}

func TestParseParentIDsLargerThanChildren(t *testing.T) {
	tbl := parse(t, "a <- f(1 + 2)")
	byID := tbl.ByID()
	for _, r := range tbl.Rows {
		if r.Parent > 0 {
			parent, ok := byID[r.Parent]
			require.True(t, ok)
			assert.Greater(t, parent.ID, r.ID)
			assert.False(t, parent.Terminal)
		}
	}
}

func TestParseNewlineTerminatesExpressions(t *testing.T) {
	// At top level a fresh-line operand starts a new expression...
	tbl := parse(t, "a\n(b)")
	assert.Len(t, topLevel(tbl), 2)

	// ...while inside parentheses the expression continues.
	tbl = parse(t, "f(a\n+ b)")
	assert.Len(t, topLevel(tbl), 1)
}

func TestParseTrailingOperatorContinues(t *testing.T) {
	tbl := parse(t, "a +\nb")
	assert.Len(t, topLevel(tbl), 1)
}

func TestParseSemicolonRows(t *testing.T) {
	tbl := parse(t, "a; b")
	semis := rowsOfKind(tbl, "';'")
	require.Len(t, semis, 1)
	assert.Equal(t, 0, semis[0].Parent)
	assert.True(t, semis[0].Terminal)
	assert.Len(t, topLevel(tbl), 2)
}

func TestParseCommentInsideExpression(t *testing.T) {
	tbl := parse(t, "f(\n  1 # inner\n)")
	comments := rowsOfKind(tbl, parsetable.Comment)
	require.Len(t, comments, 1)

	top := topLevel(tbl)
	require.Len(t, top, 1)
	assert.Equal(t, top[0].ID, comments[0].Parent)
}

func TestParseTopLevelCommentAttachesForward(t *testing.T) {
	tbl := parse(t, "# about x\nx <- 1")
	comments := rowsOfKind(tbl, parsetable.Comment)
	require.Len(t, comments, 1)

	top := topLevel(tbl)
	require.Len(t, top, 1)
	assert.Equal(t, -top[0].ID, comments[0].Parent)
}

func TestParseTrailingCommentParent(t *testing.T) {
	tbl := parse(t, "x <- 1\n# done")
	comments := rowsOfKind(tbl, parsetable.Comment)
	require.Len(t, comments, 1)
	assert.Equal(t, 0, comments[0].Parent)
}

func TestParseFunctionFormals(t *testing.T) {
	tbl := parse(t, "function(x, y = 2) x + y")
	assert.Len(t, rowsOfKind(tbl, parsetable.SymbolFormal), 2)
	assert.Len(t, rowsOfKind(tbl, parsetable.EqFormals), 1)
}

func TestParseControlFlow(t *testing.T) {
	tbl := parse(t, "if (x > 1) {\n  y\n} else {\n  z\n}\nfor (i in 1:3) print(i)\nwhile (TRUE) break")
	assert.Len(t, topLevel(tbl), 3)
	assert.Len(t, rowsOfKind(tbl, parsetable.Else), 1)
	assert.Len(t, rowsOfKind(tbl, parsetable.In), 1)
}

func TestParseErrorPosition(t *testing.T) {
	_, err := New("bad.R").Parse("f(")
	require.Error(t, err)
	assert.True(t, serrors.IsCode(err, serrors.CodeParse))
	assert.Contains(t, err.Error(), "bad.R")
}

func TestParseNonTerminalSpansAndText(t *testing.T) {
	tbl := parse(t, "g(\n  1,\n  2\n)")
	top := topLevel(tbl)
	require.Len(t, top, 1)
	assert.Equal(t, 1, top[0].Line1)
	assert.Equal(t, 4, top[0].Line2)
	assert.Equal(t, "g(\n  1,\n  2\n)", top[0].Text)
}
