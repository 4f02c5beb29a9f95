package nest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Polkas/styler/internal/parsetable"
	"github.com/Polkas/styler/rlang/parser"
)

func nested(t *testing.T, src string) *parsetable.Table {
	t.Helper()
	tbl, err := parser.New("").Parse(src)
	require.NoError(t, err)
	parsetable.Enhance(tbl)
	return Nest(tbl)
}

func kindsOf(rows []*parsetable.Row) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Kind)
	}
	return out
}

func TestNestBuildsTree(t *testing.T) {
	tbl := nested(t, "a <- f(1)")

	require.Len(t, tbl.Rows, 1)
	top := tbl.Rows[0]
	assert.Equal(t, []string{parsetable.Expr, parsetable.LeftAssign, parsetable.Expr},
		kindsOf(top.Child))

	call := top.Child[2]
	assert.Equal(t, []string{parsetable.Expr, "'('", parsetable.Expr, "')'"},
		kindsOf(call.Child))
}

func TestNestChildrenOrderedByPosition(t *testing.T) {
	tbl := nested(t, "f(x, 1)")
	call := tbl.Rows[0]
	prev := 0
	for _, c := range call.Child {
		assert.Greater(t, c.PosID, prev)
		prev = c.PosID
	}
}

func TestNestTerminatesWithTopLevelOnly(t *testing.T) {
	tbl := nested(t, "x\ny\n# done")
	for _, r := range tbl.Rows {
		assert.LessOrEqual(t, r.Parent, 0)
	}
	assert.Len(t, tbl.Rows, 3)
}

func TestFlattenOperatorChain(t *testing.T) {
	tbl := nested(t, "1 + 2 + 3")
	FlattenOperators(tbl.Rows)

	top := tbl.Rows[0]
	assert.Equal(t, []string{
		parsetable.Expr, "'+'", parsetable.Expr, "'+'", parsetable.Expr,
	}, kindsOf(top.Child))
	for _, c := range top.Child {
		assert.Equal(t, top.ID, c.Parent)
	}
}

func TestFlattenKeepsPrecedenceNesting(t *testing.T) {
	tbl := nested(t, "a + b * c")
	FlattenOperators(tbl.Rows)

	top := tbl.Rows[0]
	require.Len(t, top.Child, 3)
	mult := top.Child[2]
	assert.Equal(t, []string{parsetable.Expr, "'*'", parsetable.Expr}, kindsOf(mult.Child))
}

func TestFlattenKeepsUnaryNesting(t *testing.T) {
	tbl := nested(t, "3 + +1")
	FlattenOperators(tbl.Rows)

	top := tbl.Rows[0]
	require.Len(t, top.Child, 3)
	unary := top.Child[2]
	assert.Equal(t, []string{"'+'", parsetable.Expr}, kindsOf(unary.Child))
}

func TestRelocateEqAssign(t *testing.T) {
	tbl := nested(t, "a = 1")
	top := tbl.Rows[0]
	require.Equal(t, "equal_assign", top.Kind)

	RelocateEqAssign(tbl.Rows)
	assert.Equal(t, parsetable.Expr, top.Kind)
	assert.Equal(t, []string{parsetable.Expr, parsetable.EqAssign, parsetable.Expr},
		kindsOf(top.Child))
}

func TestAssignBlocks(t *testing.T) {
	tbl := nested(t, "a <- 1; b <- 2\nc <- 3")
	AssignBlocks(tbl.Rows, true)

	require.Len(t, tbl.Rows, 4) // expr ; expr expr
	assert.Equal(t, tbl.Rows[0].Block, tbl.Rows[1].Block)
	assert.Equal(t, tbl.Rows[0].Block, tbl.Rows[2].Block)
	assert.NotEqual(t, tbl.Rows[0].Block, tbl.Rows[3].Block)
}

func TestAssignBlocksCacheDisabled(t *testing.T) {
	tbl := nested(t, "a\nb")
	AssignBlocks(tbl.Rows, false)
	for _, r := range tbl.Rows {
		assert.Equal(t, 1, r.Block)
	}
}
