package parsetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func term(id, line1, col1, line2, col2 int, kind, text string) *Row {
	return &Row{
		ID: id, Kind: kind, Text: text, Terminal: true,
		Line1: line1, Col1: col1, Line2: line2, Col2: col2,
	}
}

func TestEnhanceAssignsPosIDsInSourceOrder(t *testing.T) {
	tbl := &Table{Rows: []*Row{
		term(3, 1, 8, 1, 8, "NUM_CONST", "1"),
		term(1, 1, 1, 1, 1, "SYMBOL", "a"),
		term(2, 1, 3, 1, 4, "LEFT_ASSIGN", "<-"),
	}}
	Enhance(tbl)

	require.Equal(t, "SYMBOL", tbl.Rows[0].Kind)
	assert.Equal(t, 1, tbl.Rows[0].PosID)
	assert.Equal(t, 2, tbl.Rows[1].PosID)
	assert.Equal(t, 3, tbl.Rows[2].PosID)
}

func TestEnhanceWiderSpansSortFirst(t *testing.T) {
	expr := &Row{ID: 4, Kind: Expr, Line1: 1, Col1: 1, Line2: 1, Col2: 6}
	tbl := &Table{Rows: []*Row{
		term(1, 1, 1, 1, 1, "SYMBOL", "a"),
		expr,
	}}
	Enhance(tbl)
	assert.Same(t, expr, tbl.Rows[0])
}

func TestEnhanceRefinesSpecials(t *testing.T) {
	tbl := &Table{Rows: []*Row{
		term(1, 1, 1, 1, 3, Special, "%>%"),
		term(2, 1, 5, 1, 8, Special, "%in%"),
		term(3, 1, 10, 1, 14, Special, "%||%"),
	}}
	Enhance(tbl)
	assert.Equal(t, SpecialPipe, tbl.Rows[0].Kind)
	assert.Equal(t, SpecialIn, tbl.Rows[1].Kind)
	assert.Equal(t, SpecialOther, tbl.Rows[2].Kind)
}

func TestEnhanceNeighbourKinds(t *testing.T) {
	tbl := &Table{Rows: []*Row{
		term(1, 1, 1, 1, 1, "SYMBOL", "a"),
		term(2, 1, 3, 1, 4, "LEFT_ASSIGN", "<-"),
		term(3, 1, 6, 1, 6, "NUM_CONST", "1"),
	}}
	Enhance(tbl)
	assert.Equal(t, "", tbl.Rows[0].TokenBefore)
	assert.Equal(t, "LEFT_ASSIGN", tbl.Rows[0].TokenAfter)
	assert.Equal(t, "SYMBOL", tbl.Rows[1].TokenBefore)
	assert.Equal(t, "NUM_CONST", tbl.Rows[1].TokenAfter)
	assert.Equal(t, "", tbl.Rows[2].TokenAfter)
}

func TestInitWhitespaceDerivesFromPositions(t *testing.T) {
	rows := []*Row{
		term(1, 1, 1, 1, 1, "SYMBOL", "a"),
		term(2, 1, 4, 1, 5, "LEFT_ASSIGN", "<-"),
		term(3, 3, 3, 3, 3, "NUM_CONST", "1"),
	}
	InitWhitespace(rows, true)

	assert.Equal(t, 0, rows[0].LagNewlines)
	assert.Equal(t, 2, rows[0].Spaces)
	assert.Equal(t, 0, rows[1].LagNewlines)
	assert.Equal(t, 2, rows[1].LagSpaces)
	assert.Equal(t, 2, rows[2].LagNewlines)
	assert.Equal(t, 0, rows[2].LagSpaces)
	assert.Equal(t, 0, rows[2].Spaces)
}

func TestInitWhitespaceNonRootFirstRowOwnsNothing(t *testing.T) {
	rows := []*Row{
		term(1, 2, 5, 2, 5, "SYMBOL", "a"),
		term(2, 2, 7, 2, 7, "NUM_CONST", "1"),
	}
	InitWhitespace(rows, false)
	assert.Equal(t, 0, rows[0].LagNewlines)
	assert.Equal(t, 0, rows[0].LagSpaces)
	assert.Equal(t, 1, rows[0].Spaces)
}
