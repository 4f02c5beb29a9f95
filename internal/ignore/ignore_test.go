package ignore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Polkas/styler/internal/parsetable"
	"github.com/Polkas/styler/rlang/parser"
)

func parse(t *testing.T, src string) *parsetable.Table {
	t.Helper()
	tbl, err := parser.New("test.R").Parse(src)
	require.NoError(t, err)
	parsetable.Enhance(tbl)
	return tbl
}

func TestBalancedMarkersProduceRange(t *testing.T) {
	tbl := parse(t, "1+1\n# styler: off\n1+1\n# styler: on\n1+1")
	ranges, warn := Ranges(tbl, DefaultMarkers(), "test.R")
	require.Nil(t, warn)
	require.Len(t, ranges, 1)
	assert.Equal(t, LineRange{From: 2, To: 4}, ranges[0])
}

func TestApplyTagsOverlappingRows(t *testing.T) {
	tbl := parse(t, "1+1\n# styler: off\n1+1\n# styler: on\n1+1")
	_, warn := Apply(tbl, DefaultMarkers(), "test.R")
	require.Nil(t, warn)

	for _, r := range tbl.Rows {
		switch {
		case r.Line1 >= 2 && r.Line2 <= 4:
			assert.True(t, r.StylerIgnore, "row at line %d should be ignored", r.Line1)
		default:
			assert.False(t, r.StylerIgnore, "row at line %d should not be ignored", r.Line1)
		}
	}
}

func TestInlineMarkerIgnoresOnlyItsLine(t *testing.T) {
	tbl := parse(t, "x<-1 # styler: off\ny<-2")
	ranges, warn := Ranges(tbl, DefaultMarkers(), "test.R")
	require.Nil(t, warn)
	require.Len(t, ranges, 1)
	assert.Equal(t, LineRange{From: 1, To: 1}, ranges[0])
}

func TestStopBeforeStartWarns(t *testing.T) {
	tbl := parse(t, "1+1\n# styler: on\n1+1")
	ranges, warn := Ranges(tbl, DefaultMarkers(), "test.R")
	require.NotNil(t, warn)
	assert.Nil(t, ranges)
}

func TestUnmatchedStartWarnsAndTagsNothing(t *testing.T) {
	tbl := parse(t, "1+1\n# styler: off\n1+1\n# styler: off\n1+1")
	_, warn := Apply(tbl, DefaultMarkers(), "test.R")
	require.NotNil(t, warn)
	for _, r := range tbl.Rows {
		assert.False(t, r.StylerIgnore)
	}
}

func TestCommentBeforeSpanStaysOutside(t *testing.T) {
	tbl := parse(t, "# keep styled\n# styler: off\nx<-1\n# styler: on")
	_, warn := Apply(tbl, DefaultMarkers(), "test.R")
	require.Nil(t, warn)

	for _, r := range tbl.Rows {
		if r.Kind == parsetable.Comment && r.Line1 == 1 {
			assert.False(t, r.StylerIgnore)
		}
		if r.Line1 == 3 {
			assert.True(t, r.StylerIgnore)
		}
	}
}

func TestFromPatternsRejectsBadRegex(t *testing.T) {
	_, err := FromPatterns("(", "styler: on")
	assert.Error(t, err)
}
