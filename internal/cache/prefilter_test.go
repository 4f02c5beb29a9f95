package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Polkas/styler/internal/ignore"
	"github.com/Polkas/styler/internal/parsetable"
	"github.com/Polkas/styler/rlang/parser"
)

const testStyleID = "tidyverse|1.0.0|test"

func parse(t *testing.T, src string) *parsetable.Table {
	t.Helper()
	tbl, err := parser.New("").Parse(src)
	require.NoError(t, err)
	parsetable.Enhance(tbl)
	return tbl
}

func topExprs(tbl *parsetable.Table) []*parsetable.Row {
	var out []*parsetable.Row
	for _, r := range tbl.Rows {
		if r.Parent == 0 && r.Kind == parsetable.Expr {
			out = append(out, r)
		}
	}
	return out
}

func TestPreFilterShallowsCachedExpressions(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Record(Fingerprint("a <- 1", testStyleID)))

	tbl := parse(t, "a <- 1\nb( 2)")
	hits, err := PreFilter(tbl, store, testStyleID)
	require.NoError(t, err)
	assert.Equal(t, 1, hits)

	tops := topExprs(tbl)
	require.Len(t, tops, 2)

	cached := tops[0]
	assert.True(t, cached.IsCached)
	assert.True(t, cached.Terminal)
	assert.Equal(t, "a <- 1", cached.Text)
	for _, r := range tbl.Rows {
		assert.NotEqual(t, cached.ID, r.Parent, "descendants of a cached expression must be dropped")
	}

	// The uncached expression keeps its subtree.
	uncached := tops[1]
	assert.False(t, uncached.IsCached)
	kept := 0
	for _, r := range tbl.Rows {
		if r.Parent == uncached.ID {
			kept++
		}
	}
	assert.Greater(t, kept, 0)
}

func TestPreFilterKeepsLeadingComments(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Record(Fingerprint("a <- 1", testStyleID)))

	tbl := parse(t, "# note\na <- 1")
	_, err := PreFilter(tbl, store, testStyleID)
	require.NoError(t, err)

	comments := 0
	for _, r := range tbl.Rows {
		if r.Kind == parsetable.Comment {
			comments++
			assert.Less(t, r.Parent, 0)
		}
	}
	assert.Equal(t, 1, comments)
}

func TestPreFilterNeverCachesComments(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Record(Fingerprint("# note", testStyleID)))

	tbl := parse(t, "# note\nx")
	hits, err := PreFilter(tbl, store, testStyleID)
	require.NoError(t, err)
	assert.Equal(t, 0, hits)
	for _, r := range tbl.Rows {
		assert.False(t, r.IsCached)
	}
}

func TestPreFilterSkipsIgnoredExpressions(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Record(Fingerprint("x<-1", testStyleID)))

	tbl := parse(t, "# styler: off\nx<-1\n# styler: on")
	_, warn := ignore.Apply(tbl, ignore.DefaultMarkers(), "")
	require.Nil(t, warn)

	hits, err := PreFilter(tbl, store, testStyleID)
	require.NoError(t, err)
	assert.Equal(t, 0, hits)
}

func TestRecordTextRecordsTopLevelExpressions(t *testing.T) {
	store := NewMemoryStore()
	err := RecordText("a <- 1\nb(2)", parser.New(""), ignore.DefaultMarkers(), store, testStyleID)
	require.NoError(t, err)

	for _, text := range []string{"a <- 1", "b(2)"} {
		hit, err := store.Lookup(Fingerprint(text, testStyleID))
		require.NoError(t, err)
		assert.True(t, hit, "expected %q to be recorded", text)
	}
}

func TestRecordTextSkipsIgnoredRegions(t *testing.T) {
	store := NewMemoryStore()
	err := RecordText("a <- 1\n# styler: off\nb(2)\n# styler: on", parser.New(""), ignore.DefaultMarkers(), store, testStyleID)
	require.NoError(t, err)

	hit, err := store.Lookup(Fingerprint("a <- 1", testStyleID))
	require.NoError(t, err)
	assert.True(t, hit)

	hit, err = store.Lookup(Fingerprint("b(2)", testStyleID))
	require.NoError(t, err)
	assert.False(t, hit)
}
