package cache

import (
	"github.com/Polkas/styler/internal/parsetable"
)

// PreFilter marks cached top-level expressions and drops their
// descendants from the flat table before nesting. Rows are grouped by
// cumulative count of top-level rows after the canonical sort, so each
// group holds one top-level expression plus its subtree; within a cached
// group only rows with parent <= 0 survive, which keeps leading comments
// attached by negative parent. Cached rows are forced terminal so the
// serializer emits their original text even inside a mixed block.
//
// Returns the number of cache hits. A store error aborts filtering and
// is reported to the caller, who demotes it to a warning.
func PreFilter(t *parsetable.Table, store Store, styleID string) (int, error) {
	t.SortSourceOrder()

	hits := 0
	kept := make([]*parsetable.Row, 0, len(t.Rows))
	cachedGroup := false

	for _, r := range t.Rows {
		if r.Parent == 0 && !r.Terminal {
			cachedGroup = false
			if cacheable(r) {
				hit, err := store.Lookup(Fingerprint(r.Text, styleID))
				if err != nil {
					return hits, err
				}
				if hit {
					cachedGroup = true
					hits++
					r.IsCached = true
					r.Terminal = true
				}
			}
			kept = append(kept, r)
			continue
		}
		if cachedGroup && r.Parent > 0 {
			continue // descendant of a cached expression
		}
		kept = append(kept, r)
	}

	t.Rows = kept
	return hits, nil
}

// cacheable reports whether a top-level expression may hit the cache.
// Comments are never cached, and neither is anything an ignore marker
// touches.
func cacheable(r *parsetable.Row) bool {
	return r.Kind != parsetable.Comment && !r.StylerIgnore
}
