// Package nest converts the flat parse table into a recursively nested
// one and applies the post-nesting rewrites the transformer depends on.
package nest

import (
	"sort"

	"github.com/Polkas/styler/internal/parsetable"
)

// Nest transforms the flat table into a tree by repeated parent-child
// joins. Each pass attaches every row whose id no longer appears in any
// parent column to its owner; the pass count is bounded by the nesting
// depth because leaves join first.
func Nest(t *parsetable.Table) *parsetable.Table {
	rows := t.Rows

	for {
		referenced := make(map[int]bool)
		for _, r := range rows {
			if r.Parent > 0 {
				referenced[r.Parent] = true
			}
		}
		if len(referenced) == 0 {
			break
		}

		internal := make([]*parsetable.Row, 0, len(rows))
		children := make(map[int][]*parsetable.Row)
		for _, r := range rows {
			if r.Parent <= 0 || referenced[r.ID] {
				internal = append(internal, r)
			} else {
				children[r.Parent] = append(children[r.Parent], r)
			}
		}

		byID := make(map[int]*parsetable.Row, len(internal))
		for _, r := range internal {
			byID[r.ID] = r
		}
		for pid, kids := range children {
			p := byID[pid]
			p.Child = append(p.Child, kids...)
			sortByPos(p.Child)
		}
		rows = internal
	}

	sortByPos(rows)
	return &parsetable.Table{Rows: rows}
}

func sortByPos(rows []*parsetable.Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].PosID < rows[j].PosID
	})
}
