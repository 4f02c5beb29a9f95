package transform

import "github.com/Polkas/styler/internal/parsetable"

// Original captures the source whitespace and spelling of one terminal
// inside an ignore span.
type Original struct {
	Text        string
	LagNewlines int
	LagSpaces   int
	Spaces      int
}

// Snapshot maps position ids to original token state
type Snapshot map[int]Original

// TakeSnapshot records every ignored terminal's text and surrounding
// whitespace from the flat table, before any rule can touch it.
func TakeSnapshot(t *parsetable.Table) Snapshot {
	snap := make(Snapshot)
	terms := t.Terminals()
	for i, r := range terms {
		if !r.StylerIgnore {
			continue
		}
		o := Original{Text: r.Text}
		if i > 0 {
			prev := terms[i-1]
			o.LagNewlines = r.Line1 - prev.Line2
			if o.LagNewlines == 0 {
				o.LagSpaces = r.Col1 - prev.Col2 - 1
			} else {
				o.LagSpaces = r.Col1 - 1 // original indentation of the line
			}
		} else {
			o.LagNewlines = r.Line1 - 1
			o.LagSpaces = r.Col1 - 1
		}
		if i < len(terms)-1 {
			next := terms[i+1]
			if next.Line1 == r.Line2 {
				o.Spaces = next.Col1 - r.Col2 - 1
			}
		}
		snap[r.PosID] = o
	}
	return snap
}

// RestoreIgnored splices the original state back over the styled one for
// every terminal inside an ignore span. It runs on the flattened
// terminal sequence, after context propagation and before emission.
func RestoreIgnored(terms []*parsetable.Row, snap Snapshot) {
	for _, r := range terms {
		if !r.StylerIgnore {
			continue
		}
		o, ok := snap[r.PosID]
		if !ok {
			continue
		}
		r.Text = o.Text
		r.LagNewlines = o.LagNewlines
		r.LagSpaces = o.LagSpaces
		r.Spaces = o.Spaces
	}
}
