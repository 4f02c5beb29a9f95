package cache

import (
	"github.com/Polkas/styler/internal/ignore"
	"github.com/Polkas/styler/internal/parsetable"
)

// RecordText re-parses styled output and records the hash of every
// top-level expression, so a later run over the same output short-circuits
// in PreFilter. Expressions inside ignore spans are skipped: their text
// never went through the style guide.
func RecordText(styled string, p parsetable.Parser, markers ignore.Markers, store Store, styleID string) error {
	t, err := p.Parse(styled)
	if err != nil {
		// Styled output that fails to re-parse is a validator concern,
		// not a cache one.
		return nil
	}

	ranges, warn := ignore.Ranges(t, markers, "")
	if warn != nil {
		ranges = nil
	}

	for _, r := range t.Rows {
		if r.Parent != 0 || r.Terminal || r.Kind == parsetable.Comment {
			continue
		}
		if overlapsAny(r, ranges) {
			continue
		}
		if err := store.Record(Fingerprint(r.Text, styleID)); err != nil {
			return err
		}
	}
	return nil
}

func overlapsAny(r *parsetable.Row, ranges []ignore.LineRange) bool {
	for _, rng := range ranges {
		if r.Line1 <= rng.To && r.Line2 >= rng.From {
			return true
		}
	}
	return false
}
