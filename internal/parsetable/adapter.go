package parsetable

// Enhance attaches the derived columns the pipeline needs to a freshly
// parsed flat table: stable position ids, neighbouring terminal kinds,
// refined SPECIAL kinds and the multi-line flag.
func Enhance(t *Table) {
	t.SortSourceOrder()

	for i, r := range t.Rows {
		r.PosID = i + 1
		r.IndentRefID = r.ID
		r.MultiLine = r.SpansMultipleLines()
		if r.Kind == Special {
			r.Kind = refineSpecial(r.Text)
		}
	}

	terminals := t.Terminals()
	for i, term := range terminals {
		if i > 0 {
			term.TokenBefore = terminals[i-1].Kind
		}
		if i < len(terminals)-1 {
			term.TokenAfter = terminals[i+1].Kind
		}
	}
}

// refineSpecial splits the generic %...% operator kind by spelling
func refineSpecial(text string) string {
	switch text {
	case "%>%":
		return SpecialPipe
	case "%in%":
		return SpecialIn
	default:
		return SpecialOther
	}
}

// InitWhitespace fills the whitespace attributes of one nest level from the
// original source positions of its rows. The first row's leading whitespace
// belongs to the enclosing nest and stays zero; leading is true only for the
// root table, where the file's own leading blank lines and indentation are
// attributed to the first row.
func InitWhitespace(rows []*Row, leading bool) {
	if len(rows) == 0 {
		return
	}
	if leading {
		rows[0].LagNewlines = rows[0].Line1 - 1
		if rows[0].LagNewlines == 0 {
			rows[0].LagSpaces = rows[0].Col1 - 1
		}
	} else {
		rows[0].LagNewlines = 0
		rows[0].LagSpaces = 0
	}
	for i := 1; i < len(rows); i++ {
		prev, cur := rows[i-1], rows[i]
		cur.LagNewlines = cur.Line1 - prev.Line2
		if cur.LagNewlines < 0 {
			cur.LagNewlines = 0
		}
		if cur.LagNewlines == 0 {
			prev.Spaces = cur.Col1 - prev.Col2 - 1
			if prev.Spaces < 0 {
				prev.Spaces = 0
			}
			cur.LagSpaces = prev.Spaces
		} else {
			cur.LagSpaces = 0
		}
	}
	rows[len(rows)-1].Spaces = 0
}
