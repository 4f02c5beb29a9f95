// Package ignore implements the styler: off / styler: on marker protocol
// that excludes source regions from styling.
package ignore

import (
	"regexp"

	"github.com/Polkas/styler/internal/parsetable"
	"github.com/Polkas/styler/serrors"
)

// Markers holds the compiled marker patterns
type Markers struct {
	Start *regexp.Regexp
	Stop  *regexp.Regexp
}

// DefaultMarkers returns the stock styler markers
func DefaultMarkers() Markers {
	return Markers{
		Start: regexp.MustCompile(`styler: off`),
		Stop:  regexp.MustCompile(`styler: on`),
	}
}

// FromPatterns compiles user-supplied marker patterns
func FromPatterns(start, stop string) (Markers, error) {
	s, err := regexp.Compile(start)
	if err != nil {
		return Markers{}, serrors.NewInvalidOption("invalid ignore_start pattern: " + err.Error())
	}
	e, err := regexp.Compile(stop)
	if err != nil {
		return Markers{}, serrors.NewInvalidOption("invalid ignore_stop pattern: " + err.Error())
	}
	return Markers{Start: s, Stop: e}, nil
}

// LineRange is an inclusive range of ignored source lines
type LineRange struct {
	From int
	To   int
}

// Apply scans the table's comments for markers, computes the ignore
// ranges and tags every row overlapping one with StylerIgnore. On
// unbalanced markers it tags nothing and returns a warning; the caller
// decides how to surface it.
func Apply(t *parsetable.Table, m Markers, file string) ([]LineRange, *serrors.StyleError) {
	ranges, warn := Ranges(t, m, file)
	if warn != nil {
		return nil, warn
	}
	for _, r := range t.Rows {
		for _, rng := range ranges {
			if r.Line1 <= rng.To && r.Line2 >= rng.From {
				r.StylerIgnore = true
				break
			}
		}
	}
	return ranges, nil
}

// Ranges computes the ignore line ranges without tagging
func Ranges(t *parsetable.Table, m Markers, file string) ([]LineRange, *serrors.StyleError) {
	var ranges []LineRange
	openFrom := 0
	open := false

	for _, r := range t.Rows {
		if r.Kind != parsetable.Comment {
			continue
		}
		isStart := m.Start.MatchString(r.Text)
		isStop := m.Stop.MatchString(r.Text)
		switch {
		case isStart && inline(t, r):
			// An end-of-line marker ignores only its own line.
			if !open {
				ranges = append(ranges, LineRange{From: r.Line1, To: r.Line1})
			}
		case isStart:
			if open {
				return nil, serrors.NewIgnoreMarkerMismatch(file, r.Line1)
			}
			open = true
			openFrom = r.Line1
		case isStop:
			if !open {
				return nil, serrors.NewIgnoreMarkerMismatch(file, r.Line1)
			}
			ranges = append(ranges, LineRange{From: openFrom, To: r.Line1})
			open = false
		}
	}
	if open {
		return nil, serrors.NewIgnoreMarkerMismatch(file, openFrom)
	}
	return ranges, nil
}

// inline reports whether a marker comment shares its line with code
func inline(t *parsetable.Table, c *parsetable.Row) bool {
	for _, r := range t.Rows {
		if !r.Terminal || r == c {
			continue
		}
		if r.Line2 == c.Line1 && r.Col2 < c.Col1 {
			return true
		}
	}
	return false
}
