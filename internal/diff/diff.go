// Package diff renders the difference between original and styled
// source for terminal output.
package diff

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Result represents the difference between original and styled code
type Result struct {
	Original string
	Styled   string
	Changed  bool
}

// New compares original and styled code
func New(original, styled string) *Result {
	return &Result{
		Original: original,
		Styled:   styled,
		Changed:  original != styled,
	}
}

// String returns a human-readable diff with color highlighting
func (d *Result) String() string {
	if !d.Changed {
		return color.GreenString("No changes needed")
	}

	var buf bytes.Buffer

	originalLines := strings.Split(d.Original, "\n")
	styledLines := strings.Split(d.Styled, "\n")

	maxLines := len(originalLines)
	if len(styledLines) > maxLines {
		maxLines = len(styledLines)
	}

	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)
	cyan := color.New(color.FgCyan)

	for i := 0; i < maxLines; i++ {
		origLine := ""
		if i < len(originalLines) {
			origLine = originalLines[i]
		}
		styledLine := ""
		if i < len(styledLines) {
			styledLine = styledLines[i]
		}

		if origLine != styledLine {
			cyan.Fprintf(&buf, "@@ Line %d @@\n", i+1)
			if origLine != "" {
				red.Fprintf(&buf, "- %s\n", origLine)
			}
			if styledLine != "" {
				green.Fprintf(&buf, "+ %s\n", styledLine)
			}
		}
	}

	return buf.String()
}

// Unified returns a unified diff format string
func (d *Result) Unified(filename string) string {
	if !d.Changed {
		return ""
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "--- a/%s\n", filename)
	fmt.Fprintf(&buf, "+++ b/%s\n", filename)

	originalLines := strings.Split(d.Original, "\n")
	styledLines := strings.Split(d.Styled, "\n")

	maxLines := len(originalLines)
	if len(styledLines) > maxLines {
		maxLines = len(styledLines)
	}

	for i := 0; i < maxLines; i++ {
		origLine := ""
		if i < len(originalLines) {
			origLine = originalLines[i]
		}
		styledLine := ""
		if i < len(styledLines) {
			styledLine = styledLines[i]
		}

		if origLine != styledLine {
			fmt.Fprintf(&buf, "@@ -%d +%d @@\n", i+1, i+1)
			if origLine != "" {
				fmt.Fprintf(&buf, "-%s\n", origLine)
			}
			if styledLine != "" {
				fmt.Fprintf(&buf, "+%s\n", styledLine)
			}
		}
	}

	return buf.String()
}
