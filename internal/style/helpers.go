package style

import (
	"regexp"
	"strings"

	"github.com/Polkas/styler/internal/parsetable"
)

// Binary operators that get one space on each side under the tidyverse
// guide. Zero-space operators are configured separately on the guide.
var spacedOps = map[string]bool{
	parsetable.LeftAssign:   true,
	parsetable.RightAssign:  true,
	parsetable.EqAssign:     true,
	parsetable.EqSub:        true,
	parsetable.EqFormals:    true,
	"EQ":                    true,
	"NE":                    true,
	"LT":                    true,
	"GT":                    true,
	"LE":                    true,
	"GE":                    true,
	"AND":                   true,
	"AND2":                  true,
	"OR":                    true,
	"OR2":                   true,
	parsetable.SpecialPipe:  true,
	parsetable.SpecialIn:    true,
	parsetable.SpecialOther: true,
	parsetable.Pipe:         true,
	parsetable.In:           true,
	parsetable.Else:         true,
	"'+'":                   true,
	"'-'":                   true,
	"'*'":                   true,
	"'/'":                   true,
	"'~'":                   true,
}

// DefaultZeroSpaceOps returns the operators spaced tight by default
func DefaultZeroSpaceOps() map[string]bool {
	return map[string]bool{
		"'^'":        true,
		"':'":        true,
		"'$'":        true,
		"'@'":        true,
		"NS_GET":     true,
		"NS_GET_INT": true,
	}
}

// Operators that start a continuation line set off by extra indention
var indentOpKinds = map[string]bool{
	"'+'": true, "'-'": true, "'*'": true, "'/'": true, "'^'": true,
	"':'": true, "'~'": true,
	"EQ": true, "NE": true, "LT": true, "GT": true, "LE": true, "GE": true,
	"AND": true, "AND2": true, "OR": true, "OR2": true,
	parsetable.LeftAssign: true, parsetable.RightAssign: true,
	parsetable.EqAssign: true,
	parsetable.SpecialPipe: true, parsetable.SpecialIn: true,
	parsetable.SpecialOther: true, parsetable.Pipe: true,
}

var pipeKinds = map[string]bool{
	parsetable.SpecialPipe: true,
	parsetable.Pipe:        true,
}

var unaryKinds = map[string]bool{
	"'-'": true, "'+'": true, "'!'": true, "'~'": true, "'?'": true,
}

var openerKinds = map[string]bool{
	"'('": true, "'['": true, "LBB": true,
}

var closerKinds = map[string]bool{
	"')'": true, "']'": true,
}

// Keywords whose opening paren keeps a space before it
var spacedKeywords = map[string]bool{
	parsetable.If:    true,
	parsetable.For:   true,
	parsetable.While: true,
}

// isUnaryNest reports whether rows form a prefix-operator application
func isUnaryNest(rows []*parsetable.Row) bool {
	return len(rows) == 2 && rows[0].Terminal && unaryKinds[rows[0].Kind]
}

// isBraceExpr reports whether a row is a { ... } expression
func isBraceExpr(r *parsetable.Row) bool {
	return !r.Terminal && len(r.Child) > 0 && r.Child[0].Kind == "'{'"
}

// anyMultiline reports whether the nest spreads over several lines
func anyMultiline(rows []*parsetable.Row) bool {
	for i, r := range rows {
		if i > 0 && r.LagNewlines > 0 {
			return true
		}
		if r.MultiLine {
			return true
		}
	}
	return false
}

func atLeast(current, minimum int) int {
	if current < minimum {
		return minimum
	}
	return current
}

func atMost(current, maximum int) int {
	if current > maximum {
		return maximum
	}
	return current
}

var commentPrefix = regexp.MustCompile(`^(#+'?>?)\s*`)

// restyleComment makes sure a space separates the comment prefix from
// its body: "#comment" becomes "# comment". Wider gaps stay, they are
// often deliberate alignment. Shebangs stay untouched.
func restyleComment(text string) string {
	if strings.HasPrefix(text, "#!") {
		return text
	}
	m := commentPrefix.FindStringSubmatch(text)
	if m == nil {
		return text
	}
	if len(m[0]) > len(m[1]) {
		return text
	}
	body := text[len(m[0]):]
	if body == "" {
		return m[1]
	}
	return m[1] + " " + body
}
