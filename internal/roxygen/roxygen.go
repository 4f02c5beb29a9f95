// Package roxygen styles the example code embedded in roxygen doc
// comments: the @examples and @examplesIf blocks of #' comment runs.
package roxygen

import (
	"regexp"
	"strings"
)

var (
	prefixRe   = regexp.MustCompile(`^(\s*#')( ?)(.*)$`)
	examplesRe = regexp.MustCompile(`^\s*@examples(If\b.*)?\s*$`)
	tagRe      = regexp.MustCompile(`^\s*@[a-zA-Z]+`)
)

// StyleFn styles one chunk of R code
type StyleFn func(code string) (string, error)

// StyleExamples rewrites the @examples blocks of every roxygen comment
// run in text, styling the embedded code with fn. Blocks that fail to
// style are left untouched.
func StyleExamples(text string, fn StyleFn) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))

	for i := 0; i < len(lines); {
		body, ok := roxygenBody(lines[i])
		if !ok || !examplesRe.MatchString(body) {
			out = append(out, lines[i])
			i++
			continue
		}
		out = append(out, lines[i])
		i++

		// Collect the block: subsequent roxygen lines up to the next tag
		// or the end of the comment run.
		start := i
		var code []string
		for i < len(lines) {
			b, isRox := roxygenBody(lines[i])
			if !isRox || tagRe.MatchString(b) {
				break
			}
			code = append(code, b)
			i++
		}
		if len(code) == 0 {
			continue
		}

		styled, err := fn(strings.Join(code, "\n"))
		if err != nil {
			out = append(out, lines[start:i]...)
			continue
		}
		indent := leadingWhitespace(lines[start])
		for _, c := range strings.Split(styled, "\n") {
			if c == "" {
				out = append(out, indent+"#'")
			} else {
				out = append(out, indent+"#' "+c)
			}
		}
	}
	return strings.Join(out, "\n")
}

// roxygenBody strips the #' prefix, reporting whether the line is a
// roxygen comment at all
func roxygenBody(line string) (string, bool) {
	m := prefixRe.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[3], true
}

func leadingWhitespace(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}
