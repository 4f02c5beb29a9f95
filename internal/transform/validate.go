package transform

import (
	"fmt"

	"github.com/Polkas/styler/rlang/lexer"
	"github.com/Polkas/styler/serrors"
)

// Validate re-tokenizes styled output and compares it against the input
// token for token. Comments are excluded, their re-flow is legitimate,
// and so are semicolons, which line-break styling resolves away. Any
// other difference means styling drifted the syntax tree.
func Validate(original, styled, file string) error {
	in := significantTokens(original, file)
	out := significantTokens(styled, file)
	if in == nil || out == nil {
		return serrors.NewAstDrift(file, "styled output no longer tokenizes")
	}
	n := len(in)
	if len(out) < n {
		n = len(out)
	}
	for i := 0; i < n; i++ {
		if in[i] != out[i] {
			return serrors.NewAstDrift(file, fmt.Sprintf(
				"token %d changed from %s to %s", i+1, in[i], out[i]))
		}
	}
	if len(in) != len(out) {
		return serrors.NewAstDrift(file, fmt.Sprintf(
			"token count changed from %d to %d", len(in), len(out)))
	}
	return nil
}

// significantTokens returns the (kind, text) pairs that carry syntax
func significantTokens(text, file string) []string {
	l := lexer.New(text, file)
	tokens, errs := l.ScanTokens()
	if len(errs) > 0 {
		return nil
	}
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		switch t.Type {
		case lexer.TOKEN_COMMENT, lexer.TOKEN_SEMICOLON, lexer.TOKEN_EOF:
			continue
		}
		out = append(out, t.Type.ParseKind()+"\x00"+t.Lexeme)
	}
	return out
}
