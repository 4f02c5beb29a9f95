// Package parser implements a precedence-climbing parser for R source
// code. Its product is not a node graph but a flat parse table: one row
// per token plus one row per non-terminal expression, each carrying a
// parent pointer, ready for the styling engine to nest.
package parser

import (
	"fmt"

	"github.com/Polkas/styler/internal/parsetable"
	"github.com/Polkas/styler/rlang/lexer"
	"github.com/Polkas/styler/serrors"
)

// node is the parser's transient tree form, flattened into table rows
// once the parse succeeds.
type node struct {
	term bool
	tok  lexer.Token
	kind string // overrides the token's default kind when set
	kids []*node
}

// Parser parses R source into a parse table
type Parser struct {
	tokens    []lexer.Token
	comments  []lexer.Token
	current   int
	file      string
	sensitive []bool // newline-termination stack: true at top level and in braces
	err       error
}

// New creates a parser for the given source
func New(file string) *Parser {
	return &Parser{file: file}
}

// Parse implements parsetable.Parser
func (p *Parser) Parse(text string) (*parsetable.Table, error) {
	l := lexer.New(text, p.file)
	tokens, lexErrors := l.ScanTokens()
	if len(lexErrors) > 0 {
		e := lexErrors[0]
		return nil, serrors.NewParseError(e.File, e.Line, e.Column, e.Message)
	}

	p.tokens = make([]lexer.Token, 0, len(tokens))
	p.comments = nil
	p.current = 0
	p.sensitive = []bool{true}
	p.err = nil
	for _, t := range tokens {
		if t.Type == lexer.TOKEN_COMMENT {
			p.comments = append(p.comments, t)
		} else {
			p.tokens = append(p.tokens, t)
		}
	}

	top := p.parseProgram()
	if p.err != nil {
		return nil, p.err
	}

	b := newBuilder(text)
	for _, n := range top {
		b.emit(n)
	}
	b.attachComments(p.comments)
	return &parsetable.Table{Rows: b.rows}, nil
}

// parseProgram parses top-level expressions until EOF
func (p *Parser) parseProgram() []*node {
	var top []*node
	for !p.isAtEnd() && p.err == nil {
		if p.check(lexer.TOKEN_SEMICOLON) {
			top = append(top, bare(p.advance()))
			continue
		}
		n := p.parseExpr(0)
		if n != nil {
			top = append(top, n)
		}
	}
	return top
}

// Binding powers mirror R's operator precedence
var binaryPrec = map[lexer.TokenType]int{
	lexer.TOKEN_QUESTION:     1,
	lexer.TOKEN_EQ_ASSIGN:    2,
	lexer.TOKEN_LEFT_ASSIGN:  3,
	lexer.TOKEN_RIGHT_ASSIGN: 3,
	lexer.TOKEN_TILDE:        4,
	lexer.TOKEN_OR:           5,
	lexer.TOKEN_OR2:          5,
	lexer.TOKEN_AND:          6,
	lexer.TOKEN_AND2:         6,
	lexer.TOKEN_EQ:           8,
	lexer.TOKEN_NE:           8,
	lexer.TOKEN_LT:           8,
	lexer.TOKEN_GT:           8,
	lexer.TOKEN_LE:           8,
	lexer.TOKEN_GE:           8,
	lexer.TOKEN_PLUS:         9,
	lexer.TOKEN_MINUS:        9,
	lexer.TOKEN_STAR:         10,
	lexer.TOKEN_SLASH:        10,
	lexer.TOKEN_SPECIAL:      11,
	lexer.TOKEN_PIPE:         11,
	lexer.TOKEN_COLON:        12,
	lexer.TOKEN_CARET:        14,
}

var rightAssoc = map[lexer.TokenType]bool{
	lexer.TOKEN_EQ_ASSIGN:   true,
	lexer.TOKEN_LEFT_ASSIGN: true,
	lexer.TOKEN_CARET:       true,
	lexer.TOKEN_QUESTION:    true,
}

const unaryPMPrec = 13

// parseExpr parses a binary operator chain with precedence climbing
func (p *Parser) parseExpr(minPrec int) *node {
	left := p.parseUnary()
	for p.err == nil {
		t := p.peek()
		prec, ok := binaryPrec[t.Type]
		if !ok || prec < minPrec {
			break
		}
		if p.newlineSensitive() && t.Line > p.previous().EndLine {
			break
		}
		op := bare(p.advance())
		next := prec + 1
		if rightAssoc[t.Type] {
			next = prec
		}
		right := p.parseExpr(next)
		kind := parsetable.Expr
		if t.Type == lexer.TOKEN_EQ_ASSIGN {
			kind = "equal_assign"
		}
		left = nt(kind, left, op, right)
	}
	return left
}

// parseUnary parses prefix operators
func (p *Parser) parseUnary() *node {
	switch p.peek().Type {
	case lexer.TOKEN_MINUS, lexer.TOKEN_PLUS:
		op := bare(p.advance())
		return nt(parsetable.Expr, op, p.parseExpr(unaryPMPrec))
	case lexer.TOKEN_BANG:
		op := bare(p.advance())
		return nt(parsetable.Expr, op, p.parseExpr(7))
	case lexer.TOKEN_TILDE:
		op := bare(p.advance())
		return nt(parsetable.Expr, op, p.parseExpr(4))
	case lexer.TOKEN_QUESTION:
		op := bare(p.advance())
		return nt(parsetable.Expr, op, p.parseExpr(1))
	}
	return p.parsePostfix()
}

// parsePostfix parses calls, subscripts and extraction chains
func (p *Parser) parsePostfix() *node {
	n := p.parsePrimary()
	for p.err == nil {
		t := p.peek()
		if p.newlineSensitive() && t.Line > p.previous().EndLine {
			break
		}
		switch t.Type {
		case lexer.TOKEN_LPAREN:
			markFunctionCall(n)
			lp := bare(p.advance())
			p.push(false)
			args := p.parseArgs(lexer.TOKEN_RPAREN)
			rp := bare(p.expect(lexer.TOKEN_RPAREN, "expected ')'"))
			p.pop()
			kids := append([]*node{n, lp}, args...)
			n = nt(parsetable.Expr, append(kids, rp)...)
		case lexer.TOKEN_LBRACKET:
			lb := bare(p.advance())
			p.push(false)
			args := p.parseArgs(lexer.TOKEN_RBRACKET)
			rb := bare(p.expect(lexer.TOKEN_RBRACKET, "expected ']'"))
			p.pop()
			kids := append([]*node{n, lb}, args...)
			n = nt(parsetable.Expr, append(kids, rb)...)
		case lexer.TOKEN_DLBRACKET:
			lb := bare(p.advance())
			p.push(false)
			args := p.parseArgs(lexer.TOKEN_RBRACKET)
			rb1 := bare(p.expect(lexer.TOKEN_RBRACKET, "expected ']]'"))
			rb2 := bare(p.expect(lexer.TOKEN_RBRACKET, "expected ']]'"))
			p.pop()
			kids := append([]*node{n, lb}, args...)
			n = nt(parsetable.Expr, append(kids, rb1, rb2)...)
		case lexer.TOKEN_DOLLAR, lexer.TOKEN_AT, lexer.TOKEN_NS, lexer.TOKEN_NS_INT:
			op := bare(p.advance())
			name := p.advance()
			if name.Type != lexer.TOKEN_SYMBOL && name.Type != lexer.TOKEN_STR_CONST {
				p.errorAt(name, "expected a name after extraction operator")
				return n
			}
			n = nt(parsetable.Expr, n, op, bare(name))
		default:
			return n
		}
	}
	return n
}

// parsePrimary parses atoms and keyword constructs
func (p *Parser) parsePrimary() *node {
	t := p.peek()
	switch t.Type {
	case lexer.TOKEN_SYMBOL, lexer.TOKEN_NUM_CONST, lexer.TOKEN_STR_CONST,
		lexer.TOKEN_NULL_CONST, lexer.TOKEN_TRUE, lexer.TOKEN_FALSE,
		lexer.TOKEN_NA, lexer.TOKEN_INF, lexer.TOKEN_NAN:
		return wrap(p.advance())

	case lexer.TOKEN_BREAK, lexer.TOKEN_NEXT:
		return wrap(p.advance())

	case lexer.TOKEN_LPAREN:
		lp := bare(p.advance())
		p.push(false)
		inner := p.parseExpr(0)
		rp := bare(p.expect(lexer.TOKEN_RPAREN, "expected ')'"))
		p.pop()
		return nt(parsetable.Expr, lp, inner, rp)

	case lexer.TOKEN_LBRACE:
		return p.parseBrace()

	case lexer.TOKEN_FUNCTION, lexer.TOKEN_LAMBDA:
		return p.parseFunction()

	case lexer.TOKEN_IF:
		return p.parseIf()

	case lexer.TOKEN_FOR:
		return p.parseFor()

	case lexer.TOKEN_WHILE:
		return p.parseWhile()

	case lexer.TOKEN_REPEAT:
		kw := bare(p.advance())
		return nt(parsetable.Expr, kw, p.parseExpr(3))
	}

	p.errorAt(t, fmt.Sprintf("unexpected token %q", t.Lexeme))
	return nil
}

// parseBrace parses a { ... } expression sequence
func (p *Parser) parseBrace() *node {
	lb := bare(p.advance())
	p.push(true)
	kids := []*node{lb}
	for !p.check(lexer.TOKEN_RBRACE) && !p.isAtEnd() && p.err == nil {
		if p.check(lexer.TOKEN_SEMICOLON) {
			kids = append(kids, bare(p.advance()))
			continue
		}
		kids = append(kids, p.parseExpr(0))
	}
	rb := bare(p.expect(lexer.TOKEN_RBRACE, "expected '}'"))
	p.pop()
	return nt(parsetable.Expr, append(kids, rb)...)
}

// parseFunction parses function(...) body and the \(...) shorthand
func (p *Parser) parseFunction() *node {
	kw := bare(p.advance())
	lp := bare(p.expect(lexer.TOKEN_LPAREN, "expected '(' after function"))
	p.push(false)
	kids := []*node{kw, lp}
	for !p.check(lexer.TOKEN_RPAREN) && !p.isAtEnd() && p.err == nil {
		if p.check(lexer.TOKEN_COMMA) {
			kids = append(kids, bare(p.advance()))
			continue
		}
		name := p.expect(lexer.TOKEN_SYMBOL, "expected formal argument name")
		formal := bare(name)
		formal.kind = parsetable.SymbolFormal
		kids = append(kids, formal)
		if p.check(lexer.TOKEN_EQ_ASSIGN) {
			eq := bare(p.advance())
			eq.kind = parsetable.EqFormals
			kids = append(kids, eq, p.parseExpr(3))
		}
	}
	rp := bare(p.expect(lexer.TOKEN_RPAREN, "expected ')'"))
	p.pop()
	kids = append(kids, rp, p.parseExpr(3))
	return nt(parsetable.Expr, kids...)
}

// parseIf parses if (cond) expr [else expr]
func (p *Parser) parseIf() *node {
	kw := bare(p.advance())
	lp := bare(p.expect(lexer.TOKEN_LPAREN, "expected '(' after if"))
	p.push(false)
	cond := p.parseExpr(0)
	rp := bare(p.expect(lexer.TOKEN_RPAREN, "expected ')'"))
	p.pop()
	then := p.parseExpr(3)
	kids := []*node{kw, lp, cond, rp, then}
	if p.check(lexer.TOKEN_ELSE) {
		// At newline-terminated nesting, a fresh-line else starts a new
		// statement rather than completing this one.
		if !p.newlineSensitive() || p.peek().Line == p.previous().EndLine {
			kids = append(kids, bare(p.advance()), p.parseExpr(3))
		}
	}
	return nt(parsetable.Expr, kids...)
}

// parseFor parses for (sym in seq) body
func (p *Parser) parseFor() *node {
	kw := bare(p.advance())
	lp := bare(p.expect(lexer.TOKEN_LPAREN, "expected '(' after for"))
	p.push(false)
	sym := bare(p.expect(lexer.TOKEN_SYMBOL, "expected loop variable"))
	in := bare(p.expect(lexer.TOKEN_IN, "expected 'in'"))
	seq := p.parseExpr(0)
	rp := bare(p.expect(lexer.TOKEN_RPAREN, "expected ')'"))
	p.pop()
	body := p.parseExpr(3)
	return nt(parsetable.Expr, kw, lp, sym, in, seq, rp, body)
}

// parseWhile parses while (cond) body
func (p *Parser) parseWhile() *node {
	kw := bare(p.advance())
	lp := bare(p.expect(lexer.TOKEN_LPAREN, "expected '(' after while"))
	p.push(false)
	cond := p.parseExpr(0)
	rp := bare(p.expect(lexer.TOKEN_RPAREN, "expected ')'"))
	p.pop()
	body := p.parseExpr(3)
	return nt(parsetable.Expr, kw, lp, cond, rp, body)
}

// parseArgs parses a call or subscript argument list up to closer,
// leaving the closer unconsumed. Commas are kept as sibling terminals
// and named arguments produce SYMBOL_SUB / EQ_SUB siblings.
func (p *Parser) parseArgs(closer lexer.TokenType) []*node {
	var out []*node
	for !p.check(closer) && !p.isAtEnd() && p.err == nil {
		if p.check(lexer.TOKEN_COMMA) {
			out = append(out, bare(p.advance()))
			continue
		}
		if (p.check(lexer.TOKEN_SYMBOL) || p.check(lexer.TOKEN_STR_CONST)) &&
			p.checkNext(lexer.TOKEN_EQ_ASSIGN) {
			name := bare(p.advance())
			name.kind = parsetable.SymbolSub
			eq := bare(p.advance())
			eq.kind = parsetable.EqSub
			out = append(out, name, eq)
			if p.check(lexer.TOKEN_COMMA) || p.check(closer) {
				continue // missing value, as in f(x =)
			}
			out = append(out, p.parseExpr(3))
			continue
		}
		out = append(out, p.parseExpr(3))
	}
	return out
}

// markFunctionCall re-kinds a plain symbol operand that turned out to
// name a call target
func markFunctionCall(n *node) {
	if n == nil || n.term || len(n.kids) != 1 {
		return
	}
	k := n.kids[0]
	if k.term && k.tok.Type == lexer.TOKEN_SYMBOL && k.kind == "" {
		k.kind = parsetable.SymbolFnCall
	}
}

// Token stream helpers

func (p *Parser) peek() lexer.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() lexer.Token {
	if p.current == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.current-1]
}

func (p *Parser) advance() lexer.Token {
	t := p.tokens[p.current]
	if !p.isAtEnd() {
		p.current++
	}
	return t
}

func (p *Parser) check(typ lexer.TokenType) bool {
	return p.peek().Type == typ
}

func (p *Parser) checkNext(typ lexer.TokenType) bool {
	if p.current+1 >= len(p.tokens) {
		return false
	}
	return p.tokens[p.current+1].Type == typ
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == lexer.TOKEN_EOF
}

func (p *Parser) expect(typ lexer.TokenType, message string) lexer.Token {
	if p.check(typ) {
		return p.advance()
	}
	p.errorAt(p.peek(), message)
	return p.peek()
}

func (p *Parser) errorAt(t lexer.Token, message string) {
	if p.err == nil {
		p.err = serrors.NewParseError(t.File, t.Line, t.Column, message)
	}
}

func (p *Parser) newlineSensitive() bool {
	return p.sensitive[len(p.sensitive)-1]
}

func (p *Parser) push(v bool) { p.sensitive = append(p.sensitive, v) }

func (p *Parser) pop() { p.sensitive = p.sensitive[:len(p.sensitive)-1] }

// Node constructors

func bare(t lexer.Token) *node {
	return &node{term: true, tok: t}
}

func wrap(t lexer.Token) *node {
	return nt(parsetable.Expr, bare(t))
}

func nt(kind string, kids ...*node) *node {
	out := make([]*node, 0, len(kids))
	for _, k := range kids {
		if k != nil {
			out = append(out, k)
		}
	}
	return &node{kind: kind, kids: out}
}
