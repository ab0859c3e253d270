package rule

import (
	"fmt"
	"strings"
	"unicode"
)

// Clause keywords. Keywords are lowercase; "AND" is an ordinary token.
const (
	keywordAnd = "and"
	keywordOr  = "or"
	keywordNot = "not"
)

type tokenKind int

const (
	tokWord tokenKind = iota
	tokQuoted
	tokAnd
	tokOr
	tokNot
	tokLParen
	tokRParen
	tokEOF
)

type lexToken struct {
	kind tokenKind
	text string
	pos  int
}

// node is a compiled clause expression.
type node interface {
	eval(present map[string]struct{}) bool
}

type termNode struct{ token string }

func (n termNode) eval(present map[string]struct{}) bool {
	_, ok := present[n.token]
	return ok
}

type notNode struct{ operand node }

func (n notNode) eval(present map[string]struct{}) bool {
	return !n.operand.eval(present)
}

type andNode struct{ operands []node }

func (n andNode) eval(present map[string]struct{}) bool {
	for _, op := range n.operands {
		if !op.eval(present) {
			return false
		}
	}
	return true
}

type orNode struct{ operands []node }

func (n orNode) eval(present map[string]struct{}) bool {
	for _, op := range n.operands {
		if op.eval(present) {
			return true
		}
	}
	return false
}

// lex splits a clause into tokens. A word is a maximal run of characters
// other than whitespace, parentheses and single quotes.
func lex(clause string) ([]lexToken, error) {
	var toks []lexToken
	runes := []rune(clause)

	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '(':
			toks = append(toks, lexToken{kind: tokLParen, text: "(", pos: i})
			i++
		case r == ')':
			toks = append(toks, lexToken{kind: tokRParen, text: ")", pos: i})
			i++
		case r == '\'':
			start := i
			i++
			var sb strings.Builder
			for i < len(runes) && runes[i] != '\'' {
				sb.WriteRune(runes[i])
				i++
			}
			if i >= len(runes) {
				return nil, fmt.Errorf("unterminated quote at position %d", start)
			}
			i++ // closing quote
			toks = append(toks, lexToken{kind: tokQuoted, text: sb.String(), pos: start})
		default:
			start := i
			for i < len(runes) && !unicode.IsSpace(runes[i]) && runes[i] != '(' && runes[i] != ')' && runes[i] != '\'' {
				i++
			}
			word := string(runes[start:i])
			kind := tokWord
			switch word {
			case keywordAnd:
				kind = tokAnd
			case keywordOr:
				kind = tokOr
			case keywordNot:
				kind = tokNot
			}
			toks = append(toks, lexToken{kind: kind, text: word, pos: start})
		}
	}

	return append(toks, lexToken{kind: tokEOF, pos: len(runes)}), nil
}

// parser is a recursive-descent parser over lexed clause tokens.
//
//	expr    := andExpr { "or" andExpr }
//	andExpr := unary { "and" unary }
//	unary   := "not" unary | primary
//	primary := "(" expr ")" | WORD | QUOTED
type parser struct {
	toks []lexToken
	pos  int
}

func compile(clause string) (node, error) {
	toks, err := lex(clause)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}

	n, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, fmt.Errorf("unexpected %q at position %d", tok.text, tok.pos)
	}
	return n, nil
}

func (p *parser) peek() lexToken {
	return p.toks[p.pos]
}

func (p *parser) next() lexToken {
	tok := p.toks[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) parseExpr() (node, error) {
	first, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	operands := []node{first}
	for p.peek().kind == tokOr {
		p.next()
		n, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		operands = append(operands, n)
	}
	if len(operands) == 1 {
		return first, nil
	}
	return orNode{operands: operands}, nil
}

func (p *parser) parseAnd() (node, error) {
	first, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	operands := []node{first}
	for p.peek().kind == tokAnd {
		p.next()
		n, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		operands = append(operands, n)
	}
	if len(operands) == 1 {
		return first, nil
	}
	return andNode{operands: operands}, nil
}

func (p *parser) parseUnary() (node, error) {
	if p.peek().kind == tokNot {
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return notNode{operand: operand}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (node, error) {
	tok := p.next()
	switch tok.kind {
	case tokWord, tokQuoted:
		return termNode{token: tok.text}, nil
	case tokLParen:
		n, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokRParen {
			return nil, fmt.Errorf("missing closing parenthesis for position %d", tok.pos)
		}
		return n, nil
	case tokEOF:
		return nil, fmt.Errorf("unexpected end of clause")
	default:
		return nil, fmt.Errorf("unexpected %q at position %d", tok.text, tok.pos)
	}
}
