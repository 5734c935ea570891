package ruleql

import (
	"strconv"
	"strings"
)

// Parse converts rule text into an AST.
//
// Grammar, lowest to highest precedence:
//
//	expr       := orExpr
//	orExpr     := andExpr (OR andExpr)*
//	andExpr    := comparison (AND comparison)*
//	comparison := '(' expr ')' | identifier compareOp literal
//
// Both logical operators are left-associative; AND binds tighter than OR,
// and parenthesized groups override precedence. A bare comparison with no
// logical operator is a valid, single-node tree.
//
// The identifiers true and false (case-insensitive) are accepted in literal
// position as boolean literals.
func Parse(input string) (Node, error) {
	tokens, err := Tokenize(input)
	if err != nil {
		return nil, err
	}
	p := parser{tokens: tokens}
	root, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Type != TokenEOF {
		return nil, &ParseError{Offset: tok.Offset, Expected: []TokenType{TokenEOF}, Found: tok.Type}
	}
	return root, nil
}

type parser struct {
	tokens []Token
	pos    int
}

func (p *parser) peek() Token {
	return p.tokens[p.pos]
}

func (p *parser) advance() Token {
	tok := p.tokens[p.pos]
	if tok.Type != TokenEOF {
		p.pos++
	}
	return tok
}

func (p *parser) expect(tt TokenType) (Token, error) {
	tok := p.peek()
	if tok.Type != tt {
		return tok, &ParseError{Offset: tok.Offset, Expected: []TokenType{tt}, Found: tok.Type}
	}
	return p.advance(), nil
}

func (p *parser) parseOr() (Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peek().Type == TokenOr {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &BinaryNode{Op: Or, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (Node, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.peek().Type == TokenAnd {
		p.advance()
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = &BinaryNode{Op: And, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseComparison() (Node, error) {
	tok := p.peek()
	switch tok.Type {
	case TokenLParen:
		p.advance()
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRParen); err != nil {
			return nil, err
		}
		return inner, nil

	case TokenIdent:
		p.advance()
		opTok, err := p.expect(TokenCompare)
		if err != nil {
			return nil, err
		}
		lit, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		return &CompareNode{Attr: tok.Text, Op: CompareOp(opTok.Text), Value: lit}, nil

	default:
		return nil, &ParseError{
			Offset:   tok.Offset,
			Expected: []TokenType{TokenIdent, TokenLParen},
			Found:    tok.Type,
		}
	}
}

func (p *parser) parseLiteral() (Literal, error) {
	tok := p.peek()
	switch tok.Type {
	case TokenNumber:
		p.advance()
		// The lexer only admits digit runs, so the parse cannot fail;
		// out-of-range values saturate to +/-Inf.
		f, _ := strconv.ParseFloat(tok.Text, 64)
		return NumberLit(f), nil
	case TokenString:
		p.advance()
		return StringLit(tok.Text), nil
	case TokenIdent:
		if strings.EqualFold(tok.Text, "true") {
			p.advance()
			return BoolLit(true), nil
		}
		if strings.EqualFold(tok.Text, "false") {
			p.advance()
			return BoolLit(false), nil
		}
	}
	return Literal{}, &ParseError{
		Offset:   tok.Offset,
		Expected: []TokenType{TokenNumber, TokenString},
		Found:    tok.Type,
	}
}
