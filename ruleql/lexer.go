package ruleql

import "strings"

// Tokenize splits rule text into tokens in a single eager pass.
// The returned slice always ends with a TokenEOF token.
//
// Recognized input: parentheses, the comparison operators >= <= != = > <,
// the case-insensitive keywords AND and OR, single- or double-quoted string
// literals (no escape sequences), numbers with an optional leading minus
// and decimal part, and identifiers of the form [A-Za-z_][A-Za-z0-9_]*.
// Whitespace separates tokens and is otherwise ignored.
func Tokenize(input string) ([]Token, error) {
	l := lexer{input: input}
	return l.run()
}

type lexer struct {
	input  string
	pos    int
	tokens []Token
}

func (l *lexer) run() ([]Token, error) {
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			l.pos++
		case ch == '(':
			l.emit(TokenLParen, "(")
		case ch == ')':
			l.emit(TokenRParen, ")")
		case ch == '\'' || ch == '"':
			if err := l.readString(ch); err != nil {
				return nil, err
			}
		case ch == '>' || ch == '<' || ch == '=' || ch == '!':
			if err := l.readCompare(); err != nil {
				return nil, err
			}
		case ch == '-' || isDigit(ch):
			if err := l.readNumber(); err != nil {
				return nil, err
			}
		case isIdentStart(ch):
			l.readIdent()
		default:
			return nil, &LexError{Offset: l.pos, Char: rune(ch)}
		}
	}
	l.tokens = append(l.tokens, Token{Type: TokenEOF, Offset: l.pos})
	return l.tokens, nil
}

func (l *lexer) emit(tt TokenType, text string) {
	l.tokens = append(l.tokens, Token{Type: tt, Text: text, Offset: l.pos})
	l.pos += len(text)
}

func (l *lexer) readCompare() error {
	if l.pos+1 < len(l.input) && l.input[l.pos+1] == '=' {
		switch l.input[l.pos] {
		case '>', '<', '!':
			l.emit(TokenCompare, l.input[l.pos:l.pos+2])
			return nil
		}
	}
	switch l.input[l.pos] {
	case '>', '<', '=':
		l.emit(TokenCompare, l.input[l.pos:l.pos+1])
		return nil
	}
	// a bare '!' is not an operator
	return &LexError{Offset: l.pos, Char: rune(l.input[l.pos])}
}

func (l *lexer) readString(quote byte) error {
	start := l.pos
	l.pos++
	for l.pos < len(l.input) {
		if l.input[l.pos] == quote {
			l.tokens = append(l.tokens, Token{
				Type:   TokenString,
				Text:   l.input[start+1 : l.pos],
				Offset: start,
			})
			l.pos++
			return nil
		}
		l.pos++
	}
	return &LexError{Offset: start, Char: rune(quote), Msg: "unterminated string literal"}
}

func (l *lexer) readNumber() error {
	start := l.pos
	if l.input[l.pos] == '-' {
		l.pos++
		if l.pos >= len(l.input) || !isDigit(l.input[l.pos]) {
			return &LexError{Offset: start, Char: '-'}
		}
	}
	for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
		l.pos++
	}
	if l.pos+1 < len(l.input) && l.input[l.pos] == '.' && isDigit(l.input[l.pos+1]) {
		l.pos++
		for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
			l.pos++
		}
	}
	l.tokens = append(l.tokens, Token{Type: TokenNumber, Text: l.input[start:l.pos], Offset: start})
	return nil
}

func (l *lexer) readIdent() {
	start := l.pos
	for l.pos < len(l.input) && isIdentChar(l.input[l.pos]) {
		l.pos++
	}
	text := l.input[start:l.pos]

	tt := TokenIdent
	switch {
	case strings.EqualFold(text, "AND"):
		tt = TokenAnd
	case strings.EqualFold(text, "OR"):
		tt = TokenOr
	}
	l.tokens = append(l.tokens, Token{Type: tt, Text: text, Offset: start})
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isIdentChar(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}
