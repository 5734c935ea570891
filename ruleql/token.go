package ruleql

import "fmt"

// TokenType identifies the lexical class of a token.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenIdent
	TokenNumber
	TokenString
	TokenCompare // one of > >= < <= = !=
	TokenAnd
	TokenOr
	TokenLParen
	TokenRParen
)

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "end of input"
	case TokenIdent:
		return "identifier"
	case TokenNumber:
		return "number"
	case TokenString:
		return "string"
	case TokenCompare:
		return "comparison operator"
	case TokenAnd:
		return "AND"
	case TokenOr:
		return "OR"
	case TokenLParen:
		return "'('"
	case TokenRParen:
		return "')'"
	default:
		return fmt.Sprintf("token(%d)", int(t))
	}
}

// Token is a single lexical element of a rule expression.
// Offset is the byte position of the token's first character in the input.
// For string tokens, Text holds the unquoted contents.
type Token struct {
	Type   TokenType
	Text   string
	Offset int
}
