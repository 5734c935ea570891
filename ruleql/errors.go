package ruleql

import (
	"fmt"
	"strings"
)

// LexError reports input the lexer cannot tokenize. Offset is the byte
// position of the offending character.
type LexError struct {
	Offset int
	Char   rune
	Msg    string // optional; set for errors beyond a single bad character
}

func (e *LexError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("lex error at offset %d: %s", e.Offset, e.Msg)
	}
	return fmt.Sprintf("lex error at offset %d: unrecognized character %q", e.Offset, e.Char)
}

// ParseError reports malformed rule syntax. Offset is the byte position of
// the token that could not be accepted.
type ParseError struct {
	Offset   int
	Expected []TokenType
	Found    TokenType
}

func (e *ParseError) Error() string {
	names := make([]string, len(e.Expected))
	for i, tt := range e.Expected {
		names[i] = tt.String()
	}
	return fmt.Sprintf("parse error at offset %d: expected %s, found %s",
		e.Offset, strings.Join(names, " or "), e.Found)
}

// CombineError reports an invalid combination request.
type CombineError struct {
	Reason string
}

func (e *CombineError) Error() string {
	return "combine error: " + e.Reason
}

// EvalErrorKind classifies evaluation failures.
type EvalErrorKind int

const (
	MissingAttribute EvalErrorKind = iota
	TypeMismatch
	UnsupportedOperator
)

func (k EvalErrorKind) String() string {
	switch k {
	case MissingAttribute:
		return "missing attribute"
	case TypeMismatch:
		return "type mismatch"
	case UnsupportedOperator:
		return "unsupported operator"
	default:
		return fmt.Sprintf("eval error kind(%d)", int(k))
	}
}

// EvalError reports a failed evaluation. Attr names the attribute involved,
// where one is.
type EvalError struct {
	Kind   EvalErrorKind
	Attr   string
	Detail string
}

func (e *EvalError) Error() string {
	switch {
	case e.Attr != "" && e.Detail != "":
		return fmt.Sprintf("eval error: %s: %s: %s", e.Kind, e.Attr, e.Detail)
	case e.Attr != "":
		return fmt.Sprintf("eval error: %s: %s", e.Kind, e.Attr)
	default:
		return fmt.Sprintf("eval error: %s: %s", e.Kind, e.Detail)
	}
}
