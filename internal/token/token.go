package token

import "strings"

type Type int

const (
	NUMBER Type = iota
	OPERATOR
	LPAREN
	RPAREN
)

func (t Type) String() string {
	switch t {
	case NUMBER:
		return "NUMBER"
	case OPERATOR:
		return "OPERATOR"
	case LPAREN:
		return "LPAREN"
	case RPAREN:
		return "RPAREN"
	default:
		return "UNKNOWN"
	}
}

// Token represents a lexical token with its type and literal value.
// Op is only meaningful for OPERATOR tokens; Pos is the byte offset of the
// token in the source expression.
type Token struct {
	Type  Type
	Value string
	Op    Op
	Pos   int
}

func NewNumber(digits string, pos int) Token {
	return Token{Type: NUMBER, Value: digits, Pos: pos}
}

func NewOperator(op Op, pos int) Token {
	return Token{Type: OPERATOR, Value: op.String(), Op: op, Pos: pos}
}

func NewLParen(pos int) Token {
	return Token{Type: LPAREN, Value: "(", Pos: pos}
}

func NewRParen(pos int) Token {
	return Token{Type: RPAREN, Value: ")", Pos: pos}
}

func (t Token) IsOperator() bool {
	return t.Type == OPERATOR
}

func (t Token) String() string {
	return t.Value
}

// Format renders tokens as space separated texts, e.g. "5 ~ 3 +".
func Format(tokens []Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = tok.Value
	}
	return strings.Join(parts, " ")
}

// Source renders an infix sequence back into text the tokenizer accepts.
// Unary negation is written as '-'.
func Source(tokens []Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		if tok.Type == OPERATOR && tok.Op == Neg {
			parts[i] = "-"
			continue
		}
		parts[i] = tok.Value
	}
	return strings.Join(parts, " ")
}
