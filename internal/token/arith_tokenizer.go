package token

import (
	"unicode/utf8"

	"github.com/sdsdsdw/shunting-yard-algo/internal/exprerr"
)

// ArithTokenizer splits an arithmetic expression into tokens. It keeps cursor
// state between calls and must not be shared between goroutines; use the
// package level Tokenize for one-off calls.
type ArithTokenizer struct {
	input string
	pos   int
}

func NewArithTokenizer() *ArithTokenizer {
	return &ArithTokenizer{}
}

// Tokenize converts the input string into a slice of Tokens.
// Example: Input: `-5 + (3 * 2)`
func (t *ArithTokenizer) Tokenize(input string) ([]Token, error) {
	t.input = input
	t.pos = 0

	var tokens []Token

	for t.pos < len(t.input) {
		ch := t.input[t.pos]
		switch {
		case isSpace(ch):
			t.pos++
		case isDigit(ch):
			tokens = append(tokens, t.readNumber())
		case ch == '+':
			tokens = append(tokens, NewOperator(Add, t.pos))
			t.pos++
		case ch == '*':
			tokens = append(tokens, NewOperator(Mul, t.pos))
			t.pos++
		case ch == '/':
			tokens = append(tokens, NewOperator(Div, t.pos))
			t.pos++
		case ch == '-':
			tokens = append(tokens, NewOperator(minusKind(tokens), t.pos))
			t.pos++
		case ch == '(':
			tokens = append(tokens, NewLParen(t.pos))
			t.pos++
		case ch == ')':
			tokens = append(tokens, NewRParen(t.pos))
			t.pos++
		default:
			r, _ := utf8.DecodeRuneInString(t.input[t.pos:])
			return nil, exprerr.NewInvalidCharacter(r, t.pos)
		}
	}

	return tokens, nil
}

func (t *ArithTokenizer) readNumber() Token {
	start := t.pos
	for t.pos < len(t.input) && isDigit(t.input[t.pos]) {
		t.pos++
	}
	return NewNumber(t.input[start:t.pos], start)
}

// minusKind decides whether '-' negates or subtracts from the previously
// emitted token: negation at the start, after an operator or after '('.
func minusKind(tokens []Token) Op {
	if len(tokens) == 0 {
		return Neg
	}
	switch tokens[len(tokens)-1].Type {
	case OPERATOR, LPAREN:
		return Neg
	default:
		return Sub
	}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
}

// Tokenize tokenizes expression with a fresh ArithTokenizer.
func Tokenize(expression string) ([]Token, error) {
	return NewArithTokenizer().Tokenize(expression)
}
