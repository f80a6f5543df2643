package parser

import (
	"github.com/sdsdsdw/shunting-yard-algo/internal/exprerr"
	"github.com/sdsdsdw/shunting-yard-algo/internal/token"
	"github.com/sdsdsdw/shunting-yard-algo/pkg/stack"
)

// ToPostfix reorders an infix token sequence into postfix (RPN) order using
// the shunting-yard algorithm. Only parenthesis nesting is checked here;
// operand counts are left to the evaluator.
func ToPostfix(tokens []token.Token) ([]token.Token, error) {
	output := make([]token.Token, 0, len(tokens))
	operators := stack.New[token.Token](len(tokens))

	for _, tok := range tokens {
		switch tok.Type {
		case token.NUMBER:
			output = append(output, tok)
		case token.OPERATOR:
			for {
				top, ok := operators.Peek()
				if !ok || top.Type != token.OPERATOR || !shouldPop(top.Op, tok.Op) {
					break
				}
				operators.Pop()
				output = append(output, top)
			}
			operators.Push(tok)
		case token.LPAREN:
			operators.Push(tok)
		case token.RPAREN:
			if !popUntilLParen(operators, &output) {
				return nil, exprerr.Newf(exprerr.MismatchedParentheses,
					"mismatched parentheses: unmatched ')' at position %d", tok.Pos)
			}
		default:
			return nil, exprerr.Newf(exprerr.InvalidExpression,
				"invalid expression: unexpected %s token %q", tok.Type, tok.Value)
		}
	}

	for {
		top, ok := operators.Pop()
		if !ok {
			break
		}
		if top.Type == token.LPAREN {
			return nil, exprerr.Newf(exprerr.MismatchedParentheses,
				"mismatched parentheses: unclosed '(' at position %d", top.Pos)
		}
		output = append(output, top)
	}

	return output, nil
}

// shouldPop reports whether the operator on top of the stack must be emitted
// before incoming is pushed. Equal precedence pops only for left associative
// incoming operators, so chained negations stay right to left.
func shouldPop(top, incoming token.Op) bool {
	if top.Precedence() > incoming.Precedence() {
		return true
	}
	return top.Precedence() == incoming.Precedence() && incoming.Associativity() == token.LeftAssoc
}

// popUntilLParen moves operators to output until the matching '(' is found
// and discarded. It returns false when the stack runs out first.
func popUntilLParen(operators *stack.Stack[token.Token], output *[]token.Token) bool {
	for {
		top, ok := operators.Pop()
		if !ok {
			return false
		}
		if top.Type == token.LPAREN {
			return true
		}
		*output = append(*output, top)
	}
}
