package eval

import (
	"errors"
	"strconv"

	"github.com/sdsdsdw/shunting-yard-algo/internal/exprerr"
	"github.com/sdsdsdw/shunting-yard-algo/internal/token"
	"github.com/sdsdsdw/shunting-yard-algo/pkg/stack"
)

// EvalPostfix evaluates a postfix (RPN) token sequence on an operand stack.
// Exactly one value must remain once every token has been consumed.
func EvalPostfix(tokens []token.Token) (int64, error) {
	operands := stack.New[int64](len(tokens))

	for _, tok := range tokens {
		switch tok.Type {
		case token.NUMBER:
			n, err := parseLiteral(tok.Value)
			if err != nil {
				return 0, err
			}
			operands.Push(n)
		case token.OPERATOR:
			if err := applyOperator(operands, tok.Op); err != nil {
				return 0, err
			}
		default:
			return 0, exprerr.Newf(exprerr.InvalidExpression,
				"invalid expression: unexpected %s in postfix sequence", tok.Type)
		}
	}

	if operands.Len() != 1 {
		return 0, exprerr.Newf(exprerr.InvalidExpression,
			"invalid expression: %d values left after evaluation, expected 1", operands.Len())
	}

	result, _ := operands.Pop()
	return result, nil
}

func parseLiteral(digits string) (int64, error) {
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, exprerr.Newf(exprerr.NumericOverflow, "numeric overflow: literal %s does not fit in 64 bits", digits)
		}
		return 0, exprerr.Newf(exprerr.InvalidExpression, "invalid expression: bad number literal %q", digits)
	}
	return n, nil
}

func applyOperator(operands *stack.Stack[int64], op token.Op) error {
	if op.Arity() == 0 {
		return exprerr.Newf(exprerr.InvalidExpression, "invalid expression: unknown operator %s", op)
	}
	if operands.Len() < op.Arity() {
		return exprerr.Newf(exprerr.InvalidExpression,
			"invalid expression: operator %s needs %d operand(s), have %d", op, op.Arity(), operands.Len())
	}

	if op == token.Neg {
		a, _ := operands.Pop()
		v, err := negate(a)
		if err != nil {
			return err
		}
		operands.Push(v)
		return nil
	}

	b, _ := operands.Pop()
	a, _ := operands.Pop()

	v, err := binary(op, a, b)
	if err != nil {
		return err
	}
	operands.Push(v)
	return nil
}

func binary(op token.Op, a, b int64) (int64, error) {
	switch op {
	case token.Add:
		return add(a, b)
	case token.Sub:
		return sub(a, b)
	case token.Mul:
		return mul(a, b)
	case token.Div:
		return div(a, b)
	default:
		return 0, exprerr.Newf(exprerr.InvalidExpression, "invalid expression: unknown operator %s", op)
	}
}
