package eval

import (
	"math"

	"github.com/sdsdsdw/shunting-yard-algo/internal/exprerr"
)

func overflow(a int64, op string, b int64) error {
	return exprerr.Newf(exprerr.NumericOverflow, "numeric overflow: %d %s %d", a, op, b)
}

func add(a, b int64) (int64, error) {
	c := a + b
	if (c > a) != (b > 0) {
		return 0, overflow(a, "+", b)
	}
	return c, nil
}

func sub(a, b int64) (int64, error) {
	c := a - b
	if (c < a) != (b > 0) {
		return 0, overflow(a, "-", b)
	}
	return c, nil
}

func mul(a, b int64) (int64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	c := a * b
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) || c/b != a {
		return 0, overflow(a, "*", b)
	}
	return c, nil
}

// div truncates toward zero.
func div(a, b int64) (int64, error) {
	if b == 0 {
		return 0, exprerr.Newf(exprerr.DivisionByZero, "division by zero: %d / 0", a)
	}
	if a == math.MinInt64 && b == -1 {
		return 0, overflow(a, "/", b)
	}
	return a / b, nil
}

func negate(a int64) (int64, error) {
	if a == math.MinInt64 {
		return 0, exprerr.Newf(exprerr.NumericOverflow, "numeric overflow: -(%d)", a)
	}
	return -a, nil
}
