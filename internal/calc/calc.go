package calc

import (
	"sync"

	"github.com/sdsdsdw/shunting-yard-algo/internal/eval"
	"github.com/sdsdsdw/shunting-yard-algo/internal/parser"
	"github.com/sdsdsdw/shunting-yard-algo/internal/token"
)

// Result holds the intermediate sequences of one pipeline run.
// Stages that did not run leave their fields empty.
type Result struct {
	Expression string
	Tokens     []token.Token
	Postfix    []token.Token
	Value      int64
}

// Run tokenizes, converts and evaluates expression, stopping at the first
// failing stage. The partially filled Result is returned with the error.
func Run(expression string) (*Result, error) {
	r := &Result{Expression: expression}

	tokens, err := token.Tokenize(expression)
	if err != nil {
		return r, err
	}
	r.Tokens = tokens

	postfix, err := parser.ToPostfix(tokens)
	if err != nil {
		return r, err
	}
	r.Postfix = postfix

	value, err := eval.EvalPostfix(postfix)
	if err != nil {
		return r, err
	}
	r.Value = value

	return r, nil
}

// Evaluate returns the integer value of expression.
func Evaluate(expression string) (int64, error) {
	r, err := Run(expression)
	if err != nil {
		return 0, err
	}
	return r.Value, nil
}

// Calculator runs expressions and remembers the most recent run for
// callers that want to print its intermediate state. Safe for concurrent use.
type Calculator struct {
	mu   sync.Mutex
	last *Result
}

func NewCalculator() *Calculator {
	return &Calculator{}
}

func (c *Calculator) Evaluate(expression string) (int64, error) {
	r, err := c.Run(expression)
	if err != nil {
		return 0, err
	}
	return r.Value, nil
}

func (c *Calculator) Run(expression string) (*Result, error) {
	r, err := Run(expression)

	c.mu.Lock()
	c.last = r
	c.mu.Unlock()

	return r, err
}

// Last returns the most recent run, or nil before the first one.
func (c *Calculator) Last() *Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}
