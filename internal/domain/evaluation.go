package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/sdsdsdw/shunting-yard-algo/internal/calc"
	"github.com/sdsdsdw/shunting-yard-algo/internal/exprerr"
	"github.com/sdsdsdw/shunting-yard-algo/internal/token"
)

// Evaluation is one recorded run of the calculator, successful or not.
type Evaluation struct {
	ID         uuid.UUID     `json:"id"`
	Expression string        `json:"expression"`
	Tokens     string        `json:"tokens,omitempty"`
	Postfix    string        `json:"postfix,omitempty"`
	Result     *int64        `json:"result,omitempty"`
	ErrorKind  string        `json:"errorKind,omitempty"`
	Error      string        `json:"error,omitempty"`
	Duration   time.Duration `json:"durationNs"`
	CreatedAt  time.Time     `json:"createdAt"`
}

// NewEvaluation records the outcome of calc.Run.
func NewEvaluation(r *calc.Result, err error, took time.Duration) Evaluation {
	e := Evaluation{
		ID:         uuid.New(),
		Expression: r.Expression,
		Tokens:     token.Format(r.Tokens),
		Postfix:    token.Format(r.Postfix),
		Duration:   took,
		CreatedAt:  time.Now().UTC(),
	}

	if err != nil {
		e.ErrorKind = exprerr.KindOf(err).String()
		e.Error = err.Error()
		return e
	}

	value := r.Value
	e.Result = &value
	return e
}

func (e Evaluation) Succeeded() bool {
	return e.Result != nil
}
