package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/sdsdsdw/shunting-yard-algo/internal/calc"
	"github.com/sdsdsdw/shunting-yard-algo/internal/domain"
	"github.com/sdsdsdw/shunting-yard-algo/internal/token"
)

// ExpressionRequest is the body accepted by every expression endpoint.
type ExpressionRequest struct {
	Expression string `json:"expression" example:"3 + 4 * 2"`
	Record     *bool  `json:"record,omitempty"`
}

// Token is the wire form of a single token.
type Token struct {
	Type     string `json:"type" example:"NUMBER"`
	Value    string `json:"value" example:"3"`
	Position int    `json:"position" example:"0"`
	Unary    bool   `json:"unary,omitempty"`
}

type TokenizeResponse struct {
	Expression string  `json:"expression"`
	Tokens     []Token `json:"tokens"`
}

type PostfixResponse struct {
	Expression string  `json:"expression"`
	Postfix    []Token `json:"postfix"`
	RPN        string  `json:"rpn" example:"3 4 2 * +"`
}

type EvaluateResponse struct {
	ID         *uuid.UUID `json:"id,omitempty"`
	Expression string     `json:"expression"`
	Result     int64      `json:"result" example:"11"`
	RPN        string     `json:"rpn" example:"3 4 2 * +"`
	DurationNs int64      `json:"durationNs"`
}

type EvaluationResponse struct {
	ID         uuid.UUID `json:"id"`
	Expression string    `json:"expression"`
	Tokens     string    `json:"tokens,omitempty"`
	RPN        string    `json:"rpn,omitempty"`
	Result     *int64    `json:"result,omitempty"`
	ErrorKind  string    `json:"errorKind,omitempty"`
	Error      string    `json:"error,omitempty"`
	DurationNs int64     `json:"durationNs"`
	CreatedAt  time.Time `json:"createdAt"`
}

type HistoryResponse struct {
	Items   []EvaluationResponse `json:"items"`
	Total   int64                `json:"total"`
	Page    int                  `json:"page"`
	Size    int                  `json:"size"`
	HasMore bool                 `json:"has_more"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error    string `json:"error" example:"division by zero"`
	Title    string `json:"title,omitempty" example:"expression error"`
	Kind     string `json:"kind,omitempty" example:"division_by_zero"`
	Position *int   `json:"position,omitempty"`
}

func NewTokens(tokens []token.Token) []Token {
	out := make([]Token, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, Token{
			Type:     t.Type.String(),
			Value:    t.Value,
			Position: t.Pos,
			Unary:    t.Op == token.Neg,
		})
	}
	return out
}

func NewPostfixResponse(r *calc.Result) PostfixResponse {
	return PostfixResponse{
		Expression: r.Expression,
		Postfix:    NewTokens(r.Postfix),
		RPN:        token.Format(r.Postfix),
	}
}

func NewEvaluationResponse(e domain.Evaluation) EvaluationResponse {
	return EvaluationResponse{
		ID:         e.ID,
		Expression: e.Expression,
		Tokens:     e.Tokens,
		RPN:        e.Postfix,
		Result:     e.Result,
		ErrorKind:  e.ErrorKind,
		Error:      e.Error,
		DurationNs: e.Duration.Nanoseconds(),
		CreatedAt:  e.CreatedAt,
	}
}
