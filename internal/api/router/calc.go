package router

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sdsdsdw/shunting-yard-algo/internal/apperr"
	"github.com/sdsdsdw/shunting-yard-algo/internal/calc"
	"github.com/sdsdsdw/shunting-yard-algo/internal/dto"
	"github.com/sdsdsdw/shunting-yard-algo/internal/parser"
	"github.com/sdsdsdw/shunting-yard-algo/internal/processor"
	"github.com/sdsdsdw/shunting-yard-algo/internal/storage"
	"github.com/sdsdsdw/shunting-yard-algo/internal/token"
	"github.com/sdsdsdw/shunting-yard-algo/pkg/pagination"
)

const defaultMaxExpressionLength = 4096

type CalcRouter struct {
	e         *echo.Echo
	processor *processor.EvaluationProcessor
	history   storage.Reader
	maxLen    int
}

type CalcRouterOption func(*CalcRouter)

// WithMaxExpressionLength rejects longer expressions with 400 before evaluating them.
func WithMaxExpressionLength(n int) CalcRouterOption {
	return func(r *CalcRouter) {
		if n > 0 {
			r.maxLen = n
		}
	}
}

func NewCalcRouter(e *echo.Echo, store storage.Store, opts ...CalcRouterOption) *CalcRouter {
	r := &CalcRouter{
		e:         e,
		processor: processor.New(store),
		history:   store,
		maxLen:    defaultMaxExpressionLength,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *CalcRouter) Bind() {
	g := r.e.Group("/api/v1")
	g.POST("/evaluate", r.evaluatePost)
	g.GET("/evaluate", r.evaluateGet)
	g.POST("/tokenize", r.tokenize)
	g.POST("/postfix", r.postfix)
	g.GET("/history", r.listHistory)
	g.GET("/history/:id", r.getHistory)
}

// evaluatePost godoc
// @Summary Evaluate an expression
// @Description Tokenizes, converts to RPN and evaluates an integer expression. The run is recorded in history unless record is false.
// @Tags calc
// @Accept json
// @Produce json
// @Param request body dto.ExpressionRequest true "Expression"
// @Success 200 {object} dto.EvaluateResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/v1/evaluate [post]
func (r *CalcRouter) evaluatePost(c echo.Context) error {
	req, err := r.bindExpression(c)
	if err != nil {
		return err
	}
	record := req.Record == nil || *req.Record
	return r.evaluate(c, req.Expression, record)
}

// evaluateGet godoc
// @Summary Evaluate an expression from the query string
// @Description Same as POST /api/v1/evaluate. The expression must be URL encoded.
// @Tags calc
// @Produce json
// @Param expression query string true "Expression" example(1 + 2)
// @Success 200 {object} dto.EvaluateResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/v1/evaluate [get]
func (r *CalcRouter) evaluateGet(c echo.Context) error {
	expr := c.QueryParam("expression")
	if err := r.validateExpression(expr); err != nil {
		return err
	}
	return r.evaluate(c, expr, true)
}

func (r *CalcRouter) evaluate(c echo.Context, expr string, record bool) error {
	if !record {
		start := time.Now()
		res, err := calc.Run(expr)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, dto.EvaluateResponse{
			Expression: expr,
			Result:     res.Value,
			RPN:        token.Format(res.Postfix),
			DurationNs: time.Since(start).Nanoseconds(),
		})
	}

	evaluation, err := r.processor.Process(c.Request().Context(), expr)
	if err != nil {
		return err
	}

	id := evaluation.ID
	return c.JSON(http.StatusOK, dto.EvaluateResponse{
		ID:         &id,
		Expression: expr,
		Result:     *evaluation.Result,
		RPN:        evaluation.Postfix,
		DurationNs: evaluation.Duration.Nanoseconds(),
	})
}

// tokenize godoc
// @Summary Tokenize an expression
// @Tags calc
// @Accept json
// @Produce json
// @Param request body dto.ExpressionRequest true "Expression"
// @Success 200 {object} dto.TokenizeResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /api/v1/tokenize [post]
func (r *CalcRouter) tokenize(c echo.Context) error {
	req, err := r.bindExpression(c)
	if err != nil {
		return err
	}

	tokens, err := token.Tokenize(req.Expression)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.TokenizeResponse{
		Expression: req.Expression,
		Tokens:     dto.NewTokens(tokens),
	})
}

// postfix godoc
// @Summary Convert an expression to Reverse Polish Notation
// @Tags calc
// @Accept json
// @Produce json
// @Param request body dto.ExpressionRequest true "Expression"
// @Success 200 {object} dto.PostfixResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /api/v1/postfix [post]
func (r *CalcRouter) postfix(c echo.Context) error {
	req, err := r.bindExpression(c)
	if err != nil {
		return err
	}

	tokens, err := token.Tokenize(req.Expression)
	if err != nil {
		return err
	}
	postfix, err := parser.ToPostfix(tokens)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.NewPostfixResponse(&calc.Result{
		Expression: req.Expression,
		Tokens:     tokens,
		Postfix:    postfix,
	}))
}

// listHistory godoc
// @Summary List recorded evaluations
// @Description Newest first, offset paginated.
// @Tags history
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} dto.HistoryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/v1/history [get]
func (r *CalcRouter) listHistory(c echo.Context) error {
	var req pagination.OffsetRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid pagination parameters", err)
	}
	_ = req.Validate()

	page, err := r.history.List(c.Request().Context(), req.Page, req.Size)
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}

	items := make([]dto.EvaluationResponse, 0, len(page.Items))
	for _, e := range page.Items {
		items = append(items, dto.NewEvaluationResponse(e))
	}

	return c.JSON(http.StatusOK, dto.HistoryResponse{
		Items:   items,
		Total:   page.Total,
		Page:    page.Page,
		Size:    page.Size,
		HasMore: page.HasMore,
	})
}

// getHistory godoc
// @Summary Get one recorded evaluation
// @Tags history
// @Produce json
// @Param id path string true "Evaluation ID" format(uuid)
// @Success 200 {object} dto.EvaluationResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/v1/history/{id} [get]
func (r *CalcRouter) getHistory(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.NewValidationWrap("invalid evaluation id", err)
	}

	evaluation, err := r.history.Get(c.Request().Context(), id)
	if err != nil {
		return fmt.Errorf("failed to get evaluation %s: %w", id, err)
	}

	return c.JSON(http.StatusOK, dto.NewEvaluationResponse(*evaluation))
}

func (r *CalcRouter) bindExpression(c echo.Context) (*dto.ExpressionRequest, error) {
	var req dto.ExpressionRequest
	if err := c.Bind(&req); err != nil {
		return nil, apperr.NewValidationWrap("invalid request body", err)
	}
	if err := r.validateExpression(req.Expression); err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *CalcRouter) validateExpression(expr string) error {
	if len(expr) > r.maxLen {
		return apperr.NewValidation(fmt.Sprintf("expression exceeds %d bytes", r.maxLen))
	}
	return nil
}
