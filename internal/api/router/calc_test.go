package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sdsdsdw/shunting-yard-algo/internal/apperr"
	"github.com/sdsdsdw/shunting-yard-algo/internal/dto"
	"github.com/sdsdsdw/shunting-yard-algo/internal/storage/in_mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, opts ...CalcRouterOption) (*echo.Echo, *in_mem.InMemStore) {
	t.Helper()

	e := echo.New()
	e.HTTPErrorHandler = apperr.GlobalErrorHandler()
	store := in_mem.NewInMemStore()
	NewCalcRouter(e, store, opts...).Bind()
	return e, store
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestEvaluate_Post(t *testing.T) {
	e, store := newTestRouter(t)

	rec := do(e, http.MethodPost, "/api/v1/evaluate", `{"expression":"3 + 4 * 2"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[dto.EvaluateResponse](t, rec)
	assert.Equal(t, int64(11), resp.Result)
	assert.Equal(t, "3 4 2 * +", resp.RPN)
	require.NotNil(t, resp.ID)

	saved, err := store.Get(t.Context(), *resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "3 + 4 * 2", saved.Expression)
}

func TestEvaluate_PostWithoutRecording(t *testing.T) {
	e, store := newTestRouter(t)

	rec := do(e, http.MethodPost, "/api/v1/evaluate", `{"expression":"-(2 + 3) * 4","record":false}`)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[dto.EvaluateResponse](t, rec)
	assert.Equal(t, int64(-20), resp.Result)
	assert.Nil(t, resp.ID)

	page, err := store.List(t.Context(), 1, 10)
	require.NoError(t, err)
	assert.Zero(t, page.Total)
}

func TestEvaluate_Get(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := do(e, http.MethodGet, "/api/v1/evaluate?expression="+url.QueryEscape("100 / 10 / 2"), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(5), decode[dto.EvaluateResponse](t, rec).Result)
}

func TestEvaluate_Errors(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		expectedCode int
		expectedKind string
		expectedPos  *int
	}{
		{"division by zero", `{"expression":"10 / (5 - 5)"}`, http.StatusUnprocessableEntity, "division_by_zero", nil},
		{"invalid character", `{"expression":"2 $ 3"}`, http.StatusUnprocessableEntity, "invalid_character", intPtr(2)},
		{"mismatched parentheses", `{"expression":"(1 + 2"}`, http.StatusUnprocessableEntity, "mismatched_parentheses", nil},
		{"invalid expression", `{"expression":"1 +"}`, http.StatusUnprocessableEntity, "invalid_expression", nil},
		{"empty", `{"expression":""}`, http.StatusUnprocessableEntity, "invalid_expression", nil},
		{"overflow", `{"expression":"9223372036854775807 + 1"}`, http.StatusUnprocessableEntity, "numeric_overflow", nil},
		{"too long", `{"expression":"1 + 2 + 3 + 4 + 5 + 6 + 7 + 8"}`, http.StatusBadRequest, "", nil},
		{"malformed body", `{"expression":`, http.StatusBadRequest, "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestRouter(t, WithMaxExpressionLength(24))

			rec := do(e, http.MethodPost, "/api/v1/evaluate", tt.body)
			require.Equal(t, tt.expectedCode, rec.Code, rec.Body.String())

			resp := decode[dto.ErrorResponse](t, rec)
			assert.Equal(t, tt.expectedKind, resp.Kind)
			assert.Equal(t, tt.expectedPos, resp.Position)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestEvaluate_FailuresAreRecorded(t *testing.T) {
	e, store := newTestRouter(t)

	rec := do(e, http.MethodPost, "/api/v1/evaluate", `{"expression":"1 / 0"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	page, err := store.List(t.Context(), 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "division_by_zero", page.Items[0].ErrorKind)
	assert.Nil(t, page.Items[0].Result)
}

func TestTokenize(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := do(e, http.MethodPost, "/api/v1/tokenize", `{"expression":"-(12)"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[dto.TokenizeResponse](t, rec)
	assert.Equal(t, []dto.Token{
		{Type: "OPERATOR", Value: "~", Position: 0, Unary: true},
		{Type: "LPAREN", Value: "(", Position: 1},
		{Type: "NUMBER", Value: "12", Position: 2},
		{Type: "RPAREN", Value: ")", Position: 4},
	}, resp.Tokens)
}

func TestPostfix(t *testing.T) {
	e, store := newTestRouter(t)

	rec := do(e, http.MethodPost, "/api/v1/postfix", `{"expression":"(1 + 2) * 3"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[dto.PostfixResponse](t, rec)
	assert.Equal(t, "1 2 + 3 *", resp.RPN)
	assert.Len(t, resp.Postfix, 5)

	page, err := store.List(t.Context(), 1, 10)
	require.NoError(t, err)
	assert.Zero(t, page.Total)

	rec = do(e, http.MethodPost, "/api/v1/postfix", `{"expression":"1 + 2)"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "mismatched_parentheses", decode[dto.ErrorResponse](t, rec).Kind)
}

func TestHistory(t *testing.T) {
	e, _ := newTestRouter(t)

	for _, expr := range []string{"1", "2", "3"} {
		rec := do(e, http.MethodPost, "/api/v1/evaluate", `{"expression":"`+expr+`"}`)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := do(e, http.MethodGet, "/api/v1/history?page=1&size=2", "")
	require.Equal(t, http.StatusOK, rec.Code)

	page := decode[dto.HistoryResponse](t, rec)
	assert.Equal(t, int64(3), page.Total)
	assert.True(t, page.HasMore)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "3", page.Items[0].Expression)
	assert.Equal(t, "2", page.Items[1].Expression)

	rec = do(e, http.MethodGet, "/api/v1/history/"+page.Items[0].ID.String(), "")
	require.Equal(t, http.StatusOK, rec.Code)
	one := decode[dto.EvaluationResponse](t, rec)
	require.NotNil(t, one.Result)
	assert.Equal(t, int64(3), *one.Result)
}

func TestHistory_Errors(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := do(e, http.MethodGet, "/api/v1/history/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(e, http.MethodGet, "/api/v1/history/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodGet, "/api/v1/history?page=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func intPtr(v int) *int {
	return &v
}
