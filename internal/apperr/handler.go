package apperr

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sdsdsdw/shunting-yard-algo/internal/dto"
	"github.com/sdsdsdw/shunting-yard-algo/internal/exprerr"
	"github.com/sdsdsdw/shunting-yard-algo/internal/storage"
)

func GlobalErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var ee *exprerr.Error
		if errors.As(err, &ee) {
			_ = c.JSON(http.StatusUnprocessableEntity, ExpressionErrorResponse(ee))
			return
		}

		var ve *ValidationError
		if errors.As(err, &ve) {
			_ = c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: ve.Message, Title: "validation error"})
			return
		}

		if errors.Is(err, storage.ErrNotFound) {
			_ = c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: storage.ErrNotFound.Error()})
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			msg := fmt.Sprintf("%v", he.Message)
			_ = c.JSON(he.Code, dto.ErrorResponse{Error: msg})
			return
		}

		slog.Error("Unhandled error", "error", err)
		_ = c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}
}

// ExpressionErrorResponse maps an evaluation failure to its response body.
func ExpressionErrorResponse(ee *exprerr.Error) dto.ErrorResponse {
	resp := dto.ErrorResponse{
		Error: ee.Error(),
		Title: "expression error",
		Kind:  ee.Kind.String(),
	}
	if ee.Kind == exprerr.InvalidCharacter {
		pos := ee.Pos
		resp.Position = &pos
	}
	return resp
}
