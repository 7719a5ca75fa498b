package http

import (
	"errors"
	"fmt"
	"net/http"

	"optiroute/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

// ErrorHandler renders every unhandled error in the API error shape.
func ErrorHandler(err error, ctx echo.Context) {
	if ctx.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := http.StatusText(code)

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		code = httpErr.Code
		message = fmt.Sprint(httpErr.Message)
	}

	if ctx.Request().Method == http.MethodHead {
		_ = ctx.NoContent(code)
		return
	}
	_ = ctx.JSON(code, servers.Error{Code: code, Message: message})
}
