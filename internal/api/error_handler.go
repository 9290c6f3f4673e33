package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/ougirez/fieldecon/internal/domain"
	"github.com/ougirez/fieldecon/internal/pkg/constants"
	"github.com/ougirez/fieldecon/internal/pkg/logger"
)

func httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	msg := err.Error()
	code := http.StatusInternalServerError

	var (
		coded      *constants.CodedError
		httpErr    *echo.HTTPError
		validation validator.ValidationErrors
	)
	switch {
	case errors.As(err, &coded):
		code = coded.Code()
	case errors.As(err, &validation):
		code = http.StatusBadRequest
	case errors.As(err, &httpErr):
		code = httpErr.Code
		msg = fmt.Sprint(httpErr.Message)
	}

	if code >= http.StatusInternalServerError {
		logger.Errorf(c.Request().Context(), "%s %s: %s", c.Request().Method, c.Path(), err.Error())
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, domain.ErrorResponse{
		Message: msg,
		Code:    code,
	})
}
