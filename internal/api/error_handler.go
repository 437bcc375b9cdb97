package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/coviddash/internal/domain"
	"github.com/ougirez/coviddash/internal/pkg/constants"
	"github.com/ougirez/coviddash/internal/pkg/logger"
)

func httpErrorHandler(err error, c echo.Context) {
	msg := err.Error()
	code := http.StatusInternalServerError
	walk := err
	for walk != nil {
		if ce, ok := walk.(*constants.CodedError); ok {
			code = ce.Code()
			break
		}
		if he, ok := walk.(*echo.HTTPError); ok {
			code = he.Code
			break
		}
		walk = errors.Unwrap(walk)
	}

	// a location without data is an expected outcome, not an error
	if code >= http.StatusInternalServerError {
		logger.Errorf(c.Request().Context(), "%s %s: %s", c.Request().Method, c.Request().RequestURI, msg)
	} else {
		logger.Debugf(c.Request().Context(), "%s %s: %s", c.Request().Method, c.Request().RequestURI, msg)
	}

	_ = c.JSON(code, domain.ErrorResponse{
		Message: msg,
		Code:    code,
	})
}
