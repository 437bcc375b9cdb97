package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/ougirez/coviddash/internal/pkg/constants"
	"github.com/ougirez/coviddash/internal/pkg/utils"
	"github.com/spf13/viper"
)

// AdminMiddleware guards the operator surface (reload). The token cookie
// carries a signed secret that must match the configured one.
func (svc *APIService) AdminMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		cookie, err := ctx.Cookie(constants.CookieKeySecretToken)
		if err != nil {
			return constants.ErrUnauthorized
		}

		token, err := utils.ParseAuthToken(cookie.Value)
		if err != nil {
			return err
		}

		if token.Secret != viper.GetString(constants.ViperSecretKey) {
			return constants.ErrUnauthorized
		}

		return next(ctx)
	}
}

// RequestIDMiddleware tags every request and response with an id for log
// correlation.
func (svc *APIService) RequestIDMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		id := ctx.Request().Header.Get(constants.HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		ctx.Response().Header().Set(constants.HeaderRequestID, id)

		return next(ctx)
	}
}
