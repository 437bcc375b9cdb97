package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/ougirez/coviddash/internal/pkg/constants"
)

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return constants.NewCodedError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// Binder binds and validates in one step so controllers can work with a
// checked request struct.
type Binder struct {
	binder echo.DefaultBinder
}

func NewBinder() *Binder {
	return &Binder{}
}

func (b *Binder) Bind(i interface{}, ctx echo.Context) error {
	if err := b.binder.Bind(i, ctx); err != nil {
		return constants.NewCodedError(http.StatusBadRequest, err.Error())
	}
	return ctx.Validate(i)
}
