package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (c *Controller) Reload(ctx echo.Context) error {
	if err := c.service.Reload(ctx.Request().Context()); err != nil {
		return err
	}

	locations, err := c.service.ListLocations()
	if err != nil {
		return err
	}

	type response struct {
		Locations int `json:"locations"`
	}

	return ctx.JSON(http.StatusOK, response{Locations: len(locations)})
}
