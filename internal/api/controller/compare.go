package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/coviddash/internal/domain"
)

type compareRequest struct {
	Primary string `query:"primary" validate:"required"`
	Compare string `query:"compare" validate:"required"`
	Metric  string `query:"metric" validate:"required"`
	Window  int    `query:"window" validate:"omitempty,min=1,max=90"`
}

func (c *Controller) ComparisonChart(ctx echo.Context) error {
	var req compareRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	comparison, err := c.service.ComparisonChart(
		ctx.Request().Context(),
		req.Primary,
		req.Compare,
		domain.MetricName(req.Metric),
		req.Window,
	)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, comparison)
}
