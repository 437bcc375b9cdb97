package controller

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/coviddash/internal/domain"
)

func (c *Controller) KeyMetricsPanel(ctx echo.Context) error {
	panel, err := c.service.KeyMetricsPanel(ctx.Param("location"))
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, panel)
}

func (c *Controller) RollingSeries(ctx echo.Context) error {
	metric := ctx.QueryParams().Get("metric")
	if metric == "" {
		return fmt.Errorf("empty metric")
	}

	window, err := strconv.Atoi(ctx.QueryParams().Get("window"))
	if err != nil {
		window = 0
	}

	series, err := c.service.RollingSeries(ctx.Param("location"), domain.MetricName(metric), window)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, series)
}
