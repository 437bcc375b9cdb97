package controller

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/coviddash/internal/domain"
)

func (c *Controller) ChoroplethLatest(ctx echo.Context) error {
	metric := ctx.QueryParams().Get("metric")
	if metric == "" {
		return fmt.Errorf("empty metric")
	}

	values, err := c.service.LatestMetricForChoropleth(domain.MetricName(metric))
	if err != nil {
		return err
	}

	type response struct {
		Metric string                   `json:"metric"`
		Values map[string]domain.Metric `json:"values"`
	}

	return ctx.JSON(http.StatusOK, response{Metric: metric, Values: values})
}
