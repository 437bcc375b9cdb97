package api

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/ougirez/coviddash/internal/api/controller"
	"github.com/ougirez/coviddash/internal/pkg/constants"
	"github.com/ougirez/coviddash/internal/pkg/logger"
	"github.com/ougirez/coviddash/internal/service/query"
	"github.com/spf13/viper"
)

type APIService struct {
	router       *echo.Echo
	queryService *query.Service
}

func (svc *APIService) Serve(addr string) {
	logger.Fatal(context.Background(), svc.router.Start(addr))
}

func (svc *APIService) Shutdown(ctx context.Context) error {
	return svc.router.Shutdown(ctx)
}

func NewAPIService(queryService *query.Service) (*APIService, error) {
	svc := &APIService{router: echo.New(), queryService: queryService}

	svc.router.HideBanner = true
	svc.router.JSONSerializer = sonicSerializer{}
	svc.router.Validator = NewValidator()
	svc.router.Binder = NewBinder()
	svc.router.Use(middleware.Logger())
	svc.router.Use(svc.RequestIDMiddleware)
	svc.router.HTTPErrorHandler = httpErrorHandler
	svc.router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{viper.GetString(constants.ViperKeyCORSOrigin)},
		AllowMethods: []string{echo.GET, echo.POST},
		AllowHeaders: []string{"Content-Type", "Authorization"},
	}))

	api := svc.router.Group("/api/v1")
	cntrl := controller.NewController(queryService)

	api.GET("/locations", cntrl.ListLocations)
	api.GET("/map", cntrl.ChoroplethLatest)
	api.GET("/compare", cntrl.ComparisonChart)

	countries := api.Group("/countries")
	countries.GET("/:location/key-metrics", cntrl.KeyMetricsPanel)
	countries.GET("/:location/series", cntrl.RollingSeries)

	admin := api.Group("/admin", svc.AdminMiddleware)
	admin.POST("/reload", cntrl.Reload)

	return svc, nil
}

// Router exposes the echo instance for handler-level tests.
func (svc *APIService) Router() *echo.Echo {
	return svc.router
}
