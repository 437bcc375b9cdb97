package main

import (
	"context"
	"strings"
	"time"

	"github.com/ougirez/coviddash/internal/api"
	"github.com/ougirez/coviddash/internal/pkg/constants"
	"github.com/ougirez/coviddash/internal/pkg/logger"
	"github.com/ougirez/coviddash/internal/service/dataset"
	"github.com/ougirez/coviddash/internal/service/fetcher"
	"github.com/ougirez/coviddash/internal/service/query"
	"github.com/spf13/viper"
)

const sourceURL = "https://raw.githubusercontent.com/owid/covid-19-data/master/public/data/owid-covid-data.csv"

func initConfig(ctx context.Context) {
	viper.SetDefault(constants.ViperKeySourceURL, sourceURL)
	viper.SetDefault(constants.ViperKeyFetchTimeout, 10*time.Second)
	viper.SetDefault(constants.ViperKeyCachePath, "dataset/owid-covid-data.csv")
	viper.SetDefault(constants.ViperKeyListenAddr, ":8080")
	viper.SetDefault(constants.ViperKeyCORSOrigin, "http://localhost:3000")
	viper.SetDefault(constants.ViperKeyWindowDays, 7)
	viper.SetDefault(constants.ViperKeyReloadRetries, 3)

	viper.SetEnvPrefix("COVIDDASH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			logger.Fatal(ctx, err)
		}
	}
}

func main() {
	ctx := context.Background()
	initConfig(ctx)

	fetcherService := fetcher.NewFetcherService(
		viper.GetString(constants.ViperKeySourceURL),
		viper.GetString(constants.ViperKeyCachePath),
		viper.GetDuration(constants.ViperKeyFetchTimeout),
	)
	queryService := query.NewQueryService(fetcherService, dataset.NewDatasetService(), query.Options{
		WindowDays:    viper.GetInt(constants.ViperKeyWindowDays),
		ReloadRetries: viper.GetUint64(constants.ViperKeyReloadRetries),
	})

	// no partial dashboard: data must be in place before serving
	if err := queryService.Init(ctx); err != nil {
		logger.Fatal(ctx, err)
	}

	apiService, err := api.NewAPIService(queryService)
	if err != nil {
		logger.Fatal(ctx, err)
	}

	apiService.Serve(viper.GetString(constants.ViperKeyListenAddr))
}
