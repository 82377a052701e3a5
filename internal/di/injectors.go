//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"grailhunter/internal"
	"grailhunter/internal/controllers"
	"grailhunter/internal/providers"
	"grailhunter/internal/services"
	"grailhunter/internal/statistic"
	"grailhunter/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, func(), error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewLimiterProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,
		providers.NewRedisProvider,
		providers.NewApiGuard,

		services.NewUsageService,
		services.NewRateLimitStats,
		services.NewModelClient,
		services.NewGenAIService,
		services.NewRNService,

		statistic.ProvideCompressor,
		statistic.NewFileManager,
		statistic.NewScheduler,

		controllers.NewApiController,
		controllers.NewRNController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil, nil
}
