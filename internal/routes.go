package internal

import (
	"grailhunter/internal/controllers"
	"grailhunter/internal/providers"
)

func InitRoutes(apiController *controllers.ApiController, rnController *controllers.RNController, guard providers.Middleware) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()
	routers.Use(guard)

	routers.Post("/api/scan", apiController.Scan)
	routers.Post("/api/assistant", apiController.Assistant)
	routers.Post("/api/styling", apiController.Styling)
	routers.Post("/api/stores", apiController.Stores)

	routers.Get("/api/rn", rnController.Lookup)
	routers.Get("/api/rn/validate", rnController.Validate)
	routers.Get("/api/rn/brands", rnController.Brands)
	return routers
}
