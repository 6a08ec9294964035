package router

import (
	"github.com/adisetya/recipe-api/internal/application"
	"github.com/adisetya/recipe-api/internal/container"
	pginfra "github.com/adisetya/recipe-api/internal/infrastructure/postgres"
	handlers "github.com/adisetya/recipe-api/internal/interface/http"
	"github.com/adisetya/recipe-api/internal/router/modules"
)

// InitModules builds repositories, services, and handlers from the container
// singletons and registers every feature module with the router registry.
// Called once during application startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	userRepo := pginfra.NewUserRepository(pool)
	tagRepo := pginfra.NewTagRepository(pool)
	ingredientRepo := pginfra.NewIngredientRepository(pool)
	recipeRepo := pginfra.NewRecipeRepository(pool)

	userSvc := application.NewUserService(
		userRepo,
		container.GetTokenStore(),
		container.GetRabbitPub(),
		logger,
		cfg.AppName,
		cfg.MailSendEnabled,
	)
	catalogSvc := application.NewCatalogService(tagRepo, ingredientRepo)
	recipeSvc := application.NewRecipeService(
		recipeRepo,
		tagRepo,
		ingredientRepo,
		container.GetGCS(),
		cfg.GCSBucket,
		logger,
		container.GetES(),
		cfg.ESRecipesIndex,
	)

	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, logger)))
	r.Add(modules.NewRecipeModule(
		handlers.NewRecipeHandler(recipeSvc, logger),
		handlers.NewTagHandler(catalogSvc, logger),
		handlers.NewIngredientHandler(catalogSvc, logger),
	))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
