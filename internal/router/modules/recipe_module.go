package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adisetya/recipe-api/internal/container"
	handlers "github.com/adisetya/recipe-api/internal/interface/http"
	"github.com/adisetya/recipe-api/internal/interface/middleware"
)

// RecipeModule wires the recipe, tag, and ingredient endpoints. Everything
// here requires a valid token.

type RecipeModule struct {
	Recipes     *handlers.RecipeHandler
	Tags        *handlers.TagHandler
	Ingredients *handlers.IngredientHandler
}

func NewRecipeModule(recipes *handlers.RecipeHandler, tags *handlers.TagHandler, ingredients *handlers.IngredientHandler) *RecipeModule {
	return &RecipeModule{Recipes: recipes, Tags: tags, Ingredients: ingredients}
}

func (m *RecipeModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/recipe")
	auth.Use(middleware.Auth(container.GetTokenStore()))
	auth.Use(
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		auth.GET("/recipes", m.Recipes.List)
		auth.POST("/recipes", m.Recipes.Create)
		auth.GET("/recipes/search", m.Recipes.Search)
		auth.GET("/recipes/:id", m.Recipes.Get)
		auth.PATCH("/recipes/:id", m.Recipes.Update)
		auth.PUT("/recipes/:id", m.Recipes.Update)
		auth.DELETE("/recipes/:id", m.Recipes.Delete)
		auth.POST("/recipes/:id/image", m.Recipes.UploadImage)

		auth.GET("/tags", m.Tags.List)
		auth.POST("/tags", m.Tags.Create)
		auth.PATCH("/tags/:id", m.Tags.Update)
		auth.PUT("/tags/:id", m.Tags.Update)
		auth.DELETE("/tags/:id", m.Tags.Delete)

		auth.GET("/ingredients", m.Ingredients.List)
		auth.POST("/ingredients", m.Ingredients.Create)
		auth.PATCH("/ingredients/:id", m.Ingredients.Update)
		auth.PUT("/ingredients/:id", m.Ingredients.Update)
		auth.DELETE("/ingredients/:id", m.Ingredients.Delete)
	}
}
