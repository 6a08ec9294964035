package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	recipeapp "github.com/adisetya/recipe-api/internal/application"
	"github.com/adisetya/recipe-api/internal/domain/entity"
	"github.com/adisetya/recipe-api/internal/interface/middleware"
	"github.com/adisetya/recipe-api/pkg/response"
	"github.com/adisetya/recipe-api/pkg/validation"
)

type RecipeHandler struct {
	Svc    *recipeapp.RecipeService
	Logger *logrus.Logger
}

func NewRecipeHandler(svc *recipeapp.RecipeService, logger *logrus.Logger) *RecipeHandler {
	return &RecipeHandler{Svc: svc, Logger: logger}
}

type createRecipeRequest struct {
	Title         string  `json:"title" binding:"required,max=255"`
	TimeMinutes   int     `json:"time_minutes" binding:"required,gt=0"`
	Price         string  `json:"price" binding:"required,price"`
	Link          string  `json:"link" binding:"omitempty,max=255"`
	TagIDs        []int64 `json:"tags"`
	IngredientIDs []int64 `json:"ingredients"`
}

type updateRecipeRequest struct {
	Title         *string `json:"title" binding:"omitempty,max=255"`
	TimeMinutes   *int    `json:"time_minutes" binding:"omitempty,gt=0"`
	Price         *string `json:"price" binding:"omitempty,price"`
	Link          *string `json:"link" binding:"omitempty,max=255"`
	TagIDs        []int64 `json:"tags"`
	IngredientIDs []int64 `json:"ingredients"`
}

// recipeView is the list/write shape: tag and ingredient references as id
// lists.
func recipeView(r *entity.Recipe) gin.H {
	return gin.H{
		"id":           r.ID,
		"title":        r.Title,
		"time_minutes": r.TimeMinutes,
		"price":        r.Price,
		"link":         r.Link,
		"image_url":    r.ImageURL,
		"tags":         r.TagIDs,
		"ingredients":  r.IngredientIDs,
	}
}

// recipeDetailView is the expanded read shape with nested tag/ingredient
// objects.
func recipeDetailView(d *recipeapp.RecipeDetail) gin.H {
	tags := make([]gin.H, 0, len(d.Tags))
	for _, t := range d.Tags {
		tags = append(tags, tagView(t))
	}
	ingredients := make([]gin.H, 0, len(d.Ingredients))
	for _, i := range d.Ingredients {
		ingredients = append(ingredients, ingredientView(i))
	}
	return gin.H{
		"id":           d.Recipe.ID,
		"title":        d.Recipe.Title,
		"time_minutes": d.Recipe.TimeMinutes,
		"price":        d.Recipe.Price,
		"link":         d.Recipe.Link,
		"image_url":    d.Recipe.ImageURL,
		"tags":         tags,
		"ingredients":  ingredients,
	}
}

func writeRecipeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, recipeapp.ErrRecipeNotFound),
		errors.Is(err, recipeapp.ErrTagNotFound),
		errors.Is(err, recipeapp.ErrIngredientNotFound):
		c.JSON(http.StatusNotFound, response.Error[any](c, http.StatusNotFound, err.Error(), nil))
	case errors.Is(err, recipeapp.ErrNotOwner):
		c.JSON(http.StatusForbidden, response.Error[any](c, http.StatusForbidden, "forbidden", nil))
	case errors.Is(err, recipeapp.ErrInvalidTime):
		c.JSON(http.StatusBadRequest, response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"time_minutes": "must be a positive integer"}))
	case errors.Is(err, recipeapp.ErrInvalidPrice):
		c.JSON(http.StatusBadRequest, response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"price": "must have at most 5 digits with 2 decimal places"}))
	default:
		c.JSON(http.StatusInternalServerError, response.Error[any](c, http.StatusInternalServerError, fallback, nil))
	}
}

func (h *RecipeHandler) Create(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req createRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err)))
		return
	}
	rec, err := h.Svc.Create(c.Request.Context(), uid, recipeapp.CreateRecipeInput{
		Title:         req.Title,
		TimeMinutes:   req.TimeMinutes,
		Price:         req.Price,
		Link:          req.Link,
		TagIDs:        req.TagIDs,
		IngredientIDs: req.IngredientIDs,
	})
	if err != nil {
		writeRecipeError(c, err, "failed to create recipe")
		return
	}
	c.JSON(http.StatusCreated, response.Success(c, http.StatusCreated, recipeView(rec), "recipe created", nil))
}

// List returns every recipe, most recent first.
func (h *RecipeHandler) List(c *gin.Context) {
	recipes, err := h.Svc.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error[any](c, http.StatusInternalServerError, "failed to list recipes", nil))
		return
	}
	out := make([]gin.H, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, recipeView(r))
	}
	c.JSON(http.StatusOK, response.Success(c, http.StatusOK, out, "recipes", nil))
}

func (h *RecipeHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	d, err := h.Svc.Get(id)
	if err != nil {
		writeRecipeError(c, err, "failed to get recipe")
		return
	}
	c.JSON(http.StatusOK, response.Success(c, http.StatusOK, recipeDetailView(d), "recipe", nil))
}

func (h *RecipeHandler) Update(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req updateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err)))
		return
	}
	rec, err := h.Svc.Update(c.Request.Context(), uid, id, recipeapp.UpdateRecipeInput{
		Title:         req.Title,
		TimeMinutes:   req.TimeMinutes,
		Price:         req.Price,
		Link:          req.Link,
		TagIDs:        req.TagIDs,
		IngredientIDs: req.IngredientIDs,
	})
	if err != nil {
		writeRecipeError(c, err, "failed to update recipe")
		return
	}
	c.JSON(http.StatusOK, response.Success(c, http.StatusOK, recipeView(rec), "recipe updated", nil))
}

func (h *RecipeHandler) Delete(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), uid, id); err != nil {
		writeRecipeError(c, err, "failed to delete recipe")
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadImage handles POST /recipe/recipes/:id/image (multipart form,
// field "image").
func (h *RecipeHandler) UploadImage(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	id, ok := idParam(c)
	if !ok {
		return
	}
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"image": "is required"}))
		return
	}
	defer func() { _ = file.Close() }()

	url, err := h.Svc.UploadImage(c.Request.Context(), uid, id, file, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		writeRecipeError(c, err, "failed to upload image")
		return
	}
	c.JSON(http.StatusOK, response.Success(c, http.StatusOK, gin.H{"image_url": url}, "image uploaded", nil))
}

// Search queries the Elasticsearch recipes index.
func (h *RecipeHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusBadRequest, response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"q": "is required"}))
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error[any](c, http.StatusInternalServerError, "search failed", nil))
		return
	}
	c.JSON(http.StatusOK, response.Success(c, http.StatusOK, hits, "search results", gin.H{"count": len(hits)}))
}
