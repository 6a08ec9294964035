package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	catalogapp "github.com/adisetya/recipe-api/internal/application"
	"github.com/adisetya/recipe-api/internal/domain/entity"
	"github.com/adisetya/recipe-api/internal/interface/middleware"
	"github.com/adisetya/recipe-api/pkg/response"
	"github.com/adisetya/recipe-api/pkg/validation"
)

type IngredientHandler struct {
	Svc    *catalogapp.CatalogService
	Logger *logrus.Logger
}

func NewIngredientHandler(svc *catalogapp.CatalogService, logger *logrus.Logger) *IngredientHandler {
	return &IngredientHandler{Svc: svc, Logger: logger}
}

func ingredientView(i *entity.Ingredient) gin.H {
	return gin.H{"id": i.ID, "name": i.Name}
}

func (h *IngredientHandler) Create(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req catalogItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err)))
		return
	}
	i, err := h.Svc.CreateIngredient(uid, req.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error[any](c, http.StatusInternalServerError, "failed to create ingredient", nil))
		return
	}
	c.JSON(http.StatusCreated, response.Success(c, http.StatusCreated, ingredientView(i), "ingredient created", nil))
}

func (h *IngredientHandler) List(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	ingredients, err := h.Svc.ListIngredients(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error[any](c, http.StatusInternalServerError, "failed to list ingredients", nil))
		return
	}
	out := make([]gin.H, 0, len(ingredients))
	for _, i := range ingredients {
		out = append(out, ingredientView(i))
	}
	c.JSON(http.StatusOK, response.Success(c, http.StatusOK, out, "ingredients", nil))
}

func (h *IngredientHandler) Update(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req catalogItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err)))
		return
	}
	i, err := h.Svc.UpdateIngredient(uid, id, req.Name)
	if err != nil {
		writeCatalogError(c, err, "failed to update ingredient")
		return
	}
	c.JSON(http.StatusOK, response.Success(c, http.StatusOK, ingredientView(i), "ingredient updated", nil))
}

func (h *IngredientHandler) Delete(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.Svc.DeleteIngredient(uid, id); err != nil {
		writeCatalogError(c, err, "failed to delete ingredient")
		return
	}
	c.Status(http.StatusNoContent)
}
