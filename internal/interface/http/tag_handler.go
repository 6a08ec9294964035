package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	catalogapp "github.com/adisetya/recipe-api/internal/application"
	"github.com/adisetya/recipe-api/internal/domain/entity"
	"github.com/adisetya/recipe-api/internal/interface/middleware"
	"github.com/adisetya/recipe-api/pkg/response"
	"github.com/adisetya/recipe-api/pkg/validation"
)

type TagHandler struct {
	Svc    *catalogapp.CatalogService
	Logger *logrus.Logger
}

func NewTagHandler(svc *catalogapp.CatalogService, logger *logrus.Logger) *TagHandler {
	return &TagHandler{Svc: svc, Logger: logger}
}

// Compact shape: id is read-only, the owner comes from the token context.
type catalogItemRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

func tagView(t *entity.Tag) gin.H {
	return gin.H{"id": t.ID, "name": t.Name}
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, response.Error[any](c, http.StatusBadRequest, "invalid id", nil))
		return 0, false
	}
	return id, true
}

func (h *TagHandler) Create(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req catalogItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err)))
		return
	}
	t, err := h.Svc.CreateTag(uid, req.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error[any](c, http.StatusInternalServerError, "failed to create tag", nil))
		return
	}
	c.JSON(http.StatusCreated, response.Success(c, http.StatusCreated, tagView(t), "tag created", nil))
}

func (h *TagHandler) List(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	tags, err := h.Svc.ListTags(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error[any](c, http.StatusInternalServerError, "failed to list tags", nil))
		return
	}
	out := make([]gin.H, 0, len(tags))
	for _, t := range tags {
		out = append(out, tagView(t))
	}
	c.JSON(http.StatusOK, response.Success(c, http.StatusOK, out, "tags", nil))
}

func (h *TagHandler) Update(c *gin.Context) {
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
	t, err := h.Svc.UpdateTag(uid, id, req.Name)
	if err != nil {
		writeCatalogError(c, err, "failed to update tag")
		return
	}
	c.JSON(http.StatusOK, response.Success(c, http.StatusOK, tagView(t), "tag updated", nil))
}

func (h *TagHandler) Delete(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.Svc.DeleteTag(uid, id); err != nil {
		writeCatalogError(c, err, "failed to delete tag")
		return
	}
	c.Status(http.StatusNoContent)
}

func writeCatalogError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, catalogapp.ErrTagNotFound), errors.Is(err, catalogapp.ErrIngredientNotFound):
		c.JSON(http.StatusNotFound, response.Error[any](c, http.StatusNotFound, err.Error(), nil))
	case errors.Is(err, catalogapp.ErrNotOwner):
		c.JSON(http.StatusForbidden, response.Error[any](c, http.StatusForbidden, "forbidden", nil))
	default:
		c.JSON(http.StatusInternalServerError, response.Error[any](c, http.StatusInternalServerError, fallback, nil))
	}
}
