package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/adisetya/recipe-api/internal/application"
	"github.com/adisetya/recipe-api/internal/domain/entity"
	"github.com/adisetya/recipe-api/internal/interface/middleware"
	"github.com/adisetya/recipe-api/pkg/response"
	"github.com/adisetya/recipe-api/pkg/validation"
)

type UserHandler struct {
	Svc    *userapp.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *userapp.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type createUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Name     string `json:"name"`
}

type createTokenRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type updateMeRequest struct {
	Email    *string `json:"email" binding:"omitempty,email"`
	Name     *string `json:"name"`
	Password *string `json:"password" binding:"omitempty,pwd"`
}

func userView(u *entity.User) gin.H {
	return gin.H{
		"id":           u.ID,
		"email":        u.Email,
		"name":         u.Name,
		"is_active":    u.IsActive,
		"is_staff":     u.IsStaff,
		"is_superuser": u.IsSuperuser,
		"created_at":   u.CreatedAt,
		"updated_at":   u.UpdatedAt,
	}
}

// Create handles POST /user/create (public registration).
func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err)))
		return
	}

	u, err := h.Svc.Register(c.Request.Context(), userapp.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		switch {
		case errors.Is(err, userapp.ErrEmailRequired), errors.Is(err, userapp.ErrEmailTaken):
			c.JSON(http.StatusBadRequest, response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"email": err.Error()}))
		default:
			c.JSON(http.StatusInternalServerError, response.Error[any](c, http.StatusInternalServerError, "failed to create user", nil))
		}
		return
	}
	c.JSON(http.StatusCreated, response.Success(c, http.StatusCreated, userView(u), "user created", nil))
}

// CreateToken handles POST /user/token. The error message never reveals
// whether the email or the password was wrong.
func (h *UserHandler) CreateToken(c *gin.Context) {
	var req createTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err)))
		return
	}

	u, err := h.Svc.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil))
		return
	}
	tok, err := h.Svc.IssueToken(c.Request.Context(), u)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error[any](c, http.StatusInternalServerError, "failed to issue token", nil))
		return
	}
	c.JSON(http.StatusOK, response.Success(c, http.StatusOK, gin.H{"token": tok.Key}, "token created", gin.H{"expires_at": tok.ExpiresAt}))
}

// Me handles GET /user/me. The record is always the caller's own; identity
// comes from the token, never from a path parameter.
func (h *UserHandler) Me(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	u, err := h.Svc.GetProfile(uid)
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error[any](c, http.StatusNotFound, "user not found", nil))
		return
	}
	c.JSON(http.StatusOK, response.Success(c, http.StatusOK, userView(u), "profile", nil))
}

// UpdateMe handles PATCH/PUT /user/me.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req updateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err)))
		return
	}
	u, err := h.Svc.UpdateProfile(c.Request.Context(), uid, userapp.UpdateProfileInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, userapp.ErrUserNotFound):
			c.JSON(http.StatusNotFound, response.Error[any](c, http.StatusNotFound, "user not found", nil))
		case errors.Is(err, userapp.ErrEmailRequired), errors.Is(err, userapp.ErrEmailTaken):
			c.JSON(http.StatusBadRequest, response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"email": err.Error()}))
		default:
			c.JSON(http.StatusInternalServerError, response.Error[any](c, http.StatusInternalServerError, "failed to update profile", nil))
		}
		return
	}
	c.JSON(http.StatusOK, response.Success(c, http.StatusOK, userView(u), "profile updated", nil))
}
