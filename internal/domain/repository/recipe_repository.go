package repository

import "github.com/adisetya/recipe-api/internal/domain/entity"

// RecipeRepository defines database operations for recipes, including the
// many-to-many tag/ingredient references. List returns every recipe ordered
// by descending id (most recent first).
type RecipeRepository interface {
	Create(r *entity.Recipe) error
	GetByID(id int64) (*entity.Recipe, error)
	List() ([]*entity.Recipe, error)
	Update(r *entity.Recipe) error
	Delete(id int64) error
}
