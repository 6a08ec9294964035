package repository

import "github.com/adisetya/recipe-api/internal/domain/entity"

// TagRepository defines database operations for tags.
// ListByUser returns only tags owned by the given user, ordered by name.
type TagRepository interface {
	Create(t *entity.Tag) error
	GetByID(id int64) (*entity.Tag, error)
	ListByUser(userID string) ([]*entity.Tag, error)
	Update(t *entity.Tag) error
	Delete(id int64) error
}

// IngredientRepository defines database operations for ingredients.
type IngredientRepository interface {
	Create(i *entity.Ingredient) error
	GetByID(id int64) (*entity.Ingredient, error)
	ListByUser(userID string) ([]*entity.Ingredient, error)
	Update(i *entity.Ingredient) error
	Delete(id int64) error
}
