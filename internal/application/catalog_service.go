package application

import (
	"errors"

	"github.com/adisetya/recipe-api/internal/domain/entity"
	repo "github.com/adisetya/recipe-api/internal/domain/repository"
)

var (
	ErrTagNotFound        = errors.New("tag not found")
	ErrIngredientNotFound = errors.New("ingredient not found")
	ErrNotOwner           = errors.New("not the owner")
)

// CatalogService manages the user-owned tag and ingredient catalogs.
// The owning user always comes from the authenticated caller, never from
// the payload, and mutations are restricted to the owner.
type CatalogService struct {
	Tags        repo.TagRepository
	Ingredients repo.IngredientRepository
}

func NewCatalogService(tags repo.TagRepository, ingredients repo.IngredientRepository) *CatalogService {
	return &CatalogService{Tags: tags, Ingredients: ingredients}
}

func (s *CatalogService) CreateTag(userID, name string) (*entity.Tag, error) {
	t := &entity.Tag{UserID: userID, Name: name}
	if err := s.Tags.Create(t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *CatalogService) ListTags(userID string) ([]*entity.Tag, error) {
	return s.Tags.ListByUser(userID)
}

func (s *CatalogService) UpdateTag(userID string, id int64, name string) (*entity.Tag, error) {
	t, err := s.Tags.GetByID(id)
	if err != nil {
		return nil, ErrTagNotFound
	}
	if t.UserID != userID {
		return nil, ErrNotOwner
	}
	t.Name = name
	if err := s.Tags.Update(t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *CatalogService) DeleteTag(userID string, id int64) error {
	t, err := s.Tags.GetByID(id)
	if err != nil {
		return ErrTagNotFound
	}
	if t.UserID != userID {
		return ErrNotOwner
	}
	return s.Tags.Delete(id)
}

func (s *CatalogService) CreateIngredient(userID, name string) (*entity.Ingredient, error) {
	i := &entity.Ingredient{UserID: userID, Name: name}
	if err := s.Ingredients.Create(i); err != nil {
		return nil, err
	}
	return i, nil
}

func (s *CatalogService) ListIngredients(userID string) ([]*entity.Ingredient, error) {
	return s.Ingredients.ListByUser(userID)
}

func (s *CatalogService) UpdateIngredient(userID string, id int64, name string) (*entity.Ingredient, error) {
	i, err := s.Ingredients.GetByID(id)
	if err != nil {
		return nil, ErrIngredientNotFound
	}
	if i.UserID != userID {
		return nil, ErrNotOwner
	}
	i.Name = name
	if err := s.Ingredients.Update(i); err != nil {
		return nil, err
	}
	return i, nil
}

func (s *CatalogService) DeleteIngredient(userID string, id int64) error {
	i, err := s.Ingredients.GetByID(id)
	if err != nil {
		return ErrIngredientNotFound
	}
	if i.UserID != userID {
		return ErrNotOwner
	}
	return s.Ingredients.Delete(id)
}
