package application

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newCatalogService() (*CatalogService, *MockTagRepository, *MockIngredientRepository) {
	tags := NewMockTagRepository()
	ingredients := NewMockIngredientRepository()
	return NewCatalogService(tags, ingredients), tags, ingredients
}

func TestCatalogService_Tags(t *testing.T) {
	t.Run("create assigns the caller as owner", func(t *testing.T) {
		svc, _, _ := newCatalogService()

		tag, err := svc.CreateTag("user-1", "Vegan")
		require.NoError(t, err)
		require.Equal(t, "user-1", tag.UserID)
		require.Equal(t, "Vegan", tag.Name)
		require.NotZero(t, tag.ID)
	})

	t.Run("list is scoped to the caller", func(t *testing.T) {
		svc, _, _ := newCatalogService()

		_, err := svc.CreateTag("user-1", "Vegan")
		require.NoError(t, err)
		_, err = svc.CreateTag("user-1", "Dessert")
		require.NoError(t, err)
		_, err = svc.CreateTag("user-2", "Comfort food")
		require.NoError(t, err)

		got, err := svc.ListTags("user-1")
		require.NoError(t, err)
		require.Len(t, got, 2)
		for _, tag := range got {
			require.Equal(t, "user-1", tag.UserID)
		}
	})

	t.Run("update renames an owned tag", func(t *testing.T) {
		svc, _, _ := newCatalogService()

		tag, err := svc.CreateTag("user-1", "Vegan")
		require.NoError(t, err)

		got, err := svc.UpdateTag("user-1", tag.ID, "Vegetarian")
		require.NoError(t, err)
		require.Equal(t, tag.ID, got.ID)
		require.Equal(t, "Vegetarian", got.Name)
	})

	t.Run("update by a non-owner is rejected", func(t *testing.T) {
		svc, _, _ := newCatalogService()

		tag, err := svc.CreateTag("user-1", "Vegan")
		require.NoError(t, err)

		_, err = svc.UpdateTag("user-2", tag.ID, "Stolen")
		require.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("delete by a non-owner is rejected", func(t *testing.T) {
		svc, _, _ := newCatalogService()

		tag, err := svc.CreateTag("user-1", "Vegan")
		require.NoError(t, err)

		require.ErrorIs(t, svc.DeleteTag("user-2", tag.ID), ErrNotOwner)

		require.NoError(t, svc.DeleteTag("user-1", tag.ID))
		got, err := svc.ListTags("user-1")
		require.NoError(t, err)
		require.Empty(t, got)
	})

	t.Run("missing tag", func(t *testing.T) {
		svc, _, _ := newCatalogService()

		_, err := svc.UpdateTag("user-1", 99, "x")
		require.ErrorIs(t, err, ErrTagNotFound)
		require.ErrorIs(t, svc.DeleteTag("user-1", 99), ErrTagNotFound)
	})
}

func TestCatalogService_Ingredients(t *testing.T) {
	t.Run("create assigns the caller as owner", func(t *testing.T) {
		svc, _, _ := newCatalogService()

		ing, err := svc.CreateIngredient("user-1", "Salt")
		require.NoError(t, err)
		require.Equal(t, "user-1", ing.UserID)
		require.Equal(t, "Salt", ing.Name)
		require.NotZero(t, ing.ID)
	})

	t.Run("list is scoped to the caller", func(t *testing.T) {
		svc, _, _ := newCatalogService()

		_, err := svc.CreateIngredient("user-1", "Salt")
		require.NoError(t, err)
		_, err = svc.CreateIngredient("user-2", "Pepper")
		require.NoError(t, err)

		got, err := svc.ListIngredients("user-1")
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, "Salt", got[0].Name)
	})

	t.Run("mutation by a non-owner is rejected", func(t *testing.T) {
		svc, _, _ := newCatalogService()

		ing, err := svc.CreateIngredient("user-1", "Salt")
		require.NoError(t, err)

		_, err = svc.UpdateIngredient("user-2", ing.ID, "Sugar")
		require.ErrorIs(t, err, ErrNotOwner)
		require.ErrorIs(t, svc.DeleteIngredient("user-2", ing.ID), ErrNotOwner)
	})

	t.Run("missing ingredient", func(t *testing.T) {
		svc, _, _ := newCatalogService()

		_, err := svc.UpdateIngredient("user-1", 42, "x")
		require.ErrorIs(t, err, ErrIngredientNotFound)
		require.ErrorIs(t, svc.DeleteIngredient("user-1", 42), ErrIngredientNotFound)
	})
}
