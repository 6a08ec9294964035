package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func newRecipeService() (*RecipeService, *MockRecipeRepository, *MockTagRepository, *MockIngredientRepository) {
	recipes := NewMockRecipeRepository()
	tags := NewMockTagRepository()
	ingredients := NewMockIngredientRepository()
	svc := NewRecipeService(recipes, tags, ingredients, nil, "", nil, nil, "")
	return svc, recipes, tags, ingredients
}

func TestNormalizePrice(t *testing.T) {
	valid := []struct {
		in   string
		want string
	}{
		{"5.00", "5.00"},
		{"5", "5.00"},
		{"5.0", "5.00"},
		{"5.", "5.00"},
		{"5.25", "5.25"},
		{"0.99", "0.99"},
		{"999.99", "999.99"},
		{" 5.00 ", "5.00"},
	}
	for _, tc := range valid {
		got, err := normalizePrice(tc.in)
		require.NoError(t, err, "price %q", tc.in)
		require.Equal(t, tc.want, got)
	}

	invalid := []string{"", "abc", "-5.00", "1000.00", "5.123", "1234", ".50", "5,00"}
	for _, in := range invalid {
		_, err := normalizePrice(in)
		require.ErrorIs(t, err, ErrInvalidPrice, "price %q", in)
	}
}

func TestRecipeService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("valid input", func(t *testing.T) {
		svc, _, _, _ := newRecipeService()

		rec, err := svc.Create(ctx, "user-1", CreateRecipeInput{
			Title:       "Sample recipe",
			TimeMinutes: 10,
			Price:       "5.00",
		})
		require.NoError(t, err)
		require.NotZero(t, rec.ID)
		require.Equal(t, "user-1", rec.UserID)
		require.Equal(t, "Sample recipe", rec.Title)
		require.Equal(t, 10, rec.TimeMinutes)
		require.Equal(t, "5.00", rec.Price)
		require.NotNil(t, rec.TagIDs)
		require.NotNil(t, rec.IngredientIDs)
	})

	t.Run("rejects non-positive time", func(t *testing.T) {
		svc, _, _, _ := newRecipeService()

		for _, minutes := range []int{0, -1} {
			_, err := svc.Create(ctx, "user-1", CreateRecipeInput{Title: "x", TimeMinutes: minutes, Price: "5.00"})
			require.ErrorIs(t, err, ErrInvalidTime)
		}
	})

	t.Run("rejects an out-of-range price", func(t *testing.T) {
		svc, _, _, _ := newRecipeService()

		_, err := svc.Create(ctx, "user-1", CreateRecipeInput{Title: "x", TimeMinutes: 10, Price: "1000.00"})
		require.ErrorIs(t, err, ErrInvalidPrice)
	})

	t.Run("rejects unknown tag and ingredient ids", func(t *testing.T) {
		svc, _, tags, _ := newRecipeService()

		_, err := svc.Create(ctx, "user-1", CreateRecipeInput{Title: "x", TimeMinutes: 10, Price: "5.00", TagIDs: []int64{7}})
		require.ErrorIs(t, err, ErrTagNotFound)

		tag, err := NewCatalogService(tags, NewMockIngredientRepository()).CreateTag("user-1", "Vegan")
		require.NoError(t, err)

		_, err = svc.Create(ctx, "user-1", CreateRecipeInput{Title: "x", TimeMinutes: 10, Price: "5.00", TagIDs: []int64{tag.ID}, IngredientIDs: []int64{3}})
		require.ErrorIs(t, err, ErrIngredientNotFound)
	})
}

func TestRecipeService_List(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newRecipeService()

	// Two identical sample recipes for the same account; the listing must
	// return the most recently created first.
	for i := 0; i < 2; i++ {
		_, err := svc.Create(ctx, "user-1", CreateRecipeInput{
			Title:       "Sample recipe",
			TimeMinutes: 10,
			Price:       "5.00",
		})
		require.NoError(t, err)
	}

	got, err := svc.List()
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Greater(t, got[0].ID, got[1].ID)
	for _, rec := range got {
		require.Equal(t, "Sample recipe", rec.Title)
		require.Equal(t, 10, rec.TimeMinutes)
		require.Equal(t, "5.00", rec.Price)
	}
}

func TestRecipeService_Get(t *testing.T) {
	ctx := context.Background()
	svc, _, tags, ingredients := newRecipeService()
	catalog := NewCatalogService(tags, ingredients)

	tag, err := catalog.CreateTag("user-1", "Dessert")
	require.NoError(t, err)
	ing, err := catalog.CreateIngredient("user-1", "Sugar")
	require.NoError(t, err)

	rec, err := svc.Create(ctx, "user-1", CreateRecipeInput{
		Title:         "Cake",
		TimeMinutes:   30,
		Price:         "12.50",
		TagIDs:        []int64{tag.ID},
		IngredientIDs: []int64{ing.ID},
	})
	require.NoError(t, err)

	detail, err := svc.Get(rec.ID)
	require.NoError(t, err)
	require.Equal(t, "Cake", detail.Recipe.Title)
	require.Len(t, detail.Tags, 1)
	require.Equal(t, "Dessert", detail.Tags[0].Name)
	require.Len(t, detail.Ingredients, 1)
	require.Equal(t, "Sugar", detail.Ingredients[0].Name)

	_, err = svc.Get(9999)
	require.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestRecipeService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("partial update keeps untouched fields", func(t *testing.T) {
		svc, _, _, _ := newRecipeService()

		rec, err := svc.Create(ctx, "user-1", CreateRecipeInput{Title: "Sample recipe", TimeMinutes: 10, Price: "5.00", Link: "http://example.com"})
		require.NoError(t, err)

		title := "Updated recipe"
		got, err := svc.Update(ctx, "user-1", rec.ID, UpdateRecipeInput{Title: &title})
		require.NoError(t, err)
		require.Equal(t, "Updated recipe", got.Title)
		require.Equal(t, 10, got.TimeMinutes)
		require.Equal(t, "5.00", got.Price)
		require.Equal(t, "http://example.com", got.Link)
	})

	t.Run("price is normalized on update", func(t *testing.T) {
		svc, _, _, _ := newRecipeService()

		rec, err := svc.Create(ctx, "user-1", CreateRecipeInput{Title: "x", TimeMinutes: 10, Price: "5.00"})
		require.NoError(t, err)

		price := "7.5"
		got, err := svc.Update(ctx, "user-1", rec.ID, UpdateRecipeInput{Price: &price})
		require.NoError(t, err)
		require.Equal(t, "7.50", got.Price)
	})

	t.Run("replaces tag references when a slice is given", func(t *testing.T) {
		svc, _, tags, ingredients := newRecipeService()
		catalog := NewCatalogService(tags, ingredients)

		t1, err := catalog.CreateTag("user-1", "Vegan")
		require.NoError(t, err)
		t2, err := catalog.CreateTag("user-1", "Dessert")
		require.NoError(t, err)

		rec, err := svc.Create(ctx, "user-1", CreateRecipeInput{Title: "x", TimeMinutes: 10, Price: "5.00", TagIDs: []int64{t1.ID}})
		require.NoError(t, err)

		got, err := svc.Update(ctx, "user-1", rec.ID, UpdateRecipeInput{TagIDs: []int64{t2.ID}})
		require.NoError(t, err)
		require.Equal(t, []int64{t2.ID}, got.TagIDs)

		// A nil slice leaves the references alone.
		title := "y"
		got, err = svc.Update(ctx, "user-1", rec.ID, UpdateRecipeInput{Title: &title})
		require.NoError(t, err)
		require.Equal(t, []int64{t2.ID}, got.TagIDs)

		// An empty slice clears them.
		got, err = svc.Update(ctx, "user-1", rec.ID, UpdateRecipeInput{TagIDs: []int64{}})
		require.NoError(t, err)
		require.Empty(t, got.TagIDs)
	})

	t.Run("only the owner may update", func(t *testing.T) {
		svc, _, _, _ := newRecipeService()

		rec, err := svc.Create(ctx, "user-1", CreateRecipeInput{Title: "x", TimeMinutes: 10, Price: "5.00"})
		require.NoError(t, err)

		title := "hijack"
		_, err = svc.Update(ctx, "user-2", rec.ID, UpdateRecipeInput{Title: &title})
		require.ErrorIs(t, err, ErrNotOwner)
	})
}

func TestRecipeService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, recipes, _, _ := newRecipeService()

	rec, err := svc.Create(ctx, "user-1", CreateRecipeInput{Title: "x", TimeMinutes: 10, Price: "5.00"})
	require.NoError(t, err)

	require.ErrorIs(t, svc.Delete(ctx, "user-2", rec.ID), ErrNotOwner)
	require.NoError(t, svc.Delete(ctx, "user-1", rec.ID))

	_, err = recipes.GetByID(rec.ID)
	require.Error(t, err)

	require.ErrorIs(t, svc.Delete(ctx, "user-1", rec.ID), ErrRecipeNotFound)
}
