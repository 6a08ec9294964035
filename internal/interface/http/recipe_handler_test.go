package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func createSampleRecipe(t *testing.T, api *testAPI, token string) int64 {
	t.Helper()
	w := api.do(t, http.MethodPost, "/api/recipe/recipes", token, map[string]any{
		"title":        "Sample recipe",
		"time_minutes": 10,
		"price":        "5.00",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	return int64(dataObject(t, w)["id"].(float64))
}

func TestRecipeHandler_Create(t *testing.T) {
	t.Run("creates a recipe", func(t *testing.T) {
		api := newTestAPI()
		token := api.register(t, "test@test.com", "test123")

		w := api.do(t, http.MethodPost, "/api/recipe/recipes", token, map[string]any{
			"title":        "Sample recipe",
			"time_minutes": 10,
			"price":        "5.00",
			"link":         "http://example.com/recipe.pdf",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		data := dataObject(t, w)
		require.Equal(t, "Sample recipe", data["title"])
		require.Equal(t, float64(10), data["time_minutes"])
		require.Equal(t, "5.00", data["price"])
		require.Equal(t, "http://example.com/recipe.pdf", data["link"])
	})

	t.Run("integer prices come back with two decimals", func(t *testing.T) {
		api := newTestAPI()
		token := api.register(t, "test@test.com", "test123")

		w := api.do(t, http.MethodPost, "/api/recipe/recipes", token, map[string]any{
			"title":        "Cheap",
			"time_minutes": 5,
			"price":        "5",
		})
		require.Equal(t, http.StatusCreated, w.Code)
		require.Equal(t, "5.00", dataObject(t, w)["price"])
	})

	t.Run("rejects invalid time and price", func(t *testing.T) {
		api := newTestAPI()
		token := api.register(t, "test@test.com", "test123")

		bad := []map[string]any{
			{"title": "x", "time_minutes": 0, "price": "5.00"},
			{"title": "x", "time_minutes": -1, "price": "5.00"},
			{"title": "x", "time_minutes": 10, "price": "1000.00"},
			{"title": "x", "time_minutes": 10, "price": "5.123"},
			{"title": "x", "time_minutes": 10, "price": "abc"},
			{"time_minutes": 10, "price": "5.00"},
		}
		for _, payload := range bad {
			w := api.do(t, http.MethodPost, "/api/recipe/recipes", token, payload)
			require.Equal(t, http.StatusBadRequest, w.Code, "payload %v", payload)
		}
	})

	t.Run("unknown tag reference is a 404", func(t *testing.T) {
		api := newTestAPI()
		token := api.register(t, "test@test.com", "test123")

		w := api.do(t, http.MethodPost, "/api/recipe/recipes", token, map[string]any{
			"title":        "x",
			"time_minutes": 10,
			"price":        "5.00",
			"tags":         []int64{42},
		})
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("requires authentication", func(t *testing.T) {
		api := newTestAPI()

		w := api.do(t, http.MethodPost, "/api/recipe/recipes", "", map[string]any{
			"title":        "x",
			"time_minutes": 10,
			"price":        "5.00",
		})
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRecipeHandler_List(t *testing.T) {
	api := newTestAPI()
	token := api.register(t, "test@test.com", "test123")

	first := createSampleRecipe(t, api, token)
	second := createSampleRecipe(t, api, token)

	w := api.do(t, http.MethodGet, "/api/recipe/recipes", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	items := dataList(t, w)
	require.Len(t, items, 2)

	// Most recently created first.
	require.Equal(t, float64(second), items[0].(map[string]any)["id"])
	require.Equal(t, float64(first), items[1].(map[string]any)["id"])
	for _, item := range items {
		rec := item.(map[string]any)
		require.Equal(t, "Sample recipe", rec["title"])
		require.Equal(t, float64(10), rec["time_minutes"])
		require.Equal(t, "5.00", rec["price"])
	}
}

func TestRecipeHandler_Get(t *testing.T) {
	api := newTestAPI()
	token := api.register(t, "test@test.com", "test123")

	tagResp := api.do(t, http.MethodPost, "/api/recipe/tags", token, map[string]any{"name": "Dessert"})
	require.Equal(t, http.StatusCreated, tagResp.Code)
	tagID := int64(dataObject(t, tagResp)["id"].(float64))

	ingResp := api.do(t, http.MethodPost, "/api/recipe/ingredients", token, map[string]any{"name": "Sugar"})
	require.Equal(t, http.StatusCreated, ingResp.Code)
	ingID := int64(dataObject(t, ingResp)["id"].(float64))

	created := api.do(t, http.MethodPost, "/api/recipe/recipes", token, map[string]any{
		"title":        "Cake",
		"time_minutes": 30,
		"price":        "12.50",
		"tags":         []int64{tagID},
		"ingredients":  []int64{ingID},
	})
	require.Equal(t, http.StatusCreated, created.Code)
	id := int64(dataObject(t, created)["id"].(float64))

	w := api.do(t, http.MethodGet, fmt.Sprintf("/api/recipe/recipes/%d", id), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := dataObject(t, w)
	require.Equal(t, "Cake", data["title"])

	// The detail view nests full tag and ingredient objects.
	tags := data["tags"].([]any)
	require.Len(t, tags, 1)
	require.Equal(t, "Dessert", tags[0].(map[string]any)["name"])
	ingredients := data["ingredients"].([]any)
	require.Len(t, ingredients, 1)
	require.Equal(t, "Sugar", ingredients[0].(map[string]any)["name"])

	missing := api.do(t, http.MethodGet, "/api/recipe/recipes/9999", token, nil)
	require.Equal(t, http.StatusNotFound, missing.Code)
}

func TestRecipeHandler_Update(t *testing.T) {
	t.Run("patch updates only the given fields", func(t *testing.T) {
		api := newTestAPI()
		token := api.register(t, "test@test.com", "test123")
		id := createSampleRecipe(t, api, token)

		w := api.do(t, http.MethodPatch, fmt.Sprintf("/api/recipe/recipes/%d", id), token, map[string]any{"title": "Updated"})
		require.Equal(t, http.StatusOK, w.Code)

		data := dataObject(t, w)
		require.Equal(t, "Updated", data["title"])
		require.Equal(t, float64(10), data["time_minutes"])
		require.Equal(t, "5.00", data["price"])
	})

	t.Run("only the owner may update", func(t *testing.T) {
		api := newTestAPI()
		tokenA := api.register(t, "a@test.com", "test123")
		tokenB := api.register(t, "b@test.com", "test123")
		id := createSampleRecipe(t, api, tokenA)

		w := api.do(t, http.MethodPatch, fmt.Sprintf("/api/recipe/recipes/%d", id), tokenB, map[string]any{"title": "hijack"})
		require.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestRecipeHandler_Delete(t *testing.T) {
	api := newTestAPI()
	tokenA := api.register(t, "a@test.com", "test123")
	tokenB := api.register(t, "b@test.com", "test123")
	id := createSampleRecipe(t, api, tokenA)

	forbidden := api.do(t, http.MethodDelete, fmt.Sprintf("/api/recipe/recipes/%d", id), tokenB, nil)
	require.Equal(t, http.StatusForbidden, forbidden.Code)

	ok := api.do(t, http.MethodDelete, fmt.Sprintf("/api/recipe/recipes/%d", id), tokenA, nil)
	require.Equal(t, http.StatusNoContent, ok.Code)

	gone := api.do(t, http.MethodGet, fmt.Sprintf("/api/recipe/recipes/%d", id), tokenA, nil)
	require.Equal(t, http.StatusNotFound, gone.Code)
}
