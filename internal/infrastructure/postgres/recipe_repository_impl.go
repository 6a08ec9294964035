package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adisetya/recipe-api/internal/domain/entity"
	"github.com/adisetya/recipe-api/internal/domain/repository"
)

type RecipeRepository struct {
	pool *pgxpool.Pool
}

func NewRecipeRepository(pool *pgxpool.Pool) *RecipeRepository {
	return &RecipeRepository{pool: pool}
}

// Create inserts the recipe row plus its tag/ingredient join rows in one
// transaction so a failed reference insert never leaves a partial recipe.
func (r *RecipeRepository) Create(rec *entity.Recipe) error {
	ctx := context.Background()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO recipes (user_id, title, time_minutes, price, link, image_url)
		VALUES ($1, $2, $3, $4::numeric, $5, $6)
		RETURNING id, price::text, created_at, updated_at
	`, rec.UserID, rec.Title, rec.TimeMinutes, rec.Price, rec.Link, rec.ImageURL)
	if err := row.Scan(&rec.ID, &rec.Price, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return err
	}

	if err := replaceJoins(ctx, tx, rec); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *RecipeRepository) GetByID(id int64) (*entity.Recipe, error) {
	ctx := context.Background()
	rec := &entity.Recipe{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, title, time_minutes, price::text, link, image_url, created_at, updated_at
		FROM recipes
		WHERE id = $1
	`, id)

	if err := row.Scan(&rec.ID, &rec.UserID, &rec.Title, &rec.TimeMinutes,
		&rec.Price, &rec.Link, &rec.ImageURL, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	if err := r.loadJoins(ctx, []*entity.Recipe{rec}); err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *RecipeRepository) List() ([]*entity.Recipe, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, title, time_minutes, price::text, link, image_url, created_at, updated_at
		FROM recipes
		ORDER BY id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recipes := make([]*entity.Recipe, 0)
	for rows.Next() {
		rec := &entity.Recipe{}
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Title, &rec.TimeMinutes,
			&rec.Price, &rec.Link, &rec.ImageURL, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		recipes = append(recipes, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadJoins(ctx, recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *RecipeRepository) Update(rec *entity.Recipe) error {
	ctx := context.Background()
	rec.UpdatedAt = time.Now()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		UPDATE recipes
		SET title = $1, time_minutes = $2, price = $3::numeric, link = $4, image_url = $5, updated_at = $6
		WHERE id = $7
		RETURNING price::text
	`, rec.Title, rec.TimeMinutes, rec.Price, rec.Link, rec.ImageURL, rec.UpdatedAt, rec.ID)
	if err := row.Scan(&rec.Price); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.ErrNotFound
		}
		return err
	}

	if err := replaceJoins(ctx, tx, rec); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *RecipeRepository) Delete(id int64) error {
	ctx := context.Background()

	res, err := r.pool.Exec(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// replaceJoins rewrites the M2M rows to match the entity's id sets.
func replaceJoins(ctx context.Context, tx pgx.Tx, rec *entity.Recipe) error {
	if _, err := tx.Exec(ctx, `DELETE FROM recipe_tags WHERE recipe_id = $1`, rec.ID); err != nil {
		return err
	}
	for _, tagID := range rec.TagIDs {
		if _, err := tx.Exec(ctx, `
			INSERT INTO recipe_tags (recipe_id, tag_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, rec.ID, tagID); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = $1`, rec.ID); err != nil {
		return err
	}
	for _, ingID := range rec.IngredientIDs {
		if _, err := tx.Exec(ctx, `
			INSERT INTO recipe_ingredients (recipe_id, ingredient_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, rec.ID, ingID); err != nil {
			return err
		}
	}
	return nil
}

// loadJoins fills TagIDs/IngredientIDs for the given recipes.
func (r *RecipeRepository) loadJoins(ctx context.Context, recipes []*entity.Recipe) error {
	if len(recipes) == 0 {
		return nil
	}
	byID := make(map[int64]*entity.Recipe, len(recipes))
	ids := make([]int64, 0, len(recipes))
	for _, rec := range recipes {
		rec.TagIDs = make([]int64, 0)
		rec.IngredientIDs = make([]int64, 0)
		byID[rec.ID] = rec
		ids = append(ids, rec.ID)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT recipe_id, tag_id FROM recipe_tags
		WHERE recipe_id = ANY($1)
		ORDER BY tag_id
	`, ids)
	if err != nil {
		return err
	}
	for rows.Next() {
		var recipeID, tagID int64
		if err := rows.Scan(&recipeID, &tagID); err != nil {
			rows.Close()
			return err
		}
		if rec, ok := byID[recipeID]; ok {
			rec.TagIDs = append(rec.TagIDs, tagID)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = r.pool.Query(ctx, `
		SELECT recipe_id, ingredient_id FROM recipe_ingredients
		WHERE recipe_id = ANY($1)
		ORDER BY ingredient_id
	`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var recipeID, ingID int64
		if err := rows.Scan(&recipeID, &ingID); err != nil {
			return err
		}
		if rec, ok := byID[recipeID]; ok {
			rec.IngredientIDs = append(rec.IngredientIDs, ingID)
		}
	}
	return rows.Err()
}

var _ repository.RecipeRepository = (*RecipeRepository)(nil)
