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

type IngredientRepository struct {
	pool *pgxpool.Pool
}

func NewIngredientRepository(pool *pgxpool.Pool) *IngredientRepository {
	return &IngredientRepository{pool: pool}
}

func (r *IngredientRepository) Create(i *entity.Ingredient) error {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO ingredients (user_id, name)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`, i.UserID, i.Name)

	return row.Scan(&i.ID, &i.CreatedAt, &i.UpdatedAt)
}

func (r *IngredientRepository) GetByID(id int64) (*entity.Ingredient, error) {
	ctx := context.Background()
	i := &entity.Ingredient{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, name, created_at, updated_at
		FROM ingredients
		WHERE id = $1
	`, id)

	if err := row.Scan(&i.ID, &i.UserID, &i.Name, &i.CreatedAt, &i.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return i, nil
}

func (r *IngredientRepository) ListByUser(userID string) ([]*entity.Ingredient, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, name, created_at, updated_at
		FROM ingredients
		WHERE user_id = $1
		ORDER BY name
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ingredients := make([]*entity.Ingredient, 0)
	for rows.Next() {
		i := &entity.Ingredient{}
		if err := rows.Scan(&i.ID, &i.UserID, &i.Name, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, err
		}
		ingredients = append(ingredients, i)
	}
	return ingredients, rows.Err()
}

func (r *IngredientRepository) Update(i *entity.Ingredient) error {
	ctx := context.Background()
	i.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE ingredients
		SET name = $1, updated_at = $2
		WHERE id = $3
	`, i.Name, i.UpdatedAt, i.ID)
	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *IngredientRepository) Delete(id int64) error {
	ctx := context.Background()

	res, err := r.pool.Exec(ctx, `DELETE FROM ingredients WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.IngredientRepository = (*IngredientRepository)(nil)
