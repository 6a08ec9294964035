package entity

import "time"

// Ingredient is a user-owned catalog entry referenced by recipes.
type Ingredient struct {
	ID        int64
	UserID    string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
