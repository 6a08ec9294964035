package entity

import "time"

// Recipe is a user-owned recipe record. Price is carried as a fixed-point
// decimal string ("5.00", max 5 digits with 2 fractional) so the value
// round-trips without float drift. TagIDs and IngredientIDs hold the
// many-to-many references; referenced tags/ingredients are not required
// to belong to the same owner.
type Recipe struct {
	ID            int64
	UserID        string
	Title         string
	TimeMinutes   int
	Price         string
	Link          string
	ImageURL      string
	TagIDs        []int64
	IngredientIDs []int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
