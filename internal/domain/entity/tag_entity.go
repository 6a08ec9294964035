package entity

import "time"

// Tag is a user-owned label attached to recipes.
// Ownership is set at creation and never changes; tags are removed
// together with their owner (cascade).
type Tag struct {
	ID        int64
	UserID    string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
