package models

import (
	"time"
)

// Favorite links a user to a recipe they bookmarked. A pair appears at most once.
type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_favorites_user_recipe" json:"user_id"`
	RecipeID  uint      `gorm:"not null;uniqueIndex:idx_favorites_user_recipe;index" json:"recipe_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (Favorite) TableName() string {
	return "favorites"
}

// All returns every model in migration order
func All() []interface{} {
	return []interface{}{&User{}, &Recipe{}, &Favorite{}}
}
