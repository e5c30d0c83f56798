package models

import (
	"gorm.io/gorm"
)

var MealTypes = []string{"Breakfast", "Lunch", "Dinner", "Snack"}

// Meal is one nutrition ledger entry. Macros are nullable: an absent value
// means "not tracked", not zero.
type Meal struct {
	gorm.Model
	UserID   uint     `gorm:"index;not null" json:"-"`
	MealType string   `gorm:"size:20;not null" json:"meal_type"`
	FoodName string   `gorm:"size:200;not null" json:"food_name"`
	Calories int      `gorm:"not null" json:"calories"`
	Protein  *float64 `json:"protein"`
	Carbs    *float64 `json:"carbs"`
	Fat      *float64 `json:"fat"`
}
