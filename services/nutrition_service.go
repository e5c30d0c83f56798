// services/nutrition_service.go
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/marktudor11/fitlytics/models"
)

type NutritionService struct{ db *gorm.DB }

func NewNutritionService(db *gorm.DB) *NutritionService { return &NutritionService{db: db} }

type MealInput struct {
	MealType string   `json:"meal_type"`
	FoodName string   `json:"food_name"`
	Calories *int     `json:"calories"`
	Protein  *float64 `json:"protein"`
	Carbs    *float64 `json:"carbs"`
	Fat      *float64 `json:"fat"`
}

// DayTotals are the summed macros of one local day. Absent macros count as
// zero.
type DayTotals struct {
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// AddMeal validates and persists one meal with a server-assigned timestamp.
func (s *NutritionService) AddMeal(ctx context.Context, userID uint, in MealInput) (*models.Meal, error) {
	in.FoodName = strings.TrimSpace(in.FoodName)

	fe := FieldErrors{}
	if !contains(models.MealTypes, in.MealType) {
		fe["meal_type"] = "Select a valid meal type."
	}
	if in.FoodName == "" {
		fe["food_name"] = "Food name is required."
	}
	if in.Calories == nil {
		fe["calories"] = "Calories are required."
	} else if *in.Calories < 0 {
		fe["calories"] = "Calories must be zero or more."
	}
	if in.Protein != nil && *in.Protein < 0 {
		fe["protein"] = "Protein must be zero or more."
	}
	if in.Carbs != nil && *in.Carbs < 0 {
		fe["carbs"] = "Carbs must be zero or more."
	}
	if in.Fat != nil && *in.Fat < 0 {
		fe["fat"] = "Fat must be zero or more."
	}
	if len(fe) > 0 {
		return nil, fe
	}

	meal := &models.Meal{
		UserID:   userID,
		MealType: in.MealType,
		FoodName: in.FoodName,
		Calories: *in.Calories,
		Protein:  in.Protein,
		Carbs:    in.Carbs,
		Fat:      in.Fat,
	}
	if err := s.db.WithContext(ctx).Create(meal).Error; err != nil {
		return nil, fmt.Errorf("create meal: %w", err)
	}
	return meal, nil
}

// TodayMeals returns the caller's meals logged today, newest first, together
// with the day's totals.
func (s *NutritionService) TodayMeals(ctx context.Context, userID uint) ([]models.Meal, DayTotals, error) {
	start := dayStart(time.Now())
	end := start.AddDate(0, 0, 1)

	var meals []models.Meal
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, start, end).
		Order("created_at DESC").
		Find(&meals).Error
	if err != nil {
		return nil, DayTotals{}, fmt.Errorf("load today's meals: %w", err)
	}

	var totals DayTotals
	for i := range meals {
		m := &meals[i]
		totals.Calories += m.Calories
		if m.Protein != nil {
			totals.Protein += *m.Protein
		}
		if m.Carbs != nil {
			totals.Carbs += *m.Carbs
		}
		if m.Fat != nil {
			totals.Fat += *m.Fat
		}
	}
	return meals, totals, nil
}
