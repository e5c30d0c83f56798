package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/marktudor11/fitlytics/models"
	"github.com/marktudor11/fitlytics/services"
)

type NutritionController struct {
	Nutrition *services.NutritionService
}

func NewNutritionController(svc *services.NutritionService) *NutritionController {
	return &NutritionController{Nutrition: svc}
}

// Dashboard returns today's meals and totals. Anonymous callers can view the
// page shape (empty ledger, zero totals); writing is gated separately.
func (h *NutritionController) Dashboard(c *gin.Context) {
	today := time.Now().Format("2006-01-02")

	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{
			"today":  today,
			"meals":  []models.Meal{},
			"totals": services.DayTotals{},
		})
		return
	}

	meals, totals, err := h.Nutrition.TodayMeals(c.Request.Context(), userID)
	if err != nil {
		logrus.Errorf("load nutrition dashboard for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load meals. Please try again."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"today": today, "meals": meals, "totals": totals})
}

func (h *NutritionController) AddMeal(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var input services.MealInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meal, err := h.Nutrition.AddMeal(c.Request.Context(), userID, input)
	if err != nil {
		var fe services.FieldErrors
		if errors.As(err, &fe) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": fe})
			return
		}
		logrus.Errorf("save meal for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save meal. Please try again."})
		return
	}
	c.JSON(http.StatusCreated, meal)
}
