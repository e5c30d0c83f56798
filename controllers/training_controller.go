package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/marktudor11/fitlytics/services"
)

type TrainingController struct {
	Training *services.TrainingService
}

func NewTrainingController(svc *services.TrainingService) *TrainingController {
	return &TrainingController{Training: svc}
}

// recentSessionsLimit bounds the training dashboard list.
const recentSessionsLimit = 20

// Dashboard lists recent sessions with their aggregates plus overall totals.
func (h *TrainingController) Dashboard(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	sessions, err := h.Training.ListSessions(c.Request.Context(), userID, recentSessionsLimit)
	if err != nil {
		logrus.Errorf("load training dashboard for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load sessions. Please try again."})
		return
	}

	var volume float64
	var sets, exercises, duration int
	for i := range sessions {
		volume += sessions[i].Volume
		sets += sessions[i].SetCount
		exercises += sessions[i].ExerciseCount
		duration += sessions[i].DurationMin
	}

	c.JSON(http.StatusOK, gin.H{
		"sessions": sessions,
		"totals": gin.H{
			"volume":       volume,
			"sets":         sets,
			"exercises":    exercises,
			"duration_min": duration,
		},
	})
}

// AddSession handles the flat form-array submission: one session, one
// exercise, and aligned reps[]/weight_kg[]/rir[]/is_warmup[] set rows.
func (h *TrainingController) AddSession(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	reps := c.PostFormArray("reps")
	weights := c.PostFormArray("weight_kg")
	rirs := c.PostFormArray("rir")
	warmups := c.PostFormArray("is_warmup")

	sets := make([]services.SetInput, len(reps))
	for i := range reps {
		sets[i] = services.SetInput{
			Reps:     reps[i],
			WeightKg: at(weights, i),
			RIR:      at(rirs, i),
			IsWarmup: parseCheckbox(at(warmups, i)),
		}
	}

	input := services.SessionInput{
		Name:          c.PostForm("name"),
		Date:          c.PostForm("date"),
		DurationMin:   c.PostForm("duration_min"),
		Notes:         c.PostForm("notes"),
		ExerciseName:  c.PostForm("exercise_name"),
		MuscleGroup:   c.PostForm("muscle_group"),
		IsCompound:    parseCheckbox(c.PostForm("is_compound")),
		ExerciseNotes: c.PostForm("exercise_notes"),
		Sets:          sets,
	}

	session, err := h.Training.AddSessionWithExercise(c.Request.Context(), userID, input)
	if err != nil {
		var fe services.FieldErrors
		if errors.As(err, &fe) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": fe})
			return
		}
		logrus.Errorf("save training session for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session. Please try again."})
		return
	}
	c.JSON(http.StatusCreated, session)
}

func at(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
}

func parseCheckbox(v string) bool {
	return v == "on" || v == "true" || v == "1"
}
