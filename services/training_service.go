// services/training_service.go
package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/marktudor11/fitlytics/models"
)

type TrainingService struct{ db *gorm.DB }

func NewTrainingService(db *gorm.DB) *TrainingService { return &TrainingService{db: db} }

// SetInput carries the raw string values of one row of the flat set arrays.
// Parsing policy lives in AddSessionWithExercise, not in the controller.
type SetInput struct {
	Reps     string
	WeightKg string
	RIR      string
	IsWarmup bool
}

type SessionInput struct {
	Name        string
	Date        string // "2006-01-02"; empty or malformed falls back to today
	DurationMin string
	Notes       string

	ExerciseName  string
	MuscleGroup   string
	IsCompound    bool
	ExerciseNotes string

	Sets []SetInput
}

// AddSessionWithExercise creates one session, one exercise and its sets as a
// single unit of work: all rows or none.
//
// Per-row policy: a set persists only when its reps value parses to a
// positive integer; a malformed reps drops that one row. Weight and RIR
// default to absent on parse failure, never to zero. A bad date never fails
// the request, it just means "today".
func (s *TrainingService) AddSessionWithExercise(ctx context.Context, userID uint, in SessionInput) (*models.TrainingSession, error) {
	in.ExerciseName = strings.TrimSpace(in.ExerciseName)

	fe := FieldErrors{}
	if in.ExerciseName == "" {
		fe["exercise_name"] = "Exercise name is required."
	}
	if !contains(models.MuscleGroups, in.MuscleGroup) {
		fe["muscle_group"] = "Select a valid muscle group."
	}

	sets := make([]models.Set, 0, len(in.Sets))
	for i, row := range in.Sets {
		reps, err := strconv.Atoi(strings.TrimSpace(row.Reps))
		if err != nil || reps <= 0 {
			continue
		}
		set := models.Set{Position: i, Reps: reps, IsWarmup: row.IsWarmup}
		if w, err := strconv.ParseFloat(strings.TrimSpace(row.WeightKg), 64); err == nil && w >= 0 {
			set.WeightKg = &w
		}
		if r, err := strconv.ParseFloat(strings.TrimSpace(row.RIR), 64); err == nil && r >= 0 {
			set.RIR = &r
		}
		sets = append(sets, set)
	}
	if len(sets) == 0 {
		fe["sets"] = "At least one set with positive reps is required."
	}
	if len(fe) > 0 {
		return nil, fe
	}

	date := dayStart(time.Now())
	if parsed, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(in.Date), time.Local); err == nil {
		date = parsed
	}

	var duration *int
	if d, err := strconv.Atoi(strings.TrimSpace(in.DurationMin)); err == nil && d >= 0 {
		duration = &d
	}

	session := &models.TrainingSession{
		UserID:      userID,
		Name:        strings.TrimSpace(in.Name),
		Date:        date,
		DurationMin: duration,
		Notes:       in.Notes,
		Exercises: []models.Exercise{{
			Name:        in.ExerciseName,
			MuscleGroup: in.MuscleGroup,
			IsCompound:  in.IsCompound,
			Position:    0,
			Notes:       in.ExerciseNotes,
			Sets:        sets,
		}},
	}
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(session).Error
	}); err != nil {
		return nil, fmt.Errorf("create training session: %w", err)
	}
	return session, nil
}

// SessionView is one session with its aggregates, ready for the training
// dashboard.
type SessionView struct {
	ID            uint              `json:"id"`
	Name          string            `json:"name"`
	Date          string            `json:"date"`
	DurationMin   int               `json:"duration_min"`
	Notes         string            `json:"notes"`
	Volume        float64           `json:"volume"`
	SetCount      int               `json:"set_count"`
	ExerciseCount int               `json:"exercise_count"`
	Exercises     []models.Exercise `json:"exercises"`
}

// ListSessions returns the caller's sessions ordered by (date desc,
// created_at desc), exercises and sets in their recorded order.
func (s *TrainingService) ListSessions(ctx context.Context, userID uint, limit int) ([]SessionView, error) {
	var sessions []models.TrainingSession
	q := s.db.WithContext(ctx).
		Preload("Exercises", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Exercises.Sets", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("user_id = ?", userID).
		Order("date DESC, created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}

	views := make([]SessionView, 0, len(sessions))
	for i := range sessions {
		sess := &sessions[i]
		views = append(views, SessionView{
			ID:            sess.ID,
			Name:          sess.Name,
			Date:          sess.Date.In(time.Local).Format("2006-01-02"),
			DurationMin:   sess.TotalDuration(),
			Notes:         sess.Notes,
			Volume:        sess.TotalVolume(),
			SetCount:      sess.SetsCount(),
			ExerciseCount: sess.ExercisesCount(),
			Exercises:     sess.Exercises,
		})
	}
	return views, nil
}
