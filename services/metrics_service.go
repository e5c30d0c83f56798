package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/marktudor11/fitlytics/models"
)

type MetricsService struct{ db *gorm.DB }

func NewMetricsService(db *gorm.DB) *MetricsService { return &MetricsService{db: db} }

const maxWindowDays = 366

// DailyMetrics holds aligned per-day series over the requested window,
// suitable for direct charting. Labels are ISO dates; every series has one
// value per label.
type DailyMetrics struct {
	Labels      []string  `json:"labels"`
	Calories    []int     `json:"calories"`
	Protein     []float64 `json:"protein"`
	Carbs       []float64 `json:"carbs"`
	Fat         []float64 `json:"fat"`
	TrainVolume []float64 `json:"train_volume"`
	TrainSets   []int     `json:"train_sets"`
}

// LastNDays buckets the caller's meals and training sets by local calendar
// day over the trailing window ending today. Days without data stay zero
// rather than missing.
//
// One day definition applies everywhere: a meal belongs to the local day of
// its created_at, a set to its session's date. Bucketing happens here in one
// pass over window-scoped queries, so there is no second aggregation path to
// disagree with near midnight.
func (s *MetricsService) LastNDays(ctx context.Context, userID uint, days int) (*DailyMetrics, error) {
	if days < 1 {
		days = 1
	}
	if days > maxWindowDays {
		days = maxWindowDays
	}

	today := dayStart(time.Now())
	start := today.AddDate(0, 0, -(days - 1))
	end := today.AddDate(0, 0, 1)

	out := &DailyMetrics{
		Labels:      make([]string, days),
		Calories:    make([]int, days),
		Protein:     make([]float64, days),
		Carbs:       make([]float64, days),
		Fat:         make([]float64, days),
		TrainVolume: make([]float64, days),
		TrainSets:   make([]int, days),
	}
	index := make(map[string]int, days)
	for i := 0; i < days; i++ {
		key := start.AddDate(0, 0, i).Format("2006-01-02")
		out.Labels[i] = key
		index[key] = i
	}

	var meals []models.Meal
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, start, end).
		Find(&meals).Error; err != nil {
		return nil, fmt.Errorf("load meals for window: %w", err)
	}
	for i := range meals {
		m := &meals[i]
		idx, ok := index[m.CreatedAt.In(start.Location()).Format("2006-01-02")]
		if !ok {
			continue
		}
		out.Calories[idx] += m.Calories
		if m.Protein != nil {
			out.Protein[idx] += *m.Protein
		}
		if m.Carbs != nil {
			out.Carbs[idx] += *m.Carbs
		}
		if m.Fat != nil {
			out.Fat[idx] += *m.Fat
		}
	}

	type setRow struct {
		Date     time.Time
		Reps     int
		WeightKg *float64
	}
	var rows []setRow
	if err := s.db.WithContext(ctx).
		Model(&models.Set{}).
		Select("training_sessions.date AS date, sets.reps AS reps, sets.weight_kg AS weight_kg").
		Joins("JOIN exercises ON exercises.id = sets.exercise_id").
		Joins("JOIN training_sessions ON training_sessions.id = exercises.session_id").
		Where("training_sessions.user_id = ? AND training_sessions.date >= ? AND training_sessions.date < ?",
			userID, start, end).
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("load sets for window: %w", err)
	}
	for i := range rows {
		r := &rows[i]
		idx, ok := index[r.Date.In(start.Location()).Format("2006-01-02")]
		if !ok {
			continue
		}
		out.TrainSets[idx]++
		if r.WeightKg != nil {
			out.TrainVolume[idx] += *r.WeightKg * float64(r.Reps)
		}
	}

	return out, nil
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
