package models

import (
	"time"

	"gorm.io/gorm"
)

var MuscleGroups = []string{"", "Chest", "Back", "Legs", "Shoulders", "Arms", "Core", "Full Body"}

// TrainingSession is the root of the training ledger hierarchy. Date is the
// local calendar day of the workout, stored at midnight.
type TrainingSession struct {
	gorm.Model
	UserID      uint      `gorm:"index;not null" json:"-"`
	Name        string    `gorm:"size:255" json:"name"`
	Date        time.Time `gorm:"index;not null" json:"date"`
	DurationMin *int      `json:"duration_min"`
	Notes       string    `json:"notes"`

	Exercises []Exercise `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"exercises"`
}

type Exercise struct {
	gorm.Model
	SessionID   uint   `gorm:"index;not null" json:"-"`
	Name        string `gorm:"size:255;not null" json:"name"`
	MuscleGroup string `gorm:"size:50" json:"muscle_group"`
	IsCompound  bool   `json:"is_compound"`
	Position    int    `json:"order"`
	Notes       string `json:"notes"`

	Sets []Set `gorm:"constraint:OnDelete:CASCADE" json:"sets"`
}

// Set is one strength set. Weight and RIR are nullable; a bodyweight set has
// no weight and contributes zero volume.
type Set struct {
	gorm.Model
	ExerciseID uint     `gorm:"index;not null" json:"-"`
	Position   int      `json:"order"`
	Reps       int      `gorm:"not null" json:"reps"`
	WeightKg   *float64 `json:"weight_kg"`
	RIR        *float64 `json:"rir"`
	IsWarmup   bool     `json:"is_warmup"`
}

// Volume is reps x weight in kg, or 0 for sets without a recorded weight.
func (s *Set) Volume() float64 {
	if s.WeightKg == nil {
		return 0
	}
	return *s.WeightKg * float64(s.Reps)
}

func (e *Exercise) Volume() float64 {
	var total float64
	for i := range e.Sets {
		total += e.Sets[i].Volume()
	}
	return total
}

func (t *TrainingSession) TotalVolume() float64 {
	var total float64
	for i := range t.Exercises {
		total += t.Exercises[i].Volume()
	}
	return total
}

func (t *TrainingSession) SetsCount() int {
	n := 0
	for i := range t.Exercises {
		n += len(t.Exercises[i].Sets)
	}
	return n
}

func (t *TrainingSession) ExercisesCount() int {
	return len(t.Exercises)
}

func (t *TrainingSession) TotalDuration() int {
	if t.DurationMin == nil {
		return 0
	}
	return *t.DurationMin
}
