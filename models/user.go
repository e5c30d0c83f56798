package models

import (
	"gorm.io/gorm"
)

// Choice lists enforced by signup/profile validation. The strings are stored
// verbatim, so they must match what the clients send.
var (
	Genders = []string{"Male", "Female", "Other"}
	Goals   = []string{"Lose Weight", "Maintain Weight", "Gain Muscle"}

	ActivityLevels = []string{
		"Sedentary (little exercise)",
		"Lightly Active (1-3 days/week)",
		"Active (3-5 days/week)",
		"Very Active (6-7 days/week)",
	}
)

type User struct {
	gorm.Model
	Username string `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`

	Profile Profile `gorm:"constraint:OnDelete:CASCADE" json:"profile"`
}

// Profile holds the body/goal attributes collected at signup. Exactly one per
// user, created in the same transaction as the account.
type Profile struct {
	gorm.Model
	UserID        uint    `gorm:"uniqueIndex;not null" json:"-"`
	Age           int     `json:"age"`
	Gender        string  `gorm:"size:12" json:"gender"`
	HeightCm      float64 `json:"height_cm"`
	WeightKg      float64 `json:"weight_kg"`
	Goal          string  `gorm:"size:20" json:"goal"`
	ActivityLevel string  `gorm:"size:40" json:"activity_level"`
}
