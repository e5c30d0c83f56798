package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/marktudor11/fitlytics/models"
	"github.com/marktudor11/fitlytics/utils"
)

// ErrInvalidCredentials is returned for every login failure. Unknown
// identifier and wrong password are deliberately indistinguishable.
var ErrInvalidCredentials = errors.New("invalid email/username or password")

// FieldErrors maps form field names to messages, surfaced inline with the
// form that produced them.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return strings.Join(parts, "; ")
}

type AccountService struct{ db *gorm.DB }

func NewAccountService(db *gorm.DB) *AccountService { return &AccountService{db: db} }

type SignupInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`

	Age           int     `json:"age"`
	Gender        string  `json:"gender"`
	HeightCm      float64 `json:"height_cm"`
	WeightKg      float64 `json:"weight_kg"`
	Goal          string  `json:"goal"`
	ActivityLevel string  `json:"activity_level"`
}

// Signup validates the input and creates the user together with its profile
// in a single transaction. Uniqueness is pre-checked case-insensitively so
// duplicates surface as field errors; the unique indexes catch the race.
func (s *AccountService) Signup(in SignupInput) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	fe := FieldErrors{}
	if in.Username == "" {
		fe["username"] = "Username is required."
	} else {
		taken, err := s.identifierTaken("username", in.Username)
		if err != nil {
			return nil, err
		}
		if taken {
			fe["username"] = "This username is already taken."
		}
	}
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		fe["email"] = "A valid email is required."
	} else {
		taken, err := s.identifierTaken("email", in.Email)
		if err != nil {
			return nil, err
		}
		if taken {
			fe["email"] = "An account with this email already exists."
		}
	}
	if in.Password == "" {
		fe["password"] = "Password is required."
	}
	if in.Age < 13 || in.Age > 100 {
		fe["age"] = "Age must be between 13 and 100."
	}
	if in.HeightCm < 50 || in.HeightCm > 300 {
		fe["height_cm"] = "Height must be between 50 and 300 cm."
	}
	if in.WeightKg < 20 || in.WeightKg > 400 {
		fe["weight_kg"] = "Weight must be between 20 and 400 kg."
	}
	if !contains(models.Genders, in.Gender) {
		fe["gender"] = "Select a valid gender."
	}
	if !contains(models.Goals, in.Goal) {
		fe["goal"] = "Select a valid goal."
	}
	if !contains(models.ActivityLevels, in.ActivityLevel) {
		fe["activity_level"] = "Select a valid activity level."
	}
	if len(fe) > 0 {
		return nil, fe
	}

	hashed, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: hashed,
		Profile: models.Profile{
			Age:           in.Age,
			Gender:        in.Gender,
			HeightCm:      in.HeightCm,
			WeightKg:      in.WeightKg,
			Goal:          in.Goal,
			ActivityLevel: in.ActivityLevel,
		},
	}
	if err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(user).Error
	}); err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}
	return user, nil
}

// Login accepts an email or a username in one identifier field. An email is
// resolved to its account's username first; if no account matches, the
// identifier is treated as a username directly.
func (s *AccountService) Login(identifier, password string) (*models.User, error) {
	identifier = strings.TrimSpace(identifier)
	username := identifier

	var byEmail models.User
	err := s.db.Where("LOWER(email) = LOWER(?)", identifier).First(&byEmail).Error
	switch {
	case err == nil:
		username = byEmail.Username
	case errors.Is(err, gorm.ErrRecordNotFound):
		// fall through, identifier used as username
	default:
		return nil, fmt.Errorf("resolve login identifier: %w", err)
	}

	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

type ProfileInput struct {
	Age           int     `json:"age"`
	Gender        string  `json:"gender"`
	HeightCm      float64 `json:"height_cm"`
	WeightKg      float64 `json:"weight_kg"`
	Goal          string  `json:"goal"`
	ActivityLevel string  `json:"activity_level"`
}

func (s *AccountService) GetProfile(userID uint) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile applies the same range/enum rules as signup.
func (s *AccountService) UpdateProfile(userID uint, in ProfileInput) (*models.Profile, error) {
	fe := FieldErrors{}
	if in.Age < 13 || in.Age > 100 {
		fe["age"] = "Age must be between 13 and 100."
	}
	if in.HeightCm < 50 || in.HeightCm > 300 {
		fe["height_cm"] = "Height must be between 50 and 300 cm."
	}
	if in.WeightKg < 20 || in.WeightKg > 400 {
		fe["weight_kg"] = "Weight must be between 20 and 400 kg."
	}
	if !contains(models.Genders, in.Gender) {
		fe["gender"] = "Select a valid gender."
	}
	if !contains(models.Goals, in.Goal) {
		fe["goal"] = "Select a valid goal."
	}
	if !contains(models.ActivityLevels, in.ActivityLevel) {
		fe["activity_level"] = "Select a valid activity level."
	}
	if len(fe) > 0 {
		return nil, fe
	}

	var profile models.Profile
	if err := s.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	profile.Age = in.Age
	profile.Gender = in.Gender
	profile.HeightCm = in.HeightCm
	profile.WeightKg = in.WeightKg
	profile.Goal = in.Goal
	profile.ActivityLevel = in.ActivityLevel
	if err := s.db.Save(&profile).Error; err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	return &profile, nil
}

func (s *AccountService) identifierTaken(column, value string) (bool, error) {
	var count int64
	err := s.db.Model(&models.User{}).
		Where("LOWER("+column+") = LOWER(?)", value).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check %s uniqueness: %w", column, err)
	}
	return count > 0, nil
}

func contains(choices []string, v string) bool {
	for _, c := range choices {
		if c == v {
			return true
		}
	}
	return false
}
