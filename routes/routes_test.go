package routes_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/marktudor11/fitlytics/models"
	"github.com/marktudor11/fitlytics/routes"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("GEMINI_API_KEY", "")

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Meal{},
		&models.TrainingSession{},
		&models.Exercise{},
		&models.Set{},
	))
	return routes.SetupRouter(db)
}

func doJSON(r *gin.Engine, method, path, token string, payload any) *httptest.ResponseRecorder {
	var body *bytes.Reader
	if payload != nil {
		b, _ := json.Marshal(payload)
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func signupAndLogin(t *testing.T, r *gin.Engine) string {
	t.Helper()
	rec := doJSON(r, http.MethodPost, "/accounts/signup", "", gin.H{
		"username": "alice", "email": "alice@example.com", "password": "s3cret-pw",
		"age": 30, "gender": "Female", "height_cm": 170, "weight_kg": 65,
		"goal": "Gain Muscle", "activity_level": "Active (3-5 days/week)",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token, "signup logs the user in")
	return resp.Token
}

func TestSignupLoginFlow(t *testing.T) {
	r := setupRouter(t)
	signupAndLogin(t, r)

	// login with the email, not the username
	rec := doJSON(r, http.MethodPost, "/accounts/login", "", gin.H{
		"email": "alice@example.com", "password": "s3cret-pw",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// wrong password and unknown identifier produce identical bodies
	wrongPw := doJSON(r, http.MethodPost, "/accounts/login", "", gin.H{
		"email": "alice", "password": "nope",
	})
	unknown := doJSON(r, http.MethodPost, "/accounts/login", "", gin.H{
		"email": "nobody", "password": "nope",
	})
	assert.Equal(t, http.StatusUnauthorized, wrongPw.Code)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, wrongPw.Body.String(), unknown.Body.String())
}

func TestHomeReportsIdentity(t *testing.T) {
	r := setupRouter(t)
	token := signupAndLogin(t, r)

	rec := doJSON(r, http.MethodGet, "/", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"alice"`)

	anon := doJSON(r, http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, anon.Code)
	assert.NotContains(t, anon.Body.String(), "alice")
}

func TestNutrition_AnonymousViewAndGatedWrite(t *testing.T) {
	r := setupRouter(t)

	rec := doJSON(r, http.MethodGet, "/nutrition", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"calories":0`)

	// anonymous write bounces to login with a return path
	rec = doJSON(r, http.MethodPost, "/nutrition", "", gin.H{
		"meal_type": "Lunch", "food_name": "Rice", "calories": 200,
	})
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/accounts/login?next=%2Fnutrition", rec.Header().Get("Location"))
}

func TestNutrition_AddAndReadBack(t *testing.T) {
	r := setupRouter(t)
	token := signupAndLogin(t, r)

	rec := doJSON(r, http.MethodPost, "/nutrition", token, gin.H{
		"meal_type": "Lunch", "food_name": "Grilled Chicken",
		"calories": 300, "protein": 30,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(r, http.MethodPost, "/nutrition", token, gin.H{
		"meal_type": "Snack", "food_name": "Apple", "calories": 80,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(r, http.MethodGet, "/nutrition", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Meals  []json.RawMessage `json:"meals"`
		Totals struct {
			Calories int     `json:"calories"`
			Protein  float64 `json:"protein"`
		} `json:"totals"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Meals, 2)
	assert.Equal(t, 380, resp.Totals.Calories)
	assert.Equal(t, 30.0, resp.Totals.Protein)

	// validation errors surface as field errors
	rec = doJSON(r, http.MethodPost, "/nutrition", token, gin.H{
		"meal_type": "Brunch", "food_name": "X", "calories": 100,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "meal_type")
}

func postForm(r *gin.Engine, path, token string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestTraining_FlatFormArraysAndMetrics(t *testing.T) {
	r := setupRouter(t)
	token := signupAndLogin(t, r)

	form := url.Values{
		"name":          {"Leg day"},
		"duration_min":  {"45"},
		"exercise_name": {"Squat"},
		"muscle_group":  {"Legs"},
		"is_compound":   {"on"},
		"reps":          {"5", "junk", "5"},
		"weight_kg":     {"100", "100", "nope"},
		"rir":           {"2", "", ""},
		"is_warmup":     {"", "", ""},
	}
	rec := postForm(r, "/training", token, form)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(r, http.MethodGet, "/training", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var dash struct {
		Sessions []struct {
			Volume   float64 `json:"volume"`
			SetCount int     `json:"set_count"`
		} `json:"sessions"`
		Totals struct {
			Sets        int `json:"sets"`
			DurationMin int `json:"duration_min"`
		} `json:"totals"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dash))
	require.Len(t, dash.Sessions, 1)
	// malformed reps row dropped; bodyweight-style row kept without volume
	assert.Equal(t, 2, dash.Sessions[0].SetCount)
	assert.Equal(t, 500.0, dash.Sessions[0].Volume)
	assert.Equal(t, 45, dash.Totals.DurationMin)

	rec = doJSON(r, http.MethodGet, "/metrics?days=7", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var metrics struct {
		Labels      []string  `json:"labels"`
		TrainVolume []float64 `json:"train_volume"`
		TrainSets   []int     `json:"train_sets"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &metrics))
	require.Len(t, metrics.Labels, 7)
	assert.Equal(t, 500.0, metrics.TrainVolume[6], "today's session lands in the last bucket")
	assert.Equal(t, 2, metrics.TrainSets[6])
}

func TestTraining_InvalidSubmissionPersistsNothing(t *testing.T) {
	r := setupRouter(t)
	token := signupAndLogin(t, r)

	rec := postForm(r, "/training", token, url.Values{
		"exercise_name": {"Bench"},
		"reps":          {"junk", "0"},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "sets")
}

func TestMetrics_RequiresLogin(t *testing.T) {
	r := setupRouter(t)
	rec := doJSON(r, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAssistant_EmptyInputAndMissingKey(t *testing.T) {
	r := setupRouter(t)
	token := signupAndLogin(t, r)

	// empty question fails fast, upstream is never contacted
	rec := doJSON(r, http.MethodPost, "/assistant/chat", token, gin.H{"q": "  <b></b>  "})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Empty question.")

	// no API key configured: generic error, no crash
	rec = doJSON(r, http.MethodPost, "/assistant/chat", token, gin.H{"q": "how much protein?"})
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "API key missing.")
}
