package testutils

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"clinic-backend/internal/database"
	"clinic-backend/internal/models"
	"clinic-backend/internal/server"
	"clinic-backend/internal/utils"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	assert.NoError(t, err, "Failed to create test database")

	err = db.AutoMigrate(
		&models.User{},
		&models.Doctor{},
		&models.Patient{},
	)
	assert.NoError(t, err, "Failed to migrate test database")

	return db
}

func SetupTestApp(t *testing.T) *fiber.App {
	db := TestDB(t)
	database.DB = db

	err := utils.InitLocalStorage()
	assert.NoError(t, err, "Failed to initialize storage")
	utils.SetStorageMode(true)

	return server.New(db)
}

func CreateTestUser(t *testing.T, db *gorm.DB, email, password, userType string) *models.User {
	hashedPassword, _ := utils.HashPassword(password)

	u := &models.User{
		Name:     "Test User",
		Email:    email,
		Password: hashedPassword,
		Gender:   "female",
		DOB:      time.Date(1990, 5, 12, 0, 0, 0, 0, time.UTC),
		Phone:    "5550100",
		Address:  "12 Test Street",
		UserType: userType,
		IsActive: true,
	}

	err := db.Create(u).Error
	assert.NoError(t, err, "Failed to create test user")

	return u
}

func CreateTestDoctor(t *testing.T, db *gorm.DB, userID uint, email, specialization string) *models.Doctor {
	d := &models.Doctor{
		UserID:            userID,
		Name:              "Dr. Test",
		Specialization:    specialization,
		YearsOfExperience: 8,
		Email:             email,
		Phone:             "5550101",
		IsAvailable:       true,
		IsActive:          true,
	}

	err := db.Create(d).Error
	assert.NoError(t, err, "Failed to create test doctor")

	return d
}

func CreateTestPatient(t *testing.T, db *gorm.DB, userID uint) *models.Patient {
	p := &models.Patient{
		UserID:   userID,
		IsActive: true,
	}

	err := db.Create(p).Error
	assert.NoError(t, err, "Failed to create test patient")

	return p
}

func MakeRequest(app *fiber.App, method, url string, body interface{}) (*httptest.ResponseRecorder, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(jsonBody)
	}

	req := httptest.NewRequest(method, url, bodyReader)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()

	resp, err := app.Test(req, -1)
	if err != nil {
		return rec, err
	}

	rec.Code = resp.StatusCode

	io.Copy(rec.Body, resp.Body)
	resp.Body.Close()

	return rec, nil
}

func ParseResponse(t *testing.T, resp *httptest.ResponseRecorder, v interface{}) {
	if resp.Body.Len() == 0 {
		t.Log("Warning: Response body is empty")
		return
	}

	err := json.NewDecoder(resp.Body).Decode(v)
	if err != nil && err != io.EOF {
		t.Logf("Response body: %s", resp.Body.String())
		assert.NoError(t, err, "Failed to parse response")
	}
}

type StandardResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    interface{}  `json:"data"`
	Error   *ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details"`
}

func AssertSuccess(t *testing.T, resp *httptest.ResponseRecorder) {
	var result StandardResponse
	ParseResponse(t, resp, &result)
	assert.True(t, result.Success, "Expected success response")
	assert.Empty(t, result.Error, "Expected no error")
}

func AssertError(t *testing.T, resp *httptest.ResponseRecorder, expectedCode string) {
	var result StandardResponse
	ParseResponse(t, resp, &result)
	assert.False(t, result.Success, "Expected error response")
	assert.NotNil(t, result.Error, "Expected error object")
	if result.Error != nil {
		assert.Equal(t, expectedCode, result.Error.Code, "Error code mismatch")
	}
}
